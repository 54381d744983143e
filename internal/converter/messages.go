package converter

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/buildorder/internal/order"
)

// ToStruct converts any JSON-tagged value into a protobuf Struct
func ToStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return s, nil
}

// FromStruct decodes a protobuf Struct into a JSON-tagged value
func FromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		return fmt.Errorf("empty message")
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode struct: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}

// SaveToStruct converts a saved order into a protobuf Struct
func SaveToStruct(save order.Save) (*structpb.Struct, error) {
	if save.Creates == nil {
		save.Creates = []order.SavedCreate{}
	}
	return ToStruct(save)
}

// StructToSave converts a protobuf Struct into a saved order
func StructToSave(s *structpb.Struct) (order.Save, error) {
	var save order.Save
	if err := FromStruct(s, &save); err != nil {
		return order.Save{}, err
	}
	return save, nil
}

// ReportToStruct converts a validation report into a protobuf Struct
func ReportToStruct(r Report) (*structpb.Struct, error) {
	return ToStruct(r)
}

// StructToQuickest decodes a quickest request
func StructToQuickest(s *structpb.Struct) (QuickestRequest, error) {
	req := QuickestRequest{Parent: order.ParentNone}
	if err := FromStruct(s, &req); err != nil {
		return QuickestRequest{}, err
	}
	if req.Unit == "" {
		return QuickestRequest{}, fmt.Errorf("quickest request: unit is required")
	}
	return req, nil
}
