package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/buildorder/internal/converter"
	"github.com/napolitain/buildorder/internal/models"
	"github.com/napolitain/buildorder/internal/order"
)

// ParseSave decodes a saved order. FormatProto expects a binary
// google.protobuf.Struct holding the JSON tree.
func ParseSave(data []byte, format Format) (order.Save, error) {
	var save order.Save
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &save); err != nil {
			return order.Save{}, fmt.Errorf("failed to parse order: %w", err)
		}
	case FormatProto:
		s := &structpb.Struct{}
		if err := proto.Unmarshal(data, s); err != nil {
			return order.Save{}, fmt.Errorf("failed to parse order: %w", err)
		}
		var err error
		if save, err = converter.StructToSave(s); err != nil {
			return order.Save{}, err
		}
	default:
		return order.Save{}, fmt.Errorf("order as %q: %w", format, ErrUnsupportedFormat)
	}
	return save, nil
}

// EncodeSave serializes a saved order
func EncodeSave(save order.Save, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		if save.Creates == nil {
			save.Creates = []order.SavedCreate{}
		}
		data, err := json.MarshalIndent(save, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatProto:
		s, err := converter.SaveToStruct(save)
		if err != nil {
			return nil, err
		}
		return proto.MarshalOptions{Deterministic: true}.Marshal(s)
	default:
		return nil, fmt.Errorf("order as %q: %w", format, ErrUnsupportedFormat)
	}
}

// ReadSave reads a saved order file
func ReadSave(path string) (order.Save, error) {
	format, err := FormatOf(path)
	if err != nil {
		return order.Save{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return order.Save{}, fmt.Errorf("failed to read order: %w", err)
	}
	save, err := ParseSave(data, format)
	if err != nil {
		return order.Save{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return save, nil
}

// WriteSave writes a saved order, choosing the format from the extension
func WriteSave(path string, save order.Save) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := EncodeSave(save, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write order: %w", err)
	}
	return nil
}

// LoadOrder reads an order file and rebuilds it against the catalog
func LoadOrder(path string, catalog *models.Catalog) (*order.Order, error) {
	save, err := ReadSave(path)
	if err != nil {
		return nil, err
	}
	o, err := order.FromSave(catalog, save)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return o, nil
}
