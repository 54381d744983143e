package order

import (
	"errors"
	"fmt"

	"github.com/napolitain/buildorder/internal/models"
)

// Reserved parent indices of the save format
const (
	ParentNone = -1
	ParentRoot = -2
)

// MaxSavedTime is the latest start second a saved action may carry
const MaxSavedTime Second = 3600

// Errors returned by Deserialize for malformed entries
var (
	// ErrBadParent is returned when a saved parent index does not point at
	// another entry
	ErrBadParent = errors.New("invalid parent index")
	ErrBadTime   = errors.New("invalid start time")
	ErrBadCount  = errors.New("invalid count")
)

// Save is the persisted shape of an order. Only Create actions are stored.
type Save struct {
	Creates []SavedCreate `json:"creates"`
}

// SavedCreate is one persisted Create action
type SavedCreate struct {
	Time   Second `json:"time"`
	Unit   string `json:"unit"`
	Parent int    `json:"parent"`
	Count  int    `json:"count,omitempty"` // omitted when 1
}

// Serialize flattens the Create actions in time order. Parents are encoded
// as positions in the emitted list.
func (o *Order) Serialize() Save {
	creates := o.Creates()
	position := make(map[ActionID]int, len(creates))
	for i, c := range creates {
		position[c.ID] = i
	}

	save := Save{Creates: make([]SavedCreate, 0, len(creates))}
	for _, c := range creates {
		entry := SavedCreate{Time: c.Time, Unit: c.Unit.Name}
		if c.Count != 1 {
			entry.Count = c.Count
		}

		switch c.Parent {
		case None:
			entry.Parent = ParentNone
		case Root:
			entry.Parent = ParentRoot
		default:
			pos, ok := position[c.Parent]
			if !ok {
				// parent is not a Create in this order; persist as parentless
				pos = ParentNone
			}
			entry.Parent = pos
		}
		save.Creates = append(save.Creates, entry)
	}
	return save
}

// Deserialize replaces the order's actions with the saved ones. Entries are
// appended in array order so equal timestamps keep their saved order.
// Serialize only emits earlier parent positions for legal orders; a child
// saved ahead of its parent (an order with a ParentIncomplete child) is
// accepted as well so that any serialized order loads back.
// On error the order is left unchanged.
func (o *Order) Deserialize(save Save) error {
	fresh := New(o.catalog)
	handles := make([]ActionID, 0, len(save.Creates))

	for i, entry := range save.Creates {
		unit, ok := o.catalog.Unit(entry.Unit)
		if !ok {
			return fmt.Errorf("creates[%d]: %q: %w", i, entry.Unit, models.ErrUnknownUnit)
		}
		if entry.Parent < ParentRoot || entry.Parent >= len(save.Creates) || entry.Parent == i {
			return fmt.Errorf("creates[%d]: parent %d: %w", i, entry.Parent, ErrBadParent)
		}
		if entry.Time < 0 || entry.Time > MaxSavedTime {
			return fmt.Errorf("creates[%d]: time %d outside [0, %d]: %w", i, entry.Time, MaxSavedTime, ErrBadTime)
		}
		if entry.Count < 0 || entry.Count > 2 {
			return fmt.Errorf("creates[%d]: count %d: %w", i, entry.Count, ErrBadCount)
		}

		count := entry.Count
		if count == 0 {
			count = 1
		}
		handles = append(handles, fresh.Append(NewCreate(entry.Time, unit, None, count)))
	}

	for i, entry := range save.Creates {
		a := fresh.arena[handles[i]]
		switch entry.Parent {
		case ParentRoot:
			a.Parent = Root
		case ParentNone:
			a.Parent = None
		default:
			a.Parent = handles[entry.Parent]
		}
		fresh.arena[handles[i]] = a
	}

	*o = *fresh
	return nil
}

// FromSave builds a new order from a save
func FromSave(catalog *models.Catalog, save Save) (*Order, error) {
	o := New(catalog)
	if err := o.Deserialize(save); err != nil {
		return nil, err
	}
	return o, nil
}
