package simulation

import (
	"fmt"

	"github.com/napolitain/buildorder/internal/models"
	"github.com/napolitain/buildorder/internal/order"
)

// InvalidKind is the closed set of diagnostics an order can raise
type InvalidKind int

const (
	MissingMineral InvalidKind = iota
	MissingGas
	MissingSupply
	MissingRequirement
	ParentIncomplete
	QueueCollision
	MissingAddon
	DuplicateAddon
	LiftWithoutAddon
)

var invalidNames = [...]string{
	MissingMineral:     "MissingMineral",
	MissingGas:         "MissingGas",
	MissingSupply:      "MissingSupply",
	MissingRequirement: "MissingRequirement",
	ParentIncomplete:   "ParentIncomplete",
	QueueCollision:     "QueueCollision",
	MissingAddon:       "MissingAddon",
	DuplicateAddon:     "DuplicateAddon",
	LiftWithoutAddon:   "LiftWithoutAddon",
}

var invalidLabels = [...]string{
	MissingMineral:     "Not enough mineral",
	MissingGas:         "Not enough gas",
	MissingSupply:      "Not enough supply",
	MissingRequirement: "Tech tree not respected",
	ParentIncomplete:   "Action performed even before the building is complete",
	QueueCollision:     "Multiple units produced at the same time in the same building",
	MissingAddon:       "Missing add-on",
	DuplicateAddon:     "An add-on is built on a building which already has one",
	LiftWithoutAddon:   "Trying to lift a building which doesn't have any add-on attached",
}

// String returns the kind name
func (k InvalidKind) String() string {
	if k < 0 || int(k) >= len(invalidNames) {
		return "Unknown"
	}
	return invalidNames[k]
}

// Label returns the fixed human readable message of the kind
func (k InvalidKind) Label() string {
	if k < 0 || int(k) >= len(invalidLabels) {
		return ""
	}
	return invalidLabels[k]
}

// IsAddonKind reports whether diagnostics of this kind carry an add-on
func (k InvalidKind) IsAddonKind() bool {
	return k == MissingAddon || k == DuplicateAddon
}

// Invalid is one diagnosed violation attached to the offending action
type Invalid struct {
	Kind   InvalidKind
	Action order.Action
	Addon  *models.Unit // set for MissingAddon and DuplicateAddon
}

// Label returns the fixed message of the diagnostic
func (iv Invalid) Label() string {
	return iv.Kind.Label()
}

func (iv Invalid) String() string {
	if iv.Addon != nil {
		return fmt.Sprintf("%s: %s (%s)", iv.Action, iv.Label(), iv.Addon.Name)
	}
	return fmt.Sprintf("%s: %s", iv.Action, iv.Label())
}
