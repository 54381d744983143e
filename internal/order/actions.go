package order

import (
	"fmt"

	"github.com/napolitain/buildorder/internal/models"
)

// Second is a simulation timestamp
type Second = int

// Infinity marks a time that is never reached within the horizon
const Infinity Second = 1<<31 - 1

// ActionID is a stable handle assigned when an action enters an Order
type ActionID int

const (
	// None is the zero handle: no parent, or a hypothetical action
	None ActionID = 0
	// Root is the handle of the distinguished starting structure
	Root ActionID = 1
)

// LiftDuration and LandDuration are the fixed flight times of a structure
const (
	LiftDuration = 3
	LandDuration = 3
)

// Kind is the closed set of action variants
type Kind int

const (
	KindCreate Kind = iota
	KindLift
	KindLand
)

// String returns a string representation of the action kind
func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "Create"
	case KindLift:
		return "Lift"
	case KindLand:
		return "Land"
	default:
		return "Unknown"
	}
}

// Action is one scheduled step of a build order
type Action struct {
	ID     ActionID
	Kind   Kind
	Time   Second
	Parent ActionID // Create action of the producing structure, None for placed buildings

	Unit  *models.Unit // produced unit (Create) or carried add-on (Land)
	Count int          // Create repetitions, >= 1
	Main  bool         // the starting structure
}

// NewCreate returns a Create action producing count units
func NewCreate(t Second, unit *models.Unit, parent ActionID, count int) Action {
	if count < 1 {
		count = 1
	}
	return Action{Kind: KindCreate, Time: t, Unit: unit, Parent: parent, Count: count}
}

// NewLift returns a Lift action detaching the parent's add-on
func NewLift(t Second, parent ActionID) Action {
	return Action{Kind: KindLift, Time: t, Parent: parent, Count: 1}
}

// NewLand returns a Land action attaching addon to the parent
func NewLand(t Second, addon *models.Unit, parent ActionID) Action {
	return Action{Kind: KindLand, Time: t, Unit: addon, Parent: parent, Count: 1}
}

// Complete returns the second at which the action finishes
func (a Action) Complete() Second {
	switch a.Kind {
	case KindLift:
		return a.Time + LiftDuration
	case KindLand:
		return a.Time + LandDuration
	default:
		if a.Main {
			return 0
		}
		return a.Time + a.Unit.Time
	}
}

// IsCreate reports whether the action produces a unit
func (a Action) IsCreate() bool {
	return a.Kind == KindCreate
}

// Overlaps reports whether the half-open production intervals intersect
func (a Action) Overlaps(b Action) bool {
	return b.Complete() > a.Time && b.Time < a.Complete()
}

// Label returns the display label of the action
func (a Action) Label() string {
	switch a.Kind {
	case KindLift:
		return "Lift"
	case KindLand:
		return "Land " + a.Unit.Name
	default:
		if a.Count != 1 {
			return fmt.Sprintf("x%d %s", a.Count, a.Unit.Name)
		}
		return a.Unit.Name
	}
}

func (a Action) String() string {
	return fmt.Sprintf("%s@%d", a.Label(), a.Time)
}
