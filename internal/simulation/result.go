package simulation

import (
	"errors"
	"fmt"

	"github.com/napolitain/buildorder/internal/models"
	"github.com/napolitain/buildorder/internal/order"
)

// ErrUnknownFactory is returned when a factory kind cannot be dispatched
var ErrUnknownFactory = errors.New("unknown factory kind")

// Result holds one instant per second of the horizon, the replayed order and
// the errors raised while replaying it
type Result struct {
	MaxTime  order.Second
	Instants []Instant
	Errors   []Invalid
	Order    *order.Order
	Economy  Economy
}

// At returns the instant at t, clamped to the horizon
func (r *Result) At(t order.Second) Instant {
	t = max(0, min(t, r.MaxTime))
	return r.Instants[t]
}

// Final returns the last instant of the horizon
func (r *Result) Final() Instant {
	return r.Instants[len(r.Instants)-1]
}

// FirstAppearance returns the first second at which a live entity of u
// exists, or Infinity
func (r *Result) FirstAppearance(u *models.Unit) order.Second {
	for _, in := range r.Instants {
		if in.HasUnit(u) {
			return in.Time
		}
	}
	return order.Infinity
}

// FindQuickestPossibleTime returns the earliest second from which the
// factory's cost stays affordable until the end of the horizon. Requirements
// must be present first.
func (r *Result) FindQuickestPossibleTime(f order.Factory) order.Second {
	unit := f.Unit
	count := max(f.Count, 1)
	available := 0

	if unit.HasRequirement() {
		require, ok := r.Order.Catalog().Unit(unit.Requirement)
		if !ok {
			return order.Infinity
		}
		available = r.FirstAppearance(require)
		if available == order.Infinity {
			return order.Infinity
		}
	}

	mineral := float64(unit.Mineral * count)
	gas := float64(unit.Gas * count)
	supply := unit.Supply * count

	time := order.Infinity
	for i := available; i < r.MaxTime; i++ {
		in := r.Instants[i]
		if in.Supply.Current+supply <= in.Supply.Max && in.Mineral-mineral >= 0 && in.Gas-gas >= 0 {
			if time == order.Infinity {
				time = in.Time
			}
		} else {
			time = order.Infinity
		}
	}
	return time
}

// requiredAddon returns the add-on the parent must carry for the factory
func (r *Result) requiredAddon(f order.Factory) *models.Unit {
	catalog := r.Order.Catalog()
	if f.Count > 1 {
		return catalog.Reactor()
	}
	if f.Unit.IsAdvanced {
		return catalog.TechLab()
	}
	return nil
}

// FindQuickestPossibleQueue refines FindQuickestPossibleTime with the
// producing structure: completed, carrying the needed add-on, and with a free
// queue slot in o
func (r *Result) FindQuickestPossibleQueue(f order.Factory, o *order.Order) order.Second {
	time := r.FindQuickestPossibleTime(f)
	if time == order.Infinity || f.Parent == order.None {
		return time
	}

	parent, ok := o.Get(f.Parent)
	if !ok {
		return order.Infinity
	}
	time = max(time, parent.Complete())
	addon := r.requiredAddon(f)

	for ; time < r.MaxTime; time++ {
		if addon != nil {
			e, ok := r.Instants[time].Entity(f.Parent)
			if !ok || e.Addon != addon {
				continue
			}
		}
		if o.IsQueueFreeBetween(f.Parent, f.NewAction(time)) {
			return time
		}
	}
	return order.Infinity
}

// FindQuickestPossibleAction dispatches on the factory kind. Lift and Land
// have no resource cost and wait for the parent's queue only.
func (r *Result) FindQuickestPossibleAction(f order.Factory, o *order.Order) (order.Second, error) {
	switch f.Kind {
	case order.KindCreate:
		return r.FindQuickestPossibleQueue(f, o), nil
	case order.KindLift, order.KindLand:
		return o.LastActionComplete(f.Parent), nil
	default:
		return order.Infinity, fmt.Errorf("%w: %d", ErrUnknownFactory, f.Kind)
	}
}
