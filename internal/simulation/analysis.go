package simulation

import (
	"github.com/napolitain/buildorder/internal/models"
	"github.com/napolitain/buildorder/internal/order"
)

// Analysis is the immutable list of diagnostics derived from a Result
type Analysis struct {
	Result *Result
	Errors []Invalid
}

// Analyze validates a result. Replay errors come first, then per-create
// checks at the start instant, then parent/queue checks, then land checks.
func Analyze(r *Result) *Analysis {
	an := &Analysis{Result: r}
	an.Errors = append(an.Errors, r.Errors...)

	o := r.Order
	catalog := o.Catalog()

	for _, c := range o.Creates() {
		in := r.At(c.Time)
		unit := c.Unit

		if unit.HasRequirement() {
			require, ok := catalog.Unit(unit.Requirement)
			if !ok || !in.HasUnit(require) {
				an.add(MissingRequirement, c, nil)
			}
		}
		if unit.IsAdvanced && attachedAddon(in, c.Parent) != catalog.TechLab() {
			an.add(MissingAddon, c, catalog.TechLab())
		}
		if c.Count > 1 && attachedAddon(in, c.Parent) != catalog.Reactor() {
			an.add(MissingAddon, c, catalog.Reactor())
		}
		if in.Mineral < 0 && unit.Mineral > 0 {
			an.add(MissingMineral, c, nil)
		}
		if in.Gas < 0 && unit.Gas > 0 {
			an.add(MissingGas, c, nil)
		}
		if in.Supply.Current > in.Supply.Max && unit.Supply > 0 {
			an.add(MissingSupply, c, nil)
		}
	}

	for _, a := range o.Actions() {
		if a.Parent == order.None {
			continue
		}
		if parent, ok := o.Get(a.Parent); ok && a.Time < parent.Complete() {
			an.add(ParentIncomplete, a, nil)
		}
		if !o.IsQueueFreeBetween(a.Parent, a) {
			an.add(QueueCollision, a, nil)
		}
	}

	for _, a := range o.Actions() {
		if a.Kind != order.KindLand {
			continue
		}
		in := r.At(a.Complete())
		if in.CountAttached(a.Unit) > in.CountUnit(a.Unit) {
			an.add(MissingAddon, a, a.Unit)
		}
	}

	return an
}

func attachedAddon(in Instant, parent order.ActionID) *models.Unit {
	if parent == order.None {
		return nil
	}
	e, ok := in.Entity(parent)
	if !ok {
		return nil
	}
	return e.Addon
}

func (an *Analysis) add(kind InvalidKind, a order.Action, addon *models.Unit) {
	an.Errors = append(an.Errors, Invalid{Kind: kind, Action: a, Addon: addon})
}

// FilterErrors returns the diagnostics raised by the given action
func (an *Analysis) FilterErrors(id order.ActionID) []Invalid {
	var out []Invalid
	for _, iv := range an.Errors {
		if iv.Action.ID == id {
			out = append(out, iv)
		}
	}
	return out
}

// HasErrors reports whether any diagnostic was raised
func (an *Analysis) HasErrors() bool {
	return len(an.Errors) > 0
}

// CountByKind returns the number of diagnostics per kind
func (an *Analysis) CountByKind() map[InvalidKind]int {
	counts := make(map[InvalidKind]int)
	for _, iv := range an.Errors {
		counts[iv.Kind]++
	}
	return counts
}
