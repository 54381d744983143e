// Package order holds the editable, time-indexed store of build order actions.
package order

import (
	"sort"

	"github.com/napolitain/buildorder/internal/models"
)

// Order is the mutable action store. Actions live in an arena keyed by
// handle; the time index keeps them sorted by start time with insertion
// order preserved among equal timestamps. The root action is kept in the
// arena only and conceptually precedes everything in the index.
type Order struct {
	catalog *models.Catalog
	arena   map[ActionID]Action
	index   []ActionID
	nextID  ActionID
}

// New creates an empty order rooted at the catalog's main structure
func New(catalog *models.Catalog) *Order {
	o := &Order{
		catalog: catalog,
		arena:   make(map[ActionID]Action),
		nextID:  Root + 1,
	}
	o.arena[Root] = Action{
		ID:    Root,
		Kind:  KindCreate,
		Unit:  catalog.Main(),
		Count: 1,
		Main:  true,
	}
	return o
}

// Catalog returns the catalog the order was built against
func (o *Order) Catalog() *models.Catalog {
	return o.catalog
}

// Root returns the starting structure action
func (o *Order) Root() Action {
	return o.arena[Root]
}

// Get returns the action with the given handle
func (o *Order) Get(id ActionID) (Action, bool) {
	a, ok := o.arena[id]
	return a, ok
}

// Len returns the number of indexed actions (the root is not counted)
func (o *Order) Len() int {
	return len(o.index)
}

// Append stores the action and returns its handle.
// No validation happens here: illegal orders are representable.
func (o *Order) Append(a Action) ActionID {
	a.ID = o.nextID
	o.nextID++
	if a.Count < 1 {
		a.Count = 1
	}
	o.arena[a.ID] = a
	o.index = append(o.index, a.ID)
	o.sort()
	return a.ID
}

// Remove deletes the action. Removing a Create also removes its direct children.
func (o *Order) Remove(id ActionID) {
	a, ok := o.arena[id]
	if !ok || id == Root {
		return
	}

	drop := map[ActionID]bool{id: true}
	if a.IsCreate() {
		for _, child := range o.Children(id) {
			drop[child.ID] = true
		}
	}

	kept := o.index[:0]
	for _, aid := range o.index {
		if drop[aid] {
			delete(o.arena, aid)
			continue
		}
		kept = append(kept, aid)
	}
	o.index = kept
}

func (o *Order) sort() {
	sort.SliceStable(o.index, func(i, j int) bool {
		return o.arena[o.index[i]].Time < o.arena[o.index[j]].Time
	})
}

// Actions returns every indexed action in time order
func (o *Order) Actions() []Action {
	out := make([]Action, 0, len(o.index))
	for _, id := range o.index {
		out = append(out, o.arena[id])
	}
	return out
}

// Creates returns every Create action in time order
func (o *Order) Creates() []Action {
	var out []Action
	for _, id := range o.index {
		if a := o.arena[id]; a.IsCreate() {
			out = append(out, a)
		}
	}
	return out
}

// Buildings returns the Create actions placed without a producing structure
func (o *Order) Buildings() []Action {
	var out []Action
	for _, a := range o.Creates() {
		if a.Parent == None {
			out = append(out, a)
		}
	}
	return out
}

// Children returns the actions produced by parent, in time order
func (o *Order) Children(parent ActionID) []Action {
	var out []Action
	for _, id := range o.index {
		if a := o.arena[id]; a.Parent == parent && parent != None {
			out = append(out, a)
		}
	}
	return out
}

// LatestComplete returns the latest completion time among indexed actions
func (o *Order) LatestComplete() Second {
	latest := 0
	for _, id := range o.index {
		if c := o.arena[id].Complete(); c > latest {
			latest = c
		}
	}
	return latest
}

// LastActionComplete returns when the parent's queue becomes free: the latest
// completion among its children, or the parent's own completion if it has none
func (o *Order) LastActionComplete(parent ActionID) Second {
	p, ok := o.arena[parent]
	if !ok {
		return 0
	}
	last := p.Complete()
	for _, child := range o.Children(parent) {
		if c := child.Complete(); c > last {
			last = c
		}
	}
	return last
}

// IsQueueFreeBetween reports whether no child of parent other than candidate
// itself overlaps the candidate's [Time, Complete) interval
func (o *Order) IsQueueFreeBetween(parent ActionID, candidate Action) bool {
	complete := candidate.Complete()
	for _, child := range o.Children(parent) {
		if child.ID != None && child.ID == candidate.ID {
			continue
		}
		if child.Time >= complete {
			// children are sorted, nothing later can overlap
			return true
		}
		if candidate.Overlaps(child) {
			return false
		}
	}
	return true
}

// HasOverlap returns the first child starting before its predecessor completes
func (o *Order) HasOverlap(parent ActionID) (Action, bool) {
	last := 0
	for _, child := range o.Children(parent) {
		if child.Time < last {
			return child, true
		}
		last = child.Complete()
	}
	return Action{}, false
}

// AddonAt returns the add-on attached to parent at time t according to the
// order alone: add-on creations attach at completion, lifts detach at start,
// lands attach at completion.
func (o *Order) AddonAt(parent ActionID, t Second) *models.Unit {
	var current *models.Unit
	for _, child := range o.Children(parent) {
		if child.Time > t {
			break
		}
		switch child.Kind {
		case KindCreate:
			if child.Unit.IsAddon && child.Complete() <= t {
				current = child.Unit
			}
		case KindLift:
			current = nil
		case KindLand:
			if child.Complete() <= t {
				current = child.Unit
			}
		}
	}
	return current
}

// HasUnitBeforeComplete returns the earliest child start time when it
// precedes the parent's completion
func (o *Order) HasUnitBeforeComplete(parent ActionID) (Second, bool) {
	p, ok := o.arena[parent]
	if !ok {
		return 0, false
	}
	children := o.Children(parent)
	if len(children) == 0 {
		return 0, false
	}
	if first := children[0]; first.Time < p.Complete() {
		return first.Time, true
	}
	return 0, false
}

// Clone returns an independent copy sharing only the read-only catalog
func (o *Order) Clone() *Order {
	c := &Order{
		catalog: o.catalog,
		arena:   make(map[ActionID]Action, len(o.arena)),
		index:   make([]ActionID, len(o.index)),
		nextID:  o.nextID,
	}
	for id, a := range o.arena {
		c.arena[id] = a
	}
	copy(c.index, o.index)
	return c
}
