package simulation

import (
	"github.com/napolitain/buildorder/internal/models"
	"github.com/napolitain/buildorder/internal/order"
)

// Entity is a live unit or structure. Entities are never destroyed; only the
// attached add-on changes.
type Entity struct {
	Unit   *models.Unit
	Create order.ActionID // producing action, None for seed harvesters
	Addon  *models.Unit
}

// Supply tracks used and available supply
type Supply struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Instant is the immutable economic snapshot at the end of one second
type Instant struct {
	Time     order.Second
	Mineral  float64
	Gas      float64
	Supply   Supply
	Entities []Entity
	Queue    []order.Action // started, not yet completed creates
}

func newInstant(t order.Second, mineral, gas float64, supply Supply, entities []Entity, queue []order.Action) Instant {
	in := Instant{
		Time:     t,
		Mineral:  mineral,
		Gas:      gas,
		Supply:   supply,
		Entities: make([]Entity, len(entities)),
		Queue:    make([]order.Action, len(queue)),
	}
	copy(in.Entities, entities)
	copy(in.Queue, queue)
	return in
}

// IsPossible reports whether no resource is in deficit
func (in Instant) IsPossible() bool {
	return in.Mineral >= 0 && in.Gas >= 0 && in.Supply.Current <= in.Supply.Max
}

// Entity returns the first entity produced by the given create action
func (in Instant) Entity(create order.ActionID) (Entity, bool) {
	for _, e := range in.Entities {
		if e.Create == create {
			return e, true
		}
	}
	return Entity{}, false
}

// CountUnit returns how many live entities are of the given unit
func (in Instant) CountUnit(u *models.Unit) int {
	n := 0
	for _, e := range in.Entities {
		if e.Unit == u {
			n++
		}
	}
	return n
}

// HasUnit reports whether at least one live entity is of the given unit
func (in Instant) HasUnit(u *models.Unit) bool {
	for _, e := range in.Entities {
		if e.Unit == u {
			return true
		}
	}
	return false
}

// CountAttached returns how many entities carry the given add-on
func (in Instant) CountAttached(addon *models.Unit) int {
	n := 0
	for _, e := range in.Entities {
		if e.Addon == addon {
			n++
		}
	}
	return n
}

// Queued returns how many started creates of the given unit are in production
func (in Instant) Queued(u *models.Unit) int {
	n := 0
	for _, a := range in.Queue {
		if a.Unit == u {
			n++
		}
	}
	return n
}
