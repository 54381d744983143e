// Package simulation replays a build order second by second against the
// economy and validates the result.
package simulation

import (
	"errors"

	"github.com/napolitain/buildorder/internal/models"
	"github.com/napolitain/buildorder/internal/order"
)

// ErrAlreadyRun is returned when Run is called twice on the same Simulation
var ErrAlreadyRun = errors.New("simulation already run")

// Simulation is a single-use replay of an order
type Simulation struct {
	order   *order.Order
	catalog *models.Catalog
	economy Economy

	events   *EventQueue
	entities []Entity
	queue    []order.Action
	errors   []Invalid

	mineral float64
	gas     float64
	supply  Supply

	alreadyRun bool
}

// New prepares a simulation of o with the default economy
func New(o *order.Order) *Simulation {
	return NewWithEconomy(o, DefaultEconomy())
}

// NewWithEconomy prepares a simulation of o. The order is cloned so later
// edits do not affect the run or its result.
func NewWithEconomy(o *order.Order, economy Economy) *Simulation {
	snapshot := o.Clone()
	catalog := snapshot.Catalog()

	s := &Simulation{
		order:   snapshot,
		catalog: catalog,
		economy: economy,
		events:  NewEventQueue(),
		mineral: economy.StartMineral,
		gas:     economy.StartGas,
	}

	// Completes are pushed in time-store order as well, so same-second
	// completes keep that order after the priority split
	for _, a := range snapshot.Actions() {
		s.events.Push(Event{Time: a.Time, Type: EventStart, Action: a.ID})
		s.events.Push(Event{Time: a.Complete(), Type: EventComplete, Action: a.ID})
	}

	for range economy.StartHarvesters {
		s.entities = append(s.entities, Entity{Unit: catalog.Harvester(), Create: order.None})
	}
	s.entities = append(s.entities, Entity{Unit: catalog.Main(), Create: order.Root})
	s.supply = s.computeSupply()

	return s
}

func (s *Simulation) computeSupply() Supply {
	var sup Supply
	for _, e := range s.entities {
		switch {
		case e.Unit.Supply > 0:
			sup.Current += e.Unit.Supply
		case e.Unit.Supply < 0:
			sup.Max -= e.Unit.Supply
		}
	}
	return sup
}

// entity returns the live entity produced by create, or nil. Seed
// harvesters carry None and are never a parent.
func (s *Simulation) entity(create order.ActionID) *Entity {
	if create == order.None {
		return nil
	}
	for i := range s.entities {
		if s.entities[i].Create == create {
			return &s.entities[i]
		}
	}
	return nil
}

func (s *Simulation) count(u *models.Unit) int {
	n := 0
	for _, e := range s.entities {
		if e.Unit == u {
			n++
		}
	}
	return n
}

// Run replays the order over the full horizon and returns its result
func (s *Simulation) Run() (*Result, error) {
	if s.alreadyRun {
		return nil, ErrAlreadyRun
	}
	s.alreadyRun = true

	maxTime := s.economy.Horizon(s.order.LatestComplete())
	result := &Result{
		MaxTime:  maxTime,
		Instants: make([]Instant, 0, maxTime+1),
		Order:    s.order,
		Economy:  s.economy,
	}

	for t := 0; t <= maxTime; t++ {
		for _, ev := range s.events.PopDue(t) {
			s.apply(ev)
		}
		s.accrue()
		result.Instants = append(result.Instants, newInstant(t, s.mineral, s.gas, s.supply, s.entities, s.queue))
	}

	result.Errors = append([]Invalid(nil), s.errors...)
	return result, nil
}

func (s *Simulation) apply(ev Event) {
	a, ok := s.order.Get(ev.Action)
	if !ok {
		return
	}

	switch a.Kind {
	case order.KindCreate:
		if ev.Type == EventStart {
			s.startCreate(a)
		} else {
			s.completeCreate(a)
		}
	case order.KindLift:
		if ev.Type == EventStart {
			s.startLift(a)
		}
	case order.KindLand:
		if ev.Type == EventComplete {
			s.completeLand(a)
		}
	}
}

func (s *Simulation) startCreate(a order.Action) {
	for range a.Count {
		s.mineral -= float64(a.Unit.Mineral)
		s.gas -= float64(a.Unit.Gas)
		if a.Unit.Supply > 0 {
			s.supply.Current += a.Unit.Supply
		}
	}
	s.queue = append(s.queue, a)
}

func (s *Simulation) completeCreate(a order.Action) {
	for range a.Count {
		if a.Unit.Supply < 0 {
			s.supply.Max -= a.Unit.Supply
		}

		if a.Unit.IsAddon {
			if facility := s.entity(a.Parent); facility != nil {
				if facility.Addon == nil {
					facility.Addon = a.Unit
				} else {
					s.errors = append(s.errors, Invalid{Kind: DuplicateAddon, Action: a, Addon: a.Unit})
				}
			}
		}

		s.entities = append(s.entities, Entity{Unit: a.Unit, Create: a.ID})
	}

	kept := s.queue[:0]
	for _, q := range s.queue {
		if q.ID != a.ID {
			kept = append(kept, q)
		}
	}
	s.queue = kept
}

func (s *Simulation) startLift(a order.Action) {
	building := s.entity(a.Parent)
	if building == nil || building.Addon == nil {
		s.errors = append(s.errors, Invalid{Kind: LiftWithoutAddon, Action: a})
		return
	}
	building.Addon = nil
}

func (s *Simulation) completeLand(a order.Action) {
	building := s.entity(a.Parent)
	if building == nil {
		return
	}
	if building.Addon != nil {
		s.errors = append(s.errors, Invalid{Kind: DuplicateAddon, Action: a, Addon: a.Unit})
		return
	}
	building.Addon = a.Unit
}

func (s *Simulation) accrue() {
	harvesters := s.count(s.catalog.Harvester())
	refineries := s.count(s.catalog.GasStructure())
	orbitals := s.count(s.catalog.Orbital())

	inGas := min(refineries*s.economy.HarvestersPerGas, harvesters)
	s.mineral += s.economy.MineralRate(harvesters-inGas, orbitals)
	s.gas += s.economy.GasRate(inGas)
}

// Evaluate runs a fresh simulation of o and validates the result
func Evaluate(o *order.Order, economy Economy) (*Result, *Analysis, error) {
	result, err := NewWithEconomy(o, economy).Run()
	if err != nil {
		return nil, nil, err
	}
	return result, Analyze(result), nil
}
