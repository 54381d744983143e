// Package planner answers validation and scheduling queries over saved
// orders. It is the shared backend of the CLI and the gRPC/HTTP server.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/napolitain/buildorder/internal/converter"
	"github.com/napolitain/buildorder/internal/models"
	"github.com/napolitain/buildorder/internal/order"
	"github.com/napolitain/buildorder/internal/simulation"
)

// ErrInvalidRequest wraps every error caused by the caller's input
var ErrInvalidRequest = errors.New("invalid request")

// Planner evaluates orders against one catalog and economy
type Planner struct {
	catalog *models.Catalog
	economy simulation.Economy
	logger  *slog.Logger
}

// New creates a planner
func New(catalog *models.Catalog, economy simulation.Economy, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{catalog: catalog, economy: economy, logger: logger}
}

// Catalog returns the planner's catalog
func (p *Planner) Catalog() *models.Catalog {
	return p.catalog
}

// Economy returns the planner's economy constants
func (p *Planner) Economy() simulation.Economy {
	return p.economy
}

// Load builds an order from a save
func (p *Planner) Load(save order.Save) (*order.Order, error) {
	o, err := order.FromSave(p.catalog, save)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return o, nil
}

// Evaluate simulates and validates an order
func (p *Planner) Evaluate(o *order.Order) (*simulation.Result, *simulation.Analysis, error) {
	start := time.Now()
	result, analysis, err := simulation.Evaluate(o, p.economy)
	if err != nil {
		return nil, nil, err
	}
	p.logger.Debug("order evaluated",
		"actions", o.Len(),
		"horizon", result.MaxTime,
		"violations", len(analysis.Errors),
		"elapsed", time.Since(start))
	return result, analysis, nil
}

// Analyze validates a saved order and flattens the outcome
func (p *Planner) Analyze(ctx context.Context, save order.Save) (converter.Report, error) {
	if err := ctx.Err(); err != nil {
		return converter.Report{}, err
	}
	o, err := p.Load(save)
	if err != nil {
		return converter.Report{}, err
	}
	result, analysis, err := p.Evaluate(o)
	if err != nil {
		return converter.Report{}, err
	}
	return converter.NewReport(result, analysis), nil
}

// Quickest returns the earliest legal start of a prospective create
func (p *Planner) Quickest(ctx context.Context, req converter.QuickestRequest) (converter.QuickestReply, error) {
	if err := ctx.Err(); err != nil {
		return converter.QuickestReply{}, err
	}
	o, err := p.Load(req.Order)
	if err != nil {
		return converter.QuickestReply{}, err
	}
	f, err := p.Factory(o, req.Unit, req.Parent, req.Count)
	if err != nil {
		return converter.QuickestReply{}, err
	}

	result, err := simulation.NewWithEconomy(o, p.economy).Run()
	if err != nil {
		return converter.QuickestReply{}, err
	}
	t, err := result.FindQuickestPossibleAction(f, o)
	if err != nil {
		return converter.QuickestReply{}, err
	}
	p.logger.Debug("quickest time", "action", f.Label(), "time", t)
	return converter.NewQuickestReply(t), nil
}

// Factory builds a create factory for unit produced by the create at
// position parent (save encoding) and checks that the pairing is legal
func (p *Planner) Factory(o *order.Order, unitName string, parent, count int) (order.Factory, error) {
	unit, ok := p.catalog.Unit(unitName)
	if !ok {
		return order.Factory{}, fmt.Errorf("%w: %q: %w", ErrInvalidRequest, unitName, models.ErrUnknownUnit)
	}
	if count < 0 || count > 2 {
		return order.Factory{}, fmt.Errorf("%w: count %d: %w", ErrInvalidRequest, count, order.ErrBadCount)
	}
	id, err := ResolveParent(o, parent)
	if err != nil {
		return order.Factory{}, err
	}

	if id == order.None {
		if !unit.IsBuilding || unit.IsAddon {
			return order.Factory{}, fmt.Errorf("%w: %s needs a producing structure", ErrInvalidRequest, unit.Name)
		}
		return order.CreateFactory(unit, id, count), nil
	}

	producer, _ := o.Get(id)
	if !canProduce(p.catalog, producer.Unit, unit) {
		return order.Factory{}, fmt.Errorf("%w: %s cannot produce %s", ErrInvalidRequest, producer.Unit.Name, unit.Name)
	}
	return order.CreateFactory(unit, id, count), nil
}

func canProduce(c *models.Catalog, producer, unit *models.Unit) bool {
	if unit.IsAddon {
		return producer.IsAddable
	}
	for _, u := range c.BuildableFrom(producer.Name) {
		if u == unit {
			return true
		}
	}
	return false
}

// ResolveParent maps a save-format parent index onto an action handle.
// Non-negative indices count Create actions in time order, as Serialize
// emits them.
func ResolveParent(o *order.Order, parent int) (order.ActionID, error) {
	switch parent {
	case order.ParentNone:
		return order.None, nil
	case order.ParentRoot:
		return order.Root, nil
	}
	creates := o.Creates()
	if parent < 0 || parent >= len(creates) {
		return order.None, fmt.Errorf("%w: parent %d: %w", ErrInvalidRequest, parent, order.ErrBadParent)
	}
	return creates[parent].ID, nil
}
