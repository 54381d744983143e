package order

import (
	"fmt"

	"github.com/napolitain/buildorder/internal/models"
)

// Factory describes a prospective action before a time is chosen for it
type Factory struct {
	Kind   Kind
	Unit   *models.Unit // unit to create, or add-on to land
	Parent ActionID
	Count  int
}

// CreateFactory returns a factory for count units produced by parent
func CreateFactory(unit *models.Unit, parent ActionID, count int) Factory {
	if count < 1 {
		count = 1
	}
	return Factory{Kind: KindCreate, Unit: unit, Parent: parent, Count: count}
}

// LiftFactory returns a factory lifting the parent structure
func LiftFactory(parent ActionID) Factory {
	return Factory{Kind: KindLift, Parent: parent, Count: 1}
}

// LandFactory returns a factory landing the parent structure on addon
func LandFactory(addon *models.Unit, parent ActionID) Factory {
	return Factory{Kind: KindLand, Unit: addon, Parent: parent, Count: 1}
}

// NewAction instantiates the factory at time t
func (f Factory) NewAction(t Second) Action {
	switch f.Kind {
	case KindLift:
		return NewLift(t, f.Parent)
	case KindLand:
		return NewLand(t, f.Unit, f.Parent)
	default:
		return NewCreate(t, f.Unit, f.Parent, f.Count)
	}
}

// Label returns the display label of the factory
func (f Factory) Label() string {
	switch f.Kind {
	case KindLift:
		return "Lift"
	case KindLand:
		return "Land " + f.Unit.Name
	default:
		if f.Count != 1 {
			return fmt.Sprintf("x%d %s", f.Count, f.Unit.Name)
		}
		return f.Unit.Name
	}
}

// PossibleBuildings returns a factory for every structure that can be placed
// without a producing parent
func PossibleBuildings(catalog *models.Catalog) []Factory {
	var out []Factory
	for _, u := range catalog.Buildings() {
		out = append(out, CreateFactory(u, None, 1))
	}
	return out
}

// PossibleActions returns what the given structure can do: produce units,
// produce two at once behind a reactor, build add-ons, lift and land
func PossibleActions(catalog *models.Catalog, parent Action) []Factory {
	var out []Factory
	buildables := catalog.BuildableFrom(parent.Unit.Name)
	for _, u := range buildables {
		out = append(out, CreateFactory(u, parent.ID, 1))
	}

	if !parent.Unit.IsAddable {
		return out
	}

	for _, u := range buildables {
		if !u.IsAdvanced {
			out = append(out, CreateFactory(u, parent.ID, 2))
		}
	}
	for _, addon := range catalog.Addons() {
		out = append(out, CreateFactory(addon, parent.ID, 1))
	}
	out = append(out, LiftFactory(parent.ID))
	for _, addon := range catalog.Addons() {
		out = append(out, LandFactory(addon, parent.ID))
	}
	return out
}
