package models

import (
	"errors"
	"fmt"
)

// ErrUnknownUnit is returned when a name does not resolve to a catalog entry
var ErrUnknownUnit = errors.New("unknown unit")

// Catalog is the read-only name -> definition lookup consumed by the engine.
// Units are kept in registration order so every listing is deterministic.
type Catalog struct {
	units         []*Unit
	byName        map[string]*Unit
	buildableFrom map[string][]*Unit
	upgrades      []*Upgrade
	roles         Roles
}

// NewCatalog validates the definitions and builds the lookup tables
func NewCatalog(units []*Unit, upgrades []*Upgrade, roles Roles) (*Catalog, error) {
	c := &Catalog{
		byName:        make(map[string]*Unit, len(units)),
		buildableFrom: make(map[string][]*Unit, len(units)),
		roles:         roles,
	}

	for _, u := range units {
		if u == nil || u.Name == "" {
			return nil, errors.New("catalog: unit without a name")
		}
		if _, dup := c.byName[u.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate unit %q", u.Name)
		}
		if u.Time <= 0 {
			return nil, fmt.Errorf("catalog: unit %q must have a positive build time", u.Name)
		}
		c.units = append(c.units, u)
		c.byName[u.Name] = u
	}

	for _, u := range c.units {
		if u.Parent != "" {
			if _, ok := c.byName[u.Parent]; !ok {
				return nil, fmt.Errorf("catalog: %q parent %q: %w", u.Name, u.Parent, ErrUnknownUnit)
			}
			c.buildableFrom[u.Parent] = append(c.buildableFrom[u.Parent], u)
		}
		if u.Requirement != "" {
			if _, ok := c.byName[u.Requirement]; !ok {
				return nil, fmt.Errorf("catalog: %q requirement %q: %w", u.Name, u.Requirement, ErrUnknownUnit)
			}
		}
	}

	// Slice instead of map keeps the reported error deterministic
	for _, r := range [][2]string{
		{"main", roles.Main},
		{"harvester", roles.Harvester},
		{"gas", roles.Gas},
		{"orbital", roles.Orbital},
		{"tech_lab", roles.TechLab},
		{"reactor", roles.Reactor},
	} {
		if _, ok := c.byName[r[1]]; !ok {
			return nil, fmt.Errorf("catalog: %s role %q: %w", r[0], r[1], ErrUnknownUnit)
		}
	}

	for _, up := range upgrades {
		if _, ok := c.byName[up.Parent]; !ok {
			return nil, fmt.Errorf("catalog: upgrade %q parent %q: %w", up.DisplayName(), up.Parent, ErrUnknownUnit)
		}
		if up.Requirement != "" {
			if _, ok := c.byName[up.Requirement]; !ok {
				return nil, fmt.Errorf("catalog: upgrade %q requirement %q: %w", up.DisplayName(), up.Requirement, ErrUnknownUnit)
			}
		}
		c.upgrades = append(c.upgrades, up)
	}

	return c, nil
}

// Unit looks up a unit by name
func (c *Catalog) Unit(name string) (*Unit, bool) {
	u, ok := c.byName[name]
	return u, ok
}

// MustUnit looks up a unit by name and panics if it is missing.
// Only meant for role names validated in NewCatalog and for tests.
func (c *Catalog) MustUnit(name string) *Unit {
	u, ok := c.byName[name]
	if !ok {
		panic(fmt.Sprintf("catalog: %q: %v", name, ErrUnknownUnit))
	}
	return u
}

// Units returns all units in registration order
func (c *Catalog) Units() []*Unit {
	out := make([]*Unit, len(c.units))
	copy(out, c.units)
	return out
}

// Upgrades returns all cataloged upgrades
func (c *Catalog) Upgrades() []*Upgrade {
	out := make([]*Upgrade, len(c.upgrades))
	copy(out, c.upgrades)
	return out
}

// Buildings returns the units that are placed without a producing structure
func (c *Catalog) Buildings() []*Unit {
	var out []*Unit
	for _, u := range c.units {
		if u.IsBuilding {
			out = append(out, u)
		}
	}
	return out
}

// Addons returns every add-on unit
func (c *Catalog) Addons() []*Unit {
	var out []*Unit
	for _, u := range c.units {
		if u.IsAddon {
			out = append(out, u)
		}
	}
	return out
}

// BuildableFrom returns what the named structure can produce
func (c *Catalog) BuildableFrom(name string) []*Unit {
	src := c.buildableFrom[name]
	out := make([]*Unit, len(src))
	copy(out, src)
	return out
}

// Roles returns the role names of the catalog
func (c *Catalog) Roles() Roles {
	return c.roles
}

// Main returns the starting structure
func (c *Catalog) Main() *Unit { return c.byName[c.roles.Main] }

// Harvester returns the worker unit
func (c *Catalog) Harvester() *Unit { return c.byName[c.roles.Harvester] }

// GasStructure returns the gas extraction structure
func (c *Catalog) GasStructure() *Unit { return c.byName[c.roles.Gas] }

// Orbital returns the structure granting a flat mineral bonus
func (c *Catalog) Orbital() *Unit { return c.byName[c.roles.Orbital] }

// TechLab returns the add-on required by advanced units
func (c *Catalog) TechLab() *Unit { return c.byName[c.roles.TechLab] }

// Reactor returns the add-on required by doubled production
func (c *Catalog) Reactor() *Unit { return c.byName[c.roles.Reactor] }
