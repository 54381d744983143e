package models

import (
	"errors"
	"testing"
)

func TestDefaultCatalogRoles(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		name string
		got  *Unit
		want string
	}{
		{"Main", c.Main(), CommandCenter},
		{"Harvester", c.Harvester(), SCV},
		{"GasStructure", c.GasStructure(), Refinery},
		{"Orbital", c.Orbital(), OrbitalCommand},
		{"TechLab", c.TechLab(), TechLab},
		{"Reactor", c.Reactor(), Reactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got == nil || tt.got.Name != tt.want {
				t.Errorf("%s = %v, want %s", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestUnitCosts(t *testing.T) {
	// From https://liquipedia.net/starcraft2/Unit_Statistics_(Legacy_of_the_Void)
	expected := map[string][4]int{
		SCV:           {50, 0, 12, 1},
		Marine:        {50, 0, 18, 1},
		Marauder:      {100, 25, 21, 2},
		CommandCenter: {400, 0, 71, -15},
		SupplyDepot:   {100, 0, 21, -8},
		Barracks:      {150, 0, 46, 0},
		TechLab:       {50, 25, 18, 0},
		Reactor:       {50, 50, 36, 0},
	}

	c := DefaultCatalog()
	for name, want := range expected {
		u, ok := c.Unit(name)
		if !ok {
			t.Errorf("No definition found for %s", name)
			continue
		}
		got := [4]int{u.Mineral, u.Gas, u.Time, u.Supply}
		if got != want {
			t.Errorf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func TestBuildableFrom(t *testing.T) {
	c := DefaultCatalog()

	fromBarracks := c.BuildableFrom(Barracks)
	names := make(map[string]bool)
	for _, u := range fromBarracks {
		names[u.Name] = true
	}
	for _, want := range []string{Marine, Marauder, "Reaper", Ghost} {
		if !names[want] {
			t.Errorf("Barracks should produce %s", want)
		}
	}

	fromCC := c.BuildableFrom(CommandCenter)
	if len(fromCC) != 3 {
		t.Errorf("Command Center should produce 3 entries, got %d", len(fromCC))
	}

	if got := c.BuildableFrom(SupplyDepot); len(got) != 0 {
		t.Errorf("Supply Depot should produce nothing, got %v", got)
	}
}

func TestBuildingsAndAddons(t *testing.T) {
	c := DefaultCatalog()

	for _, u := range c.Buildings() {
		if u.Parent != "" {
			t.Errorf("building %s should not have a parent", u.Name)
		}
	}

	addons := c.Addons()
	if len(addons) != 2 {
		t.Fatalf("expected 2 add-ons, got %d", len(addons))
	}
	if addons[0].Name != TechLab || addons[1].Name != Reactor {
		t.Errorf("unexpected add-on order: %v", addons)
	}
}

func TestUpgradeDisplayName(t *testing.T) {
	up := &Upgrade{Name: "Infantry Weapons", Level: 2}
	if got := up.DisplayName(); got != "Infantry Weapons Level 2" {
		t.Errorf("DisplayName() = %q", got)
	}
	plain := &Upgrade{Name: "Smart Servos"}
	if got := plain.DisplayName(); got != "Smart Servos" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	roles := DefaultRoles()

	t.Run("duplicate", func(t *testing.T) {
		units := append(TerranUnits(), &Unit{Name: SCV, Time: 1})
		if _, err := NewCatalog(units, nil, roles); err == nil {
			t.Error("expected duplicate name error")
		}
	})

	t.Run("unknown parent", func(t *testing.T) {
		units := append(TerranUnits(), &Unit{Name: "Hercules", Time: 10, Parent: "Nowhere"})
		_, err := NewCatalog(units, nil, roles)
		if !errors.Is(err, ErrUnknownUnit) {
			t.Errorf("expected ErrUnknownUnit, got %v", err)
		}
	})

	t.Run("zero build time", func(t *testing.T) {
		units := append(TerranUnits(), &Unit{Name: "Instant", Time: 0})
		if _, err := NewCatalog(units, nil, roles); err == nil {
			t.Error("expected build time error")
		}
	})

	t.Run("missing role", func(t *testing.T) {
		bad := roles
		bad.Reactor = "Nuclear Reactor"
		_, err := NewCatalog(TerranUnits(), nil, bad)
		if !errors.Is(err, ErrUnknownUnit) {
			t.Errorf("expected ErrUnknownUnit, got %v", err)
		}
	})

	t.Run("upgrade parent", func(t *testing.T) {
		ups := []*Upgrade{{Name: "Stim", Parent: "Lab", Time: 100}}
		if _, err := NewCatalog(TerranUnits(), ups, roles); err == nil {
			t.Error("expected upgrade parent error")
		}
	})
}
