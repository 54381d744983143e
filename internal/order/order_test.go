package order

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/napolitain/buildorder/internal/models"
)

func unit(t *testing.T, c *models.Catalog, name string) *models.Unit {
	t.Helper()
	u, ok := c.Unit(name)
	if !ok {
		t.Fatalf("unit %q not in catalog", name)
	}
	return u
}

func TestAppendKeepsTimeOrder(t *testing.T) {
	c := models.DefaultCatalog()
	o := New(c)

	depot := o.Append(NewCreate(30, unit(t, c, models.SupplyDepot), None, 1))
	scv1 := o.Append(NewCreate(0, unit(t, c, models.SCV), Root, 1))
	rax := o.Append(NewCreate(30, unit(t, c, models.Barracks), None, 1))
	scv2 := o.Append(NewCreate(12, unit(t, c, models.SCV), Root, 1))

	want := []ActionID{scv1, scv2, depot, rax}
	got := o.Actions()
	if len(got) != len(want) {
		t.Fatalf("expected %d actions, got %d", len(want), len(got))
	}
	for i, a := range got {
		if a.ID != want[i] {
			t.Errorf("position %d: expected action %d, got %d (%s)", i, want[i], a.ID, a)
		}
	}

	if o.Root().Complete() != 0 {
		t.Errorf("root should complete at 0, got %d", o.Root().Complete())
	}
	if o.Len() != 4 {
		t.Errorf("Len() = %d, want 4", o.Len())
	}
}

func TestRemoveCascadesToChildren(t *testing.T) {
	c := models.DefaultCatalog()
	o := New(c)

	rax := o.Append(NewCreate(20, unit(t, c, models.Barracks), None, 1))
	o.Append(NewCreate(70, unit(t, c, models.Marine), rax, 1))
	o.Append(NewCreate(90, unit(t, c, models.Marine), rax, 1))
	o.Append(NewLift(110, rax))
	scv := o.Append(NewCreate(0, unit(t, c, models.SCV), Root, 1))

	o.Remove(rax)

	actions := o.Actions()
	if len(actions) != 1 || actions[0].ID != scv {
		t.Errorf("expected only the SCV to remain, got %v", actions)
	}
	if _, ok := o.Get(rax); ok {
		t.Error("removed action still reachable")
	}

	// Root cannot be removed
	o.Remove(Root)
	if _, ok := o.Get(Root); !ok {
		t.Error("root should survive Remove")
	}
}

func TestRemoveLeafKeepsSiblings(t *testing.T) {
	c := models.DefaultCatalog()
	o := New(c)

	rax := o.Append(NewCreate(20, unit(t, c, models.Barracks), None, 1))
	m1 := o.Append(NewCreate(70, unit(t, c, models.Marine), rax, 1))
	m2 := o.Append(NewCreate(90, unit(t, c, models.Marine), rax, 1))

	o.Remove(m1)

	children := o.Children(rax)
	if len(children) != 1 || children[0].ID != m2 {
		t.Errorf("expected only second marine, got %v", children)
	}
}

func TestIsQueueFreeBetween(t *testing.T) {
	c := models.DefaultCatalog()
	o := New(c)
	marine := unit(t, c, models.Marine)

	rax := o.Append(NewCreate(0, unit(t, c, models.Barracks), None, 1))
	first := o.Append(NewCreate(50, marine, rax, 1))  // [50, 68)
	second := o.Append(NewCreate(60, marine, rax, 1)) // [60, 78) overlaps
	third := o.Append(NewCreate(78, marine, rax, 1))  // [78, 96) touches only

	a1, _ := o.Get(first)
	a2, _ := o.Get(second)
	a3, _ := o.Get(third)

	if o.IsQueueFreeBetween(rax, a1) {
		t.Error("first marine overlaps the second")
	}
	if o.IsQueueFreeBetween(rax, a2) {
		t.Error("later-inserted marine must not have a free queue")
	}
	if !o.IsQueueFreeBetween(rax, a3) {
		t.Error("half-open intervals: marine starting at 78 should be free")
	}

	hypothetical := NewCreate(96, marine, rax, 1)
	if !o.IsQueueFreeBetween(rax, hypothetical) {
		t.Error("marine after the queue should be free")
	}

	if _, ok := o.HasOverlap(rax); !ok {
		t.Error("HasOverlap should report the collision")
	}
}

func TestAddonAt(t *testing.T) {
	c := models.DefaultCatalog()
	o := New(c)
	techLab := c.TechLab()
	reactor := c.Reactor()

	rax := o.Append(NewCreate(0, unit(t, c, models.Barracks), None, 1))
	o.Append(NewCreate(46, techLab, rax, 1)) // attaches at 64
	o.Append(NewLift(100, rax))              // detaches at 100
	o.Append(NewLand(120, reactor, rax))     // attaches at 123

	tests := []struct {
		time Second
		want *models.Unit
	}{
		{50, nil},
		{64, techLab},
		{99, techLab},
		{100, nil},
		{122, nil},
		{123, reactor},
		{500, reactor},
	}

	for _, tt := range tests {
		if got := o.AddonAt(rax, tt.time); got != tt.want {
			t.Errorf("AddonAt(%d) = %v, want %v", tt.time, got, tt.want)
		}
	}
}

func TestHasUnitBeforeComplete(t *testing.T) {
	c := models.DefaultCatalog()
	o := New(c)

	rax := o.Append(NewCreate(10, unit(t, c, models.Barracks), None, 1)) // completes at 56
	if _, ok := o.HasUnitBeforeComplete(rax); ok {
		t.Error("no children yet")
	}

	o.Append(NewCreate(60, unit(t, c, models.Marine), rax, 1))
	if _, ok := o.HasUnitBeforeComplete(rax); ok {
		t.Error("marine starts after completion")
	}

	o.Append(NewCreate(40, unit(t, c, models.Marine), rax, 1))
	got, ok := o.HasUnitBeforeComplete(rax)
	if !ok || got != 40 {
		t.Errorf("HasUnitBeforeComplete = (%d, %v), want (40, true)", got, ok)
	}
}

func TestLastActionComplete(t *testing.T) {
	c := models.DefaultCatalog()
	o := New(c)

	rax := o.Append(NewCreate(10, unit(t, c, models.Barracks), None, 1))
	if got := o.LastActionComplete(rax); got != 56 {
		t.Errorf("empty queue should free at completion 56, got %d", got)
	}

	o.Append(NewCreate(60, unit(t, c, models.Marine), rax, 1))
	o.Append(NewLift(78, rax))
	if got := o.LastActionComplete(rax); got != 81 {
		t.Errorf("LastActionComplete = %d, want 81", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := models.DefaultCatalog()
	o := New(c)
	o.Append(NewCreate(0, unit(t, c, models.SCV), Root, 1))

	clone := o.Clone()
	o.Append(NewCreate(12, unit(t, c, models.SCV), Root, 1))

	if clone.Len() != 1 {
		t.Errorf("clone should keep 1 action, got %d", clone.Len())
	}
	if o.Len() != 2 {
		t.Errorf("original should have 2 actions, got %d", o.Len())
	}
}

func openingOrder(t *testing.T) *Order {
	t.Helper()
	c := models.DefaultCatalog()
	o := New(c)

	o.Append(NewCreate(18, unit(t, c, models.SupplyDepot), None, 1))
	o.Append(NewCreate(0, unit(t, c, models.SCV), Root, 1))
	rax := o.Append(NewCreate(40, unit(t, c, models.Barracks), None, 1))
	o.Append(NewCreate(90, unit(t, c, models.Marine), rax, 1))
	o.Append(NewCreate(108, c.Reactor(), rax, 1))
	o.Append(NewCreate(150, unit(t, c, models.Marine), rax, 2))
	o.Append(NewLift(200, rax))
	return o
}

func TestSerializeGolden(t *testing.T) {
	o := openingOrder(t)

	data, err := json.MarshalIndent(o.Serialize(), "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "opening", data)
}

func TestSerializeRoundTrip(t *testing.T) {
	o := openingOrder(t)
	save := o.Serialize()

	if len(save.Creates) != 6 {
		t.Fatalf("lift must not be persisted: got %d creates", len(save.Creates))
	}

	restored, err := FromSave(o.Catalog(), save)
	if err != nil {
		t.Fatalf("FromSave: %v", err)
	}

	before := o.Creates()
	after := restored.Creates()
	if len(before) != len(after) {
		t.Fatalf("create count mismatch: %d vs %d", len(before), len(after))
	}
	for i := range before {
		b, a := before[i], after[i]
		if b.Time != a.Time || b.Unit != a.Unit || b.Count != a.Count {
			t.Errorf("create %d differs: %s vs %s", i, b, a)
		}
	}

	again := restored.Serialize()
	for i := range save.Creates {
		if save.Creates[i] != again.Creates[i] {
			t.Errorf("entry %d changed on second round trip: %+v vs %+v", i, save.Creates[i], again.Creates[i])
		}
	}
}

func TestDeserializeErrors(t *testing.T) {
	c := models.DefaultCatalog()

	tests := []struct {
		name string
		save Save
		want error
	}{
		{
			name: "unknown unit",
			save: Save{Creates: []SavedCreate{{Time: 0, Unit: "Zergling", Parent: ParentNone}}},
			want: models.ErrUnknownUnit,
		},
		{
			name: "self parent",
			save: Save{Creates: []SavedCreate{{Time: 0, Unit: models.Barracks, Parent: 0}}},
			want: ErrBadParent,
		},
		{
			name: "out of range",
			save: Save{Creates: []SavedCreate{{Time: 0, Unit: models.Barracks, Parent: 5}}},
			want: ErrBadParent,
		},
		{
			name: "bad sentinel",
			save: Save{Creates: []SavedCreate{{Time: 0, Unit: models.Barracks, Parent: -3}}},
			want: ErrBadParent,
		},
		{
			name: "negative time",
			save: Save{Creates: []SavedCreate{{Time: -500, Unit: models.SupplyDepot, Parent: ParentNone}}},
			want: ErrBadTime,
		},
		{
			name: "time past the last saved second",
			save: Save{Creates: []SavedCreate{{Time: 1 << 40, Unit: models.SupplyDepot, Parent: ParentNone}}},
			want: ErrBadTime,
		},
		{
			name: "negative count",
			save: Save{Creates: []SavedCreate{{Time: 0, Unit: models.Barracks, Parent: ParentNone, Count: -1}}},
			want: ErrBadCount,
		},
		{
			name: "count above two",
			save: Save{Creates: []SavedCreate{{Time: 0, Unit: models.Barracks, Parent: ParentNone, Count: 1000}}},
			want: ErrBadCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New(c)
			keep := o.Append(NewCreate(0, c.Harvester(), Root, 1))
			err := o.Deserialize(tt.save)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if _, ok := o.Get(keep); !ok {
				t.Error("failed Deserialize must leave the order unchanged")
			}
		})
	}
}

func TestDeserializeTimeBounds(t *testing.T) {
	c := models.DefaultCatalog()
	save := Save{Creates: []SavedCreate{
		{Time: 0, Unit: models.SupplyDepot, Parent: ParentNone},
		{Time: MaxSavedTime, Unit: models.SupplyDepot, Parent: ParentNone},
	}}

	o, err := FromSave(c, save)
	if err != nil {
		t.Fatalf("both bounds are inclusive: %v", err)
	}
	if o.Len() != 2 {
		t.Errorf("expected 2 actions, got %d", o.Len())
	}

	save.Creates[1].Time = MaxSavedTime + 1
	if _, err := FromSave(c, save); !errors.Is(err, ErrBadTime) {
		t.Errorf("expected ErrBadTime, got %v", err)
	}
}

func TestPossibleActions(t *testing.T) {
	c := models.DefaultCatalog()
	o := New(c)
	rax := o.Append(NewCreate(0, c.MustUnit(models.Barracks), None, 1))
	raxAction, _ := o.Get(rax)

	// 4 units, 2 doubled units, 2 add-ons, lift, 2 lands
	if got := len(PossibleActions(c, raxAction)); got != 11 {
		t.Errorf("Barracks: expected 11 factories, got %d", got)
	}

	if got := len(PossibleActions(c, o.Root())); got != 3 {
		t.Errorf("Command Center: expected 3 factories, got %d", got)
	}

	for _, f := range PossibleBuildings(c) {
		if f.Parent != None || !f.Unit.IsBuilding {
			t.Errorf("unexpected building factory %s", f.Label())
		}
	}
}

func TestFactoryNewAction(t *testing.T) {
	c := models.DefaultCatalog()
	marine := c.MustUnit(models.Marine)

	tests := []struct {
		factory  Factory
		kind     Kind
		label    string
		complete Second
	}{
		{CreateFactory(marine, 5, 2), KindCreate, "x2 Marine", 118},
		{LiftFactory(5), KindLift, "Lift", 103},
		{LandFactory(c.TechLab(), 5), KindLand, "Land Tech Lab", 103},
	}

	for _, tt := range tests {
		a := tt.factory.NewAction(100)
		if a.Kind != tt.kind || a.Parent != 5 {
			t.Errorf("%s: unexpected action %+v", tt.label, a)
		}
		if tt.factory.Label() != tt.label || a.Label() != tt.label {
			t.Errorf("label = %q / %q, want %q", tt.factory.Label(), a.Label(), tt.label)
		}
		if a.Complete() != tt.complete {
			t.Errorf("%s: complete = %d, want %d", tt.label, a.Complete(), tt.complete)
		}
	}
}
