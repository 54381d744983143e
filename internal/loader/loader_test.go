package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/buildorder/internal/models"
	"github.com/napolitain/buildorder/internal/order"
)

func TestShippedCatalogMatchesDefault(t *testing.T) {
	loaded, err := LoadCatalog("../../data/terran.toml")
	require.NoError(t, err)

	def := models.DefaultCatalog()
	assert.Equal(t, def.Roles(), loaded.Roles())

	want, got := def.Units(), loaded.Units()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, *want[i], *got[i], "unit %d", i)
	}

	wantUp, gotUp := def.Upgrades(), loaded.Upgrades()
	require.Len(t, gotUp, len(wantUp))
	for i := range wantUp {
		assert.Equal(t, *wantUp[i], *gotUp[i], "upgrade %d", i)
	}
}

func TestCatalogEncodeRoundTrip(t *testing.T) {
	def := models.DefaultCatalog()

	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := EncodeCatalog(def, format)
			require.NoError(t, err)

			back, err := ParseCatalog(data, format)
			require.NoError(t, err)
			assert.Len(t, back.Units(), len(def.Units()))
			assert.Len(t, back.Upgrades(), len(def.Upgrades()))

			marauder, ok := back.Unit(models.Marauder)
			require.True(t, ok)
			assert.True(t, marauder.IsAdvanced)
			assert.Equal(t, 25, marauder.Gas)
		})
	}
}

func TestLoadCatalogYAML(t *testing.T) {
	c, err := LoadCatalog("testdata/mini.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Nexus", c.Main().Name)
	assert.Equal(t, "Probe", c.Harvester().Name)
	assert.Len(t, c.Addons(), 2)
	assert.Len(t, c.BuildableFrom("Gateway"), 1)
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog("testdata/catalog.xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadCatalog("testdata/missing.toml")
	assert.Error(t, err)

	_, err = ParseCatalog([]byte(`main = "Nowhere"`), FormatTOML)
	assert.ErrorIs(t, err, models.ErrUnknownUnit)

	_, err = ParseCatalog([]byte(`units = [`), FormatTOML)
	assert.Error(t, err)

	_, err = ParseCatalog(nil, FormatProto)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCatalogOrDefault(t *testing.T) {
	c, err := CatalogOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, models.CommandCenter, c.Main().Name)
}

func TestLoadOrder(t *testing.T) {
	c := models.DefaultCatalog()
	o, err := LoadOrder("testdata/opening.json", c)
	require.NoError(t, err)

	assert.Equal(t, 7, o.Len())
	creates := o.Creates()
	assert.Equal(t, models.Barracks, creates[3].Unit.Name)

	marines := creates[6]
	assert.Equal(t, 2, marines.Count)
	assert.Equal(t, creates[3].ID, marines.Parent)

	_, err = LoadOrder("testdata/bad_parent.json", c)
	assert.ErrorIs(t, err, order.ErrBadParent)
}

func TestShippedExamplesLoad(t *testing.T) {
	paths, err := filepath.Glob("../../examples/*.json")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	c := models.DefaultCatalog()
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			save, err := ReadSave(path)
			require.NoError(t, err)
			o, err := order.FromSave(c, save)
			require.NoError(t, err)
			assert.Equal(t, save, o.Serialize(), "examples are stored in serialized form")
		})
	}
}

func TestWriteSaveRoundTrip(t *testing.T) {
	save, err := ReadSave("testdata/opening.json")
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"opening.json", "opening.pb"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteSave(path, save))

			back, err := ReadSave(path)
			require.NoError(t, err)
			assert.Equal(t, save, back)
		})
	}

	err = WriteSave(filepath.Join(dir, "opening.txt"), save)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadSaveCorruptProto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pb")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xff, 0xff}, 0o644))

	_, err := ReadSave(path)
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.toml", FormatTOML},
		{"a.YAML", FormatYAML},
		{"a.yml", FormatYAML},
		{"dir/a.json", FormatJSON},
		{"a.pb", FormatProto},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.path)
	}
}
