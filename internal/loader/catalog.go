// Package loader reads and writes catalog and order files
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/napolitain/buildorder/internal/models"
)

// ErrUnsupportedFormat is returned for file extensions the loader cannot read
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format is a serialization format selected from a file extension
type Format string

const (
	FormatTOML  Format = "toml"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatProto Format = "pb"
)

// FormatOf returns the format matching the path's extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".pb":
		return FormatProto, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// CatalogFile is the on-disk shape of a catalog
type CatalogFile struct {
	Main      string `json:"main" toml:"main" yaml:"main"`
	Harvester string `json:"harvester" toml:"harvester" yaml:"harvester"`
	Gas       string `json:"gas" toml:"gas" yaml:"gas"`
	Orbital   string `json:"orbital" toml:"orbital" yaml:"orbital"`
	TechLab   string `json:"tech_lab" toml:"tech_lab" yaml:"tech_lab"`
	Reactor   string `json:"reactor" toml:"reactor" yaml:"reactor"`

	Units    []*models.Unit    `json:"units" toml:"units" yaml:"units"`
	Upgrades []*models.Upgrade `json:"upgrades,omitempty" toml:"upgrades,omitempty" yaml:"upgrades,omitempty"`
}

func (f CatalogFile) roles() models.Roles {
	return models.Roles{
		Main:      f.Main,
		Harvester: f.Harvester,
		Gas:       f.Gas,
		Orbital:   f.Orbital,
		TechLab:   f.TechLab,
		Reactor:   f.Reactor,
	}
}

// NewCatalogFile returns the on-disk shape of an existing catalog
func NewCatalogFile(c *models.Catalog) CatalogFile {
	roles := c.Roles()
	return CatalogFile{
		Main:      roles.Main,
		Harvester: roles.Harvester,
		Gas:       roles.Gas,
		Orbital:   roles.Orbital,
		TechLab:   roles.TechLab,
		Reactor:   roles.Reactor,
		Units:     c.Units(),
		Upgrades:  c.Upgrades(),
	}
}

// LoadCatalog loads and validates a catalog file
func LoadCatalog(path string) (*models.Catalog, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := ParseCatalog(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// ParseCatalog decodes and validates catalog data
func ParseCatalog(data []byte, format Format) (*models.Catalog, error) {
	var file CatalogFile
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatJSON:
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("catalog as %q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return models.NewCatalog(file.Units, file.Upgrades, file.roles())
}

// EncodeCatalog serializes a catalog in the given format
func EncodeCatalog(c *models.Catalog, format Format) ([]byte, error) {
	file := NewCatalogFile(c)
	switch format {
	case FormatTOML:
		return toml.Marshal(file)
	case FormatYAML:
		return yaml.Marshal(file)
	case FormatJSON:
		return json.MarshalIndent(file, "", "  ")
	default:
		return nil, fmt.Errorf("catalog as %q: %w", format, ErrUnsupportedFormat)
	}
}

// CatalogOrDefault loads the catalog at path, or returns the built-in one
// when path is empty
func CatalogOrDefault(path string) (*models.Catalog, error) {
	if path == "" {
		return models.DefaultCatalog(), nil
	}
	return LoadCatalog(path)
}
