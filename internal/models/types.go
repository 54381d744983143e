package models

import "fmt"

// Unit is an immutable catalog entry for anything that can be produced:
// workers, army units, structures and add-ons.
type Unit struct {
	Name    string `json:"name" toml:"name" yaml:"name"`
	Mineral int    `json:"mineral" toml:"mineral" yaml:"mineral"`
	Gas     int    `json:"gas" toml:"gas" yaml:"gas"`
	Time    int    `json:"time" toml:"time" yaml:"time"` // build time in seconds

	// Supply is positive for units consuming supply and negative for
	// structures raising the supply cap.
	Supply int `json:"supply" toml:"supply" yaml:"supply"`

	IsBuilding bool `json:"building,omitempty" toml:"building,omitempty" yaml:"building,omitempty"`
	IsAddon    bool `json:"addon,omitempty" toml:"addon,omitempty" yaml:"addon,omitempty"`
	IsAdvanced bool `json:"advanced,omitempty" toml:"advanced,omitempty" yaml:"advanced,omitempty"`
	IsAddable  bool `json:"addable,omitempty" toml:"addable,omitempty" yaml:"addable,omitempty"`

	Parent      string `json:"parent,omitempty" toml:"parent,omitempty" yaml:"parent,omitempty"`           // producing structure
	Requirement string `json:"requirement,omitempty" toml:"requirement,omitempty" yaml:"requirement,omitempty"` // prerequisite structure
}

// HasRequirement reports whether the unit needs a prerequisite structure
func (u *Unit) HasRequirement() bool {
	return u.Requirement != ""
}

func (u *Unit) String() string {
	return u.Name
}

// Upgrade is a research item. Upgrades are cataloged but never simulated.
type Upgrade struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Mineral     int    `json:"mineral" toml:"mineral" yaml:"mineral"`
	Gas         int    `json:"gas" toml:"gas" yaml:"gas"`
	Time        int    `json:"time" toml:"time" yaml:"time"`
	Parent      string `json:"parent" toml:"parent" yaml:"parent"`
	Requirement string `json:"requirement,omitempty" toml:"requirement,omitempty" yaml:"requirement,omitempty"`
	Level       int    `json:"level,omitempty" toml:"level,omitempty" yaml:"level,omitempty"` // 0 when not levelable
}

// DisplayName returns the upgrade name with its level suffix
func (u *Upgrade) DisplayName() string {
	if u.Level > 0 {
		return fmt.Sprintf("%s Level %d", u.Name, u.Level)
	}
	return u.Name
}

// Roles names the catalog entries the simulator treats specially
type Roles struct {
	Main      string `json:"main" toml:"main" yaml:"main"`                // starting structure
	Harvester string `json:"harvester" toml:"harvester" yaml:"harvester"` // resource gatherer
	Gas       string `json:"gas" toml:"gas" yaml:"gas"`                   // gas extraction structure
	Orbital   string `json:"orbital" toml:"orbital" yaml:"orbital"`       // flat mineral bonus
	TechLab   string `json:"tech_lab" toml:"tech_lab" yaml:"tech_lab"`    // required by advanced units
	Reactor   string `json:"reactor" toml:"reactor" yaml:"reactor"`       // required by doubled production
}
