package models

// Well-known catalog names
const (
	CommandCenter  = "Command Center"
	OrbitalCommand = "Orbital Command"
	SCV            = "SCV"
	Refinery       = "Refinery"
	SupplyDepot    = "Supply Depot"
	Barracks       = "Barracks"
	Factory        = "Factory"
	Starport       = "Starport"
	EngineeringBay = "Engineering Bay"
	Armory         = "Armory"
	TechLab        = "Tech Lab"
	Reactor        = "Reactor"
	Marine         = "Marine"
	Marauder       = "Marauder"
	Ghost          = "Ghost"
	GhostAcademy   = "Ghost Academy"
)

// DefaultRoles returns the Terran role names
func DefaultRoles() Roles {
	return Roles{
		Main:      CommandCenter,
		Harvester: SCV,
		Gas:       Refinery,
		Orbital:   OrbitalCommand,
		TechLab:   TechLab,
		Reactor:   Reactor,
	}
}

// TerranUnits returns the Terran unit and structure definitions
// (Legacy of the Void statistics)
func TerranUnits() []*Unit {
	return []*Unit{
		// Units
		{Name: SCV, Mineral: 50, Time: 12, Supply: 1, Parent: CommandCenter},
		{Name: Marine, Mineral: 50, Time: 18, Supply: 1, Parent: Barracks},
		{Name: Marauder, Mineral: 100, Gas: 25, Time: 21, Supply: 2, Parent: Barracks, IsAdvanced: true},
		{Name: "Reaper", Mineral: 50, Gas: 50, Time: 32, Supply: 1, Parent: Barracks},
		{Name: Ghost, Mineral: 150, Gas: 125, Time: 29, Supply: 2, Parent: Barracks, Requirement: GhostAcademy, IsAdvanced: true},
		{Name: "Hellion", Mineral: 100, Time: 21, Supply: 2, Parent: Factory},
		{Name: "Widow Mine", Mineral: 75, Gas: 25, Time: 21, Supply: 2, Parent: Factory},
		{Name: "Siege Tank", Mineral: 150, Gas: 125, Time: 32, Supply: 3, Parent: Factory, IsAdvanced: true},
		{Name: "Thor", Mineral: 300, Gas: 200, Time: 43, Supply: 6, Parent: Factory, Requirement: Armory, IsAdvanced: true},
		{Name: "Viking", Mineral: 150, Gas: 75, Time: 30, Supply: 2, Parent: Starport},
		{Name: "Medivac", Mineral: 100, Gas: 100, Time: 30, Supply: 2, Parent: Starport},
		{Name: "Liberator", Mineral: 150, Gas: 150, Time: 43, Supply: 3, Parent: Starport},
		{Name: "Banshee", Mineral: 150, Gas: 100, Time: 43, Supply: 3, Parent: Starport, IsAdvanced: true},
		{Name: "Raven", Mineral: 100, Gas: 200, Time: 43, Supply: 2, Parent: Starport, IsAdvanced: true},
		{Name: "Battlecruiser", Mineral: 400, Gas: 300, Time: 64, Supply: 6, Parent: Starport, Requirement: "Fusion Core", IsAdvanced: true},

		// Structures
		{Name: CommandCenter, Mineral: 400, Time: 71, Supply: -15, IsBuilding: true},
		{Name: OrbitalCommand, Mineral: 150, Time: 25, Parent: CommandCenter, Requirement: Barracks},
		{Name: "Planetary Fortress", Mineral: 150, Gas: 150, Time: 36, Parent: CommandCenter},
		{Name: SupplyDepot, Mineral: 100, Time: 21, Supply: -8, IsBuilding: true},
		{Name: Refinery, Mineral: 75, Time: 21, IsBuilding: true},
		{Name: Barracks, Mineral: 150, Time: 46, IsBuilding: true, Requirement: SupplyDepot, IsAddable: true},
		{Name: EngineeringBay, Mineral: 125, Time: 25, IsBuilding: true},
		{Name: "Bunker", Mineral: 100, Time: 29, IsBuilding: true, Requirement: Barracks},
		{Name: "Missile Turret", Mineral: 100, Time: 18, IsBuilding: true, Requirement: EngineeringBay},
		{Name: "Sensor Tower", Mineral: 125, Gas: 100, Time: 18, IsBuilding: true, Requirement: EngineeringBay},
		{Name: Factory, Mineral: 150, Gas: 100, Time: 43, IsBuilding: true, Requirement: Barracks, IsAddable: true},
		{Name: GhostAcademy, Mineral: 150, Gas: 50, Time: 29, IsBuilding: true, Requirement: Barracks},
		{Name: Armory, Mineral: 150, Gas: 100, Time: 46, IsBuilding: true, Requirement: Factory},
		{Name: Starport, Mineral: 150, Gas: 100, Time: 36, IsBuilding: true, Requirement: Factory, IsAddable: true},
		{Name: "Fusion Core", Mineral: 150, Gas: 150, Time: 46, IsBuilding: true, Requirement: Starport},

		// Add-ons
		{Name: TechLab, Mineral: 50, Gas: 25, Time: 18, IsAddon: true},
		{Name: Reactor, Mineral: 50, Gas: 50, Time: 36, IsAddon: true},
	}
}

// TerranUpgrades returns the cataloged Terran upgrades
func TerranUpgrades() []*Upgrade {
	return []*Upgrade{
		{Name: "Infantry Weapons", Mineral: 100, Gas: 100, Time: 114, Parent: EngineeringBay, Level: 1},
		{Name: "Infantry Weapons", Mineral: 175, Gas: 175, Time: 136, Parent: EngineeringBay, Requirement: Armory, Level: 2},
		{Name: "Infantry Weapons", Mineral: 250, Gas: 250, Time: 157, Parent: EngineeringBay, Requirement: Armory, Level: 3},
		{Name: "Infantry Armor", Mineral: 100, Gas: 100, Time: 114, Parent: EngineeringBay, Level: 1},
		{Name: "Infantry Armor", Mineral: 175, Gas: 175, Time: 136, Parent: EngineeringBay, Requirement: Armory, Level: 2},
		{Name: "Infantry Armor", Mineral: 250, Gas: 250, Time: 157, Parent: EngineeringBay, Requirement: Armory, Level: 3},
		{Name: "Smart Servos", Mineral: 100, Gas: 100, Time: 79, Parent: Factory, Requirement: Armory},
		{Name: "Mag-Field Accelerator", Mineral: 100, Gas: 100, Time: 100, Parent: Factory},
	}
}

// DefaultCatalog returns the built-in Terran catalog
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(TerranUnits(), TerranUpgrades(), DefaultRoles())
	if err != nil {
		// The built-in data is covered by tests; failing here is a programming error
		panic(err)
	}
	return c
}
