package simulation

import "github.com/napolitain/buildorder/internal/order"

// Economy holds the constants driving resource accrual and the horizon
type Economy struct {
	StartMineral     float64 `mapstructure:"start_mineral" json:"start_mineral"`
	StartGas         float64 `mapstructure:"start_gas" json:"start_gas"`
	StartHarvesters  int     `mapstructure:"start_harvesters" json:"start_harvesters"`
	HarvestersPerGas int     `mapstructure:"harvesters_per_gas" json:"harvesters_per_gas"`

	// Mining at or below the threshold uses the optimized speed
	SaturationThreshold   int     `mapstructure:"saturation_threshold" json:"saturation_threshold"`
	OptimizedMineralSpeed float64 `mapstructure:"optimized_mineral_speed" json:"optimized_mineral_speed"`
	MineralSpeed          float64 `mapstructure:"mineral_speed" json:"mineral_speed"`
	OrbitalSpeed          float64 `mapstructure:"orbital_speed" json:"orbital_speed"`
	GasSpeed              float64 `mapstructure:"gas_speed" json:"gas_speed"`

	HorizonFloor  order.Second `mapstructure:"horizon_floor" json:"horizon_floor"`
	HorizonBuffer order.Second `mapstructure:"horizon_buffer" json:"horizon_buffer"`
}

// DefaultEconomy returns the standard one-base Terran opening
func DefaultEconomy() Economy {
	return Economy{
		StartMineral:          50,
		StartGas:              0,
		StartHarvesters:       12,
		HarvestersPerGas:      3,
		SaturationThreshold:   16,
		OptimizedMineralSpeed: 45.0 / 60.0,
		MineralSpeed:          40.0 / 60.0,
		OrbitalSpeed:          3.75,
		GasSpeed:              0.89,
		HorizonFloor:          600,
		HorizonBuffer:         10,
	}
}

// MineralRate returns the mineral income per second
func (e Economy) MineralRate(harvesters, orbitals int) float64 {
	var rate float64
	if harvesters <= e.SaturationThreshold {
		rate = e.OptimizedMineralSpeed * float64(harvesters)
	} else {
		rate = e.MineralSpeed * float64(harvesters)
	}
	return rate + e.OrbitalSpeed*float64(orbitals)
}

// GasRate returns the gas income per second
func (e Economy) GasRate(harvesters int) float64 {
	return e.GasSpeed * float64(harvesters)
}

// Horizon returns the last simulated second for an order finishing at latest
func (e Economy) Horizon(latest order.Second) order.Second {
	return max(e.HorizonFloor, latest+e.HorizonBuffer)
}
