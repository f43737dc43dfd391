package model

import "fmt"

// BatteryConfig defines the physical parameters of the home battery.
// Units:
// - CapacityKWh: usable energy capacity, kWh
// - PowerKW: maximum charge or discharge rate, kW
// - RoundTripEff: fraction of stored energy recovered on discharge, 0..1
//
// The config is passed by value into the engine and never mutated.
type BatteryConfig struct {
	CapacityKWh  float64
	PowerKW      float64
	RoundTripEff float64
}

// DefaultBatteryConfig returns a fresh config for a typical UK home install.
// Always a new value, so callers can never alias a shared default.
func DefaultBatteryConfig() BatteryConfig {
	return BatteryConfig{
		CapacityKWh:  5.0,
		PowerKW:      3.0,
		RoundTripEff: 0.92,
	}
}

func (c BatteryConfig) Validate() error {
	if c.CapacityKWh <= 0 {
		return fmt.Errorf("%w: CapacityKWh must be > 0", ErrInvalidConfig)
	}
	if c.PowerKW <= 0 {
		return fmt.Errorf("%w: PowerKW must be > 0", ErrInvalidConfig)
	}
	if c.RoundTripEff <= 0 || c.RoundTripEff > 1 {
		return fmt.Errorf("%w: RoundTripEff must be in (0, 1]", ErrInvalidConfig)
	}
	return nil
}
