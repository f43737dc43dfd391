package model

// Action is a human-friendly operating mode for a timestep.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

// ActionFromFlow maps a signed battery flow (kWh, positive = charging) to an
// Action.
func ActionFromFlow(flowKWh float64) Action {
	switch {
	case flowKWh > 0:
		return ActionCharging
	case flowKWh < 0:
		return ActionDischarging
	default:
		return ActionIdle
	}
}
