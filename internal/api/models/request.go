package models

// SimulateRequest represents the request body for running a simulation
type SimulateRequest struct {
	Site    SiteParams      `json:"site" binding:"required"`
	Tariff  TariffParams    `json:"tariff,omitempty"`
	Battery BatteryParams   `json:"battery,omitempty"`
	Options SimulateOptions `json:"options,omitempty"`
}

// SiteParams locates the array: postcode or lat/lon, plus array size
type SiteParams struct {
	Postcode  string  `json:"postcode,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	ArrayKWp  float64 `json:"array_kwp" binding:"required"`
}

// TariffParams selects the day and Agile region to price
type TariffParams struct {
	Date        string `json:"date,omitempty"`         // YYYY-MM-DD, default: yesterday
	Region      string `json:"region,omitempty"`       // Agile region letter A..P
	ProductCode string `json:"product_code,omitempty"` // default: current Agile product
}

// BatteryParams overrides the default battery configuration
type BatteryParams struct {
	CapacityKWh  float64 `json:"capacity_kwh,omitempty"`
	PowerKW      float64 `json:"power_kw,omitempty"`
	RoundTripEff float64 `json:"round_trip_eff,omitempty"`
}

// SimulateOptions contains optional simulation parameters
type SimulateOptions struct {
	Mock           bool `json:"mock,omitempty"`            // synthesize series instead of live APIs
	IncludeTrace   bool `json:"include_trace,omitempty"`   // default: false
	LimitIntervals int  `json:"limit_intervals,omitempty"` // 0 = all
}
