package models

import "time"

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	Status    string            `json:"status"`
	Summary   SimulateSummary   `json:"summary"`
	Potential *PotentialSummary `json:"potential,omitempty"`
	Trace     []TraceRow        `json:"trace,omitempty"`
}

// SimulateSummary contains the financial comparison
type SimulateSummary struct {
	CostNaive      float64    `json:"cost_naive"`
	CostSmart      float64    `json:"cost_smart"`
	PoundsSaved    float64    `json:"pounds_saved"`
	Threshold      float64    `json:"discharge_threshold"`
	FinalSOC       float64    `json:"final_soc_kwh"`
	TotalIntervals int        `json:"total_intervals"`
	Window         TimeWindow `json:"window"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PotentialSummary reports price statistics and the perfect-foresight bound
type PotentialSummary struct {
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	MedianPrice   float64 `json:"median_price"`
	SpreadP95P05  float64 `json:"spread_p95_p05"`
	OracleSavings float64 `json:"oracle_savings"`
}

// TraceRow represents one interval in the simulation trace
type TraceRow struct {
	Index         int       `json:"index"`
	IntervalStart time.Time `json:"interval_start"`
	GenerationKWh float64   `json:"generation_kwh"`
	Price         float64   `json:"price"`
	BatteryFlow   float64   `json:"battery_flow_kwh"`
	SOC           float64   `json:"soc_kwh"`
	GridExportKWh float64   `json:"grid_export_kwh"`
	Action        string    `json:"action"` // "CHARGING", "DISCHARGING", "IDLE"
	CumSaved      float64   `json:"cum_saved"`
}

// BatteryInfo represents information about a battery preset
type BatteryInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs BatterySpecs `json:"specs"`
}

// BatterySpecs contains battery specifications
type BatterySpecs struct {
	CapacityKWh  float64 `json:"capacity_kwh"`
	PowerKW      float64 `json:"power_kw"`
	RoundTripEff float64 `json:"round_trip_eff"`
}

// RegionInfo describes one Agile tariff region
type RegionInfo struct {
	Letter string `json:"letter"`
	Name   string `json:"name"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
