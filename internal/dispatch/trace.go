package dispatch

import (
	"time"

	"solar-saver/internal/model"
)

// Row is one interval of per-step output.
// This is the primary artifact for "what happened" in a simulation.
type Row struct {
	Index int

	IntervalStart time.Time

	GenerationKWh float64 // PV energy produced this interval
	Price         float64 // £/kWh

	// BatteryFlow is signed: positive = charging, negative = discharging.
	BatteryFlow float64
	// SOC is the state of charge (kWh) after the interval, post clamp.
	SOC float64
	// GridExportKWh is PV surplus plus any discharge; never negative here
	// since the model carries no house load or grid import.
	GridExportKWh float64

	Action model.Action

	// CumSaved is the running smart-minus-naive difference, unfloored.
	CumSaved float64
}

// Result bundles the per-interval trace with the financial comparison.
type Result struct {
	Trace []Row

	// CostNaive is revenue if all generation were exported at spot price.
	CostNaive float64
	// CostSmart is revenue under the battery-assisted export profile.
	CostSmart float64
	// PoundsSaved is CostSmart - CostNaive, floored at zero.
	PoundsSaved float64

	// Threshold is the price above which discharging triggered.
	Threshold float64
	FinalSOC  float64
}
