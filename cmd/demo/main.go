package main

import (
	"flag"
	"fmt"
	"time"

	"solar-saver/internal/data"
	"solar-saver/internal/dispatch"
	"solar-saver/internal/model"
)

// Demo:
// - synthesize a day of half-hourly generation and Agile-shaped prices
// - run the greedy dispatch with the default home battery
// - print the trace and the saving summary to show how the pieces fit
func main() {
	kwp := flag.Float64("kwp", 4.0, "Array size in kW peak")
	n := flag.Int("n", 0, "Number of intervals to print (0=all)")
	outCSV := flag.String("out", "", "Optional path to write the trace CSV")
	flag.Parse()

	day := time.Now().UTC().AddDate(0, 0, -1)
	gen, price, err := data.NewProviders(nil).Fetch(data.SeriesRequest{
		ArrayKWp: *kwp,
		Date:     day,
		Mock:     true,
	})
	if err != nil {
		panic(err)
	}

	cfg := model.DefaultBatteryConfig()
	result, err := dispatch.New().Run(gen, price, cfg)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Simulated %d half-hourly intervals for a %.1f kWp array\n", len(result.Trace), *kwp)
	fmt.Printf("Battery: %.1f kWh, %.1f kW, eff %.2f\n", cfg.CapacityKWh, cfg.PowerKW, cfg.RoundTripEff)
	fmt.Printf("Discharge threshold: £%.4f/kWh\n\n", result.Threshold)

	limit := len(result.Trace)
	if *n > 0 && *n < limit {
		limit = *n
	}
	for i := 0; i < limit; i++ {
		r := result.Trace[i]
		fmt.Printf(
			"%s pv=%5.3f price=%.4f  action=%-11s  flow=%+6.3f  soc=%5.3f  export=%5.3f  cum=£%6.3f\n",
			r.IntervalStart.Format("15:04"),
			r.GenerationKWh,
			r.Price,
			string(r.Action),
			r.BatteryFlow,
			r.SOC,
			r.GridExportKWh,
			r.CumSaved,
		)
	}

	if *outCSV != "" {
		if err := dispatch.WriteTraceCSV(*outCSV, result.Trace); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Naive £%.2f  Smart £%.2f  Saved £%.2f  Final SoC=%.2f kWh\n",
		result.CostNaive, result.CostSmart, result.PoundsSaved, result.FinalSOC)
}
