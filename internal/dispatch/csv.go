package dispatch

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

func WriteTraceCSV(path string, trace []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"interval_start",
		"generation_kwh",
		"price_gbp_per_kwh",
		"battery_flow_kwh",
		"soc_kwh",
		"grid_export_kwh",
		"action",
		"cum_saved_gbp",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range trace {
		row := []string{
			strconv.Itoa(r.Index),
			r.IntervalStart.Format(time.RFC3339),
			fmtFloat(r.GenerationKWh),
			fmtFloat(r.Price),
			fmtFloat(r.BatteryFlow),
			fmtFloat(r.SOC),
			fmtFloat(r.GridExportKWh),
			string(r.Action),
			fmtFloat(r.CumSaved),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
