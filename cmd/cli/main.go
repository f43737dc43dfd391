package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"solar-saver/internal/analysis"
	"solar-saver/internal/config"
	"solar-saver/internal/data"
	"solar-saver/internal/dispatch"
	"solar-saver/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "potential":
		cmdPotential(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --postcode EC2A3AY --kwp 4 --date 2024-06-01 --out results/trace.csv")
	fmt.Println("  cli simulate --lat 51.52 --lon -0.09 --kwp 4 --region C")
	fmt.Println("  cli simulate --mock --kwp 4")
	fmt.Println("  cli potential --mock --kwp 4")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate runs the greedy dispatch and prints the saving summary")
	fmt.Println("  - potential prints the day's price spread and a perfect-foresight bound")
	fmt.Println("  - --mock skips the Octopus/PVGIS/postcodes APIs entirely")
}

type siteFlags struct {
	postcode *string
	lat      *float64
	lon      *float64
	kwp      *float64
	region   *string
	date     *string
	mock     *bool
	cfgPath  *string
}

func registerSiteFlags(fs *flag.FlagSet) siteFlags {
	return siteFlags{
		postcode: fs.String("postcode", "", "UK postcode, e.g. EC2A3AY"),
		lat:      fs.Float64("lat", 0, "Latitude (used with --lon instead of --postcode)"),
		lon:      fs.Float64("lon", 0, "Longitude"),
		kwp:      fs.Float64("kwp", 4.0, "Array size in kW peak"),
		region:   fs.String("region", "", "Agile region letter A..P (derived from postcode if empty)"),
		date:     fs.String("date", "", "Day to price, YYYY-MM-DD (default: yesterday)"),
		mock:     fs.Bool("mock", false, "Use synthetic generation and prices, no network"),
		cfgPath:  fs.String("config", "", "Optional YAML config path"),
	}
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	sf := registerSiteFlags(fs)
	outPath := fs.String("out", "", "Optional output CSV path for the per-interval trace")
	n := fs.Int("n", 0, "Optional: limit to first N intervals (0=all)")
	_ = fs.Parse(args)

	battery, req := buildRequest(sf)

	gen, price, err := data.NewProviders(nil).Fetch(req)
	if err != nil {
		fatal(err)
	}
	if *n > 0 && *n < len(gen) {
		gen = gen[:*n]
		price = price[:*n]
	}

	result, err := dispatch.New().Run(gen, price, battery)
	if err != nil {
		fatal(err)
	}

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fatal(err)
		}
		if err := dispatch.WriteTraceCSV(*outPath, result.Trace); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(result.Trace), *outPath)
	}

	fmt.Printf("Intervals=%d Threshold=£%.4f/kWh\n", len(result.Trace), result.Threshold)
	fmt.Printf("Naive £%.2f  Smart £%.2f  Saved £%.2f  Final SoC=%.2f kWh\n",
		result.CostNaive, result.CostSmart, result.PoundsSaved, result.FinalSOC)
}

func cmdPotential(args []string) {
	fs := flag.NewFlagSet("potential", flag.ExitOnError)
	sf := registerSiteFlags(fs)
	_ = fs.Parse(args)

	battery, req := buildRequest(sf)

	gen, price, err := data.NewProviders(nil).Fetch(req)
	if err != nil {
		fatal(err)
	}

	pot, err := analysis.ComputePotential(gen, price, battery)
	if err != nil {
		fatal(err)
	}
	greedy, err := dispatch.New().Run(gen, price, battery)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%-22s %s -> %s (%d intervals)\n", "window",
		pot.Start.Format("2006-01-02 15:04"), pot.End.Format("2006-01-02 15:04"), pot.Count)
	fmt.Printf("%-22s £%.4f / £%.4f / £%.4f\n", "price min/median/max", pot.MinPrice, pot.MedianPrice, pot.MaxPrice)
	fmt.Printf("%-22s £%.4f\n", "price p95-p05 spread", pot.SpreadP95P05)
	fmt.Printf("%-22s £%.2f\n", "greedy saving", greedy.PoundsSaved)
	fmt.Printf("%-22s £%.2f\n", "oracle saving bound", pot.OracleSavings)
}

// buildRequest merges the optional YAML config with the flags: the config
// fills anything not set on the command line, and its array size wins over
// the flag default.
func buildRequest(sf siteFlags) (model.BatteryConfig, data.SeriesRequest) {
	battery := model.DefaultBatteryConfig()
	req := data.SeriesRequest{
		Postcode:  *sf.postcode,
		Latitude:  *sf.lat,
		Longitude: *sf.lon,
		ArrayKWp:  *sf.kwp,
		Region:    *sf.region,
		Mock:      *sf.mock,
	}

	if *sf.cfgPath != "" {
		cfg, err := config.Load(*sf.cfgPath)
		if err != nil {
			fatal(err)
		}
		battery = cfg.Battery.ToModel()
		if req.Postcode == "" {
			req.Postcode = cfg.Site.Postcode
		}
		if req.Latitude == 0 && req.Longitude == 0 {
			req.Latitude = cfg.Site.Latitude
			req.Longitude = cfg.Site.Longitude
		}
		if cfg.Site.ArrayKWp > 0 {
			req.ArrayKWp = cfg.Site.ArrayKWp
		}
		if req.Region == "" {
			req.Region = cfg.Tariff.Region
		}
		if cfg.Tariff.ProductCode != "" {
			req.Product = cfg.Tariff.ProductCode
		}
		if *sf.date == "" && cfg.Tariff.Date != "" {
			*sf.date = cfg.Tariff.Date
		}
	}

	if *sf.date == "" {
		req.Date = time.Now().UTC().AddDate(0, 0, -1)
	} else {
		d, err := time.Parse("2006-01-02", *sf.date)
		if err != nil {
			fatal(fmt.Errorf("invalid --date %q: %w", *sf.date, err))
		}
		req.Date = d
	}
	return battery, req
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
