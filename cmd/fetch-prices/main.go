package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"solar-saver/internal/data"
)

// fetch-prices saves one day of Agile unit rates to a JSON fixture so tests
// and offline runs never hit the live API.
func main() {
	var (
		date       = flag.String("date", "", "Day to fetch, YYYY-MM-DD (default: yesterday)")
		region     = flag.String("region", "", "Agile region letter A..P")
		postcode   = flag.String("postcode", "", "UK postcode to derive the region from")
		outputPath = flag.String("output", "./data/agile_rates.json", "Output file path")
	)
	flag.Parse()

	day := time.Now().UTC().AddDate(0, 0, -1)
	if *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			log.Fatalf("invalid --date %q: %v", *date, err)
		}
		day = parsed
	}

	reg := *region
	if reg == "" {
		if *postcode == "" {
			log.Fatal("either --region or --postcode is required")
		}
		var err error
		reg, err = data.NewPostcodesClient("").Region(*postcode)
		if err != nil {
			log.Fatalf("failed to resolve region: %v", err)
		}
		fmt.Printf("Resolved %s to Agile region %s\n", *postcode, reg)
	}

	client := data.NewOctopusClient("")
	rates, err := client.DayRates(day, reg)
	if err != nil {
		log.Fatalf("failed to fetch rates: %v", err)
	}

	if err := data.SaveAgileFixture(rates, *outputPath); err != nil {
		log.Fatalf("failed to save fixture: %v", err)
	}
	fmt.Printf("Wrote %d unit rates for %s (region %s) to %s\n",
		len(rates.Results), day.Format("2006-01-02"), reg, *outputPath)
}
