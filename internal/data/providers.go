package data

import (
	"fmt"
	"time"

	"solar-saver/internal/model"
)

// mockAnnualYieldPerKWp is a rule-of-thumb UK yield (kWh per kWp per year)
// used when the mock path replaces PVGIS.
const mockAnnualYieldPerKWp = 900.0

// Providers bundles the external collaborators and assembles the two aligned
// half-hourly series the dispatch engine consumes.
type Providers struct {
	Octopus   *OctopusClient
	PVGIS     *PVGISClient
	Postcodes *PostcodesClient
}

// NewProviders wires the live clients; cache may be nil.
func NewProviders(cache *ResponseCache) *Providers {
	octopus := NewOctopusClient("")
	octopus.Cache = cache
	return &Providers{
		Octopus:   octopus,
		PVGIS:     NewPVGISClient(""),
		Postcodes: NewPostcodesClient(""),
	}
}

// SeriesRequest describes one site and day to simulate.
type SeriesRequest struct {
	Postcode  string
	Latitude  float64
	Longitude float64
	ArrayKWp  float64
	Region    string // Agile region letter; derived from postcode if empty
	Product   string // Agile product code; empty keeps the client default
	Date      time.Time
	Mock      bool // synthesize both series instead of calling the APIs
}

// Fetch returns generation and price on the canonical 48-slot UTC index for
// the requested date.
func (p *Providers) Fetch(req SeriesRequest) (gen, price model.Series, err error) {
	if req.ArrayKWp <= 0 {
		return nil, nil, fmt.Errorf("array kwp must be > 0")
	}
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)

	if req.Mock {
		daily := req.ArrayKWp * mockAnnualYieldPerKWp / 365
		gen = GenerationSeries(day, SlotsPerDay, AgileStep, daily)
		price = MockPriceSeries(day, SlotsPerDay, AgileStep)
		return gen, price, nil
	}

	lat, lon := req.Latitude, req.Longitude
	region := req.Region
	if req.Postcode != "" {
		pc, err := p.Postcodes.Lookup(req.Postcode)
		if err != nil {
			return nil, nil, err
		}
		lat, lon = pc.Latitude, pc.Longitude
		if region == "" {
			region = RegionForNUTS(pc.NUTS)
		}
	}
	if region == "" {
		return nil, nil, fmt.Errorf("need an Agile region letter or a postcode")
	}

	daily, err := p.PVGIS.DailyYieldKWh(lat, lon, req.ArrayKWp)
	if err != nil {
		return nil, nil, err
	}
	gen = GenerationSeries(day, SlotsPerDay, AgileStep, daily)

	// A custom product code applies to this request only. Providers is shared
	// across requests, so the client is copied rather than mutated; the copy
	// still shares the HTTP client and the cache (keys include the product).
	octopus := p.Octopus
	if req.Product != "" && req.Product != octopus.ProductCode {
		clone := *octopus
		clone.ProductCode = req.Product
		octopus = &clone
	}
	price, err = octopus.DayPrices(day, region)
	if err != nil {
		return nil, nil, err
	}
	return gen, price, nil
}
