package data

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"solar-saver/internal/model"
)

// DefaultProductCode is the current UK Agile Octopus import product.
const DefaultProductCode = "AGILE-24-10-01"

// SlotsPerDay is the number of half-hourly settlement periods in one day.
const SlotsPerDay = 48

// AgileStep is the settlement period length.
const AgileStep = 30 * time.Minute

// dnoToRegion maps the Ofgem DNO id (last two digits of the NUTS code
// returned by postcodes.io) to the Agile tariff region letter.
var dnoToRegion = map[int]string{
	10: "A", 11: "B", 12: "C", 13: "D", 14: "E", 15: "F",
	16: "G", 17: "H", 18: "J", 19: "K", 20: "L", 21: "M",
	22: "N", 23: "P",
}

// OctopusClient fetches half-hourly Agile import prices (inc. VAT).
type OctopusClient struct {
	ProductCode string
	BaseURL     string
	Client      *http.Client

	// Cache is optional; a nil cache disables caching.
	Cache *ResponseCache
}

// NewOctopusClient creates a new Octopus API client.
// If baseURL is empty, defaults to "https://api.octopus.energy".
func NewOctopusClient(baseURL string) *OctopusClient {
	if baseURL == "" {
		baseURL = "https://api.octopus.energy"
	}
	return &OctopusClient{
		ProductCode: DefaultProductCode,
		BaseURL:     baseURL,
		Client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// OctopusError represents an error response from the Octopus API.
type OctopusError struct {
	StatusCode int
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *OctopusError) Error() string {
	return fmt.Sprintf("octopus: %s (status %d)", e.Message, e.StatusCode)
}

// AgileRate is one unit-rate entry from the standard-unit-rates endpoint.
// ValueIncVAT is in pence per kWh.
type AgileRate struct {
	ValueIncVAT float64   `json:"value_inc_vat"`
	ValidFrom   time.Time `json:"valid_from"`
	ValidTo     time.Time `json:"valid_to"`
}

// AgileRatesResponse matches the JSON shape of the unit-rates endpoint.
type AgileRatesResponse struct {
	Count   int         `json:"count"`
	Results []AgileRate `json:"results"`
}

// TariffCode builds the single-register electricity tariff code for a region
// letter, e.g. "E-1R-AGILE-24-10-01-C".
func (c *OctopusClient) TariffCode(region string) string {
	return fmt.Sprintf("E-1R-%s-%s", c.ProductCode, strings.ToUpper(region))
}

// DayRates fetches the raw unit rates covering the given UTC date.
func (c *OctopusClient) DayRates(date time.Time, region string) (*AgileRatesResponse, error) {
	if region == "" {
		return nil, fmt.Errorf("region letter is required")
	}

	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - AgileStep)

	path := fmt.Sprintf("/v1/products/%s/electricity-tariffs/%s/standard-unit-rates/",
		c.ProductCode, c.TariffCode(region))
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("period_from", from.Format("2006-01-02T15:04:05Z"))
	q.Set("period_to", to.Format("2006-01-02T15:04:05Z"))
	u.RawQuery = q.Encode()

	log.Printf("[Octopus] Request: GET %s (region=%s, date=%s)",
		u.String(), region, from.Format("2006-01-02"))

	resp, err := c.Client.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("octopus request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &OctopusError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			RetryAfter: resp.Header.Get("Retry-After"),
		}
	}

	var rates AgileRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("decode octopus response: %w", err)
	}
	return &rates, nil
}

// DayPrices returns a 48-point half-hourly series of £/kWh (VAT-inc) for the
// given UTC date. If the API returns fewer than 48 slots, gaps are filled by
// carrying the most recent known price forward (and backward if needed).
func (c *OctopusClient) DayPrices(date time.Time, region string) (model.Series, error) {
	key := fmt.Sprintf("%s:%s:%s", c.ProductCode, strings.ToUpper(region), date.Format("2006-01-02"))
	if cached, ok := c.Cache.Get(key); ok {
		log.Printf("[Octopus] Cache hit: %s", key)
		return cached, nil
	}

	rates, err := c.DayRates(date, region)
	if err != nil {
		return nil, err
	}
	series, err := BuildDaySeries(rates, date)
	if err != nil {
		return nil, err
	}
	c.Cache.Set(key, series)
	return series, nil
}

// BuildDaySeries maps raw unit rates onto the canonical 48-slot half-hourly
// index for the date, converting pence to pounds and filling gaps.
func BuildDaySeries(rates *AgileRatesResponse, date time.Time) (model.Series, error) {
	if rates == nil || len(rates.Results) == 0 {
		return nil, fmt.Errorf("no unit rates returned")
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	byFrom := make(map[time.Time]float64, len(rates.Results))
	for _, r := range rates.Results {
		byFrom[r.ValidFrom.UTC()] = r.ValueIncVAT / 100
	}

	series := make(model.Series, SlotsPerDay)
	known := make([]bool, SlotsPerDay)
	anyKnown := false
	for i := 0; i < SlotsPerDay; i++ {
		ts := start.Add(time.Duration(i) * AgileStep)
		series[i].Time = ts
		if v, ok := byFrom[ts]; ok {
			series[i].Value = v
			known[i] = true
			anyKnown = true
		}
	}
	if !anyKnown {
		return nil, fmt.Errorf("no unit rates overlap %s", start.Format("2006-01-02"))
	}

	// Forward fill, then backward fill any leading gap.
	for i := 1; i < SlotsPerDay; i++ {
		if !known[i] && known[i-1] {
			series[i].Value = series[i-1].Value
			known[i] = true
		}
	}
	for i := SlotsPerDay - 2; i >= 0; i-- {
		if !known[i] && known[i+1] {
			series[i].Value = series[i+1].Value
			known[i] = true
		}
	}

	return series, nil
}

// RegionForNUTS derives the Agile region letter from a NUTS code such as
// "UKI31", using its trailing DNO digits. Falls back to London ("C").
func RegionForNUTS(nuts string) string {
	if len(nuts) < 2 {
		return "C"
	}
	var dno int
	if _, err := fmt.Sscanf(nuts[len(nuts)-2:], "%d", &dno); err != nil {
		return "C"
	}
	if r, ok := dnoToRegion[dno]; ok {
		return r
	}
	return "C"
}
