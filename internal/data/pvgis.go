package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// PVGISClient estimates photovoltaic yield via the JRC PVGIS service.
type PVGISClient struct {
	BaseURL string
	Client  *http.Client
}

// NewPVGISClient creates a new PVGIS client.
// If baseURL is empty, defaults to "https://re.jrc.ec.europa.eu".
func NewPVGISClient(baseURL string) *PVGISClient {
	if baseURL == "" {
		baseURL = "https://re.jrc.ec.europa.eu"
	}
	return &PVGISClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// systemLossPercent is the PVcalc default for cabling/inverter/soiling loss.
const systemLossPercent = 14

type pvcalcResponse struct {
	Outputs struct {
		Totals struct {
			Fixed struct {
				EYearly float64 `json:"E_y"` // annual kWh for the array
			} `json:"fixed"`
		} `json:"totals"`
	} `json:"outputs"`
}

// AnnualYieldKWh returns the estimated annual kWh for a fixed-tilt array of
// kwp peak power at the given coordinates.
func (c *PVGISClient) AnnualYieldKWh(lat, lon, kwp float64) (float64, error) {
	if kwp <= 0 {
		return 0, fmt.Errorf("kwp must be > 0")
	}

	u, err := url.Parse(c.BaseURL + "/api/v5_2/PVcalc")
	if err != nil {
		return 0, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("peakpower", strconv.FormatFloat(kwp, 'f', -1, 64))
	q.Set("loss", strconv.Itoa(systemLossPercent))
	q.Set("outputformat", "json")
	q.Set("browser", "0")
	u.RawQuery = q.Encode()

	log.Printf("[PVGIS] Request: GET %s (lat=%.4f, lon=%.4f, kwp=%.2f)", u.String(), lat, lon, kwp)

	resp, err := c.Client.Get(u.String())
	if err != nil {
		return 0, fmt.Errorf("pvgis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("pvgis returned status %d", resp.StatusCode)
	}

	var pr pvcalcResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return 0, fmt.Errorf("decode pvgis response: %w", err)
	}
	if pr.Outputs.Totals.Fixed.EYearly <= 0 {
		return 0, fmt.Errorf("pvgis returned no annual yield")
	}
	return pr.Outputs.Totals.Fixed.EYearly, nil
}

// DailyYieldKWh returns the average daily kWh, i.e. the annual yield / 365.
func (c *PVGISClient) DailyYieldKWh(lat, lon, kwp float64) (float64, error) {
	annual, err := c.AnnualYieldKWh(lat, lon, kwp)
	if err != nil {
		return 0, err
	}
	return annual / 365, nil
}
