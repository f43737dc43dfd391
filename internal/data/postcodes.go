package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PostcodesClient resolves UK postcodes via api.postcodes.io.
type PostcodesClient struct {
	BaseURL string
	Client  *http.Client
}

// NewPostcodesClient creates a new postcodes.io client.
// If baseURL is empty, defaults to "https://api.postcodes.io".
func NewPostcodesClient(baseURL string) *PostcodesClient {
	if baseURL == "" {
		baseURL = "https://api.postcodes.io"
	}
	return &PostcodesClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Postcode holds the fields we need from a postcode lookup.
type Postcode struct {
	Latitude  float64
	Longitude float64
	// NUTS carries the statistical region code, e.g. "UKI31"; its trailing
	// digits identify the DNO for Agile region mapping.
	NUTS string
}

type postcodeResponse struct {
	Status int `json:"status"`
	Result struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Codes     struct {
			NUTS string `json:"nuts"`
		} `json:"codes"`
	} `json:"result"`
}

// Lookup resolves a postcode to coordinates and region codes.
func (c *PostcodesClient) Lookup(postcode string) (Postcode, error) {
	pc := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
	if pc == "" {
		return Postcode{}, fmt.Errorf("postcode is required")
	}

	u := fmt.Sprintf("%s/postcodes/%s", c.BaseURL, url.PathEscape(pc))
	log.Printf("[Postcodes] Request: GET %s", u)

	resp, err := c.Client.Get(u)
	if err != nil {
		return Postcode{}, fmt.Errorf("postcode lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Postcode{}, fmt.Errorf("postcode lookup for %q returned status %d", pc, resp.StatusCode)
	}

	var pr postcodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return Postcode{}, fmt.Errorf("decode postcode response: %w", err)
	}

	return Postcode{
		Latitude:  pr.Result.Latitude,
		Longitude: pr.Result.Longitude,
		NUTS:      pr.Result.Codes.NUTS,
	}, nil
}

// Region resolves a postcode to its Agile region letter.
func (c *PostcodesClient) Region(postcode string) (string, error) {
	pc, err := c.Lookup(postcode)
	if err != nil {
		return "", err
	}
	return RegionForNUTS(pc.NUTS), nil
}
