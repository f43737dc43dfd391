package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviders_FetchMock(t *testing.T) {
	p := NewProviders(nil)
	gen, price, err := p.Fetch(SeriesRequest{
		ArrayKWp: 4,
		Date:     day,
		Mock:     true,
	})
	require.NoError(t, err)
	require.Len(t, gen, SlotsPerDay)
	require.Len(t, price, SlotsPerDay)
	assert.NoError(t, gen.AlignedWith(price))

	// 4 kWp at the rule-of-thumb UK yield: roughly 9.9 kWh for the day.
	assert.InDelta(t, 4*mockAnnualYieldPerKWp/365, gen.Sum(), 1e-9)
}

func TestProviders_FetchRejectsMissingKWp(t *testing.T) {
	p := NewProviders(nil)
	_, _, err := p.Fetch(SeriesRequest{Date: day, Mock: true})
	assert.Error(t, err)
}

func TestProviders_CustomProductDoesNotLeak(t *testing.T) {
	var sawProducts []string
	ratesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Path shape: /v1/products/<product>/electricity-tariffs/...
		parts := strings.Split(r.URL.Path, "/")
		require.GreaterOrEqual(t, len(parts), 4)
		sawProducts = append(sawProducts, parts[3])
		_ = json.NewEncoder(w).Encode(agileDay(day))
	}))
	defer ratesSrv.Close()

	pvgisSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"outputs":{"totals":{"fixed":{"E_y":3650}}}}`)
	}))
	defer pvgisSrv.Close()

	p := &Providers{
		Octopus:   NewOctopusClient(ratesSrv.URL),
		PVGIS:     NewPVGISClient(pvgisSrv.URL),
		Postcodes: NewPostcodesClient("http://unused"),
	}

	base := SeriesRequest{
		ArrayKWp:  4,
		Latitude:  51.52,
		Longitude: -0.09,
		Region:    "C",
		Date:      day,
	}

	custom := base
	custom.Product = "AGILE-18-02-21"
	_, _, err := p.Fetch(custom)
	require.NoError(t, err)

	// The override is per request; the shared client keeps its default.
	assert.Equal(t, DefaultProductCode, p.Octopus.ProductCode)

	_, _, err = p.Fetch(base)
	require.NoError(t, err)
	assert.Equal(t, []string{"AGILE-18-02-21", DefaultProductCode}, sawProducts)
}

func TestProviders_FetchNeedsRegionOrPostcode(t *testing.T) {
	p := NewProviders(nil)
	_, _, err := p.Fetch(SeriesRequest{
		ArrayKWp: 4,
		Latitude: 51.5,
		Date:     day,
	})
	assert.Error(t, err)
}
