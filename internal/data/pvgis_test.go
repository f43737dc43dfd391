package data

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPVGISServer(t *testing.T, annualKWh float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v5_2/PVcalc", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("outputformat"))
		assert.Equal(t, "14", r.URL.Query().Get("loss"))
		fmt.Fprintf(w, `{"outputs":{"totals":{"fixed":{"E_y":%f}}}}`, annualKWh)
	}))
}

func TestPVGISClient_DailyYield(t *testing.T) {
	srv := newPVGISServer(t, 3650)
	defer srv.Close()

	c := NewPVGISClient(srv.URL)

	annual, err := c.AnnualYieldKWh(51.52, -0.09, 4)
	require.NoError(t, err)
	assert.InDelta(t, 3650, annual, 1e-9)

	daily, err := c.DailyYieldKWh(51.52, -0.09, 4)
	require.NoError(t, err)
	assert.InDelta(t, 10, daily, 1e-9)
}

func TestPVGISClient_RejectsBadInputs(t *testing.T) {
	c := NewPVGISClient("http://unused")
	_, err := c.AnnualYieldKWh(51.52, -0.09, 0)
	assert.Error(t, err)
}

func TestPVGISClient_EmptyYieldIsAnError(t *testing.T) {
	srv := newPVGISServer(t, 0)
	defer srv.Close()

	_, err := NewPVGISClient(srv.URL).AnnualYieldKWh(51.52, -0.09, 4)
	assert.Error(t, err)
}

func TestPVGISClient_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewPVGISClient(srv.URL).AnnualYieldKWh(51.52, -0.09, 4)
	assert.Error(t, err)
}
