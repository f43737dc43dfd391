package data

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postcodePayload = `{
  "status": 200,
  "result": {
    "postcode": "EC2A 3AY",
    "latitude": 51.523,
    "longitude": -0.086,
    "codes": {"nuts": "UKI12"}
  }
}`

func TestPostcodesClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Spaces are stripped and the postcode upper-cased before the call.
		assert.Equal(t, "/postcodes/EC2A3AY", r.URL.Path)
		fmt.Fprint(w, postcodePayload)
	}))
	defer srv.Close()

	c := NewPostcodesClient(srv.URL)
	pc, err := c.Lookup("ec2a 3ay")
	require.NoError(t, err)
	assert.InDelta(t, 51.523, pc.Latitude, 1e-9)
	assert.InDelta(t, -0.086, pc.Longitude, 1e-9)
	assert.Equal(t, "UKI12", pc.NUTS)
}

func TestPostcodesClient_Region(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, postcodePayload)
	}))
	defer srv.Close()

	region, err := NewPostcodesClient(srv.URL).Region("EC2A 3AY")
	require.NoError(t, err)
	assert.Equal(t, "C", region)
}

func TestPostcodesClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":404,"error":"Postcode not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewPostcodesClient(srv.URL).Lookup("ZZ99 9ZZ")
	assert.Error(t, err)
}

func TestPostcodesClient_EmptyPostcode(t *testing.T) {
	_, err := NewPostcodesClient("http://unused").Lookup("  ")
	assert.Error(t, err)
}
