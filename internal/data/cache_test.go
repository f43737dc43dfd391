package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-saver/internal/model"
)

func TestResponseCache_RoundTrip(t *testing.T) {
	c := NewResponseCache(time.Minute)
	s := model.NewSeries(day, AgileStep, []float64{1, 2, 3})

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", s)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, s, got)

	c.Clear()
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestResponseCache_Expiry(t *testing.T) {
	c := NewResponseCache(time.Nanosecond)
	c.Set("k", model.Series{})
	time.Sleep(time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestResponseCache_NilIsDisabled(t *testing.T) {
	var c *ResponseCache
	c.Set("k", model.Series{})
	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Clear()
}
