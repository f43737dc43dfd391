package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-saver/internal/dispatch"
	"solar-saver/internal/model"
)

var t0 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// eveningPeakPrices is a 24-hour shape with cheap overnight power and a
// four-hour peak from 16:00.
func eveningPeakPrices() []float64 {
	prices := make([]float64, 24)
	for h := 0; h < 24; h++ {
		switch {
		case h < 6:
			prices[h] = 0.12
		case h >= 16 && h < 20:
			prices[h] = 0.30
		default:
			prices[h] = 0.15
		}
	}
	return prices
}

func constantValues(n int, v float64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return vals
}

func TestComputePotential_PriceStats(t *testing.T) {
	gen := model.NewSeries(t0, time.Hour, constantValues(24, 0.5))
	price := model.NewSeries(t0, time.Hour, eveningPeakPrices())

	p, err := ComputePotential(gen, price, model.DefaultBatteryConfig())
	require.NoError(t, err)

	assert.Equal(t, 24, p.Count)
	assert.Equal(t, t0, p.Start)
	assert.Equal(t, t0.Add(23*time.Hour), p.End)

	tol := 1e-9
	assert.InDelta(t, 0.12, p.MinPrice, tol)
	assert.InDelta(t, 0.30, p.MaxPrice, tol)
	assert.InDelta(t, 0.1675, p.MeanPrice, tol)
	assert.InDelta(t, 0.15, p.MedianPrice, tol)
	assert.InDelta(t, 0.12, p.P05Price, tol)
	assert.InDelta(t, 0.30, p.P95Price, tol)
	assert.InDelta(t, 0.18, p.SpreadP95P05, tol)
	assert.InDelta(t, 2.01, p.NaiveRevenue, tol)
}

func TestComputePotential_OracleBoundsGreedy(t *testing.T) {
	gen := model.NewSeries(t0, time.Hour, constantValues(24, 0.5))
	price := model.NewSeries(t0, time.Hour, eveningPeakPrices())
	cfg := model.DefaultBatteryConfig()

	p, err := ComputePotential(gen, price, cfg)
	require.NoError(t, err)

	res, err := dispatch.New().Run(gen, price, cfg)
	require.NoError(t, err)

	// Perfect foresight can never do worse than the greedy dispatch.
	assert.GreaterOrEqual(t, p.OracleRevenue, res.CostSmart-1e-9)
	assert.GreaterOrEqual(t, p.OracleSavings, res.PoundsSaved-1e-9)
	assert.Greater(t, p.OracleSavings, 0.0)
}

func TestComputePotential_ConstantPriceHasNoHeadroom(t *testing.T) {
	gen := model.NewSeries(t0, time.Hour, constantValues(24, 0.5))
	price := model.NewSeries(t0, time.Hour, constantValues(24, 0.20))

	p, err := ComputePotential(gen, price, model.DefaultBatteryConfig())
	require.NoError(t, err)

	// Cycling the battery only loses round-trip energy, so idling is optimal.
	assert.InDelta(t, p.NaiveRevenue, p.OracleRevenue, 1e-9)
	assert.InDelta(t, 0.0, p.OracleSavings, 1e-9)
}

func TestComputePotential_EmptySeries(t *testing.T) {
	p, err := ComputePotential(model.Series{}, model.Series{}, model.DefaultBatteryConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Count)
	assert.Equal(t, 0.0, p.OracleRevenue)
}

func TestComputePotential_RejectsBadInputs(t *testing.T) {
	gen := model.NewSeries(t0, time.Hour, constantValues(24, 0.5))
	price := model.NewSeries(t0, time.Hour, constantValues(23, 0.20))

	_, err := ComputePotential(gen, price, model.DefaultBatteryConfig())
	assert.ErrorIs(t, err, model.ErrMisalignedSeries)

	price = model.NewSeries(t0, time.Hour, constantValues(24, 0.20))
	_, err = ComputePotential(gen, price, model.BatteryConfig{CapacityKWh: -1})
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestPercentileSorted(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1.0, percentileSorted(vals, 0), 1e-9)
	assert.InDelta(t, 5.0, percentileSorted(vals, 1), 1e-9)
	assert.InDelta(t, 3.0, percentileSorted(vals, 0.5), 1e-9)
	assert.InDelta(t, 1.2, percentileSorted(vals, 0.05), 1e-9)
	assert.Equal(t, 0.0, percentileSorted(nil, 0.5))
}
