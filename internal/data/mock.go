package data

import (
	"math"
	"time"

	"solar-saver/internal/model"
)

// Synthetic providers used when no API is reachable (tests, the demo, the
// --mock CLI path). Both are deterministic functions of the index.

// Mock tariff pattern: cheap overnight, a mid-day plateau and an evening
// peak, in £/kWh.
const (
	mockPriceOvernight = 0.12
	mockPriceShoulder  = 0.15
	mockPricePeak      = 0.30
)

// MockPriceSeries returns a fixed daily tariff shape keyed on the hour of
// each interval start: overnight 00-05, evening peak 16-19, shoulder
// otherwise.
func MockPriceSeries(start time.Time, n int, step time.Duration) model.Series {
	s := make(model.Series, n)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * step)
		s[i] = model.Point{Time: ts, Value: mockPriceForHour(ts.Hour())}
	}
	return s
}

func mockPriceForHour(h int) float64 {
	switch {
	case h < 6:
		return mockPriceOvernight
	case h >= 16 && h < 20:
		return mockPricePeak
	default:
		return mockPriceShoulder
	}
}

// Daylight window for the synthetic generation shape.
const (
	sunriseHour = 6.0
	sunsetHour  = 20.0
)

// GenerationSeries spreads dailyKWh over each day using a half-sine daylight
// curve (zero outside 06:00-20:00, peaking at mid-day). The series total
// equals dailyKWh scaled by the covered fraction of a day.
func GenerationSeries(start time.Time, n int, step time.Duration, dailyKWh float64) model.Series {
	s := make(model.Series, n)
	weights := make([]float64, n)
	weightSum := 0.0

	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * step)
		s[i].Time = ts
		// Evaluate the shape at the interval midpoint.
		mid := ts.Add(step / 2)
		h := float64(mid.Hour()) + float64(mid.Minute())/60
		weights[i] = daylightFactor(h)
		weightSum += weights[i]
	}
	if weightSum == 0 || dailyKWh <= 0 {
		return s
	}

	coveredDays := (time.Duration(n) * step).Hours() / 24
	total := dailyKWh * coveredDays
	for i := range s {
		s[i].Value = total * weights[i] / weightSum
	}
	return s
}

// daylightFactor is the normalized half-sine: 0 outside the daylight window,
// 1 at solar noon.
func daylightFactor(hour float64) float64 {
	if hour < sunriseHour || hour > sunsetHour {
		return 0
	}
	return math.Sin(math.Pi * (hour - sunriseHour) / (sunsetHour - sunriseHour))
}
