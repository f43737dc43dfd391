package model

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Point is one (timestamp, value) sample of an interval series.
// The timestamp marks the start of the interval.
type Point struct {
	Time  time.Time
	Value float64
}

// Series is an ordered, fixed-interval time series. Generation series carry
// kWh per interval; price series carry £/kWh.
type Series []Point

// NewSeries builds a Series from a start time, a fixed step and raw values.
func NewSeries(start time.Time, step time.Duration, values []float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Point{Time: start.Add(time.Duration(i) * step), Value: v}
	}
	return s
}

// Values returns the value column.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Sum returns the total of all values.
func (s Series) Sum() float64 {
	total := 0.0
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Median returns the median value; for an even count it averages the two
// middle order statistics. Returns 0 for an empty series.
func (s Series) Median() float64 {
	if len(s) == 0 {
		return 0
	}
	vals := s.Values()
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return (vals[mid-1] + vals[mid]) / 2
}

// StepHours returns the interval length in hours, derived from the first two
// timestamps. A series with fewer than two points is treated as hourly.
func (s Series) StepHours() float64 {
	if len(s) < 2 {
		return 1.0
	}
	return s[1].Time.Sub(s[0].Time).Hours()
}

// CheckIndex verifies the series index is strictly increasing with a fixed
// interval.
func (s Series) CheckIndex() error {
	if len(s) < 2 {
		return nil
	}
	step := s[1].Time.Sub(s[0].Time)
	if step <= 0 {
		return fmt.Errorf("%w: timestamps not strictly increasing at index 1", ErrMisalignedSeries)
	}
	for i := 1; i < len(s); i++ {
		d := s[i].Time.Sub(s[i-1].Time)
		if d != step {
			return fmt.Errorf("%w: interval at index %d is %s, expected %s", ErrMisalignedSeries, i, d, step)
		}
	}
	return nil
}

// AlignedWith verifies both series share an identical timestamp index:
// same count, same timestamps, same order.
func (s Series) AlignedWith(other Series) error {
	if len(s) != len(other) {
		return fmt.Errorf("%w: lengths differ (%d vs %d)", ErrMisalignedSeries, len(s), len(other))
	}
	for i := range s {
		if !s[i].Time.Equal(other[i].Time) {
			return fmt.Errorf("%w: timestamps differ at index %d (%s vs %s)",
				ErrMisalignedSeries, i, s[i].Time.Format(time.RFC3339), other[i].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// ValidateValues rejects non-finite values, and negative values unless
// allowNegative is set (prices can go negative on Agile, generation cannot).
func (s Series) ValidateValues(allowNegative bool) error {
	for i, p := range s {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return fmt.Errorf("%w: non-finite value at index %d", ErrInvalidSeries, i)
		}
		if !allowNegative && p.Value < 0 {
			return fmt.Errorf("%w: negative value %g at index %d", ErrInvalidSeries, p.Value, i)
		}
	}
	return nil
}
