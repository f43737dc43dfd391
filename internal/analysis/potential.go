package analysis

import (
	"math"
	"sort"
	"time"

	"solar-saver/internal/model"
)

// SavingsPotential summarizes how much headroom a day's prices leave for
// battery arbitrage. It pairs raw price statistics with a perfect-foresight
// ("oracle") revenue bound for the given battery, so the greedy result can
// be judged against the best any dispatch could have done.
type SavingsPotential struct {
	Count int

	Start time.Time
	End   time.Time

	MinPrice    float64
	MaxPrice    float64
	MeanPrice   float64
	MedianPrice float64
	P05Price    float64
	P95Price    float64

	SpreadP95P05 float64

	// NaiveRevenue is the export revenue with no battery.
	NaiveRevenue float64
	// OracleRevenue is the best export revenue achievable with perfect
	// knowledge of the day's prices.
	OracleRevenue float64
	// OracleSavings is OracleRevenue - NaiveRevenue, floored at zero.
	OracleSavings float64
}

// defaultSOCSteps is the state-of-charge grid resolution for the oracle DP.
const defaultSOCSteps = 200

// ComputePotential computes price statistics and the oracle bound over
// aligned generation and price series.
func ComputePotential(gen, price model.Series, cfg model.BatteryConfig) (SavingsPotential, error) {
	p := SavingsPotential{}
	if err := cfg.Validate(); err != nil {
		return p, err
	}
	if err := gen.AlignedWith(price); err != nil {
		return p, err
	}
	if len(price) == 0 {
		return p, nil
	}

	p.Count = len(price)
	p.Start = price[0].Time
	p.End = price[len(price)-1].Time

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(price))
	for _, pt := range price {
		v := pt.Value
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	p.MinPrice = minv
	p.MaxPrice = maxv
	p.MeanPrice = sum / float64(len(vals))
	p.MedianPrice = price.Median()
	p.P05Price = percentileSorted(vals, 0.05)
	p.P95Price = percentileSorted(vals, 0.95)
	p.SpreadP95P05 = p.P95Price - p.P05Price

	for i := range gen {
		p.NaiveRevenue += gen[i].Value * price[i].Value
	}
	p.OracleRevenue = oracleRevenue(gen, price, cfg, defaultSOCSteps)
	p.OracleSavings = p.OracleRevenue - p.NaiveRevenue
	if p.OracleSavings < 0 {
		p.OracleSavings = 0
	}
	return p, nil
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// oracleRevenue runs a dynamic program over a discretized SOC grid.
// Per interval the choices are: export everything (idle), divert as much PV
// into the battery as fits, or discharge as hard as the power limit and
// stored energy allow. Charging forgoes export revenue at the current price;
// discharging sells withdrawn energy (after round-trip loss) at the current
// price. The bang-bang action set is enough for an upper-bound estimate.
func oracleRevenue(gen, price model.Series, cfg model.BatteryConfig, socSteps int) float64 {
	if len(gen) == 0 || socSteps < 1 {
		return 0
	}
	stepCap := cfg.PowerKW * gen.StepHours()
	socUnit := cfg.CapacityKWh / float64(socSteps)

	negInf := math.Inf(-1)
	dp := make([]float64, socSteps+1)
	next := make([]float64, socSteps+1)
	for i := range dp {
		dp[i] = negInf
	}
	dp[0] = 0 // the battery starts empty

	for i := range gen {
		pv := gen[i].Value
		pr := price[i].Value
		for j := range next {
			next[j] = negInf
		}

		for j := 0; j <= socSteps; j++ {
			if math.IsInf(dp[j], -1) {
				continue
			}
			soc := float64(j) * socUnit

			// Idle: export all PV.
			relax(next, j, dp[j]+pv*pr)

			// Charge: divert as much PV as fits.
			charge := math.Min(pv, math.Min(stepCap, cfg.CapacityKWh-soc))
			if charge > 0 {
				nj := int(math.Round((soc + charge) / socUnit))
				if nj > socSteps {
					nj = socSteps
				}
				relax(next, nj, dp[j]+(pv-charge)*pr)
			}

			// Discharge: deliver as much stored energy as allowed.
			delivered := math.Min(stepCap, soc*cfg.RoundTripEff)
			if delivered > 0 {
				nj := int(math.Round((soc - delivered/cfg.RoundTripEff) / socUnit))
				if nj < 0 {
					nj = 0
				}
				relax(next, nj, dp[j]+(pv+delivered)*pr)
			}
		}
		dp, next = next, dp
	}

	best := negInf
	for _, v := range dp {
		if v > best {
			best = v
		}
	}
	if math.IsInf(best, -1) {
		return 0
	}
	return best
}

func relax(next []float64, j int, v float64) {
	if v > next[j] {
		next[j] = v
	}
}
