package price

import (
	"math"
	"sort"

	"github.com/cazare-ro/site/config"
	"github.com/cazare-ro/site/filter"
)

// Bounds describes the usable extent of the price slider. Derived from
// the current result page, never from a static range (except when the
// page is empty).
type Bounds struct {
	Min  float64
	Max  float64
	Step float64
}

// Contains reports whether v lies inside the bounds.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Clamp forces v into [Min, Max]. Idempotent.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// ClampPtr clamps an optional committed price filter in place.
func (b Bounds) ClampPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := b.Clamp(*p)
	return &v
}

// Defaults is the fallback extent when the result set has no usable
// prices, so the slider stays operable while filters are broadened.
func Defaults(c filter.Currency) Bounds {
	if c == filter.EUR {
		return Bounds{Min: 10, Max: 400, Step: 10}
	}
	return Bounds{Min: 50, Max: 2000, Step: 50}
}

// StepFor picks a currency-aware slider step for a raw price range.
func StepFor(c filter.Currency, span float64) float64 {
	if c == filter.EUR {
		switch {
		case span <= 100:
			return 2
		case span <= 300:
			return 5
		default:
			return 10
		}
	}
	switch {
	case span <= 500:
		return 10
	case span <= 1500:
		return 25
	default:
		return 50
	}
}

// Derive computes slider bounds from the prices of the current result
// page. The distribution is clipped at the 2nd and 98th percentiles so a
// handful of extreme prices cannot dominate the slider, then both ends
// are rounded to the nearest step multiple.
func Derive(prices []float64, c filter.Currency) Bounds {
	usable := make([]float64, 0, len(prices))
	for _, p := range prices {
		if p > 0 && !math.IsNaN(p) && !math.IsInf(p, 0) {
			usable = append(usable, p)
		}
	}
	if len(usable) == 0 {
		return Defaults(c)
	}
	sort.Float64s(usable)

	rawMin := percentile(usable, config.PricePercentileLow)
	rawMax := percentile(usable, config.PricePercentileHigh)

	step := StepFor(c, rawMax-rawMin)
	min := roundToStep(rawMin, step)
	max := roundToStep(rawMax, step)
	if min < 0 {
		min = 0
	}
	if max <= min {
		max = min + step
	}
	return Bounds{Min: min, Max: max, Step: step}
}

// percentile returns the value at the pth percentile of an ascending
// sorted slice, by nearest-rank.
func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	idx := int(math.Round(float64(p) / 100 * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func roundToStep(v, step float64) float64 {
	return math.Round(v/step) * step
}
