package statistics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ExtremeDeviate bounds the standard normal deviates the variability curves
// were fitted over.
const ExtremeDeviate = 3.1

// InverseCCDF returns the standard normal deviate exceeded with probability
// q, using the Hastings rational approximation (|error| < 4.5e-4).
func InverseCCDF(q float64) float64 {
	const (
		c0 = 2.515516698
		c1 = 0.802853
		c2 = 0.010328
		d1 = 1.432788
		d2 = 0.189269
		d3 = 0.001308
	)
	x := 0.5 - q
	t := math.Max(0.5-math.Abs(x), 0.000001)
	t = math.Sqrt(-2 * math.Log(t))
	v := t - ((c2*t+c1)*t+c0)/(((d3*t+d2)*t+d1)*t+1)
	if x < 0 {
		return -v
	}
	return v
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean of values, NaN entries skipped. Returns NaN when nothing is left.
func Mean(values []float64) float64 {
	x := dropNaN(values)
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// Percentile returns the p-th percentile (0..100) of values, linearly
// interpolated over the empirical distribution. NaN entries are skipped.
func Percentile(values []float64, p float64) float64 {
	x := dropNaN(values)
	if len(x) == 0 {
		return math.NaN()
	}
	sort.Float64s(x)
	return stat.Quantile(math.Min(math.Max(p, 0), 100)/100, stat.LinInterp, x, nil)
}
