package signal

import (
	"math"

	"github.com/nfvri/itm/pkg/model"
)

// Blend returns the weighted combination a*w + b*(1-w). All regime
// transitions go through it.
func Blend(a, b, w float64) float64 {
	return (a-b)*w + b
}

// SelectMode classifies a path of length d against the smooth-earth line of
// sight distance dLs and the diffraction to scatter crossover dx.
func SelectMode(d, dLs, dx float64) model.PropMode {
	switch {
	case d < dLs:
		return model.PropModeLineOfSight
	case d > dx:
		return model.PropModeTroposcatter
	}
	return model.PropModeDiffraction
}

// LineOfSightWeight is the weight of the two-ray term against the
// extrapolated diffraction line.
func LineOfSightWeight(waveNumber, deltaH, dLs float64) float64 {
	return 0.021 / (0.021 + waveNumber*deltaH/math.Max(10e3, dLs))
}

// KnifeEdgeWeight is the weight of the rounded-earth term in diffraction for
// a roughness factor q. The knife-edge term takes the remainder.
func KnifeEdgeWeight(q float64) float64 {
	return 25.1 / (25.1 + math.Sqrt(q))
}
