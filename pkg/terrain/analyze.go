package terrain

import (
	"math"

	"github.com/nfvri/itm/pkg/model"
)

// Analyze derives the path geometry of a profile for terminals of the given
// structural heights over an earth of effective curvature gammaE.
func Analyze(p model.TerrainProfile, heights [2]float64, gammaE float64) (LinkGeometry, model.Warning) {
	n := p.Intervals()
	g := LinkGeometry{
		Distance:     p.Distance(),
		Structural:   heights,
		SystemHeight: SystemHeight(p),
	}
	g.Theta, g.Dl = Horizons(p, gammaE, heights)

	var xl [2]float64
	for j := range xl {
		xl[j] = math.Min(15*heights[j], 0.1*g.Dl[j])
	}
	xl[1] = g.Distance - xl[1]

	g.DeltaH = DeltaH(p, xl[0], xl[1])

	if g.Dl[0]+g.Dl[1] > 1.5*g.Distance {
		// line of sight: horizons follow from the effective heights
		za, zb := fitLine(p, xl[0], xl[1])
		g.He[0] = heights[0] + fdim(p.At(0), za)
		g.He[1] = heights[1] + fdim(p.At(n), zb)
		for j := range g.Dl {
			g.Dl[j] = roughHorizon(g.He[j], g.DeltaH, gammaE)
		}

		if q := g.Dl[0] + g.Dl[1]; q <= g.Distance {
			scale := (g.Distance / q) * (g.Distance / q)
			for j := range g.He {
				g.He[j] *= scale
				g.Dl[j] = roughHorizon(g.He[j], g.DeltaH, gammaE)
			}
		}

		for j := range g.Theta {
			smooth := math.Sqrt(2 * g.He[j] / gammaE)
			g.Theta[j] = (0.65*g.DeltaH*(smooth/g.Dl[j]-1) - 2*g.He[j]) / smooth
		}
	} else {
		za, _ := fitLine(p, xl[0], 0.9*g.Dl[0])
		_, zb := fitLine(p, g.Distance-0.9*g.Dl[1], xl[1])
		g.He[0] = heights[0] + fdim(p.At(0), za)
		g.He[1] = heights[1] + fdim(p.At(n), zb)
	}

	var warn model.Warning
	if g.DeltaH > ExtremeRoughness {
		warn |= model.WarnExtremeRoughness
	}
	return g, warn
}

// roughHorizon is the smooth-earth horizon distance shortened by terrain
// irregularity.
func roughHorizon(he, dh, gammaE float64) float64 {
	return math.Sqrt(2*he/gammaE) * math.Exp(-0.07*math.Sqrt(dh/math.Max(he, 5)))
}
