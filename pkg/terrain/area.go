package terrain

import (
	"math"

	"github.com/nfvri/itm/pkg/model"
)

// AreaGeometry estimates the path geometry when no profile is available,
// from the terrain irregularity dh and the siting of each terminal.
// distance is in meters.
func AreaGeometry(distance float64, heights [2]float64, siting [2]model.SitingCriteria, dh, gammaE float64) (LinkGeometry, model.Warning) {
	g := LinkGeometry{
		Distance:   distance,
		Structural: heights,
		DeltaH:     dh,
	}
	for j := range g.He {
		g.He[j] = effectiveHeight(heights[j], siting[j], dh)
		smooth := math.Sqrt(2 * g.He[j] / gammaE)
		g.Dl[j] = roughHorizon(g.He[j], dh, gammaE)
		g.Theta[j] = (0.65*dh*(smooth/g.Dl[j]-1) - 2*g.He[j]) / smooth
	}

	var warn model.Warning
	if dh > ExtremeRoughness {
		warn |= model.WarnExtremeRoughness
	}
	return g, warn
}

// effectiveHeight raises carefully sited terminals above the structural
// height, by up to 5 m for careful and 10 m for very careful siting.
func effectiveHeight(hg float64, siting model.SitingCriteria, dh float64) float64 {
	if siting == model.SitingRandom {
		return hg
	}
	q := 4.0
	if siting == model.SitingVeryCareful {
		q = 9.0
	}
	if hg < 5 {
		q *= math.Sin(0.3141593 * hg)
	}
	return hg + (1+q)*math.Exp(-math.Min(20, 2*hg/math.Max(1e-3, dh)))
}
