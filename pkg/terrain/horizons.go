package terrain

import (
	"github.com/nfvri/itm/pkg/model"
)

// Horizons finds the horizon angles and distances of both terminals. Angles
// start from the terminal-to-terminal chord over an earth of curvature
// gammaE. The RX horizon is only tracked once the TX view is obstructed.
func Horizons(p model.TerrainProfile, gammaE float64, heights [2]float64) (theta [2]float64, dl [2]float64) {
	n := p.Intervals()
	step := p.Step()
	d := p.Distance()

	za := p.At(0) + heights[0]
	zb := p.At(n) + heights[1]

	qc := 0.5 * gammaE
	q := qc * d
	slope := (zb - za) / d
	theta = [2]float64{slope - q, -slope - q}
	dl = [2]float64{d, d}

	if n < 2 {
		return theta, dl
	}

	sa, sb := 0.0, d
	clear := true
	for i := 1; i < n; i++ {
		sa += step
		sb -= step
		q = p.At(i) - (qc*sa+theta[0])*sa - za
		if q > 0 {
			theta[0] += q / sa
			dl[0] = sa
			clear = false
		}
		if !clear {
			q = p.At(i) - (qc*sb+theta[1])*sb - zb
			if q > 0 {
				theta[1] += q / sb
				dl[1] = sb
			}
		}
	}
	return theta, dl
}
