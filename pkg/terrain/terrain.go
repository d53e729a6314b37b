// Package terrain derives the path geometry the propagation model needs from
// a uniformly sampled elevation profile.
package terrain

import (
	"github.com/nfvri/itm/pkg/model"
)

// ExtremeRoughness is the terrain irregularity above which predictions are
// flagged, in meters.
const ExtremeRoughness = 500.0

// LinkGeometry is the terrain-derived description of one path.
// Index 0 refers to the TX terminal, index 1 to the RX terminal.
type LinkGeometry struct {
	Distance     float64    // path length, meters
	Structural   [2]float64 // structural antenna heights, meters
	He           [2]float64 // effective antenna heights, meters
	Dl           [2]float64 // horizon distances, meters
	Theta        [2]float64 // horizon elevation angles, radians
	DeltaH       float64    // interdecile terrain irregularity, meters
	SystemHeight float64    // mean elevation of the central profile, meters
}

// series is a uniformly spaced sequence of samples.
type series interface {
	At(i int) float64
	Intervals() int
	Step() float64
}

// unitSeries is an in-memory series with unit spacing.
type unitSeries []float64

func (s unitSeries) At(i int) float64 { return s[i] }
func (s unitSeries) Intervals() int   { return len(s) - 1 }
func (s unitSeries) Step() float64    { return 1 }

// SystemHeight is the mean elevation over the samples between 10% and 90%
// of the profile.
func SystemHeight(p model.TerrainProfile) float64 {
	n := p.Intervals()
	p10 := int(0.1 * float64(n))
	sum := 0.0
	for i := p10; i <= n-p10; i++ {
		sum += p.At(i)
	}
	return sum / float64(n-2*p10+1)
}
