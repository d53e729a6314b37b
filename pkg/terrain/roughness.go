package terrain

import (
	"math"
	"sort"

	"github.com/nfvri/itm/pkg/model"
)

// LeastSquaresFit fits a line to the profile between x1 and x2 (meters from
// the TX terminal) and returns its value at both ends of the profile.
func LeastSquaresFit(p model.TerrainProfile, x1, x2 float64) (z0, zn float64) {
	return fitLine(p, x1, x2)
}

func fitLine(s series, x1, x2 float64) (z0, zn float64) {
	xn := float64(s.Intervals())
	xa := math.Trunc(fdim(x1/s.Step(), 0))
	xb := xn - math.Trunc(fdim(xn, x2/s.Step()))
	if xb <= xa {
		xa = fdim(xa, 1)
		xb = xn - fdim(xn, xb+1)
	}

	ja := int(xa)
	jb := int(xb)
	n := jb - ja

	xa = xb - xa
	x := -0.5 * xa
	xb += x

	a := 0.5 * (s.At(ja) + s.At(jb))
	b := 0.5 * (s.At(ja) - s.At(jb)) * x
	for i := 2; i <= n; i++ {
		ja++
		x++
		a += s.At(ja)
		b += s.At(ja) * x
	}
	a /= xa
	b = b * 12 / ((xa*xa + 2) * xa)

	return a - b*xb, a + b*(xn-xb)
}

// DeltaH is the interdecile range of the terrain elevations between x1 and
// x2, measured about a least-squares line and corrected for span length.
// Spans shorter than two steps return 0.
func DeltaH(p model.TerrainProfile, x1, x2 float64) float64 {
	n := p.Intervals()
	xa := x1 / p.Step()
	xb := x2 / p.Step()
	if xb-xa < 2 {
		return 0
	}

	ka := int(0.1 * (xb - xa + 8))
	if ka < 4 {
		ka = 4
	} else if ka > 25 {
		ka = 25
	}
	samples := 10*ka - 5
	kb := samples - ka + 1
	sn := float64(samples - 1)

	s := make(unitSeries, samples)
	xb = (xb - xa) / sn
	k := int(xa + 1)
	xa -= float64(k)
	for j := 0; j < samples; j++ {
		for xa > 0 && k < n {
			xa--
			k++
		}
		s[j] = p.At(k) + (p.At(k)-p.At(k-1))*xa
		xa += xb
	}

	xa, xb = fitLine(s, 0, sn)
	xb = (xb - xa) / sn
	for j := range s {
		s[j] -= xa
		xa += xb
	}

	dh := kthHighest(s, ka-1) - kthHighest(s, kb-1)
	return dh / (1 - 0.8*math.Exp(-(x2-x1)/50e3))
}

// kthHighest returns the k-th highest value (zero based) without modifying s.
func kthHighest(s []float64, k int) float64 {
	sorted := make([]float64, len(s))
	copy(sorted, s)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if k < 0 {
		k = 0
	} else if k >= len(sorted) {
		k = len(sorted) - 1
	}
	return sorted[k]
}

func fdim(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return 0
}
