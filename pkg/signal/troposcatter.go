package signal

import (
	"math"
)

// ScatterUndefined is returned by the scatter estimate when the antennas
// are too close to the scattering volume for it to apply.
const ScatterUndefined = 1001.0

// scatter carries the frequency gain of the previous evaluation so that
// successive calls at increasing distance stay consistent.
type scatter struct {
	ad, rr float64
	etq    float64
	h0s    float64
}

func newScatter(p *Path) *scatter {
	he := p.Geometry.He
	s := &scatter{
		ad:  p.Geometry.Dl[0] - p.Geometry.Dl[1],
		rr:  he[1] / he[0],
		h0s: -15,
	}
	if s.ad < 0 {
		s.ad = -s.ad
		s.rr = 1 / s.rr
	}
	ns := p.Env.SurfaceRefractivity
	s.etq = (5.67e-6*ns-2.32e-3)*ns + 0.031
	return s
}

func (s *scatter) attenuation(p *Path, d float64) float64 {
	he := p.Geometry.He
	wn := p.Env.WaveNumber
	gme := p.Env.GammaE

	var h0 float64
	if s.h0s > 15 {
		h0 = s.h0s
	} else {
		th := p.Geometry.Theta[0] + p.Geometry.Theta[1] + d*gme
		r2 := 2 * wn * th
		r1 := r2 * he[0]
		r2 *= he[1]
		if r1 < 0.2 && r2 < 0.2 {
			return ScatterUndefined
		}

		ss := (d - s.ad) / (d + s.ad)
		q := s.rr / ss
		ss = math.Max(0.1, ss)
		q = math.Min(math.Max(0.1, q), 10)
		z0 := (d - s.ad) * (d + s.ad) * th * 0.25 / d

		t := math.Pow(math.Min(1.7, z0/8e3), 6)
		et := (s.etq*math.Exp(-t) + 1) * z0 / 1.7556e3
		ett := math.Max(et, 1)

		h0 = (frequencyGain(r1, ett) + frequencyGain(r2, ett)) * 0.5
		h0 += math.Min(h0, (1.38-math.Log(ett))*math.Log(ss)*math.Log(q)*0.49)
		h0 = math.Max(h0, 0)
		if et < 1 {
			t = (1 + 1.4142/r1) * (1 + 1.4142/r2)
			h0 = Blend(h0, 4.343*math.Log(t*t*(r1+r2)/(r1+r2+2.8284)), et)
		}
		if h0 > 15 && s.h0s >= 0 {
			h0 = s.h0s
		}
	}
	s.h0s = h0

	th := p.Tha + d*gme
	return attenuationFunction(th*d) + 4.343*math.Log(47.7*wn*math.Pow(th, 4)) -
		0.1*(p.Env.SurfaceRefractivity-301)*math.Exp(-th*d/40e3) + h0
}

var (
	h0fA = [5]float64{25, 80, 177, 395, 705}
	h0fB = [5]float64{24, 45, 68, 80, 105}
)

// frequencyGain is H0 for the normalised antenna height r and scatter
// efficiency et.
func frequencyGain(r, et float64) float64 {
	it := int(et)
	q := 0.0
	switch {
	case it <= 0:
		it = 1
	case it >= 5:
		it = 5
	default:
		q = et - float64(it)
	}
	x := (1 / r) * (1 / r)
	h := 4.343 * math.Log((h0fA[it-1]*x+h0fB[it-1])*x+1)
	if q != 0 {
		h = Blend(4.343*math.Log((h0fA[it]*x+h0fB[it])*x+1), h, q)
	}
	return h
}

// attenuationFunction is F(θd) of the scatter attenuation.
func attenuationFunction(td float64) float64 {
	var i int
	switch {
	case td <= 10e3:
		i = 0
	case td <= 70e3:
		i = 1
	default:
		i = 2
	}
	a := [3]float64{133.4, 104.6, 71.8}
	b := [3]float64{0.332e-3, 0.212e-3, 0.157e-3}
	c := [3]float64{-4.343, -1.086, 2.171}
	return a[i] + b[i]*td + c[i]*math.Log(td)
}
