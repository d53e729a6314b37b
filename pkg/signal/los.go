package signal

import (
	"math"
)

// twoRay is the line of sight attenuation at distance d: a direct ray and a
// ground-reflected ray, blended with the extrapolated diffraction line by wls.
func (p *Path) twoRay(d, wls float64) float64 {
	he := p.Geometry.He
	wn := p.Env.WaveNumber
	zg := p.Env.GroundImpedance

	q := (1 - 0.8*math.Exp(-d/50e3)) * p.Geometry.DeltaH
	s := 0.78 * q * math.Exp(-math.Pow(q/16, 0.25))

	q = he[0] + he[1]
	sps := q / math.Sqrt(d*d+q*q)
	r := (complex(sps, 0) - zg) / (complex(sps, 0) + zg) * complex(math.Exp(-math.Min(10, wn*s*sps)), 0)
	q = absSquared(r)
	if q < 0.25 || q < sps {
		r *= complex(math.Sqrt(sps/q), 0)
	}

	diff := p.Emd*d + p.Aed
	phase := wn * he[0] * he[1] * 2 / d
	if phase > 1.57 {
		phase = 3.14 - 2.4649/phase
	}
	direct := complex(math.Cos(phase), -math.Sin(phase))
	return Blend(-4.343*math.Log(absSquared(direct+r)), diff, wls)
}

func absSquared(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}
