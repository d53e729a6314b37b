package signal

import (
	"math"
	"math/cmplx"
)

// diffraction holds the distance independent terms of the diffraction
// attenuation of one path.
type diffraction struct {
	wd1, xd1 float64
	afo      float64 // clutter factor
	qk       float64
	aht, xht float64
}

func newDiffraction(p *Path) diffraction {
	he := p.Geometry.He
	hg := p.Geometry.Structural
	dh := p.Geometry.DeltaH
	wn := p.Env.WaveNumber

	q := hg[0] * hg[1]
	qk := he[0]*he[1] - q
	if !p.area {
		q += 10
	}

	df := diffraction{
		wd1: math.Sqrt(1 + qk/q),
		xd1: p.Dla + p.Tha/p.Env.GammaE,
	}

	q = (1 - 0.8*math.Exp(-p.Dlsa/50e3)) * dh
	q *= 0.78 * math.Exp(-math.Pow(q/16, 0.25))
	df.afo = math.Min(15, 2.171*math.Log(1+4.77e-4*hg[0]*hg[1]*wn*q))
	df.qk = 1 / cmplx.Abs(p.Env.GroundImpedance)
	df.aht = 20

	for j := range he {
		a := 0.5 * p.Geometry.Dl[j] * p.Geometry.Dl[j] / he[j]
		wa := math.Cbrt(a * wn)
		pk := df.qk / wa
		q = (1.607 - pk) * 151 * wa * p.Geometry.Dl[j] / a
		df.xht += q
		df.aht += heightGain(q, pk)
	}
	return df
}

// attenuation at distance d: a rounded-earth and a double knife-edge
// estimate blended by terrain roughness, plus the clutter factor.
func (df diffraction) attenuation(p *Path, d float64) float64 {
	dl := p.Geometry.Dl
	wn := p.Env.WaveNumber

	th := p.Tha + d*p.Env.GammaE
	ds := d - p.Dla
	q := 0.0795775 * wn * ds * th * th
	knife := knifeEdge(q*dl[0]/(ds+dl[0])) + knifeEdge(q*dl[1]/(ds+dl[1]))

	a := ds / th
	wa := math.Cbrt(a * wn)
	pk := df.qk / wa
	q = (1.607-pk)*151*wa*th + df.xht
	rounded := 0.05751*q - 4.343*math.Log(q) - df.aht

	q = (df.wd1 + df.xd1/d) * math.Min((1-0.8*math.Exp(-d/50e3))*p.Geometry.DeltaH*wn, 6283.2)
	return Blend(rounded, knife, KnifeEdgeWeight(q)) + df.afo
}

// knifeEdge is the Fresnel-Kirchhoff knife-edge attenuation for v² = v2.
func knifeEdge(v2 float64) float64 {
	if v2 < 5.76 {
		return 6.02 + 9.11*math.Sqrt(v2) - 1.27*v2
	}
	return 12.953 + 4.343*math.Log(v2)
}

// heightGain is the smooth-earth height gain function F(x, K).
func heightGain(x, pk float64) float64 {
	if x < 200 {
		w := -math.Log(pk)
		if pk < 1e-5 || x*w*w*w > 5495 {
			f := -117.0
			if x > 1 {
				f += 17.372 * math.Log(x)
			}
			return f
		}
		return 2.5e-5*x*x/pk - 8.686*w - 15
	}

	f := 0.05751*x - 4.343*math.Log(x)
	if x < 2000 {
		w := 0.0134 * x * math.Exp(-0.005*x)
		f = Blend(17.372*math.Log(x)-117, f, w)
	}
	return f
}
