package signal

import (
	"math"

	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/terrain"
)

// Path evaluates the reference attenuation of one link. The diffraction line
// is fitted on construction, the line of sight and scatter lines on first
// use. A Path is not safe for concurrent use.
type Path struct {
	Env      Environment
	Geometry terrain.LinkGeometry

	Dls  [2]float64 // smooth-earth horizon distances
	Dlsa float64    // smooth-earth line of sight distance
	Dla  float64    // sum of the horizon distances
	Tha  float64    // total bending angle
	Xae  float64

	Aed, Emd float64 // diffraction line

	area bool
	diff diffraction

	losFitted bool
	ael       float64
	ak1, ak2  float64

	scatterFitted bool
	aes, ems      float64
	dx            float64
}

// NewPath prepares a point-to-point path.
func NewPath(env Environment, geo terrain.LinkGeometry) (*Path, model.Warning) {
	return newPath(env, geo, false)
}

// NewAreaPath prepares a path whose geometry was estimated from terrain
// statistics rather than a profile.
func NewAreaPath(env Environment, geo terrain.LinkGeometry) (*Path, model.Warning) {
	return newPath(env, geo, true)
}

func newPath(env Environment, geo terrain.LinkGeometry, area bool) (*Path, model.Warning) {
	p := &Path{Env: env, Geometry: geo, area: area}
	for j := range p.Dls {
		p.Dls[j] = math.Sqrt(2 * geo.He[j] / env.GammaE)
	}
	p.Dlsa = p.Dls[0] + p.Dls[1]
	p.Dla = geo.Dl[0] + geo.Dl[1]
	p.Tha = math.Max(geo.Theta[0]+geo.Theta[1], -p.Dla*env.GammaE)
	p.Xae = 1 / math.Cbrt(env.WaveNumber*env.GammaE*env.GammaE)

	p.diff = newDiffraction(p)
	d3 := math.Max(p.Dlsa, 1.3787*p.Xae+p.Dla)
	d4 := d3 + 2.7574*p.Xae
	a3 := p.diff.attenuation(p, d3)
	a4 := p.diff.attenuation(p, d4)
	p.Emd = (a4 - a3) / (d4 - d3)
	p.Aed = a3 - p.Emd*d3

	return p, p.checkGeometry()
}

// checkGeometry flags horizons and path lengths outside the range the model
// was validated against.
func (p *Path) checkGeometry() model.Warning {
	var warn model.Warning
	g := p.Geometry
	angle := [2]model.Warning{model.WarnTxHorizonAngle, model.WarnRxHorizonAngle}
	near := [2]model.Warning{model.WarnTxHorizonDistance1, model.WarnRxHorizonDistance1}
	far := [2]model.Warning{model.WarnTxHorizonDistance2, model.WarnRxHorizonDistance2}
	for j := range g.Theta {
		if math.Abs(g.Theta[j]) > 200e-3 {
			warn |= angle[j]
		}
		if g.Dl[j] < 0.1*p.Dls[j] {
			warn |= near[j]
		}
		if g.Dl[j] > 3*p.Dls[j] {
			warn |= far[j]
		}
	}

	dmin := math.Abs(g.He[0]-g.He[1]) / 200e-3
	if g.Distance < dmin {
		warn |= model.WarnPathDistanceTooSmall
	}
	if g.Distance < 1e3 {
		warn |= model.WarnPathDistanceSmall1km
	}
	if g.Distance > 1000e3 {
		warn |= model.WarnPathDistanceTooBig1
	}
	if g.Distance > 2000e3 {
		warn |= model.WarnPathDistanceTooBig2
	}
	return warn
}

// ReferenceAttenuation is the median attenuation relative to free space at
// the path distance. Negative values are clamped to zero and flagged.
func (p *Path) ReferenceAttenuation() (float64, model.PropMode, model.Warning) {
	aref, mode := p.AttenuationAt(p.Geometry.Distance)
	if aref < 0 {
		return 0, mode, model.WarnNegativeLossClamped
	}
	return aref, mode, model.NoWarnings
}

// AttenuationAt evaluates the fitted attenuation lines at distance d
// without clamping.
func (p *Path) AttenuationAt(d float64) (float64, model.PropMode) {
	if d < p.Dlsa {
		p.fitLineOfSight()
		return p.ael + p.ak1*d + p.ak2*math.Log(d), model.PropModeLineOfSight
	}
	p.fitScatter()
	mode := SelectMode(d, p.Dlsa, p.dx)
	if mode == model.PropModeTroposcatter {
		return p.aes + p.ems*d, mode
	}
	return p.Aed + p.Emd*d, mode
}

// Crossover is the distance beyond which troposcatter dominates.
func (p *Path) Crossover() float64 {
	p.fitScatter()
	return p.dx
}

// fitLineOfSight fits ael + ak1*d + ak2*ln(d) through two-ray samples so
// that the line meets the diffraction line at Dlsa.
func (p *Path) fitLineOfSight() {
	if p.losFitted {
		return
	}
	p.losFitted = true

	he := p.Geometry.He
	wls := LineOfSightWeight(p.Env.WaveNumber, p.Geometry.DeltaH, p.Dlsa)

	d2 := p.Dlsa
	a2 := p.Aed + d2*p.Emd
	d0 := 1.908 * p.Env.WaveNumber * he[0] * he[1]
	var d1 float64
	if p.Aed >= 0 {
		d0 = math.Min(d0, 0.5*p.Dla)
		d1 = d0 + 0.25*(p.Dla-d0)
	} else {
		d1 = math.Max(-p.Aed/p.Emd, 0.25*p.Dla)
	}
	a1 := p.twoRay(d1, wls)

	fitted := false
	if d0 < d1 {
		a0 := p.twoRay(d0, wls)
		q := math.Log(d2 / d0)
		p.ak2 = math.Max(0, ((d2-d0)*(a1-a0)-(d1-d0)*(a2-a0))/((d2-d0)*math.Log(d1/d0)-(d1-d0)*q))
		fitted = p.Aed >= 0 || p.ak2 > 0
		if fitted {
			p.ak1 = (a2 - a0 - p.ak2*q) / (d2 - d0)
			if p.ak1 < 0 {
				p.ak1 = 0
				p.ak2 = math.Max(a2-a0, 0) / q
				if p.ak2 == 0 {
					p.ak1 = p.Emd
				}
			}
		}
	}
	if !fitted {
		p.ak1 = math.Max(a2-a1, 0) / (d2 - d1)
		p.ak2 = 0
		if p.ak1 == 0 {
			p.ak1 = p.Emd
		}
	}
	p.ael = a2 - p.ak1*d2 - p.ak2*math.Log(d2)
}

// fitScatter fits the scatter line aes + ems*d and the crossover distance
// where it meets the diffraction line.
func (p *Path) fitScatter() {
	if p.scatterFitted {
		return
	}
	p.scatterFitted = true

	s := newScatter(p)
	d5 := p.Dla + 200e3
	d6 := d5 + 200e3
	a6 := s.attenuation(p, d6)
	a5 := s.attenuation(p, d5)
	if a5 < 1000 {
		p.ems = (a6 - a5) / 200e3
		p.dx = math.Max(p.Dlsa, math.Max(p.Dla+0.3*p.Xae*math.Log(47.7*p.Env.WaveNumber), (a5-p.Aed-p.ems*d5)/(p.Emd-p.ems)))
		p.aes = (p.Emd-p.ems)*p.dx + p.Aed
		return
	}
	p.ems = p.Emd
	p.aes = p.Aed
	p.dx = 10e6
}
