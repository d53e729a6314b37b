// Package variability turns a reference median attenuation into the
// attenuation not exceeded for the requested time, location and situation
// fractions.
package variability

import (
	"math"

	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/statistics"
)

// Deviates are standard normal deviates of the time, location and situation
// percentiles.
type Deviates struct {
	Time      float64
	Location  float64
	Situation float64
}

// Path are the path properties the variability curves depend on.
type Path struct {
	Distance   float64    // meters
	He         [2]float64 // effective heights, meters
	DeltaH     float64    // meters
	WaveNumber float64
}

// Breakdown itemises the adjustment applied to the reference attenuation.
type Breakdown struct {
	EffectiveDistance float64
	Median            float64 // Vmd, subtracted from the reference
	TimeSigma         float64
	LocationSigma     float64
	SituationSigma    float64 // combined sigma applied to the situation deviate
	Yr                float64 // time and location deviation
	Attenuation       float64 // adjusted attenuation relative to free space
}

// Adjust applies the climate's variability curves to the reference
// attenuation aref under the given mode of variability.
func Adjust(aref float64, path Path, climate model.Climate, mode model.ModeOfVariability, z Deviates) (Breakdown, model.Warning) {
	var warn model.Warning
	cc := climates[climate]
	wn := path.WaveNumber

	q := math.Log(0.133 * wn)
	gm := cc.fm[0] + cc.fm[1]/((cc.fm[2]*q)*(cc.fm[2]*q)+1)
	gp := cc.fp[0] + cc.fp[1]/((cc.fp[2]*q)*(cc.fp[2]*q)+1)

	b := Breakdown{EffectiveDistance: EffectiveDistance(path)}
	de := b.EffectiveDistance

	b.Median = cc.median.eval(de)
	sgtm := cc.sigmaMinus.eval(de) * gm
	sgtp := cc.sigmaPlus.eval(de) * gp
	sgtd := sgtp * cc.ductSigma
	tgtd := (sgtp - sgtd) * cc.ductZ

	if !mode.LocationEliminated() {
		q = (1 - 0.8*math.Exp(-path.Distance/50e3)) * path.DeltaH * wn
		b.LocationSigma = 10 * q / (q + 13)
	}
	vs0 := 0.0
	if !mode.SituationEliminated() {
		vs0 = 5 + 3*math.Exp(-de/100e3)
		vs0 *= vs0
	}

	zt, zl, zc := z.Time, z.Location, z.Situation
	base := mode.Base()
	switch base {
	case model.ModeSingleMessage:
		zt = zc
		zl = zc
	case model.ModeAccidental:
		zl = zc
	case model.ModeMobile:
		zl = zt
	}
	if math.Abs(zt) > statistics.ExtremeDeviate ||
		math.Abs(zl) > statistics.ExtremeDeviate ||
		math.Abs(zc) > statistics.ExtremeDeviate {
		warn |= model.WarnExtremeVariabilities
	}

	var sgt float64
	switch {
	case zt < 0:
		sgt = sgtm
	case zt <= cc.ductZ:
		sgt = sgtp
	default:
		sgt = sgtd + tgtd/zt
	}
	b.TimeSigma = sgt
	sgl := b.LocationSigma

	vs := vs0 + (sgt*zt)*(sgt*zt)/(7.8+zc*zc) + (sgl*zl)*(sgl*zl)/(24+zc*zc)

	switch base {
	case model.ModeSingleMessage:
		b.SituationSigma = math.Sqrt(sgt*sgt + sgl*sgl + vs)
	case model.ModeAccidental:
		b.Yr = sgt * zt
		b.SituationSigma = math.Sqrt(sgl*sgl + vs)
	case model.ModeMobile:
		b.Yr = math.Sqrt(sgt*sgt+sgl*sgl) * zt
		b.SituationSigma = math.Sqrt(vs)
	default:
		b.Yr = sgt*zt + sgl*zl
		b.SituationSigma = math.Sqrt(vs)
	}

	a := aref - b.Median - b.Yr - b.SituationSigma*zc
	if a < 0 {
		a = a * (29 - a) / (29 - 10*a)
	}
	b.Attenuation = a
	return b, warn
}

// EffectiveDistance maps the path distance onto the distance scale the
// climate curves were fitted against.
func EffectiveDistance(path Path) float64 {
	dexa := math.Sqrt(18e6*path.He[0]) + math.Sqrt(18e6*path.He[1]) + math.Cbrt(575.7e12/path.WaveNumber)
	if path.Distance < dexa {
		return 130e3 * path.Distance / dexa
	}
	return 130e3 + path.Distance - dexa
}
