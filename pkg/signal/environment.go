package signal

import (
	"math"
	"math/cmplx"

	"github.com/nfvri/itm/pkg/model"
)

// Environment holds the frequency and atmosphere dependent constants of a
// prediction.
type Environment struct {
	WaveNumber          float64    // k = f/47.7, 1/m
	SurfaceRefractivity float64    // Ns, N-units
	GammaE              float64    // effective earth curvature, 1/m
	GroundImpedance     complex128 // Zg
	Frequency           float64    // MHz
}

// NewEnvironment derives the environment constants of sys for a path whose
// average system elevation is systemHeight meters. A zero systemHeight keeps
// the surface refractivity at sea-level value.
func NewEnvironment(sys model.SystemParameters, systemHeight float64) (Environment, model.Warning, error) {
	ns := sys.Refractivity
	if systemHeight != 0 {
		ns = sys.Refractivity * math.Exp(-systemHeight/9460)
	}
	env := Environment{
		WaveNumber:          sys.Frequency / 47.7,
		SurfaceRefractivity: ns,
		GammaE:              EffectiveEarthCurvature(ns),
		GroundImpedance:     GroundImpedance(sys.Permittivity, sys.Conductivity, sys.Frequency, sys.Polarization),
		Frequency:           sys.Frequency,
	}

	var warn model.Warning
	switch {
	case ns < 150:
		return env, warn, model.ErrSurfaceRefractivitySmall
	case ns > 400:
		return env, warn, model.ErrSurfaceRefractivityLarge
	case ns < 250:
		warn |= model.WarnSurfaceRefractivity
	}
	if env.GammaE < 75e-9 || env.GammaE > 250e-9 {
		return env, warn, model.ErrEffectiveEarth
	}
	if real(env.GroundImpedance) <= math.Abs(imag(env.GroundImpedance)) {
		return env, warn, model.ErrGroundImpedance
	}
	return env, warn, nil
}

// EffectiveEarthCurvature is the curvature of the effective earth for a
// surface refractivity ns.
func EffectiveEarthCurvature(ns float64) float64 {
	return 157e-9 * (1 - 0.04665*math.Exp(ns/179.3))
}

// GroundImpedance is the surface transfer impedance of the ground for the
// given permittivity, conductivity (S/m) and frequency (MHz).
func GroundImpedance(epsilon, sigma, frequency float64, pol model.Polarization) complex128 {
	er := complex(epsilon, 18000*sigma/frequency)
	zg := cmplx.Sqrt(er - 1)
	if pol == model.PolarizationVertical {
		zg /= er
	}
	return zg
}
