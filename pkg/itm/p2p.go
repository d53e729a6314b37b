// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package itm predicts the basic transmission loss of a radio link over
// irregular terrain with the Longley-Rice Irregular Terrain Model.
package itm

import (
	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/signal"
	"github.com/nfvri/itm/pkg/statistics"
	"github.com/nfvri/itm/pkg/terrain"
	"github.com/nfvri/itm/pkg/variability"
	log "github.com/sirupsen/logrus"
)

// IntermediateValues expose the quantities a prediction was derived from.
type IntermediateValues struct {
	Geometry             terrain.LinkGeometry
	SurfaceRefractivity  float64
	GammaE               float64
	GroundImpedance      complex128
	SmoothEarthDistance  float64 // dLs, meters
	Crossover            float64 // diffraction to scatter distance, meters
	ReferenceAttenuation float64 // dB relative to free space
	FreeSpaceLoss        float64 // dB
	Mode                 model.PropMode
	Variability          variability.Breakdown
}

// PointToPoint predicts the loss over a terrain profile for the given time,
// location and situation percentages.
func PointToPoint(profile model.TerrainProfile, sys model.SystemParameters, v model.VariabilitySpec) model.Result {
	r, _ := PointToPointEx(profile, sys, v)
	return r
}

// PointToPointEx is PointToPoint returning the intermediate values as well.
func PointToPointEx(profile model.TerrainProfile, sys model.SystemParameters, v model.VariabilitySpec) (model.Result, IntermediateValues) {
	warn, err := ValidateSystem(sys)
	if err == nil {
		err = ValidateVariability(v)
	}
	if err == nil && profile.IsZero() {
		err = model.ErrTerrainProfile
	}
	if err != nil {
		log.Debugf("rejected point-to-point prediction: %v", err)
		return model.Failed(errorCode(err), warn), IntermediateValues{}
	}
	return predict(profileGeometry(profile, sys), sys, v, warn)
}

// PointToPointCR predicts the loss not exceeded for the given reliability
// (time) and confidence (situation) percentages, location held at 50%.
func PointToPointCR(profile model.TerrainProfile, sys model.SystemParameters, mode model.ModeOfVariability, confidence, reliability float64) model.Result {
	warn, err := ValidateSystem(sys)
	switch {
	case err != nil:
	case !mode.Valid():
		err = model.ErrModeOfVariability
	case !validPercentage(confidence):
		err = model.ErrConfidence
	case !validPercentage(reliability):
		err = model.ErrReliability
	case profile.IsZero():
		err = model.ErrTerrainProfile
	}
	if err != nil {
		log.Debugf("rejected point-to-point prediction: %v", err)
		return model.Failed(errorCode(err), warn)
	}
	v := model.VariabilitySpec{Mode: mode, Time: reliability, Location: 50, Situation: confidence}
	r, _ := predict(profileGeometry(profile, sys), sys, v, warn)
	return r
}

// P2P keeps the argument order, units and enumeration values of the packed
// terrain calling convention. code is 0 on success, 1 on success with
// warnings, otherwise the error code.
func P2P(hTx, hRx float64, pfl []float64, climate int, n0, frequency float64, pol int,
	epsilon, sigma float64, mdvar int, time, location, situation float64) (loss float64, warnings int64, code int) {
	sys := model.SystemParameters{
		TxHeight:     hTx,
		RxHeight:     hRx,
		Frequency:    frequency,
		Polarization: model.Polarization(pol),
		Permittivity: epsilon,
		Conductivity: sigma,
		Refractivity: n0,
		Climate:      model.Climate(climate),
	}
	v := model.VariabilitySpec{
		Mode:      model.ModeOfVariability(mdvar),
		Time:      time,
		Location:  location,
		Situation: situation,
	}

	var r model.Result
	profile, err := model.ParsePFL(pfl)
	if err != nil {
		warn, verr := ValidateSystem(sys)
		if verr == nil {
			verr = ValidateVariability(v)
		}
		if verr == nil {
			verr = err
		}
		r = model.Failed(errorCode(verr), warn)
	} else {
		r = PointToPoint(profile, sys, v)
	}
	return r.Loss, int64(r.Warnings), r.ReturnCode()
}

// geometrySource supplies the elevation the surface refractivity is scaled
// to and builds the path once the environment is known.
type geometrySource struct {
	systemHeight float64
	path         func(env signal.Environment) (*signal.Path, model.Warning)
}

func profileGeometry(profile model.TerrainProfile, sys model.SystemParameters) geometrySource {
	return geometrySource{
		systemHeight: terrain.SystemHeight(profile),
		path: func(env signal.Environment) (*signal.Path, model.Warning) {
			geo, warn := terrain.Analyze(profile, sys.Heights(), env.GammaE)
			p, w := signal.NewPath(env, geo)
			return p, warn | w
		},
	}
}

// predict runs the model on validated inputs.
func predict(src geometrySource, sys model.SystemParameters, v model.VariabilitySpec, warn model.Warning) (model.Result, IntermediateValues) {
	env, w, err := signal.NewEnvironment(sys, src.systemHeight)
	warn |= w
	if err != nil {
		log.Debugf("environment out of range: %v", err)
		return model.Failed(errorCode(err), warn), IntermediateValues{}
	}

	path, w := src.path(env)
	warn |= w
	aref, mode, w := path.ReferenceAttenuation()
	warn |= w

	geo := path.Geometry
	z := variability.Deviates{
		Time:      statistics.InverseCCDF(v.Time / 100),
		Location:  statistics.InverseCCDF(v.Location / 100),
		Situation: statistics.InverseCCDF(v.Situation / 100),
	}
	b, w := variability.Adjust(aref, variability.Path{
		Distance:   geo.Distance,
		He:         geo.He,
		DeltaH:     geo.DeltaH,
		WaveNumber: env.WaveNumber,
	}, sys.Climate, v.Mode, z)
	warn |= w

	fs := signal.FreeSpaceLoss(sys.Frequency, geo.Distance)
	loss := b.Attenuation + fs
	if loss < 0 {
		loss = 0
		warn |= model.WarnNegativeLossClamped
	}
	r := model.Result{
		Loss:     loss,
		Warnings: warn,
		Mode:     mode,
	}
	iv := IntermediateValues{
		Geometry:             geo,
		SurfaceRefractivity:  env.SurfaceRefractivity,
		GammaE:               env.GammaE,
		GroundImpedance:      env.GroundImpedance,
		SmoothEarthDistance:  path.Dlsa,
		Crossover:            path.Crossover(),
		ReferenceAttenuation: aref,
		FreeSpaceLoss:        fs,
		Mode:                 mode,
		Variability:          b,
	}
	log.Debugf("d=%.1fm mode=%s aref=%.3f fs=%.3f loss=%.3f warnings=%s", geo.Distance, mode, aref, fs, r.Loss, warn)
	return r, iv
}
