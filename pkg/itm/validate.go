// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package itm

import (
	"github.com/nfvri/itm/pkg/model"
)

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func validPercentage(p float64) bool {
	return p > 0 && p < 100
}

// ValidateSystem checks the radio system and environment parameters. A
// non-nil error is a model.ErrorCode.
func ValidateSystem(sys model.SystemParameters) (model.Warning, error) {
	var warn model.Warning

	if !inRange(sys.TxHeight, 0.5, 3000) {
		return warn, model.ErrTxTerminalHeight
	}
	if !inRange(sys.TxHeight, 1, 1000) {
		warn |= model.WarnTxTerminalHeight
	}
	if !inRange(sys.RxHeight, 0.5, 3000) {
		return warn, model.ErrRxTerminalHeight
	}
	if !inRange(sys.RxHeight, 1, 1000) {
		warn |= model.WarnRxTerminalHeight
	}
	if !sys.Climate.Valid() {
		return warn, model.ErrClimate
	}
	if !inRange(sys.Refractivity, 250, 400) {
		return warn, model.ErrRefractivity
	}
	if !inRange(sys.Frequency, 20, 20000) {
		return warn, model.ErrFrequency
	}
	if !inRange(sys.Frequency, 40, 10000) {
		warn |= model.WarnFrequency
	}
	if !sys.Polarization.Valid() {
		return warn, model.ErrPolarization
	}
	if !(sys.Permittivity >= 1) {
		return warn, model.ErrEpsilon
	}
	if !(sys.Conductivity > 0) {
		return warn, model.ErrSigma
	}
	return warn, nil
}

// ValidateVariability checks the mode of variability and the time,
// location and situation percentages.
func ValidateVariability(v model.VariabilitySpec) error {
	if !v.Mode.Valid() {
		return model.ErrModeOfVariability
	}
	if !validPercentage(v.Time) {
		return model.ErrTime
	}
	if !validPercentage(v.Location) {
		return model.ErrLocation
	}
	if !validPercentage(v.Situation) {
		return model.ErrSituation
	}
	return nil
}

// ValidateArea checks the area mode path parameters.
func ValidateArea(a model.AreaParameters) error {
	if !a.TxSiting.Valid() {
		return model.ErrTxSitingCriteria
	}
	if !a.RxSiting.Valid() {
		return model.ErrRxSitingCriteria
	}
	if !(a.DeltaH >= 0) {
		return model.ErrDeltaH
	}
	if !(a.Distance > 0) {
		return model.ErrPathDistance
	}
	return nil
}

// errorCode unwraps the code carried by a validation error.
func errorCode(err error) model.ErrorCode {
	if code, ok := err.(model.ErrorCode); ok {
		return code
	}
	return model.ErrTerrainProfile
}
