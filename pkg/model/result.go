// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Warning is a bitmask of advisory conditions. Bits are independent.
type Warning int64

const (
	WarnTxTerminalHeight     Warning = 0x0001
	WarnRxTerminalHeight     Warning = 0x0002
	WarnFrequency            Warning = 0x0004
	WarnPathDistanceTooBig1  Warning = 0x0008
	WarnPathDistanceTooBig2  Warning = 0x0010
	WarnPathDistanceTooSmall Warning = 0x0020
	WarnPathDistanceSmall1km Warning = 0x0040
	WarnTxHorizonAngle       Warning = 0x0080
	WarnRxHorizonAngle       Warning = 0x0100
	WarnTxHorizonDistance1   Warning = 0x0200
	WarnRxHorizonDistance1   Warning = 0x0400
	WarnTxHorizonDistance2   Warning = 0x0800
	WarnRxHorizonDistance2   Warning = 0x1000
	WarnExtremeVariabilities Warning = 0x2000
	WarnSurfaceRefractivity  Warning = 0x4000
	WarnNegativeLossClamped  Warning = 0x8000
	WarnExtremeRoughness     Warning = 0x10000

	NoWarnings Warning = 0
)

var warningNames = []struct {
	w    Warning
	name string
}{
	{WarnTxTerminalHeight, "tx-terminal-height"},
	{WarnRxTerminalHeight, "rx-terminal-height"},
	{WarnFrequency, "frequency"},
	{WarnPathDistanceTooBig1, "path-distance-too-big-1"},
	{WarnPathDistanceTooBig2, "path-distance-too-big-2"},
	{WarnPathDistanceTooSmall, "path-distance-too-small-1"},
	{WarnPathDistanceSmall1km, "path-distance-too-small-2"},
	{WarnTxHorizonAngle, "tx-horizon-angle"},
	{WarnRxHorizonAngle, "rx-horizon-angle"},
	{WarnTxHorizonDistance1, "tx-horizon-distance-1"},
	{WarnRxHorizonDistance1, "rx-horizon-distance-1"},
	{WarnTxHorizonDistance2, "tx-horizon-distance-2"},
	{WarnRxHorizonDistance2, "rx-horizon-distance-2"},
	{WarnExtremeVariabilities, "extreme-variabilities"},
	{WarnSurfaceRefractivity, "surface-refractivity"},
	{WarnNegativeLossClamped, "negative-loss-clamped"},
	{WarnExtremeRoughness, "extreme-roughness"},
}

// Has reports whether every bit of flag is set in w
func (w Warning) Has(flag Warning) bool {
	return w&flag == flag
}

// Names lists the set bits in ascending order.
func (w Warning) Names() []string {
	names := []string{}
	for _, wn := range warningNames {
		if w&wn.w != 0 {
			names = append(names, wn.name)
		}
	}
	return names
}

func (w Warning) String() string {
	if w == NoWarnings {
		return "none"
	}
	return strings.Join(w.Names(), "|")
}

// ErrorCode is a fatal input condition. The zero value means no error.
type ErrorCode int

const (
	ErrNone                     ErrorCode = 0
	ErrTxTerminalHeight         ErrorCode = 1000
	ErrRxTerminalHeight         ErrorCode = 1001
	ErrClimate                  ErrorCode = 1002
	ErrTime                     ErrorCode = 1003
	ErrLocation                 ErrorCode = 1004
	ErrSituation                ErrorCode = 1005
	ErrConfidence               ErrorCode = 1006
	ErrReliability              ErrorCode = 1007
	ErrRefractivity             ErrorCode = 1008
	ErrFrequency                ErrorCode = 1009
	ErrPolarization             ErrorCode = 1010
	ErrEpsilon                  ErrorCode = 1011
	ErrSigma                    ErrorCode = 1012
	ErrGroundImpedance          ErrorCode = 1013
	ErrModeOfVariability        ErrorCode = 1014
	ErrEffectiveEarth           ErrorCode = 1016
	ErrPathDistance             ErrorCode = 1017
	ErrDeltaH                   ErrorCode = 1018
	ErrTxSitingCriteria         ErrorCode = 1019
	ErrRxSitingCriteria         ErrorCode = 1020
	ErrSurfaceRefractivitySmall ErrorCode = 1021
	ErrSurfaceRefractivityLarge ErrorCode = 1022
	ErrTerrainProfile           ErrorCode = 1023
)

var errorMessages = map[ErrorCode]string{
	ErrTxTerminalHeight:         "TX terminal height is out of range",
	ErrRxTerminalHeight:         "RX terminal height is out of range",
	ErrClimate:                  "invalid radio climate",
	ErrTime:                     "time percentage is out of range",
	ErrLocation:                 "location percentage is out of range",
	ErrSituation:                "situation percentage is out of range",
	ErrConfidence:               "confidence percentage is out of range",
	ErrReliability:              "reliability percentage is out of range",
	ErrRefractivity:             "surface refractivity is out of range",
	ErrFrequency:                "frequency is out of range",
	ErrPolarization:             "invalid polarization",
	ErrEpsilon:                  "relative permittivity is out of range",
	ErrSigma:                    "conductivity is out of range",
	ErrGroundImpedance:          "imaginary part of the ground impedance exceeds the real part",
	ErrModeOfVariability:        "invalid mode of variability",
	ErrEffectiveEarth:           "effective earth curvature is out of range",
	ErrPathDistance:             "path distance is out of range",
	ErrDeltaH:                   "terrain irregularity parameter is out of range",
	ErrTxSitingCriteria:         "invalid TX siting criteria",
	ErrRxSitingCriteria:         "invalid RX siting criteria",
	ErrSurfaceRefractivitySmall: "effective surface refractivity is too small",
	ErrSurfaceRefractivityLarge: "effective surface refractivity is too large",
	ErrTerrainProfile:           "malformed terrain profile",
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return fmt.Sprintf("itm error %d: %s", int(e), msg)
	}
	return fmt.Sprintf("itm error %d", int(e))
}

// Result is the outcome of one prediction.
type Result struct {
	Loss     float64   // basic transmission loss, dB; NaN when Err is set
	Warnings Warning   // advisory bits
	Err      ErrorCode // fatal input condition, ErrNone on success
	Mode     PropMode
}

// Failed builds the result of a rejected prediction.
func Failed(code ErrorCode, warnings Warning) Result {
	return Result{Loss: math.NaN(), Warnings: warnings, Err: code}
}

// Valid reports whether Loss is usable
func (r Result) Valid() bool {
	return r.Err == ErrNone
}

// ReturnCode is the packed boundary code: 0 success, 1 success with
// warnings, otherwise the error code.
func (r Result) ReturnCode() int {
	switch {
	case r.Err != ErrNone:
		return int(r.Err)
	case r.Warnings != NoWarnings:
		return 1
	}
	return 0
}

type resultJSON struct {
	Loss     *float64 `json:"loss"`
	Warnings Warning  `json:"warnings"`
	Flags    []string `json:"warningNames,omitempty"`
	Err      int      `json:"error"`
	Mode     string   `json:"mode"`
}

// MarshalJSON writes a null loss for failed results.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Warnings: r.Warnings, Err: int(r.Err), Mode: r.Mode.String()}
	if r.Valid() {
		loss := r.Loss
		out.Loss = &loss
	}
	if r.Warnings != NoWarnings {
		out.Flags = r.Warnings.Names()
	}
	return jsoniter.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON
func (r *Result) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := jsoniter.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Warnings = in.Warnings
	r.Err = ErrorCode(in.Err)
	r.Mode = parsePropMode(in.Mode)
	r.Loss = math.NaN()
	if in.Loss != nil {
		r.Loss = *in.Loss
	}
	return nil
}

func parsePropMode(s string) PropMode {
	for _, m := range []PropMode{PropModeLineOfSight, PropModeDiffraction, PropModeTroposcatter} {
		if m.String() == s {
			return m
		}
	}
	return PropModeNotSet
}
