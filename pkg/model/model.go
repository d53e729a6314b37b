// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"

	"github.com/onosproject/onos-lib-go/pkg/errors"
)

// Climate is the radio climate of the path
type Climate int

const (
	ClimateEquatorial                Climate = 1
	ClimateContinentalSubtropical    Climate = 2
	ClimateMaritimeSubtropical       Climate = 3
	ClimateDesert                    Climate = 4
	ClimateContinentalTemperate      Climate = 5
	ClimateMaritimeTemperateOverLand Climate = 6
	ClimateMaritimeTemperateOverSea  Climate = 7
)

var climateNames = map[Climate]string{
	ClimateEquatorial:                "equatorial",
	ClimateContinentalSubtropical:    "continental-subtropical",
	ClimateMaritimeSubtropical:       "maritime-subtropical",
	ClimateDesert:                    "desert",
	ClimateContinentalTemperate:      "continental-temperate",
	ClimateMaritimeTemperateOverLand: "maritime-temperate-over-land",
	ClimateMaritimeTemperateOverSea:  "maritime-temperate-over-sea",
}

// Valid reports whether c is one of the seven radio climates
func (c Climate) Valid() bool {
	return c >= ClimateEquatorial && c <= ClimateMaritimeTemperateOverSea
}

func (c Climate) String() string {
	if name, ok := climateNames[c]; ok {
		return name
	}
	return fmt.Sprintf("climate(%d)", int(c))
}

// ParseClimate maps a climate name back to its code.
func ParseClimate(name string) (Climate, error) {
	for c, n := range climateNames {
		if n == name {
			return c, nil
		}
	}
	return 0, errors.New(errors.Invalid, "unknown radio climate %q", name)
}

// Polarization of both antennas
type Polarization int

const (
	PolarizationHorizontal Polarization = 0
	PolarizationVertical   Polarization = 1
)

// Valid reports whether p is horizontal or vertical
func (p Polarization) Valid() bool {
	return p == PolarizationHorizontal || p == PolarizationVertical
}

func (p Polarization) String() string {
	switch p {
	case PolarizationHorizontal:
		return "horizontal"
	case PolarizationVertical:
		return "vertical"
	}
	return fmt.Sprintf("polarization(%d)", int(p))
}

// ModeOfVariability selects how time, location and situation variability are
// combined. The tens digit carries the elimination flags.
type ModeOfVariability int

const (
	ModeSingleMessage ModeOfVariability = 0
	ModeAccidental    ModeOfVariability = 1
	ModeMobile        ModeOfVariability = 2
	ModeBroadcast     ModeOfVariability = 3

	// EliminateLocation removes location variability (point-to-point links)
	EliminateLocation ModeOfVariability = 10
	// EliminateSituation removes direct situation variability
	EliminateSituation ModeOfVariability = 20
)

// Base returns the combination policy with the elimination flags stripped.
func (m ModeOfVariability) Base() ModeOfVariability {
	b := m
	if b >= EliminateSituation {
		b -= EliminateSituation
	}
	if b >= EliminateLocation {
		b -= EliminateLocation
	}
	return b
}

// LocationEliminated reports whether the +10 flag is set.
func (m ModeOfVariability) LocationEliminated() bool {
	b := m
	if b >= EliminateSituation {
		b -= EliminateSituation
	}
	return b >= EliminateLocation
}

// SituationEliminated reports whether the +20 flag is set.
func (m ModeOfVariability) SituationEliminated() bool {
	return m >= EliminateSituation
}

// Valid accepts 0..3 with any combination of the elimination flags.
func (m ModeOfVariability) Valid() bool {
	if m < 0 || m > 33 {
		return false
	}
	return m%10 <= 3
}

func (m ModeOfVariability) String() string {
	names := [...]string{"single-message", "accidental", "mobile", "broadcast"}
	if !m.Valid() {
		return fmt.Sprintf("mdvar(%d)", int(m))
	}
	s := names[m.Base()]
	if m.LocationEliminated() {
		s += "+no-location"
	}
	if m.SituationEliminated() {
		s += "+no-situation"
	}
	return s
}

// SitingCriteria describes how carefully an area-mode terminal was sited
type SitingCriteria int

const (
	SitingRandom      SitingCriteria = 0
	SitingCareful     SitingCriteria = 1
	SitingVeryCareful SitingCriteria = 2
)

// Valid reports whether s is a known siting criterion
func (s SitingCriteria) Valid() bool {
	return s >= SitingRandom && s <= SitingVeryCareful
}

// PropMode is the dominant propagation mechanism of a path
type PropMode int

const (
	PropModeNotSet       PropMode = 0
	PropModeLineOfSight  PropMode = 1
	PropModeDiffraction  PropMode = 2
	PropModeTroposcatter PropMode = 3
)

func (m PropMode) String() string {
	switch m {
	case PropModeLineOfSight:
		return "line-of-sight"
	case PropModeDiffraction:
		return "diffraction"
	case PropModeTroposcatter:
		return "troposcatter"
	}
	return "not-set"
}

// SystemParameters are the radio system and environment inputs of a prediction
type SystemParameters struct {
	TxHeight     float64      `mapstructure:"txHeight" yaml:"txHeight" json:"txHeight"`          // structural height above ground, meters
	RxHeight     float64      `mapstructure:"rxHeight" yaml:"rxHeight" json:"rxHeight"`          // structural height above ground, meters
	Frequency    float64      `mapstructure:"frequency" yaml:"frequency" json:"frequency"`       // MHz
	Polarization Polarization `mapstructure:"polarization" yaml:"polarization" json:"polarization"`
	Permittivity float64      `mapstructure:"permittivity" yaml:"permittivity" json:"permittivity"` // relative
	Conductivity float64      `mapstructure:"conductivity" yaml:"conductivity" json:"conductivity"` // S/m
	Refractivity float64      `mapstructure:"refractivity" yaml:"refractivity" json:"refractivity"` // N-units
	Climate      Climate      `mapstructure:"climate" yaml:"climate" json:"climate"`
}

// Heights returns the structural heights as a TX/RX pair.
func (s SystemParameters) Heights() [2]float64 {
	return [2]float64{s.TxHeight, s.RxHeight}
}

// VariabilitySpec selects the statistics of the returned loss
type VariabilitySpec struct {
	Mode      ModeOfVariability `mapstructure:"mode" yaml:"mode" json:"mode"`
	Time      float64           `mapstructure:"time" yaml:"time" json:"time"`                // percent, 0 < time < 100
	Location  float64           `mapstructure:"location" yaml:"location" json:"location"`    // percent
	Situation float64           `mapstructure:"situation" yaml:"situation" json:"situation"` // percent
}

// AreaParameters replace the terrain profile in area prediction mode
type AreaParameters struct {
	DeltaH   float64        `mapstructure:"deltaH" yaml:"deltaH" json:"deltaH"`       // terrain irregularity, meters
	Distance float64        `mapstructure:"distance" yaml:"distance" json:"distance"` // km
	TxSiting SitingCriteria `mapstructure:"txSiting" yaml:"txSiting" json:"txSiting"`
	RxSiting SitingCriteria `mapstructure:"rxSiting" yaml:"rxSiting" json:"rxSiting"`
}

// Ground is a pair of ground electrical constants
type Ground struct {
	Permittivity float64
	Conductivity float64
}

// Suggested ground constants.
var (
	GroundPoor       = Ground{Permittivity: 4, Conductivity: 0.001}
	GroundAverage    = Ground{Permittivity: 15, Conductivity: 0.005}
	GroundGood       = Ground{Permittivity: 25, Conductivity: 0.02}
	GroundFreshWater = Ground{Permittivity: 25, Conductivity: 0.01}
	GroundSeaWater   = Ground{Permittivity: 25, Conductivity: 5.0}
)

var grounds = map[string]Ground{
	"poor":        GroundPoor,
	"average":     GroundAverage,
	"good":        GroundGood,
	"fresh-water": GroundFreshWater,
	"sea-water":   GroundSeaWater,
}

// ParseGround returns the suggested constants for a ground name.
func ParseGround(name string) (Ground, error) {
	g, ok := grounds[name]
	if !ok {
		return Ground{}, errors.New(errors.Invalid, "unknown ground %q", name)
	}
	return g, nil
}

// Coordinate represents a geographical location
type Coordinate struct {
	Lat float64 `mapstructure:"lat" yaml:"lat" json:"lat"`
	Lng float64 `mapstructure:"lng" yaml:"lng" json:"lng"`
}
