// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"math"

	jsoniter "github.com/json-iterator/go"
)

// TerrainProfile is a uniformly spaced elevation profile from the TX to the RX
// terminal. Values are immutable once constructed.
type TerrainProfile struct {
	step       float64
	elevations []float64
}

// NewTerrainProfile copies elevations into a new profile with the given step
// in meters. At least two samples and a positive step are required.
func NewTerrainProfile(step float64, elevations []float64) (TerrainProfile, error) {
	if len(elevations) < 2 || !(step > 0) || math.IsInf(step, 0) {
		return TerrainProfile{}, ErrTerrainProfile
	}
	for _, z := range elevations {
		if math.IsNaN(z) || math.IsInf(z, 0) {
			return TerrainProfile{}, ErrTerrainProfile
		}
	}
	e := make([]float64, len(elevations))
	copy(e, elevations)
	return TerrainProfile{step: step, elevations: e}, nil
}

// ParsePFL decodes the packed [intervals, step, z0 ... zN] encoding.
func ParsePFL(pfl []float64) (TerrainProfile, error) {
	if len(pfl) < 4 {
		return TerrainProfile{}, ErrTerrainProfile
	}
	n := pfl[0]
	if n < 1 || n != math.Trunc(n) || int(n)+3 != len(pfl) {
		return TerrainProfile{}, ErrTerrainProfile
	}
	return NewTerrainProfile(pfl[1], pfl[2:])
}

// Step is the sample spacing in meters
func (p TerrainProfile) Step() float64 {
	return p.step
}

// Intervals is the number of steps between the first and last sample
func (p TerrainProfile) Intervals() int {
	return len(p.elevations) - 1
}

// Len is the number of samples
func (p TerrainProfile) Len() int {
	return len(p.elevations)
}

// Distance is the path length in meters
func (p TerrainProfile) Distance() float64 {
	return float64(p.Intervals()) * p.step
}

// At returns the elevation of sample i
func (p TerrainProfile) At(i int) float64 {
	return p.elevations[i]
}

// Elevations returns a copy of the samples.
func (p TerrainProfile) Elevations() []float64 {
	e := make([]float64, len(p.elevations))
	copy(e, p.elevations)
	return e
}

// IsZero reports whether p was never initialised
func (p TerrainProfile) IsZero() bool {
	return len(p.elevations) == 0
}

// Truncate returns the first n intervals of the profile, sharing no storage
// with p.
func (p TerrainProfile) Truncate(n int) (TerrainProfile, error) {
	if n < 1 || n > p.Intervals() {
		return TerrainProfile{}, ErrTerrainProfile
	}
	return NewTerrainProfile(p.step, p.elevations[:n+1])
}

// PFL re-encodes the profile in the packed format.
func (p TerrainProfile) PFL() []float64 {
	pfl := make([]float64, 0, len(p.elevations)+2)
	pfl = append(pfl, float64(p.Intervals()), p.step)
	return append(pfl, p.elevations...)
}

// MarshalJSON encodes the profile as a PFL array
func (p TerrainProfile) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(p.PFL())
}

// UnmarshalJSON decodes a PFL array
func (p *TerrainProfile) UnmarshalJSON(data []byte) error {
	var pfl []float64
	if err := jsoniter.Unmarshal(data, &pfl); err != nil {
		return err
	}
	parsed, err := ParsePFL(pfl)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
