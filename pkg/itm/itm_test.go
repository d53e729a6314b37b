// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package itm

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/nfvri/itm/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ntiaTerrain = []float64{1692, 1692, 1693, 1693, 1693, 1693, 1693, 1693, 1694, 1694, 1694, 1694, 1694, 1694,
	1694, 1694, 1694, 1695, 1695, 1695, 1695, 1695, 1695, 1695, 1695, 1696, 1696, 1696,
	1696, 1696, 1696, 1697, 1697, 1697, 1697, 1697, 1697, 1697, 1697, 1697, 1697, 1698,
	1698, 1698, 1698, 1698, 1698, 1698, 1698, 1698, 1698, 1699, 1699, 1699, 1699, 1699,
	1699, 1700, 1700, 1700, 1700, 1700, 1700, 1700, 1701, 1701, 1701, 1701, 1701, 1701,
	1702, 1702, 1702, 1702, 1702, 1702, 1702, 1702, 1703, 1703, 1703, 1703, 1703, 1703,
	1703, 1703, 1703, 1704, 1704, 1704, 1704, 1704, 1704, 1704, 1704, 1705, 1705, 1705,
	1705, 1705, 1705, 1705, 1705, 1705, 1705, 1706, 1706, 1706, 1706, 1706, 1706, 1706,
	1706, 1706, 1707, 1707, 1707, 1707, 1707, 1707, 1707, 1708, 1708, 1708, 1708, 1708,
	1708, 1708, 1708, 1709, 1709, 1709, 1709, 1709, 1710, 1710, 1710, 1710, 1710, 1710,
	1710, 1710, 1709}

var median = model.VariabilitySpec{Mode: model.ModeSingleMessage, Time: 50, Location: 50, Situation: 50}

func flatSystem() model.SystemParameters {
	return model.SystemParameters{
		TxHeight:     10,
		RxHeight:     10,
		Frequency:    100,
		Polarization: model.PolarizationHorizontal,
		Permittivity: 15,
		Conductivity: 0.005,
		Refractivity: 301,
		Climate:      model.ClimateContinentalTemperate,
	}
}

func roughSystem() model.SystemParameters {
	sys := flatSystem()
	sys.TxHeight = 20
	sys.Frequency = 300
	return sys
}

func flat(t *testing.T, n int, step float64) model.TerrainProfile {
	p, err := model.NewTerrainProfile(step, make([]float64, n+1))
	require.NoError(t, err)
	return p
}

func rough(t *testing.T, n int, step float64) model.TerrainProfile {
	z := make([]float64, n+1)
	for i := range z {
		z[i] = 100 + 40*math.Sin(0.37*float64(i)) + 25*math.Sin(0.11*float64(i)+1)
	}
	p, err := model.NewTerrainProfile(step, z)
	require.NoError(t, err)
	return p
}

func TestReferencePath(t *testing.T) {
	pfl := append([]float64{float64(len(ntiaTerrain) - 1), 25.6}, ntiaTerrain...)
	loss, warnings, code := P2P(15, 3, pfl, 5, 301, 3500, 1, 15, 0.005, 1, 50, 50, 50)
	fmt.Printf("reference path loss: %.6f dB\n", loss)
	assert.InDelta(t, 114.536076339885, loss, 1e-3)
	assert.Equal(t, int64(model.WarnNegativeLossClamped), warnings)
	assert.Equal(t, 1, code)

	profile, err := model.ParsePFL(pfl)
	require.NoError(t, err)
	sys := model.SystemParameters{
		TxHeight: 15, RxHeight: 3, Frequency: 3500, Polarization: model.PolarizationVertical,
		Permittivity: 15, Conductivity: 0.005, Refractivity: 301, Climate: model.ClimateContinentalTemperate,
	}
	r, iv := PointToPointEx(profile, sys, model.VariabilitySpec{Mode: model.ModeAccidental, Time: 50, Location: 50, Situation: 50})
	assert.True(t, r.Valid())
	assert.Equal(t, model.PropModeLineOfSight, r.Mode)
	assert.Equal(t, 0.0, iv.ReferenceAttenuation)
	assert.InDelta(t, 3.1842929300648373, iv.Geometry.DeltaH, 1e-9)
	assert.InDelta(t, 251.45377501610133, iv.SurfaceRefractivity, 1e-9)
	assert.InDelta(t, 22222.99769042578, iv.SmoothEarthDistance, 1e-6)
}

func TestFlatScenario(t *testing.T) {
	// a 50 km flat path at 10 m is beyond the smooth-earth horizon sum
	// (about 26 km), so it is a diffraction path
	for _, c := range []struct {
		n    int
		step float64
	}{{100, 500}, {500, 100}} {
		r, iv := PointToPointEx(flat(t, c.n, c.step), flatSystem(), median)
		require.True(t, r.Valid())
		assert.Equal(t, model.PropModeDiffraction, r.Mode)
		assert.Equal(t, model.NoWarnings, r.Warnings)
		assert.InDelta(t, 156.0897451205668, r.Loss, 0.01)
		assert.InDelta(t, 106.42940008672038, iv.FreeSpaceLoss, 1e-9)
		assert.InDelta(t, 50.033724022236484, iv.ReferenceAttenuation, 1e-6)
		assert.InDelta(t, 70932.66617441004, iv.Crossover, 1e-3)
	}
}

func TestFlatLossByDistance(t *testing.T) {
	tests := []struct {
		km   float64
		mode model.PropMode
	}{
		{1, model.PropModeLineOfSight},
		{10, model.PropModeLineOfSight},
		{26, model.PropModeLineOfSight},
		{27, model.PropModeDiffraction},
		{80, model.PropModeTroposcatter},
	}
	prev := 0.0
	for _, tt := range tests {
		r := PointToPoint(flat(t, 100, tt.km*10), flatSystem(), median)
		assert.Equal(t, tt.mode, r.Mode, "%v km", tt.km)
		assert.Greater(t, r.Loss, prev)
		prev = r.Loss
	}
}

func TestRegimeContinuity(t *testing.T) {
	const dLs = 26065.2464912324
	at := func(fraction float64) model.Result {
		return PointToPoint(flat(t, 100, dLs*fraction/100), flatSystem(), median)
	}
	below := at(0.99)
	boundary := at(1.0)
	above := at(1.01)
	assert.Equal(t, model.PropModeLineOfSight, below.Mode)
	assert.Equal(t, model.PropModeDiffraction, boundary.Mode)
	assert.Equal(t, model.PropModeDiffraction, above.Mode)
	assert.InDelta(t, below.Loss, boundary.Loss, 1.5)
	assert.InDelta(t, boundary.Loss, above.Loss, 1.5)
	assert.InDelta(t, at(0.999).Loss, boundary.Loss, 0.1)
}

func TestDistanceMonotonicity(t *testing.T) {
	for _, h := range [][2]float64{{20, 10}, {30, 30}, {10, 3}} {
		sys := roughSystem()
		sys.TxHeight, sys.RxHeight = h[0], h[1]
		prev := 0.0
		for km := 5.0; km < 400; km += 5 {
			// the same terrain stretched over a longer path
			_, iv := PointToPointEx(rough(t, 150, km*1000/150), sys, median)
			ref := iv.ReferenceAttenuation + iv.FreeSpaceLoss
			assert.GreaterOrEqual(t, ref, prev, "heights %v at %v km", h, km)
			prev = ref
		}
	}

	prev := 0.0
	for n := 4; n < 1200; n += 4 {
		_, iv := PointToPointEx(flat(t, n, 250), flatSystem(), median)
		ref := iv.ReferenceAttenuation + iv.FreeSpaceLoss
		assert.GreaterOrEqual(t, ref, prev, "flat %d intervals", n)
		prev = ref
	}
}

func TestPercentileOrdering(t *testing.T) {
	profile := rough(t, 200, 500)
	at := func(mode model.ModeOfVariability, time, location, situation float64) float64 {
		r := PointToPoint(profile, roughSystem(), model.VariabilitySpec{Mode: mode, Time: time, Location: location, Situation: situation})
		require.True(t, r.Valid())
		return r.Loss
	}

	for _, mode := range []model.ModeOfVariability{0, 1, 2, 3, 13, 23, 33} {
		s10, s50, s90 := at(mode, 50, 50, 10), at(mode, 50, 50, 50), at(mode, 50, 50, 90)
		assert.GreaterOrEqual(t, s90, s50, "mode %d", mode)
		assert.GreaterOrEqual(t, s50, s10, "mode %d", mode)
		t10, t90 := at(mode, 10, 50, 50), at(mode, 90, 50, 50)
		assert.GreaterOrEqual(t, t90, t10, "mode %d", mode)
	}

	assert.InDelta(t, 166.7230650853856, at(0, 50, 50, 10), 1e-6)
	assert.InDelta(t, 187.98480579222814, at(0, 50, 50, 50), 1e-6)
	assert.InDelta(t, 206.11435438524433, at(0, 50, 50, 90), 1e-6)
	// single message: only the situation matters
	assert.InDelta(t, at(0, 50, 50, 50), at(0, 90, 10, 50), 1e-9)

	assert.InDelta(t, 180.68052025610052, at(3, 50, 50, 10), 1e-6)
	assert.InDelta(t, 195.2890913152563, at(3, 50, 50, 90), 1e-6)
	assert.InDelta(t, 173.94560873631545, at(3, 10, 50, 50), 1e-6)
	assert.InDelta(t, 197.57658939414554, at(3, 90, 50, 50), 1e-6)
	assert.InDelta(t, 175.44505482525508, at(3, 50, 10, 50), 1e-6)
	assert.InDelta(t, 200.52455675539707, at(3, 50, 90, 50), 1e-6)

	// +10 removes location variability, +20 situation variability
	assert.InDelta(t, at(13, 50, 50, 50), at(13, 50, 90, 50), 1e-9)
	assert.InDelta(t, at(23, 50, 50, 10), at(23, 50, 50, 90), 1e-6)
	assert.InDelta(t, 206.26407560116627, at(3, 95, 50, 80), 1e-6)
}

func TestPointToPointCR(t *testing.T) {
	profile := rough(t, 200, 500)
	cr := PointToPointCR(profile, roughSystem(), model.ModeBroadcast, 80, 95)
	tls := PointToPoint(profile, roughSystem(), model.VariabilitySpec{Mode: model.ModeBroadcast, Time: 95, Location: 50, Situation: 80})
	assert.Equal(t, tls, cr)

	assert.Equal(t, model.ErrConfidence, PointToPointCR(profile, roughSystem(), model.ModeBroadcast, 0, 50).Err)
	assert.Equal(t, model.ErrReliability, PointToPointCR(profile, roughSystem(), model.ModeBroadcast, 50, 100).Err)
	assert.Equal(t, model.ErrModeOfVariability, PointToPointCR(profile, roughSystem(), 4, 50, 50).Err)
	assert.Equal(t, model.ErrTerrainProfile, PointToPointCR(model.TerrainProfile{}, roughSystem(), 3, 50, 50).Err)
}

func TestBoundaryRejection(t *testing.T) {
	profile := flat(t, 100, 500)
	sys := flatSystem
	tests := []struct {
		name string
		sys  model.SystemParameters
		v    model.VariabilitySpec
		want model.ErrorCode
	}{
		{"time 0", sys(), model.VariabilitySpec{Time: 0, Location: 50, Situation: 50}, model.ErrTime},
		{"time 100", sys(), model.VariabilitySpec{Time: 100, Location: 50, Situation: 50}, model.ErrTime},
		{"location 0", sys(), model.VariabilitySpec{Time: 50, Location: 0, Situation: 50}, model.ErrLocation},
		{"situation 100", sys(), model.VariabilitySpec{Time: 50, Location: 50, Situation: 100}, model.ErrSituation},
		{"situation NaN", sys(), model.VariabilitySpec{Time: 50, Location: 50, Situation: math.NaN()}, model.ErrSituation},
		{"mode 4", sys(), model.VariabilitySpec{Mode: 4, Time: 50, Location: 50, Situation: 50}, model.ErrModeOfVariability},
		{"tx height 0", func() model.SystemParameters { s := sys(); s.TxHeight = 0; return s }(), median, model.ErrTxTerminalHeight},
		{"rx height negative", func() model.SystemParameters { s := sys(); s.RxHeight = -1; return s }(), median, model.ErrRxTerminalHeight},
		{"frequency 0", func() model.SystemParameters { s := sys(); s.Frequency = 0; return s }(), median, model.ErrFrequency},
		{"frequency high", func() model.SystemParameters { s := sys(); s.Frequency = 25000; return s }(), median, model.ErrFrequency},
		{"climate 0", func() model.SystemParameters { s := sys(); s.Climate = 0; return s }(), median, model.ErrClimate},
		{"refractivity", func() model.SystemParameters { s := sys(); s.Refractivity = 200; return s }(), median, model.ErrRefractivity},
		{"polarization", func() model.SystemParameters { s := sys(); s.Polarization = 2; return s }(), median, model.ErrPolarization},
		{"epsilon", func() model.SystemParameters { s := sys(); s.Permittivity = 0.5; return s }(), median, model.ErrEpsilon},
		{"sigma", func() model.SystemParameters { s := sys(); s.Conductivity = 0; return s }(), median, model.ErrSigma},
	}
	for _, tt := range tests {
		r := PointToPoint(profile, tt.sys, tt.v)
		assert.Equal(t, tt.want, r.Err, tt.name)
		assert.False(t, r.Valid(), tt.name)
		assert.True(t, math.IsNaN(r.Loss), tt.name)
		assert.Equal(t, int(tt.want), r.ReturnCode(), tt.name)
	}

	assert.Equal(t, model.ErrTerrainProfile, PointToPoint(model.TerrainProfile{}, sys(), median).Err)
}

func TestAdvisoryWarnings(t *testing.T) {
	sys := flatSystem()
	sys.TxHeight = 0.8
	sys.Frequency = 30
	r := PointToPoint(flat(t, 100, 500), sys, median)
	assert.True(t, r.Valid())
	assert.True(t, r.Warnings.Has(model.WarnTxTerminalHeight))
	assert.True(t, r.Warnings.Has(model.WarnFrequency))
	assert.False(t, r.Warnings.Has(model.WarnRxTerminalHeight))

	r = PointToPoint(flat(t, 10, 50), flatSystem(), median)
	assert.True(t, r.Warnings.Has(model.WarnPathDistanceSmall1km))

	r = PointToPoint(flat(t, 100, 500), flatSystem(), model.VariabilitySpec{Mode: 3, Time: 0.01, Location: 50, Situation: 50})
	assert.True(t, r.Valid())
	assert.True(t, r.Warnings.Has(model.WarnExtremeVariabilities))
}

func TestNegativeLossClamped(t *testing.T) {
	// 1 m at 20 MHz: free space loss is already below zero
	profile, err := model.NewTerrainProfile(0.5, []float64{0, 0, 0})
	require.NoError(t, err)
	sys := flatSystem()
	sys.Frequency = 20

	r, iv := PointToPointEx(profile, sys, median)
	require.True(t, r.Valid())
	assert.Less(t, iv.FreeSpaceLoss, 0.0)
	assert.Equal(t, 0.0, r.Loss)
	assert.True(t, r.Warnings.Has(model.WarnNegativeLossClamped))
	assert.Equal(t, 1, r.ReturnCode())

	loss, warnings, code := P2P(10, 10, profile.PFL(), 5, 301, 20, 0, 15, 0.005, 0, 50, 50, 50)
	assert.Equal(t, 0.0, loss)
	assert.NotZero(t, warnings&int64(model.WarnNegativeLossClamped))
	assert.Equal(t, 1, code)
}

func TestExtremeVariabilitiesUsedDeviatesOnly(t *testing.T) {
	profile := flat(t, 100, 500)

	// single message mode takes every deviate from the situation
	ignored := PointToPoint(profile, flatSystem(), model.VariabilitySpec{Mode: model.ModeSingleMessage, Time: 0.01, Location: 50, Situation: 50})
	require.True(t, ignored.Valid())
	assert.False(t, ignored.Warnings.Has(model.WarnExtremeVariabilities))
	assert.Equal(t, PointToPoint(profile, flatSystem(), median).Loss, ignored.Loss)

	used := PointToPoint(profile, flatSystem(), model.VariabilitySpec{Mode: model.ModeSingleMessage, Time: 50, Location: 50, Situation: 0.01})
	require.True(t, used.Valid())
	assert.True(t, used.Warnings.Has(model.WarnExtremeVariabilities))
}

func TestP2PPacked(t *testing.T) {
	pfl := append([]float64{100, 500}, make([]float64, 101)...)
	loss, warnings, code := P2P(10, 10, pfl, 5, 301, 100, 0, 15, 0.005, 0, 50, 50, 50)
	assert.InDelta(t, 156.0897451205668, loss, 0.01)
	assert.Equal(t, int64(0), warnings)
	assert.Equal(t, 0, code)

	loss, _, code = P2P(10, 10, pfl[:50], 5, 301, 100, 0, 15, 0.005, 0, 50, 50, 50)
	assert.True(t, math.IsNaN(loss))
	assert.Equal(t, int(model.ErrTerrainProfile), code)

	// input errors take precedence over the profile
	_, _, code = P2P(10, 10, nil, 5, 301, 100, 0, 15, 0.005, 0, 0, 50, 50)
	assert.Equal(t, int(model.ErrTime), code)

	_, _, code = P2P(10, 10, pfl, 9, 301, 100, 0, 15, 0.005, 0, 50, 50, 50)
	assert.Equal(t, int(model.ErrClimate), code)
}

func TestDeterminism(t *testing.T) {
	profile := rough(t, 200, 500)
	sys := roughSystem()
	v := model.VariabilitySpec{Mode: model.ModeBroadcast, Time: 90, Location: 70, Situation: 60}
	want := PointToPoint(profile, sys, v)

	var wg sync.WaitGroup
	results := make([]model.Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = PointToPoint(profile, sys, v)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, math.Float64bits(want.Loss), math.Float64bits(r.Loss))
		assert.Equal(t, want.Warnings, r.Warnings)
		assert.Equal(t, want.Err, r.Err)
	}
}
