package graphs

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/nfvri/itm/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertWritten(t *testing.T, filename string) {
	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveProfile(t *testing.T) {
	z := make([]float64, 101)
	for i := range z {
		z[i] = 100 + 40*math.Sin(0.37*float64(i))
	}
	profile, err := model.NewTerrainProfile(250, z)
	require.NoError(t, err)
	sys := model.SystemParameters{TxHeight: 30, RxHeight: 10, Frequency: 900}

	filename := filepath.Join(t.TempDir(), "profile.png")
	require.NoError(t, SaveProfile(profile, sys, filename))
	assertWritten(t, filename)

	assert.Error(t, SaveProfile(model.TerrainProfile{}, sys, filename))
}

func TestSaveLossCurve(t *testing.T) {
	results := []model.LinkResult{
		{LinkID: "a@1", Distance: 10e3, Result: model.Result{Loss: 120}},
		{LinkID: "a@2", Distance: 20e3, Result: model.Result{Loss: 131}},
		{LinkID: "a@3", Distance: 30e3, Result: model.Failed(model.ErrTerrainProfile, model.NoWarnings)},
		{LinkID: "a@4", Distance: 40e3, Result: model.Result{Loss: 145}},
	}

	filename := filepath.Join(t.TempDir(), "loss.svg")
	require.NoError(t, SaveLossCurve(results, "sweep", filename))
	assertWritten(t, filename)

	assert.Error(t, SaveLossCurve(results[2:3], "failed", filename))
}

func TestSaveLossDistribution(t *testing.T) {
	losses := []float64{120, 121.5, 123, math.NaN(), 125, 126, 130}

	filename := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, SaveLossDistribution(losses, 5, filename))
	assertWritten(t, filename)

	assert.Error(t, SaveLossDistribution([]float64{math.NaN()}, 5, filename))
}
