package batch

import (
	"context"
	"fmt"
	"testing"

	"github.com/nfvri/itm/pkg/itm"
	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/observability"
	redisLib "github.com/nfvri/itm/pkg/store/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var system = model.SystemParameters{
	TxHeight:     10,
	RxHeight:     10,
	Frequency:    100,
	Polarization: model.PolarizationHorizontal,
	Permittivity: 15,
	Conductivity: 0.005,
	Refractivity: 301,
	Climate:      model.ClimateContinentalTemperate,
}

var median = model.VariabilitySpec{Mode: model.ModeSingleMessage, Time: 50, Location: 50, Situation: 50}

func flatLink(t *testing.T, id string, n int, step float64) model.Link {
	p, err := model.NewTerrainProfile(step, make([]float64, n+1))
	require.NoError(t, err)
	return model.Link{ID: id, Profile: p, System: system, Variability: median}
}

func links(t *testing.T) []model.Link {
	ls := []model.Link{}
	for km := 1; km <= 40; km++ {
		ls = append(ls, flatLink(t, fmt.Sprintf("link-%d", km), 100, float64(km)*10))
	}
	bad := flatLink(t, "bad", 100, 100)
	bad.Variability.Time = 0
	return append(ls, bad)
}

func TestRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewCollector(reg)
	require.NoError(t, err)
	store := &redisLib.MockedRedisStore{}
	e := &Engine{Store: store, Metrics: metrics, Workers: 4}

	ls := links(t)
	snap, err := e.Run(context.Background(), "", ls)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	require.Len(t, snap.Results, len(ls))
	assert.Equal(t, 1, snap.Failures())

	for i, r := range snap.Results {
		assert.Equal(t, ls[i].ID, r.LinkID)
		assert.Equal(t, ls[i].Profile.Distance(), r.Distance)
		want := itm.PointToPoint(ls[i].Profile, ls[i].System, ls[i].Variability)
		if want.Valid() {
			assert.Equal(t, want, r.Result)
		} else {
			assert.Equal(t, want.Err, r.Result.Err)
		}
	}

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Errors.WithLabelValues("1003")))
}

func TestRunCachedSnapshot(t *testing.T) {
	store := &redisLib.MockedRedisStore{}
	e := &Engine{Store: store}

	first, err := e.Run(context.Background(), "snap-1", links(t)[:3])
	require.NoError(t, err)
	assert.Equal(t, "snap-1", first.ID)

	// a stored snapshot is returned without recomputation
	again, err := e.Run(context.Background(), "snap-1", nil)
	require.NoError(t, err)
	assert.Len(t, again.Results, 3)
	assert.Equal(t, first.Results[0], again.Results[0])
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := &Engine{Workers: 1}
	_, err := e.Run(ctx, "", links(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep(t *testing.T) {
	e := &Engine{}
	link := flatLink(t, "flat", 400, 250)
	results, err := e.Sweep(context.Background(), link, 8)
	require.NoError(t, err)
	require.Len(t, results, 8)
	assert.Equal(t, "flat@50", results[0].LinkID)
	assert.Equal(t, 12500.0, results[0].Distance)
	assert.Equal(t, 100e3, results[7].Distance)

	prev := 0.0
	for _, r := range results {
		require.True(t, r.Result.Valid())
		assert.Greater(t, r.Result.Loss, prev)
		prev = r.Result.Loss
	}

	_, err = SweepLinks(link, 0)
	assert.Error(t, err)
	short, err := SweepLinks(flatLink(t, "short", 3, 100), 10)
	require.NoError(t, err)
	assert.Len(t, short, 3)
}
