package redis

import (
	"context"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nfvri/itm/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() model.Snapshot {
	return model.Snapshot{
		ID:      uuid.New().String(),
		Created: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Results: []model.LinkResult{
			{LinkID: "a", Distance: 50e3, Result: model.Result{Loss: 156.09, Mode: model.PropModeDiffraction}},
			{LinkID: "b", Distance: 1e3, Result: model.Failed(model.ErrTime, model.WarnFrequency)},
		},
	}
}

func checkStore(t *testing.T, s Store) {
	ctx := context.Background()
	snap := snapshot()
	require.NoError(t, s.AddSnapshot(ctx, snap))

	got, err := s.GetSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.True(t, snap.Created.Equal(got.Created))
	require.Len(t, got.Results, 2)
	assert.Equal(t, snap.Results[0], got.Results[0])
	assert.True(t, math.IsNaN(got.Results[1].Result.Loss))
	assert.Equal(t, model.ErrTime, got.Results[1].Result.Err)
	assert.Equal(t, model.WarnFrequency, got.Results[1].Result.Warnings)
	assert.Equal(t, 1, got.Failures())

	deleted, err := s.DeleteSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, deleted.ID)

	_, err = s.GetSnapshot(ctx, snap.ID)
	assert.Error(t, err)
	_, err = s.DeleteSnapshot(ctx, snap.ID)
	assert.Error(t, err)
}

func TestMockedRedisStore(t *testing.T) {
	m := &MockedRedisStore{}
	checkStore(t, m)
	assert.Equal(t, 0, m.Len())
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	host, port, _ := strings.Cut(addr, ":")
	client := InitClient(host, port, "0", "", "")
	require.NotNil(t, client)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := NewRedisStore(ctx, client)
	require.NoError(t, err)
	checkStore(t, s)
}

func TestInitClientBadDB(t *testing.T) {
	assert.Nil(t, InitClient("localhost", "6379", "zero", "", ""))
	_, err := NewRedisStore(context.Background(), nil)
	assert.Error(t, err)
}
