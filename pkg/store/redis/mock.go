package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/nfvri/itm/pkg/model"
)

// MockedRedisStore keeps snapshots in memory, encoded the way RedisStore
// encodes them.
type MockedRedisStore struct {
	mu        sync.Mutex
	snapshots map[string][]byte
}

func (m *MockedRedisStore) AddSnapshot(ctx context.Context, snapshot model.Snapshot) error {
	b, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %v ", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshots == nil {
		m.snapshots = map[string][]byte{}
	}
	m.snapshots[snapshot.ID] = b
	return nil
}

func (m *MockedRedisStore) GetSnapshot(ctx context.Context, snapshotId string) (model.Snapshot, error) {
	m.mu.Lock()
	b, ok := m.snapshots[snapshotId]
	m.mu.Unlock()
	if !ok {
		return model.Snapshot{}, fmt.Errorf("snapshot %s does not exist", snapshotId)
	}
	snapshot := model.Snapshot{}
	if err := json.Unmarshal(b, &snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %v ", err)
	}
	return snapshot, nil
}

func (m *MockedRedisStore) DeleteSnapshot(ctx context.Context, snapshotId string) (model.Snapshot, error) {
	snapshot, err := m.GetSnapshot(ctx, snapshotId)
	if err != nil {
		return model.Snapshot{}, err
	}
	m.mu.Lock()
	delete(m.snapshots, snapshotId)
	m.mu.Unlock()
	return snapshot, nil
}

// Len is the number of stored snapshots
func (m *MockedRedisStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}
