package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/nfvri/itm/pkg/model"
	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const snapshotSuffix = "-Snapshot"

// Store persists batch snapshots
type Store interface {
	AddSnapshot(ctx context.Context, snapshot model.Snapshot) error
	GetSnapshot(ctx context.Context, snapshotId string) (model.Snapshot, error)
	DeleteSnapshot(ctx context.Context, snapshotId string) (model.Snapshot, error)
}

type RedisStore struct {
	SnapshotDB *goredis.Client
}

func InitClient(redisHost, redisPort, db, username, password string) *goredis.Client {

	database, err := strconv.Atoi(db)
	if err != nil {
		log.Error(err)
		return nil
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
		Username: username,
		Password: password,
		DB:       database,
	})
}

// NewRedisStore waits for the server behind client to answer, retrying
// with exponential backoff until ctx is done.
func NewRedisStore(ctx context.Context, client *goredis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is not initialised")
	}
	ping := func() error {
		err := client.Ping(ctx).Err()
		if err != nil {
			log.Warnf("redis at %s not ready: %v", client.Options().Addr, err)
		}
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	if err := backoff.Retry(ping, policy); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}
	return &RedisStore{SnapshotDB: client}, nil
}

func (s *RedisStore) AddSnapshot(ctx context.Context, snapshot model.Snapshot) error {

	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %v ", err)
	}

	return s.SnapshotDB.Set(ctx, snapshot.ID+snapshotSuffix, snapshotBytes, time.Duration(0)).Err()
}

func (s *RedisStore) GetSnapshot(ctx context.Context, snapshotId string) (model.Snapshot, error) {
	snapshotBytes, err := s.SnapshotDB.Get(ctx, snapshotId+snapshotSuffix).Result()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("error fetching snapshot %s: %v", snapshotId, err)
	}

	if len(snapshotBytes) == 0 {
		return model.Snapshot{}, fmt.Errorf("snapshot %s does not exist", snapshotId)
	}

	snapshot := model.Snapshot{}
	err = json.Unmarshal([]byte(snapshotBytes), &snapshot)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %v ", err)
	}

	return snapshot, nil
}

func (s *RedisStore) DeleteSnapshot(ctx context.Context, snapshotId string) (model.Snapshot, error) {
	snapshot, err := s.GetSnapshot(ctx, snapshotId)
	if err != nil {
		return model.Snapshot{}, err
	}

	err = s.SnapshotDB.Del(ctx, snapshotId+snapshotSuffix).Err()
	return snapshot, err
}
