package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfvri/itm/pkg/itm"
	"github.com/nfvri/itm/pkg/model"
	"github.com/nfvri/itm/pkg/observability"
	redisLib "github.com/nfvri/itm/pkg/store/redis"
	log "github.com/sirupsen/logrus"
)

// Engine runs independent link predictions in parallel.
type Engine struct {
	Store   redisLib.Store            // optional snapshot persistence
	Metrics *observability.Collector // optional
	Workers int                       // concurrent predictions, GOMAXPROCS when 0
}

// Run predicts every link. When snapshotId names a stored snapshot it is
// returned as is; otherwise the new snapshot is stored under snapshotId, or
// a fresh id when snapshotId is empty. Results keep the order of links.
func (e *Engine) Run(ctx context.Context, snapshotId string, links []model.Link) (model.Snapshot, error) {
	if e.Store != nil && snapshotId != "" {
		if cached, err := e.Store.GetSnapshot(ctx, snapshotId); err == nil {
			log.Debugf("snapshot %s served from store", snapshotId)
			return cached, nil
		}
	}
	if snapshotId == "" {
		snapshotId = uuid.New().String()
	}

	start := time.Now()
	results, err := e.predict(ctx, links)
	if err != nil {
		return model.Snapshot{}, err
	}
	e.Metrics.ObserveBatch(start)

	snapshot := model.Snapshot{ID: snapshotId, Created: start.UTC(), Results: results}
	if e.Store != nil {
		if err := e.Store.AddSnapshot(ctx, snapshot); err != nil {
			return snapshot, fmt.Errorf("failed to store snapshot %s: %v", snapshotId, err)
		}
	}
	log.Infof("snapshot %s: %d links, %d failed, %v", snapshotId, len(results), snapshot.Failures(), time.Since(start))
	return snapshot, nil
}

func (e *Engine) predict(ctx context.Context, links []model.Link) ([]model.LinkResult, error) {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]model.LinkResult, len(links))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range links {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			link := links[i]
			r := itm.PointToPoint(link.Profile, link.System, link.Variability)
			e.Metrics.Observe(r)
			results[i] = model.LinkResult{LinkID: link.ID, Distance: link.Profile.Distance(), Result: r}
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
