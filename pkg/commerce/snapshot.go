package commerce

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// SnapshotLoader fetches several collections concurrently. The first failure
// cancels the remaining requests.
type SnapshotLoader struct {
	Client Client
	// Limit bounds concurrent requests; zero means one goroutine per collection.
	Limit int
}

// NewSnapshotLoader builds a loader over client.
func NewSnapshotLoader(client Client, limit int) *SnapshotLoader {
	return &SnapshotLoader{Client: client, Limit: limit}
}

var _ dashboard.SnapshotLoader = (*SnapshotLoader)(nil)

// Snapshot implements dashboard.SnapshotLoader.
func (l *SnapshotLoader) Snapshot(ctx context.Context, collections ...string) (map[string][]listview.Record, error) {
	if l == nil || l.Client == nil {
		return nil, errors.New("commerce: snapshot loader requires a client")
	}
	g, gctx := errgroup.WithContext(ctx)
	if l.Limit > 0 {
		g.SetLimit(l.Limit)
	}
	var mu sync.Mutex
	out := make(map[string][]listview.Record, len(collections))
	for _, collection := range collections {
		g.Go(func() error {
			records, err := l.Client.FetchCollection(gctx, collection)
			if err != nil {
				return fmt.Errorf("commerce: snapshot %s: %w", collection, err)
			}
			mu.Lock()
			out[collection] = records
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
