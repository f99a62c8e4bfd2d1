package mongodb

import (
	"context"
	"sync"
	"sync/atomic"
)

// indexGuard creates indexes once, retrying on every call until it
// succeeds. A cluster that is down at startup gets its indexes on the
// first call after it comes back.
type indexGuard struct {
	mu     sync.Mutex
	done   atomic.Bool
	create func(ctx context.Context) error
}

func (g *indexGuard) ensure(ctx context.Context) error {
	if g == nil || g.done.Load() {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.done.Load() {
		return nil
	}
	if err := g.create(ctx); err != nil {
		return err
	}
	g.done.Store(true)
	return nil
}
