package reconciler

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Guard runs at most one function at a time per key. Waiters queue in
// arrival order and give up when their context ends.
type Guard struct {
	mu   sync.Mutex
	sems map[string]*semaphore.Weighted
}

func NewGuard() *Guard {
	return &Guard{sems: make(map[string]*semaphore.Weighted)}
}

func (g *Guard) sem(key string) *semaphore.Weighted {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.sems[key]
	if !ok {
		s = semaphore.NewWeighted(1)
		g.sems[key] = s
	}
	return s
}

// Do waits for the key to be free and runs fn.
func (g *Guard) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	s := g.sem(key)
	if err := s.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.Release(1)

	return fn(ctx)
}
