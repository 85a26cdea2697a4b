package card

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultResolveConcurrency limits how many catalog requests a single
// ResolveAll fan-out keeps in flight.
const DefaultResolveConcurrency = 8

// Resolver memoizes catalog lookups. A card resolved once is never
// fetched again for the lifetime of the resolver, including cards that
// the catalog reported as unknown.
type Resolver struct {
	catalog     Catalog
	concurrency int64
	logger      *zap.Logger

	mu    sync.RWMutex
	cache map[int]*Card // nil value records a known-missing ID
}

// NewResolver creates a caching resolver over the given catalog.
func NewResolver(catalog Catalog, concurrency int, logger *zap.Logger) *Resolver {
	if concurrency <= 0 {
		concurrency = DefaultResolveConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		catalog:     catalog,
		concurrency: int64(concurrency),
		logger:      logger,
		cache:       make(map[int]*Card),
	}
}

// Resolve returns the card for the given ID, consulting the cache first.
// A catalog miss is cached so the ID is not retried on later imports.
func (r *Resolver) Resolve(ctx context.Context, id int) (*Card, error) {
	r.mu.RLock()
	cached, ok := r.cache[id]
	r.mu.RUnlock()
	if ok {
		if cached == nil {
			return nil, ErrNotFound
		}
		return cached, nil
	}

	resolved, err := r.catalog.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.mu.Lock()
			r.cache[id] = nil
			r.mu.Unlock()
		}
		return nil, err
	}

	r.mu.Lock()
	r.cache[id] = resolved
	r.mu.Unlock()
	return resolved, nil
}

// ResolveAll resolves every ID concurrently under the resolver's
// concurrency bound. IDs that fail to resolve are absent from the
// result; transport errors and catalog misses are both logged and
// skipped so one bad ID never sinks the batch.
func (r *Resolver) ResolveAll(ctx context.Context, ids []int) map[int]*Card {
	results := make(map[int]*Card, len(ids))
	if len(ids) == 0 {
		return results
	}

	var resultsMu sync.Mutex
	sem := semaphore.NewWeighted(r.concurrency)
	g, ctx := errgroup.WithContext(ctx)

	for _, id := range ids {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err // context cancelled, abandon the batch
			}
			defer sem.Release(1)

			resolved, err := r.Resolve(ctx, id)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				if errors.Is(err, ErrNotFound) {
					r.logger.Warn("card not found in catalog, dropping", zap.Int("card_id", id))
				} else {
					r.logger.Warn("failed to resolve card, dropping",
						zap.Int("card_id", id),
						zap.Error(err),
					)
				}
				return nil
			}

			resultsMu.Lock()
			results[id] = resolved
			resultsMu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// CacheSize returns the number of memoized IDs, counting known misses.
func (r *Resolver) CacheSize() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
