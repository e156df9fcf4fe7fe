package dashboard

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStateStore memoizes loaded states in front of a slower store so
// repeated reads of hot dashboards skip the backend.
type CachedStateStore struct {
	next  StateStore
	cache *lru.Cache[DashboardRef, State]
}

// NewCachedStateStore wraps next with an LRU of the given size.
func NewCachedStateStore(next StateStore, size int) (*CachedStateStore, error) {
	if next == nil {
		return nil, errMissingStateStore
	}
	if size <= 0 {
		size = 256
	}
	cache, err := lru.New[DashboardRef, State](size)
	if err != nil {
		return nil, fmt.Errorf("dashboard: state cache: %w", err)
	}
	return &CachedStateStore{next: next, cache: cache}, nil
}

// LoadState returns the cached state or loads and stores a new one.
func (c *CachedStateStore) LoadState(ctx context.Context, ref DashboardRef) (State, error) {
	if state, ok := c.cache.Get(ref); ok {
		return state.clone(), nil
	}
	state, err := c.next.LoadState(ctx, ref)
	if err != nil {
		return State{}, err
	}
	c.cache.Add(ref, state.clone())
	return state, nil
}

// SaveState writes through and refreshes the cached entry.
func (c *CachedStateStore) SaveState(ctx context.Context, state State) error {
	if err := c.next.SaveState(ctx, state); err != nil {
		c.cache.Remove(state.Ref())
		return err
	}
	c.cache.Add(state.Ref(), state.clone())
	return nil
}

// Invalidate drops a dashboard from the cache.
func (c *CachedStateStore) Invalidate(ref DashboardRef) {
	c.cache.Remove(ref)
}

// Len reports the number of cached dashboards.
func (c *CachedStateStore) Len() int {
	return c.cache.Len()
}
