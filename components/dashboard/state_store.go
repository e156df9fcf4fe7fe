package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryStateStore provides a concurrency-safe default store.
type InMemoryStateStore struct {
	mu   sync.RWMutex
	data map[string]State
}

// NewInMemoryStateStore creates a store seeded with the provided states.
func NewInMemoryStateStore(seed ...State) *InMemoryStateStore {
	store := &InMemoryStateStore{
		data: make(map[string]State, len(seed)),
	}
	for _, state := range seed {
		store.data[store.key(state.Ref())] = state.clone()
	}
	return store
}

// LoadState returns the stored state or an empty dashboard.
func (s *InMemoryStateStore) LoadState(_ context.Context, ref DashboardRef) (State, error) {
	if ref.DashboardUUID == "" {
		return State{}, errMissingDashboard
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.data[s.key(ref)]; ok {
		return state.clone(), nil
	}
	return State{
		ProjectUUID:   ref.ProjectUUID,
		DashboardUUID: ref.DashboardUUID,
		Tabs:          []Tab{},
		Tiles:         []Tile{},
	}, nil
}

// SaveState persists a copy of state.
func (s *InMemoryStateStore) SaveState(_ context.Context, state State) error {
	if state.DashboardUUID == "" {
		return fmt.Errorf("state store requires dashboard uuid")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.key(state.Ref())] = state.clone()
	return nil
}

func (s *InMemoryStateStore) key(ref DashboardRef) string {
	if ref.ProjectUUID == "" {
		return ref.DashboardUUID
	}
	return ref.ProjectUUID + "::" + ref.DashboardUUID
}
