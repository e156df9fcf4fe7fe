package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	errMissingStateStore = errors.New("dashboard: state store not configured")
	errMissingDashboard  = errors.New("dashboard: dashboard uuid is required")
	errMissingTab        = errors.New("dashboard: tab uuid is required")
	errMissingTile       = errors.New("dashboard: tile uuid is required")
	errTileNotFound      = errors.New("dashboard: tile not found")
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	StateStore   StateStore
	Tiles        TileHandler
	Navigator    Navigator
	RefreshHook  RefreshHook
	Telemetry    Telemetry
	Translations TranslationService
	IDGenerator  IDGenerator
}

// Service owns tab/tile state for dashboards being edited. Mutations on the
// same dashboard are serialised; the local state is saved before any
// collaborator (tile handler, navigator, hooks) is called.
type Service struct {
	opts Options

	locksMu sync.Mutex
	locks   map[DashboardRef]*sync.Mutex
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.StateStore == nil {
		opts.StateStore = NewInMemoryStateStore()
	}
	if opts.Tiles == nil {
		opts.Tiles = noopTileHandler{}
	}
	if opts.Navigator == nil {
		opts.Navigator = noopNavigator{}
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = uuid.NewString
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:  opts,
		locks: make(map[DashboardRef]*sync.Mutex),
	}
}

// State returns the current state of a dashboard.
func (s *Service) State(ctx context.Context, ref DashboardRef) (State, error) {
	if ref.DashboardUUID == "" {
		return State{}, errMissingDashboard
	}
	return s.opts.StateStore.LoadState(ctx, ref)
}

// VisibleTiles resolves the tiles rendered under the active tab.
func (s *Service) VisibleTiles(ctx context.Context, ref DashboardRef) ([]Tile, error) {
	state, err := s.State(ctx, ref)
	if err != nil {
		return nil, err
	}
	return VisibleTiles(state), nil
}

// AddTab creates a tab and activates it. An empty name is ignored.
func (s *Service) AddTab(ctx context.Context, ref DashboardRef, name string) (State, error) {
	defaultName := translateOrFallback(ctx, s.opts.Translations, TranslationKeyDefaultTabName,
		EditorFromContext(ctx).Locale, DefaultTabName, nil)
	var added Tab
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		next, tab, ok := AddTab(current, name, s.opts.IDGenerator, defaultName)
		added = tab
		return next, ok
	})
	if err != nil || !changed {
		return state, err
	}
	if err := s.notify(ctx, ref, &added, "tab.add"); err != nil {
		return state, err
	}
	s.recordTelemetry(ctx, "dashboard.tab.add", map[string]any{
		"dashboard_uuid": ref.DashboardUUID,
		"tab_uuid":       added.UUID,
		"tab_count":      len(state.Tabs),
	})
	return state, nil
}

// RenameTab changes a tab's name. Empty names and unknown tabs are ignored.
func (s *Service) RenameTab(ctx context.Context, ref DashboardRef, tabUUID, name string) (State, error) {
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		return RenameTab(current, tabUUID, name)
	})
	if err != nil || !changed {
		return state, err
	}
	tab, _ := findTab(state.Tabs, tabUUID)
	if err := s.notify(ctx, ref, &tab, "tab.rename"); err != nil {
		return state, err
	}
	s.recordTelemetry(ctx, "dashboard.tab.rename", map[string]any{
		"dashboard_uuid": ref.DashboardUUID,
		"tab_uuid":       tabUUID,
	})
	return state, nil
}

// DeleteTab removes a tab. Deleting the last tab leaves tabs mode and
// redirects to the non-tab edit URL; otherwise the tab's tiles are
// batch-deleted.
func (s *Service) DeleteTab(ctx context.Context, ref DashboardRef, tabUUID string) (State, DeleteResult, error) {
	if tabUUID == "" {
		return State{}, DeleteResult{}, errMissingTab
	}
	var result DeleteResult
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		next, res, ok := DeleteTab(current, tabUUID)
		result = res
		return next, ok
	})
	if err != nil || !changed {
		return state, result, err
	}
	if result.LastTab {
		if err := s.opts.Navigator.Navigate(ctx, NavigationRequest{Path: result.RedirectPath, Replace: true}); err != nil {
			return state, result, fmt.Errorf("dashboard: navigate after deleting last tab: %w", err)
		}
	} else if len(result.TilesToDelete) > 0 {
		if err := s.opts.Tiles.BatchDeleteTiles(ctx, ref, result.TilesToDelete); err != nil {
			return state, result, fmt.Errorf("dashboard: delete tiles of tab %s: %w", tabUUID, err)
		}
	}
	if err := s.notify(ctx, ref, &result.Deleted, "tab.delete"); err != nil {
		return state, result, err
	}
	s.recordTelemetry(ctx, "dashboard.tab.delete", map[string]any{
		"dashboard_uuid": ref.DashboardUUID,
		"tab_uuid":       tabUUID,
		"last_tab":       result.LastTab,
		"tiles_deleted":  len(result.TilesToDelete),
	})
	return state, result, nil
}

// ReorderTabs applies a completed drag from source to destination index.
func (s *Service) ReorderTabs(ctx context.Context, ref DashboardRef, source, destination int) (State, error) {
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		return ReorderTabs(current, source, destination)
	})
	if err != nil || !changed {
		return state, err
	}
	if err := s.notify(ctx, ref, nil, "tab.reorder"); err != nil {
		return state, err
	}
	s.recordTelemetry(ctx, "dashboard.tab.reorder", map[string]any{
		"dashboard_uuid": ref.DashboardUUID,
		"source":         source,
		"destination":    destination,
	})
	return state, nil
}

// ReorderTabsByID applies an explicit tab ordering.
func (s *Service) ReorderTabsByID(ctx context.Context, ref DashboardRef, tabUUIDs []string) (State, error) {
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		return ReorderTabsByID(current, tabUUIDs)
	})
	if err != nil || !changed {
		return state, err
	}
	if err := s.notify(ctx, ref, nil, "tab.reorder"); err != nil {
		return state, err
	}
	s.recordTelemetry(ctx, "dashboard.tab.reorder", map[string]any{
		"dashboard_uuid": ref.DashboardUUID,
		"count":          len(tabUUIDs),
	})
	return state, nil
}

// SelectTab activates a tab and navigates to its URL, preserving query.
func (s *Service) SelectTab(ctx context.Context, ref DashboardRef, tabUUID string, mode ViewMode, query string) (State, NavigationRequest, error) {
	var path string
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		next, p, ok := SelectTab(current, tabUUID, mode)
		path = p
		return next, ok
	})
	if err != nil || !changed {
		return state, NavigationRequest{}, err
	}
	req := NavigationRequest{Path: path, Query: query, Replace: true}
	if err := s.opts.Navigator.Navigate(ctx, req); err != nil {
		return state, req, fmt.Errorf("dashboard: navigate to tab %s: %w", tabUUID, err)
	}
	s.recordTelemetry(ctx, "dashboard.tab.select", map[string]any{
		"dashboard_uuid": ref.DashboardUUID,
		"tab_uuid":       tabUUID,
		"mode":           string(mode),
	})
	return state, req, nil
}

// CommitTabs clears the tabs-changed flag once downstream persistence is done.
func (s *Service) CommitTabs(ctx context.Context, ref DashboardRef) (State, error) {
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		if !current.TabsChanged {
			return current, false
		}
		current.TabsChanged = false
		return current, true
	})
	if err != nil || !changed {
		return state, err
	}
	return state, s.notify(ctx, ref, nil, "tabs.commit")
}

// AddTiles appends tiles. Untagged tiles join the active tab (or the first
// tab) when the dashboard has tabs.
func (s *Service) AddTiles(ctx context.Context, ref DashboardRef, tiles []Tile) (State, error) {
	var added []Tile
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		if len(tiles) == 0 {
			return current, false
		}
		next := current.clone()
		owner := tileOwner(next)
		added = cloneTiles(tiles)
		for i := range added {
			if added[i].UUID == "" {
				added[i].UUID = s.opts.IDGenerator()
			}
			if added[i].TabUUID == nil && owner != "" {
				added[i].TabUUID = StringPtr(owner)
			}
		}
		next.Tiles = append(next.Tiles, added...)
		return next, true
	})
	if err != nil || !changed {
		return state, err
	}
	if err := s.opts.Tiles.AddTiles(ctx, ref, added); err != nil {
		return state, fmt.Errorf("dashboard: add tiles: %w", err)
	}
	s.recordTelemetry(ctx, "dashboard.tile.add", map[string]any{
		"dashboard_uuid": ref.DashboardUUID,
		"count":          len(added),
	})
	return state, nil
}

// UpdateTiles applies grid geometry reported after a drag or resize.
func (s *Service) UpdateTiles(ctx context.Context, ref DashboardRef, layout []TileLayout) (State, error) {
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		next := current.clone()
		tiles, updated := applyTileLayout(next.Tiles, layout)
		next.Tiles = tiles
		return next, updated > 0
	})
	if err != nil || !changed {
		return state, err
	}
	if err := s.opts.Tiles.UpdateTiles(ctx, ref, layout); err != nil {
		return state, fmt.Errorf("dashboard: update tiles: %w", err)
	}
	return state, nil
}

// DeleteTile removes a single tile.
func (s *Service) DeleteTile(ctx context.Context, ref DashboardRef, tileUUID string) (State, error) {
	if tileUUID == "" {
		return State{}, errMissingTile
	}
	var removed Tile
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		next := current.clone()
		for i, tile := range next.Tiles {
			if tile.UUID == tileUUID {
				removed = tile
				next.Tiles = append(next.Tiles[:i], next.Tiles[i+1:]...)
				return next, true
			}
		}
		return current, false
	})
	if err != nil {
		return state, err
	}
	if !changed {
		return state, errTileNotFound
	}
	if err := s.opts.Tiles.DeleteTile(ctx, ref, removed); err != nil {
		return state, fmt.Errorf("dashboard: delete tile %s: %w", tileUUID, err)
	}
	s.recordTelemetry(ctx, "dashboard.tile.delete", map[string]any{
		"dashboard_uuid": ref.DashboardUUID,
		"tile_uuid":      tileUUID,
	})
	return state, nil
}

// EditTile replaces a tile by uuid, e.g. to move it to another tab.
func (s *Service) EditTile(ctx context.Context, ref DashboardRef, tile Tile) (State, error) {
	if tile.UUID == "" {
		return State{}, errMissingTile
	}
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		next := current.clone()
		for i := range next.Tiles {
			if next.Tiles[i].UUID == tile.UUID {
				next.Tiles[i] = cloneTiles([]Tile{tile})[0]
				return next, true
			}
		}
		return current, false
	})
	if err != nil {
		return state, err
	}
	if !changed {
		return state, errTileNotFound
	}
	if err := s.opts.Tiles.EditTile(ctx, ref, tile); err != nil {
		return state, fmt.Errorf("dashboard: edit tile %s: %w", tile.UUID, err)
	}
	return state, nil
}

// MoveTile reassigns a tile to another tab. Only the tab reference of the
// stored tile changes; an empty tabUUID untags it.
func (s *Service) MoveTile(ctx context.Context, ref DashboardRef, tileUUID, tabUUID string) (State, error) {
	if tileUUID == "" {
		return State{}, errMissingTile
	}
	var moved Tile
	state, changed, err := s.mutate(ctx, ref, func(current State) (State, bool) {
		next := current.clone()
		for i := range next.Tiles {
			if next.Tiles[i].UUID != tileUUID {
				continue
			}
			next.Tiles[i].TabUUID = nil
			if tabUUID != "" {
				next.Tiles[i].TabUUID = StringPtr(tabUUID)
			}
			moved = cloneTiles(next.Tiles[i : i+1])[0]
			return next, true
		}
		return current, false
	})
	if err != nil {
		return state, err
	}
	if !changed {
		return state, errTileNotFound
	}
	if err := s.opts.Tiles.EditTile(ctx, ref, moved); err != nil {
		return state, fmt.Errorf("dashboard: move tile %s: %w", tileUUID, err)
	}
	s.recordTelemetry(ctx, "dashboard.tile.move", map[string]any{
		"dashboard_uuid": ref.DashboardUUID,
		"tile_uuid":      tileUUID,
		"tab_uuid":       tabUUID,
	})
	return state, nil
}

func (s *Service) mutate(ctx context.Context, ref DashboardRef, apply func(State) (State, bool)) (State, bool, error) {
	if ref.DashboardUUID == "" {
		return State{}, false, errMissingDashboard
	}
	lock := s.lockFor(ref)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.opts.StateStore.LoadState(ctx, ref)
	if err != nil {
		return State{}, false, err
	}
	if current.DashboardUUID == "" {
		current.DashboardUUID = ref.DashboardUUID
	}
	if current.ProjectUUID == "" {
		current.ProjectUUID = ref.ProjectUUID
	}
	next, changed := apply(current)
	if !changed {
		return current, false, nil
	}
	if err := s.opts.StateStore.SaveState(ctx, next); err != nil {
		return current, false, fmt.Errorf("dashboard: save state %s: %w", ref.DashboardUUID, err)
	}
	return next, true, nil
}

func (s *Service) lockFor(ref DashboardRef) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock, ok := s.locks[ref]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[ref] = lock
	}
	return lock
}

func (s *Service) notify(ctx context.Context, ref DashboardRef, tab *Tab, reason string) error {
	return s.opts.RefreshHook.TabsUpdated(ctx, TabEvent{
		DashboardUUID: ref.DashboardUUID,
		Tab:           tab,
		Reason:        reason,
		ActorID:       EditorFromContext(ctx).ActorID,
	})
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func tileOwner(state State) string {
	if len(state.Tabs) == 0 {
		return ""
	}
	if tab, ok := state.ActiveTab(); ok {
		return tab.UUID
	}
	return SortTabs(state.Tabs)[0].UUID
}
