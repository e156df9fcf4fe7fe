package dashboard

import "context"

// StateStore persists the tab/tile state of a dashboard. Implementations
// ensure thread safety; the service serialises writes per dashboard.
type StateStore interface {
	LoadState(ctx context.Context, ref DashboardRef) (State, error)
	SaveState(ctx context.Context, state State) error
}

// TileHandler receives tile mutations once local state has been updated.
// Calls are issued after the mutation, never before.
type TileHandler interface {
	AddTiles(ctx context.Context, ref DashboardRef, tiles []Tile) error
	UpdateTiles(ctx context.Context, ref DashboardRef, layout []TileLayout) error
	DeleteTile(ctx context.Context, ref DashboardRef, tile Tile) error
	BatchDeleteTiles(ctx context.Context, ref DashboardRef, tiles []Tile) error
	EditTile(ctx context.Context, ref DashboardRef, tile Tile) error
}

// Navigator receives navigation requests produced by tab operations.
type Navigator interface {
	Navigate(ctx context.Context, req NavigationRequest) error
}

// RefreshHook notifies transports (REST/WebSocket) about tab changes.
type RefreshHook interface {
	TabsUpdated(ctx context.Context, event TabEvent) error
}

// IDGenerator returns a new unique identifier for tabs.
type IDGenerator func() string

// DashboardRef identifies a dashboard inside a project.
type DashboardRef struct {
	ProjectUUID   string `json:"project_uuid" yaml:"project_uuid"`
	DashboardUUID string `json:"dashboard_uuid" yaml:"dashboard_uuid"`
}

// Tab is a named, ordered grouping of dashboard tiles.
type Tab struct {
	UUID      string `json:"uuid" yaml:"uuid"`
	Name      string `json:"name" yaml:"name"`
	IsDefault bool   `json:"is_default" yaml:"is_default"`
	Order     int    `json:"order" yaml:"order"`
}

// Tile is a positioned element on the dashboard grid. TabUUID is a weak
// reference: it may be nil or point at a tab that no longer exists.
type Tile struct {
	UUID    string  `json:"uuid" yaml:"uuid"`
	Type    string  `json:"type,omitempty" yaml:"type,omitempty"`
	Title   string  `json:"title,omitempty" yaml:"title,omitempty"`
	X       int     `json:"x" yaml:"x"`
	Y       int     `json:"y" yaml:"y"`
	W       int     `json:"w" yaml:"w"`
	H       int     `json:"h" yaml:"h"`
	TabUUID *string `json:"tab_uuid,omitempty" yaml:"tab_uuid,omitempty"`
}

// TileLayout carries grid geometry reported after a drag or resize.
type TileLayout struct {
	UUID string `json:"uuid"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
}

// State is the editing state of a single dashboard.
type State struct {
	ProjectUUID   string `json:"project_uuid"`
	DashboardUUID string `json:"dashboard_uuid"`
	Tabs          []Tab  `json:"tabs"`
	Tiles         []Tile `json:"tiles"`
	ActiveTabUUID string `json:"active_tab_uuid,omitempty"`
	TabsChanged   bool   `json:"tabs_changed"`
}

// Ref returns the dashboard reference for the state.
func (s State) Ref() DashboardRef {
	return DashboardRef{ProjectUUID: s.ProjectUUID, DashboardUUID: s.DashboardUUID}
}

// ActiveTab returns the active tab when it is still part of the state.
func (s State) ActiveTab() (Tab, bool) {
	if s.ActiveTabUUID == "" {
		return Tab{}, false
	}
	return findTab(s.Tabs, s.ActiveTabUUID)
}

// TabEvent describes tab changes that transports might care about.
type TabEvent struct {
	DashboardUUID string `json:"dashboard_uuid"`
	Tab           *Tab   `json:"tab,omitempty"`
	Reason        string `json:"reason"`
	ActorID       string `json:"actor_id,omitempty"`
}

// ViewMode selects the edit or view flavour of dashboard URLs.
type ViewMode string

const (
	ModeEdit ViewMode = "edit"
	ModeView ViewMode = "view"
)

// NavigationRequest is emitted when an operation moves the user elsewhere.
type NavigationRequest struct {
	Path    string `json:"path"`
	Query   string `json:"query,omitempty"`
	Replace bool   `json:"replace"`
}

// StringPtr is a helper for optional tile references.
func StringPtr(v string) *string {
	return &v
}
