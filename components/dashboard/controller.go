package dashboard

import (
	"context"
	"errors"
)

type stateResolver interface {
	State(ctx context.Context, ref DashboardRef) (State, error)
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Service stateResolver
	Theme   *Theme
}

// Controller builds view payloads for transports rendering the tab editor.
type Controller struct {
	service stateResolver
	theme   *Theme
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	theme := opts.Theme
	if theme == nil {
		theme = DefaultTheme(nil)
	}
	return &Controller{service: opts.Service, theme: theme}
}

// TabsPayload is everything a client needs to draw the tab strip and grid.
type TabsPayload struct {
	DashboardUUID      string            `json:"dashboard_uuid"`
	TabsEnabled        bool              `json:"tabs_enabled"`
	Tabs               []Tab             `json:"tabs"`
	ActiveTab          *Tab              `json:"active_tab,omitempty"`
	Tiles              []Tile            `json:"tiles"`
	CurrentTabHasTiles bool              `json:"current_tab_has_tiles"`
	EmptyContainerType string            `json:"empty_container_type,omitempty"`
	TabsChanged        bool              `json:"tabs_changed"`
	Theme              map[string]string `json:"theme,omitempty"`
}

// TabsPayload resolves the state for ref into a view payload.
func (c *Controller) TabsPayload(ctx context.Context, ref DashboardRef) (TabsPayload, error) {
	if c.service == nil {
		return TabsPayload{}, errors.New("dashboard: controller requires service")
	}
	state, err := c.service.State(ctx, ref)
	if err != nil {
		return TabsPayload{}, err
	}
	tiles := VisibleTiles(state)
	payload := TabsPayload{
		DashboardUUID:      state.DashboardUUID,
		TabsEnabled:        TabsEnabled(state.Tabs),
		Tabs:               state.DisplayTabs(),
		Tiles:              tiles,
		CurrentTabHasTiles: len(tiles) > 0,
		TabsChanged:        state.TabsChanged,
		Theme:              c.theme.CSSVariables(),
	}
	if tab, ok := state.ActiveTab(); ok {
		payload.ActiveTab = &tab
	}
	if !payload.CurrentTabHasTiles {
		payload.EmptyContainerType = state.EmptyContainerType()
	}
	return payload, nil
}
