package dashboard

import (
	core "github.com/goliatone/go-bi-dashboard/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// State, Tab and Tile re-export the editing model.
type (
	State        = core.State
	Tab          = core.Tab
	Tile         = core.Tile
	DashboardRef = core.DashboardRef
)

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// VisibleTiles proxies to the visibility resolver.
func VisibleTiles(state State) []Tile {
	return core.VisibleTiles(state)
}
