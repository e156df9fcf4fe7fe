package dashboard

import (
	"context"
	"errors"
)

// NotificationsClient defines the minimal interface needed from an external notifications service.
type NotificationsClient interface {
	PublishDashboardEvent(ctx context.Context, channel string, event TabEvent) error
}

// NotificationsHook forwards tab events to an external notifications client.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
}

// TabsUpdated publishes events to the configured notifications client.
func (h *NotificationsHook) TabsUpdated(ctx context.Context, event TabEvent) error {
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.PublishDashboardEvent(ctx, h.Channel, event)
}

// MultiRefreshHook calls every hook and joins their errors.
type MultiRefreshHook []RefreshHook

// TabsUpdated fans the event out to all hooks.
func (m MultiRefreshHook) TabsUpdated(ctx context.Context, event TabEvent) error {
	var err error
	for _, hook := range m {
		if hook == nil {
			continue
		}
		err = errors.Join(err, hook.TabsUpdated(ctx, event))
	}
	return err
}

type noopRefreshHook struct{}

func (noopRefreshHook) TabsUpdated(context.Context, TabEvent) error { return nil }

type noopTileHandler struct{}

func (noopTileHandler) AddTiles(context.Context, DashboardRef, []Tile) error          { return nil }
func (noopTileHandler) UpdateTiles(context.Context, DashboardRef, []TileLayout) error { return nil }
func (noopTileHandler) DeleteTile(context.Context, DashboardRef, Tile) error          { return nil }
func (noopTileHandler) BatchDeleteTiles(context.Context, DashboardRef, []Tile) error  { return nil }
func (noopTileHandler) EditTile(context.Context, DashboardRef, Tile) error            { return nil }
