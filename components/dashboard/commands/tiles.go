package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
)

// AddTilesInput carries tiles to append; untagged tiles join the active tab.
type AddTilesInput struct {
	dashboard.DashboardRef
	Tiles  []dashboard.Tile        `json:"tiles"`
	Editor dashboard.EditorContext `json:"-"`
}

// UpdateTilesInput carries grid geometry after a drag or resize.
type UpdateTilesInput struct {
	dashboard.DashboardRef
	Layout []dashboard.TileLayout  `json:"layout"`
	Editor dashboard.EditorContext `json:"-"`
}

// DeleteTileInput identifies the tile to remove.
type DeleteTileInput struct {
	dashboard.DashboardRef
	TileUUID string                  `json:"tile_uuid"`
	Editor   dashboard.EditorContext `json:"-"`
}

// MoveTileInput reassigns a tile to a tab. An empty TabUUID untags it.
type MoveTileInput struct {
	dashboard.DashboardRef
	TileUUID string                  `json:"tile_uuid"`
	TabUUID  string                  `json:"tab_uuid"`
	Editor   dashboard.EditorContext `json:"-"`
}

type tileService interface {
	AddTiles(ctx context.Context, ref dashboard.DashboardRef, tiles []dashboard.Tile) (dashboard.State, error)
	UpdateTiles(ctx context.Context, ref dashboard.DashboardRef, layout []dashboard.TileLayout) (dashboard.State, error)
	DeleteTile(ctx context.Context, ref dashboard.DashboardRef, tileUUID string) (dashboard.State, error)
	MoveTile(ctx context.Context, ref dashboard.DashboardRef, tileUUID, tabUUID string) (dashboard.State, error)
}

// AddTilesCommand wraps Service.AddTiles.
type AddTilesCommand struct {
	service   tileService
	telemetry Telemetry
}

// NewAddTilesCommand builds the command.
func NewAddTilesCommand(service tileService, telemetry Telemetry) *AddTilesCommand {
	return &AddTilesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddTilesInput] = (*AddTilesCommand)(nil)

// Execute appends the tiles.
func (c *AddTilesCommand) Execute(ctx context.Context, msg AddTilesInput) error {
	if c.service == nil {
		return errors.New("add tiles command requires service")
	}
	ctx = withEditor(ctx, msg.Editor)
	if _, err := c.service.AddTiles(ctx, msg.DashboardRef, msg.Tiles); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.tile_add", map[string]any{
		"dashboard_uuid": msg.DashboardUUID,
		"count":          len(msg.Tiles),
	})
	return nil
}

// UpdateTilesCommand wraps Service.UpdateTiles.
type UpdateTilesCommand struct {
	service   tileService
	telemetry Telemetry
}

// NewUpdateTilesCommand builds the command.
func NewUpdateTilesCommand(service tileService, telemetry Telemetry) *UpdateTilesCommand {
	return &UpdateTilesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateTilesInput] = (*UpdateTilesCommand)(nil)

// Execute applies the layout.
func (c *UpdateTilesCommand) Execute(ctx context.Context, msg UpdateTilesInput) error {
	if c.service == nil {
		return errors.New("update tiles command requires service")
	}
	ctx = withEditor(ctx, msg.Editor)
	if _, err := c.service.UpdateTiles(ctx, msg.DashboardRef, msg.Layout); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.tile_layout", map[string]any{
		"dashboard_uuid": msg.DashboardUUID,
		"count":          len(msg.Layout),
	})
	return nil
}

// DeleteTileCommand wraps Service.DeleteTile.
type DeleteTileCommand struct {
	service   tileService
	telemetry Telemetry
}

// NewDeleteTileCommand builds the command.
func NewDeleteTileCommand(service tileService, telemetry Telemetry) *DeleteTileCommand {
	return &DeleteTileCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteTileInput] = (*DeleteTileCommand)(nil)

// Execute removes the tile.
func (c *DeleteTileCommand) Execute(ctx context.Context, msg DeleteTileInput) error {
	if c.service == nil {
		return errors.New("delete tile command requires service")
	}
	ctx = withEditor(ctx, msg.Editor)
	if _, err := c.service.DeleteTile(ctx, msg.DashboardRef, msg.TileUUID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.tile_delete", map[string]any{
		"dashboard_uuid": msg.DashboardUUID,
		"tile_uuid":      msg.TileUUID,
	})
	return nil
}

// MoveTileCommand wraps Service.MoveTile.
type MoveTileCommand struct {
	service   tileService
	telemetry Telemetry
}

// NewMoveTileCommand builds the command.
func NewMoveTileCommand(service tileService, telemetry Telemetry) *MoveTileCommand {
	return &MoveTileCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MoveTileInput] = (*MoveTileCommand)(nil)

// Execute moves the tile.
func (c *MoveTileCommand) Execute(ctx context.Context, msg MoveTileInput) error {
	if c.service == nil {
		return errors.New("move tile command requires service")
	}
	if msg.TileUUID == "" {
		return errors.New("move tile command requires tile uuid")
	}
	ctx = withEditor(ctx, msg.Editor)
	if _, err := c.service.MoveTile(ctx, msg.DashboardRef, msg.TileUUID, msg.TabUUID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.tile_move", map[string]any{
		"dashboard_uuid": msg.DashboardUUID,
		"tile_uuid":      msg.TileUUID,
		"tab_uuid":       msg.TabUUID,
	})
	return nil
}
