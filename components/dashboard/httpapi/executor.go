package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
	"github.com/goliatone/go-bi-dashboard/components/dashboard/commands"
)

// Executor is the transport-neutral surface used by router adapters.
type Executor interface {
	AddTab(ctx context.Context, input commands.AddTabInput) error
	RenameTab(ctx context.Context, input commands.RenameTabInput) error
	DeleteTab(ctx context.Context, input commands.DeleteTabInput) error
	ReorderTabs(ctx context.Context, input commands.ReorderTabsInput) error
	SelectTab(ctx context.Context, input commands.SelectTabInput) error
	CommitTabs(ctx context.Context, input commands.CommitTabsInput) error
	AddTiles(ctx context.Context, input commands.AddTilesInput) error
	UpdateTiles(ctx context.Context, input commands.UpdateTilesInput) error
	DeleteTile(ctx context.Context, input commands.DeleteTileInput) error
	MoveTile(ctx context.Context, input commands.MoveTileInput) error
	TabsPayload(ctx context.Context, ref dashboard.DashboardRef) (dashboard.TabsPayload, error)
}

// CommandExecutor adapts go-command commanders and queriers to Executor.
type CommandExecutor struct {
	AddTabCommander      gocommand.Commander[commands.AddTabInput]
	RenameTabCommander   gocommand.Commander[commands.RenameTabInput]
	DeleteTabCommander   gocommand.Commander[commands.DeleteTabInput]
	ReorderTabsCommander gocommand.Commander[commands.ReorderTabsInput]
	SelectTabCommander   gocommand.Commander[commands.SelectTabInput]
	CommitTabsCommander  gocommand.Commander[commands.CommitTabsInput]
	AddTilesCommander    gocommand.Commander[commands.AddTilesInput]
	UpdateTilesCommander gocommand.Commander[commands.UpdateTilesInput]
	DeleteTileCommander  gocommand.Commander[commands.DeleteTileInput]
	MoveTileCommander    gocommand.Commander[commands.MoveTileInput]
	PayloadQuerier       gocommand.Querier[dashboard.DashboardRef, dashboard.TabsPayload]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) AddTab(ctx context.Context, input commands.AddTabInput) error {
	if e.AddTabCommander == nil {
		return errors.New("httpapi: add tab commander not configured")
	}
	return e.AddTabCommander.Execute(ctx, input)
}

func (e *CommandExecutor) RenameTab(ctx context.Context, input commands.RenameTabInput) error {
	if e.RenameTabCommander == nil {
		return errors.New("httpapi: rename tab commander not configured")
	}
	return e.RenameTabCommander.Execute(ctx, input)
}

func (e *CommandExecutor) DeleteTab(ctx context.Context, input commands.DeleteTabInput) error {
	if e.DeleteTabCommander == nil {
		return errors.New("httpapi: delete tab commander not configured")
	}
	return e.DeleteTabCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ReorderTabs(ctx context.Context, input commands.ReorderTabsInput) error {
	if e.ReorderTabsCommander == nil {
		return errors.New("httpapi: reorder tabs commander not configured")
	}
	return e.ReorderTabsCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SelectTab(ctx context.Context, input commands.SelectTabInput) error {
	if e.SelectTabCommander == nil {
		return errors.New("httpapi: select tab commander not configured")
	}
	return e.SelectTabCommander.Execute(ctx, input)
}

func (e *CommandExecutor) CommitTabs(ctx context.Context, input commands.CommitTabsInput) error {
	if e.CommitTabsCommander == nil {
		return errors.New("httpapi: commit tabs commander not configured")
	}
	return e.CommitTabsCommander.Execute(ctx, input)
}

func (e *CommandExecutor) AddTiles(ctx context.Context, input commands.AddTilesInput) error {
	if e.AddTilesCommander == nil {
		return errors.New("httpapi: add tiles commander not configured")
	}
	return e.AddTilesCommander.Execute(ctx, input)
}

func (e *CommandExecutor) UpdateTiles(ctx context.Context, input commands.UpdateTilesInput) error {
	if e.UpdateTilesCommander == nil {
		return errors.New("httpapi: update tiles commander not configured")
	}
	return e.UpdateTilesCommander.Execute(ctx, input)
}

func (e *CommandExecutor) DeleteTile(ctx context.Context, input commands.DeleteTileInput) error {
	if e.DeleteTileCommander == nil {
		return errors.New("httpapi: delete tile commander not configured")
	}
	return e.DeleteTileCommander.Execute(ctx, input)
}

func (e *CommandExecutor) MoveTile(ctx context.Context, input commands.MoveTileInput) error {
	if e.MoveTileCommander == nil {
		return errors.New("httpapi: move tile commander not configured")
	}
	return e.MoveTileCommander.Execute(ctx, input)
}

func (e *CommandExecutor) TabsPayload(ctx context.Context, ref dashboard.DashboardRef) (dashboard.TabsPayload, error) {
	if e.PayloadQuerier == nil {
		return dashboard.TabsPayload{}, errors.New("httpapi: tabs payload querier not configured")
	}
	return e.PayloadQuerier.Query(ctx, ref)
}
