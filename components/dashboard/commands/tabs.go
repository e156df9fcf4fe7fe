package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
)

// AddTabInput names the tab to create.
type AddTabInput struct {
	dashboard.DashboardRef
	Name   string                  `json:"name"`
	Editor dashboard.EditorContext `json:"-"`
}

// RenameTabInput carries the new tab name.
type RenameTabInput struct {
	dashboard.DashboardRef
	TabUUID string                  `json:"tab_uuid"`
	Name    string                  `json:"name"`
	Editor  dashboard.EditorContext `json:"-"`
}

// DeleteTabInput identifies the tab to remove.
type DeleteTabInput struct {
	dashboard.DashboardRef
	TabUUID string                  `json:"tab_uuid"`
	Editor  dashboard.EditorContext `json:"-"`
}

// ReorderTabsInput describes either a drag (source/destination indexes) or an
// explicit ordering when TabUUIDs is set. A drag without a destination was
// cancelled and changes nothing.
type ReorderTabsInput struct {
	dashboard.DashboardRef
	Source      int                     `json:"source"`
	Destination *int                    `json:"destination"`
	TabUUIDs    []string                `json:"tab_uuids,omitempty"`
	Editor      dashboard.EditorContext `json:"-"`
}

// SelectTabInput activates a tab in the given view mode.
type SelectTabInput struct {
	dashboard.DashboardRef
	TabUUID string                  `json:"tab_uuid"`
	Mode    dashboard.ViewMode      `json:"mode,omitempty"`
	Query   string                  `json:"query,omitempty"`
	Editor  dashboard.EditorContext `json:"-"`
}

// CommitTabsInput acknowledges that tab changes were persisted downstream.
type CommitTabsInput struct {
	dashboard.DashboardRef
	Editor dashboard.EditorContext `json:"-"`
}

type addTabService interface {
	AddTab(ctx context.Context, ref dashboard.DashboardRef, name string) (dashboard.State, error)
}

// AddTabCommand wraps Service.AddTab.
type AddTabCommand struct {
	service   addTabService
	telemetry Telemetry
}

// NewAddTabCommand builds the command.
func NewAddTabCommand(service addTabService, telemetry Telemetry) *AddTabCommand {
	return &AddTabCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddTabInput] = (*AddTabCommand)(nil)

// Execute creates the tab.
func (c *AddTabCommand) Execute(ctx context.Context, msg AddTabInput) error {
	if c.service == nil {
		return errors.New("add tab command requires service")
	}
	ctx = withEditor(ctx, msg.Editor)
	state, err := c.service.AddTab(ctx, msg.DashboardRef, msg.Name)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.tab_add", map[string]any{
		"dashboard_uuid": msg.DashboardUUID,
		"tab_count":      len(state.Tabs),
	})
	return nil
}

type renameTabService interface {
	RenameTab(ctx context.Context, ref dashboard.DashboardRef, tabUUID, name string) (dashboard.State, error)
}

// RenameTabCommand wraps Service.RenameTab.
type RenameTabCommand struct {
	service   renameTabService
	telemetry Telemetry
}

// NewRenameTabCommand builds the command.
func NewRenameTabCommand(service renameTabService, telemetry Telemetry) *RenameTabCommand {
	return &RenameTabCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RenameTabInput] = (*RenameTabCommand)(nil)

// Execute renames the tab.
func (c *RenameTabCommand) Execute(ctx context.Context, msg RenameTabInput) error {
	if c.service == nil {
		return errors.New("rename tab command requires service")
	}
	if msg.TabUUID == "" {
		return errors.New("rename tab command requires tab uuid")
	}
	ctx = withEditor(ctx, msg.Editor)
	if _, err := c.service.RenameTab(ctx, msg.DashboardRef, msg.TabUUID, msg.Name); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.tab_rename", map[string]any{
		"dashboard_uuid": msg.DashboardUUID,
		"tab_uuid":       msg.TabUUID,
	})
	return nil
}

type deleteTabService interface {
	DeleteTab(ctx context.Context, ref dashboard.DashboardRef, tabUUID string) (dashboard.State, dashboard.DeleteResult, error)
}

// DeleteTabCommand wraps Service.DeleteTab.
type DeleteTabCommand struct {
	service   deleteTabService
	telemetry Telemetry
}

// NewDeleteTabCommand builds the command.
func NewDeleteTabCommand(service deleteTabService, telemetry Telemetry) *DeleteTabCommand {
	return &DeleteTabCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteTabInput] = (*DeleteTabCommand)(nil)

// Execute deletes the tab.
func (c *DeleteTabCommand) Execute(ctx context.Context, msg DeleteTabInput) error {
	if c.service == nil {
		return errors.New("delete tab command requires service")
	}
	ctx = withEditor(ctx, msg.Editor)
	_, result, err := c.service.DeleteTab(ctx, msg.DashboardRef, msg.TabUUID)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.tab_delete", map[string]any{
		"dashboard_uuid": msg.DashboardUUID,
		"tab_uuid":       msg.TabUUID,
		"last_tab":       result.LastTab,
	})
	return nil
}

type reorderTabsService interface {
	ReorderTabs(ctx context.Context, ref dashboard.DashboardRef, source, destination int) (dashboard.State, error)
	ReorderTabsByID(ctx context.Context, ref dashboard.DashboardRef, tabUUIDs []string) (dashboard.State, error)
}

// ReorderTabsCommand wraps Service.ReorderTabs and Service.ReorderTabsByID.
type ReorderTabsCommand struct {
	service   reorderTabsService
	telemetry Telemetry
}

// NewReorderTabsCommand builds the command.
func NewReorderTabsCommand(service reorderTabsService, telemetry Telemetry) *ReorderTabsCommand {
	return &ReorderTabsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderTabsInput] = (*ReorderTabsCommand)(nil)

// Execute applies the new ordering.
func (c *ReorderTabsCommand) Execute(ctx context.Context, msg ReorderTabsInput) error {
	if c.service == nil {
		return errors.New("reorder tabs command requires service")
	}
	byID := len(msg.TabUUIDs) > 0
	if !byID && msg.Destination == nil {
		return nil
	}
	ctx = withEditor(ctx, msg.Editor)
	var err error
	if byID {
		_, err = c.service.ReorderTabsByID(ctx, msg.DashboardRef, msg.TabUUIDs)
	} else {
		_, err = c.service.ReorderTabs(ctx, msg.DashboardRef, msg.Source, *msg.Destination)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.tab_reorder", map[string]any{
		"dashboard_uuid": msg.DashboardUUID,
		"by_id":          byID,
	})
	return nil
}

type selectTabService interface {
	SelectTab(ctx context.Context, ref dashboard.DashboardRef, tabUUID string, mode dashboard.ViewMode, query string) (dashboard.State, dashboard.NavigationRequest, error)
}

// SelectTabCommand wraps Service.SelectTab.
type SelectTabCommand struct {
	service   selectTabService
	telemetry Telemetry
}

// NewSelectTabCommand builds the command.
func NewSelectTabCommand(service selectTabService, telemetry Telemetry) *SelectTabCommand {
	return &SelectTabCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectTabInput] = (*SelectTabCommand)(nil)

// Execute activates the tab.
func (c *SelectTabCommand) Execute(ctx context.Context, msg SelectTabInput) error {
	if c.service == nil {
		return errors.New("select tab command requires service")
	}
	if msg.TabUUID == "" {
		return errors.New("select tab command requires tab uuid")
	}
	ctx = withEditor(ctx, msg.Editor)
	mode := dashboard.ParseViewMode(string(msg.Mode))
	if _, _, err := c.service.SelectTab(ctx, msg.DashboardRef, msg.TabUUID, mode, msg.Query); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.tab_select", map[string]any{
		"dashboard_uuid": msg.DashboardUUID,
		"tab_uuid":       msg.TabUUID,
		"mode":           string(mode),
	})
	return nil
}

type commitTabsService interface {
	CommitTabs(ctx context.Context, ref dashboard.DashboardRef) (dashboard.State, error)
}

// CommitTabsCommand wraps Service.CommitTabs.
type CommitTabsCommand struct {
	service   commitTabsService
	telemetry Telemetry
}

// NewCommitTabsCommand builds the command.
func NewCommitTabsCommand(service commitTabsService, telemetry Telemetry) *CommitTabsCommand {
	return &CommitTabsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CommitTabsInput] = (*CommitTabsCommand)(nil)

// Execute clears the pending tabs-changed flag.
func (c *CommitTabsCommand) Execute(ctx context.Context, msg CommitTabsInput) error {
	if c.service == nil {
		return errors.New("commit tabs command requires service")
	}
	ctx = withEditor(ctx, msg.Editor)
	if _, err := c.service.CommitTabs(ctx, msg.DashboardRef); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.tabs_commit", map[string]any{
		"dashboard_uuid": msg.DashboardUUID,
	})
	return nil
}
