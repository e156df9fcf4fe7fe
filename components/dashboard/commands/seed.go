package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
)

// SeedDashboardInput lists documents to load, either inline or from a directory.
type SeedDashboardInput struct {
	Documents []*dashboard.DashboardDocument
	Dir       string
}

// SeedDashboardCommand writes dashboard documents into a state store.
type SeedDashboardCommand struct {
	store     dashboard.StateStore
	telemetry Telemetry
}

// NewSeedDashboardCommand wires dependencies.
func NewSeedDashboardCommand(store dashboard.StateStore, telemetry Telemetry) *SeedDashboardCommand {
	return &SeedDashboardCommand{
		store:     store,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[SeedDashboardInput] = (*SeedDashboardCommand)(nil)

// Execute runs the bootstrap pipeline.
func (c *SeedDashboardCommand) Execute(ctx context.Context, msg SeedDashboardInput) error {
	if c.store == nil {
		return errors.New("seed command requires state store")
	}
	docs := msg.Documents
	if msg.Dir != "" {
		loaded, err := dashboard.ReadDocumentDir(msg.Dir)
		if err != nil {
			return err
		}
		docs = append(docs, loaded...)
	}
	if err := dashboard.SeedDocuments(ctx, c.store, docs...); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.seed", map[string]any{"documents": len(docs)})
	return nil
}
