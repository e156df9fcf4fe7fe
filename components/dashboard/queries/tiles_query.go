package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-bi-dashboard/components/dashboard"
)

type visibleTilesService interface {
	VisibleTiles(ctx context.Context, ref dashboard.DashboardRef) ([]dashboard.Tile, error)
}

// VisibleTilesQuery fetches the tiles rendered under the active tab.
type VisibleTilesQuery struct {
	service visibleTilesService
}

// NewVisibleTilesQuery builds the query.
func NewVisibleTilesQuery(service visibleTilesService) *VisibleTilesQuery {
	return &VisibleTilesQuery{service: service}
}

var _ gocommand.Querier[dashboard.DashboardRef, []dashboard.Tile] = (*VisibleTilesQuery)(nil)

// Query resolves the visible tiles, sorted by row then column.
func (q *VisibleTilesQuery) Query(ctx context.Context, ref dashboard.DashboardRef) ([]dashboard.Tile, error) {
	return q.service.VisibleTiles(ctx, ref)
}
