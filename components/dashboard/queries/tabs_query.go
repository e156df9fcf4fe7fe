package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/goliatone/go-bi-dashboard/components/dashboard"
)

type tabsPayloadResolver interface {
	TabsPayload(ctx context.Context, ref dashboard.DashboardRef) (dashboard.TabsPayload, error)
}

// TabsPayloadQuery executes read-only tab strip resolution.
type TabsPayloadQuery struct {
	controller tabsPayloadResolver
}

// NewTabsPayloadQuery builds the query.
func NewTabsPayloadQuery(controller tabsPayloadResolver) *TabsPayloadQuery {
	return &TabsPayloadQuery{controller: controller}
}

var _ gocommand.Querier[dashboard.DashboardRef, dashboard.TabsPayload] = (*TabsPayloadQuery)(nil)

// Query resolves the tab strip and visible tiles for the dashboard.
func (q *TabsPayloadQuery) Query(ctx context.Context, ref dashboard.DashboardRef) (dashboard.TabsPayload, error) {
	return q.controller.TabsPayload(ctx, ref)
}
