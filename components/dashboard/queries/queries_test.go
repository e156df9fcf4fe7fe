package queries

import (
	"context"
	"testing"

	dashboard "github.com/goliatone/go-bi-dashboard/components/dashboard"
)

type stubPayloadResolver struct {
	calls int
}

func (s *stubPayloadResolver) TabsPayload(_ context.Context, ref dashboard.DashboardRef) (dashboard.TabsPayload, error) {
	s.calls++
	return dashboard.TabsPayload{DashboardUUID: ref.DashboardUUID}, nil
}

func TestTabsPayloadQuery(t *testing.T) {
	resolver := &stubPayloadResolver{}
	query := NewTabsPayloadQuery(resolver)
	payload, err := query.Query(context.Background(), dashboard.DashboardRef{DashboardUUID: "d"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if resolver.calls != 1 || payload.DashboardUUID != "d" {
		t.Fatalf("expected 1 call for d, got %d / %q", resolver.calls, payload.DashboardUUID)
	}
}

func TestVisibleTilesQuery(t *testing.T) {
	tab := "b"
	store := dashboard.NewInMemoryStateStore(dashboard.State{
		DashboardUUID: "d",
		Tabs:          []dashboard.Tab{{UUID: "a"}, {UUID: "b", Order: 1}},
		Tiles: []dashboard.Tile{
			{UUID: "t1", TabUUID: &tab, Y: 2},
			{UUID: "t2", TabUUID: &tab, Y: 0},
			{UUID: "t3"},
		},
		ActiveTabUUID: "b",
	})
	query := NewVisibleTilesQuery(dashboard.NewService(dashboard.Options{StateStore: store}))
	tiles, err := query.Query(context.Background(), dashboard.DashboardRef{DashboardUUID: "d"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(tiles) != 2 || tiles[0].UUID != "t2" || tiles[1].UUID != "t1" {
		t.Fatalf("unexpected tiles %#v", tiles)
	}
}
