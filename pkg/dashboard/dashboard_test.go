package dashboard

import (
	"context"
	"testing"
)

func TestFacadeDelegates(t *testing.T) {
	service := NewService(Options{})
	ref := DashboardRef{DashboardUUID: "d"}
	if _, err := service.AddTiles(context.Background(), ref, []Tile{{W: 2, H: 2}}); err != nil {
		t.Fatalf("AddTiles returned error: %v", err)
	}
	state, err := service.State(context.Background(), ref)
	if err != nil {
		t.Fatalf("State returned error: %v", err)
	}
	if len(VisibleTiles(state)) != 1 {
		t.Fatalf("expected one visible tile")
	}
}
