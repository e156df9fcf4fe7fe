package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestControllerTabsPayload(t *testing.T) {
	store := NewInMemoryStateStore(State{
		DashboardUUID: "d",
		Tabs:          []Tab{{UUID: "b", Name: "B", Order: 1}, {UUID: "a", Name: "A", Order: 0}},
		Tiles:         []Tile{tileOn("t1", "a", 0, 0), tileOn("t2", "b", 0, 0)},
		ActiveTabUUID: "b",
	})
	controller := NewController(ControllerOptions{Service: NewService(Options{StateStore: store})})

	payload, err := controller.TabsPayload(context.Background(), DashboardRef{DashboardUUID: "d"})
	require.NoError(t, err)
	assert.True(t, payload.TabsEnabled)
	assert.Equal(t, "a", payload.Tabs[0].UUID)
	require.NotNil(t, payload.ActiveTab)
	assert.Equal(t, "b", payload.ActiveTab.UUID)
	assert.Equal(t, []string{"t2"}, visibleIDs(payload.Tiles))
	assert.True(t, payload.CurrentTabHasTiles)
	assert.Empty(t, payload.EmptyContainerType)
	assert.Equal(t, "#111418", payload.Theme["--black"])
}

func TestControllerEmptyContainer(t *testing.T) {
	store := NewInMemoryStateStore(State{
		DashboardUUID: "d",
		Tabs:          []Tab{{UUID: "a"}, {UUID: "b", Order: 1}},
		Tiles:         []Tile{tileOn("t1", "a", 0, 0)},
		ActiveTabUUID: "b",
	})
	controller := NewController(ControllerOptions{Service: NewService(Options{StateStore: store})})

	payload, err := controller.TabsPayload(context.Background(), DashboardRef{DashboardUUID: "d"})
	require.NoError(t, err)
	assert.False(t, payload.CurrentTabHasTiles)
	assert.Equal(t, "tab", payload.EmptyContainerType)

	_, err = NewController(ControllerOptions{}).TabsPayload(context.Background(), DashboardRef{DashboardUUID: "d"})
	assert.Error(t, err)
}

func TestResolveLocalizedValue(t *testing.T) {
	values := map[string]string{"ES": "Pestaña", "default": "Tab"}
	assert.Equal(t, "Pestaña", ResolveLocalizedValue(values, "es-AR", "x"))
	assert.Equal(t, "Tab", ResolveLocalizedValue(values, "fr", "x"))
	assert.Equal(t, "x", ResolveLocalizedValue(nil, "fr", "x"))
	assert.Equal(t, "Tab 1", translateOrFallback(context.Background(), MapTranslations{}, TranslationKeyDefaultTabName, "fr", DefaultTabName, nil))
}

func TestZapTelemetryRecordsEditor(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	telemetry := NewZapTelemetry(zap.New(core))
	ctx := ContextWithEditor(context.Background(), EditorContext{ActorID: "u1"})

	telemetry.Record(ctx, "dashboard.tab.add", map[string]any{"tab_uuid": "a"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "dashboard.tab.add", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "u1", fields["actor_id"])
	assert.Equal(t, "a", fields["tab_uuid"])
}

func TestDashboardURL(t *testing.T) {
	assert.Equal(t, "/projects/p/dashboards/d/view", DashboardURL("p", "d", ModeView, ""))
	assert.Equal(t, "/projects/p/dashboards/d/edit/tabs/t%201", DashboardURL("p", "d", "bogus", "t 1"))
	assert.Equal(t, ModeView, ParseViewMode(" VIEW "))
	assert.Equal(t, ModeEdit, ParseViewMode(""))
}
