package gormstore

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := OpenDatabase(Config{DriverName: DriverNameSQLite, DataSourceName: dsn})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	store, err := NewStore(db)
	require.NoError(t, err)
	return store
}

func TestOpenDatabaseValidatesConfig(t *testing.T) {
	_, err := OpenDatabase(Config{})
	assert.ErrorIs(t, err, ErrMissingDriverName)
	_, err = OpenDatabase(Config{DriverName: "mysql", DataSourceName: "x"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
	_, err = OpenDatabase(Config{DriverName: DriverNameSQLite})
	assert.ErrorIs(t, err, ErrMissingDataSourceName)
	_, err = NewStore(nil)
	assert.Error(t, err)
}

func TestStoreLoadsEmptyDashboard(t *testing.T) {
	store := newTestStore(t)
	state, err := store.LoadState(context.Background(), dashboard.DashboardRef{ProjectUUID: "p", DashboardUUID: "d"})
	require.NoError(t, err)
	assert.Equal(t, "d", state.DashboardUUID)
	assert.Empty(t, state.Tabs)
	assert.Empty(t, state.Tiles)
}

func TestStoreRoundTripKeepsStoredOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ref := dashboard.DashboardRef{ProjectUUID: "p", DashboardUUID: "d"}
	state := dashboard.State{
		ProjectUUID:   "p",
		DashboardUUID: "d",
		Tabs: []dashboard.Tab{
			{UUID: "b", Name: "Second", Order: 1},
			{UUID: "a", Name: "First", Order: 0, IsDefault: true},
		},
		Tiles: []dashboard.Tile{
			{UUID: "t1", Type: "saved_chart", X: 0, Y: 0, W: 6, H: 3, TabUUID: dashboard.StringPtr("a")},
			{UUID: "t2", Title: "Notes", X: 6, Y: 0, W: 6, H: 3},
		},
		ActiveTabUUID: "b",
		TabsChanged:   true,
	}
	require.NoError(t, store.SaveState(ctx, state))

	loaded, err := store.LoadState(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestStoreSaveReplacesPreviousState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ref := dashboard.DashboardRef{DashboardUUID: "d"}
	require.NoError(t, store.SaveState(ctx, dashboard.State{
		DashboardUUID: "d",
		Tabs:          []dashboard.Tab{{UUID: "a", Name: "A"}, {UUID: "b", Name: "B", Order: 1}},
		Tiles:         []dashboard.Tile{{UUID: "t1", TabUUID: dashboard.StringPtr("a")}},
		ActiveTabUUID: "a",
	}))
	require.NoError(t, store.SaveState(ctx, dashboard.State{
		DashboardUUID: "d",
		Tiles:         []dashboard.Tile{{UUID: "t1"}},
	}))

	loaded, err := store.LoadState(ctx, ref)
	require.NoError(t, err)
	assert.Empty(t, loaded.Tabs)
	require.Len(t, loaded.Tiles, 1)
	assert.Nil(t, loaded.Tiles[0].TabUUID)
	assert.Empty(t, loaded.ActiveTabUUID)
}

func TestStoreBacksService(t *testing.T) {
	store := newTestStore(t)
	service := dashboard.NewService(dashboard.Options{StateStore: store})
	ctx := context.Background()
	ref := dashboard.DashboardRef{DashboardUUID: "d"}

	_, err := service.AddTiles(ctx, ref, []dashboard.Tile{{W: 4, H: 2}})
	require.NoError(t, err)
	_, err = service.AddTab(ctx, ref, "Sales")
	require.NoError(t, err)

	loaded, err := store.LoadState(ctx, ref)
	require.NoError(t, err)
	require.Len(t, loaded.Tabs, 2)
	assert.Equal(t, dashboard.DefaultTabName, loaded.Tabs[0].Name)
	require.NotNil(t, loaded.Tiles[0].TabUUID)
	assert.Equal(t, loaded.Tabs[0].UUID, *loaded.Tiles[0].TabUUID)
}
