package dashboard

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesDocument = `version: "1"
project_uuid: p
dashboard_uuid: d
name: Sales
tabs:
  - uuid: a
    name: Overview
    is_default: true
    order: 0
  - uuid: b
    name: Details
    order: 1
tiles:
  - uuid: t1
    type: saved_chart
    x: 0
    y: 0
    w: 6
    h: 3
    tab_uuid: a
  - uuid: t2
    x: 6
    y: 0
    w: 6
    h: 3
`

func TestDecodeDocumentBuildsState(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(salesDocument))
	require.NoError(t, err)
	assert.Equal(t, "Sales", doc.Name)

	state := doc.State()
	assert.Equal(t, DashboardRef{ProjectUUID: "p", DashboardUUID: "d"}, state.Ref())
	assert.Equal(t, "a", state.ActiveTabUUID, "first tab becomes active")
	require.Len(t, state.Tiles, 2)
	require.NotNil(t, state.Tiles[0].TabUUID)
	assert.Nil(t, state.Tiles[1].TabUUID)
	assert.Equal(t, []string{"t1", "t2"}, visibleIDs(VisibleTiles(state)))
}

func TestDecodeDocumentRejectsInvalidInput(t *testing.T) {
	cases := map[string]string{
		"unknown field": "version: \"1\"\ndashboard_uuid: d\ncolour: red\n",
		"bad version":   "version: \"2\"\ndashboard_uuid: d\n",
		"no dashboard":  "version: \"1\"\ntabs: []\n",
		"negative x":    "version: \"1\"\ndashboard_uuid: d\ntiles:\n  - uuid: t1\n    x: -1\n",
		"duplicate tab": "version: \"1\"\ndashboard_uuid: d\ntabs:\n  - uuid: a\n    name: A\n  - uuid: a\n    name: B\n",
		"empty":         "",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDocument(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestDocumentFromStateRoundTrip(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(salesDocument))
	require.NoError(t, err)

	state := doc.State()
	state, _, ok := AddTab(state, "Forecast", sequentialIDs(), "")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, EncodeDocument(&buf, DocumentFromState(state, doc)))

	decoded, err := DecodeDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Sales", decoded.Name)
	assert.Equal(t, "id-1", decoded.ActiveTab)
	assert.True(t, decoded.TabsChanged)
	require.Len(t, decoded.Tabs, 3)
	assert.Equal(t, "Forecast", decoded.Tabs[2].Name)
}

func TestReadDocumentDirAndSeed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(salesDocument), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("version: \"1\"\ndashboard_uuid: other\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	docs, err := ReadDocumentDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "other", docs[0].DashboardUUID)
	assert.Equal(t, filepath.Join(dir, "b.yaml"), docs[1].Source)

	store := NewInMemoryStateStore()
	require.NoError(t, SeedDocuments(context.Background(), store, docs...))
	state, err := store.LoadState(context.Background(), DashboardRef{ProjectUUID: "p", DashboardUUID: "d"})
	require.NoError(t, err)
	assert.Len(t, state.Tabs, 2)
}

func TestWriteDocumentCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dash.yaml")
	doc := DocumentFromState(State{DashboardUUID: "d", Tabs: []Tab{{UUID: "a", Name: "A"}}}, nil)
	require.NoError(t, WriteDocument(path, doc))

	loaded, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "d", loaded.DashboardUUID)
	assert.Equal(t, path, loaded.Source)
}
