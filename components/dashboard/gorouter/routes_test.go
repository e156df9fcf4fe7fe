package gorouter

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
	"github.com/goliatone/go-bi-dashboard/components/dashboard/commands"
)

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config[struct{}]{}); err == nil {
		t.Fatalf("expected error when router/api missing")
	}
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{Tabs: "/boards/:dashboard/tabs"})
	if routes.Tabs != "/boards/:dashboard/tabs" {
		t.Fatalf("expected override kept, got %s", routes.Tabs)
	}
	if routes.TabID != "/dashboards/:dashboard/tabs/:tab" {
		t.Fatalf("unexpected tab route %s", routes.TabID)
	}
	if routes.Select != "/dashboards/:dashboard/tabs/:tab/select" {
		t.Fatalf("unexpected select route %s", routes.Select)
	}
	if routes.WebSocket == "" || routes.Visible == "" || routes.Reorder == "" {
		t.Fatalf("expected defaults for every route, got %#v", routes)
	}
}

func TestParseAcceptLanguage(t *testing.T) {
	cases := map[string]string{
		"es-MX,es;q=0.9,en;q=0.8": "es-mx",
		" ,fr;q=0.5":              "fr",
		"":                        "",
	}
	for header, want := range cases {
		if got := parseAcceptLanguage(header); got != want {
			t.Fatalf("parseAcceptLanguage(%q) = %q, want %q", header, got, want)
		}
	}
}

type fakeRequest struct {
	params  map[string]string
	query   map[string]string
	body    string
	editor  dashboard.EditorContext
	project string

	status int
	sent   any
}

func (r *fakeRequest) Context() context.Context        { return context.Background() }
func (r *fakeRequest) Param(name string) string        { return r.params[name] }
func (r *fakeRequest) Query(name string) string        { return r.query[name] }
func (r *fakeRequest) Body() []byte                    { return []byte(r.body) }
func (r *fakeRequest) Editor() dashboard.EditorContext { return r.editor }
func (r *fakeRequest) Project() string                 { return r.project }
func (r *fakeRequest) JSON(code int, v any) error {
	r.status, r.sent = code, v
	return nil
}

type stubExecutor struct {
	calls   []string
	add     commands.AddTabInput
	rename  commands.RenameTabInput
	del     commands.DeleteTabInput
	reorder commands.ReorderTabsInput
	sel     commands.SelectTabInput
	commit  commands.CommitTabsInput
	tiles   commands.AddTilesInput
	layout  commands.UpdateTilesInput
	delTile commands.DeleteTileInput
	move    commands.MoveTileInput
	lastRef dashboard.DashboardRef
	payload dashboard.TabsPayload
	err     error
}

func (s *stubExecutor) AddTab(_ context.Context, in commands.AddTabInput) error {
	s.calls, s.add = append(s.calls, "add"), in
	return s.err
}

func (s *stubExecutor) RenameTab(_ context.Context, in commands.RenameTabInput) error {
	s.calls, s.rename = append(s.calls, "rename"), in
	return s.err
}

func (s *stubExecutor) DeleteTab(_ context.Context, in commands.DeleteTabInput) error {
	s.calls, s.del = append(s.calls, "delete"), in
	return s.err
}

func (s *stubExecutor) ReorderTabs(_ context.Context, in commands.ReorderTabsInput) error {
	s.calls, s.reorder = append(s.calls, "reorder"), in
	return s.err
}

func (s *stubExecutor) SelectTab(_ context.Context, in commands.SelectTabInput) error {
	s.calls, s.sel = append(s.calls, "select"), in
	return s.err
}

func (s *stubExecutor) CommitTabs(_ context.Context, in commands.CommitTabsInput) error {
	s.calls, s.commit = append(s.calls, "commit"), in
	return s.err
}

func (s *stubExecutor) AddTiles(_ context.Context, in commands.AddTilesInput) error {
	s.calls, s.tiles = append(s.calls, "add_tiles"), in
	return s.err
}

func (s *stubExecutor) UpdateTiles(_ context.Context, in commands.UpdateTilesInput) error {
	s.calls, s.layout = append(s.calls, "update_tiles"), in
	return s.err
}

func (s *stubExecutor) DeleteTile(_ context.Context, in commands.DeleteTileInput) error {
	s.calls, s.delTile = append(s.calls, "delete_tile"), in
	return s.err
}

func (s *stubExecutor) MoveTile(_ context.Context, in commands.MoveTileInput) error {
	s.calls, s.move = append(s.calls, "move_tile"), in
	return s.err
}

func (s *stubExecutor) TabsPayload(_ context.Context, ref dashboard.DashboardRef) (dashboard.TabsPayload, error) {
	s.lastRef = ref
	payload := s.payload
	payload.DashboardUUID = ref.DashboardUUID
	return payload, nil
}

func newRequest(params map[string]string, body string) *fakeRequest {
	if params == nil {
		params = map[string]string{}
	}
	if _, ok := params["dashboard"]; !ok {
		params["dashboard"] = "d1"
	}
	return &fakeRequest{
		params:  params,
		query:   map[string]string{},
		body:    body,
		editor:  dashboard.EditorContext{ActorID: "u1", Locale: "en"},
		project: "p1",
	}
}

func TestAddTabRespondsCreatedWithPayload(t *testing.T) {
	api := &stubExecutor{payload: dashboard.TabsPayload{TabsEnabled: true}}
	h := &handlers{api: api}
	req := newRequest(nil, `{"name":"Sales"}`)

	if err := h.addTab(req); err != nil {
		t.Fatalf("addTab: %v", err)
	}
	if req.status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", req.status)
	}
	payload, ok := req.sent.(dashboard.TabsPayload)
	if !ok || payload.DashboardUUID != "d1" || !payload.TabsEnabled {
		t.Fatalf("unexpected payload %#v", req.sent)
	}
	if api.add.Name != "Sales" || api.add.ProjectUUID != "p1" || api.add.DashboardUUID != "d1" {
		t.Fatalf("unexpected add input %#v", api.add)
	}
	if api.add.Editor.ActorID != "u1" {
		t.Fatalf("expected editor forwarded, got %#v", api.add.Editor)
	}
}

func TestRenameAndDeleteTabUseRouteParam(t *testing.T) {
	api := &stubExecutor{}
	h := &handlers{api: api}

	req := newRequest(map[string]string{"tab": "t1"}, `{"name":"Renamed","tab_uuid":"ignored"}`)
	if err := h.renameTab(req); err != nil {
		t.Fatalf("renameTab: %v", err)
	}
	if req.status != http.StatusOK || api.rename.TabUUID != "t1" || api.rename.Name != "Renamed" {
		t.Fatalf("unexpected rename %d %#v", req.status, api.rename)
	}

	req = newRequest(map[string]string{"tab": "t2"}, "")
	if err := h.deleteTab(req); err != nil {
		t.Fatalf("deleteTab: %v", err)
	}
	if req.status != http.StatusOK || api.del.TabUUID != "t2" || api.del.DashboardUUID != "d1" {
		t.Fatalf("unexpected delete %d %#v", req.status, api.del)
	}

	req = newRequest(nil, "")
	if err := h.deleteTab(req); err != nil {
		t.Fatalf("deleteTab: %v", err)
	}
	if req.status != http.StatusBadRequest {
		t.Fatalf("expected 400 without tab id, got %d", req.status)
	}
	if len(api.calls) != 2 {
		t.Fatalf("expected two executor calls, got %v", api.calls)
	}
}

func TestReorderTabsDecodesDestination(t *testing.T) {
	api := &stubExecutor{}
	h := &handlers{api: api}

	req := newRequest(nil, `{"source":2,"destination":0}`)
	if err := h.reorderTabs(req); err != nil {
		t.Fatalf("reorderTabs: %v", err)
	}
	if api.reorder.Source != 2 || api.reorder.Destination == nil || *api.reorder.Destination != 0 {
		t.Fatalf("unexpected reorder %#v", api.reorder)
	}

	req = newRequest(nil, `{"source":2}`)
	if err := h.reorderTabs(req); err != nil {
		t.Fatalf("reorderTabs: %v", err)
	}
	if req.status != http.StatusOK || api.reorder.Destination != nil {
		t.Fatalf("expected nil destination, got %d %#v", req.status, api.reorder)
	}

	req = newRequest(nil, `{`)
	if err := h.reorderTabs(req); err != nil {
		t.Fatalf("reorderTabs: %v", err)
	}
	if req.status != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", req.status)
	}
}

func TestSelectTabPassesModeAndQuery(t *testing.T) {
	api := &stubExecutor{}
	h := &handlers{api: api}
	req := newRequest(map[string]string{"tab": "t3"}, "")
	req.query["mode"] = "view"
	req.query["query"] = "native_filters=x"

	if err := h.selectTab(req); err != nil {
		t.Fatalf("selectTab: %v", err)
	}
	if api.sel.TabUUID != "t3" || api.sel.Mode != dashboard.ModeView || api.sel.Query != "native_filters=x" {
		t.Fatalf("unexpected select input %#v", api.sel)
	}
	if req.status != http.StatusOK {
		t.Fatalf("expected 200, got %d", req.status)
	}
}

func TestVisibleTilesShape(t *testing.T) {
	api := &stubExecutor{payload: dashboard.TabsPayload{
		Tiles:              []dashboard.Tile{{UUID: "t1"}},
		CurrentTabHasTiles: true,
	}}
	h := &handlers{api: api}
	req := newRequest(nil, "")

	if err := h.visibleTiles(req); err != nil {
		t.Fatalf("visibleTiles: %v", err)
	}
	body, ok := req.sent.(map[string]any)
	if !ok {
		t.Fatalf("unexpected body %#v", req.sent)
	}
	tiles, _ := body["tiles"].([]dashboard.Tile)
	if len(tiles) != 1 || body["current_tab_has_tiles"] != true {
		t.Fatalf("unexpected visible body %#v", body)
	}
	if api.lastRef != (dashboard.DashboardRef{ProjectUUID: "p1", DashboardUUID: "d1"}) {
		t.Fatalf("unexpected ref %#v", api.lastRef)
	}
}

func TestHandlersRejectMissingDashboard(t *testing.T) {
	api := &stubExecutor{}
	h := &handlers{api: api}
	routes := map[string]func(request) error{
		"list":    h.listTabs,
		"visible": h.visibleTiles,
		"add":     h.addTab,
		"commit":  h.commitTabs,
		"move":    h.moveTile,
	}
	for name, handle := range routes {
		req := newRequest(map[string]string{"dashboard": "  "}, `{}`)
		if err := handle(req); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if req.status != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, req.status)
		}
		body, _ := req.sent.(map[string]string)
		if body["error"] != "dashboard uuid is required" {
			t.Fatalf("%s: unexpected error body %#v", name, req.sent)
		}
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected no executor calls, got %v", api.calls)
	}
}

func TestExecutorErrorsRespondInternal(t *testing.T) {
	api := &stubExecutor{err: errors.New("store down")}
	h := &handlers{api: api}
	req := newRequest(nil, `{"name":"x"}`)

	if err := h.addTab(req); err != nil {
		t.Fatalf("addTab: %v", err)
	}
	if req.status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", req.status)
	}
}

func TestCommitAndTileRoutes(t *testing.T) {
	api := &stubExecutor{}
	h := &handlers{api: api}

	req := newRequest(nil, "")
	if err := h.commitTabs(req); err != nil || req.status != http.StatusOK {
		t.Fatalf("commitTabs: %v %d", err, req.status)
	}
	if api.commit.DashboardUUID != "d1" {
		t.Fatalf("unexpected commit input %#v", api.commit)
	}

	req = newRequest(nil, `{"tiles":[{"uuid":"n1","tab_uuid":"a"}]}`)
	if err := h.addTiles(req); err != nil || req.status != http.StatusCreated {
		t.Fatalf("addTiles: %v %d", err, req.status)
	}
	if len(api.tiles.Tiles) != 1 || api.tiles.Tiles[0].UUID != "n1" {
		t.Fatalf("unexpected tiles input %#v", api.tiles)
	}

	req = newRequest(nil, `{"layout":[{"uuid":"n1","x":4,"y":1,"w":2,"h":3}]}`)
	if err := h.updateTiles(req); err != nil || req.status != http.StatusOK {
		t.Fatalf("updateTiles: %v %d", err, req.status)
	}
	if len(api.layout.Layout) != 1 || api.layout.Layout[0].X != 4 {
		t.Fatalf("unexpected layout input %#v", api.layout)
	}

	req = newRequest(map[string]string{"tile": "n1"}, "")
	if err := h.deleteTile(req); err != nil || req.status != http.StatusOK {
		t.Fatalf("deleteTile: %v %d", err, req.status)
	}
	if api.delTile.TileUUID != "n1" {
		t.Fatalf("unexpected delete tile input %#v", api.delTile)
	}

	req = newRequest(map[string]string{"tile": "n1"}, `{"tab_uuid":"b"}`)
	if err := h.moveTile(req); err != nil || req.status != http.StatusOK {
		t.Fatalf("moveTile: %v %d", err, req.status)
	}
	if api.move.TileUUID != "n1" || api.move.TabUUID != "b" || api.move.Editor.ActorID != "u1" {
		t.Fatalf("unexpected move input %#v", api.move)
	}
}

func TestDefaultRouteConfigTileRoutes(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{})
	cases := []struct{ got, want string }{
		{routes.Commit, "/dashboards/:dashboard/tabs/commit"},
		{routes.Tiles, "/dashboards/:dashboard/tiles"},
		{routes.TileID, "/dashboards/:dashboard/tiles/:tile"},
		{routes.MoveTile, "/dashboards/:dashboard/tiles/:tile/move"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("route %s, want %s", tc.got, tc.want)
		}
	}
}
