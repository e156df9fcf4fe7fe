package gorouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
	"github.com/goliatone/go-bi-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-bi-dashboard/components/dashboard/httpapi"
)

// EditorResolver converts a router.Context into a dashboard.EditorContext.
type EditorResolver func(router.Context) dashboard.EditorContext

// ProjectResolver extracts the project uuid for the current request.
type ProjectResolver func(router.Context) string

// Config wires go-router with the tab APIs and broadcast hook.
type Config[T any] struct {
	Router          router.Router[T]
	API             httpapi.Executor
	Broadcast       *dashboard.BroadcastHook
	EditorResolver  EditorResolver
	ProjectResolver ProjectResolver
	BasePath        string
	Routes          RouteConfig
}

// RouteConfig customizes the relative paths used for tab and tile endpoints.
type RouteConfig struct {
	Tabs      string
	TabID     string
	Reorder   string
	Select    string
	Commit    string
	Tiles     string
	TileID    string
	MoveTile  string
	Visible   string
	WebSocket string
}

// Register mounts the tab REST and WebSocket routes on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api executor is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/api"
	}
	editorResolver := cfg.EditorResolver
	if editorResolver == nil {
		editorResolver = defaultEditorResolver
	}
	projectResolver := cfg.ProjectResolver
	if projectResolver == nil {
		projectResolver = defaultProjectResolver
	}

	group := cfg.Router.Group(base)
	registerAPI(group, &handlers{api: cfg.API}, editorResolver, projectResolver, routes)

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

// request is the slice of a router context the handlers read and write.
type request interface {
	Context() context.Context
	Param(name string) string
	Query(name string) string
	Body() []byte
	JSON(code int, v any) error
	Editor() dashboard.EditorContext
	Project() string
}

type routerRequest struct {
	ctx      router.Context
	editors  EditorResolver
	projects ProjectResolver
}

func (r routerRequest) Context() context.Context        { return r.ctx.Context() }
func (r routerRequest) Param(name string) string        { return r.ctx.Param(name) }
func (r routerRequest) Query(name string) string        { return r.ctx.Query(name) }
func (r routerRequest) Body() []byte                    { return r.ctx.Body() }
func (r routerRequest) JSON(code int, v any) error      { return r.ctx.JSON(code, v) }
func (r routerRequest) Editor() dashboard.EditorContext { return r.editors(r.ctx) }
func (r routerRequest) Project() string                 { return r.projects(r.ctx) }

func registerAPI[T any](r router.Router[T], h *handlers, editors EditorResolver, projects ProjectResolver, routes RouteConfig) {
	bind := func(fn func(request) error) func(router.Context) error {
		return func(ctx router.Context) error {
			return fn(routerRequest{ctx: ctx, editors: editors, projects: projects})
		}
	}

	r.Get(routes.Tabs, router.WrapHandler(bind(h.listTabs)))
	r.Post(routes.Tabs, router.WrapHandler(bind(h.addTab)))
	r.Post(routes.Reorder, router.WrapHandler(bind(h.reorderTabs)))
	r.Post(routes.Commit, router.WrapHandler(bind(h.commitTabs)))
	r.Put(routes.TabID, router.WrapHandler(bind(h.renameTab)))
	r.Delete(routes.TabID, router.WrapHandler(bind(h.deleteTab)))
	r.Post(routes.Select, router.WrapHandler(bind(h.selectTab)))

	r.Get(routes.Visible, router.WrapHandler(bind(h.visibleTiles)))
	r.Post(routes.Tiles, router.WrapHandler(bind(h.addTiles)))
	r.Put(routes.Tiles, router.WrapHandler(bind(h.updateTiles)))
	r.Delete(routes.TileID, router.WrapHandler(bind(h.deleteTile)))
	r.Post(routes.MoveTile, router.WrapHandler(bind(h.moveTile)))
}

type handlers struct {
	api httpapi.Executor
}

type requestScope struct {
	ref    dashboard.DashboardRef
	editor dashboard.EditorContext
}

func scope(req request) (requestScope, error) {
	dashboardUUID := strings.TrimSpace(req.Param("dashboard"))
	if dashboardUUID == "" {
		return requestScope{}, errors.New("dashboard uuid is required")
	}
	return requestScope{
		ref:    dashboard.DashboardRef{ProjectUUID: req.Project(), DashboardUUID: dashboardUUID},
		editor: req.Editor(),
	}, nil
}

// mutation resolves the scope, runs exec and answers with the refreshed
// payload. Decode failures surface as 400.
func (h *handlers) mutation(req request, status int, exec func(context.Context, requestScope) error) error {
	s, err := scope(req)
	if err != nil {
		return respondError(req, http.StatusBadRequest, err)
	}
	if err := exec(req.Context(), s); err != nil {
		var bad badRequest
		if errors.As(err, &bad) {
			return respondError(req, http.StatusBadRequest, bad.err)
		}
		return respondError(req, http.StatusInternalServerError, err)
	}
	return h.respondPayload(req, s, status)
}

type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }

func decode(req request, v any) error {
	if err := json.Unmarshal(req.Body(), v); err != nil {
		return badRequest{err: err}
	}
	return nil
}

func (h *handlers) respondPayload(req request, s requestScope, status int) error {
	payload, err := h.api.TabsPayload(req.Context(), s.ref)
	if err != nil {
		return respondError(req, http.StatusInternalServerError, err)
	}
	return req.JSON(status, payload)
}

func (h *handlers) listTabs(req request) error {
	s, err := scope(req)
	if err != nil {
		return respondError(req, http.StatusBadRequest, err)
	}
	return h.respondPayload(req, s, http.StatusOK)
}

func (h *handlers) visibleTiles(req request) error {
	s, err := scope(req)
	if err != nil {
		return respondError(req, http.StatusBadRequest, err)
	}
	payload, err := h.api.TabsPayload(req.Context(), s.ref)
	if err != nil {
		return respondError(req, http.StatusInternalServerError, err)
	}
	return req.JSON(http.StatusOK, map[string]any{
		"tiles":                 payload.Tiles,
		"current_tab_has_tiles": payload.CurrentTabHasTiles,
		"empty_container_type":  payload.EmptyContainerType,
	})
}

func (h *handlers) addTab(req request) error {
	return h.mutation(req, http.StatusCreated, func(ctx context.Context, s requestScope) error {
		var input commands.AddTabInput
		if err := decode(req, &input); err != nil {
			return err
		}
		input.DashboardRef, input.Editor = s.ref, s.editor
		return h.api.AddTab(ctx, input)
	})
}

func (h *handlers) renameTab(req request) error {
	return h.mutation(req, http.StatusOK, func(ctx context.Context, s requestScope) error {
		var input commands.RenameTabInput
		if err := decode(req, &input); err != nil {
			return err
		}
		input.DashboardRef, input.Editor = s.ref, s.editor
		input.TabUUID = req.Param("tab")
		return h.api.RenameTab(ctx, input)
	})
}

func (h *handlers) deleteTab(req request) error {
	return h.mutation(req, http.StatusOK, func(ctx context.Context, s requestScope) error {
		id := req.Param("tab")
		if id == "" {
			return badRequest{err: errors.New("tab uuid is required")}
		}
		return h.api.DeleteTab(ctx, commands.DeleteTabInput{DashboardRef: s.ref, TabUUID: id, Editor: s.editor})
	})
}

func (h *handlers) reorderTabs(req request) error {
	return h.mutation(req, http.StatusOK, func(ctx context.Context, s requestScope) error {
		var input commands.ReorderTabsInput
		if err := decode(req, &input); err != nil {
			return err
		}
		input.DashboardRef, input.Editor = s.ref, s.editor
		return h.api.ReorderTabs(ctx, input)
	})
}

func (h *handlers) selectTab(req request) error {
	return h.mutation(req, http.StatusOK, func(ctx context.Context, s requestScope) error {
		return h.api.SelectTab(ctx, commands.SelectTabInput{
			DashboardRef: s.ref,
			TabUUID:      req.Param("tab"),
			Mode:         dashboard.ParseViewMode(req.Query("mode")),
			Query:        req.Query("query"),
			Editor:       s.editor,
		})
	})
}

func (h *handlers) commitTabs(req request) error {
	return h.mutation(req, http.StatusOK, func(ctx context.Context, s requestScope) error {
		return h.api.CommitTabs(ctx, commands.CommitTabsInput{DashboardRef: s.ref, Editor: s.editor})
	})
}

func (h *handlers) addTiles(req request) error {
	return h.mutation(req, http.StatusCreated, func(ctx context.Context, s requestScope) error {
		var input commands.AddTilesInput
		if err := decode(req, &input); err != nil {
			return err
		}
		input.DashboardRef, input.Editor = s.ref, s.editor
		return h.api.AddTiles(ctx, input)
	})
}

func (h *handlers) updateTiles(req request) error {
	return h.mutation(req, http.StatusOK, func(ctx context.Context, s requestScope) error {
		var input commands.UpdateTilesInput
		if err := decode(req, &input); err != nil {
			return err
		}
		input.DashboardRef, input.Editor = s.ref, s.editor
		return h.api.UpdateTiles(ctx, input)
	})
}

func (h *handlers) deleteTile(req request) error {
	return h.mutation(req, http.StatusOK, func(ctx context.Context, s requestScope) error {
		id := req.Param("tile")
		if id == "" {
			return badRequest{err: errors.New("tile uuid is required")}
		}
		return h.api.DeleteTile(ctx, commands.DeleteTileInput{DashboardRef: s.ref, TileUUID: id, Editor: s.editor})
	})
}

func (h *handlers) moveTile(req request) error {
	return h.mutation(req, http.StatusOK, func(ctx context.Context, s requestScope) error {
		var input commands.MoveTileInput
		if err := decode(req, &input); err != nil {
			return err
		}
		input.DashboardRef, input.Editor = s.ref, s.editor
		input.TileUUID = req.Param("tile")
		return h.api.MoveTile(ctx, input)
	})
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe("")
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultEditorResolver(ctx router.Context) dashboard.EditorContext {
	var editor dashboard.EditorContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		editor.ActorID = v
	}
	editor.Locale = inferLocale(ctx)
	return editor
}

func defaultProjectResolver(ctx router.Context) string {
	if v, ok := ctx.Locals("project_uuid").(string); ok && v != "" {
		return v
	}
	return strings.TrimSpace(ctx.Query("project"))
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

type jsonResponder interface {
	JSON(code int, v any) error
}

func respondError(w jsonResponder, status int, err error) error {
	return w.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Tabs == "" {
		routes.Tabs = "/dashboards/:dashboard/tabs"
	}
	if routes.TabID == "" {
		routes.TabID = "/dashboards/:dashboard/tabs/:tab"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/dashboards/:dashboard/tabs/reorder"
	}
	if routes.Select == "" {
		routes.Select = "/dashboards/:dashboard/tabs/:tab/select"
	}
	if routes.Commit == "" {
		routes.Commit = "/dashboards/:dashboard/tabs/commit"
	}
	if routes.Tiles == "" {
		routes.Tiles = "/dashboards/:dashboard/tiles"
	}
	if routes.TileID == "" {
		routes.TileID = "/dashboards/:dashboard/tiles/:tile"
	}
	if routes.MoveTile == "" {
		routes.MoveTile = "/dashboards/:dashboard/tiles/:tile/move"
	}
	if routes.Visible == "" {
		routes.Visible = "/dashboards/:dashboard/tiles/visible"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboards/ws"
	}
	return routes
}
