package httpapi

import (
	"encoding/json"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
	"github.com/goliatone/go-bi-dashboard/components/dashboard/commands"
)

// Handlers exposes HTTP endpoints backed by shared commands. When Payload is
// set, mutating handlers answer with the refreshed tab payload.
type Handlers struct {
	AddTab      gocommand.Commander[commands.AddTabInput]
	RenameTab   gocommand.Commander[commands.RenameTabInput]
	DeleteTab   gocommand.Commander[commands.DeleteTabInput]
	ReorderTabs gocommand.Commander[commands.ReorderTabsInput]
	SelectTab   gocommand.Commander[commands.SelectTabInput]
	CommitTabs  gocommand.Commander[commands.CommitTabsInput]
	AddTiles    gocommand.Commander[commands.AddTilesInput]
	UpdateTiles gocommand.Commander[commands.UpdateTilesInput]
	DeleteTile  gocommand.Commander[commands.DeleteTileInput]
	MoveTile    gocommand.Commander[commands.MoveTileInput]
	Payload     gocommand.Querier[dashboard.DashboardRef, dashboard.TabsPayload]
}

func (h *Handlers) HandleListTabs(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef) {
	if h.Payload == nil {
		http.Error(w, "tabs payload query not configured", http.StatusNotImplemented)
		return
	}
	h.respond(w, r, ref, http.StatusOK)
}

func (h *Handlers) HandleAddTab(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef) {
	var payload commands.AddTabInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.DashboardRef = ref
	payload.Editor = dashboard.EditorFromContext(r.Context())
	if err := h.AddTab.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, r, ref, http.StatusCreated)
}

func (h *Handlers) HandleRenameTab(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef, tabUUID string) {
	var payload commands.RenameTabInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.DashboardRef = ref
	payload.TabUUID = tabUUID
	payload.Editor = dashboard.EditorFromContext(r.Context())
	if err := h.RenameTab.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, r, ref, http.StatusOK)
}

func (h *Handlers) HandleDeleteTab(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef, tabUUID string) {
	input := commands.DeleteTabInput{
		DashboardRef: ref,
		TabUUID:      tabUUID,
		Editor:       dashboard.EditorFromContext(r.Context()),
	}
	if err := h.DeleteTab.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if h.Payload == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.respond(w, r, ref, http.StatusOK)
}

func (h *Handlers) HandleReorderTabs(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef) {
	var payload commands.ReorderTabsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.DashboardRef = ref
	payload.Editor = dashboard.EditorFromContext(r.Context())
	if err := h.ReorderTabs.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, r, ref, http.StatusOK)
}

func (h *Handlers) HandleSelectTab(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef, tabUUID string) {
	input := commands.SelectTabInput{
		DashboardRef: ref,
		TabUUID:      tabUUID,
		Mode:         dashboard.ParseViewMode(r.URL.Query().Get("mode")),
		Query:        r.URL.Query().Get("query"),
		Editor:       dashboard.EditorFromContext(r.Context()),
	}
	if err := h.SelectTab.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, r, ref, http.StatusOK)
}

func (h *Handlers) HandleCommitTabs(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef) {
	input := commands.CommitTabsInput{DashboardRef: ref, Editor: dashboard.EditorFromContext(r.Context())}
	if err := h.CommitTabs.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, r, ref, http.StatusOK)
}

func (h *Handlers) HandleAddTiles(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef) {
	var payload commands.AddTilesInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.DashboardRef = ref
	payload.Editor = dashboard.EditorFromContext(r.Context())
	if err := h.AddTiles.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, r, ref, http.StatusCreated)
}

func (h *Handlers) HandleUpdateTiles(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef) {
	var payload commands.UpdateTilesInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.DashboardRef = ref
	payload.Editor = dashboard.EditorFromContext(r.Context())
	if err := h.UpdateTiles.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, r, ref, http.StatusOK)
}

func (h *Handlers) HandleDeleteTile(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef, tileUUID string) {
	input := commands.DeleteTileInput{
		DashboardRef: ref,
		TileUUID:     tileUUID,
		Editor:       dashboard.EditorFromContext(r.Context()),
	}
	if err := h.DeleteTile.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, r, ref, http.StatusOK)
}

func (h *Handlers) HandleMoveTile(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef, tileUUID string) {
	var payload commands.MoveTileInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.DashboardRef = ref
	payload.TileUUID = tileUUID
	payload.Editor = dashboard.EditorFromContext(r.Context())
	if err := h.MoveTile.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, r, ref, http.StatusOK)
}

func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, ref dashboard.DashboardRef, status int) {
	if h.Payload == nil {
		w.WriteHeader(status)
		return
	}
	payload, err := h.Payload.Query(r.Context(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
