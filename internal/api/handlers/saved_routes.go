package handlers

import (
	"commute-learning-service/internal/api/dto"
	"commute-learning-service/internal/services"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// SavedRouteHandler manages the persisted list of commute shortcuts.
type SavedRouteHandler struct {
	Store *services.SavedRouteStore
}

func (h *SavedRouteHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.ListSavedRoutesResponse{Routes: h.Store.List(r.Context())})
}

// Upsert handles POST /api/saved-routes and PUT /api/saved-routes/{id}.
// A path id wins over an empty body id; conflicting ids are rejected.
func (h *SavedRouteHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req dto.SavedRouteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	if pathID := strings.TrimSpace(chi.URLParam(r, "id")); pathID != "" {
		bodyID := strings.TrimSpace(req.ID)
		if bodyID != "" && bodyID != pathID {
			writeError(w, r, http.StatusBadRequest, "id in body does not match path")
			return
		}
		req.ID = pathID
	}

	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Origin == "" || req.Destination == "" {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}
	if req.LastCalculatedMinutes < 0 {
		writeError(w, r, http.StatusBadRequest, "lastCalculatedMinutes must not be negative")
		return
	}

	status := http.StatusOK
	if r.Method == http.MethodPost && strings.TrimSpace(req.ID) == "" {
		status = http.StatusCreated
	}

	route, routes := h.Store.Upsert(r.Context(), req.ToDomain())
	writeJSON(w, r, status, dto.SavedRouteResponse{Route: route, Routes: routes})
}

func (h *SavedRouteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListSavedRoutesResponse{Routes: h.Store.Remove(r.Context(), id)})
}
