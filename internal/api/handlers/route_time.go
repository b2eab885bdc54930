package handlers

import (
	"commute-learning-service/internal/api/dto"
	"commute-learning-service/internal/domain"
	"log"
	"net/http"
	"strings"
)

// RouteTimeHandler proxies commute-duration lookups.
type RouteTimeHandler struct {
	Routes RouteResolver
}

// Get answers GET /api/route-time?origin=&destination=&mode=&provider=.
// Provider failures are answered with an estimate; only a resolver error is a 5xx.
func (h *RouteTimeHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin := strings.TrimSpace(q.Get("origin"))
	destination := strings.TrimSpace(q.Get("destination"))

	if origin == "" || destination == "" {
		writeError(w, r, http.StatusBadRequest, "Origin and destination are required")
		return
	}

	mode, err := domain.ParseTravelMode(strings.TrimSpace(q.Get("mode")))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "mode must be one of transit, driving, walking")
		return
	}

	res, err := h.Routes.Resolve(r.Context(), origin, destination, mode, strings.TrimSpace(q.Get("provider")))
	if err != nil {
		log.Printf("route time: resolve: %v", err)
		writeError(w, r, http.StatusInternalServerError, "Failed to resolve route time")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteTimeResponse(res))
}
