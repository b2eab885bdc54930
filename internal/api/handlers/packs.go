package handlers

import (
	"commute-learning-service/internal/api/dto"
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/ports"
	"commute-learning-service/internal/services"
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// Budget holds the minute defaults applied to requests.
type Budget struct {
	Default int
	Min     int
	Max     int
}

// RouteResolver looks up a commute duration with a provider preference.
type RouteResolver interface {
	Resolve(ctx context.Context, origin, destination string, mode domain.TravelMode, provider string) (ports.RouteTimeResult, error)
}

// PackHandler serves catalog selections for a time budget.
type PackHandler struct {
	Catalog services.Catalog
	Budget  Budget
}

// List answers GET /api/learning-packs?minutes=N. A missing, non-numeric, or
// non-positive value selects for the default budget.
func (h *PackHandler) List(w http.ResponseWriter, r *http.Request) {
	minutes := h.Budget.Default
	if v := strings.TrimSpace(r.URL.Query().Get("minutes")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 && n <= float64(1<<31-1) {
			minutes = int(n)
		}
	}

	packs := services.SelectPacks(h.Catalog.Packs(), minutes)

	writeJSON(w, r, http.StatusOK, dto.LearningPacksResponse{
		Minutes:      minutes,
		TotalMinutes: services.TotalMinutes(packs),
		Packs:        packs,
	})
}

// RoutePackHandler serves aggregated packs for a commute.
type RoutePackHandler struct {
	Aggregator *services.PackAggregator
	Routes     RouteResolver
	Budget     Budget
}

// Recommend answers POST /api/route-packs. An explicit positive minutes value
// is used as the budget; otherwise the route time is looked up and clamped to
// the configured range, falling back to the default budget without a route.
func (h *RoutePackHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req dto.RoutePacksRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	mode, err := domain.ParseTravelMode(strings.TrimSpace(req.Mode))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "mode must be one of transit, driving, walking")
		return
	}

	summary := dto.RouteSummary{
		Origin:      strings.TrimSpace(req.Origin),
		Destination: strings.TrimSpace(req.Destination),
		Mode:        string(mode),
	}

	switch {
	case req.Minutes != nil && *req.Minutes > 0:
		summary.Minutes = *req.Minutes
		summary.Source = "request"

	case summary.Origin != "" && summary.Destination != "" && h.Routes != nil:
		rt, err := h.Routes.Resolve(r.Context(), summary.Origin, summary.Destination, mode, req.Provider)
		if err != nil {
			log.Printf("route packs: resolve route time: %v", err)
			writeError(w, r, http.StatusInternalServerError, "Failed to resolve route time")
			return
		}
		summary.Mode = string(rt.Mode)
		summary.Minutes = services.ClampMinutes(rt.Minutes, h.Budget.Min, h.Budget.Max)
		summary.Source = rt.Provider
		summary.IsEstimate = rt.IsEstimate

	default:
		summary.Minutes = h.Budget.Default
		summary.Source = "default"
	}

	ids := make([]string, 0, len(req.ExternalPackIDs))
	for _, id := range req.ExternalPackIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) != len(req.ExternalPackIDs) {
		log.Printf("route packs: dropped %d blank external pack ids", len(req.ExternalPackIDs)-len(ids))
	}

	route := domain.RouteInfo{
		Origin:      summary.Origin,
		Destination: summary.Destination,
		Minutes:     summary.Minutes,
		Mode:        domain.TravelMode(summary.Mode),
	}
	packs := h.Aggregator.Aggregate(r.Context(), route, ids)

	writeJSON(w, r, http.StatusOK, dto.RoutePacksResponse{
		Route:        summary,
		TotalMinutes: services.TotalMinutes(packs),
		Packs:        packs,
	})
}
