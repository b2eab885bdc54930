package api

import (
	"commute-learning-service/internal/api/handlers"
	"commute-learning-service/internal/ports"
	"commute-learning-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Catalog     services.Catalog
	Aggregator  *services.PackAggregator
	Routes      handlers.RouteResolver
	Notion      ports.PackFetcher
	SavedRoutes *services.SavedRouteStore
	Budget      handlers.Budget
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	packHandler := &handlers.PackHandler{Catalog: d.Catalog, Budget: d.Budget}
	routePackHandler := &handlers.RoutePackHandler{
		Aggregator: d.Aggregator,
		Routes:     d.Routes,
		Budget:     d.Budget,
	}
	routeTimeHandler := &handlers.RouteTimeHandler{Routes: d.Routes}
	notionHandler := &handlers.NotionHandler{Fetcher: d.Notion}
	savedRouteHandler := &handlers.SavedRouteHandler{Store: d.SavedRoutes}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(loggingMiddleware)
	r.Use(chimw.Recoverer)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/learning-packs", packHandler.List)
		r.Post("/route-packs", routePackHandler.Recommend)
		r.Get("/route-time", routeTimeHandler.Get)
		r.Get("/notion", notionHandler.Get)

		r.Route("/saved-routes", func(r chi.Router) {
			r.Get("/", savedRouteHandler.List)
			r.Post("/", savedRouteHandler.Upsert)
			r.Put("/{id}", savedRouteHandler.Upsert)
			r.Delete("/{id}", savedRouteHandler.Delete)
		})
	})

	return r
}
