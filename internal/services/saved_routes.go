package services

import (
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/obs"
	"commute-learning-service/internal/ports"
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SavedRoutesKey is the single storage key holding the JSON list of saved routes.
const SavedRoutesKey = "savedRoutes"

// SavedRouteStore keeps an ordered list of saved routes in a key-value store.
//
// Storage failures never reach the caller: unreadable or corrupt data reads as
// an empty list and failed writes are logged. Writers in other processes
// sharing the same store are not coordinated (last writer wins).
type SavedRouteStore struct {
	kv    ports.KeyValueStore
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

func NewSavedRouteStore(kv ports.KeyValueStore) *SavedRouteStore {
	return &SavedRouteStore{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// List returns every saved route in stored order.
func (s *SavedRouteStore) List(ctx context.Context) []domain.SavedRoute {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Upsert replaces the route with the same ID in place, or appends it.
// A route without an ID is given a new one, and an empty LastUpdated is
// stamped with the current time. It returns the stored route and the full list.
func (s *SavedRouteStore) Upsert(ctx context.Context, route domain.SavedRoute) (domain.SavedRoute, []domain.SavedRoute) {
	s.mu.Lock()
	defer s.mu.Unlock()

	route.ID = strings.TrimSpace(route.ID)
	if route.ID == "" {
		route.ID = s.newID()
	}
	if strings.TrimSpace(route.LastUpdated) == "" {
		route.LastUpdated = s.now().UTC().Format(time.RFC3339)
	}

	routes := s.load(ctx)

	replaced := false
	for i := range routes {
		if routes[i].ID == route.ID {
			routes[i] = route
			replaced = true
			break
		}
	}
	if !replaced {
		routes = append(routes, route)
	}

	s.save(ctx, routes)
	return route, routes
}

// Remove deletes the route with the given ID. Unknown IDs are a no-op.
func (s *SavedRouteStore) Remove(ctx context.Context, id string) []domain.SavedRoute {
	s.mu.Lock()
	defer s.mu.Unlock()

	routes := s.load(ctx)

	kept := make([]domain.SavedRoute, 0, len(routes))
	for _, r := range routes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(routes) {
		return routes
	}

	s.save(ctx, kept)
	return kept
}

func (s *SavedRouteStore) load(ctx context.Context) []domain.SavedRoute {
	empty := []domain.SavedRoute{}
	if s.kv == nil {
		return empty
	}

	raw, ok, err := s.kv.Get(ctx, SavedRoutesKey)
	if err != nil {
		log.Printf("saved routes: read failed key=%s err=%v", SavedRoutesKey, err)
		obs.SavedRouteStoreErrors.WithLabelValues("read").Inc()
		return empty
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return empty
	}

	var routes []domain.SavedRoute
	if err := json.Unmarshal([]byte(raw), &routes); err != nil {
		log.Printf("saved routes: corrupt value key=%s err=%v", SavedRoutesKey, err)
		obs.SavedRouteStoreErrors.WithLabelValues("decode").Inc()
		return empty
	}

	// Keep the first entry per ID if the stored list was edited out of band.
	seen := make(map[string]struct{}, len(routes))
	out := make([]domain.SavedRoute, 0, len(routes))
	for _, r := range routes {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}

	return out
}

func (s *SavedRouteStore) save(ctx context.Context, routes []domain.SavedRoute) {
	if s.kv == nil {
		return
	}

	b, err := json.Marshal(routes)
	if err != nil {
		log.Printf("saved routes: encode failed err=%v", err)
		obs.SavedRouteStoreErrors.WithLabelValues("write").Inc()
		return
	}

	if err := s.kv.Set(ctx, SavedRoutesKey, string(b)); err != nil {
		log.Printf("saved routes: write failed key=%s err=%v", SavedRoutesKey, err)
		obs.SavedRouteStoreErrors.WithLabelValues("write").Inc()
	}
}
