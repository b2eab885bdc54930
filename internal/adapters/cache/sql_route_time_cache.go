package cache

import (
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/db"
	"commute-learning-service/internal/platform/obs"
	"commute-learning-service/internal/ports"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLRouteTimeCache is a SQL-backed cache of route-time lookups keyed by
// (origin, destination, mode). Entries older than TTL are treated as misses.
// Keys are expected to be normalized by the caller.
type SQLRouteTimeCache struct {
	DB     *sql.DB
	Driver string
	TTL    time.Duration

	now func() time.Time
}

type routeDetails struct {
	Steps   []ports.RouteStep     `json:"steps"`
	Transit *ports.TransitSummary `json:"transit,omitempty"`
}

func NewSQLRouteTimeCache(conn *sql.DB, driver string, ttl time.Duration) *SQLRouteTimeCache {
	return &SQLRouteTimeCache{DB: conn, Driver: driver, TTL: ttl, now: time.Now}
}

// Fetch a cached route time. ok is false on a miss or an expired entry.
func (s *SQLRouteTimeCache) Get(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
) (_ ports.RouteTimeResult, ok bool, err error) {
	defer obs.Time(ctx, "route_time.cache.Get")(&err)

	if s.DB == nil {
		return ports.RouteTimeResult{}, false, errors.New("route time cache: db is nil")
	}

	if origin == "" || destination == "" {
		return ports.RouteTimeResult{}, false, errors.New("get route time cache: origin and destination must not be empty")
	}

	q := db.Rebind(s.Driver, `
	SELECT minutes, distance_meters, provider, details, calculated_at
    FROM route_time_cache
    WHERE origin = ?
        AND destination = ?
        AND mode = ?;
	`)

	var (
		minutes, meters   int
		provider, details string
		calculatedAt      string
	)
	err = s.DB.QueryRowContext(ctx, q, origin, destination, string(mode)).
		Scan(&minutes, &meters, &provider, &details, &calculatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteTimeResult{}, false, nil
	}
	if err != nil {
		return ports.RouteTimeResult{}, false, fmt.Errorf("get route time cache: query route_time_cache table: %w", err)
	}

	at, err := time.Parse(time.RFC3339, calculatedAt)
	if err != nil {
		return ports.RouteTimeResult{}, false, fmt.Errorf("get route time cache: parse calculated_at %q: %w", calculatedAt, err)
	}
	if s.TTL > 0 && s.now().Sub(at) > s.TTL {
		return ports.RouteTimeResult{}, false, nil
	}

	var d routeDetails
	if err := json.Unmarshal([]byte(details), &d); err != nil {
		return ports.RouteTimeResult{}, false, fmt.Errorf("get route time cache: decode details: %w", err)
	}

	return ports.RouteTimeResult{
		Origin:         origin,
		Destination:    destination,
		Mode:           mode,
		Minutes:        minutes,
		DistanceMeters: meters,
		Steps:          d.Steps,
		Transit:        d.Transit,
		Provider:       provider,
		CalculatedAt:   at,
	}, true, nil
}

// Store a route-time result, replacing any previous entry for the same key.
func (s *SQLRouteTimeCache) Put(ctx context.Context, r ports.RouteTimeResult) (err error) {
	defer obs.Time(ctx, "route_time.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("route time cache: db is nil")
	}

	if strings.TrimSpace(r.Origin) == "" || strings.TrimSpace(r.Destination) == "" {
		return errors.New("insert route time cache: origin and destination must not be empty")
	}

	details, err := json.Marshal(routeDetails{Steps: r.Steps, Transit: r.Transit})
	if err != nil {
		return fmt.Errorf("insert route time cache: encode details: %w", err)
	}

	at := r.CalculatedAt
	if at.IsZero() {
		at = s.now()
	}

	q := db.Rebind(s.Driver, `
	INSERT INTO route_time_cache (origin, destination, mode, minutes, distance_meters, provider, details, calculated_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (origin, destination, mode) DO UPDATE
	SET minutes = excluded.minutes,
		distance_meters = excluded.distance_meters,
		provider = excluded.provider,
		details = excluded.details,
		calculated_at = excluded.calculated_at;
	`)

	if _, err := s.DB.ExecContext(ctx, q,
		r.Origin, r.Destination, string(r.Mode), r.Minutes, r.DistanceMeters, r.Provider, string(details),
		at.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert route time cache origin=%q destination=%q: %w", r.Origin, r.Destination, err)
	}

	return nil
}
