package cache

import (
	"commute-learning-service/internal/adapters/repositories"
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/db"
	"commute-learning-service/internal/ports"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) *SQLRouteTimeCache {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(context.Background(), conn))

	return NewSQLRouteTimeCache(conn, db.DriverSQLite, ttl)
}

func sampleResult(at time.Time) ports.RouteTimeResult {
	return ports.RouteTimeResult{
		Origin:         "강남역",
		Destination:    "잠실역",
		Mode:           domain.ModeTransit,
		Minutes:        21,
		DistanceMeters: 8400,
		Steps: []ports.RouteStep{
			{Instruction: "지하철 2호선", Minutes: 15, TravelMode: "TRANSIT", TransitDetails: &ports.TransitDetails{Line: "2호선", Stops: 8}},
		},
		Transit:      &ports.TransitSummary{TotalStops: 8, MainLine: "2호선"},
		Provider:     "google",
		CalculatedAt: at,
	}
}

func TestRouteTimeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, time.Hour)
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return at.Add(10 * time.Minute) }

	_, ok, err := c.Get(ctx, "강남역", "잠실역", domain.ModeTransit)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, sampleResult(at)))

	got, ok, err := c.Get(ctx, "강남역", "잠실역", domain.ModeTransit)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 21, got.Minutes)
	assert.Equal(t, "google", got.Provider)
	assert.True(t, at.Equal(got.CalculatedAt))
	require.Len(t, got.Steps, 1)
	assert.Equal(t, 8, got.Steps[0].TransitDetails.Stops)
	assert.Equal(t, "2호선", got.Transit.MainLine)

	_, ok, err = c.Get(ctx, "강남역", "잠실역", domain.ModeDriving)
	require.NoError(t, err)
	assert.False(t, ok, "mode is part of the key")
}

func TestRouteTimeCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, time.Hour)
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, c.Put(ctx, sampleResult(at)))

	c.now = func() time.Time { return at.Add(2 * time.Hour) }
	_, ok, err := c.Get(ctx, "강남역", "잠실역", domain.ModeTransit)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRouteTimeCacheOverwrite(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 0)
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, c.Put(ctx, sampleResult(at)))
	r := sampleResult(at.Add(time.Minute))
	r.Minutes = 30
	require.NoError(t, c.Put(ctx, r))

	got, ok, err := c.Get(ctx, "강남역", "잠실역", domain.ModeTransit)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 30, got.Minutes)
}

func TestRouteTimeCacheRejectsEmptyKeys(t *testing.T) {
	c := newTestCache(t, time.Hour)

	_, _, err := c.Get(context.Background(), "", "b", domain.ModeTransit)
	assert.Error(t, err)
	assert.Error(t, c.Put(context.Background(), ports.RouteTimeResult{Destination: "b"}))
}
