package directions

import (
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/ports"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type providerFunc func(ctx context.Context, origin, destination string, mode domain.TravelMode) (ports.RouteTimeResult, error)

func (f providerFunc) GetRouteTime(ctx context.Context, origin, destination string, mode domain.TravelMode) (ports.RouteTimeResult, error) {
	return f(ctx, origin, destination, mode)
}

type cacheKey struct {
	origin, destination string
	mode                domain.TravelMode
}

type mapCache struct {
	entries map[cacheKey]ports.RouteTimeResult
	getErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[cacheKey]ports.RouteTimeResult)}
}

func (m *mapCache) Get(_ context.Context, origin, destination string, mode domain.TravelMode) (ports.RouteTimeResult, bool, error) {
	if m.getErr != nil {
		return ports.RouteTimeResult{}, false, m.getErr
	}
	r, ok := m.entries[cacheKey{origin, destination, mode}]
	return r, ok, nil
}

func (m *mapCache) Put(_ context.Context, r ports.RouteTimeResult) error {
	m.entries[cacheKey{r.Origin, r.Destination, r.Mode}] = r
	return nil
}

func fixed(provider string, minutes int, calls *int) providerFunc {
	return func(_ context.Context, origin, destination string, mode domain.TravelMode) (ports.RouteTimeResult, error) {
		*calls++
		return ports.RouteTimeResult{Origin: origin, Destination: destination, Mode: mode, Minutes: minutes, Provider: provider}, nil
	}
}

func failing(calls *int) providerFunc {
	return func(context.Context, string, string, domain.TravelMode) (ports.RouteTimeResult, error) {
		*calls++
		return ports.RouteTimeResult{}, errors.New("upstream down")
	}
}

func TestResolveRejectsEmptyEndpoints(t *testing.T) {
	r := &Resolver{}
	_, err := r.Resolve(context.Background(), "  ", "잠실", domain.ModeTransit, "")
	assert.Error(t, err)
}

func TestResolveWithoutProvidersEstimates(t *testing.T) {
	r := &Resolver{Estimate: NewEstimateProvider()}

	got, err := r.Resolve(context.Background(), "강남", "잠실", domain.ModeTransit, ProviderGoogle)
	require.NoError(t, err)
	assert.True(t, got.IsEstimate)
	assert.Equal(t, 15, got.Minutes)
}

func TestResolvePrefersKakaoWhenAsked(t *testing.T) {
	var kCalls, gCalls int
	r := &Resolver{Kakao: fixed(ProviderKakao, 22, &kCalls), Google: fixed(ProviderGoogle, 40, &gCalls)}

	got, err := r.Resolve(context.Background(), "강남", "잠실", domain.ModeTransit, ProviderKakao)
	require.NoError(t, err)
	assert.Equal(t, ProviderKakao, got.Provider)
	assert.Equal(t, domain.ModeDriving, got.Mode)
	assert.Equal(t, 1, kCalls)
	assert.Equal(t, 0, gCalls)

	got, err = r.Resolve(context.Background(), "강남", "잠실", domain.ModeTransit, ProviderGoogle)
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, got.Provider)
	assert.Equal(t, 1, gCalls)
}

func TestResolveFallsThroughOnFailure(t *testing.T) {
	var kCalls, gCalls int
	r := &Resolver{Kakao: failing(&kCalls), Google: failing(&gCalls)}

	got, err := r.Resolve(context.Background(), "홍대", "신촌", domain.ModeTransit, ProviderKakao)
	require.NoError(t, err)
	assert.Equal(t, 1, kCalls)
	assert.Equal(t, 1, gCalls)
	assert.True(t, got.IsEstimate)
	assert.Equal(t, 10, got.Minutes)
}

func TestResolveCachesProviderAnswers(t *testing.T) {
	var gCalls int
	c := newMapCache()
	r := &Resolver{Google: fixed(ProviderGoogle, 18, &gCalls), Cache: c}

	for i := 0; i < 3; i++ {
		got, err := r.Resolve(context.Background(), " 강남   역 ", "잠실역", domain.ModeTransit, "")
		require.NoError(t, err)
		assert.Equal(t, 18, got.Minutes)
	}

	assert.Equal(t, 1, gCalls)
	_, ok := c.entries[cacheKey{"강남 역", "잠실역", domain.ModeTransit}]
	assert.True(t, ok)
}

func TestResolveIgnoresCacheErrors(t *testing.T) {
	var gCalls int
	c := newMapCache()
	c.getErr = errors.New("disk gone")
	r := &Resolver{Google: fixed(ProviderGoogle, 18, &gCalls), Cache: c}

	got, err := r.GetRouteTime(context.Background(), "a", "b", domain.ModeWalking)
	require.NoError(t, err)
	assert.Equal(t, 18, got.Minutes)
	assert.Equal(t, 1, gCalls)
}

func TestEstimatesAreNotCached(t *testing.T) {
	c := newMapCache()
	r := &Resolver{Cache: c}

	_, err := r.Resolve(context.Background(), "a", "b", domain.ModeTransit, "")
	require.NoError(t, err)
	assert.Empty(t, c.entries)
}
