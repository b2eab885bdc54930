package directions

import (
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/platform/obs"
	"commute-learning-service/internal/ports"
	"context"
	"errors"
	"log"
	"strings"
)

const providerCache = "cache"

// RouteTimeCache persists provider answers between lookups.
type RouteTimeCache interface {
	Get(ctx context.Context, origin, destination string, mode domain.TravelMode) (ports.RouteTimeResult, bool, error)
	Put(ctx context.Context, r ports.RouteTimeResult) error
}

// Resolver picks a directions provider for each lookup and degrades to the
// local estimate on any failure. Kakao is consulted only when asked for and
// configured; Google answers otherwise when configured. Provider answers are
// cached; estimates are not.
type Resolver struct {
	Google   ports.RouteTimeProvider
	Kakao    ports.RouteTimeProvider
	Estimate *EstimateProvider
	Cache    RouteTimeCache
}

// Normalize collapses whitespace so the same place always maps to one cache key.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Resolve returns a route time for origin and destination. The only error is
// an empty origin or destination; provider failures fall back to the estimate.
func (r *Resolver) Resolve(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
	provider string,
) (ports.RouteTimeResult, error) {
	o, d := Normalize(origin), Normalize(destination)
	if o == "" || d == "" {
		return ports.RouteTimeResult{}, errors.New("resolve route time: origin and destination must be non-empty")
	}

	if provider == ProviderKakao && r.Kakao != nil {
		if res, ok := r.lookup(ctx, r.Kakao, ProviderKakao, o, d, domain.ModeDriving); ok {
			return res, nil
		}
	}

	if r.Google != nil {
		if res, ok := r.lookup(ctx, r.Google, ProviderGoogle, o, d, mode); ok {
			return res, nil
		}
	}

	obs.RouteTimeLookups.WithLabelValues(ProviderEstimate).Inc()
	return r.Estimate.Estimate(o, d, mode), nil
}

// GetRouteTime implements ports.RouteTimeProvider with the default provider order.
func (r *Resolver) GetRouteTime(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
) (ports.RouteTimeResult, error) {
	return r.Resolve(ctx, origin, destination, mode, ProviderGoogle)
}

func (r *Resolver) lookup(
	ctx context.Context,
	p ports.RouteTimeProvider,
	name string,
	origin string,
	destination string,
	mode domain.TravelMode,
) (ports.RouteTimeResult, bool) {
	if r.Cache != nil {
		res, ok, err := r.Cache.Get(ctx, origin, destination, mode)
		if err != nil {
			log.Printf("req_id=%s op=route_time.cache.get origin=%q destination=%q err=%v", obs.RequestID(ctx), origin, destination, err)
		} else if ok {
			obs.RouteTimeLookups.WithLabelValues(providerCache).Inc()
			return res, true
		}
	}

	res, err := p.GetRouteTime(ctx, origin, destination, mode)
	if err != nil {
		log.Printf("req_id=%s op=route_time.%s origin=%q destination=%q err=%v", obs.RequestID(ctx), name, origin, destination, err)
		return ports.RouteTimeResult{}, false
	}
	obs.RouteTimeLookups.WithLabelValues(name).Inc()

	if r.Cache != nil {
		entry := res
		entry.Origin, entry.Destination, entry.Mode = origin, destination, mode
		if err := r.Cache.Put(ctx, entry); err != nil {
			log.Printf("req_id=%s op=route_time.cache.put origin=%q destination=%q err=%v", obs.RequestID(ctx), origin, destination, err)
		}
	}

	return res, true
}
