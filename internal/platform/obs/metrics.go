package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExternalPackFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "commute",
		Name:      "external_pack_fetches_total",
		Help:      "External pack fetches by outcome (ok, error).",
	}, []string{"outcome"})

	AggregateFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "commute",
		Name:      "aggregate_fallbacks_total",
		Help:      "Route-pack aggregations that degraded to the base catalog selection.",
	})

	SavedRouteStoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "commute",
		Name:      "saved_route_store_errors_total",
		Help:      "Saved-route storage failures by operation (read, decode, write).",
	}, []string{"op"})

	RouteTimeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "commute",
		Name:      "route_time_lookups_total",
		Help:      "Route-time lookups by the provider that answered.",
	}, []string{"provider"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "commute",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)
