package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "planner", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "planner", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "planner", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "planner", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "planner", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels/errors."},
		[]string{"cache", "event"}, // cache: local|redis; event: hit|miss|set|del|error
	)
	PlaceSearches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "planner", Name: "place_searches_total", Help: "Place searches by result source."},
		[]string{"kind", "source"},
	)
	RankRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "planner", Name: "rank_total", Help: "Ranking runs by path."},
		[]string{"path"}, // personalized|fallback
	)
	PlanRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "planner", Name: "plan_runs_total", Help: "Planning runs by scoring outcome."},
		[]string{"outcome"},
	)
)

// Serve starts a standalone metrics listener for reg when addr is set.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return // disabled
	}
	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           MetricsMux(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		PlaceSearches, RankRuns, PlanRuns)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// MetricsMux is the standalone listener's router: /metrics only.
func MetricsMux(reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))
	return mux
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

// ObserveExternalErr records an outbound call that produced no HTTP status.
// The status label carries LabelErr(err) instead.
func ObserveExternalErr(service, endpoint string, err error, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, LabelErr(err)).Inc()
	if dur > 0 {
		ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
	}
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObservePlaceSearch(kind, source string) {
	PlaceSearches.WithLabelValues(kind, source).Inc()
}

func ObserveRank(path string) {
	RankRuns.WithLabelValues(path).Inc()
}

func ObservePlan(outcome string) {
	PlanRuns.WithLabelValues(outcome).Inc()
}

// LabelErr maps an error onto a small fixed label set.
func LabelErr(err error) string {
	var ne net.Error
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &ne) && ne.Timeout():
		return "timeout"
	default:
		return "transport"
	}
}
