package metrics

import (
	"errors"
	"net/http"
	"strconv"

	"places-server/api"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "places_server"

// Cache lookup results.
const (
	CacheHit          = "hit"
	CacheMiss         = "miss"
	CacheInsufficient = "insufficient"
	CacheError        = "error"
	CacheBypass       = "bypass"
)

// Metrics holds the service collectors on a private registry. A nil *Metrics is a no-op.
type Metrics struct {
	registry         *prometheus.Registry
	cacheLookups     *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	droppedPlaces    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by payload kind and result.",
		}, []string{"kind", "result"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Google Places requests by endpoint and status.",
		}, []string{"endpoint", "status"}),
		droppedPlaces: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_places_total",
			Help:      "Places dropped during normalization by reason.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(
		m.cacheLookups,
		m.upstreamRequests,
		m.droppedPlaces,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) CacheLookup(kind, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(kind, result).Inc()
}

// UpstreamRequest records one upstream call. The status label is "ok", the
// upstream HTTP status code, or "error" for transport failures.
func (m *Metrics) UpstreamRequest(endpoint string, err error) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, statusLabel(err)).Inc()
}

func (m *Metrics) DroppedPlace(reason string) {
	if m == nil {
		return
	}
	m.droppedPlaces.WithLabelValues(reason).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return strconv.Itoa(apiErr.StatusCode)
	}
	return "error"
}
