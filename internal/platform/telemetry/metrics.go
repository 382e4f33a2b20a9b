// Package telemetry exposes Prometheus metrics for the terminology core and
// the HTTP layer. All recording methods are nil-safe so domain services can
// run without metrics in tests and CLI commands.
package telemetry

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered for one server instance.
type Metrics struct {
	registry *prometheus.Registry

	searches      *prometheus.CounterVec
	searchHits    prometheus.Histogram
	translations  *prometheus.CounterVec
	syntheses     *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	catalogSize   prometheus.Gauge
	conceptMapped prometheus.Gauge
}

// NewMetrics creates collectors on a private registry.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_searches_total",
			Help:      "Catalog searches by result (hit, no_match, blank).",
		}, []string{"result"}),
		searchHits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_search_results",
			Help:      "Number of entries returned per non-blank search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		}),
		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "concept_translations_total",
			Help:      "Concept map translations by result (mapped, unmapped).",
		}, []string{"result"}),
		syntheses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dual_coding_syntheses_total",
			Help:      "Dual-coded resource syntheses by outcome.",
		}, []string{"outcome"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_entries",
			Help:      "Entries in the loaded source catalog.",
		}),
		conceptMapped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "concept_map_sources",
			Help:      "Source codes with at least one concept map entry.",
		}),
	}
	reg.MustRegister(m.searches, m.searchHits, m.translations, m.syntheses,
		m.httpDuration, m.catalogSize, m.conceptMapped)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSearch records one catalog search.
func (m *Metrics) ObserveSearch(blank bool, hits int) {
	if m == nil {
		return
	}
	switch {
	case blank:
		m.searches.WithLabelValues("blank").Inc()
		return
	case hits == 0:
		m.searches.WithLabelValues("no_match").Inc()
	default:
		m.searches.WithLabelValues("hit").Inc()
	}
	m.searchHits.Observe(float64(hits))
}

// ObserveTranslate records one concept map lookup.
func (m *Metrics) ObserveTranslate(candidates int) {
	if m == nil {
		return
	}
	if candidates == 0 {
		m.translations.WithLabelValues("unmapped").Inc()
		return
	}
	m.translations.WithLabelValues("mapped").Inc()
}

// ObserveSynthesis records a synthesis attempt. outcome is "success" or
// "invalid_selection".
func (m *Metrics) ObserveSynthesis(outcome string) {
	if m == nil {
		return
	}
	m.syntheses.WithLabelValues(outcome).Inc()
}

// SetCatalogSize records the loaded catalog and concept map sizes.
func (m *Metrics) SetCatalogSize(entries, mappedSources int) {
	if m == nil {
		return
	}
	m.catalogSize.Set(float64(entries))
	m.conceptMapped.Set(float64(mappedSources))
}

// Middleware records request latency keyed by the matched echo route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.httpDuration.
				WithLabelValues(route, c.Request().Method, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the Prometheus text exposition for this registry.
func (m *Metrics) Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return echo.WrapHandler(h)
}
