// Package metrics exposes Prometheus instrumentation for the HTTP API and
// the upstream registrar.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vit0-9/registrar_api/pkg/registration"
)

const namespace = "registrar_api"

type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	registrarCalls  *prometheus.CounterVec
	registrarTime   *prometheus.HistogramVec
}

// New builds a Metrics with its own registry, so tests and multiple app
// instances never collide on the global one.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		registrarCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrar_calls_total",
			Help:      "Calls to the upstream registrar by operation and outcome.",
		}, []string{"operation", "outcome"}),
		registrarTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "registrar_call_duration_seconds",
			Help:      "Upstream registrar latency by operation.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.registrarCalls,
		m.registrarTime,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware records count and latency per matched route. Unmatched
// requests are grouped under "unmatched" to keep label cardinality bounded.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// InstrumentRegistrar wraps next so every upstream call is counted and timed.
func (m *Metrics) InstrumentRegistrar(next registration.Registrar) registration.Registrar {
	return &instrumentedRegistrar{next: next, m: m}
}

type instrumentedRegistrar struct {
	next registration.Registrar
	m    *Metrics
}

func (r *instrumentedRegistrar) CheckAvailability(ctx context.Context, domains []string) ([]registration.Availability, error) {
	start := time.Now()
	res, err := r.next.CheckAvailability(ctx, domains)
	r.m.observe("check", start, err)
	return res, err
}

func (r *instrumentedRegistrar) Register(ctx context.Context, reg registration.Registration) (registration.Result, error) {
	start := time.Now()
	res, err := r.next.Register(ctx, reg)
	r.m.observe("register", start, err)
	return res, err
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.registrarCalls.WithLabelValues(op, outcome).Inc()
	m.registrarTime.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
