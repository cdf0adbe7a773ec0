package telemetry

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Module("telemetry",
	fx.Provide(func() prometheus.Registerer { return prometheus.DefaultRegisterer }),
	fx.Provide(func() prometheus.Gatherer { return prometheus.DefaultGatherer }),
	fx.Provide(NewMetrics),
)

// Metrics exposes Prometheus request and draw counters.
type Metrics struct {
	apiRequests *prometheus.CounterVec
	apiDuration *prometheus.HistogramVec
	drawResults *prometheus.CounterVec
}

// Config names the collectors.
type Config struct {
	Namespace string
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer, cfg Config) (*Metrics, error) {
	ns := strings.TrimSpace(cfg.Namespace)
	if ns == "" {
		ns = "whateat"
	}

	apiRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "api_requests_total",
		Help:      "Counts API requests by method, route and status.",
	}, []string{"method", "route", "status"})

	apiDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "api_duration_seconds",
		Help:      "API request latency per method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	drawResults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "draw_results_total",
		Help:      "Draw results by outcome.",
	}, []string{"outcome"})

	for _, c := range []prometheus.Collector{apiRequests, apiDuration, drawResults} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &Metrics{
		apiRequests: apiRequests,
		apiDuration: apiDuration,
		drawResults: drawResults,
	}, nil
}

// ObserveAPIRequest records an API request and latency.
func (m *Metrics) ObserveAPIRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	routeLabel := sanitizeLabel(route)
	methodLabel := sanitizeLabel(method)
	m.apiRequests.WithLabelValues(methodLabel, routeLabel, strconv.Itoa(status)).Inc()
	m.apiDuration.WithLabelValues(methodLabel, routeLabel).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDraw(outcome string) {
	if m == nil {
		return
	}
	m.drawResults.WithLabelValues(sanitizeLabel(outcome)).Inc()
}

// GinMiddleware records every request once the handler chain completes.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveAPIRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func sanitizeLabel(val string) string {
	if val == "" {
		return "unknown"
	}
	return val
}
