package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bazi-engine/internal/domain"
)

// Collector agrupa las métricas Prometheus del servicio en un registro propio,
// así varias instancias (tests) no chocan en el registro global.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Analyses        *prometheus.CounterVec
	BrokenPatterns  prometheus.Counter
	AnalysisLatency prometheus.Histogram
}

// NewCollector crea las métricas bajo namespace y las registra.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	analyses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Charts analyzed by strength level and pattern status",
		},
		[]string{"strength", "status", "logic"},
	)

	broken := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broken_patterns_total",
			Help:      "Charts whose pattern was audited as broken",
		},
	)

	latency := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Pipeline duration per chart in seconds",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
		},
	)

	registry.MustRegister(httpRequests, httpDuration, analyses, broken, latency)

	return &Collector{
		registry:        registry,
		HTTPRequests:    httpRequests,
		HTTPDuration:    httpDuration,
		Analyses:        analyses,
		BrokenPatterns:  broken,
		AnalysisLatency: latency,
	}
}

// ObserveAnalysis registra el resultado de un análisis.
func (c *Collector) ObserveAnalysis(geju domain.GejuResult, res domain.AnalysisResult, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Analyses.WithLabelValues(string(res.StrengthLevel), string(geju.Status), string(res.LogicType)).Inc()
	if geju.Broken() {
		c.BrokenPatterns.Inc()
	}
	c.AnalysisLatency.Observe(elapsed.Seconds())
}

// Middleware mide cada request por ruta registrada en gin.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler expone el registro en formato Prometheus.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry devuelve el registro subyacente.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
