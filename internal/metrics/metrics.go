package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nutrigoal"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics owns a private registry so several instances can coexist in one
// process.
type Metrics struct {
	registry           *prometheus.Registry
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	goalGenerations    *prometheus.CounterVec
	goalUpdates        *prometheus.CounterVec
	consumptionRecords *prometheus.CounterVec
	statusReports      *prometheus.CounterVec
}

func New() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests processed.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		goalGenerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goal_generations_total",
			Help:      "Goal generation attempts by outcome.",
		}, []string{"outcome"}),
		goalUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goal_updates_total",
			Help:      "Goal update attempts by outcome.",
		}, []string{"outcome"}),
		consumptionRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consumption_records_total",
			Help:      "Recorded consumption entries by target kind.",
		}, []string{"kind"}),
		statusReports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_reports_total",
			Help:      "Goal status reports by outcome.",
		}, []string{"outcome"}),
	}

	metrics.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.httpRequests,
		metrics.httpDuration,
		metrics.goalGenerations,
		metrics.goalUpdates,
		metrics.consumptionRecords,
		metrics.statusReports,
	)
	return metrics
}

func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

// Handler serves the registry in the Prometheus text format.
func (metrics *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency keyed by the matched route
// pattern, never the raw path.
func (metrics *Metrics) Middleware(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			status = fiberErr.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}
	route := "unmatched"
	if matched := c.Route(); matched != nil && matched.Path != "" && status != fiber.StatusNotFound {
		route = matched.Path
	}

	metrics.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
	metrics.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(started).Seconds())
	return err
}

func (metrics *Metrics) GoalGenerated(err error) {
	metrics.goalGenerations.WithLabelValues(outcome(err)).Inc()
}

func (metrics *Metrics) GoalUpdated(err error) {
	metrics.goalUpdates.WithLabelValues(outcome(err)).Inc()
}

func (metrics *Metrics) ConsumptionRecorded(kind string) {
	metrics.consumptionRecords.WithLabelValues(kind).Inc()
}

func (metrics *Metrics) StatusReported(err error) {
	metrics.statusReports.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
