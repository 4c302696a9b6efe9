package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	QuizSubmissions *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		QuizSubmissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_submissions_total",
				Help: "Total number of saved quiz results",
			},
			[]string{"quiz_type", "passed"},
		),
	}

	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.QuizSubmissions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one served HTTP request. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// RecordQuizSubmission counts a saved quiz result. Safe on a nil receiver.
func (m *Metrics) RecordQuizSubmission(quizType string, passed bool) {
	if m == nil {
		return
	}
	m.QuizSubmissions.WithLabelValues(quizType, strconv.FormatBool(passed)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
