package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	otpSent      *prometheus.CounterVec
	ratings      *prometheus.CounterVec
	casRetries   prometheus.Counter
}

// New registers all collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		otpSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "otp_sent_total",
			Help: "OTP mails by purpose and delivery result.",
		}, []string{"purpose", "result"}),
		ratings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "product_ratings_total",
			Help: "Rating submissions by result.",
		}, []string{"result"}),
		casRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "product_rating_cas_retries_total",
			Help: "Rating writes retried after a concurrent update.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.otpSent,
		m.ratings,
		m.casRetries,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request. The recording methods are no-ops
// on a nil *Metrics.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// OTPSent records the outcome of an OTP mail delivery.
func (m *Metrics) OTPSent(purpose string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.otpSent.WithLabelValues(purpose, result).Inc()
}

// RatingRecorded records a finished rating submission and how many write
// attempts it took.
func (m *Metrics) RatingRecorded(result string, attempts int) {
	if m == nil {
		return
	}
	m.ratings.WithLabelValues(result).Inc()
	if attempts > 1 {
		m.casRetries.Add(float64(attempts - 1))
	}
}
