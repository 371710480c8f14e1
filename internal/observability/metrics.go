package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "beginvegan", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "beginvegan", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	PushSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "beginvegan", Name: "push_sends_total", Help: "Push notification attempts."},
		[]string{"result"}, // sent|failed|skipped
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "beginvegan", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	JobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "beginvegan", Name: "job_runs_total", Help: "Scheduled job runs."},
		[]string{"job", "result"}, // ok|failed|skipped
	)
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "beginvegan", Name: "rate_limited_total", Help: "Requests rejected by rate limiting."},
		[]string{"limiter"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, PushSends, ExternalLatency, JobRuns, RateLimited)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, dur time.Duration) {
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObservePush(result string) {
	PushSends.WithLabelValues(result).Inc()
}

func ObserveJob(job, result string) {
	JobRuns.WithLabelValues(job, result).Inc()
}

func ObserveRateLimited(limiter string) {
	RateLimited.WithLabelValues(limiter).Inc()
}
