package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route"},
	)

	PaymentVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Payment signature verification outcomes",
		},
		[]string{"result"},
	)

	ResumeUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_uploads_total",
			Help: "Resume upload outcomes",
		},
		[]string{"result"},
	)

	JobsCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_cache_requests_total",
			Help: "Jobs search cache hits and misses",
		},
		[]string{"outcome"},
	)
)
