package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshelf_http_requests_total",
		Help: "Total number of HTTP requests served to browsers",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookshelf_http_request_duration_seconds",
		Help:    "Duration of browser-facing HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	APICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshelf_api_calls_total",
		Help: "Calls made to the remote book API by operation and outcome",
	}, []string{"operation", "outcome"})
)
