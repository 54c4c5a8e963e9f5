package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inmobiliaria",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "inmobiliaria",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	// ListingCache counts listing lookups by result: hit or miss.
	ListingCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inmobiliaria",
		Name:      "listing_cache_total",
		Help:      "Listing cache lookups by result.",
	}, []string{"result"})

	// ImportRows counts import rows by outcome: inserted, duplicate, omitted, error.
	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inmobiliaria",
		Name:      "import_rows_total",
		Help:      "Bulk import rows by outcome.",
	}, []string{"outcome"})

	PromotedPosts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inmobiliaria",
		Name:      "blog_promoted_posts_total",
		Help:      "Scheduled posts moved to published.",
	})
)
