// Package metrics holds the Prometheus collectors shared across the application.
// Collectors are registered with the default registry, which the API server
// exposes on its metrics path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leadfinder"

// Result label values.
const (
	ResultOK         = "ok"
	ResultError      = "error"
	ResultStatus     = "bad_status"
	ResultEmpty      = "empty"
	ResultInvalid    = "invalid"
	ResultDisposable = "disposable"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics. Page fetches and full
// runs are slow, hence the long tail.
var DefaultBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30, 60, 120, 300} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// PageFetches counts website page fetches by result.
	PageFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_fetches_total",
		Help:      "Website page fetches by result.",
	}, []string{"result"})

	// PageFetchDuration observes website page fetch latency in seconds.
	PageFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "page_fetch_duration_seconds",
		Help:      "Website page fetch latency.",
		Buckets:   DefaultBuckets,
	})

	// MXChecks counts email domain checks by result.
	MXChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mx_checks_total",
		Help:      "Email domain MX checks by result.",
	}, []string{"result"})

	// PlacesSearches counts places API calls by result.
	PlacesSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "places_searches_total",
		Help:      "Places API searches by result.",
	}, []string{"result"})
)
