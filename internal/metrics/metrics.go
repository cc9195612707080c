package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

// SearchRequests counts search pipeline runs by terminal outcome
// (ok, fallback, no_results, invalid, error).
var SearchRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "platemate_search_requests_total",
		Help: "Search pipeline runs by outcome.",
	},
	[]string{"outcome"},
)

// GeminiRequests counts upstream model calls by endpoint (generate, embed)
// and outcome (ok, error).
var GeminiRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "platemate_gemini_requests_total",
		Help: "Upstream Gemini API calls by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

func init() {
	registry.MustRegister(SearchRequests, GeminiRequests)
}

// Handler serves the scrape endpoint backed by this process's registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
