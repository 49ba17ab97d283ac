// Package metrics provides Prometheus metrics for the price aggregation engine.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// QuotesTotal is a counter of quote attempts per exchange.
	QuotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_quotes_total",
			Help: "Total number of quote attempts against exchanges",
		},
		[]string{"exchange", "status"},
	)

	// QuoteDuration is a histogram of per-exchange quote latencies.
	QuoteDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exchange_quote_duration_seconds",
			Help:    "Duration of quote calls against exchanges",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"exchange"},
	)

	// AggregationDuration is a histogram of full fan-out durations.
	AggregationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "price_aggregation_duration_seconds",
			Help:    "Duration of price aggregation operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// ResolverLookupsTotal is a counter of token resolver lookups per source.
	ResolverLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_resolver_lookups_total",
			Help: "Total number of token resolution lookups per source",
		},
		[]string{"source", "status"},
	)

	// ResolverCacheHitsTotal is a counter of resolver cache hits.
	ResolverCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "token_resolver_cache_hits_total",
			Help: "Total number of token resolutions served from cache",
		},
	)

	// HTTPRequestsTotal is a counter of total HTTP API requests.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"endpoint", "status"},
	)

	// HTTPRequestDuration is a histogram of HTTP API request latencies.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"endpoint"},
	)

	// EmailsTotal is a counter of price report emails by delivery status.
	EmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_emails_total",
			Help: "Total number of price report emails sent",
		},
		[]string{"status"},
	)
)

// Init initializes Prometheus metrics registry.
func Init() {
	// Register all metrics
	prometheus.MustRegister(
		QuotesTotal,
		QuoteDuration,
		AggregationDuration,
		ResolverLookupsTotal,
		ResolverCacheHitsTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
		EmailsTotal,
	)
}

// ServeHTTP serves Prometheus metrics on the specified address.
func ServeHTTP(addr string) error {
	http.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:         addr,
		Handler:      http.DefaultServeMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

// RecordQuote records one quote attempt against an exchange.
func RecordQuote(exchange string, success bool, duration time.Duration) {
	status := "failure"
	if success {
		status = "success"
	}
	QuotesTotal.WithLabelValues(exchange, status).Inc()
	QuoteDuration.WithLabelValues(exchange).Observe(duration.Seconds())
}

// RecordAggregation records a price aggregation operation.
func RecordAggregation(method string, duration time.Duration) {
	AggregationDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordResolverLookup records one token lookup against a resolver source.
func RecordResolverLookup(source string, success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	ResolverLookupsTotal.WithLabelValues(source, status).Inc()
}

// RecordResolverCacheHit records a token resolution served from cache.
func RecordResolverCacheHit() {
	ResolverCacheHitsTotal.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordEmail records a price report email delivery attempt.
func RecordEmail(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	EmailsTotal.WithLabelValues(status).Inc()
}
