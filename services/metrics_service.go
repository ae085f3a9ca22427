package services

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_request_total",
			Help: "Total HTTP requests received by the keeper",
		},
		[]string{"route"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keeper_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	errorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_request_errors_total",
			Help: "Total HTTP requests answered with status >= 400",
		},
		[]string{"route"},
	)

	checkCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "keeper_update_checks_total",
			Help: "Total update check sweeps",
		},
	)

	updatesAvailable = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "keeper_updates_available",
			Help: "Packages with an update available after the last check",
		},
	)

	installCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_package_installs_total",
			Help: "Total package install/upgrade operations",
		},
		[]string{"type"},
	)

	downloadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "keeper_download_bytes_total",
			Help: "Total bytes downloaded from the store",
		},
	)
)

// Local mirrors for the healthz endpoint; the prometheus client offers no
// cheap read-back of counter values.
var (
	totalRequests int64
	totalErrors   int64
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(errorCount)
	prometheus.MustRegister(checkCount)
	prometheus.MustRegister(updatesAvailable)
	prometheus.MustRegister(installCount)
	prometheus.MustRegister(downloadBytes)
}

// IncrementRequestCount records one HTTP request for a route
func IncrementRequestCount(route string) {
	requestCount.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalRequests, 1)
}

// RecordRequestDuration records the handling time of one request
func RecordRequestDuration(route string, seconds float64) {
	requestDuration.WithLabelValues(route).Observe(seconds)
}

// IncrementErrorCount records one failed HTTP request for a route
func IncrementErrorCount(route string) {
	errorCount.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalErrors, 1)
}

// GetTotalRequestCount returns the request count since start
func GetTotalRequestCount() int64 {
	return atomic.LoadInt64(&totalRequests)
}

// GetTotalErrorCount returns the error count since start
func GetTotalErrorCount() int64 {
	return atomic.LoadInt64(&totalErrors)
}

// RecordCheckSweep records one update check sweep and the updates it found
func RecordCheckSweep(updates int) {
	checkCount.Inc()
	updatesAvailable.Set(float64(updates))
}

// RecordInstall records one install or upgrade of a package type
func RecordInstall(packageType string) {
	installCount.WithLabelValues(packageType).Inc()
}

// RecordDownload records bytes downloaded from the store
func RecordDownload(bytes int64) {
	if bytes > 0 {
		downloadBytes.Add(float64(bytes))
	}
}
