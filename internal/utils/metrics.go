package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_login_attempts_total",
		Help: "Admin login attempts by result",
	}, []string{"result"})

	EnquiriesSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enquiries_submitted_total",
		Help: "Total number of stored contact enquiries",
	})

	CatalogSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_saves_total",
		Help: "Catalog snapshot saves by result",
	}, []string{"result"})
)

// RecordLoginAttempt counts a login attempt.
func RecordLoginAttempt(success bool) {
	LoginAttemptsTotal.WithLabelValues(resultLabel(success)).Inc()
}

// RecordCatalogSave counts a catalog save.
func RecordCatalogSave(success bool) {
	CatalogSavesTotal.WithLabelValues(resultLabel(success)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
