package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "revebot_http_requests_total",
		Help: "Handled HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "revebot_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// StepSubmissionsTotal counts onboarding step submissions by step and outcome
	StepSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "revebot_setup_step_submissions_total",
		Help: "Onboarding step submissions",
	}, []string{"step", "outcome"})

	// MerchantsSubmittedTotal counts merchants submitted for review
	MerchantsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revebot_merchants_submitted_total",
		Help: "Merchants submitted for review",
	})
)

// Step submission outcomes
const (
	OutcomeSaved   = "saved"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)
