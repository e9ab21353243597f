package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registrations counts successfully created identities.
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Successfully created identities.",
	})

	// LoginAttempts counts login attempts by outcome (success, failure).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	// OTPIssued counts one-time codes written to a slot, by purpose.
	OTPIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_otp_issued_total",
		Help: "One-time codes issued by purpose.",
	}, []string{"purpose"})

	// OTPRateLimited counts issue attempts rejected by rate limiting.
	OTPRateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_otp_rate_limited_total",
		Help: "OTP issue attempts rejected by rate limiting.",
	}, []string{"purpose"})

	// OTPDeliveryFailures counts dispatch failures after the code was stored.
	OTPDeliveryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_otp_delivery_failures_total",
		Help: "One-time code dispatch failures by purpose.",
	}, []string{"purpose"})

	// ThrottledRequests counts requests rejected by the per-IP throttle.
	ThrottledRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_throttled_requests_total",
		Help: "Requests rejected by the per-IP throttle.",
	})

	// MarketingSends counts marketing notification deliveries by outcome.
	MarketingSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_marketing_sends_total",
		Help: "Marketing notification deliveries by outcome.",
	}, []string{"outcome"})
)
