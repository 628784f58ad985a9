// Package metrics collects Prometheus metrics for account and session
// operations and exposes them for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the account operation counters.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// AuthCollector is the metrics sink used by the service and HTTP layers.
type AuthCollector interface {
	RecordSignup(outcome string)
	RecordLogin(outcome string)
	RecordPasswordReset(outcome string)
	RecordTokenRejection(kind string)
	RecordHTTPRequest(route string, statusCode int, duration time.Duration)
}

// Collector is the Prometheus implementation of [AuthCollector].
type Collector struct {
	signups         *prometheus.CounterVec
	logins          *prometheus.CounterVec
	passwordResets  *prometheus.CounterVec
	tokenRejections *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics in reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "student_portal_signups_total",
			Help: "Signup attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "student_portal_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		passwordResets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "student_portal_password_resets_total",
			Help: "Password reset attempts by outcome.",
		}, []string{"outcome"}),
		tokenRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "student_portal_token_rejections_total",
			Help: "Bearer tokens rejected by the authorization middleware, by reason.",
		}, []string{"kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "student_portal_http_requests_total",
			Help: "HTTP responses by route pattern and status code.",
		}, []string{"route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "student_portal_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		c.signups,
		c.logins,
		c.passwordResets,
		c.tokenRejections,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

func (c *Collector) RecordSignup(outcome string) {
	c.signups.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordPasswordReset(outcome string) {
	c.passwordResets.WithLabelValues(outcome).Inc()
}

// RecordTokenRejection counts a rejected bearer token. kind is one of the
// token error kinds (missing, malformed, bad_signature, expired).
func (c *Collector) RecordTokenRejection(kind string) {
	c.tokenRejections.WithLabelValues(kind).Inc()
}

// RecordHTTPRequest records status and latency of a finished request.
// route is the router pattern, never the raw path, to bound cardinality.
func (c *Collector) RecordHTTPRequest(route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler returns the HTTP handler serving the metrics in gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop is an [AuthCollector] that records nothing.
type Nop struct{}

func (Nop) RecordSignup(string)                          {}
func (Nop) RecordLogin(string)                           {}
func (Nop) RecordPasswordReset(string)                   {}
func (Nop) RecordTokenRejection(string)                  {}
func (Nop) RecordHTTPRequest(string, int, time.Duration) {}
