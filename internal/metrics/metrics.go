package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activehub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "activehub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activehub_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"role", "outcome"},
	)

	PasswordResetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activehub_password_resets_total",
			Help: "Total number of password reset completions",
		},
		[]string{"role"},
	)

	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activehub_webhook_events_total",
			Help: "Total number of webhook events recorded",
		},
		[]string{"event_type", "status"},
	)

	AttendanceMarksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activehub_attendance_marks_total",
			Help: "Total number of attendance marks",
		},
	)

	ProductTogglesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activehub_product_toggles_total",
			Help: "Total number of product active-state toggles",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activehub_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "activehub_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	ListSnapshotLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activehub_list_snapshot_loads_total",
			Help: "List snapshot loads by endpoint and source (cache or db)",
		},
		[]string{"endpoint", "source"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordLogin(role, outcome string) {
	LoginsTotal.WithLabelValues(role, outcome).Inc()
}

func RecordPasswordReset(role string) {
	PasswordResetsTotal.WithLabelValues(role).Inc()
}

func RecordWebhookEvent(eventType, status string) {
	WebhookEventsTotal.WithLabelValues(eventType, status).Inc()
}

func RecordAttendanceMark() {
	AttendanceMarksTotal.Inc()
}

func RecordProductToggle() {
	ProductTogglesTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordSnapshotLoad(endpoint, source string) {
	ListSnapshotLoads.WithLabelValues(endpoint, source).Inc()
}
