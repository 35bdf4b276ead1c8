package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		webhookEventsTotal,
		webhookDuplicatesTotal,
		auditSinkErrorsTotal,
	)
}

var (
	webhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Inbound webhook deliveries by event type and result (processed/duplicate/ignored/rejected).",
		},
		[]string{"event_type", "result"},
	)

	webhookDuplicatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_duplicate_deliveries_total",
			Help: "Webhook redeliveries suppressed by the dedupe cache.",
		},
	)

	auditSinkErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_sink_errors_total",
			Help: "Swallowed tracker/security-log write failures, by sink.",
		},
		[]string{"sink"},
	)
)

func IncWebhookEvent(eventType, result string) {
	webhookEventsTotal.WithLabelValues(norm(eventType), norm(result)).Inc()
}

func IncWebhookDuplicate() { webhookDuplicatesTotal.Inc() }

func IncAuditSinkError(sink string) {
	auditSinkErrorsTotal.WithLabelValues(norm(sink)).Inc()
}
