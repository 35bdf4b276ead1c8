package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		paymentsTotal,
		signatureFailuresTotal,
		refundsTotal,
	)
}

var (
	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Observed payment outcomes by normalized status and source (webhook/callback/reconciler).",
		},
		[]string{"status", "source"},
	)

	signatureFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_signature_failures_total",
			Help: "Gateway responses rejected for a signature mismatch, by delivery path.",
		},
		[]string{"path"},
	)

	refundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_refunds_total",
			Help: "Refund requests by gateway-reported status.",
		},
		[]string{"status"},
	)
)

func IncPayment(status, source string) {
	paymentsTotal.WithLabelValues(norm(status), norm(source)).Inc()
}

func IncSignatureFailure(path string) {
	signatureFailuresTotal.WithLabelValues(norm(path)).Inc()
}

func IncRefund(status string) {
	refundsTotal.WithLabelValues(norm(status)).Inc()
}
