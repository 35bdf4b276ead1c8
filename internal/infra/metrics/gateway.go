package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(gatewayRequestDuration)
}

var gatewayRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "gateway_request_duration_seconds",
		Help:    "Round-trip time of outbound gateway calls by endpoint and HTTP status.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)

func ObserveGatewayRequest(endpoint, status string, d time.Duration) {
	gatewayRequestDuration.WithLabelValues(endpoint, norm(status)).Observe(d.Seconds())
}
