// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RPCRequests counts finished RPCs by procedure and Connect code ("ok" on success).
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "creaturemap",
		Name:      "rpc_requests_total",
		Help:      "RPCs handled, by procedure and result code.",
	}, []string{"procedure", "code"})

	// RPCDuration observes RPC latency. Streams are measured until they end.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "creaturemap",
		Name:      "rpc_duration_seconds",
		Help:      "RPC latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	// DraftWrites counts gateway writes issued by draft sessions.
	DraftWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "creaturemap",
		Name:      "draft_writes_total",
		Help:      "Observation writes from draft sessions, by operation and result.",
	}, []string{"op", "result"})

	// DraftSessions is the number of open draft sessions.
	DraftSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "creaturemap",
		Name:      "draft_sessions",
		Help:      "Open draft sessions.",
	})

	// LiveStreams is the number of open server streams by kind.
	LiveStreams = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "creaturemap",
		Name:      "live_streams",
		Help:      "Open live read streams.",
	}, []string{"stream"})

	// LocationFixes counts reported fixes by whether the rate limit accepted them.
	LocationFixes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "creaturemap",
		Name:      "location_fixes_total",
		Help:      "Device location reports, by accepted/dropped.",
	}, []string{"result"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
