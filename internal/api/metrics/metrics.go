// Package metrics defines the custom Prometheus metrics for the midas
// platform. It is the single source of truth for metric names, labels, and
// help strings; metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "midas"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayProxiedTotal counts requests forwarded to a backend.
// Labels:
//   - backend: the internal service the request was proxied to
//   - status: HTTP status relayed back to the client
var GatewayProxiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_proxied_requests_total",
		Help:      "Total number of requests forwarded to internal backends.",
	},
	[]string{"backend", "status"},
)

// GatewayAuthRejectedTotal counts requests stopped by the verifier or the
// role gate before any backend call.
// Label:
//   - reason: "missing_bearer", "invalid_token", or "forbidden"
var GatewayAuthRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_auth_rejected_total",
		Help:      "Total number of requests rejected at the identity boundary.",
	},
	[]string{"reason"},
)

// GatewayRouteMissesTotal counts requests whose path matched no route rule.
var GatewayRouteMissesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_route_misses_total",
		Help:      "Total number of requests that matched no routing rule.",
	},
)

// GatewayUpstreamErrorsTotal counts network-level failures reaching a backend.
// Label:
//   - backend: the unreachable service
var GatewayUpstreamErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_upstream_errors_total",
		Help:      "Total number of proxy attempts that failed to reach the backend.",
	},
	[]string{"backend"},
)

// GatewayProxyDuration measures end-to-end proxy latency per backend.
var GatewayProxyDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_proxy_duration_seconds",
		Help:      "Duration of proxied requests from match to relayed response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"backend"},
)

// ── Messaging metrics ─────────────────────────────────────────────────────────

// MessagesQueuedTotal counts messages accepted into the delivery queue.
// Label:
//   - channel: "whatsapp" or "email"
var MessagesQueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_queued_total",
		Help:      "Total number of messages accepted for delivery.",
	},
	[]string{"channel"},
)

// MessagesDeliveredTotal counts messages handed to the provider.
// Labels:
//   - channel: "whatsapp" or "email"
//   - result:  "ok" or "error"
var MessagesDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_delivered_total",
		Help:      "Total number of delivery attempts, labelled by result.",
	},
	[]string{"channel", "result"},
)

// MessagesDedupTotal counts deduplication decisions on inbound messages.
// Label:
//   - result: "hit" (duplicate, rejected) or "miss" (new, queued)
var MessagesDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_dedup_total",
		Help:      "Total number of message deduplication checks, by result.",
	},
	[]string{"result"},
)

// MessagingQueueDepth tracks pending messages per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var MessagingQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "messaging_queue_depth",
		Help:      "Current number of messages pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
