// Package metrics holds the domain Prometheus collectors. Transport level
// counters live in core/telegram/middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rivojbot"

var (
	LeadsCaptured = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_captured_total",
		Help:      "Leads persisted, by role.",
	}, []string{"role"})

	LeadStoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lead_store_failures_total",
		Help:      "Lead store failures, by operation.",
	}, []string{"op"})

	LeadDuplicates = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lead_duplicates_total",
		Help:      "Repeated contact shares absorbed without a new lead.",
	})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Lead notifications, by destination and status.",
	}, []string{"destination", "status"})

	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Conversation sessions held in memory.",
	})

	BroadcastMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_messages_total",
		Help:      "Broadcast deliveries, by status.",
	}, []string{"status"})
)
