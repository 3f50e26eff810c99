// Package metrics defines and registers the service's Prometheus metrics.
// It is the single source of truth for metric names, labels, and help
// strings; importing the package registers everything with the default
// registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo"

// TasksCreatedTotal counts tasks created through the API.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// TasksCompletedTotal counts mark-done commits.
// Label:
//   - entry: which adapter performed the operation ("api" or "function")
var TasksCompletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total number of tasks marked done, by entry point.",
	},
	[]string{"entry"},
)

// NotificationsTotal counts post-commit completion notifications.
// Label:
//   - result: "delivered" or "dropped" (queue full)
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of completion notifications, by result.",
	},
	[]string{"result"},
)

// AuthRejectedTotal counts requests rejected before reaching storage.
// Label:
//   - reason: "missing_token", "revoked", or "invalid"
var AuthRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejected_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
	[]string{"reason"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by method, route, and status.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
