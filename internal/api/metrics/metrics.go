// Package metrics defines and registers all custom Prometheus metrics for the
// expense API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at import time
// (promauto); the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spendwise"

// ── Ledger metrics ────────────────────────────────────────────────────────────

// ExpensesAddedTotal counts expenses that were persisted.
// Label:
//   - category: the expense category (e.g. "Food")
var ExpensesAddedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_added_total",
		Help:      "Total number of expenses persisted, by category.",
	},
	[]string{"category"},
)

// ExpensesRejectedTotal counts draft rows that were skipped.
// Label:
//   - reason: "invalid_row", "overspend_declined", or "ceiling_insufficient"
var ExpensesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_rejected_total",
		Help:      "Total number of expense rows rejected, by reason.",
	},
	[]string{"reason"},
)

// OverspendPromptsTotal counts overspend protocol outcomes.
// Label:
//   - result: "accepted" (ceiling raised) or one of the rejection reasons
var OverspendPromptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overspend_prompts_total",
		Help:      "Total number of overspend protocol resolutions, by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "ok", "invalid_credentials", "not_found", or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// ── Feedback metrics ──────────────────────────────────────────────────────────

// FeedbackRelayTotal counts feedback relay attempts.
// Label:
//   - result: "ok" or "error"
var FeedbackRelayTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_relay_total",
		Help:      "Total number of feedback submissions relayed, by result.",
	},
	[]string{"result"},
)

// FeedbackRelayDuration measures how long one relay round-trip takes.
var FeedbackRelayDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "feedback_relay_duration_seconds",
		Help:      "Duration of one feedback relay POST.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
