// Package metrics defines all custom Prometheus metrics for the skillswap
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillswap"

// ── Skill metrics ─────────────────────────────────────────────────────────────

// SkillsAddedTotal counts published skills.
// Labels:
//   - category: technology, cultural, sports, esports
//   - type: offer or want
var SkillsAddedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "skills_added_total",
		Help:      "Total number of skills published, by category and type.",
	},
	[]string{"category", "type"},
)

// SkillsWithdrawnTotal counts hard-deleted skills.
var SkillsWithdrawnTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "skills_withdrawn_total",
		Help:      "Total number of skills withdrawn by their owners.",
	},
)

// ── Swap metrics ──────────────────────────────────────────────────────────────

// SwapsCreatedTotal counts newly opened swap requests.
var SwapsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swaps_created_total",
		Help:      "Total number of swap requests created.",
	},
)

// SwapDecisionsTotal counts decided swap requests.
// Label:
//   - status: "accepted" or "rejected"
var SwapDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swap_decisions_total",
		Help:      "Total number of swap requests decided, by terminal status.",
	},
	[]string{"status"},
)

// SwapConflictsTotal counts decisions that lost the compare-and-set race on
// an already-terminal request.
var SwapConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swap_conflicts_total",
		Help:      "Total number of status updates rejected because the request was already decided.",
	},
)
