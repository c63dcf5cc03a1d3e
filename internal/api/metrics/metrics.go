// Package metrics defines and registers all custom Prometheus metrics for the
// city management backend. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "city"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SimulationsSubmittedTotal counts submitted simulation runs.
// Label:
//   - type: the simulation type (e.g. "traffic")
var SimulationsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_submitted_total",
		Help:      "Total number of simulations submitted, by type.",
	},
	[]string{"type"},
)

// SimulationsFinishedTotal counts simulations that reached a terminal state.
// Label:
//   - status: "completed" or "failed"
var SimulationsFinishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_finished_total",
		Help:      "Total number of simulations that reached a terminal state.",
	},
	[]string{"status"},
)

// SimulationQueueDepth tracks the jobs waiting in each scheduler worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SimulationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "simulation_queue_depth",
		Help:      "Current number of completion jobs pending in each scheduler worker channel.",
	},
	[]string{"worker_id"},
)

// SimulationRunDuration measures how long a run takes from dequeue to its
// terminal flip.
var SimulationRunDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_run_duration_seconds",
		Help:      "Duration of a simulation run from dequeue to terminal state.",
		Buckets:   prometheus.DefBuckets,
	},
)
