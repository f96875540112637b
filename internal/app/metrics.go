package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// evaluationsTotal counts evaluation cycles by trigger
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milestone_evaluations_total",
		Help: "Total achievement evaluation cycles by trigger",
	}, []string{"trigger"})

	// evaluationDuration tracks evaluation cycle latency
	evaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "milestone_evaluation_duration_seconds",
		Help:    "Achievement evaluation cycle duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	// evaluationPasses tracks how many passes a cycle needed
	evaluationPasses = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "milestone_evaluation_passes",
		Help:    "Number of candidate passes per evaluation cycle",
		Buckets: []float64{1, 2, 3, 5, 8, 13},
	})

	// unlocksTotal counts unlocked achievements by rarity
	unlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milestone_unlocks_total",
		Help: "Total achievements unlocked by rarity",
	}, []string{"rarity"})

	// evaluationWarningsTotal counts candidates skipped on facts errors or failed progress writes
	evaluationWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "milestone_evaluation_warnings_total",
		Help: "Total candidates skipped due to facts errors or progress write failures",
	})

	// unlockWriteRetriesTotal counts retried unlock writes
	unlockWriteRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "milestone_unlock_write_retries_total",
		Help: "Total unlock write attempts that were retried",
	})

	// gridOperationsTotal counts grid lifecycle operations
	gridOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milestone_grid_operations_total",
		Help: "Total grid operations by kind",
	}, []string{"operation"})
)
