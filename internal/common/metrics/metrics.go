package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssessmentsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_completed_total",
			Help: "Total number of completed eligibility assessments",
		},
		[]string{"program", "verdict"},
	)

	AssessmentScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assessment_score",
			Help:    "Distribution of total assessment scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"program"},
	)

	AssessmentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assessment_duration_seconds",
			Help: "Duration of assessment pipeline runs in seconds",
		},
		[]string{"program"},
	)

	CaseTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "case_transitions_total",
			Help: "Total number of accepted case stage transitions",
		},
		[]string{"from", "to"},
	)

	CaseTransitionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "case_transitions_rejected_total",
			Help: "Total number of rejected case stage transitions",
		},
		[]string{"reason"},
	)

	CaseStoreConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "case_store_conflicts_total",
			Help: "Total number of optimistic concurrency conflicts on case writes",
		},
	)
)
