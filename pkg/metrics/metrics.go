package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_attempts_total",
			Help: "Model generation attempts by document kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	GenerationExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_exhausted_total",
			Help: "Requests that used every generation attempt without an accepted document",
		},
		[]string{"kind"},
	)

	TripInsightOverall = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trip_insight_overall_score",
			Help:    "Overall insight score of generated itineraries",
			Buckets: []float64{40, 50, 60, 65, 70, 80, 90, 100},
		},
	)
)
