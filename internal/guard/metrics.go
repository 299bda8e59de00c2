package guard

import (
	"github.com/HerbHall/energyguard/pkg/energy"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guard_evaluations_total",
			Help: "Evaluations completed, by alert level.",
		},
		[]string{"alert"},
	)

	anomaliesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guard_anomalies_total",
			Help: "Evaluations that detected a sudden usage spike.",
		},
	)

	efficiencyScore = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "guard_efficiency_score",
			Help: "Efficiency score of the most recent evaluation.",
		},
	)

	confidencePercent = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "guard_confidence_percent",
			Help:    "Diagnosis confidence distribution.",
			Buckets: prometheus.LinearBuckets(30, 10, 8),
		},
	)

	sessionResetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guard_session_resets_total",
			Help: "Session resets since process start.",
		},
	)
)

func init() {
	prometheus.MustRegister(evaluationsTotal)
	prometheus.MustRegister(anomaliesTotal)
	prometheus.MustRegister(efficiencyScore)
	prometheus.MustRegister(confidencePercent)
	prometheus.MustRegister(sessionResetsTotal)
}

func recordEvaluation(eval *energy.Evaluation) {
	evaluationsTotal.WithLabelValues(string(eval.Analysis.Alert)).Inc()
	if eval.Analysis.Anomaly {
		anomaliesTotal.Inc()
	}
	efficiencyScore.Set(eval.Analysis.Score)
	confidencePercent.Observe(float64(eval.Diagnosis.Confidence))
}
