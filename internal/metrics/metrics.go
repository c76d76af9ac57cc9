// Package metrics provides the centralized Prometheus registry for the
// prediction engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "puckcast",
		Name:      "predictions_total",
		Help:      "Total number of predictions produced",
	}, []string{"cached"})
	ComponentFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "puckcast",
		Name:      "component_failures_total",
		Help:      "Total number of ensemble components dropped from a blend",
	}, []string{"component"})
	EnsembleFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "puckcast",
		Name:      "ensemble_fallbacks_total",
		Help:      "Total number of blends that degraded to the base heuristic",
	})
	OnlineUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "puckcast",
		Name:      "online_updates_total",
		Help:      "Total number of recorded outcomes applied to the models",
	})
	InvalidOutcomesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "puckcast",
		Name:      "invalid_outcomes_total",
		Help:      "Total number of training calls rejected for a bad label",
	})
	CalibrationRetrainsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "puckcast",
		Name:      "calibration_retrains_total",
		Help:      "Total number of calibration table retrains",
	})
)

// Gauge metrics
var (
	TrackedTeams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "puckcast",
		Name:      "tracked_teams",
		Help:      "Number of teams with a live ELO rating",
	})
	CalibrationSamples = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "puckcast",
		Name:      "calibration_samples",
		Help:      "Number of samples accumulated for the next calibration fit",
	})
	CacheHits = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "puckcast",
		Name:      "prediction_cache_hits",
		Help:      "Prediction cache hits since start",
	})
	CacheMisses = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "puckcast",
		Name:      "prediction_cache_misses",
		Help:      "Prediction cache misses since start",
	})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "puckcast",
		Name:      "prediction_duration_seconds",
		Help:      "End-to-end latency of a single prediction",
		Buckets:   prometheus.DefBuckets,
	})
	FlipRateObserved = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "puckcast",
		Name:      "monte_carlo_flip_rate",
		Help:      "Distribution of Monte Carlo flip rates across predictions",
		Buckets:   []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(ComponentFailuresTotal)
		registry.MustRegister(EnsembleFallbacksTotal)
		registry.MustRegister(OnlineUpdatesTotal)
		registry.MustRegister(InvalidOutcomesTotal)
		registry.MustRegister(CalibrationRetrainsTotal)

		registry.MustRegister(TrackedTeams)
		registry.MustRegister(CalibrationSamples)
		registry.MustRegister(CacheHits)
		registry.MustRegister(CacheMisses)

		registry.MustRegister(PredictionDuration)
		registry.MustRegister(FlipRateObserved)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records one completed prediction.
func RecordPrediction(cached bool, durationSeconds, flipRate float64) {
	label := "false"
	if cached {
		label = "true"
	}
	PredictionsTotal.WithLabelValues(label).Inc()
	if !cached {
		PredictionDuration.Observe(durationSeconds)
		FlipRateObserved.Observe(flipRate)
	}
}

// RecordOutcome records one applied training outcome.
func RecordOutcome(trackedTeams int) {
	OnlineUpdatesTotal.Inc()
	TrackedTeams.Set(float64(trackedTeams))
}
