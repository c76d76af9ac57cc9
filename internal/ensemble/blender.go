// Package ensemble combines the component scorers into one probability pair
// with static configurable weights and graceful degradation.
package ensemble

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/puckcast/internal/metrics"
	"github.com/yourusername/puckcast/internal/models"
	"github.com/yourusername/puckcast/internal/scorer"
)

// Weights maps component name to its non-negative blend weight. This is the
// single source of truth for the blending policy: static per-component
// weights from configuration, with specialized context models entering at
// their configured weight multiplied by classifier confidence.
type Weights map[string]float64

// DefaultWeights is the stock blend.
func DefaultWeights() Weights {
	return Weights{
		scorer.ComponentCorrelation: 0.35,
		scorer.ComponentRating:      0.25,
		scorer.ComponentBase:        0.20,
		scorer.ComponentHighScoring: 0.20,
		scorer.ComponentDefensive:   0.20,
		scorer.ComponentPlayoffRace: 0.20,
		scorer.ComponentRivalry:     0.20,
	}
}

// Valid reports whether at least one weight is positive; anything else
// forces the base-heuristic fallback.
func (w Weights) Valid() bool {
	for _, v := range w {
		if v > 0 {
			return true
		}
	}
	return false
}

// Entry is one scorer offered to the blend with its resolved weight.
type Entry struct {
	Scorer scorer.Scorer
	Weight float64
}

// Result is the blended probability pair plus the per-component breakdown.
type Result struct {
	PAway        float64
	PHome        float64
	Components   map[string]models.ComponentPrediction
	UsedFallback bool
}

// Blender performs the weighted combination. It never returns an error for
// a well-formed two-team request: failed components are dropped, and when
// everything fails it degrades to the base heuristic, then to the neutral
// pair.
type Blender struct {
	fallback scorer.Scorer
	logger   *logrus.Logger
}

// NewBlender creates a blender with the given terminal fallback scorer.
func NewBlender(fallback scorer.Scorer, logger *logrus.Logger) *Blender {
	return &Blender{fallback: fallback, logger: logger}
}

// Blend evaluates every entry against the feature vector and returns the
// weighted arithmetic mean of the surviving probability pairs, renormalized
// to sum to 1.
func (b *Blender) Blend(features models.FeatureVector, entries []Entry) Result {
	components := make(map[string]models.ComponentPrediction, len(entries))

	var sumAway, sumHome, totalWeight float64
	for _, e := range entries {
		if e.Scorer == nil || e.Weight <= 0 {
			continue
		}
		pred, err := e.Scorer.Score(features)
		if err != nil || !validPair(pred.PAway, pred.PHome) {
			metrics.ComponentFailuresTotal.WithLabelValues(e.Scorer.Name()).Inc()
			b.logger.WithFields(logrus.Fields{
				"component": e.Scorer.Name(),
				"error":     err,
			}).Warn("Dropping failed ensemble component")
			continue
		}
		pred.Weight = e.Weight
		components[pred.Component] = pred
		sumAway += pred.PAway * e.Weight
		sumHome += pred.PHome * e.Weight
		totalWeight += e.Weight
	}

	if totalWeight <= 0 {
		return b.degrade(features, components)
	}

	pAway, pHome := models.NormalizePair(sumAway/totalWeight, sumHome/totalWeight)
	return Result{PAway: pAway, PHome: pHome, Components: components}
}

// degrade falls back to the base heuristic with whatever inputs it has; if
// that also fails the neutral pair is returned so callers always receive a
// usable probability.
func (b *Blender) degrade(features models.FeatureVector, components map[string]models.ComponentPrediction) Result {
	metrics.EnsembleFallbacksTotal.Inc()
	b.logger.Warn("All ensemble components unavailable, falling back to base heuristic")

	if b.fallback != nil {
		if pred, err := b.fallback.Score(features); err == nil && validPair(pred.PAway, pred.PHome) {
			pAway, pHome := models.NormalizePair(pred.PAway, pred.PHome)
			components[pred.Component] = pred
			return Result{PAway: pAway, PHome: pHome, Components: components, UsedFallback: true}
		}
	}
	return Result{PAway: 0.5, PHome: 0.5, Components: components, UsedFallback: true}
}

func validPair(pAway, pHome float64) bool {
	if math.IsNaN(pAway) || math.IsNaN(pHome) || math.IsInf(pAway, 0) || math.IsInf(pHome, 0) {
		return false
	}
	if pAway < 0 || pAway > 1 || pHome < 0 || pHome > 1 {
		return false
	}
	return pAway+pHome > 0
}
