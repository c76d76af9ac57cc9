package scorer

import (
	"github.com/yourusername/puckcast/internal/models"
)

// BaseHeuristic is the fixed-weight scorer over the core differentials. It
// is the ensemble's terminal fallback and by contract never fails.
type BaseHeuristic struct {
	weights map[string]float64
	scale   float64
}

// NewBaseHeuristic builds the heuristic with its stock weights.
func NewBaseHeuristic() *BaseHeuristic {
	return &BaseHeuristic{
		weights: map[string]float64{
			models.FeatureGoalsScoredDiff:   0.35,
			models.FeatureGoalsAgainstDiff:  0.25,
			models.FeatureExpectedGoalsDiff: 0.20,
			models.FeaturePowerPlayDiff:     0.10,
			models.FeatureRecentFormDiff:    0.10,
		},
		scale: 1.0,
	}
}

// Name implements Scorer.
func (h *BaseHeuristic) Name() string { return ComponentBase }

// Score implements Scorer. An empty vector scores the neutral pair.
func (h *BaseHeuristic) Score(features models.FeatureVector) (models.ComponentPrediction, error) {
	s := 0.0
	for name, w := range h.weights {
		s += w * features.Scaled(name)
	}
	pAway := sigmoid(s * h.scale)
	return models.ComponentPrediction{
		Component: h.Name(),
		PAway:     pAway,
		PHome:     1 - pAway,
	}, nil
}
