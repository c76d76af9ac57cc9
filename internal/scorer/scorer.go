// Package scorer contains the feature-vector scoring models that feed the
// ensemble: the online-trained correlation model, the fixed base heuristic,
// and the context-specialized variants.
package scorer

import (
	"math"

	"github.com/yourusername/puckcast/internal/models"
)

// Component names as they appear in ensemble weights and result breakdowns.
const (
	ComponentCorrelation = "correlation"
	ComponentRating      = "rating"
	ComponentBase        = "base_heuristic"
	ComponentHighScoring = "high_scoring"
	ComponentDefensive   = "defensive"
	ComponentPlayoffRace = "playoff_race"
	ComponentRivalry     = "rivalry"
)

// Scorer maps a feature vector to an away-win probability pair.
type Scorer interface {
	Name() string
	Score(features models.FeatureVector) (models.ComponentPrediction, error)
}

// Func adapts a plain function to the Scorer interface. The engine uses it
// to bind the rating tracker, which scores team identities rather than
// feature differentials, into the ensemble.
type Func struct {
	ComponentName string
	Fn            func(models.FeatureVector) (models.ComponentPrediction, error)
}

// Name implements Scorer.
func (f Func) Name() string { return f.ComponentName }

// Score implements Scorer.
func (f Func) Score(features models.FeatureVector) (models.ComponentPrediction, error) {
	return f.Fn(features)
}

// sigmoid is the numerically safe logistic transform. Overflow clamps to
// {0,1} instead of propagating Inf through the pipeline.
func sigmoid(z float64) float64 {
	if z > 20 {
		return 1.0
	}
	if z < -20 {
		return 0.0
	}
	return 1.0 / (1.0 + math.Exp(-z))
}
