package scorer

import (
	"github.com/yourusername/puckcast/internal/models"
)

// specializedModel is a context-specific reweighting of the base heuristic.
// The set is closed: one variant per classifier label, dispatched by the
// ensemble according to classifier confidence.
type specializedModel struct {
	name    string
	weights map[string]float64
	damping float64
}

// Name implements Scorer.
func (s *specializedModel) Name() string { return s.name }

// Score implements Scorer.
func (s *specializedModel) Score(features models.FeatureVector) (models.ComponentPrediction, error) {
	z := 0.0
	for name, w := range s.weights {
		z += w * features.Scaled(name)
	}
	if s.damping > 0 {
		z /= s.damping
	}
	pAway := sigmoid(z)
	return models.ComponentPrediction{
		Component: s.name,
		PAway:     pAway,
		PHome:     1 - pAway,
	}, nil
}

// NewHighScoring favors offensive production; goaltending matters less when
// both teams trade chances.
func NewHighScoring() Scorer {
	return &specializedModel{
		name: ComponentHighScoring,
		weights: map[string]float64{
			models.FeatureGoalsScoredDiff:   0.45,
			models.FeatureExpectedGoalsDiff: 0.30,
			models.FeaturePowerPlayDiff:     0.20,
			models.FeatureShotsDiff:         0.05,
		},
	}
}

// NewDefensive favors goal prevention and special-teams discipline.
func NewDefensive() Scorer {
	return &specializedModel{
		name: ComponentDefensive,
		weights: map[string]float64{
			models.FeatureGoalsAgainstDiff: 0.40,
			models.FeatureGoalieDiff:       0.30,
			models.FeaturePenaltyKillDiff:  0.20,
			models.FeatureCorsiDiff:        0.10,
		},
	}
}

// NewPlayoffRace favors form and standings pressure; desperate teams play
// above their season averages.
func NewPlayoffRace() Scorer {
	return &specializedModel{
		name: ComponentPlayoffRace,
		weights: map[string]float64{
			models.FeaturePressureDiff:    0.35,
			models.FeatureRecentFormDiff:  0.30,
			models.FeatureGoalsScoredDiff: 0.20,
			models.FeatureScheduleDiff:    0.15,
		},
	}
}

// NewRivalry dampens every edge; rivalry games run closer than season stats
// suggest.
func NewRivalry() Scorer {
	return &specializedModel{
		name: ComponentRivalry,
		weights: map[string]float64{
			models.FeatureGoalsScoredDiff:  0.30,
			models.FeatureGoalsAgainstDiff: 0.25,
			models.FeatureRecentFormDiff:   0.25,
			models.FeatureGoalieDiff:       0.20,
		},
		damping: 2.0,
	}
}

// SpecializedFor maps a classifier label to its model, nil when the label
// has no specialist (the "standard" context uses the base heuristic).
func SpecializedFor(label string) Scorer {
	switch label {
	case "high-scoring":
		return NewHighScoring()
	case "defensive":
		return NewDefensive()
	case "playoff-race":
		return NewPlayoffRace()
	case "rivalry":
		return NewRivalry()
	default:
		return nil
	}
}
