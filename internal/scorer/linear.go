package scorer

import (
	"github.com/yourusername/puckcast/internal/models"
)

// LinearModel is the correlation scorer: a logistic regression over named
// feature differentials, trained one completed game at a time.
//
// Mutations through OnlineUpdate are single-writer; concurrent Score calls
// against an unchanging snapshot are safe, but callers must serialize
// updates per instance.
type LinearModel struct {
	weights map[string]float64
	bias    float64
}

// LinearModelState is the caller-persisted snapshot of a LinearModel.
type LinearModelState struct {
	Weights map[string]float64 `json:"weights"`
	Bias    float64            `json:"bias"`
}

// NewLinearModel creates a correlation scorer with the given initial
// weights. The map is copied; absent features score with weight 0.
func NewLinearModel(weights map[string]float64, bias float64) *LinearModel {
	m := &LinearModel{weights: make(map[string]float64, len(weights)), bias: bias}
	for k, v := range weights {
		m.weights[k] = v
	}
	return m
}

// DefaultCorrelationWeights are the seed weights derived from historical
// correlation of each differential with away wins.
func DefaultCorrelationWeights() map[string]float64 {
	return map[string]float64{
		models.FeatureGoalsScoredDiff:   0.46,
		models.FeatureGoalsAgainstDiff:  0.31,
		models.FeatureShotsDiff:         0.04,
		models.FeatureExpectedGoalsDiff: 0.38,
		models.FeatureCorsiDiff:         0.05,
		models.FeaturePowerPlayDiff:     0.32,
		models.FeaturePenaltyKillDiff:   0.24,
		models.FeatureGoalieDiff:        0.21,
		models.FeatureRestDaysDiff:      0.12,
		models.FeatureScheduleDiff:      0.09,
		models.FeatureRecentFormDiff:    0.28,
	}
}

// Name implements Scorer.
func (m *LinearModel) Name() string { return ComponentCorrelation }

// Score computes sigmoid(bias + Σ w[k]·scale(k, f[k])). Features absent from
// the vector contribute zero; weights absent from the model are ignored.
func (m *LinearModel) Score(features models.FeatureVector) (models.ComponentPrediction, error) {
	pAway := sigmoid(m.rawScore(features))
	return models.ComponentPrediction{
		Component: m.Name(),
		PAway:     pAway,
		PHome:     1 - pAway,
	}, nil
}

func (m *LinearModel) rawScore(features models.FeatureVector) float64 {
	s := m.bias
	for name, w := range m.weights {
		s += w * features.Scaled(name)
	}
	return s
}

// OnlineUpdate applies one logistic-regression gradient step from a
// completed outcome: w[k] -= lr·(p−y)·x[k], bias likewise with x=1.
// Call at most once per outcome; repeated calls on the same game overfit.
func (m *LinearModel) OnlineUpdate(features models.FeatureVector, actual models.Label, learningRate float64) {
	p := sigmoid(m.rawScore(features))
	grad := p - actual.Target()
	for name := range m.weights {
		m.weights[name] -= learningRate * grad * features.Scaled(name)
	}
	m.bias -= learningRate * grad
}

// Weight returns the current weight for a feature, zero when untracked.
func (m *LinearModel) Weight(name string) float64 { return m.weights[name] }

// Bias returns the current intercept.
func (m *LinearModel) Bias() float64 { return m.bias }

// Snapshot returns a deep copy of the model state for caller persistence.
func (m *LinearModel) Snapshot() LinearModelState {
	out := LinearModelState{Weights: make(map[string]float64, len(m.weights)), Bias: m.bias}
	for k, v := range m.weights {
		out.Weights[k] = v
	}
	return out
}

// Restore replaces the model state from a caller-provided snapshot.
func (m *LinearModel) Restore(state LinearModelState) {
	m.weights = make(map[string]float64, len(state.Weights))
	for k, v := range state.Weights {
		m.weights[k] = v
	}
	m.bias = state.Bias
}
