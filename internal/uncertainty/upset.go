package uncertainty

import "math"

// Signals are the inputs to the upset model, each already in [0,1].
type Signals struct {
	Confidence   float64 // distance of the final probability from 0.5, scaled
	Spread       float64 // |p_away − p_home|
	Disagreement float64 // cross-model spread of component probabilities
	FlipRate     float64
}

// Upset model coefficients. Signs are fixed so the required monotonicity is
// structural: non-decreasing in flip rate and disagreement, non-increasing
// in confidence.
const (
	upsetIntercept    = -2.2
	upsetFlipCoef     = 3.0
	upsetDisagreeCoef = 2.0
	upsetDoubtCoef    = 1.2
	upsetSpreadCoef   = 0.6
)

// UpsetProbability estimates how likely the predicted favorite is to lose
// anyway, as a fixed logistic of the uncertainty signals.
func UpsetProbability(sig Signals) float64 {
	z := upsetIntercept +
		upsetFlipCoef*clamp01(sig.FlipRate) +
		upsetDisagreeCoef*clamp01(sig.Disagreement) +
		upsetDoubtCoef*(1-clamp01(sig.Confidence)) -
		upsetSpreadCoef*clamp01(sig.Spread)
	return 1.0 / (1.0 + math.Exp(-z))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
