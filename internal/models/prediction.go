package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ComponentPrediction is the probability pair one ensemble component emits.
type ComponentPrediction struct {
	Component string  `json:"component"`
	PAway     float64 `json:"p_away"`
	PHome     float64 `json:"p_home"`
	Weight    float64 `json:"weight,omitempty"`
}

// PredictionResult is the final calibrated output for one matchup. It is
// immutable once returned; downstream consumers must not mutate it.
type PredictionResult struct {
	ID                uuid.UUID                      `json:"id"`
	AwayTeam          string                         `json:"away_team"`
	HomeTeam          string                         `json:"home_team"`
	GameDate          time.Time                      `json:"game_date"`
	PAway             float64                        `json:"p_away" validate:"gte=0,lte=1"`
	PHome             float64                        `json:"p_home" validate:"gte=0,lte=1"`
	RawPAway          float64                        `json:"raw_p_away"`
	RawPHome          float64                        `json:"raw_p_home"`
	Components        map[string]ComponentPrediction `json:"components,omitempty"`
	UpsetProbability  float64                        `json:"upset_probability"`
	FlipRate          float64                        `json:"monte_carlo_flip_rate"`
	CalibrationBucket string                         `json:"calibration_bucket"`
	PredictedAt       time.Time                      `json:"predicted_at"`
}

// Favorite returns the side the model favors.
func (p *PredictionResult) Favorite() Label {
	if p.PAway >= p.PHome {
		return LabelAway
	}
	return LabelHome
}

// Confidence is the distance of the away probability from a coin flip,
// scaled to [0,1].
func (p *PredictionResult) Confidence() float64 {
	return math.Abs(p.PAway-0.5) * 2
}

// MeetsThreshold checks if the confidence meets the given threshold.
func (p *PredictionResult) MeetsThreshold(threshold float64) bool {
	return p.Confidence() >= threshold
}

// NormalizePair rescales a probability pair so it sums to 1. A degenerate
// total at or below zero yields the neutral pair.
func NormalizePair(pAway, pHome float64) (float64, float64) {
	if math.IsNaN(pAway) || math.IsNaN(pHome) {
		return 0.5, 0.5
	}
	total := pAway + pHome
	if total <= 0 {
		return 0.5, 0.5
	}
	return pAway / total, pHome / total
}

// ClampProbability bounds p to [0,1], mapping NaN to 0.5.
func ClampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return 0.5
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
