package models

// FeatureVector maps a named statistical differential to its value. The
// orientation invariant is that a positive value always favors the away
// side: most differentials are away minus home, while lower-is-better stats
// (goals against) are inverted to home minus away so every weight in the
// scorers stays positive.
type FeatureVector map[string]float64

// Feature names shared between the metric provider and the scorers.
const (
	FeatureGoalsScoredDiff   = "gs_diff"
	FeatureGoalsAgainstDiff  = "ga_diff"
	FeatureShotsDiff         = "shots_diff"
	FeatureExpectedGoalsDiff = "xg_diff"
	FeatureCorsiDiff         = "corsi_diff"
	FeaturePowerPlayDiff     = "power_play_diff"
	FeaturePenaltyKillDiff   = "penalty_kill_diff"
	FeatureGoalieDiff        = "goalie_diff"
	FeatureRestDaysDiff      = "rest_days_diff"
	FeatureScheduleDiff      = "schedule_diff"
	FeatureRecentFormDiff    = "recent_form_diff"
	FeaturePressureDiff      = "pressure_diff"
)

// percentageFeatures are recorded on a 0-100 scale and are divided by 10
// before scoring so their magnitudes stay comparable with per-game rates.
var percentageFeatures = map[string]bool{
	FeaturePowerPlayDiff:   true,
	FeaturePenaltyKillDiff: true,
}

// Value resolves a feature by name. Absent keys resolve to 0.0; this is the
// missing-feature policy relied on throughout the scoring pipeline, not an
// incidental map default.
func (fv FeatureVector) Value(name string) float64 {
	return fv[name]
}

// Scaled resolves a feature and applies the fixed percentage scaling.
func (fv FeatureVector) Scaled(name string) float64 {
	v := fv[name]
	if percentageFeatures[name] {
		return v / 10.0
	}
	return v
}

// Clone returns an independent copy of the vector.
func (fv FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(fv))
	for k, v := range fv {
		out[k] = v
	}
	return out
}
