package models

import "time"

// Venue identifies which side of the matchup a team occupies.
type Venue string

const (
	VenueAway Venue = "away"
	VenueHome Venue = "home"
)

// TeamMetrics holds the rolling per-venue averages a metric provider returns
// for one team ahead of a game. All rates are per-game unless noted.
type TeamMetrics struct {
	Team              string    `json:"team" validate:"required"`
	Venue             Venue     `json:"venue" validate:"required,oneof=away home"`
	AsOf              time.Time `json:"as_of"`
	GamesSampled      int       `json:"games_sampled"`
	GoalsFor          float64   `json:"goals_for"`
	GoalsAgainst      float64   `json:"goals_against"`
	Shots             float64   `json:"shots"`
	ExpectedGoals     float64   `json:"expected_goals"`
	CorsiForPct       float64   `json:"corsi_for_pct"`
	PowerPlayPct      float64   `json:"power_play_pct"`   // 0-100
	PenaltyKillPct    float64   `json:"penalty_kill_pct"` // 0-100
	GoalieSavePct     float64   `json:"goalie_save_pct"`  // 0-1
	RestDays          float64   `json:"rest_days"`
	ScheduleStrength  float64   `json:"schedule_strength"`
	RecentFormRatio   float64   `json:"recent_form_ratio"`
	StandingsPressure float64   `json:"standings_pressure"`
}

// DefaultTeamMetrics returns league-average values used when a provider has
// no sample for a team.
func DefaultTeamMetrics(team string, venue Venue) TeamMetrics {
	return TeamMetrics{
		Team:             team,
		Venue:            venue,
		GoalsFor:         3.0,
		GoalsAgainst:     3.0,
		Shots:            30.0,
		ExpectedGoals:    2.8,
		CorsiForPct:      50.0,
		PowerPlayPct:     20.0,
		PenaltyKillPct:   80.0,
		GoalieSavePct:    0.900,
		RestDays:         1.0,
		ScheduleStrength: 0.5,
		RecentFormRatio:  1.0,
	}
}

// Differentials builds the matchup feature vector, oriented so a positive
// value always favors the away side. Goals against is the one
// lower-is-better stat and is computed home minus away.
func Differentials(away, home TeamMetrics) FeatureVector {
	return FeatureVector{
		FeatureGoalsScoredDiff:   away.GoalsFor - home.GoalsFor,
		FeatureGoalsAgainstDiff:  home.GoalsAgainst - away.GoalsAgainst,
		FeatureShotsDiff:         away.Shots - home.Shots,
		FeatureExpectedGoalsDiff: away.ExpectedGoals - home.ExpectedGoals,
		FeatureCorsiDiff:         away.CorsiForPct - home.CorsiForPct,
		FeaturePowerPlayDiff:     away.PowerPlayPct - home.PowerPlayPct,
		FeaturePenaltyKillDiff:   away.PenaltyKillPct - home.PenaltyKillPct,
		FeatureGoalieDiff:        (away.GoalieSavePct - home.GoalieSavePct) * 100,
		FeatureRestDaysDiff:      away.RestDays - home.RestDays,
		FeatureScheduleDiff:      away.ScheduleStrength - home.ScheduleStrength,
		FeatureRecentFormDiff:    away.RecentFormRatio - home.RecentFormRatio,
		FeaturePressureDiff:      away.StandingsPressure - home.StandingsPressure,
	}
}

// ProjectedTotal estimates the combined score of the matchup, used by the
// context classifier to separate high-scoring from defensive games.
func ProjectedTotal(away, home TeamMetrics) float64 {
	awayExp := (away.GoalsFor + home.GoalsAgainst) / 2
	homeExp := (home.GoalsFor + away.GoalsAgainst) / 2
	return awayExp + homeExp
}
