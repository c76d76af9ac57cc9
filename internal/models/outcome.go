package models

import (
	"fmt"
	"time"
)

// Label identifies which side of a matchup won.
type Label string

const (
	LabelAway Label = "away"
	LabelHome Label = "home"
)

// ParseLabel validates a raw outcome label. Labels outside {away, home} are
// the one fatal input the training hook rejects.
func ParseLabel(raw string) (Label, error) {
	switch Label(raw) {
	case LabelAway:
		return LabelAway, nil
	case LabelHome:
		return LabelHome, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcomeLabel, raw)
	}
}

// Target returns the regression target for the away-win probability.
func (l Label) Target() float64 {
	if l == LabelAway {
		return 1.0
	}
	return 0.0
}

// GameOutcome represents a completed matchup used for training and replay.
type GameOutcome struct {
	AwayTeam    string      `json:"away_team" validate:"required"`
	HomeTeam    string      `json:"home_team" validate:"required"`
	Winner      Label       `json:"winner" validate:"required,oneof=away home"`
	Margin      int         `json:"margin" validate:"gte=0"`
	GameDate    time.Time   `json:"game_date" validate:"required"`
	FinalAway   TeamMetrics `json:"final_away"`
	FinalHome   TeamMetrics `json:"final_home"`
}

// WinnerTeam returns the name of the winning side.
func (g GameOutcome) WinnerTeam() string {
	if g.Winner == LabelAway {
		return g.AwayTeam
	}
	return g.HomeTeam
}

// LoserTeam returns the name of the losing side.
func (g GameOutcome) LoserTeam() string {
	if g.Winner == LabelAway {
		return g.HomeTeam
	}
	return g.AwayTeam
}
