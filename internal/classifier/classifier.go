// Package classifier inspects pre-game aggregate metrics and emits the game
// contexts that select specialized ensemble sub-models.
package classifier

import (
	"math"

	"github.com/yourusername/puckcast/internal/models"
)

// Context labels. Multiple labels may co-occur on the same game; confidences
// are independent and do not sum to 1.
const (
	LabelHighScoring = "high-scoring"
	LabelDefensive   = "defensive"
	LabelStandard    = "standard"
	LabelPlayoffRace = "playoff-race"
	LabelRivalry     = "rivalry"
)

// Context is one detected game context with its confidence.
type Context struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Result is the ordered list of detected contexts, created fresh per
// prediction request.
type Result []Context

// Has reports whether a label was detected.
func (r Result) Has(label string) bool {
	for _, c := range r {
		if c.Label == label {
			return true
		}
	}
	return false
}

// Confidence returns the confidence for a label, zero when absent.
func (r Result) Confidence(label string) float64 {
	for _, c := range r {
		if c.Label == label {
			return c.Confidence
		}
	}
	return 0
}

// Classifier evaluates the context rules. Rules are independent, not
// mutually exclusive.
type Classifier struct {
	HighTotalThreshold float64
	LowTotalThreshold  float64
	PressureThreshold  float64
	RivalryThreshold   float64
	Rivalries          RivalryTable
}

// NewClassifier returns a classifier with stock thresholds.
func NewClassifier(rivalries RivalryTable) *Classifier {
	return &Classifier{
		HighTotalThreshold: 6.5,
		LowTotalThreshold:  5.5,
		PressureThreshold:  0.05,
		RivalryThreshold:   0.05,
		Rivalries:          rivalries,
	}
}

// Detect classifies a matchup from both teams' pre-game metrics.
func (c *Classifier) Detect(away, home models.TeamMetrics) Result {
	var out Result

	total := models.ProjectedTotal(away, home)
	switch {
	case total > c.HighTotalThreshold:
		out = append(out, Context{Label: LabelHighScoring, Confidence: 0.7})
	case total < c.LowTotalThreshold:
		out = append(out, Context{Label: LabelDefensive, Confidence: 0.7})
	default:
		out = append(out, Context{Label: LabelStandard, Confidence: 0.5})
	}

	awayDesperate := math.Abs(away.StandingsPressure) > c.PressureThreshold
	homeDesperate := math.Abs(home.StandingsPressure) > c.PressureThreshold
	if awayDesperate || homeDesperate {
		conf := 0.6
		if awayDesperate && homeDesperate {
			conf = 0.8
		}
		out = append(out, Context{Label: LabelPlayoffRace, Confidence: conf})
	}

	if intensity := c.Rivalries.Intensity(away.Team, home.Team); intensity > c.RivalryThreshold {
		out = append(out, Context{Label: LabelRivalry, Confidence: math.Min(0.9, intensity*10)})
	}

	return out
}
