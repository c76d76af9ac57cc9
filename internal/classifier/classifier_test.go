package classifier

import (
	"math"
	"testing"

	"github.com/yourusername/puckcast/internal/models"
)

func metricsWithGoals(team string, venue models.Venue, goalsFor float64) models.TeamMetrics {
	m := models.DefaultTeamMetrics(team, venue)
	m.GoalsFor = goalsFor
	return m
}

func TestDetectPaceContexts(t *testing.T) {
	c := NewClassifier(NewRivalryTable(nil))

	tests := []struct {
		name       string
		awayGoals  float64
		homeGoals  float64
		wantLabel  string
		wantConf   float64
	}{
		{"high scoring", 3.8, 3.6, LabelHighScoring, 0.7},
		{"defensive", 2.2, 2.0, LabelDefensive, 0.7},
		{"standard", 3.0, 3.0, LabelStandard, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			away := metricsWithGoals("a", models.VenueAway, tt.awayGoals)
			home := metricsWithGoals("h", models.VenueHome, tt.homeGoals)

			res := c.Detect(away, home)
			if !res.Has(tt.wantLabel) {
				t.Fatalf("expected label %q in %v", tt.wantLabel, res)
			}
			if got := res.Confidence(tt.wantLabel); got != tt.wantConf {
				t.Errorf("confidence = %v, want %v", got, tt.wantConf)
			}
		})
	}
}

func TestDetectPaceContextsAreExclusive(t *testing.T) {
	c := NewClassifier(NewRivalryTable(nil))
	res := c.Detect(
		metricsWithGoals("a", models.VenueAway, 3.8),
		metricsWithGoals("h", models.VenueHome, 3.6),
	)
	if res.Has(LabelDefensive) || res.Has(LabelStandard) {
		t.Errorf("pace labels must be mutually exclusive, got %v", res)
	}
}

func TestDetectPlayoffRace(t *testing.T) {
	c := NewClassifier(NewRivalryTable(nil))

	away := models.DefaultTeamMetrics("a", models.VenueAway)
	home := models.DefaultTeamMetrics("h", models.VenueHome)

	if got := c.Detect(away, home); got.Has(LabelPlayoffRace) {
		t.Fatal("neutral standings should not flag a playoff race")
	}

	away.StandingsPressure = 0.12
	if got := c.Detect(away, home).Confidence(LabelPlayoffRace); got != 0.6 {
		t.Errorf("one desperate side: confidence = %v, want 0.6", got)
	}

	home.StandingsPressure = -0.08
	if got := c.Detect(away, home).Confidence(LabelPlayoffRace); got != 0.8 {
		t.Errorf("both sides desperate: confidence = %v, want 0.8", got)
	}
}

func TestDetectRivalry(t *testing.T) {
	rivalries := NewRivalryTable(nil)
	rivalries.Set("bruins", "canadiens", 0.08)
	c := NewClassifier(rivalries)

	away := models.DefaultTeamMetrics("canadiens", models.VenueAway)
	home := models.DefaultTeamMetrics("bruins", models.VenueHome)

	res := c.Detect(away, home)
	if !res.Has(LabelRivalry) {
		t.Fatal("listed pair should flag the rivalry context")
	}
	if got := res.Confidence(LabelRivalry); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("confidence = %v, want intensity*10 = 0.8", got)
	}

	// Confidence caps at 0.9 no matter the intensity.
	rivalries.Set("rangers", "islanders", 0.5)
	capped := c.Detect(
		models.DefaultTeamMetrics("rangers", models.VenueAway),
		models.DefaultTeamMetrics("islanders", models.VenueHome),
	)
	if got := capped.Confidence(LabelRivalry); got != 0.9 {
		t.Errorf("confidence = %v, want cap 0.9", got)
	}
}

func TestRivalryTableSymmetry(t *testing.T) {
	table := NewRivalryTable(nil)
	table.Set("Bruins", "Canadiens", 0.08)

	if got := table.Intensity("canadiens", "BRUINS"); got != 0.08 {
		t.Errorf("lookup should ignore order and case, got %v", got)
	}
	if got := table.Intensity("bruins", "senators"); got != 0 {
		t.Errorf("unlisted pair should be 0, got %v", got)
	}
}
