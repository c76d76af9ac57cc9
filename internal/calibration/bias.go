package calibration

import (
	"math"

	"github.com/yourusername/puckcast/internal/models"
)

// DefaultBiasWindow bounds how many recent errors feed a team's correction.
const DefaultBiasWindow = 20

// biasKey identifies one (team, venue) correction series.
type biasKey struct {
	Team  string
	Venue models.Venue
}

// BiasTable holds per-team, per-venue additive probability corrections
// derived from the running average of recent signed errors
// (actual − predicted). The series is append-only with a bounded window;
// the oldest entries drop off.
//
// The table is written by the caller's learning loop and consulted
// read-only on the prediction path.
type BiasTable struct {
	window int
	errors map[biasKey][]float64
}

// NewBiasTable creates a table with the given window; sizes below one use
// the default.
func NewBiasTable(window int) *BiasTable {
	if window < 1 {
		window = DefaultBiasWindow
	}
	return &BiasTable{window: window, errors: make(map[biasKey][]float64)}
}

// Record appends one signed error observation for a team at a venue.
func (b *BiasTable) Record(team string, venue models.Venue, signedError float64) {
	key := biasKey{Team: team, Venue: venue}
	series := append(b.errors[key], signedError)
	if len(series) > b.window {
		series = series[len(series)-b.window:]
	}
	b.errors[key] = series
}

// Correction returns the current additive correction for a team at a venue,
// zero when nothing has been recorded.
func (b *BiasTable) Correction(team string, venue models.Venue) float64 {
	series := b.errors[biasKey{Team: team, Venue: venue}]
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range series {
		sum += e
	}
	return sum / float64(len(series))
}

// Apply adds each side's correction to its probability and renormalizes the
// pair to sum to 1. A degenerate corrected total yields the neutral pair.
func (b *BiasTable) Apply(pAway, pHome float64, awayTeam, homeTeam string) (float64, float64) {
	adjAway := pAway + b.Correction(awayTeam, models.VenueAway)
	adjHome := pHome + b.Correction(homeTeam, models.VenueHome)
	if adjAway < 0 {
		adjAway = 0
	}
	if adjHome < 0 {
		adjHome = 0
	}
	return models.NormalizePair(adjAway, adjHome)
}

// negligibleBiasError is the magnitude below which a decayed series is
// dropped entirely.
const negligibleBiasError = 1e-4

// Decay scales every stored error toward zero so corrections for teams that
// stop playing fade out instead of freezing at their last value. Factors
// outside (0,1) leave the table untouched. Series whose every entry has
// decayed to a negligible magnitude are removed.
func (b *BiasTable) Decay(factor float64) {
	if factor <= 0 || factor >= 1 {
		return
	}
	for key, series := range b.errors {
		live := false
		for i := range series {
			series[i] *= factor
			if math.Abs(series[i]) >= negligibleBiasError {
				live = true
			}
		}
		if !live {
			delete(b.errors, key)
		}
	}
}

// Len reports how many (team, venue) series the table currently holds.
func (b *BiasTable) Len() int { return len(b.errors) }

// Snapshot returns a copy of the error series for caller persistence.
func (b *BiasTable) Snapshot() map[string][]float64 {
	out := make(map[string][]float64, len(b.errors))
	for key, series := range b.errors {
		cp := make([]float64, len(series))
		copy(cp, series)
		out[key.Team+"|"+string(key.Venue)] = cp
	}
	return out
}
