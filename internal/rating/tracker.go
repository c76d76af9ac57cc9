// Package rating maintains per-team relative-strength (ELO) ratings updated
// by margin of victory after each completed matchup.
package rating

import (
	"math"
)

// Default tuning, in line with published hockey ELO systems.
const (
	DefaultInitialRating = 1500.0
	DefaultKFactor       = 6.0
	DefaultHomeAdvantage = 33.5
)

// Tracker holds one scalar rating per team.
//
// Ratings are not commutative to replay order: rebuilding state after a
// restart must replay completed games in their original date order.
// Updates are single-writer; concurrent reads of an unchanging tracker are
// safe.
type Tracker struct {
	ratings       map[string]float64
	initial       float64
	kFactor       float64
	homeAdvantage float64
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithKFactor overrides the update step size.
func WithKFactor(k float64) Option {
	return func(t *Tracker) { t.kFactor = k }
}

// WithHomeAdvantage overrides the rating bonus granted to the home side.
func WithHomeAdvantage(adv float64) Option {
	return func(t *Tracker) { t.homeAdvantage = adv }
}

// NewTracker creates a tracker where unseen teams start at the initial
// rating.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		ratings:       make(map[string]float64),
		initial:       DefaultInitialRating,
		kFactor:       DefaultKFactor,
		homeAdvantage: DefaultHomeAdvantage,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Rating returns the current rating for a team, the initial rating when the
// team has never been updated.
func (t *Tracker) Rating(team string) float64 {
	if r, ok := t.ratings[team]; ok {
		return r
	}
	return t.initial
}

// WinProbability returns the away side's win probability given the rating
// gap, with the fixed home advantage credited to the home side.
func (t *Tracker) WinProbability(away, home string) float64 {
	gap := (t.Rating(home) + t.homeAdvantage) - t.Rating(away)
	return 1.0 / (1.0 + math.Pow(10, gap/400.0))
}

// Update moves the winner's and loser's ratings after a completed game.
// The step is k·log(margin+1)·(1−expected); a zero-goal margin (shootout or
// unrecorded) uses a multiplier of 1.0 so the game still moves ratings at
// the base k-factor.
func (t *Tracker) Update(winner, loser string, margin int) {
	expected := t.expectedScore(winner, loser)
	mult := 1.0
	if margin > 0 {
		mult = math.Log(float64(margin) + 1)
	}
	delta := t.kFactor * mult * (1.0 - expected)
	t.ratings[winner] = t.Rating(winner) + delta
	t.ratings[loser] = t.Rating(loser) - delta
}

// expectedScore is the venue-free expected result for the first team.
func (t *Tracker) expectedScore(a, b string) float64 {
	gap := t.Rating(b) - t.Rating(a)
	return 1.0 / (1.0 + math.Pow(10, gap/400.0))
}

// Ratings returns a snapshot copy of all tracked ratings.
func (t *Tracker) Ratings() map[string]float64 {
	out := make(map[string]float64, len(t.ratings))
	for k, v := range t.ratings {
		out[k] = v
	}
	return out
}

// Seed replaces tracker state with a previously snapshotted rating table.
func (t *Tracker) Seed(ratings map[string]float64) {
	t.ratings = make(map[string]float64, len(ratings))
	for k, v := range ratings {
		t.ratings[k] = v
	}
}
