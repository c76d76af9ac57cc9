// Package calibration rescales raw ensemble probabilities against observed
// outcomes: a per-bucket calibration table and a per-team bias corrector.
package calibration

import (
	"fmt"

	"github.com/yourusername/puckcast/internal/models"
)

// Probabilities leaving the calibrator stay inside these bounds so later
// stages never see a certainty.
const (
	minCalibrated = 0.01
	maxCalibrated = 0.99
)

// minBucketSamples is the training mass below which a bucket defers to the
// global curve.
const minBucketSamples = 10

// BucketKey discretizes the situational axes into the calibration bucket:
// the rest-day differential band crossed with the venue axis. The function
// is pure so lookups are reproducible.
func BucketKey(restDiff float64, homeVenue bool) string {
	var band string
	switch {
	case restDiff <= -2:
		band = "rest<=-2"
	case restDiff < 0:
		band = "rest-1"
	case restDiff < 1:
		band = "rest0"
	case restDiff < 2:
		band = "rest+1"
	default:
		band = "rest>=+2"
	}
	venue := "neutral"
	if homeVenue {
		venue = "home"
	}
	return fmt.Sprintf("%s|%s", band, venue)
}

// Sample is one historical (raw probability, outcome) observation.
type Sample struct {
	Bucket   string
	RawPAway float64
	Won      bool // away side won
}

// bucketStats accumulates signed residuals for one bucket.
type bucketStats struct {
	count    int
	residual float64 // Σ (actual − predicted)
}

// Table is the fitted calibration lookup. It is built once by Train and
// consulted read-only at prediction time; periodic retraining is the
// caller's loop, never the core's.
type Table struct {
	buckets map[string]bucketStats
	global  bucketStats
}

// Train fits a table from historical prediction-vs-outcome pairs. The
// correction per bucket is its mean signed residual shrunk toward zero by
// sample mass, so thin buckets move predictions less.
func Train(samples []Sample) *Table {
	t := &Table{buckets: make(map[string]bucketStats)}
	for _, s := range samples {
		actual := 0.0
		if s.Won {
			actual = 1.0
		}
		resid := actual - s.RawPAway

		bs := t.buckets[s.Bucket]
		bs.count++
		bs.residual += resid
		t.buckets[s.Bucket] = bs

		t.global.count++
		t.global.residual += resid
	}
	return t
}

// NewIdentityTable returns an untrained table; Calibrate is then a no-op.
func NewIdentityTable() *Table {
	return &Table{buckets: make(map[string]bucketStats)}
}

// Calibrate applies the bucket's additive correction to a raw away-win
// probability. Buckets without training mass fall back to the global curve,
// then to identity; the call never fails.
func (t *Table) Calibrate(rawPAway float64, bucket string) float64 {
	if t == nil {
		return clampCalibrated(rawPAway)
	}
	stats, ok := t.buckets[bucket]
	if !ok || stats.count < minBucketSamples {
		stats = t.global
	}
	return clampCalibrated(rawPAway + correction(stats))
}

// Correction exposes the additive adjustment a bucket currently carries,
// mainly for diagnostics.
func (t *Table) Correction(bucket string) float64 {
	if t == nil {
		return 0
	}
	stats, ok := t.buckets[bucket]
	if !ok || stats.count < minBucketSamples {
		stats = t.global
	}
	return correction(stats)
}

// correction shrinks the mean residual by sample mass: n/(n+k) with k=20.
func correction(bs bucketStats) float64 {
	if bs.count == 0 {
		return 0
	}
	mean := bs.residual / float64(bs.count)
	shrink := float64(bs.count) / float64(bs.count+20)
	return mean * shrink
}

func clampCalibrated(p float64) float64 {
	p = models.ClampProbability(p)
	if p < minCalibrated {
		return minCalibrated
	}
	if p > maxCalibrated {
		return maxCalibrated
	}
	return p
}
