// Package uncertainty estimates how fragile a prediction is: Monte Carlo
// feature perturbation, the upset model over its signals, and
// variance-aware shrinkage.
package uncertainty

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/yourusername/puckcast/internal/models"
)

// Defaults for the Monte Carlo estimator.
const (
	DefaultIterations = 40
	DefaultNoiseScale = 0.15
)

// ScoreFunc re-runs the scoring pipeline on a perturbed vector and returns
// the away-win probability.
type ScoreFunc func(models.FeatureVector) float64

// Estimator perturbs input features stochastically to measure how often the
// predicted winner flips. Trials run sequentially; they are independent, so
// the aggregate (summed mismatches) does not depend on order.
//
// FlipRate is safe for concurrent use: each call draws a child seed from the
// shared source under a lock and runs its trials on a private generator.
type Estimator struct {
	iterations int
	noiseScale float64
	mu         sync.Mutex
	rng        *rand.Rand
}

// EstimatorConfig configures a Monte Carlo estimator.
type EstimatorConfig struct {
	Iterations int
	NoiseScale float64
	Seed       int64
}

// NewEstimator creates an estimator. A zero seed draws one from the clock;
// fixed seeds make runs reproducible.
func NewEstimator(cfg EstimatorConfig) *Estimator {
	if cfg.NoiseScale <= 0 {
		cfg.NoiseScale = DefaultNoiseScale
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Estimator{
		iterations: cfg.Iterations,
		noiseScale: cfg.NoiseScale,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// FlipRate reports the fraction of perturbation trials whose predicted
// winner differs from the unperturbed winner. Zero or negative iteration
// counts return 0.0 without running a trial.
func (e *Estimator) FlipRate(features models.FeatureVector, score ScoreFunc) float64 {
	if e.iterations <= 0 || score == nil {
		return 0.0
	}

	e.mu.Lock()
	trialRng := rand.New(rand.NewSource(e.rng.Int63()))
	e.mu.Unlock()

	baseAwayWins := score(features) >= 0.5
	flips := 0
	for i := 0; i < e.iterations; i++ {
		perturbed := e.perturb(features, trialRng)
		if (score(perturbed) >= 0.5) != baseAwayWins {
			flips++
		}
	}
	return float64(flips) / float64(e.iterations)
}

// perturb draws independent Gaussian noise per feature, scaled to the
// feature's own magnitude with a floor of 1 so zero-valued features still
// wobble.
func (e *Estimator) perturb(features models.FeatureVector, rng *rand.Rand) models.FeatureVector {
	out := make(models.FeatureVector, len(features))
	for name, v := range features {
		scale := math.Max(math.Abs(v), 1.0) * e.noiseScale
		out[name] = v + rng.NormFloat64()*scale
	}
	return out
}
