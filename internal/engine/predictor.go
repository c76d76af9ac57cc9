// Package engine wires the scoring components into the prediction pipeline
// and exposes the caller-invoked training hook.
package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/puckcast/internal/calibration"
	"github.com/yourusername/puckcast/internal/classifier"
	"github.com/yourusername/puckcast/internal/config"
	"github.com/yourusername/puckcast/internal/ensemble"
	"github.com/yourusername/puckcast/internal/metrics"
	"github.com/yourusername/puckcast/internal/models"
	"github.com/yourusername/puckcast/internal/rating"
	"github.com/yourusername/puckcast/internal/scorer"
	"github.com/yourusername/puckcast/internal/uncertainty"
)

// Predictor runs the full pipeline: metric provider, component scorers,
// blend, calibration, shrinkage, and bias correction.
//
// Prediction calls are safe to run concurrently against an unchanging
// predictor. RecordOutcome mutates model state and must be serialized by
// the caller (single-writer discipline); do not interleave it with
// in-flight predictions on the same instance.
type Predictor struct {
	provider   MetricProvider
	linear     *scorer.LinearModel
	heuristic  *scorer.BaseHeuristic
	tracker    *rating.Tracker
	classifier *classifier.Classifier
	blender    *ensemble.Blender
	weights    ensemble.Weights
	table      *calibration.Table
	bias       *calibration.BiasTable
	estimator  *uncertainty.Estimator

	shrinkStrength float64
	learningRate   float64

	cache  *PredictionCache
	logger *logrus.Logger

	calSamples []calibration.Sample
}

// New builds a predictor from validated configuration.
func New(cfg *config.Config, provider MetricProvider, logger *logrus.Logger) *Predictor {
	initial := cfg.Model.InitialWeights
	if len(initial) == 0 {
		initial = scorer.DefaultCorrelationWeights()
	}

	weights := ensemble.Weights(cfg.Ensemble.Weights)
	if !weights.Valid() {
		weights = ensemble.DefaultWeights()
	}

	rivalries := make(classifier.RivalryTable, len(cfg.Classifier.Rivalries))
	for pair, intensity := range cfg.Classifier.Rivalries {
		if a, b, ok := strings.Cut(pair, "|"); ok {
			rivalries.Set(a, b, intensity)
		}
	}
	cls := classifier.NewClassifier(rivalries)
	cls.HighTotalThreshold = cfg.Classifier.HighTotalThreshold
	cls.LowTotalThreshold = cfg.Classifier.LowTotalThreshold
	if cfg.Classifier.PressureThreshold > 0 {
		cls.PressureThreshold = cfg.Classifier.PressureThreshold
	}

	heuristic := scorer.NewBaseHeuristic()

	var predictionCache *PredictionCache
	if cfg.Cache.Enabled {
		predictionCache = NewPredictionCache(cfg.CacheTTL(), cfg.Cache.MaxSize)
	}

	return &Predictor{
		provider:  provider,
		linear:    scorer.NewLinearModel(initial, cfg.Model.InitialBias),
		heuristic: heuristic,
		tracker: rating.NewTracker(
			rating.WithKFactor(cfg.Rating.KFactor),
			rating.WithHomeAdvantage(cfg.Rating.HomeAdvantage),
		),
		classifier: cls,
		blender:    ensemble.NewBlender(heuristic, logger),
		weights:    weights,
		table:      calibration.NewIdentityTable(),
		bias:       calibration.NewBiasTable(cfg.Calibration.BiasWindow),
		estimator: uncertainty.NewEstimator(uncertainty.EstimatorConfig{
			Iterations: cfg.MonteCarlo.Iterations,
			NoiseScale: cfg.MonteCarlo.NoiseScale,
			Seed:       cfg.MonteCarlo.Seed,
		}),
		shrinkStrength: cfg.Calibration.ShrinkStrength,
		learningRate:   cfg.Model.LearningRate,
		cache:          predictionCache,
		logger:         logger,
	}
}

// Predict produces a calibrated probability pair for one matchup. For a
// well-formed two-team request it never returns an error: every inference
// failure is recovered locally.
func (p *Predictor) Predict(ctx context.Context, awayTeam, homeTeam string, gameDate time.Time) (*models.PredictionResult, error) {
	if awayTeam == "" || homeTeam == "" {
		return nil, fmt.Errorf("%w: away=%q home=%q", models.ErrTeamRequired, awayTeam, homeTeam)
	}

	start := time.Now()
	key := CacheKey{AwayTeam: awayTeam, HomeTeam: homeTeam, GameDate: gameDate}
	if p.cache != nil {
		if cached := p.cache.Get(key); cached != nil {
			metrics.RecordPrediction(true, 0, cached.FlipRate)
			return cached, nil
		}
	}

	away := p.teamMetrics(ctx, awayTeam, models.VenueAway, gameDate)
	home := p.teamMetrics(ctx, homeTeam, models.VenueHome, gameDate)
	features := models.Differentials(away, home)

	contexts := p.classifier.Detect(away, home)
	entries := p.componentEntries(awayTeam, homeTeam, contexts)

	blend := p.blender.Blend(features, entries)

	restDiff := features.Value(models.FeatureRestDaysDiff)
	bucket := calibration.BucketKey(restDiff, home.Venue == models.VenueHome)
	calibrated := p.table.Calibrate(blend.PAway, bucket)

	flipRate := p.estimator.FlipRate(features, func(fv models.FeatureVector) float64 {
		return p.blender.Blend(fv, entries).PAway
	})

	shrunk := uncertainty.Shrink(calibrated, flipRate, p.shrinkStrength)
	pAway, pHome := p.bias.Apply(shrunk, 1-shrunk, awayTeam, homeTeam)

	upset := uncertainty.UpsetProbability(uncertainty.Signals{
		Confidence:   math.Abs(pAway-0.5) * 2,
		Spread:       math.Abs(pAway - pHome),
		Disagreement: componentDisagreement(blend.Components),
		FlipRate:     flipRate,
	})

	result := &models.PredictionResult{
		ID:                uuid.New(),
		AwayTeam:          awayTeam,
		HomeTeam:          homeTeam,
		GameDate:          gameDate,
		PAway:             pAway,
		PHome:             pHome,
		RawPAway:          blend.PAway,
		RawPHome:          blend.PHome,
		Components:        blend.Components,
		UpsetProbability:  upset,
		FlipRate:          flipRate,
		CalibrationBucket: bucket,
		PredictedAt:       time.Now().UTC(),
	}

	if p.cache != nil {
		p.cache.Set(key, result)
	}
	metrics.RecordPrediction(false, time.Since(start).Seconds(), flipRate)

	p.logger.WithFields(logrus.Fields{
		"away":      awayTeam,
		"home":      homeTeam,
		"p_away":    pAway,
		"flip_rate": flipRate,
		"bucket":    bucket,
		"fallback":  blend.UsedFallback,
	}).Debug("Prediction produced")

	return result, nil
}

// RecordOutcome is the explicit training hook for one completed game: it
// updates the correlation model and the rating tracker, and appends to the
// bias and calibration training sets. The engine never trains from
// passively observed data.
//
// Labels outside {away, home} are rejected before any state changes, so a
// malformed call cannot corrupt the models. Callers must de-duplicate:
// recording the same game twice overfits the online update.
func (p *Predictor) RecordOutcome(ctx context.Context, outcome models.GameOutcome) error {
	if _, err := models.ParseLabel(string(outcome.Winner)); err != nil {
		metrics.InvalidOutcomesTotal.Inc()
		return err
	}
	if outcome.AwayTeam == "" || outcome.HomeTeam == "" {
		return fmt.Errorf("%w: away=%q home=%q", models.ErrTeamRequired, outcome.AwayTeam, outcome.HomeTeam)
	}

	predicted := p.predictedAwayProb(outcome)

	features := models.Differentials(outcome.FinalAway, outcome.FinalHome)
	p.linear.OnlineUpdate(features, outcome.Winner, p.learningRate)
	p.tracker.Update(outcome.WinnerTeam(), outcome.LoserTeam(), outcome.Margin)

	actual := outcome.Winner.Target()
	signedError := actual - predicted
	p.bias.Record(outcome.AwayTeam, models.VenueAway, signedError)
	p.bias.Record(outcome.HomeTeam, models.VenueHome, -signedError)

	restDiff := features.Value(models.FeatureRestDaysDiff)
	p.calSamples = append(p.calSamples, calibration.Sample{
		Bucket:   calibration.BucketKey(restDiff, true),
		RawPAway: predicted,
		Won:      outcome.Winner == models.LabelAway,
	})
	metrics.CalibrationSamples.Set(float64(len(p.calSamples)))

	if p.cache != nil {
		p.cache.Flush()
	}
	metrics.RecordOutcome(len(p.tracker.Ratings()))

	p.logger.WithFields(logrus.Fields{
		"away":   outcome.AwayTeam,
		"home":   outcome.HomeTeam,
		"winner": outcome.Winner,
		"margin": outcome.Margin,
	}).Info("Outcome recorded")

	return nil
}

// RetrainCalibration refits the calibration table from the accumulated
// samples. Called by the caller's retraining loop, typically on a schedule.
func (p *Predictor) RetrainCalibration(minSamples int) bool {
	if len(p.calSamples) < minSamples {
		return false
	}
	p.table = calibration.Train(p.calSamples)
	metrics.CalibrationRetrainsTotal.Inc()
	p.logger.WithField("samples", len(p.calSamples)).Info("Calibration table retrained")
	return true
}

// biasDecayFactor is the per-maintenance-run scale applied to stored bias
// errors.
const biasDecayFactor = 0.97

// MaintainBias ages the bias corrector so corrections fade for teams with no
// recent outcomes. Called by the caller's retraining loop alongside
// calibration refits.
func (p *Predictor) MaintainBias() {
	p.bias.Decay(biasDecayFactor)
	p.logger.WithField("series", p.bias.Len()).Debug("Bias table decayed")
}

// BiasCorrection reports the current additive correction for a team at a
// venue, mainly for diagnostics.
func (p *Predictor) BiasCorrection(team string, venue models.Venue) float64 {
	return p.bias.Correction(team, venue)
}

// CalibrationSampleCount reports the accumulated training mass.
func (p *Predictor) CalibrationSampleCount() int { return len(p.calSamples) }

// Tracker exposes the rating tracker for history replay.
func (p *Predictor) Tracker() *rating.Tracker { return p.tracker }

// Model exposes the correlation scorer for caller persistence.
func (p *Predictor) Model() *scorer.LinearModel { return p.linear }

// teamMetrics resolves provider metrics, substituting league defaults when
// the provider fails; a missing provider is an inference-path condition,
// never an error to the caller.
func (p *Predictor) teamMetrics(ctx context.Context, team string, venue models.Venue, date time.Time) models.TeamMetrics {
	if p.provider == nil {
		return models.DefaultTeamMetrics(team, venue)
	}
	m, err := p.provider.Metrics(ctx, team, venue, date)
	if err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"team":  team,
			"venue": venue,
		}).Warn("Metric provider failed, using league defaults")
		return models.DefaultTeamMetrics(team, venue)
	}
	return m
}

// componentEntries assembles the blend: correlation scorer, rating tracker,
// base heuristic, and one specialist per detected context weighted by the
// classifier's confidence.
func (p *Predictor) componentEntries(awayTeam, homeTeam string, contexts classifier.Result) []ensemble.Entry {
	ratingScorer := scorer.Func{
		ComponentName: scorer.ComponentRating,
		Fn: func(models.FeatureVector) (models.ComponentPrediction, error) {
			pAway := p.tracker.WinProbability(awayTeam, homeTeam)
			return models.ComponentPrediction{
				Component: scorer.ComponentRating,
				PAway:     pAway,
				PHome:     1 - pAway,
			}, nil
		},
	}

	entries := []ensemble.Entry{
		{Scorer: p.linear, Weight: p.weights[scorer.ComponentCorrelation]},
		{Scorer: ratingScorer, Weight: p.weights[scorer.ComponentRating]},
		{Scorer: p.heuristic, Weight: p.weights[scorer.ComponentBase]},
	}

	for _, c := range contexts {
		specialist := scorer.SpecializedFor(c.Label)
		if specialist == nil {
			continue
		}
		entries = append(entries, ensemble.Entry{
			Scorer: specialist,
			Weight: p.weights[specialist.Name()] * c.Confidence,
		})
	}

	return entries
}

// predictedAwayProb resolves the probability this engine would have given
// the game, preferring the cached pre-game prediction over a fresh blend of
// the final metrics.
func (p *Predictor) predictedAwayProb(outcome models.GameOutcome) float64 {
	if p.cache != nil {
		key := CacheKey{AwayTeam: outcome.AwayTeam, HomeTeam: outcome.HomeTeam, GameDate: outcome.GameDate}
		if cached := p.cache.Get(key); cached != nil {
			return cached.PAway
		}
	}
	features := models.Differentials(outcome.FinalAway, outcome.FinalHome)
	contexts := p.classifier.Detect(outcome.FinalAway, outcome.FinalHome)
	return p.blender.Blend(features, p.componentEntries(outcome.AwayTeam, outcome.HomeTeam, contexts)).PAway
}

// componentDisagreement is the spread between the highest and lowest
// component away probabilities, the cross-model disagreement signal.
func componentDisagreement(components map[string]models.ComponentPrediction) float64 {
	if len(components) < 2 {
		return 0
	}
	lo, hi := 1.0, 0.0
	for _, c := range components {
		if c.PAway < lo {
			lo = c.PAway
		}
		if c.PAway > hi {
			hi = c.PAway
		}
	}
	return hi - lo
}
