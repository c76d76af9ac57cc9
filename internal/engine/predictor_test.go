package engine

import (
	"context"
	"errors"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/puckcast/internal/config"
	"github.com/yourusername/puckcast/internal/models"
	"github.com/yourusername/puckcast/internal/rating"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "puckcast"
	cfg.App.Environment = "development"
	cfg.App.LogLevel = "info"
	cfg.Model.LearningRate = 0.05
	cfg.Rating.KFactor = 6.0
	cfg.Rating.HomeAdvantage = 33.5
	cfg.Ensemble.Weights = map[string]float64{
		"correlation":    0.35,
		"rating":         0.25,
		"base_heuristic": 0.20,
		"high_scoring":   0.20,
		"defensive":      0.20,
		"playoff_race":   0.20,
		"rivalry":        0.20,
	}
	cfg.Classifier.HighTotalThreshold = 6.5
	cfg.Classifier.LowTotalThreshold = 5.5
	cfg.Classifier.PressureThreshold = 0.05
	cfg.Calibration.BiasWindow = 20
	cfg.Calibration.ShrinkStrength = 0.5
	cfg.MonteCarlo.Iterations = 16
	cfg.MonteCarlo.NoiseScale = 0.15
	cfg.MonteCarlo.Seed = 42
	cfg.Cache.Enabled = true
	cfg.Cache.TTLSeconds = 300
	cfg.Cache.MaxSize = 64
	return cfg
}

func fixtureProvider() *StaticProvider {
	p := NewStaticProvider()

	strongAway := models.DefaultTeamMetrics("sharks", models.VenueAway)
	strongAway.GoalsFor = 3.6
	strongAway.GoalsAgainst = 2.5
	strongAway.RecentFormRatio = 1.4
	strongAway.RestDays = 2
	p.Put(strongAway)

	weakHome := models.DefaultTeamMetrics("kraken", models.VenueHome)
	weakHome.GoalsFor = 2.6
	weakHome.GoalsAgainst = 3.4
	weakHome.RecentFormRatio = 0.7
	weakHome.RestDays = 1
	p.Put(weakHome)

	return p
}

func gameDay() time.Time {
	return time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
}

func TestPredictProducesValidProbabilities(t *testing.T) {
	p := New(testConfig(), fixtureProvider(), testLogger())

	result, err := p.Predict(context.Background(), "sharks", "kraken", gameDay())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.PAway+result.PHome, 1e-9)
	assert.Greater(t, result.PAway, 0.0)
	assert.Less(t, result.PAway, 1.0)
	assert.GreaterOrEqual(t, result.FlipRate, 0.0)
	assert.LessOrEqual(t, result.FlipRate, 1.0)
	assert.Greater(t, result.UpsetProbability, 0.0)
	assert.Less(t, result.UpsetProbability, 1.0)
	assert.NotEmpty(t, result.CalibrationBucket)
	assert.NotEmpty(t, result.Components)
	assert.Contains(t, result.Components, "correlation")
	assert.Contains(t, result.Components, "rating")
	assert.Contains(t, result.Components, "base_heuristic")

	// The away side is stronger on every axis.
	assert.Greater(t, result.PAway, 0.5)
}

func TestPredictRequiresBothTeams(t *testing.T) {
	p := New(testConfig(), fixtureProvider(), testLogger())

	_, err := p.Predict(context.Background(), "", "kraken", gameDay())
	assert.ErrorIs(t, err, models.ErrTeamRequired)

	_, err = p.Predict(context.Background(), "sharks", "", gameDay())
	assert.ErrorIs(t, err, models.ErrTeamRequired)
}

func TestPredictConcurrentRequests(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = false
	p := New(cfg, fixtureProvider(), testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			result, err := p.Predict(context.Background(), "sharks", "kraken", gameDay().AddDate(0, 0, day))
			if err != nil {
				t.Errorf("Predict: %v", err)
				return
			}
			if sum := result.PAway + result.PHome; sum < 0.999 || sum > 1.001 {
				t.Errorf("pair sums to %v", sum)
			}
		}(i)
	}
	wg.Wait()
}

func TestPredictCachesRepeatRequests(t *testing.T) {
	p := New(testConfig(), fixtureProvider(), testLogger())

	first, err := p.Predict(context.Background(), "sharks", "kraken", gameDay())
	require.NoError(t, err)
	second, err := p.Predict(context.Background(), "sharks", "kraken", gameDay())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeat request should be served from cache")

	// A different date is a different key.
	third, err := p.Predict(context.Background(), "sharks", "kraken", gameDay().AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

// erroringProvider fails every lookup.
type erroringProvider struct{}

func (erroringProvider) Metrics(context.Context, string, models.Venue, time.Time) (models.TeamMetrics, error) {
	return models.TeamMetrics{}, errors.New("upstream down")
}

func TestPredictSurvivesProviderFailure(t *testing.T) {
	p := New(testConfig(), erroringProvider{}, testLogger())

	result, err := p.Predict(context.Background(), "sharks", "kraken", gameDay())
	require.NoError(t, err, "provider failure degrades to league defaults, never errors")
	assert.InDelta(t, 1.0, result.PAway+result.PHome, 1e-9)
	// League-average teams land near the coin flip, tilted by home ice.
	assert.InDelta(t, 0.5, result.PAway, 0.15)
}

func TestPredictWithoutProvider(t *testing.T) {
	p := New(testConfig(), nil, testLogger())

	result, err := p.Predict(context.Background(), "sharks", "kraken", gameDay())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.PAway+result.PHome, 1e-9)
}

func completedGame(winner models.Label, margin int) models.GameOutcome {
	away := models.DefaultTeamMetrics("sharks", models.VenueAway)
	away.GoalsFor = 3.5
	home := models.DefaultTeamMetrics("kraken", models.VenueHome)
	home.GoalsFor = 2.7
	return models.GameOutcome{
		AwayTeam:  "sharks",
		HomeTeam:  "kraken",
		Winner:    winner,
		Margin:    margin,
		GameDate:  gameDay(),
		FinalAway: away,
		FinalHome: home,
	}
}

func TestRecordOutcomeRejectsBadLabel(t *testing.T) {
	p := New(testConfig(), fixtureProvider(), testLogger())
	before := p.Model().Snapshot()

	outcome := completedGame("draw", 0)
	err := p.RecordOutcome(context.Background(), outcome)
	assert.ErrorIs(t, err, models.ErrInvalidOutcomeLabel)

	// Rejection happens before any state change.
	assert.Equal(t, before, p.Model().Snapshot())
	assert.Equal(t, rating.DefaultInitialRating, p.Tracker().Rating("sharks"))
	assert.Zero(t, p.CalibrationSampleCount())
}

func TestRecordOutcomeRequiresTeams(t *testing.T) {
	p := New(testConfig(), fixtureProvider(), testLogger())
	outcome := completedGame(models.LabelAway, 1)
	outcome.HomeTeam = ""
	assert.ErrorIs(t, p.RecordOutcome(context.Background(), outcome), models.ErrTeamRequired)
}

func TestRecordOutcomeUpdatesModels(t *testing.T) {
	p := New(testConfig(), fixtureProvider(), testLogger())
	biasBefore := p.Model().Bias()

	require.NoError(t, p.RecordOutcome(context.Background(), completedGame(models.LabelAway, 2)))

	assert.Greater(t, p.Tracker().Rating("sharks"), rating.DefaultInitialRating)
	assert.Less(t, p.Tracker().Rating("kraken"), rating.DefaultInitialRating)
	assert.NotEqual(t, biasBefore, p.Model().Bias(), "online update should move the intercept")
	assert.Equal(t, 1, p.CalibrationSampleCount())
}

func TestRecordOutcomeInvalidatesCache(t *testing.T) {
	p := New(testConfig(), fixtureProvider(), testLogger())

	first, err := p.Predict(context.Background(), "sharks", "kraken", gameDay())
	require.NoError(t, err)

	require.NoError(t, p.RecordOutcome(context.Background(), completedGame(models.LabelHome, 1)))

	second, err := p.Predict(context.Background(), "sharks", "kraken", gameDay())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "training must flush stale predictions")
}

func TestMaintainBiasFadesCorrections(t *testing.T) {
	p := New(testConfig(), fixtureProvider(), testLogger())

	// Safe on an empty table.
	p.MaintainBias()

	require.NoError(t, p.RecordOutcome(context.Background(), completedGame(models.LabelAway, 2)))
	before := p.BiasCorrection("sharks", models.VenueAway)
	require.NotZero(t, before)

	p.MaintainBias()
	after := p.BiasCorrection("sharks", models.VenueAway)
	assert.Less(t, math.Abs(after), math.Abs(before), "maintenance should pull corrections toward zero")
	assert.True(t, (after > 0) == (before > 0), "decay must not flip the sign")
}

func TestRetrainCalibration(t *testing.T) {
	p := New(testConfig(), fixtureProvider(), testLogger())

	assert.False(t, p.RetrainCalibration(1), "no samples yet")

	require.NoError(t, p.RecordOutcome(context.Background(), completedGame(models.LabelAway, 1)))
	require.NoError(t, p.RecordOutcome(context.Background(), completedGame(models.LabelHome, 2)))

	assert.False(t, p.RetrainCalibration(5), "below the sample floor")
	assert.True(t, p.RetrainCalibration(2))
}

func TestNewFallsBackToStockWeights(t *testing.T) {
	cfg := testConfig()
	cfg.Ensemble.Weights = map[string]float64{"correlation": 0}
	cfg.Model.InitialWeights = nil

	p := New(cfg, fixtureProvider(), testLogger())
	result, err := p.Predict(context.Background(), "sharks", "kraken", gameDay())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Components, "stock weights should keep the blend alive")
}
