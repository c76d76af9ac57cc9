package scheduler

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/puckcast/internal/config"
	"github.com/yourusername/puckcast/internal/engine"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testPredictor() *engine.Predictor {
	cfg := &config.Config{}
	cfg.Model.LearningRate = 0.01
	cfg.Rating.KFactor = 6.0
	cfg.Rating.HomeAdvantage = 33.5
	cfg.Classifier.HighTotalThreshold = 6.5
	cfg.Classifier.LowTotalThreshold = 5.5
	cfg.Calibration.BiasWindow = 20
	cfg.Calibration.ShrinkStrength = 0.5
	cfg.MonteCarlo.Iterations = 4
	cfg.MonteCarlo.Seed = 1
	return engine.New(cfg, nil, testLogger())
}

func TestScheduleAndStartStop(t *testing.T) {
	s := NewScheduler(testPredictor(), 10, testLogger())

	require.NoError(t, s.ScheduleCalibrationRetrain("0 6 * * *"))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.False(t, s.NextRun().IsZero())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
}

func TestScheduleBiasMaintenance(t *testing.T) {
	s := NewScheduler(testPredictor(), 10, testLogger())

	require.NoError(t, s.ScheduleBiasMaintenance("30 6 * * *"))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Error(t, s.ScheduleBiasMaintenance("@daily"), "no scheduling while running")
}

func TestScheduleBiasMaintenanceRejectsBadExpression(t *testing.T) {
	s := NewScheduler(testPredictor(), 10, testLogger())
	assert.Error(t, s.ScheduleBiasMaintenance("not a cron line"))
}

func TestStartWithoutJobs(t *testing.T) {
	s := NewScheduler(testPredictor(), 10, testLogger())
	assert.Error(t, s.Start())
}

func TestStartTwice(t *testing.T) {
	s := NewScheduler(testPredictor(), 10, testLogger())
	require.NoError(t, s.ScheduleCalibrationRetrain("@hourly"))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.Start())
}

func TestScheduleWhileRunning(t *testing.T) {
	s := NewScheduler(testPredictor(), 10, testLogger())
	require.NoError(t, s.ScheduleCalibrationRetrain("@hourly"))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.ScheduleCalibrationRetrain("@daily"))
}

func TestScheduleRejectsBadExpression(t *testing.T) {
	s := NewScheduler(testPredictor(), 10, testLogger())
	assert.Error(t, s.ScheduleCalibrationRetrain("not a cron line"))
}

func TestStopWhenNotRunning(t *testing.T) {
	s := NewScheduler(testPredictor(), 10, testLogger())
	assert.NoError(t, s.Stop())
}

func TestNextRunWhenStopped(t *testing.T) {
	s := NewScheduler(testPredictor(), 10, testLogger())
	require.NoError(t, s.ScheduleCalibrationRetrain("@hourly"))
	assert.True(t, s.NextRun().IsZero())
}
