// Package scheduler runs the periodic retraining jobs the engine itself
// never triggers: calibration refits and bias-window maintenance.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/puckcast/internal/engine"
)

// Scheduler manages the cron-driven retraining loop around a predictor.
type Scheduler struct {
	cron       *cron.Cron
	predictor  *engine.Predictor
	logger     *logrus.Logger
	mu         sync.RWMutex
	isRunning  bool
	jobIDs     []cron.EntryID
	minSamples int
}

// NewScheduler creates a scheduler. Retrains skip silently until at least
// minSamples outcomes have accumulated.
func NewScheduler(predictor *engine.Predictor, minSamples int, logger *logrus.Logger) *Scheduler {
	if minSamples < 1 {
		minSamples = 1
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		predictor:  predictor,
		logger:     logger,
		jobIDs:     make([]cron.EntryID, 0),
		minSamples: minSamples,
	}
}

// ScheduleCalibrationRetrain schedules the calibration-table refit.
func (s *Scheduler) ScheduleCalibrationRetrain(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		if s.predictor.RetrainCalibration(s.minSamples) {
			s.logger.Info("Scheduled calibration retrain complete")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"have": s.predictor.CalibrationSampleCount(),
			"need": s.minSamples,
		}).Debug("Skipping calibration retrain, not enough samples")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled calibration retrain")

	return nil
}

// ScheduleBiasMaintenance schedules the bias-table decay pass.
func (s *Scheduler) ScheduleBiasMaintenance(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() {
		s.predictor.MaintainBias()
		s.logger.Debug("Scheduled bias maintenance complete")
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled bias maintenance")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	next := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (next.IsZero() || entry.Next.Before(next)) {
			next = entry.Next
		}
	}
	return next
}
