// Package main provides the PuckCast prediction CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/puckcast/internal/config"
	"github.com/yourusername/puckcast/internal/engine"
	"github.com/yourusername/puckcast/internal/health"
	applogger "github.com/yourusername/puckcast/internal/logger"
	"github.com/yourusername/puckcast/internal/models"
	"github.com/yourusername/puckcast/internal/replay"
	"github.com/yourusername/puckcast/internal/scheduler"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

var (
	configFile  string
	fixtureFile string
	gameDate    string
	logger      *logrus.Logger
	cfg         *config.Config
	predictor   *engine.Predictor
	history     []models.GameOutcome
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&fixtureFile, "fixture", "f", "./data/fixture.json", "Path to team metrics fixture")
	predictCmd.Flags().StringVarP(&gameDate, "date", "d", "", "Game date (YYYY-MM-DD, default today)")
}

var rootCmd = &cobra.Command{
	Use:   "predict",
	Short: "Matchup win-probability engine",
	Long:  `Blend the correlation, rating, and context models into a calibrated win probability for a matchup.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		logger = applogger.NewLogger(cfg.App.LogLevel)

		provider, games, err := LoadFixture(fixtureFile)
		if err != nil {
			return err
		}
		history = games
		predictor = engine.New(cfg, provider, logger)
		return nil
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict AWAY HOME",
	Short: "Predict one matchup",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().UTC()
		if gameDate != "" {
			parsed, err := time.Parse("2006-01-02", gameDate)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			date = parsed
		}

		if _, err := replay.Run(predictor.Tracker(), history, logger); err != nil {
			return err
		}

		result, err := predictor.Predict(context.Background(), args[0], args[1], date)
		if err != nil {
			return err
		}

		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
		fmt.Printf("fair odds: away %s / home %s\n",
			models.DecimalOdds(result.PAway), models.DecimalOdds(result.PHome))
		return nil
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record the fixture's completed games as training outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		recorded := 0
		for _, game := range history {
			if err := predictor.RecordOutcome(ctx, game); err != nil {
				return fmt.Errorf("game %s@%s: %w", game.AwayTeam, game.HomeTeam, err)
			}
			recorded++
		}
		if predictor.RetrainCalibration(cfg.Retraining.MinSamples) {
			logger.Info("Calibration table trained from recorded outcomes")
		}
		logger.WithField("recorded", recorded).Info("Outcomes recorded")
		return nil
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Rebuild ratings from the fixture's game history",
	RunE: func(cmd *cobra.Command, args []string) error {
		applied, err := replay.Run(predictor.Tracker(), history, logger)
		if err != nil {
			return err
		}
		ratings := predictor.Tracker().Ratings()
		out, _ := json.MarshalIndent(ratings, "", "  ")
		fmt.Println(string(out))
		logger.WithField("games", applied).Info("Replay complete")
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the health/metrics endpoints and the retraining scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if _, err := replay.Run(predictor.Tracker(), history, logger); err != nil {
			return err
		}

		srv := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Port:        fmt.Sprintf("%d", cfg.Metrics.Port),
			MetricsPath: cfg.Metrics.Path,
			Logger:      logger,
		})
		if err := srv.Start(ctx); err != nil {
			return err
		}
		srv.SetReady(true)

		if cfg.Retraining.Enabled {
			sched := scheduler.NewScheduler(predictor, cfg.Retraining.MinSamples, logger)
			if err := sched.ScheduleCalibrationRetrain(cfg.Retraining.CalibrationCron); err != nil {
				return err
			}
			if err := sched.ScheduleBiasMaintenance(cfg.Retraining.BiasCron); err != nil {
				return err
			}
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()
		}

		<-ctx.Done()
		return nil
	},
}

func main() {
	rootCmd.AddCommand(predictCmd, recordCmd, replayCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
