// Package config provides configuration management for the PuckCast
// prediction engine.
package config

import (
	"time"
)

// Config represents the complete engine configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Model       ModelConfig       `mapstructure:"model" validate:"required"`
	Rating      RatingConfig      `mapstructure:"rating" validate:"required"`
	Ensemble    EnsembleConfig    `mapstructure:"ensemble" validate:"required"`
	Classifier  ClassifierConfig  `mapstructure:"classifier" validate:"required"`
	Calibration CalibrationConfig `mapstructure:"calibration" validate:"required"`
	MonteCarlo  MonteCarloConfig  `mapstructure:"monte_carlo" validate:"required"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Retraining  RetrainingConfig  `mapstructure:"retraining"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ModelConfig configures the online correlation scorer
type ModelConfig struct {
	LearningRate   float64            `mapstructure:"learning_rate" validate:"required,gt=0,lte=1"`
	InitialBias    float64            `mapstructure:"initial_bias"`
	InitialWeights map[string]float64 `mapstructure:"initial_weights"`
}

// RatingConfig configures the relative-strength tracker
type RatingConfig struct {
	KFactor       float64 `mapstructure:"k_factor" validate:"required,gt=0"`
	HomeAdvantage float64 `mapstructure:"home_advantage" validate:"gte=0"`
}

// EnsembleConfig configures the blend weights per component
type EnsembleConfig struct {
	Weights map[string]float64 `mapstructure:"weights" validate:"required,weights"`
}

// ClassifierConfig configures the context classifier thresholds
type ClassifierConfig struct {
	HighTotalThreshold float64            `mapstructure:"high_total_threshold" validate:"required,gt=0"`
	LowTotalThreshold  float64            `mapstructure:"low_total_threshold" validate:"required,gt=0"`
	PressureThreshold  float64            `mapstructure:"pressure_threshold" validate:"gte=0"`
	Rivalries          map[string]float64 `mapstructure:"rivalries"`
}

// CalibrationConfig configures the calibrator and bias corrector
type CalibrationConfig struct {
	BiasWindow     int     `mapstructure:"bias_window" validate:"required,gt=0"`
	ShrinkStrength float64 `mapstructure:"shrink_strength" validate:"gte=0,lte=2"`
}

// MonteCarloConfig configures the uncertainty estimator
type MonteCarloConfig struct {
	Iterations int     `mapstructure:"iterations" validate:"gte=0"`
	NoiseScale float64 `mapstructure:"noise_scale" validate:"gte=0"`
	Seed       int64   `mapstructure:"seed"`
}

// CacheConfig configures the prediction cache
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds" validate:"omitempty,gt=0"`
	MaxSize    int  `mapstructure:"max_size" validate:"omitempty,gt=0"`
}

// RetrainingConfig configures the periodic calibration retraining loop
type RetrainingConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	CalibrationCron string `mapstructure:"calibration_cron"`
	BiasCron        string `mapstructure:"bias_cron"`
	MinSamples      int    `mapstructure:"min_samples" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the engine is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the engine is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CacheTTL returns the prediction cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTLSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
