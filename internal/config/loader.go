// Package config provides configuration management for the PuckCast
// prediction engine.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment
// variables. Environment variable placeholders in the YAML file (${VAR})
// are expanded before parsing.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with defaults for optional fields;
// a missing file falls through to defaults plus environment variables.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PUCKCAST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "puckcast")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("model.learning_rate", 0.01)

	v.SetDefault("rating.k_factor", 6.0)
	v.SetDefault("rating.home_advantage", 33.5)

	v.SetDefault("ensemble.weights", map[string]float64{
		"correlation":    0.35,
		"rating":         0.25,
		"base_heuristic": 0.20,
		"high_scoring":   0.20,
		"defensive":      0.20,
		"playoff_race":   0.20,
		"rivalry":        0.20,
	})

	v.SetDefault("classifier.high_total_threshold", 6.5)
	v.SetDefault("classifier.low_total_threshold", 5.5)
	v.SetDefault("classifier.pressure_threshold", 0.05)

	v.SetDefault("calibration.bias_window", 20)
	v.SetDefault("calibration.shrink_strength", 0.5)

	v.SetDefault("monte_carlo.iterations", 40)
	v.SetDefault("monte_carlo.noise_scale", 0.15)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl_seconds", 900)
	v.SetDefault("cache.max_size", 2048)

	v.SetDefault("retraining.enabled", false)
	v.SetDefault("retraining.calibration_cron", "0 6 * * *")
	v.SetDefault("retraining.bias_cron", "30 6 * * *")
	v.SetDefault("retraining.min_samples", 50)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
