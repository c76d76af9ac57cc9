// Package config provides configuration management for the PuckCast
// prediction engine.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with engine-specific rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() (*CustomValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation("environment", validateEnvironment); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation("weights", validateWeights); err != nil {
		return nil, err
	}

	return &CustomValidator{validator: v}, nil
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv, err := NewValidator()
	if err != nil {
		return fmt.Errorf("failed to build validator: %w", err)
	}
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateWeights requires a weight table with no negative entries
func validateWeights(fl validator.FieldLevel) bool {
	weights, ok := fl.Field().Interface().(map[string]float64)
	if !ok || len(weights) == 0 {
		return false
	}
	for _, w := range weights {
		if w < 0 {
			return false
		}
	}
	return true
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	// The blend needs at least one live component or it can never do
	// better than the fallback
	hasPositive := false
	for _, w := range cfg.Ensemble.Weights {
		if w > 0 {
			hasPositive = true
			break
		}
	}
	if !hasPositive {
		return fmt.Errorf("ensemble.weights must contain at least one positive weight")
	}

	if cfg.Classifier.LowTotalThreshold >= cfg.Classifier.HighTotalThreshold {
		return fmt.Errorf("classifier.low_total_threshold must be below high_total_threshold")
	}

	if cfg.Retraining.Enabled {
		if cfg.Retraining.CalibrationCron == "" || cfg.Retraining.BiasCron == "" {
			return fmt.Errorf("retraining schedules are required when retraining is enabled")
		}
	}

	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	for _, fieldErr := range errs {
		return fmt.Errorf("config validation failed on field '%s': rule '%s'",
			fieldErr.Namespace(), fieldErr.Tag())
	}
	return fmt.Errorf("config validation failed")
}
