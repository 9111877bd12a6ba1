package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

// MaxConcurrency bounds the number of files transformed at once.
const MaxConcurrency = 256

// DefaultConcurrency is the number of files transformed at once when the
// configuration does not say otherwise.
var DefaultConcurrency = min(runtime.NumCPU(), MaxConcurrency)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the configuration key, e.g. "concurrency".
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks cfg and returns a ValidationError listing every problem,
// or nil. An unrecognized directive policy is accepted: it rewrites every
// program, like "everything".
func Validate(cfg *Config) error {
	var errs []FieldError
	if strings.TrimSpace(cfg.SafeGetFilePath) == "" {
		errs = append(errs, FieldError{KeySafeGetFilePath, "must not be empty"})
	}
	if strings.TrimSpace(cfg.CheckCastingFilePath) == "" {
		errs = append(errs, FieldError{KeyCheckCastingFilePath, "must not be empty"})
	}
	if cfg.Concurrency < 1 || cfg.Concurrency > MaxConcurrency {
		errs = append(errs, FieldError{KeyConcurrency,
			fmt.Sprintf("must be between 1 and %d, got %d", MaxConcurrency, cfg.Concurrency)})
	}
	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
			errs = append(errs, FieldError{KeyLogLevel, fmt.Sprintf("unknown level %q", cfg.LogLevel)})
		}
	}
	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
