package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "runtime.frame_interval_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateRuntime()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateStorage()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateDemo()...)

	return errors
}

func (c *Config) validateRuntime() []ValidationError {
	var errors []ValidationError

	if c.Runtime.FrameIntervalMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "runtime.frame_interval_ms",
			Value:   c.Runtime.FrameIntervalMs,
			Message: "must be non-negative",
		})
	}

	// One second per frame is already useless for an interactive UI
	const maxFrameIntervalMs = 1000
	if c.Runtime.FrameIntervalMs > maxFrameIntervalMs {
		errors = append(errors, ValidationError{
			Field:   "runtime.frame_interval_ms",
			Value:   c.Runtime.FrameIntervalMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxFrameIntervalMs),
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.ThemeFile != "" {
		if info, err := os.Stat(c.TUI.ThemeFile); err != nil {
			errors = append(errors, ValidationError{
				Field:   "tui.theme_file",
				Value:   c.TUI.ThemeFile,
				Message: "file does not exist",
			})
		} else if info.IsDir() {
			errors = append(errors, ValidationError{
				Field:   "tui.theme_file",
				Value:   c.TUI.ThemeFile,
				Message: "must be a file, not a directory",
			})
		}
	}

	return errors
}

func (c *Config) validateStorage() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidBackends(), c.Storage.Backend) {
		errors = append(errors, ValidationError{
			Field:   "storage.backend",
			Value:   c.Storage.Backend,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidBackends(), ", ")),
		})
	}

	if c.Storage.Backend == "memory" && c.Storage.Path != "" {
		errors = append(errors, ValidationError{
			Field:   "storage.path",
			Value:   c.Storage.Path,
			Message: "not used by the memory backend",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.Dir != "" {
		if info, err := os.Stat(c.Logging.Dir); err == nil && !info.IsDir() {
			errors = append(errors, ValidationError{
				Field:   "logging.dir",
				Value:   c.Logging.Dir,
				Message: "must be a directory",
			})
		}
	}

	return errors
}

func (c *Config) validateDemo() []ValidationError {
	var errors []ValidationError

	if c.Demo.ClockIntervalMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "demo.clock_interval_ms",
			Value:   c.Demo.ClockIntervalMs,
			Message: "must be positive",
		})
	}

	if c.Demo.StoriesFile != "" && !strings.HasSuffix(c.Demo.StoriesFile, ".json") {
		errors = append(errors, ValidationError{
			Field:   "demo.stories_file",
			Value:   c.Demo.StoriesFile,
			Message: "must be a .json file",
		})
	}

	return errors
}
