package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors for each error category
//   - Error wrapping functions that integrate with the errx error system
//   - Structured error logging with context
//   - Debug mode management for error output

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError will output structured error logs to terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

type errorSpec struct {
	code        string
	description string
}

// newSentinelError creates a sentinel error and registers it in errorSpecs in one step.
func newSentinelError(msg string, code, description string) error {
	err := errors.New(msg)
	errorSpecs[err] = errorSpec{code: code, description: description}
	return err
}

// errorSpecs maps sentinel errors to their error codes and descriptions.
// Must be declared before sentinel errors to ensure proper initialization order.
var errorSpecs = make(map[error]errorSpec)

// lookupSpec provides a lookup function for errx.FromSentinel.
func lookupSpec(sentinel error) (code, description string) {
	spec := specFor(sentinel)
	return spec.code, spec.description
}

// newWithSentinel creates a new error in the category of base.
func newWithSentinel(base error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, nil)
	}
	return errx.FromSentinel(base, lookupSpec, msg, nil)
}

// wrapWithSentinel wraps cause in the category of base.
func wrapWithSentinel(base, cause error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, cause)
	}
	return errx.FromSentinel(base, lookupSpec, msg, cause)
}

// wrapWithSentinelAndContext wraps an error with additional structured context,
// such as the scenario file or name.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) error {
	err := wrapWithSentinel(base, cause, msg)
	if errxErr, ok := err.(*errx.Error); ok && len(context) > 0 {
		return errxErr.WithContextMap(context)
	}
	return err
}

// Sentinel errors for CLI operations.
var (
	// CLI errors.
	ErrScenarioFileRequired   = newSentinelError("at least one scenario file is required", errx.CodeCLI, errx.DescCLI)
	ErrInvalidFlag            = newSentinelError("invalid flag value", errx.CodeCLI, errx.DescCLI)
	ErrGetHomeDirectoryFailed = newSentinelError("failed to get home directory", errx.CodeCLI, errx.DescCLI)

	// Scenario errors.
	ErrLoadScenarioFailed    = newSentinelError("failed to load scenario", errx.CodeScenario, errx.DescScenario)
	ErrInvalidScenario       = newSentinelError("invalid scenario", errx.CodeScenario, errx.DescScenario)
	ErrScenarioFailed        = newSentinelError("scenario failed", errx.CodeScenario, errx.DescScenario)
	ErrLoadBuiltinFailed     = newSentinelError("failed to load builtin scenarios", errx.CodeScenario, errx.DescScenario)
	ErrRegisterMetricsFailed = newSentinelError("failed to register metrics", errx.CodeScenario, errx.DescScenario)
	ErrGatherMetricsFailed   = newSentinelError("failed to gather metrics", errx.CodeScenario, errx.DescScenario)

	// Config errors.
	ErrLoadConfigFailed = newSentinelError("failed to load config", errx.CodeConfig, errx.DescConfig)
	ErrSaveConfigFailed = newSentinelError("failed to save config", errx.CodeConfig, errx.DescConfig)
	ErrConfigExists     = newSentinelError("config file already exists", errx.CodeConfig, errx.DescConfig)
	ErrInvalidSetting   = newSentinelError("invalid setting", errx.CodeConfig, errx.DescConfig)
)

func specFor(base error) errorSpec {
	spec, ok := errorSpecs[base]
	if ok {
		return spec
	}
	return errorSpec{code: errx.CodeCLI, description: errx.DescCLI}
}

// logStructuredError logs an error with structured fields to terminal.
// Only logs when debug mode is enabled (via --debug flag).
//
// This extracts all context from errx.Error and logs it with structured fields:
// - error.code: "74000"
// - error.category: "Scenario error"
// - error.context.scenario: "uncaught int terminates"
// - error.context.file: "scenarios/basic.yaml"
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}

	var errxErr *errx.Error
	if errors.As(err, &errxErr) {
		fields := []zap.Field{
			zap.String("error.code", errxErr.Code()),
			zap.String("error.category", errxErr.Description()),
			zap.String("error.message", errxErr.Message()),
			zap.Error(err),
		}

		if ctx := errxErr.Context(); ctx != nil {
			for key, value := range ctx {
				fields = append(fields, zap.Any("error.context."+key, value))
			}
		}

		// distinct field name avoids a duplicate "error" field
		if cause := errxErr.Cause(); cause != nil {
			fields = append(fields, zap.NamedError("error.cause", cause))
		}

		logger.Error(msg, fields...)
	} else {
		logger.Error(msg, zap.Error(err))
	}
}
