package cli

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		sentinel error
		code     string
	}{
		{ErrScenarioFileRequired, errx.CodeCLI},
		{ErrLoadScenarioFailed, errx.CodeScenario},
		{ErrInvalidScenario, errx.CodeScenario},
		{ErrScenarioFailed, errx.CodeScenario},
		{ErrLoadConfigFailed, errx.CodeConfig},
	}
	for _, tt := range tests {
		t.Run(tt.sentinel.Error(), func(t *testing.T) {
			err := newWithSentinel(tt.sentinel, "test")
			if got := errx.CodeOf(err); got != tt.code {
				t.Errorf("CodeOf() = %q, want %q", got, tt.code)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(err, %v) = false", tt.sentinel)
			}
		})
	}
}

func TestWrapWithSentinel(t *testing.T) {
	cause := errors.New("disk on fire")

	t.Run("nil base falls back to CLI", func(t *testing.T) {
		err := wrapWithSentinel(nil, cause, "test")
		if got := errx.CodeOf(err); got != errx.CodeCLI {
			t.Errorf("CodeOf() = %q, want %q", got, errx.CodeCLI)
		}
		if !errors.Is(err, cause) {
			t.Error("cause not reachable")
		}
	})

	t.Run("unregistered sentinel falls back to CLI", func(t *testing.T) {
		err := newWithSentinel(errors.New("unknown"), "test")
		if got := errx.CodeOf(err); got != errx.CodeCLI {
			t.Errorf("CodeOf() = %q, want %q", got, errx.CodeCLI)
		}
	})

	t.Run("with context", func(t *testing.T) {
		err := wrapWithSentinelAndContext(ErrLoadScenarioFailed, cause, "test", map[string]any{"file": "a.yaml"})
		want := "1: *errx.Error: test | code=74000 | description=\"Scenario error\" | message=\"test\" | context={file=a.yaml}\n2: *errors.errorString: disk on fire"
		if got := errx.DebugString(err); got != want {
			t.Errorf("DebugString(err) = %q, want %q", got, want)
		}
	})
}

func TestDebugMode(t *testing.T) {
	t.Cleanup(func() { SetDebugMode(false) })
	SetDebugMode(true)
	if !IsDebugMode() {
		t.Error("IsDebugMode() = false after SetDebugMode(true)")
	}
	SetDebugMode(false)
	if IsDebugMode() {
		t.Error("IsDebugMode() = true after SetDebugMode(false)")
	}
}

func TestLogStructuredError(t *testing.T) {
	t.Cleanup(func() { SetDebugMode(false) })

	t.Run("silent without debug mode", func(t *testing.T) {
		SetDebugMode(false)
		core, logs := observer.New(zapcore.DebugLevel)
		logStructuredError(zap.New(core), ErrScenarioFailed, "msg")
		if logs.Len() != 0 {
			t.Errorf("logged %d entries, want 0", logs.Len())
		}
	})

	t.Run("errx fields and context", func(t *testing.T) {
		SetDebugMode(true)
		core, logs := observer.New(zapcore.DebugLevel)
		err := wrapWithSentinelAndContext(ErrLoadScenarioFailed, errors.New("boom"), "failed", map[string]any{"file": "a.yaml"})
		logStructuredError(zap.New(core), err, "Failed to load scenario file")

		entries := logs.All()
		if len(entries) != 1 {
			t.Fatalf("logged %d entries, want 1", len(entries))
		}
		fields := entries[0].ContextMap()
		if fields["error.code"] != errx.CodeScenario {
			t.Errorf("error.code = %v, want %q", fields["error.code"], errx.CodeScenario)
		}
		if fields["error.category"] != errx.DescScenario {
			t.Errorf("error.category = %v, want %q", fields["error.category"], errx.DescScenario)
		}
		if fields["error.context.file"] != "a.yaml" {
			t.Errorf("error.context.file = %v, want %q", fields["error.context.file"], "a.yaml")
		}
		if fields["error.cause"] != "boom" {
			t.Errorf("error.cause = %v, want %q", fields["error.cause"], "boom")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		SetDebugMode(true)
		core, logs := observer.New(zapcore.DebugLevel)
		logStructuredError(zap.New(core), errors.New("plain"), "msg")
		if logs.Len() != 1 || logs.All()[0].ContextMap()["error"] != "plain" {
			t.Errorf("plain error not logged: %+v", logs.All())
		}
	})

	t.Run("nil logger", func(t *testing.T) {
		SetDebugMode(true)
		logStructuredError(nil, ErrScenarioFailed, "msg")
	})
}
