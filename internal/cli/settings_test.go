package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhahnFr/mh-tryCatch/internal/config"
)

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().Bool(flagDebug, false, "")
	cmd.Flags().Bool(flagQuiet, false, "")
	cmd.Flags().Uint64(flagMaxPayload, 0, "")
	cmd.Flags().Bool(flagMetrics, false, "")
	return cmd
}

func TestFlagOverrides(t *testing.T) {
	t.Run("unset flags stay nil", func(t *testing.T) {
		cmd := newFlagCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}
		o, err := FlagOverrides(cmd)
		if err != nil {
			t.Fatalf("FlagOverrides() error = %v", err)
		}
		if o.MaxPayloadBytes != nil || o.Debug != nil || o.Quiet != nil || o.Metrics != nil {
			t.Errorf("FlagOverrides() = %+v, want all nil", o)
		}
	})

	t.Run("changed flags are set", func(t *testing.T) {
		cmd := newFlagCmd()
		if err := cmd.ParseFlags([]string{"--max-payload", "16", "--metrics", "--quiet=false"}); err != nil {
			t.Fatal(err)
		}
		o, err := FlagOverrides(cmd)
		if err != nil {
			t.Fatalf("FlagOverrides() error = %v", err)
		}
		if o.MaxPayloadBytes == nil || *o.MaxPayloadBytes != 16 {
			t.Errorf("MaxPayloadBytes = %v, want 16", o.MaxPayloadBytes)
		}
		if o.Metrics == nil || !*o.Metrics {
			t.Errorf("Metrics = %v, want true", o.Metrics)
		}
		if o.Quiet == nil || *o.Quiet {
			t.Errorf("Quiet = %v, want false", o.Quiet)
		}
		if o.Debug != nil {
			t.Errorf("Debug = %v, want nil", *o.Debug)
		}
	})

	t.Run("missing flags are ignored", func(t *testing.T) {
		o, err := FlagOverrides(&cobra.Command{Use: "bare"})
		if err != nil {
			t.Fatalf("FlagOverrides() error = %v", err)
		}
		if o.MaxPayloadBytes != nil || o.Metrics != nil {
			t.Errorf("FlagOverrides() = %+v, want all nil", o)
		}
	})

	t.Run("flags win over the environment", func(t *testing.T) {
		t.Setenv(config.EnvMaxPayloadBytes, "64")
		cmd := newFlagCmd()
		if err := cmd.ParseFlags([]string{"--max-payload", "8"}); err != nil {
			t.Fatal(err)
		}
		o, err := FlagOverrides(cmd)
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := ResolveConfig(filepath.Join(t.TempDir(), "config.yaml"), o)
		if err != nil {
			t.Fatalf("ResolveConfig() error = %v", err)
		}
		if cfg.MaxPayloadBytes != 8 {
			t.Errorf("MaxPayloadBytes = %d, want 8", cfg.MaxPayloadBytes)
		}
	})
}

func newTestConfigManager(t *testing.T) (*ConfigManager, string, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	return NewConfigManager(func() string { return path }, &Printer{Out: &out}, zap.NewNop()), path, &out
}

func TestConfigManager_Init(t *testing.T) {
	mgr, path, _ := newTestConfigManager(t)
	if err := mgr.Init(false); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FailureExitCode != config.DefaultFailureExitCode {
		t.Errorf("FailureExitCode = %d, want %d", cfg.FailureExitCode, config.DefaultFailureExitCode)
	}

	if err := mgr.Init(false); !errors.Is(err, ErrConfigExists) {
		t.Fatalf("second Init() error = %v, want ErrConfigExists", err)
	}
	if err := mgr.Init(true); err != nil {
		t.Fatalf("Init(force) error = %v", err)
	}
}

func TestConfigManager_Set(t *testing.T) {
	mgr, path, out := newTestConfigManager(t)
	if err := mgr.Set("maxPayloadBytes", "32"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := mgr.Set("metrics", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxPayloadBytes != 32 || !cfg.Metrics {
		t.Errorf("Load() = %+v, want maxPayloadBytes 32 and metrics", cfg)
	}
	if !bytes.Contains(out.Bytes(), []byte("maxPayloadBytes")) {
		t.Errorf("output missing settings table:\n%s", out.String())
	}

	for _, tt := range []struct{ key, value string }{
		{"colour", "red"},
		{"failureExitCode", "0"},
		{"debug", "maybe"},
	} {
		if err := mgr.Set(tt.key, tt.value); !errors.Is(err, ErrInvalidSetting) {
			t.Errorf("Set(%q, %q) error = %v, want ErrInvalidSetting", tt.key, tt.value, err)
		}
	}
}

func TestConfigManager_SetRejectsBrokenFile(t *testing.T) {
	mgr, path, _ := newTestConfigManager(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("bogus: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Set("debug", "true"); !errors.Is(err, ErrLoadConfigFailed) {
		t.Fatalf("Set() error = %v, want ErrLoadConfigFailed", err)
	}
}

func TestConfigManager_DefaultPath(t *testing.T) {
	orig := defaultConfigPath
	t.Cleanup(func() { defaultConfigPath = orig })

	want := filepath.Join(t.TempDir(), "config.yaml")
	defaultConfigPath = func() (string, error) { return want, nil }
	mgr := NewConfigManager(func() string { return "" }, &Printer{Out: &bytes.Buffer{}}, zap.NewNop())
	if err := mgr.Init(false); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("config not written to default path: %v", err)
	}

	defaultConfigPath = func() (string, error) { return "", errors.New("no home") }
	if err := mgr.Init(false); !errors.Is(err, ErrGetHomeDirectoryFailed) {
		t.Fatalf("Init() error = %v, want ErrGetHomeDirectoryFailed", err)
	}
}
