// Package config loads CLI settings from ~/.trycatch/config.yaml, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
)

// DefaultFailureExitCode is the exit status of a run with failed scenarios.
const DefaultFailureExitCode = 1

// Environment variables read by Resolve.
const (
	EnvMaxPayloadBytes = "TRYCATCH_MAX_PAYLOAD_BYTES"
	EnvDebug           = "TRYCATCH_DEBUG"
)

// Config holds the CLI settings.
type Config struct {
	// MaxPayloadBytes limits exception payloads; zero means no limit.
	MaxPayloadBytes uint64 `json:"maxPayloadBytes,omitempty"`
	FailureExitCode int    `json:"failureExitCode,omitempty"`
	Debug           bool   `json:"debug,omitempty"`
	Quiet           bool   `json:"quiet,omitempty"`
	Metrics         bool   `json:"metrics,omitempty"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{FailureExitCode: DefaultFailureExitCode}
}

// test seams
var (
	userHomeDir = os.UserHomeDir
	lookupEnv   = os.LookupEnv
)

// DefaultPath returns ~/.trycatch/config.yaml.
func DefaultPath() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", errx.WrapConfig(fmt.Sprintf("failed to get home directory: %v", err), err)
	}
	return filepath.Join(home, ".trycatch", "config.yaml"), nil
}

// Load reads the file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	// #nosec G304 -- path is chosen by the user.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, errx.WrapConfig(fmt.Sprintf("failed to read config: %v", err), err).
			WithContext("path", path)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errx.WrapConfig(fmt.Sprintf("failed to unmarshal config: %v", err), err).
			WithContext("path", path)
	}
	if err := cfg.Validate(); err != nil {
		var e *errx.Error
		if errors.As(err, &e) {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errx.WrapConfig(fmt.Sprintf("failed to create config directory: %v", err), err).
			WithContext("path", path)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errx.WrapConfig(fmt.Sprintf("failed to marshal config: %v", err), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errx.WrapConfig(fmt.Sprintf("failed to write config: %v", err), err).
			WithContext("path", path)
	}
	return nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c == nil {
		return errx.Config("config is required")
	}
	if c.FailureExitCode < 1 || c.FailureExitCode > 125 {
		return errx.Config(fmt.Sprintf("failureExitCode must be between 1 and 125, got %d", c.FailureExitCode)).
			WithContext("failureExitCode", c.FailureExitCode)
	}
	return nil
}

// Keys lists the settings Set accepts, in file order.
func Keys() []string {
	return []string{"maxPayloadBytes", "failureExitCode", "debug", "quiet", "metrics"}
}

// Set parses value and assigns it to the setting named key.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "maxPayloadBytes":
		c.MaxPayloadBytes, err = strconv.ParseUint(value, 10, 64)
	case "failureExitCode":
		c.FailureExitCode, err = strconv.Atoi(value)
	case "debug":
		c.Debug, err = strconv.ParseBool(value)
	case "quiet":
		c.Quiet, err = strconv.ParseBool(value)
	case "metrics":
		c.Metrics, err = strconv.ParseBool(value)
	default:
		return errx.Config(fmt.Sprintf("unknown setting %q, expected one of %s", key, strings.Join(Keys(), ", "))).
			WithContext("key", key)
	}
	if err != nil {
		return errx.WrapConfig(fmt.Sprintf("invalid value %q for %s: %v", value, key, err), err).
			WithContext("key", key)
	}
	return c.Validate()
}

// Overrides are values given on the command line. Nil fields were not set.
type Overrides struct {
	MaxPayloadBytes *uint64
	Debug           *bool
	Quiet           *bool
	Metrics         *bool
}

// Resolve loads the config using precedence: flags > environment > file.
// An empty path means DefaultPath.
func Resolve(path string, flags Overrides) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v, ok := lookupEnv(EnvMaxPayloadBytes); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, errx.WrapConfig(fmt.Sprintf("invalid %s: %v", EnvMaxPayloadBytes, err), err)
		}
		cfg.MaxPayloadBytes = n
	}
	if v, ok := lookupEnv(EnvDebug); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errx.WrapConfig(fmt.Sprintf("invalid %s: %v", EnvDebug, err), err)
		}
		cfg.Debug = b
	}

	if flags.MaxPayloadBytes != nil {
		cfg.MaxPayloadBytes = *flags.MaxPayloadBytes
	}
	if flags.Debug != nil {
		cfg.Debug = *flags.Debug
	}
	if flags.Quiet != nil {
		cfg.Quiet = *flags.Quiet
	}
	if flags.Metrics != nil {
		cfg.Metrics = *flags.Metrics
	}
	return cfg, nil
}
