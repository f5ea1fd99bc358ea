package cli

// This file implements config resolution from flags and the "config" command,
// which writes ~/.trycatch/config.yaml.

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhahnFr/mh-tryCatch/internal/config"
)

// Flags that feed config.Overrides.
const (
	flagDebug      = "debug"
	flagQuiet      = "quiet"
	flagMaxPayload = "max-payload"
	flagMetrics    = "metrics"
)

// test seams
var (
	resolveConfig     = config.Resolve
	defaultConfigPath = config.DefaultPath
)

// ResolveConfig loads the settings for path with flags applied on top.
func ResolveConfig(path string, flags config.Overrides) (*config.Config, error) {
	cfg, err := resolveConfig(path, flags)
	if err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrLoadConfigFailed,
			err,
			fmt.Sprintf("failed to load config: %v", err),
			map[string]any{"path": path},
		)
		Error("Failed to load config")
		return nil, wrappedErr
	}
	return cfg, nil
}

// FlagOverrides collects the config flags the user set explicitly on cmd,
// including inherited persistent flags. Flags cmd does not define are
// ignored.
func FlagOverrides(cmd *cobra.Command) (config.Overrides, error) {
	var o config.Overrides
	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}

	if changed(flagMaxPayload) {
		v, err := flags.GetUint64(flagMaxPayload)
		if err != nil {
			return o, wrapWithSentinel(ErrInvalidFlag, err, fmt.Sprintf("invalid --%s: %v", flagMaxPayload, err))
		}
		o.MaxPayloadBytes = &v
	}
	for name, target := range map[string]**bool{
		flagDebug:   &o.Debug,
		flagQuiet:   &o.Quiet,
		flagMetrics: &o.Metrics,
	} {
		if !changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return o, wrapWithSentinel(ErrInvalidFlag, err, fmt.Sprintf("invalid --%s: %v", name, err))
		}
		*target = &v
	}
	return o, nil
}

// ConfigManager edits the config file with injected dependencies.
type ConfigManager struct {
	path    func() string
	printer *Printer
	logger  *zap.Logger
}

// NewConfigManager creates a ConfigManager. path returns the --config value;
// an empty result selects the default location.
func NewConfigManager(path func() string, printer *Printer, logger *zap.Logger) *ConfigManager {
	return &ConfigManager{path: path, printer: printer, logger: logger}
}

// NewConfigCmd returns the config subcommand using the provided manager.
func NewConfigCmd(mgr *ConfigManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		Long:  "Commands to create and edit the trycatch config file (default ~/.trycatch/config.yaml)",
	}

	cmd.AddCommand(mgr.newConfigInitCmd())
	cmd.AddCommand(mgr.newConfigSetCmd())

	return cmd
}

func (m *ConfigManager) newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.Init(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func (m *ConfigManager) newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting in the config file",
		Long:  fmt.Sprintf("Change one setting in the config file. Keys: %v", config.Keys()),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.Set(args[0], args[1])
		},
	}
}

func (m *ConfigManager) resolvePath() (string, error) {
	if p := m.path(); p != "" {
		return p, nil
	}
	p, err := defaultConfigPath()
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrGetHomeDirectoryFailed, err, fmt.Sprintf("failed to get config path: %v", err))
		m.printer.Error("Failed to get config path")
		logStructuredError(m.logger, wrappedErr, "Failed to get config path")
		return "", wrappedErr
	}
	return p, nil
}

// Init writes the default settings. An existing file is kept unless force
// is set.
func (m *ConfigManager) Init(force bool) error {
	path, err := m.resolvePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		err := wrapWithSentinelAndContext(ErrConfigExists, nil,
			fmt.Sprintf("config file %s already exists (use --force to overwrite)", path),
			map[string]any{"path": path})
		m.printer.Error("Config file already exists")
		logStructuredError(m.logger, err, "Config file already exists")
		return err
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		wrappedErr := wrapWithSentinelAndContext(ErrSaveConfigFailed, err,
			fmt.Sprintf("failed to check config file: %v", err),
			map[string]any{"path": path})
		m.printer.Error("Failed to check config file")
		logStructuredError(m.logger, wrappedErr, "Failed to check config file")
		return wrappedErr
	}
	return m.save(path, config.Default())
}

// Set changes key to value in the config file, creating it if needed.
func (m *ConfigManager) Set(key, value string) error {
	path, err := m.resolvePath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrLoadConfigFailed, err,
			fmt.Sprintf("failed to load config: %v", err),
			map[string]any{"path": path})
		m.printer.Error("Failed to load config")
		logStructuredError(m.logger, wrappedErr, "Failed to load config")
		return wrappedErr
	}
	if err := cfg.Set(key, value); err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrInvalidSetting, err,
			fmt.Sprintf("failed to set %s: %v", key, err),
			map[string]any{"key": key, "value": value})
		m.printer.Error("Invalid setting")
		logStructuredError(m.logger, wrappedErr, "Invalid setting")
		return wrappedErr
	}
	return m.save(path, cfg)
}

func (m *ConfigManager) save(path string, cfg *config.Config) error {
	if err := config.Save(path, cfg); err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrSaveConfigFailed, err,
			fmt.Sprintf("failed to save config: %v", err),
			map[string]any{"path": path})
		m.printer.Error("Failed to save config")
		logStructuredError(m.logger, wrappedErr, "Failed to save config")
		return wrappedErr
	}
	m.printer.Success(fmt.Sprintf("Saved %s", path))
	m.printer.Table(configRows(cfg))
	return nil
}

func configRows(cfg *config.Config) [][]string {
	return [][]string{
		{"Setting", "Value"},
		{"maxPayloadBytes", strconv.FormatUint(cfg.MaxPayloadBytes, 10)},
		{"failureExitCode", strconv.Itoa(cfg.FailureExitCode)},
		{"debug", strconv.FormatBool(cfg.Debug)},
		{"quiet", strconv.FormatBool(cfg.Quiet)},
		{"metrics", strconv.FormatBool(cfg.Metrics)},
	}
}
