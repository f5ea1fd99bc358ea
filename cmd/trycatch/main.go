package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mhahnFr/mh-tryCatch/internal/cli"
	"github.com/mhahnFr/mh-tryCatch/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	level := zap.NewAtomicLevelAt(zap.ErrorLevel)
	logger, err := newConsoleLogger(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	mgr := cli.DefaultScenarioManager(logger)
	rootCmd := newRootCmd(mgr, level)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = logger.Sync()
		os.Exit(exitCode(err, mgr.Config()))
	}
}

type globalFlags struct {
	configPath string
}

func newRootCmd(mgr *cli.ScenarioManager, level zap.AtomicLevel) *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "trycatch",
		Short: "Structured exception runtime playground",
		Long: `trycatch runs scenario scripts against the structured exception runtime:
- throw tagged values and catch them by exact tag
- nest protected extents and rethrow to outer ones
- observe termination and the fatal misuse paths`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o, err := cli.FlagOverrides(cmd)
			if err != nil {
				return err
			}
			cfg, err := cli.ResolveConfig(flags.configPath, o)
			if err != nil {
				return err
			}
			mgr.SetConfig(cfg)
			// Set debug mode globally so logStructuredError can check it
			cli.SetDebugMode(cfg.Debug)
			cli.DefaultPrinter.Quiet = cfg.Quiet
			if cfg.Debug {
				level.SetLevel(zap.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (default ~/.trycatch/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode with structured error logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print results, warnings and errors")

	for _, cmd := range cli.NewScenarioCmds(mgr) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(cli.NewCodesCmd())
	configPath := func() string { return flags.configPath }
	rootCmd.AddCommand(cli.NewConfigCmd(cli.NewConfigManager(configPath, mgr.Printer(), mgr.Logger())))

	return rootCmd
}

func exitCode(err error, cfg *config.Config) int {
	if errors.Is(err, cli.ErrScenarioFailed) && cfg != nil {
		return cfg.FailureExitCode
	}
	return 1
}

// newConsoleLogger returns a human-friendly console logger with timestamps.
// level starts at ErrorLevel so structured error logs show in debug mode;
// raising it to DebugLevel shows all logs.
func newConsoleLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = level
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
