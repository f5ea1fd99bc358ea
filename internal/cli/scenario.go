package cli

// This file implements the "run", "validate" and "demo" commands, which load
// scenario documents and execute them against fresh exception runtimes.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhahnFr/mh-tryCatch/internal/config"
	"github.com/mhahnFr/mh-tryCatch/internal/scenario"
	"github.com/mhahnFr/mh-tryCatch/internal/telemetry"
	"github.com/mhahnFr/mh-tryCatch/pkg/trycatch"
)

// test seams
var (
	loadScenarioFile = scenario.Load
	builtinScenarios = scenario.Builtin
)

// ScenarioManager runs scenario documents with injected dependencies.
type ScenarioManager struct {
	cfg     *config.Config
	printer *Printer
	logger  *zap.Logger
}

// RunOptions select what a run prints besides the summary.
type RunOptions struct {
	Metrics bool
	Trace   bool
}

// NewScenarioManager creates a ScenarioManager with the given dependencies.
func NewScenarioManager(cfg *config.Config, printer *Printer, logger *zap.Logger) *ScenarioManager {
	if cfg == nil {
		cfg = config.Default()
	}
	return &ScenarioManager{cfg: cfg, printer: printer, logger: logger}
}

// DefaultScenarioManager returns a ScenarioManager using the default printer
// and settings.
func DefaultScenarioManager(logger *zap.Logger) *ScenarioManager {
	return NewScenarioManager(config.Default(), DefaultPrinter, logger)
}

// SetConfig replaces the settings, typically once flags are parsed.
func (m *ScenarioManager) SetConfig(cfg *config.Config) {
	if cfg != nil {
		m.cfg = cfg
	}
}

// Config returns the current settings.
func (m *ScenarioManager) Config() *config.Config {
	return m.cfg
}

// Printer returns the printer the manager writes to.
func (m *ScenarioManager) Printer() *Printer {
	return m.printer
}

// Logger returns the manager's logger.
func (m *ScenarioManager) Logger() *zap.Logger {
	return m.logger
}

// NewScenarioCmds returns the scenario commands using the provided manager.
func NewScenarioCmds(mgr *ScenarioManager) []*cobra.Command {
	return []*cobra.Command{
		mgr.newRunCmd(),
		mgr.newValidateCmd(),
		mgr.newDemoCmd(),
	}
}

func (m *ScenarioManager) newRunCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Run scenario files",
		Long: `Run every scenario in the given YAML files on a fresh exception runtime.
Each scenario states the outcome it expects (completed, terminated or
aborted); the command fails when any scenario ends differently.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.RunFiles(args, m.runOptions(trace))
		},
	}

	addRunFlags(cmd, &trace)
	cmd.Flags().Uint64(flagMaxPayload, 0, "Limit exception payloads to this many bytes (0 = no limit)")

	return cmd
}

func (m *ScenarioManager) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check scenario files without running them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.ValidateFiles(args)
		},
	}
}

func (m *ScenarioManager) newDemoCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in scenarios",
		Long: `Run the scenarios shipped with the binary: a caught exception, pass-through
to an outer extent, an uncaught exception, a terminate handler, nested
extents inside a handler, rethrow and the fatal misuse paths.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.RunDemo(m.runOptions(trace))
		},
	}

	addRunFlags(cmd, &trace)

	return cmd
}

// addRunFlags declares the flags shared by run and demo. --metrics is read
// through FlagOverrides so it takes part in config resolution.
func addRunFlags(cmd *cobra.Command, trace *bool) {
	cmd.Flags().Bool(flagMetrics, false, "Print event counters after the run")
	cmd.Flags().BoolVar(trace, "trace", false, "Print the runtime events of every scenario")
}

func (m *ScenarioManager) runOptions(trace bool) RunOptions {
	return RunOptions{Metrics: m.cfg.Metrics, Trace: trace}
}

// loadFiles loads and validates every document in paths.
func (m *ScenarioManager) loadFiles(paths []string) ([]*scenario.Document, error) {
	if len(paths) == 0 {
		err := newWithSentinel(ErrScenarioFileRequired, "at least one scenario file is required")
		m.printer.Error("No scenario files given")
		logStructuredError(m.logger, err, "No scenario files given")
		return nil, err
	}

	var docs []*scenario.Document
	for _, path := range paths {
		m.logger.Debug("Loading scenario file", zap.String("file", path))
		loaded, err := loadScenarioFile(path)
		if err != nil {
			wrappedErr := wrapWithSentinelAndContext(
				ErrLoadScenarioFailed,
				err,
				fmt.Sprintf("failed to load %s: %v", path, err),
				map[string]any{"file": path},
			)
			m.printer.Error("Failed to load scenario file")
			logStructuredError(m.logger, wrappedErr, "Failed to load scenario file")
			return nil, wrappedErr
		}
		if err := m.validate(path, loaded); err != nil {
			return nil, err
		}
		docs = append(docs, loaded...)
	}
	return docs, nil
}

func (m *ScenarioManager) validate(path string, docs []*scenario.Document) error {
	var problems []string
	for i, doc := range docs {
		for _, fieldErr := range scenario.Validate(doc) {
			problems = append(problems, fmt.Sprintf("document %d: %s", i+1, fieldErr.Error()))
		}
	}
	if len(problems) == 0 {
		return nil
	}

	for _, problem := range problems {
		m.printer.Error(fmt.Sprintf("%s: %s", path, problem))
	}
	err := wrapWithSentinelAndContext(
		ErrInvalidScenario,
		nil,
		fmt.Sprintf("%s: %d problem(s): %s", path, len(problems), strings.Join(problems, "; ")),
		map[string]any{"file": path, "problems": len(problems)},
	)
	logStructuredError(m.logger, err, "Invalid scenario file")
	return err
}

// ValidateFiles parses and validates paths without running them.
func (m *ScenarioManager) ValidateFiles(paths []string) error {
	docs, err := m.loadFiles(paths)
	if err != nil {
		return err
	}
	m.printer.Success(fmt.Sprintf("%d scenario(s) in %d file(s) are valid", len(docs), len(paths)))
	return nil
}

// RunFiles loads, validates and runs every scenario in paths.
func (m *ScenarioManager) RunFiles(paths []string, opts RunOptions) error {
	docs, err := m.loadFiles(paths)
	if err != nil {
		return err
	}
	return m.run(docs, opts)
}

// RunDemo runs the built-in scenarios.
func (m *ScenarioManager) RunDemo(opts RunOptions) error {
	docs, err := builtinScenarios()
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrLoadBuiltinFailed, err, fmt.Sprintf("failed to load builtin scenarios: %v", err))
		m.printer.Error("Failed to load builtin scenarios")
		logStructuredError(m.logger, wrappedErr, "Failed to load builtin scenarios")
		return wrappedErr
	}
	return m.run(docs, opts)
}

func (m *ScenarioManager) run(docs []*scenario.Document, opts RunOptions) error {
	registry := prometheus.NewRegistry()
	collector, err := telemetry.NewCollector(registry)
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrRegisterMetricsFailed, err, fmt.Sprintf("failed to register metrics: %v", err))
		m.printer.Error("Failed to register metrics")
		logStructuredError(m.logger, wrappedErr, "Failed to register metrics")
		return wrappedErr
	}

	runner := scenario.NewRunner(zapr.NewLogger(m.logger), collector)
	runner.MaxPayload = m.cfg.MaxPayloadBytes

	m.printer.Header("Scenarios")
	results, runErr := runner.RunAll(docs)

	rows := [][]string{{"Scenario", "Expected", "Outcome", "Events", "Diagnostic"}}
	failed := 0
	for _, res := range results {
		outcome := Green(string(res.Outcome))
		if !res.Passed() {
			outcome = Red(string(res.Outcome))
			failed++
		}
		rows = append(rows, []string{
			res.Name,
			string(res.Expected),
			outcome,
			strconv.Itoa(len(res.Events)),
			res.Diagnostic,
		})
	}
	m.printer.TableBoxed(rows)

	for _, res := range results {
		m.printResult(res, opts.Trace)
	}

	if opts.Metrics {
		if err := m.printMetrics(registry); err != nil {
			return err
		}
	}

	if failed > 0 {
		wrappedErr := wrapWithSentinelAndContext(
			ErrScenarioFailed,
			runErr,
			fmt.Sprintf("%d of %d scenario(s) failed", failed, len(results)),
			map[string]any{"failed": failed, "total": len(results)},
		)
		logStructuredError(m.logger, wrappedErr, "Scenario run failed")
		return wrappedErr
	}
	m.printer.Success(fmt.Sprintf("All %d scenario(s) passed", len(results)))
	return nil
}

func (m *ScenarioManager) printResult(res *scenario.Result, trace bool) {
	if res.Passed() && !trace && len(res.Output) == 0 {
		return
	}
	m.printer.Section(res.Name)
	for _, line := range res.Output {
		m.printer.Printf("  %s\n", line)
	}
	if !res.Passed() {
		m.printer.Error(res.Err.Error())
	}
	if !trace {
		return
	}
	rows := [][]string{{"Event", "Tag", "Depth", "Exception"}}
	for _, ev := range res.Events {
		rows = append(rows, []string{ev.Kind.String(), string(ev.Tag), strconv.Itoa(ev.Depth), exceptionID(ev)})
	}
	m.printer.Table(rows)
}

func exceptionID(ev trycatch.Event) string {
	if ev.ExceptionID == 0 {
		return ""
	}
	return "#" + strconv.FormatUint(ev.ExceptionID, 10)
}

func (m *ScenarioManager) printMetrics(g prometheus.Gatherer) error {
	samples, err := telemetry.EventSamples(g)
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrGatherMetricsFailed, err, fmt.Sprintf("failed to gather metrics: %v", err))
		m.printer.Error("Failed to gather metrics")
		logStructuredError(m.logger, wrappedErr, "Failed to gather metrics")
		return wrappedErr
	}
	m.printer.Section("Event counters")
	rows := [][]string{{"Kind", "Tag", "Count"}}
	for _, s := range samples {
		rows = append(rows, []string{s.Kind, s.Tag, strconv.FormatFloat(s.Value, 'f', -1, 64)})
	}
	m.printer.Table(rows)
	return nil
}
