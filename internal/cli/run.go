package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/blockrt/internal/blocks"
	"github.com/roach88/blockrt/internal/bus"
	"github.com/roach88/blockrt/internal/engine"
	"github.com/roach88/blockrt/internal/model"
	"github.com/roach88/blockrt/internal/params"
	"github.com/roach88/blockrt/internal/store"
	"github.com/roach88/blockrt/internal/telemetry"
)

// ErrorsFile is written to the run path when a run fails.
const ErrorsFile = "blockrt_errors.json"

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	RunPath  string // overrides APP_RUN_PATH
	Database string
	Timestep time.Duration
	Duration time.Duration
	Ticks    int64
	Simulate bool

	// RunIDGenerator allows overriding the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDGenerator engine.RunIDGenerator
}

// RunSummary is the result of a finished run.
type RunSummary struct {
	RunID    string  `json:"run_id,omitempty"`
	Ticks    int64   `json:"ticks"`
	LastTime float64 `json:"last_time_s"`
	Overruns int64   `json:"overruns"`
}

// RunFailure is the document written to ErrorsFile.
type RunFailure struct {
	ErrType string `json:"err_type"`
	Message string `json:"message"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the diagram",
		Long: `Build the diagram from its parameter file and tick it at a fixed step.

Parameters are read from diagram_params.{json,yaml,yml,toml} in the run
path (APP_RUN_PATH or --run-path). Telemetry goes to diagram_output.csv in
the run path at APP_DATA_LOG_RATE_HZ, to APP_PUBLISH_SOCKET as CBOR
datagrams when APP_TRANSMIT_ENABLED, and to a SQLite database with --db.

The run stops at --ticks or --duration, or on Ctrl-C.

Examples:
  blockrt run --run-path ./run --ticks 100
  blockrt run --run-path ./run --db ./telemetry.db --duration 10s
  blockrt run --sim --ticks 1000 --timestep 1ms`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagram(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunPath, "run-path", "", "directory with diagram params and outputs (default $APP_RUN_PATH or .)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite telemetry database")
	cmd.Flags().DurationVar(&opts.Timestep, "timestep", 100*time.Millisecond, "fundamental timestep")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 0, "stop after this much app time (0 = unbounded)")
	cmd.Flags().Int64Var(&opts.Ticks, "ticks", 0, "stop after this many ticks (0 = unbounded)")
	cmd.Flags().BoolVar(&opts.Simulate, "sim", false, "use a simulated clock and run as fast as possible")

	return cmd
}

func runDiagram(opts *RunOptions, cmd *cobra.Command) error {
	setupLogging(opts.RootOptions)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Timestep <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("timestep must be positive, got %v", opts.Timestep))
	}

	vars, err := params.LoadAppVars()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid environment", err)
	}
	if opts.RunPath != "" {
		vars.RunPath = opts.RunPath
	}
	if vars.RunPath == "" {
		vars.RunPath = "."
	}

	d, err := params.LoadDir(vars.RunPath)
	if err != nil {
		return runFailed(formatter, vars.RunPath, ExitCommandError, "failed to load diagram params", err)
	}

	m, err := model.NewDemo(d, bus.Default())
	if err != nil {
		return runFailed(formatter, vars.RunPath, ExitFailure, "failed to build diagram", err)
	}

	if vars.TransmitEnabled {
		sender := blocks.NewUDPSender()
		defer sender.Close()
		m.SetSender(sender)
	}

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	period := telemetry.PeriodFromRate(vars.DataLogRateHz)
	sinks, runLog, closeSinks, err := openSinks(ctx, opts, vars, d, period)
	if err != nil {
		return err
	}
	defer closeSinks()

	var clock engine.Clock = engine.NewSystemClock()
	if opts.Simulate {
		clock = engine.NewSimClock()
	}
	rt := engine.NewRuntime(clock, opts.Timestep)

	slog.Info("diagram starting", "model", model.DemoName, "run_path", vars.RunPath, "timestep", opts.Timestep)
	formatter.VerboseLog("Logging telemetry every %v to %d sink(s)", period, len(sinks))

	stats, runErr := engine.Run(ctx, rt, m, engine.RunOptions{
		MaxTicks: opts.Ticks,
		Duration: opts.Duration,
		AfterTick: func(tick engine.Tick) error {
			if err := m.Flush(); err != nil {
				return err
			}
			return telemetry.Emit(ctx, sinks, tick.Time(), func() telemetry.Record {
				return m.Record(tick.Seq(), tick.Time())
			})
		},
	})

	summary := RunSummary{
		Ticks:    stats.Ticks,
		LastTime: stats.LastTime.Seconds(),
		Overruns: stats.Overruns,
	}
	if runLog != nil {
		summary.RunID = runLog.RunID()
		// The run is finished even if the parent context is gone.
		if err := runLog.Finish(context.WithoutCancel(ctx), uint64(stats.Ticks)); err != nil {
			slog.Error("failed to finish run", "run_id", summary.RunID, "error", err)
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runFailed(formatter, vars.RunPath, ExitFailure, "diagram stopped", runErr)
	}

	slog.Info("diagram stopped", "ticks", stats.Ticks, "overruns", stats.Overruns)
	if opts.Format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(CLIResponse{
			Status: "ok",
			Data:   summary,
			RunID:  summary.RunID,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Ran %d tick(s), last app time %gs", summary.Ticks, summary.LastTime)
	if summary.RunID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), ", run %s", summary.RunID)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

// openSinks opens every configured telemetry logger. The returned closer
// releases all of them.
func openSinks(ctx context.Context, opts *RunOptions, vars params.AppVars, d params.Diagram, period time.Duration) (telemetry.Multi, *telemetry.StoreLogger, func(), error) {
	var (
		sinks   telemetry.Multi
		closers []func() error
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				slog.Error("error closing telemetry sink", "error", err)
			}
		}
	}

	csvLog, err := telemetry.CreateCSV(filepath.Join(vars.RunPath, telemetry.CSVFile), period)
	if err != nil {
		return nil, nil, nil, WrapExitError(ExitCommandError, "failed to open csv output", err)
	}
	sinks = append(sinks, csvLog)
	closers = append(closers, csvLog.Close)

	if vars.TransmitEnabled {
		dg, err := telemetry.DialDatagram(vars.PublishSocket, period)
		if err != nil {
			closeAll()
			return nil, nil, nil, WrapExitError(ExitCommandError, "failed to open telemetry socket", err)
		}
		sinks = append(sinks, dg)
		closers = append(closers, dg.Close)
	}

	if opts.Database == "" {
		return sinks, nil, closeAll, nil
	}

	slog.Info("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		closeAll()
		return nil, nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	closers = append(closers, st.Close)

	gen := opts.RunIDGenerator
	if gen == nil {
		gen = engine.UUIDv7Generator{}
	}
	runLog, err := telemetry.StartRun(ctx, st, gen, telemetry.RunInfo{
		Model:       model.DemoName,
		Fundamental: opts.Timestep,
		Params:      d,
	}, period)
	if err != nil {
		closeAll()
		return nil, nil, nil, WrapExitError(ExitCommandError, "failed to start run", err)
	}
	sinks = append(sinks, runLog)
	return sinks, runLog, closeAll, nil
}

// runFailed dumps err for the process supervisor, reports it in JSON mode
// and attaches the exit code.
func runFailed(formatter *OutputFormatter, runPath string, code int, message string, err error) error {
	dumpError(runPath, err)
	if formatter.Format == "json" {
		_ = formatter.Error(err)
	}
	return WrapExitError(code, message, err)
}

// dumpError records a failure in the run path, typed by its domain code.
func dumpError(runPath string, err error) {
	path := filepath.Join(runPath, ErrorsFile)
	slog.Info("error log path", "path", path)
	data, mErr := json.Marshal(RunFailure{ErrType: ErrorCode(err), Message: err.Error()})
	if mErr != nil {
		return
	}
	if wErr := os.WriteFile(path, data, 0644); wErr != nil {
		slog.Warn("failed to write error log", "path", path, "error", wErr)
	}
}
