package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/blockrt/internal/signal"
	"github.com/roach88/blockrt/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - list runs when empty
	Signal   string // optional - filter to one signal
}

// TraceRun summarizes one stored run.
type TraceRun struct {
	ID       string  `json:"id"`
	Model    string  `json:"model"`
	Timestep float64 `json:"timestep_s"`
	Ticks    uint64  `json:"ticks"`
	Finished bool    `json:"finished"`
}

// TraceSample is one logged value. Scalars print as NaN, inf or -inf when
// not finite; matrices and bytes print as JSON.
type TraceSample struct {
	Tick    uint64  `json:"tick"`
	AppTime float64 `json:"app_time_s"`
	Name    string  `json:"name"`
	Value   string  `json:"value"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Runs    []TraceRun    `json:"runs,omitempty"`
	Run     *TraceRun     `json:"run,omitempty"`
	Samples []TraceSample `json:"samples,omitempty"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect recorded telemetry",
		Long: `Inspect telemetry recorded by 'blockrt run --db'.

Without --run, lists the recorded runs. With --run, prints the samples of
that run in tick order, optionally limited to one signal.

Examples:
  blockrt trace --db ./telemetry.db
  blockrt trace --db ./telemetry.db --run 0192...
  blockrt trace --db ./telemetry.db --run 0192... --signal Counter1 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run id to print")
	cmd.Flags().StringVar(&opts.Signal, "signal", "", "filter to one signal name")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	// Open database
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if opts.RunID == "" {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		result := TraceResult{Runs: make([]TraceRun, 0, len(runs))}
		for _, r := range runs {
			result.Runs = append(result.Runs, toTraceRun(r))
		}
		if opts.Format == "json" {
			return outputTraceJSON(cmd, result)
		}
		return outputRunsText(cmd.OutOrStdout(), result.Runs)
	}

	run, err := st.GetRun(ctx, opts.RunID)
	if errors.Is(err, store.ErrNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", opts.RunID))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to get run", err)
	}

	var samples []store.Sample
	if opts.Signal != "" {
		samples, err = st.ReadSeries(ctx, opts.RunID, opts.Signal)
	} else {
		samples, err = st.ReadSamples(ctx, opts.RunID)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read samples", err)
	}

	tr := toTraceRun(run)
	result := TraceResult{Run: &tr, Samples: make([]TraceSample, 0, len(samples))}
	for _, s := range samples {
		result.Samples = append(result.Samples, TraceSample{
			Tick:    s.Tick,
			AppTime: s.AppTime.Seconds(),
			Name:    s.Name,
			Value:   sampleValue(s.Data),
		})
	}

	// Output results
	if opts.Format == "json" {
		return outputTraceJSON(cmd, result)
	}
	return outputSamplesText(cmd.OutOrStdout(), result)
}

func toTraceRun(r store.Run) TraceRun {
	return TraceRun{
		ID:       r.ID,
		Model:    r.Model,
		Timestep: r.Fundamental.Seconds(),
		Ticks:    r.Ticks,
		Finished: r.Finished,
	}
}

// outputTraceJSON outputs the trace result as JSON.
func outputTraceJSON(cmd *cobra.Command, result TraceResult) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(CLIResponse{
		Status: "ok",
		Data:   result,
	})
}

func outputRunsText(w io.Writer, runs []TraceRun) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintln(w, "=== Runs ===")
	for _, r := range runs {
		fmt.Fprintf(w, "  %s  %s  step=%gs  ticks=%d  %s\n",
			truncateID(r.ID), r.Model, r.Timestep, r.Ticks, runStatus(r.Finished))
	}
	return nil
}

func outputSamplesText(w io.Writer, result TraceResult) error {
	r := result.Run
	fmt.Fprintf(w, "Run: %s\n", r.ID)
	fmt.Fprintf(w, "Model: %s, step %gs, %d tick(s), %s\n", r.Model, r.Timestep, r.Ticks, runStatus(r.Finished))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Samples ===")
	if len(result.Samples) == 0 {
		fmt.Fprintln(w, "  (no samples)")
		return nil
	}
	for _, s := range result.Samples {
		fmt.Fprintf(w, "  [%d] t=%gs %s=%s\n", s.Tick, s.AppTime, s.Name, s.Value)
	}
	return nil
}

func sampleValue(d signal.Data) string {
	if d.Kind == signal.DataScalar {
		return signal.FormatFloat(d.Scalar())
	}
	return d.JSON()
}

// truncateID truncates a long ID for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}

// runStatus returns a human-readable run status.
func runStatus(finished bool) string {
	if finished {
		return "finished"
	}
	return "running or interrupted"
}
