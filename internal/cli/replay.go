package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/blockrt/internal/store"
	"github.com/roach88/blockrt/internal/telemetry"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunID    string
	Output   string // empty writes to stdout
}

// ReplayResult summarizes a replay for JSON output.
type ReplayResult struct {
	RunID  string `json:"run_id"`
	Frames int    `json:"frames"`
	Output string `json:"output"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Export a recorded run as CSV",
		Long: `Read a recorded run back tick by tick and write it in the same CSV
format 'blockrt run' streams to diagram_output.csv. Columns are in signal
name order.

Examples:
  blockrt replay --db ./telemetry.db --run 0192...
  blockrt replay --db ./telemetry.db --run 0192... -o run.csv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run id to replay (required)")
	_ = cmd.MarkFlagRequired("run")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "CSV output path (default stdout)")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	run, err := st.GetRun(ctx, opts.RunID)
	if errors.Is(err, store.ErrNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", opts.RunID))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to get run", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output", err)
		}
		defer f.Close()
		w = f
	}
	// JSON output reserves stdout for the summary.
	if opts.Format == "json" && opts.Output == "" {
		w = io.Discard
	}

	csvLog := telemetry.NewCSVLogger(w, run.Fundamental)
	frames := 0
	err = st.Replay(ctx, opts.RunID, func(f store.Frame) error {
		rec := telemetry.Record{Tick: f.Tick, AppTime: f.AppTime}
		for _, s := range f.Samples {
			rec.Add(s.Name, s.Data)
		}
		frames++
		return csvLog.Log(ctx, rec)
	})
	if err != nil {
		return WrapExitError(ExitFailure, "replay failed", err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(ReplayResult{RunID: opts.RunID, Frames: frames, Output: opts.Output})
	}
	if opts.Output != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d frame(s) to %s\n", frames, opts.Output)
	}
	return nil
}
