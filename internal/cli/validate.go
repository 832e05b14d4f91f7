package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/bus"
	"github.com/roach88/blockrt/internal/model"
	"github.com/roach88/blockrt/internal/params"
)

// ValidationError is one problem found in a params document.
type ValidationError struct {
	Code    string `json:"code"`
	Block   string `json:"block,omitempty"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Blocks []string          `json:"blocks,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <params-file-or-run-dir>",
		Short: "Validate diagram params without running",
		Long: `Validate a diagram parameter file without ticking the diagram.

Decodes the file, checks it against the params schema, and builds every
block to catch unknown methods, malformed codecs and shape mismatches.
Given a directory, looks for diagram_params.{json,yaml,yml,toml} in it.

Exit codes:
  0 - Params valid
  1 - Params invalid
  2 - Command error (file not found, unsupported format)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	info, err := os.Stat(path)
	if err != nil {
		return outputValidateError(formatter, &params.LoadError{Code: params.ErrCodeReadFailed, Path: path, Message: "not found", Err: err})
	}

	var d params.Diagram
	if info.IsDir() {
		d, err = params.LoadDir(path)
	} else {
		d, err = params.Load(path)
	}
	if err != nil {
		var le *params.LoadError
		if errors.As(err, &le) && (le.Code == params.ErrCodeParseFailed || le.Code == params.ErrCodeSchemaViolation) {
			return outputValidationErrors(formatter, []ValidationError{{Code: le.Code, Message: err.Error()}})
		}
		return outputValidateError(formatter, err)
	}

	formatter.VerboseLog("Loaded %d block(s) from %s", len(d), path)

	// Building on a private bus keeps validation free of side effects.
	if _, err := model.NewDemo(d, bus.New()); err != nil {
		var ce *block.ConfigError
		if errors.As(err, &ce) {
			return outputValidationErrors(formatter, []ValidationError{{
				Code:    string(ce.Code),
				Block:   ce.Block,
				Param:   ce.Param,
				Message: ce.Message,
			}})
		}
		return outputValidateError(formatter, err)
	}

	return outputValidateSuccess(formatter, d.Blocks())
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, blocks []string) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: true, Blocks: blocks}
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Diagram params valid (%d block(s) configured)\n", len(blocks))
	return nil
}

// outputValidateError reports input that could not be validated at all
// (exit code 2).
func outputValidateError(formatter *OutputFormatter, err error) error {
	_ = formatter.Error(err)
	return WrapExitError(ExitCommandError, "cannot validate", err)
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []ValidationError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:  false,
			Errors: errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		switch {
		case err.Block != "" && err.Param != "":
			fmt.Fprintf(formatter.Writer, "%s.%s\n", err.Block, err.Param)
		case err.Block != "":
			fmt.Fprintf(formatter.Writer, "%s\n", err.Block)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
