package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/engine"
	"github.com/roach88/blockrt/internal/params"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestErrorCode(t *testing.T) {
	precondition := &block.PreconditionError{Code: block.ErrCodeNaNOrdering, Block: "Aggregate1", Message: "NaN in ordering operation"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", block.NewConfigError(block.ErrCodeShapeMismatch, "ic", "ic has 3 values, want 2"), "SHAPE_MISMATCH"},
		{"wrapped config", fmt.Errorf("build: %w", block.NewConfigError(block.ErrCodeUnknownMethod, "method", "Sideways")), "UNKNOWN_METHOD"},
		{"bare precondition", precondition, "NAN_ORDERING"},
		{"runtime wins over its cause", &engine.RuntimeError{Code: engine.ErrCodePrecondition, Err: precondition}, "PRECONDITION_VIOLATED"},
		{"load", &params.LoadError{Code: params.ErrCodeParseFailed, Message: "bad yaml"}, "PARSE_FAILED"},
		{"plain", errors.New("disk full"), ErrCodeGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestLocate(t *testing.T) {
	ce := block.NewConfigError(block.ErrCodeShapeMismatch, "ic", "ic has 3 values, want 2")
	ce.Block = "Delay1"
	assert.Equal(t, &ErrorLocation{Block: "Delay1", Param: "ic"}, Locate(ce))

	re := &engine.RuntimeError{
		Code: engine.ErrCodePrecondition,
		Tick: 3,
		Time: 200 * time.Millisecond,
		Err:  &block.PreconditionError{Code: block.ErrCodeNaNOrdering, Block: "Compare1"},
	}
	loc := Locate(re)
	require.NotNil(t, loc)
	assert.Equal(t, "Compare1, tick 3 (t=0.2s)", loc.String())

	assert.Equal(t, &ErrorLocation{Path: "diagram_params.yaml"}, Locate(&params.LoadError{Code: params.ErrCodeParseFailed, Path: "diagram_params.yaml"}))
	assert.Nil(t, Locate(errors.New("disk full")))
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	ce := block.NewConfigError(block.ErrCodeShapeMismatch, "ic", "ic has 3 values, want 2")
	ce.Block = "Delay1"
	require.NoError(t, formatter.Error(fmt.Errorf("failed to build diagram: %w", ce)))

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string        `json:"code"`
			Message string        `json:"message"`
			Details ErrorLocation `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "SHAPE_MISMATCH", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "ic has 3 values, want 2")
	assert.Equal(t, ErrorLocation{Block: "Delay1", Param: "ic"}, resp.Error.Details)
}

func TestOutputFormatter_JSONErrorWithoutLocation(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(errors.New("disk full")))
	assert.NotContains(t, buf.String(), "details")
	assert.Contains(t, buf.String(), `"code":"E001"`)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success("Diagram params valid"))
	assert.Contains(t, buf.String(), "Diagram params valid")
}

func TestOutputFormatter_TextError(t *testing.T) {
	ce := block.NewConfigError(block.ErrCodeShapeMismatch, "ic", "ic has 3 values, want 2")
	ce.Block = "Delay1"

	tests := []struct {
		name    string
		verbose bool
		wantLoc bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, formatter.Error(ce))
			assert.Contains(t, buf.String(), "Error [SHAPE_MISMATCH]")
			assert.Contains(t, buf.String(), "ic has 3 values, want 2")
			if tt.wantLoc {
				assert.Contains(t, buf.String(), "at Delay1.ic")
			} else {
				assert.NotContains(t, buf.String(), "at Delay1.ic")
			}
		})
	}
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			errBuf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    buf,
				ErrWriter: errBuf,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Loaded %d block(s)", 3)

			assert.Empty(t, buf.String(), "diagnostics never reach the JSON stream")
			if tt.wantLog {
				assert.Contains(t, errBuf.String(), "Loaded 3 block(s)")
			} else {
				assert.Empty(t, errBuf.String())
			}
		})
	}
}

func TestCLIResponse_RunID(t *testing.T) {
	data, err := json.Marshal(CLIResponse{Status: "ok", Data: map[string]int{"ticks": 42}, RunID: "run-1"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id":"run-1"`)

	data, err = json.Marshal(CLIResponse{Status: "ok"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "run_id")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "no db"))))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := WrapExitError(ExitFailure, "diagram stopped", errors.New("boom"))
	assert.Equal(t, "diagram stopped: boom", wrapped.Error())
}
