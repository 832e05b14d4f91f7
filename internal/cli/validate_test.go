package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeValidate(t *testing.T, format string, path string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{path})
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateValidDir(t *testing.T) {
	dir := writeParams(t, "Ramp1:\n  rate: 2\nDelay1:\n  ic: [1, 2]\n")

	out, err := executeValidate(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Diagram params valid (2 block(s) configured)")
}

func TestValidateValidFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Sine1]\namplitude = 3\n"), 0644))

	out, err := executeValidate(t, "json", path)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, []string{"Sine1"}, resp.Data.Blocks)
}

func TestValidateBuildError(t *testing.T) {
	dir := writeParams(t, "Delay1:\n  ic: [1, 2, 3]\n")

	out, err := executeValidate(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "Delay1.ic")
	assert.Contains(t, out, "SHAPE_MISMATCH")
}

func TestValidateBuildErrorJSON(t *testing.T) {
	dir := writeParams(t, "Compare1:\n  comparison_type: Sideways\n")

	out, err := executeValidate(t, "json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNKNOWN_METHOD", resp.Error.Code)
}

func TestValidateSchemaViolation(t *testing.T) {
	dir := writeParams(t, "Ramp1:\n  rate:\n    nested: 1\n")

	out, err := executeValidate(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
}

func TestValidateNotFound(t *testing.T) {
	out, err := executeValidate(t, "text", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [READ_FAILED]")
}

func TestValidateUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Ramp1]\n"), 0644))

	_, err := executeValidate(t, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "UNSUPPORTED_FORMAT")
}

func TestValidateEmptyDirIsValid(t *testing.T) {
	out, err := executeValidate(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "0 block(s) configured")
}
