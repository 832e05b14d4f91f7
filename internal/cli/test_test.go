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

const passingScenario = `name: counts
description: three ticks count to three
timestep_ms: 100
ticks: 3
trace: [Counter1]
assertions:
  - type: final_value
    signal: Counter1
    expect: [3]
`

const failingScenario = `name: wrong_count
description: three ticks never count to ten
timestep_ms: 100
ticks: 3
assertions:
  - type: final_value
    signal: Counter1
    expect: [10]
`

const countsGolden = "app_time,Counter1\n0,1\n0.1,2\n0.2,3\n"

func scenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func executeTest(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTestCommandPasses(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"counts.yaml": passingScenario})

	out, err := executeTest(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ counts")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommandFailure(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"counts.yaml":      passingScenario,
		"wrong_count.yaml": failingScenario,
	})

	out, err := executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong_count")
	assert.Contains(t, out, "Assertion failed: final_value")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTestCommandFilter(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"counts.yaml":      passingScenario,
		"wrong_count.yaml": failingScenario,
	})

	out, err := executeTest(t, "text", dir, "--filter", "count*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandGoldenMatch(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"counts.yaml":          passingScenario,
		"golden/counts.golden": countsGolden,
	})

	_, err := executeTest(t, "text", dir)
	require.NoError(t, err)
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"counts.yaml":          passingScenario,
		"golden/counts.golden": "app_time,Counter1\n0,1\n",
	})

	out, err := executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommandUpdateWritesGolden(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"counts.yaml": passingScenario})

	out, err := executeTest(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ counts (golden updated)")

	data, err := os.ReadFile(filepath.Join(dir, "golden", "counts.golden"))
	require.NoError(t, err)
	assert.Equal(t, countsGolden, string(data))
}

func TestTestCommandJSON(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"wrong_count.yaml": failingScenario})

	out, err := executeTest(t, "json", dir)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Failed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
}

func TestTestCommandLoadError(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"broken.yaml": "name: broken\n"})

	out, err := executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandMissingDir(t *testing.T) {
	_, err := executeTest(t, "text", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandNoScenarios(t *testing.T) {
	out, err := executeTest(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}
