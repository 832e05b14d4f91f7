package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockrt/internal/params"
)

// writeParams creates a run directory holding diagram_params.yaml.
func writeParams(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, params.FileBase+".yaml"), []byte(yaml), 0644))
	return dir
}

// testCommand returns a bare command whose output lands in the returned
// buffer, for calling a RunE body directly.
func testCommand(ctx context.Context) (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetContext(ctx)
	return cmd, buf
}

// quietEnv clears the app variables so the host environment cannot leak
// into a run.
func quietEnv(t *testing.T) {
	t.Helper()
	t.Setenv(params.EnvRunPath, "")
	t.Setenv(params.EnvDataLogRateHz, "0")
	t.Setenv(params.EnvTransmitEnabled, "false")
	t.Setenv(params.EnvPublishSocket, "")
	t.Setenv(params.EnvLogLevel, "error")
}
