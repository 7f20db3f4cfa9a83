package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archbox-dev/archbox/pkg/errors"
)

func TestRunCapturesStdout(t *testing.T) {
	r := NewExecRunner()

	res, err := r.Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunNonZeroExit(t *testing.T) {
	r := NewExecRunner()

	res, err := r.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSubprocessFailed)
	assert.Contains(t, err.Error(), "oops")
	assert.Equal(t, 3, res.ExitCode)
}

func TestRunMissingBinary(t *testing.T) {
	r := NewExecRunner()

	_, err := r.Run(context.Background(), "definitely-not-a-real-binary-xyz")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errors.ErrSubprocessFailed)
}

func TestRunInSetsWorkingDirectory(t *testing.T) {
	r := NewExecRunner()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), []byte("x"), 0o644))

	res, err := r.RunIn(context.Background(), dir, "sh", "-c", "ls")
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "marker")
}

func TestRunTimeout(t *testing.T) {
	r := NewExecRunner()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx, "sh", "-c", "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInstallTimeout)
}

func TestRunCancelled(t *testing.T) {
	r := NewExecRunner()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := r.Run(ctx, "sh", "-c", "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInstallCancelled)
}

func TestCommandExists(t *testing.T) {
	r := NewExecRunner()

	assert.True(t, CommandExists(r, "sh"))
	assert.False(t, CommandExists(r, "definitely-not-a-real-binary-xyz"))
}
