package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "nested", "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, Move(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMoveEmptyPaths(t *testing.T) {
	assert.Error(t, Move("", "/tmp/x"))
	assert.Error(t, Move("/tmp/x", ""))
}

func TestCopyKeepsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, Copy(src, dst))

	for _, p := range []string{src, dst} {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	}
}

func TestCopyMissingSource(t *testing.T) {
	assert.Error(t, Copy(filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "dst")))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, ".local", "bin"), ExpandHome("~/.local/bin"))
	assert.Equal(t, "/usr/local/bin", ExpandHome("/usr/local/bin"))
	assert.Equal(t, "relative/path", ExpandHome("relative/path"))
}
