package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestExtractAll(t *testing.T) {
	tempDir := t.TempDir()
	archivePath := filepath.Join(tempDir, "src.tar.gz")
	writeTarGz(t, archivePath, map[string]string{
		"Makefile":        "all:\n\ttrue\n",
		"src/main.c":      "int main(void) { return 0; }\n",
		"docs/README.txt": "readme\n",
	})

	destDir := filepath.Join(tempDir, "out")
	e := NewExtractor()
	require.NoError(t, e.ExtractAll(context.Background(), archivePath, destDir))

	got, err := os.ReadFile(filepath.Join(destDir, "src", "main.c"))
	require.NoError(t, err)
	assert.Equal(t, "int main(void) { return 0; }\n", string(got))

	_, err = os.Stat(filepath.Join(destDir, "Makefile"))
	assert.NoError(t, err)
}

func TestExtractAllMissingArchive(t *testing.T) {
	e := NewExtractor()
	err := e.ExtractAll(context.Background(), filepath.Join(t.TempDir(), "nope.tar.gz"), t.TempDir())
	assert.Error(t, err)
}
