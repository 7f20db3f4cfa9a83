package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archbox-dev/archbox/pkg/errors"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func sha256Hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func TestFetchSuccess(t *testing.T) {
	content := []byte("binary payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(content)
	}))
	defer srv.Close()

	dir := t.TempDir()
	m := NewManager(5*time.Second, "")

	path, err := m.Fetch(context.Background(), Item{
		ID:       "tool",
		URL:      mustURL(t, srv.URL+"/tool"),
		Checksum: sha256Hex(content),
		Filename: "tool.bin",
	}, Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tool.bin"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFetchTimeoutIsNotADownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	m := NewManager(5*time.Second, "")

	_, err := m.Fetch(ctx, Item{ID: "tool", URL: mustURL(t, srv.URL), Filename: "tool.bin"},
		Options{Dir: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInstallTimeout)
	assert.NotErrorIs(t, err, errors.ErrDownloadFailed)
}

func TestFetchCancelledClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	m := NewManager(5*time.Second, "")

	_, err := m.Fetch(ctx, Item{ID: "tool", URL: mustURL(t, srv.URL), Filename: "tool.bin"},
		Options{Dir: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInstallCancelled)
}

func TestFetchChecksumMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("actual content"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	m := NewManager(5*time.Second, "")

	_, err := m.Fetch(context.Background(), Item{
		ID:       "tool",
		URL:      mustURL(t, srv.URL),
		Checksum: sha256Hex([]byte("expected content")),
		Filename: "tool.bin",
	}, Options{Dir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrChecksumMismatch)

	// The partial file must not survive a failed verification.
	_, statErr := os.Stat(filepath.Join(dir, "tool.bin"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewManager(5*time.Second, "")
	_, err := m.Fetch(context.Background(), Item{
		ID:  "empty",
		URL: mustURL(t, srv.URL),
	}, Options{Dir: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDownloadFailed)
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	m := NewManager(5*time.Second, "")
	_, err := m.Fetch(context.Background(), Item{
		ID:  "missing",
		URL: mustURL(t, srv.URL),
	}, Options{Dir: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDownloadFailed)
}

func TestFetchReusesVerifiedCacheEntry(t *testing.T) {
	content := []byte("cached payload")
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write(content)
	}))
	defer srv.Close()

	dir := t.TempDir()
	m := NewManager(5*time.Second, "")
	item := Item{
		ID:       "tool",
		URL:      mustURL(t, srv.URL),
		Checksum: sha256Hex(content),
		Filename: "tool.bin",
	}

	_, err := m.Fetch(context.Background(), item, Options{Dir: dir})
	require.NoError(t, err)
	_, err = m.Fetch(context.Background(), item, Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestFetchAllDeduplicatesURLs(t *testing.T) {
	content := []byte("shared payload")
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write(content)
	}))
	defer srv.Close()

	m := NewManager(5*time.Second, "")
	u := mustURL(t, srv.URL+"/artifact")
	items := []Item{
		{ID: "a", URL: u, Filename: "shared.bin"},
		{ID: "b", URL: u, Filename: "shared.bin"},
	}

	paths, err := m.FetchAll(context.Background(), items, Options{Dir: t.TempDir(), Concurrency: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Equal(t, paths["a"], paths["b"])
}

func TestFetchAllEmpty(t *testing.T) {
	m := NewManager(time.Second, "")
	paths, err := m.FetchAll(context.Background(), nil, Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFetchRejectsRelativeDir(t *testing.T) {
	m := NewManager(time.Second, "")
	_, err := m.Fetch(context.Background(), Item{ID: "x", URL: mustURL(t, "http://localhost/x")},
		Options{Dir: "relative/dir"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidPath)
}

func TestSelectFilename(t *testing.T) {
	u := mustURL(t, "https://example.com/a/b.tar.gz")
	assert.Equal(t, "named", selectFilename(Item{URL: u, Filename: "named"}))
	assert.Equal(t, "abc123", selectFilename(Item{URL: u, Checksum: "abc123"}))
	assert.Equal(t, sha256Hex([]byte(u.String())), selectFilename(Item{URL: u}))
}
