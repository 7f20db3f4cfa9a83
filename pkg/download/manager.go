// Package download provides an HTTP download manager with checksum
// verification, atomic finalization and basic de-duplication. Binary and
// AppImage installs fetch through it, and the run coordinator uses it to
// prefetch artifacts ahead of the serial install loop.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/fsutil"
)

// ManagerImpl is the HTTP implementation of Manager.
type ManagerImpl struct {
	client    *http.Client
	userAgent string
}

// NewManager creates a download manager with the given timeout and user agent.
func NewManager(timeout time.Duration, userAgent string) *ManagerImpl {
	if userAgent == "" {
		userAgent = "archbox/1.0"
	}
	return &ManagerImpl{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads a single item and returns the path to the downloaded file.
func (m *ManagerImpl) Fetch(ctx context.Context, item Item, opts Options) (string, error) {
	if err := ensureDir(opts.Dir); err != nil {
		return "", err
	}
	return m.fetchOne(ctx, item, opts)
}

// FetchAll downloads multiple items concurrently and returns a map of item
// IDs to downloaded file paths. Identical URLs are fetched once.
func (m *ManagerImpl) FetchAll(ctx context.Context, items []Item, opts Options) (map[string]string, error) {
	if len(items) == 0 {
		return map[string]string{}, nil
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = max(2, runtime.NumCPU()/2)
	}
	if err := ensureDir(opts.Dir); err != nil {
		return nil, err
	}

	byURL := make(map[string][]int)
	for i, it := range items {
		if it.URL == nil {
			return nil, fmt.Errorf("item %s has nil URL: %w", it.ID, pkgerrors.ErrDownloadFailed)
		}
		key := it.URL.String()
		byURL[key] = append(byURL[key], i)
	}

	results := make([]string, len(items))
	var firstErr error
	var mu sync.Mutex

	tasks := make(chan string)
	var wg sync.WaitGroup
	for w := 0; w < opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for urlStr := range tasks {
				idx := byURL[urlStr][0]
				path, err := m.fetchOne(ctx, items[idx], opts)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					for _, i := range byURL[urlStr] {
						results[i] = path
					}
				}
				mu.Unlock()
			}
		}()
	}
	for urlStr := range byURL {
		tasks <- urlStr
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	out := make(map[string]string, len(items))
	for i, it := range items {
		out[it.ID] = results[i]
	}
	return out, nil
}

func (m *ManagerImpl) fetchOne(ctx context.Context, item Item, opts Options) (string, error) {
	if item.URL == nil {
		return "", fmt.Errorf("nil URL: %w", pkgerrors.ErrDownloadFailed)
	}
	absPath := filepath.Join(opts.Dir, selectFilename(item))
	if reuse, ok := tryReuseExisting(absPath, item.Checksum); ok {
		return reuse, nil
	}

	resp, err := m.doRequest(ctx, item)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	tmpPath, size, err := writeBodyToTemp(resp.Body, absPath)
	if err != nil {
		return "", contextErr(ctx, item, err)
	}
	// A zero-byte transfer never counts as a completed download.
	if size == 0 {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("empty response from %s: %w", item.URL, pkgerrors.ErrDownloadFailed)
	}
	if item.Checksum != "" {
		ok, err := verifySHA256(tmpPath, item.Checksum)
		if err != nil {
			_ = os.Remove(tmpPath)
			return "", err
		}
		if !ok {
			_ = os.Remove(tmpPath)
			return "", fmt.Errorf("%s: %w", item.URL, pkgerrors.ErrChecksumMismatch)
		}
	}
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not finalize download")
	}
	if err := os.Chmod(absPath, fsutil.FileModeSecure); err != nil {
		return "", pkgerrors.Wrap(err, "could not set permissions")
	}
	return absPath, nil
}

func (m *ManagerImpl) doRequest(ctx context.Context, item Item) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL.String(), http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, contextErr(ctx, item, pkgerrors.Wrapf(pkgerrors.ErrDownloadFailed, "%s: %v", item.URL, err))
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s: %w", resp.StatusCode, item.URL, pkgerrors.ErrDownloadFailed)
	}
	return resp, nil
}

// contextErr reclassifies a failure caused by context expiry: a per-install
// timeout aborting a transfer is a timeout, not a bad download.
func contextErr(ctx context.Context, item Item, err error) error {
	ctxErr := ctx.Err()
	if ctxErr == nil {
		return err
	}
	if stderrors.Is(ctxErr, context.DeadlineExceeded) {
		return pkgerrors.Wrapf(pkgerrors.ErrInstallTimeout, "%s", item.URL)
	}
	return pkgerrors.Wrapf(pkgerrors.ErrInstallCancelled, "%s", item.URL)
}

// selectFilename derives a stable on-disk name so that prefetch and
// install-time fetches of the same item hit the same cache entry.
func selectFilename(item Item) string {
	if item.Filename != "" {
		return item.Filename
	}
	if item.Checksum != "" {
		return item.Checksum
	}
	h := sha256.Sum256([]byte(item.URL.String()))
	return hex.EncodeToString(h[:])
}

func tryReuseExisting(absPath, checksum string) (string, bool) {
	st, err := os.Stat(absPath)
	if err != nil || st.Size() == 0 {
		return "", false
	}
	if checksum == "" {
		return absPath, true
	}
	if ok, err := verifySHA256(absPath, checksum); err == nil && ok {
		return absPath, true
	}
	return "", false
}

func writeBodyToTemp(body io.Reader, absPath string) (string, int64, error) {
	if err := ensureDir(filepath.Dir(absPath)); err != nil {
		return "", 0, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", 0, pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	size, err := io.Copy(tmp, body)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", 0, pkgerrors.Wrapf(pkgerrors.ErrDownloadFailed, "could not write file: %v", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", 0, pkgerrors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		return "", 0, pkgerrors.Wrap(err, "could not close file")
	}
	return tmpPath, size, nil
}

func verifySHA256(path, wantHex string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, pkgerrors.Wrap(err, "open for checksum")
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, pkgerrors.Wrap(err, "hashing")
	}
	got := hex.EncodeToString(h.Sum(nil))
	return got == strings.ToLower(strings.TrimSpace(wantHex)), nil
}

func ensureDir(dir string) error {
	if dir == "" || !filepath.IsAbs(dir) {
		return fmt.Errorf("download dir must be absolute: %s: %w", dir, pkgerrors.ErrInvalidPath)
	}
	if err := os.MkdirAll(dir, fsutil.DirModeSecure); err != nil {
		return pkgerrors.Wrap(err, "could not create download dir")
	}
	return nil
}
