//go:generate mockgen -destination=./mocks/download.go -package=mocks . Manager

package download

import (
	"context"
	"net/url"
)

// Item describes one file to download.
type Item struct {
	// ID keys the result map; callers usually use the package name.
	ID string
	// URL is the source location.
	URL *url.URL
	// Checksum is an optional sha256 hex digest to verify against.
	Checksum string
	// Filename overrides the on-disk name inside the download directory.
	Filename string
}

// Options control a fetch.
type Options struct {
	// Dir is the absolute download directory.
	Dir string
	// Concurrency bounds the number of parallel downloads (0 = auto).
	Concurrency int
}

// Manager downloads files over HTTP with checksum verification and cache
// reuse.
type Manager interface {
	// Fetch downloads a single item and returns the local file path.
	Fetch(ctx context.Context, item Item, opts Options) (string, error)
	// FetchAll downloads the items with bounded concurrency and returns a
	// map of item ID to local file path.
	FetchAll(ctx context.Context, items []Item, opts Options) (map[string]string, error)
}
