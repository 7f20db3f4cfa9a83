package installer

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/archbox-dev/archbox/pkg/download"
	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/fsutil"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
)

// Binary downloads a standalone executable and places it at the configured
// install path. Downloads go through the shared cache so a prefetch pass
// makes install-time fetching a local copy.
type Binary struct {
	runner runner.Runner
	dl     download.Manager
}

// NewBinary creates the binary backend.
func NewBinary(r runner.Runner, dl download.Manager) *Binary {
	return &Binary{runner: r, dl: dl}
}

// Method implements Installer.
func (b *Binary) Method() model.InstallMethod { return model.MethodBinary }

// CheckPresence stats the install path.
func (b *Binary) CheckPresence(_ context.Context, pkg *model.Package) Presence {
	target := expandHome(pkg.Installation.InstallPath, "")
	if _, err := os.Stat(target); err == nil {
		return PresencePresent
	}
	return PresenceAbsent
}

// Install implements Installer.
func (b *Binary) Install(ctx context.Context, pkg *model.Package, opts Options) (Result, error) {
	item, err := DownloadItem(pkg)
	if err != nil {
		return Result{}, err
	}

	cached, err := b.dl.Fetch(ctx, item, download.Options{Dir: opts.CacheDir})
	if err != nil {
		return Result{}, err
	}

	target := expandHome(pkg.Installation.InstallPath, opts.HomeDir)
	if err := os.MkdirAll(filepath.Dir(target), fsutil.DirModeSecure); err != nil {
		return Result{}, pkgerrors.Wrap(err, "could not create install directory")
	}
	// Copy from the cache rather than moving, so the cache entry survives
	// for the next run.
	if err := fsutil.Copy(cached, target); err != nil {
		_ = os.Remove(target)
		return Result{}, pkgerrors.Wrap(err, "could not place binary")
	}

	mode := fsutil.FileModeSecure
	if pkg.Installation.IsExecutable() {
		mode = fsutil.FileModeExecutable
	}
	if err := os.Chmod(target, mode); err != nil {
		_ = os.Remove(target)
		return Result{}, pkgerrors.Wrap(err, "could not set binary permissions")
	}
	return Result{Version: pkg.Version}, nil
}

// Remove deletes the installed binary.
func (b *Binary) Remove(_ context.Context, pkg *model.Package, opts Options) error {
	target := expandHome(pkg.Installation.InstallPath, opts.HomeDir)
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return pkgerrors.Wrapf(pkgerrors.ErrNotInstalled, "%s", target)
		}
		return pkgerrors.Wrap(err, "could not remove binary")
	}
	return nil
}

// DownloadItem builds the cache item for a URL-bearing installation. The
// filename is derived from the URL path so a prefetch pass and the install
// itself agree on the cache entry.
func DownloadItem(pkg *model.Package) (download.Item, error) {
	u, err := url.Parse(pkg.Installation.URL)
	if err != nil {
		return download.Item{}, pkgerrors.Wrapf(pkgerrors.ErrDownloadFailed, "invalid url %q: %v", pkg.Installation.URL, err)
	}
	return download.Item{
		ID:       pkg.Name,
		URL:      u,
		Checksum: pkg.Installation.Checksum,
		Filename: cacheFilename(pkg.Name, u),
	}, nil
}

func cacheFilename(name string, u *url.URL) string {
	base := filepath.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return name
	}
	return name + "-" + base
}

// expandHome resolves a leading tilde against home, falling back to the
// process environment when home is empty.
func expandHome(path, home string) string {
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

var _ Installer = (*Binary)(nil)
