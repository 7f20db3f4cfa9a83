package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archbox-dev/archbox/pkg/download"
	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/fsutil"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
)

// AppImage places a downloaded AppImage under the user's applications
// directory and optionally integrates its bundled desktop entry.
type AppImage struct {
	runner runner.Runner
	dl     download.Manager
}

// NewAppImage creates the AppImage backend.
func NewAppImage(r runner.Runner, dl download.Manager) *AppImage {
	return &AppImage{runner: r, dl: dl}
}

// Method implements Installer.
func (a *AppImage) Method() model.InstallMethod { return model.MethodAppImage }

// targetPath is ~/.local/share/applications/<name>.AppImage.
func (a *AppImage) targetPath(pkg *model.Package, home string) string {
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".local", "share", "applications", pkg.Name+".AppImage")
}

// CheckPresence stats the placed AppImage.
func (a *AppImage) CheckPresence(_ context.Context, pkg *model.Package) Presence {
	if _, err := os.Stat(a.targetPath(pkg, "")); err == nil {
		return PresencePresent
	}
	return PresenceAbsent
}

// Install implements Installer.
func (a *AppImage) Install(ctx context.Context, pkg *model.Package, opts Options) (Result, error) {
	item, err := DownloadItem(pkg)
	if err != nil {
		return Result{}, err
	}

	cached, err := a.dl.Fetch(ctx, item, download.Options{Dir: opts.CacheDir})
	if err != nil {
		return Result{}, err
	}

	target := a.targetPath(pkg, opts.HomeDir)
	if err := os.MkdirAll(filepath.Dir(target), fsutil.DirModeSecure); err != nil {
		return Result{}, pkgerrors.Wrap(err, "could not create applications directory")
	}
	if err := fsutil.Copy(cached, target); err != nil {
		_ = os.Remove(target)
		return Result{}, pkgerrors.Wrap(err, "could not place AppImage")
	}
	if err := os.Chmod(target, fsutil.FileModeExecutable); err != nil {
		_ = os.Remove(target)
		return Result{}, pkgerrors.Wrap(err, "could not set AppImage permissions")
	}

	res := Result{Version: pkg.Version}
	if pkg.Installation.Integrate {
		if err := a.integrate(ctx, pkg, target, opts); err != nil {
			// The AppImage itself is installed and runnable; integration
			// problems are surfaced as a warning.
			res.Warnings = append(res.Warnings,
				pkgerrors.Wrapf(pkgerrors.ErrIntegrationFailed, "%s: %v", pkg.Name, err).Error())
		}
	}
	return res, nil
}

// integrate extracts the AppImage's bundled desktop entry and rewrites it to
// launch the placed image.
func (a *AppImage) integrate(ctx context.Context, pkg *model.Package, target string, opts Options) error {
	workDir, err := os.MkdirTemp(opts.TempDir, "appimage-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	if _, err := a.runner.RunIn(ctx, workDir, target, "--appimage-extract"); err != nil {
		return err
	}

	extracted := filepath.Join(workDir, "squashfs-root")
	matches, err := filepath.Glob(filepath.Join(extracted, "*.desktop"))
	if err != nil || len(matches) == 0 {
		return fmt.Errorf("no desktop entry found in AppImage")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return err
	}
	entry := rewriteDesktopExec(string(data), target)
	dest := filepath.Join(filepath.Dir(target), pkg.Name+".desktop")
	return os.WriteFile(dest, []byte(entry), fsutil.FileModeSecure)
}

// Remove deletes the AppImage and its desktop entry.
func (a *AppImage) Remove(_ context.Context, pkg *model.Package, opts Options) error {
	target := a.targetPath(pkg, opts.HomeDir)
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return pkgerrors.Wrapf(pkgerrors.ErrNotInstalled, "%s", target)
		}
		return pkgerrors.Wrap(err, "could not remove AppImage")
	}
	_ = os.Remove(filepath.Join(filepath.Dir(target), pkg.Name+".desktop"))
	return nil
}

var _ Installer = (*AppImage)(nil)
