package installer

import (
	"context"

	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
)

// Flatpak installs applications by ID from a flatpak remote. Flatpak manages
// its own privileges through polkit, so the backend never elevates.
type Flatpak struct {
	runner runner.Runner
}

// NewFlatpak creates the flatpak backend.
func NewFlatpak(r runner.Runner) *Flatpak {
	return &Flatpak{runner: r}
}

// Method implements Installer.
func (f *Flatpak) Method() model.InstallMethod { return model.MethodFlatpak }

// CheckPresence queries flatpak for the application ID.
func (f *Flatpak) CheckPresence(ctx context.Context, pkg *model.Package) Presence {
	if _, err := f.runner.Run(ctx, "flatpak", "info", pkg.Installation.ID); err != nil {
		return PresenceAbsent
	}
	return PresencePresent
}

// Install implements Installer. The frontend exiting 0 is not enough: the
// install only counts once flatpak reports the application present.
func (f *Flatpak) Install(ctx context.Context, pkg *model.Package, opts Options) (Result, error) {
	argv := []string{"flatpak", "install"}
	if opts.NonInteractive {
		argv = append(argv, "-y")
	}
	argv = append(argv, pkg.Installation.RemoteOrDefault(), pkg.Installation.ID)

	if _, err := f.runner.Run(ctx, argv[0], argv[1:]...); err != nil {
		return Result{}, err
	}
	if f.CheckPresence(ctx, pkg) != PresencePresent {
		return Result{}, pkgerrors.Wrapf(pkgerrors.ErrNotInstalled,
			"flatpak did not report %s present after install", pkg.Installation.ID)
	}
	return Result{Version: pkg.Version}, nil
}

// Remove uninstalls the application.
func (f *Flatpak) Remove(ctx context.Context, pkg *model.Package, opts Options) error {
	argv := []string{"flatpak", "uninstall"}
	if opts.NonInteractive {
		argv = append(argv, "-y")
	}
	argv = append(argv, pkg.Installation.ID)

	_, err := f.runner.Run(ctx, argv[0], argv[1:]...)
	return err
}

var _ Installer = (*Flatpak)(nil)
