package installer

import (
	"context"

	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
)

// DefaultAURHelper is used when neither the package definition nor the config
// names a helper.
const DefaultAURHelper = "yay"

// AUR installs from the Arch User Repository through a helper such as yay or
// paru. The helper is never run elevated; it invokes sudo itself for the
// pacman step.
type AUR struct {
	runner runner.Runner
}

// NewAUR creates the AUR backend.
func NewAUR(r runner.Runner) *AUR {
	return &AUR{runner: r}
}

// Method implements Installer.
func (a *AUR) Method() model.InstallMethod { return model.MethodAUR }

// helperFor picks the AUR helper: package definition first, then config,
// then the default.
func (a *AUR) helperFor(pkg *model.Package, opts Options) string {
	if pkg.Installation.Helper != "" {
		return pkg.Installation.Helper
	}
	if opts.AURHelper != "" {
		return opts.AURHelper
	}
	return DefaultAURHelper
}

// CheckPresence queries the local pacman database, where AUR installs are
// registered like any other package.
func (a *AUR) CheckPresence(ctx context.Context, pkg *model.Package) Presence {
	if _, err := a.runner.Run(ctx, "pacman", "-Q", pkg.Installation.Package); err != nil {
		return PresenceAbsent
	}
	return PresencePresent
}

// Install implements Installer.
func (a *AUR) Install(ctx context.Context, pkg *model.Package, opts Options) (Result, error) {
	helper := a.helperFor(pkg, opts)
	if _, err := a.runner.LookPath(helper); err != nil {
		return Result{}, pkgerrors.Wrapf(pkgerrors.ErrHelperNotFound, "%s", helper)
	}

	argv := []string{helper, "-S", "--needed"}
	if opts.NonInteractive {
		argv = append(argv, "--noconfirm")
	}
	argv = append(argv, pkg.Installation.Package)

	if _, err := a.runner.Run(ctx, argv[0], argv[1:]...); err != nil {
		return Result{}, err
	}
	return Result{Version: pkg.Version}, nil
}

// Remove uninstalls through the helper.
func (a *AUR) Remove(ctx context.Context, pkg *model.Package, opts Options) error {
	helper := a.helperFor(pkg, opts)
	if _, err := a.runner.LookPath(helper); err != nil {
		return pkgerrors.Wrapf(pkgerrors.ErrHelperNotFound, "%s", helper)
	}

	argv := []string{helper, "-Rns"}
	if opts.NonInteractive {
		argv = append(argv, "--noconfirm")
	}
	argv = append(argv, pkg.Installation.Package)

	_, err := a.runner.Run(ctx, argv[0], argv[1:]...)
	return err
}

var _ Installer = (*AUR)(nil)
