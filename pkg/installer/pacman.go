package installer

import (
	"context"

	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
)

// Pacman installs through the native package manager. Installs pass --needed
// so an already-installed package is a cheap no-op rather than a reinstall.
type Pacman struct {
	runner runner.Runner
}

// NewPacman creates the pacman backend.
func NewPacman(r runner.Runner) *Pacman {
	return &Pacman{runner: r}
}

// Method implements Installer.
func (p *Pacman) Method() model.InstallMethod { return model.MethodPacman }

// CheckPresence reports Present when every listed package is in the local
// pacman database.
func (p *Pacman) CheckPresence(ctx context.Context, pkg *model.Package) Presence {
	for _, name := range pkg.Installation.Packages {
		if _, err := p.runner.Run(ctx, "pacman", "-Q", name); err != nil {
			return PresenceAbsent
		}
	}
	return PresencePresent
}

// Install implements Installer.
func (p *Pacman) Install(ctx context.Context, pkg *model.Package, opts Options) (Result, error) {
	if err := p.InstallNames(ctx, pkg.Installation.Packages, pkg.Installation.Flags, opts); err != nil {
		return Result{}, err
	}
	return Result{Version: pkg.Version}, nil
}

// InstallNames installs the named repository packages. The dispatcher also
// uses it for a package's system dependencies regardless of its own method.
func (p *Pacman) InstallNames(ctx context.Context, names, flags []string, opts Options) error {
	if len(names) == 0 {
		return nil
	}
	argv := []string{"pacman", "-S", "--needed"}
	if opts.NonInteractive {
		argv = append(argv, "--noconfirm")
	}
	argv = append(argv, flags...)
	argv = append(argv, names...)

	argv, err := elevate(argv, opts.AllowElevation)
	if err != nil {
		return err
	}
	_, err = p.runner.Run(ctx, argv[0], argv[1:]...)
	return err
}

// Remove uninstalls the listed packages with their unneeded dependencies.
func (p *Pacman) Remove(ctx context.Context, pkg *model.Package, opts Options) error {
	argv := []string{"pacman", "-Rns"}
	if opts.NonInteractive {
		argv = append(argv, "--noconfirm")
	}
	argv = append(argv, pkg.Installation.Packages...)

	argv, err := elevate(argv, opts.AllowElevation)
	if err != nil {
		return err
	}
	_, err = p.runner.Run(ctx, argv[0], argv[1:]...)
	return err
}

var _ Installer = (*Pacman)(nil)
