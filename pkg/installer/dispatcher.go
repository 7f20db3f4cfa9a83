package installer

import (
	"context"

	"github.com/archbox-dev/archbox/pkg/download"
	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
)

// Dispatcher routes packages to the backend matching their installation
// method. The method set is closed; an unrecognized tag is rejected before
// any backend runs.
type Dispatcher struct {
	backends map[model.InstallMethod]Installer
	pacman   *Pacman
}

// NewDispatcher wires the default backend for every supported method.
func NewDispatcher(r runner.Runner, dl download.Manager) *Dispatcher {
	d := &Dispatcher{
		backends: make(map[model.InstallMethod]Installer),
		pacman:   NewPacman(r),
	}
	for _, b := range []Installer{
		d.pacman,
		NewAUR(r),
		NewBinary(r, dl),
		NewAppImage(r, dl),
		NewFlatpak(r),
		NewScript(r),
		NewSource(r, dl),
	} {
		d.backends[b.Method()] = b
	}
	return d
}

func (d *Dispatcher) backend(pkg *model.Package) (Installer, error) {
	b, ok := d.backends[pkg.Installation.Method]
	if !ok {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrUnsupportedMethod, "%s: %q", pkg.Name, string(pkg.Installation.Method))
	}
	return b, nil
}

// CheckPresence probes the backend for pkg. An unsupported method reports
// Unknown; the caller surfaces the error at install time.
func (d *Dispatcher) CheckPresence(ctx context.Context, pkg *model.Package) Presence {
	b, err := d.backend(pkg)
	if err != nil {
		return PresenceUnknown
	}
	return b.CheckPresence(ctx, pkg)
}

// Install routes pkg to its backend. In dry-run mode the dispatch
// short-circuits after method validation so no backend performs side effects.
func (d *Dispatcher) Install(ctx context.Context, pkg *model.Package, opts Options) (Result, error) {
	b, err := d.backend(pkg)
	if err != nil {
		return Result{}, err
	}
	if opts.DryRun {
		return Result{Version: pkg.Version}, nil
	}
	// Host-level dependencies go through the native frontend before the
	// package itself, whatever its own method is.
	if deps := pkg.SystemDependencies(); len(deps) > 0 {
		if err := d.pacman.InstallNames(ctx, deps, nil, opts); err != nil {
			return Result{}, pkgerrors.Wrapf(err, "system dependencies of %s", pkg.Name)
		}
	}
	return b.Install(ctx, pkg, opts)
}

// Remove routes removal to the backend.
func (d *Dispatcher) Remove(ctx context.Context, pkg *model.Package, opts Options) error {
	b, err := d.backend(pkg)
	if err != nil {
		return err
	}
	if opts.DryRun {
		return nil
	}
	return b.Remove(ctx, pkg, opts)
}
