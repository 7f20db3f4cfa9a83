//go:generate mockgen -destination=./mocks/orchestrator.go -package=mocks . Resolver,Dispatcher,StateStore,PostInstallApplier,Downloader,HookRunner

// Package orchestrator coordinates one installation run: resolution, cache
// prefetch, the serial install loop with fail-forward error handling, state
// recording and post-install application. The coordinator consumes small
// interfaces so every collaborator can be substituted in tests.
package orchestrator

import (
	"context"
	"time"

	"github.com/archbox-dev/archbox/pkg/download"
	"github.com/archbox-dev/archbox/pkg/hook"
	"github.com/archbox-dev/archbox/pkg/installer"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/postinstall"
)

// Resolver computes the install order for a requested set.
type Resolver interface {
	Order(requested []string) ([]string, error)
}

// Dispatcher routes a package to its installation method backend.
type Dispatcher interface {
	CheckPresence(ctx context.Context, pkg *model.Package) installer.Presence
	Install(ctx context.Context, pkg *model.Package, opts installer.Options) (installer.Result, error)
	Remove(ctx context.Context, pkg *model.Package, opts installer.Options) error
}

// StateStore records terminal outcomes and answers installation queries.
type StateStore interface {
	Latest(name string) *model.InstallRecord
	RecordResult(rec *model.InstallRecord)
}

// PostInstallApplier applies a package's post-install bundle.
type PostInstallApplier interface {
	Apply(ctx context.Context, pkgName string, bundle *model.PostInstall) postinstall.Result
}

// Downloader warms the artifact cache ahead of the install loop.
type Downloader interface {
	FetchAll(ctx context.Context, items []download.Item, opts download.Options) (map[string]string, error)
}

// HookRunner executes lifecycle hook scripts.
type HookRunner interface {
	Execute(t hook.Type, ctx hook.Context) error
}

// Phase tags a progress event.
type Phase string

// Run phases, in order of appearance.
const (
	PhaseResolve     Phase = "resolve"
	PhasePrefetch    Phase = "prefetch"
	PhaseInstall     Phase = "install"
	PhasePostInstall Phase = "post-install"
	PhaseDone        Phase = "done"
)

// Event is one progress notification.
type Event struct {
	Phase Phase
	Name  string
	Msg   string
}

// Hooks carries the optional progress callback.
type Hooks struct {
	OnEvent func(Event)
}

func (h Hooks) emit(e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// RunOptions are the per-run parameters.
type RunOptions struct {
	// Force installs even when the state store and presence probe say the
	// package is already in place.
	Force bool
	// DryRun resolves and reports without side effects.
	DryRun bool
	// NonInteractive passes no-confirm flags to backends.
	NonInteractive bool
	// AllowElevation permits sudo -n for privileged steps.
	AllowElevation bool
	// Timeout bounds each individual package install; zero means no bound.
	Timeout time.Duration
	// AURHelper overrides the default AUR helper binary.
	AURHelper string
	// HomeDir, TempDir and CacheDir locate the user's directories.
	HomeDir  string
	TempDir  string
	CacheDir string
	// Concurrency bounds the prefetch download pool.
	Concurrency int
}

func (o RunOptions) installerOptions() installer.Options {
	return installer.Options{
		DryRun:         o.DryRun,
		NonInteractive: o.NonInteractive,
		AllowElevation: o.AllowElevation,
		AURHelper:      o.AURHelper,
		HomeDir:        o.HomeDir,
		TempDir:        o.TempDir,
		CacheDir:       o.CacheDir,
	}
}
