// Package installer implements the per-method install backends and the
// dispatcher that selects among them. Each backend knows how to probe for an
// existing installation and how to perform one; policy decisions such as
// skip-if-present, dependency ordering and failure propagation live in the
// run coordinator, not here.
package installer

import (
	"context"

	"github.com/archbox-dev/archbox/pkg/model"
)

// Presence is the result of probing whether a package is already installed
// on the host.
type Presence string

// Probe outcomes. Unknown means the method has no reliable probe; the
// coordinator treats Unknown as not-skippable.
const (
	PresencePresent Presence = "present"
	PresenceAbsent  Presence = "absent"
	PresenceUnknown Presence = "unknown"
)

// Options carries the per-run parameters that apply to every install.
type Options struct {
	// DryRun reports what would happen without side effects.
	DryRun bool
	// NonInteractive suppresses any prompting flags backends would omit
	// otherwise.
	NonInteractive bool
	// AllowElevation permits prefixing privileged commands with sudo -n.
	AllowElevation bool
	// AURHelper is the configured AUR helper binary, used when the package
	// definition does not name one.
	AURHelper string
	// HomeDir is the invoking user's home directory.
	HomeDir string
	// TempDir hosts per-install scratch space.
	TempDir string
	// CacheDir hosts downloaded artifacts across runs.
	CacheDir string
}

// Result is the successful outcome of one install.
type Result struct {
	// Version is the installed version as reported by the backend, falling
	// back to the catalog version.
	Version string
	// Warnings carries non-fatal notes surfaced to the run report.
	Warnings []string
}

// Installer is one installation method backend.
type Installer interface {
	// Method returns the method tag this backend serves.
	Method() model.InstallMethod
	// CheckPresence probes whether pkg is already installed.
	CheckPresence(ctx context.Context, pkg *model.Package) Presence
	// Install performs the installation.
	Install(ctx context.Context, pkg *model.Package, opts Options) (Result, error)
	// Remove uninstalls the package. Methods without a removal story return
	// an error wrapping errors.ErrRemoveUnsupported.
	Remove(ctx context.Context, pkg *model.Package, opts Options) error
}
