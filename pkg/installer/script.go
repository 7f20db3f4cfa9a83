package installer

import (
	"context"
	"os"
	"path/filepath"

	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
)

// Script runs an inline installation script through its interpreter. The
// script body is written to a private temp file and passed as the single
// argument, never concatenated into a shell string.
type Script struct {
	runner runner.Runner
}

// NewScript creates the script backend.
func NewScript(r runner.Runner) *Script {
	return &Script{runner: r}
}

// Method implements Installer.
func (s *Script) Method() model.InstallMethod { return model.MethodScript }

// CheckPresence is Unknown for scripts; there is nothing reliable to probe.
func (s *Script) CheckPresence(_ context.Context, _ *model.Package) Presence {
	return PresenceUnknown
}

// Install implements Installer.
func (s *Script) Install(ctx context.Context, pkg *model.Package, opts Options) (Result, error) {
	dir, err := os.MkdirTemp(opts.TempDir, "script-*")
	if err != nil {
		return Result{}, pkgerrors.Wrap(err, "could not create script directory")
	}
	defer func() { _ = os.RemoveAll(dir) }()

	scriptPath := filepath.Join(dir, pkg.Name+".sh")
	if err := os.WriteFile(scriptPath, []byte(pkg.Installation.Script), 0o700); err != nil {
		return Result{}, pkgerrors.Wrap(err, "could not write script")
	}

	interpreter := pkg.Installation.InterpreterOrDefault()
	if _, err := s.runner.Run(ctx, interpreter, scriptPath); err != nil {
		return Result{}, err
	}
	return Result{Version: pkg.Version}, nil
}

// Remove is unsupported: the engine cannot know what a script installed.
func (s *Script) Remove(_ context.Context, pkg *model.Package, _ Options) error {
	return pkgerrors.Wrapf(pkgerrors.ErrRemoveUnsupported, "%s", pkg.Name)
}

var _ Installer = (*Script)(nil)
