//go:generate mockgen -destination=./mocks/runner.go -package=mocks . Runner

// Package runner spawns external commands with an explicit binary and
// argument list and captured output. All subprocess execution in the engine
// goes through the Runner interface so installers stay testable and no
// user-controlled catalog field is ever concatenated into a shell string.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"github.com/archbox-dev/archbox/pkg/errors"
)

// Result carries the captured output of a finished subprocess.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external commands.
type Runner interface {
	// Run executes name with args and returns the captured output. A
	// non-zero exit yields an error wrapping errors.ErrSubprocessFailed
	// with the captured stderr attached verbatim.
	Run(ctx context.Context, name string, args ...string) (Result, error)
	// RunIn behaves like Run with the working directory set to dir.
	RunIn(ctx context.Context, dir, name string, args ...string) (Result, error)
	// LookPath reports where name resolves in PATH.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands on the host via os/exec.
type ExecRunner struct{}

// NewExecRunner returns the host command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return r.RunIn(ctx, "", name, args...)
}

// RunIn implements Runner.
func (r *ExecRunner) RunIn(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err == nil {
		return res, nil
	}

	// A context error takes precedence: the subprocess was killed, not
	// genuinely failed.
	if ctxErr := ctx.Err(); ctxErr != nil {
		if stderrors.Is(ctxErr, context.DeadlineExceeded) {
			return res, errors.Wrapf(errors.ErrInstallTimeout, "%s", name)
		}
		return res, errors.Wrapf(errors.ErrInstallCancelled, "%s", name)
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return res, errors.Wrapf(errors.ErrSubprocessFailed,
			"%s exited with code %d: %s", name, res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return res, errors.Wrapf(err, "failed to start %s", name)
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// CommandExists reports whether name resolves in PATH.
func CommandExists(r Runner, name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}
