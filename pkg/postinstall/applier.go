// Package postinstall applies the optional side effects declared by a package
// after its install succeeds: commands, config files, environment exports,
// systemd services and group membership. Actions run best-effort in a fixed
// order; failures are collected per action and surfaced as warnings, never as
// an install failure.
package postinstall

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	pkgerrors "github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/fsutil"
	"github.com/archbox-dev/archbox/pkg/logger"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/runner"
)

// ActionKind identifies a post-install action category.
type ActionKind string

// Action categories, in execution order.
const (
	ActionCommand     ActionKind = "command"
	ActionConfigFile  ActionKind = "config_file"
	ActionEnvironment ActionKind = "environment"
	ActionService     ActionKind = "service"
	ActionUserGroup   ActionKind = "user_group"
)

// ActionFailure describes one failed action.
type ActionFailure struct {
	Kind   ActionKind
	Target string
	Err    error
}

func (f ActionFailure) String() string {
	return fmt.Sprintf("%s %q: %v", f.Kind, f.Target, f.Err)
}

// Result summarizes an Apply call.
type Result struct {
	Applied  int
	Failures []ActionFailure
}

// Err folds the failures into a single error, or nil when all actions
// succeeded.
func (r Result) Err() error {
	var merr *multierror.Error
	for _, f := range r.Failures {
		merr = multierror.Append(merr, fmt.Errorf("%s %q: %w", f.Kind, f.Target, f.Err))
	}
	return merr.ErrorOrNil()
}

// Applier executes post-install bundles.
type Applier struct {
	runner         runner.Runner
	home           string
	allowElevation bool
}

// New creates an applier. home is the user's home directory for config file
// and profile expansion.
func New(r runner.Runner, home string, allowElevation bool) *Applier {
	return &Applier{runner: r, home: home, allowElevation: allowElevation}
}

// Apply runs every action of the bundle in the fixed category order:
// commands, config files, environment, services, groups. A failed action is
// recorded and the remaining actions still run.
func (a *Applier) Apply(ctx context.Context, pkgName string, bundle *model.PostInstall) Result {
	var res Result
	if bundle.Empty() {
		return res
	}

	for _, cmd := range bundle.Commands {
		if err := a.runCommand(ctx, cmd); err != nil {
			res.Failures = append(res.Failures, ActionFailure{Kind: ActionCommand, Target: cmd, Err: err})
			continue
		}
		res.Applied++
	}

	for _, path := range sortedKeys(bundle.ConfigFiles) {
		if err := a.writeConfigFile(path, bundle.ConfigFiles[path]); err != nil {
			res.Failures = append(res.Failures, ActionFailure{Kind: ActionConfigFile, Target: path, Err: err})
			continue
		}
		res.Applied++
	}

	for _, key := range sortedKeys(bundle.Environment) {
		if err := a.exportEnvironment(key, bundle.Environment[key]); err != nil {
			res.Failures = append(res.Failures, ActionFailure{Kind: ActionEnvironment, Target: key, Err: err})
			continue
		}
		res.Applied++
	}

	for _, svc := range bundle.EnableServices {
		if err := a.enableService(ctx, svc); err != nil {
			res.Failures = append(res.Failures, ActionFailure{Kind: ActionService, Target: svc, Err: err})
			continue
		}
		res.Applied++
	}

	for _, group := range bundle.UserGroups {
		if err := a.addUserToGroup(ctx, group); err != nil {
			res.Failures = append(res.Failures, ActionFailure{Kind: ActionUserGroup, Target: group, Err: err})
			continue
		}
		res.Applied++
	}

	for _, f := range res.Failures {
		logger.Warn("post-install action failed", logrus.Fields{
			"package": pkgName,
			"kind":    string(f.Kind),
			"target":  f.Target,
			"error":   f.Err.Error(),
		})
	}
	return res
}

// runCommand executes a post-install command line through the shell. Commands
// come from the package definition verbatim.
func (a *Applier) runCommand(ctx context.Context, cmd string) error {
	_, err := a.runner.Run(ctx, "sh", "-c", cmd)
	return err
}

// writeConfigFile writes content to path, expanding a leading tilde against
// the user's home. An existing file with identical content is left untouched.
func (a *Applier) writeConfigFile(path, content string) error {
	abs := a.expandHome(path)
	if existing, err := os.ReadFile(abs); err == nil && string(existing) == content {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(abs), fsutil.DirModeSecure); err != nil {
		return pkgerrors.Wrap(err, "could not create config directory")
	}
	return os.WriteFile(abs, []byte(content), fsutil.FileModeSecure)
}

// exportEnvironment ensures ~/.profile carries an export line for key. A
// stale export of the same variable is replaced in place; a matching line is
// left alone so repeated runs never duplicate entries.
func (a *Applier) exportEnvironment(key, value string) error {
	profilePath := filepath.Join(a.home, ".profile")
	line := fmt.Sprintf("export %s=%q", key, value)
	prefix := fmt.Sprintf("export %s=", key)

	data, err := os.ReadFile(profilePath)
	if err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(err, "could not read profile")
	}

	lines := []string{}
	if len(data) > 0 {
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	}
	replaced := false
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), prefix) {
			if strings.TrimSpace(l) == line {
				return nil
			}
			lines[i] = line
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, line)
	}
	out := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(profilePath, []byte(out), fsutil.FileModeSecure)
}

func (a *Applier) enableService(ctx context.Context, service string) error {
	args := []string{"systemctl", "enable", "--now", service}
	return a.runElevated(ctx, args)
}

func (a *Applier) addUserToGroup(ctx context.Context, group string) error {
	user := os.Getenv("USER")
	if user == "" {
		return fmt.Errorf("cannot determine current user")
	}
	return a.runElevated(ctx, []string{"usermod", "-a", "-G", group, user})
}

// runElevated prefixes argv with sudo -n when not running as root. Elevation
// must have been permitted by the caller.
func (a *Applier) runElevated(ctx context.Context, argv []string) error {
	if os.Geteuid() != 0 {
		if !a.allowElevation {
			return pkgerrors.Wrapf(pkgerrors.ErrElevationRequired, "%s", argv[0])
		}
		argv = append([]string{"sudo", "-n"}, argv...)
	}
	_, err := a.runner.Run(ctx, argv[0], argv[1:]...)
	return err
}

func (a *Applier) expandHome(path string) string {
	if path == "~" {
		return a.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(a.home, path[2:])
	}
	return path
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
