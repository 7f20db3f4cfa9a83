// Package cli implements the archbox commands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/archbox-dev/archbox/pkg/catalog"
	"github.com/archbox-dev/archbox/pkg/config"
	"github.com/archbox-dev/archbox/pkg/download"
	"github.com/archbox-dev/archbox/pkg/hook"
	"github.com/archbox-dev/archbox/pkg/installer"
	"github.com/archbox-dev/archbox/pkg/logger"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/orchestrator"
	"github.com/archbox-dev/archbox/pkg/postinstall"
	"github.com/archbox-dev/archbox/pkg/profile"
	"github.com/archbox-dev/archbox/pkg/resolve"
	"github.com/archbox-dev/archbox/pkg/runner"
	"github.com/archbox-dev/archbox/pkg/state"
)

// Shared flag variables, set by the root command.
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
)

func loadConfig() (*config.Config, error) {
	path := ""
	if ConfigPath != nil {
		path = *ConfigPath
	}
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	level := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	noColor := cfg.Settings.NoColor
	if NoColor != nil && *NoColor {
		noColor = true
	}
	logger.InitLogger(level, noColor)
	return cfg, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	return catalog.NewLoader().LoadCatalog(cfg.PackagePaths)
}

func loadProfiles(cfg *config.Config) (*profile.Manager, error) {
	m := profile.NewManager()
	if err := m.LoadFile(cfg.ProfilePath()); err != nil {
		return nil, err
	}
	return m, nil
}

// engine bundles everything a run needs. Close releases the state lock.
type engine struct {
	coord *orchestrator.Coordinator
	store *state.Store
}

func (e *engine) Close() error {
	return e.store.Close()
}

func buildEngine(cfg *config.Config, cat *catalog.Catalog, allowElevation bool) (*engine, error) {
	store, err := state.Open(cfg.StatePath())
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	r := runner.NewExecRunner()
	dl := download.NewManager(cfg.Settings.HTTPTimeout, "")
	hooks := hook.NewExecutor()
	if err := hook.LoadDir(hooks, cfg.HooksDir()); err != nil {
		_ = store.Close()
		return nil, err
	}

	events := orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		if e.Name != "" {
			fmt.Printf("%s: %s\n", e.Phase, e.Msg)
			return
		}
		if e.Msg != "" {
			fmt.Printf("%s: %s\n", e.Phase, e.Msg)
		}
	}}

	coord := orchestrator.New(
		cat,
		resolve.New(cat),
		installer.NewDispatcher(r, dl),
		store,
		postinstall.New(r, home, allowElevation),
		dl,
		hooks,
		events,
	)
	return &engine{coord: coord, store: store}, nil
}

func runOptions(cfg *config.Config, allowElevation bool) (orchestrator.RunOptions, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return orchestrator.RunOptions{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	return orchestrator.RunOptions{
		NonInteractive: true,
		AllowElevation: allowElevation,
		Timeout:        cfg.Settings.InstallTimeout,
		AURHelper:      cfg.AURHelper,
		HomeDir:        home,
		TempDir:        cfg.Settings.TempDir,
		CacheDir:       cfg.Settings.CacheDir,
		Concurrency:    cfg.Settings.MaxConcurrentDownloads,
	}, nil
}

func printReport(report *model.RunReport) {
	for _, res := range report.Results {
		switch res.State {
		case model.StateInstalled:
			fmt.Printf("  installed  %s %s\n", res.Name, res.Version)
		case model.StateRemoved:
			fmt.Printf("  removed    %s\n", res.Name)
		case model.StateSkipped:
			fmt.Printf("  skipped    %s (%s)\n", res.Name, res.Reason)
		case model.StateFailed:
			fmt.Printf("  failed     %s: %s\n", res.Name, res.Reason)
		}
		for _, w := range res.Warnings {
			fmt.Printf("             warning: %s\n", w)
		}
	}
	if d := report.Finished.Sub(report.Started); d > time.Second {
		fmt.Printf("finished in %s\n", d.Round(time.Second))
	}
}

// reportError turns a report with failures into a non-nil error so the
// process exits non-zero.
func reportError(report *model.RunReport) error {
	if !report.Failed() {
		return nil
	}
	failed := 0
	for _, res := range report.Results {
		if res.State == model.StateFailed {
			failed++
		}
	}
	return fmt.Errorf("%d package(s) failed", failed)
}
