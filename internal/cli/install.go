package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		force       bool
		dryRun      bool
		noElevate   bool
		concurrency int
		cacheDir    string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "install PACKAGE...",
		Short: "Install packages",
		Long: `Install one or more packages from the catalog. Dependencies are
resolved and installed first; a failure affects only the failing package and
its dependents.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args, installFlags{
				force:       force,
				dryRun:      dryRun,
				noElevate:   noElevate,
				concurrency: concurrency,
				cacheDir:    cacheDir,
				timeout:     timeout,
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinstall even when already installed")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve and print actions without executing")
	cmd.Flags().BoolVar(&noElevate, "no-elevate", false, "Never invoke sudo; fail actions that need it")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel downloads for prefetch (0=config)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Download cache directory (defaults to config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-package install timeout (0=config)")

	return cmd
}

type installFlags struct {
	force       bool
	dryRun      bool
	noElevate   bool
	concurrency int
	cacheDir    string
	timeout     time.Duration
}

func runInstall(cmd *cobra.Command, packages []string, flags installFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	eng, err := buildEngine(cfg, cat, !flags.noElevate)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	opts, err := runOptions(cfg, !flags.noElevate)
	if err != nil {
		return err
	}
	opts.Force = flags.force
	opts.DryRun = flags.dryRun
	if flags.cacheDir != "" {
		opts.CacheDir = flags.cacheDir
	}
	if flags.concurrency > 0 {
		opts.Concurrency = flags.concurrency
	}
	if flags.timeout > 0 {
		opts.Timeout = flags.timeout
	}

	report, err := eng.coord.Run(cmd.Context(), packages, opts)
	if err != nil {
		return err
	}
	printReport(report)
	return reportError(report)
}
