package cli

import (
	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	var (
		dryRun    bool
		noElevate bool
	)

	cmd := &cobra.Command{
		Use:   "remove PACKAGE...",
		Short: "Remove installed packages",
		Long: `Remove one or more installed packages. Script and source installs
cannot be removed automatically.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			eng, err := buildEngine(cfg, cat, !noElevate)
			if err != nil {
				return err
			}
			defer func() { _ = eng.Close() }()

			opts, err := runOptions(cfg, !noElevate)
			if err != nil {
				return err
			}
			opts.DryRun = dryRun

			report, err := eng.coord.Remove(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			printReport(report)
			return reportError(report)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print actions without executing")
	cmd.Flags().BoolVar(&noElevate, "no-elevate", false, "Never invoke sudo; fail actions that need it")

	return cmd
}
