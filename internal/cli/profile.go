package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/archbox-dev/archbox/pkg/logger"
	"github.com/archbox-dev/archbox/pkg/runner"
)

// NewProfileCmd creates the profile command group.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage and install package profiles",
	}
	cmd.AddCommand(
		newProfileListCmd(),
		newProfileShowCmd(),
		newProfileInstallCmd(),
	)
	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available profiles and groups",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			profiles, err := loadProfiles(cfg)
			if err != nil {
				return err
			}

			fmt.Println("Profiles:")
			for _, name := range profiles.ProfileNames() {
				p, _ := profiles.Profile(name)
				fmt.Printf("  %-18s %s\n", name, p.Description)
			}
			fmt.Println("Groups:")
			for _, name := range profiles.GroupNames() {
				g, _ := profiles.Group(name)
				fmt.Printf("  %-18s %s\n", name, g.Description)
			}
			return nil
		},
	}
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show PROFILE",
		Short: "Show the packages a profile resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			profiles, err := loadProfiles(cfg)
			if err != nil {
				return err
			}

			pkgs, err := profiles.ResolveProfile(args[0])
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(pkgs, "\n"))
			return nil
		},
	}
}

func newProfileInstallCmd() *cobra.Command {
	var (
		dryRun    bool
		noElevate bool
	)

	cmd := &cobra.Command{
		Use:   "install PROFILE",
		Short: "Install every package of a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			profiles, err := loadProfiles(cfg)
			if err != nil {
				return err
			}
			packages, err := profiles.ResolveProfile(args[0])
			if err != nil {
				return err
			}
			if err := runInstall(cmd, packages, installFlags{dryRun: dryRun, noElevate: noElevate}); err != nil {
				return err
			}

			// The profile's own post-install script runs only after every
			// package succeeded, and never during a dry run.
			p, _ := profiles.Profile(args[0])
			if p.PostInstall != "" && !dryRun {
				r := runner.NewExecRunner()
				if _, err := r.Run(cmd.Context(), "sh", "-c", p.PostInstall); err != nil {
					logger.Warn("profile post-install script failed", logrus.Fields{
						"profile": args[0],
						"error":   err.Error(),
					})
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve and print actions without executing")
	cmd.Flags().BoolVar(&noElevate, "no-elevate", false, "Never invoke sudo; fail actions that need it")

	return cmd
}
