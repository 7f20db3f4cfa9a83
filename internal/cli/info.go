package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/state"
)

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info PACKAGE",
		Short: "Show package details and installation history",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			name := args[0]
			pkg, ok := cat.Get(name)
			if !ok {
				return errors.Wrapf(errors.ErrUnknownPackage, "%q", name)
			}

			fmt.Printf("Name:        %s\n", pkg.Name)
			fmt.Printf("Version:     %s\n", pkg.Version)
			fmt.Printf("Method:      %s\n", pkg.Installation.Method)
			fmt.Printf("Description: %s\n", pkg.Description)
			if pkg.LongDescription != "" {
				fmt.Printf("\n%s\n\n", pkg.LongDescription)
			}
			if len(pkg.Categories) > 0 {
				fmt.Printf("Categories:  %s\n", strings.Join(pkg.Categories, ", "))
			}
			if len(pkg.Dependencies) > 0 {
				fmt.Println("Dependencies:")
				for _, dep := range pkg.Dependencies {
					suffix := ""
					if dep.Optional {
						suffix = " (optional)"
					}
					fmt.Printf("  %s [%s]%s\n", dep.Name, dep.Type(), suffix)
				}
			}
			if pkg.Metadata.Homepage != "" {
				fmt.Printf("Homepage:    %s\n", pkg.Metadata.Homepage)
			}
			if pkg.Metadata.License != "" {
				fmt.Printf("License:     %s\n", pkg.Metadata.License)
			}

			store, err := state.Open(cfg.StatePath())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			history := store.History(name)
			if len(history) == 0 {
				fmt.Println("Status:      not installed")
				return nil
			}
			latest := history[len(history)-1]
			if latest.Installed() {
				fmt.Printf("Status:      installed (%s)\n", latest.Version)
			} else {
				fmt.Printf("Status:      %s\n", latest.Outcome)
			}
			fmt.Println("History:")
			for _, rec := range history {
				line := fmt.Sprintf("  %s  %-8s %s", rec.InstalledAt.Format("2006-01-02 15:04"), rec.Outcome, rec.Version)
				if rec.Reason != "" {
					line += " (" + rec.Reason + ")"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
