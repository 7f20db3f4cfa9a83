package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/archbox-dev/archbox/pkg/config"
	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/state"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		installedOnly bool
		category      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog or installed packages",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if installedOnly {
				return listInstalled(cfg)
			}

			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			pkgs := cat.Packages()
			if category != "" {
				pkgs = cat.ByCategory(category)
			}
			if len(pkgs) == 0 {
				fmt.Println("no packages found")
				return nil
			}
			for _, p := range pkgs {
				fmt.Printf("  %-28s %-10s %s\n", p.Name, p.Version, p.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&installedOnly, "installed", false, "Only list installed packages")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")

	return cmd
}

func listInstalled(cfg *config.Config) error {
	store, err := state.Open(cfg.StatePath())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	installed := store.Installed()
	if len(installed) == 0 {
		fmt.Println("no packages installed")
		return nil
	}
	for _, name := range sortedRecordNames(installed) {
		rec := installed[name]
		fmt.Printf("  %-28s %-10s %s\n", rec.Name, rec.Version, rec.Method)
	}
	return nil
}

func sortedRecordNames(records map[string]*model.InstallRecord) []string {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
