package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archbox-dev/archbox/pkg/model"
	"github.com/archbox-dev/archbox/pkg/state"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var (
		category      string
		installedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search the catalog by name, description or tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 && category == "" {
				return fmt.Errorf("provide a query or --category")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			var results []*model.Package
			if len(args) == 1 {
				results = cat.Search(args[0])
			} else {
				results = cat.Packages()
			}
			if category != "" {
				results = filterCategory(results, category)
			}
			if installedOnly {
				store, err := state.Open(cfg.StatePath())
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				installed := store.Installed()
				filtered := results[:0]
				for _, p := range results {
					if _, ok := installed[p.Name]; ok {
						filtered = append(filtered, p)
					}
				}
				results = filtered
			}

			if len(results) == 0 {
				fmt.Println("no packages found")
				return nil
			}
			for _, p := range results {
				fmt.Printf("  %-28s %-10s %s\n", p.Name, p.Version, p.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show packages in this category")
	cmd.Flags().BoolVar(&installedOnly, "installed", false, "Only show installed packages")

	return cmd
}

func filterCategory(pkgs []*model.Package, category string) []*model.Package {
	var out []*model.Package
	for _, p := range pkgs {
		for _, c := range p.Categories {
			if c == category {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
