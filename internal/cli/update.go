package cli

import (
	"fmt"
	"sort"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"

	"github.com/archbox-dev/archbox/pkg/catalog"
	"github.com/archbox-dev/archbox/pkg/state"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	var (
		checkOnly bool
		noElevate bool
	)

	cmd := &cobra.Command{
		Use:   "update [PACKAGE...]",
		Short: "Update installed packages to their catalog versions",
		Long: `Compare installed packages against the catalog and reinstall any
whose catalog version is newer. With no arguments every installed package is
considered.`,
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

			outdated := outdatedPackages(cat, eng.store, args)
			if len(outdated) == 0 {
				fmt.Println("everything is up to date")
				return nil
			}

			if checkOnly {
				for _, o := range outdated {
					fmt.Printf("  %s %s -> %s\n", o.name, o.installed, o.available)
				}
				return nil
			}

			names := make([]string, len(outdated))
			for i, o := range outdated {
				names[i] = o.name
			}

			opts, err := runOptions(cfg, !noElevate)
			if err != nil {
				return err
			}
			opts.Force = true

			report, err := eng.coord.Run(cmd.Context(), names, opts)
			if err != nil {
				return err
			}
			printReport(report)
			return reportError(report)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only list outdated packages")
	cmd.Flags().BoolVar(&noElevate, "no-elevate", false, "Never invoke sudo; fail actions that need it")

	return cmd
}

type outdated struct {
	name      string
	installed string
	available string
}

// outdatedPackages returns the installed packages whose catalog version is
// newer. Versions that do not parse as semver fall back to string inequality.
func outdatedPackages(cat *catalog.Catalog, store *state.Store, only []string) []outdated {
	requested := make(map[string]bool, len(only))
	for _, name := range only {
		requested[name] = true
	}

	var out []outdated
	for name, rec := range store.Installed() {
		if len(requested) > 0 && !requested[name] {
			continue
		}
		pkg, ok := cat.Get(name)
		if !ok {
			continue
		}
		if versionNewer(rec.Version, pkg.Version) {
			out = append(out, outdated{name: name, installed: rec.Version, available: pkg.Version})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func versionNewer(installed, available string) bool {
	iv, ierr := goversion.NewVersion(installed)
	av, aerr := goversion.NewVersion(available)
	if ierr != nil || aerr != nil {
		return installed != available
	}
	return av.GreaterThan(iv)
}
