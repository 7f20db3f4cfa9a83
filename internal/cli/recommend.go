package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archbox-dev/archbox/pkg/state"
)

// NewRecommendCmd creates the recommend command.
func NewRecommendCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest packages related to what is already installed",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			profiles, err := loadProfiles(cfg)
			if err != nil {
				return err
			}
			store, err := state.Open(cfg.StatePath())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			recs := profiles.Recommend(cat, store.Installed(), limit)
			if len(recs) == 0 {
				fmt.Println("no recommendations")
				return nil
			}
			for _, p := range recs {
				fmt.Printf("  %-28s %s\n", p.Name, p.Description)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of suggestions")

	return cmd
}
