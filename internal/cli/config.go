package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/archbox-dev/archbox/pkg/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage the configuration",
	}
	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigPathCmd(),
		newConfigInitCmd(),
		newConfigSetCmd(),
		newConfigAddPathCmd(),
		newConfigRemovePathCmd(),
	)
	return cmd
}

func effectiveConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}
	return config.DefaultConfigPath()
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Println(effectiveConfigPath())
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := effectiveConfigPath()
			if err := config.DefaultConfig().SaveConfig(path); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value (aur-helper, log-level)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			switch args[0] {
			case "aur-helper":
				cfg.AURHelper = args[1]
			case "log-level":
				cfg.Settings.LogLevel = args[1]
			default:
				return fmt.Errorf("unknown config key %q", args[0])
			}
			return cfg.SaveConfig(effectiveConfigPath())
		},
	}
}

func newConfigAddPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-path PATH",
		Short: "Add a package definition search path",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for _, p := range cfg.PackagePaths {
				if p == args[0] {
					return nil
				}
			}
			cfg.PackagePaths = append(cfg.PackagePaths, args[0])
			return cfg.SaveConfig(effectiveConfigPath())
		},
	}
}

func newConfigRemovePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-path PATH",
		Short: "Remove a package definition search path",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			kept := cfg.PackagePaths[:0]
			for _, p := range cfg.PackagePaths {
				if p != args[0] {
					kept = append(kept, p)
				}
			}
			cfg.PackagePaths = kept
			return cfg.SaveConfig(effectiveConfigPath())
		},
	}
}
