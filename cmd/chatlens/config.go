package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate and inspect configuration",
	Long: `Validate and inspect chatlens configuration files.

Subcommands:
  validate  - Load and validate a configuration file
  show      - Print the effective configuration as YAML`,
	// The config commands report configuration problems themselves instead
	// of failing in the global pre-run hook.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Load and validate a configuration file",
	Long: `Load a configuration file, apply environment overrides and report
every validation problem. The file defaults to --config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration chatlens would run with: defaults, then the
--config file when it exists, then CHATLENS_* environment overrides.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := config.LoadConfigWithEnvOverrides(path); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("%s is invalid: %v", path, err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigOrDefaults(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return cli.NewCommandError("config", err)
	}
	return enc.Close()
}
