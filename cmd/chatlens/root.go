package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/config"
	"mercator-hq/chatlens/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile      string
	envFile      string
	verbose      bool
	outputFormat string

	// logger is installed by the persistent pre-run hook.
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chatlens",
	Short: "chatlens - status and participants of AI assistant chat exports",
	Long: `chatlens inspects chat exports produced by AI coding assistants.

For every export it reports:
  - the requester and responder usernames
  - the number of request records
  - whether the dialog is completed, canceled or still in progress

Reports can be stored in a local history database, and watch mode
re-analyzes an export every time the assistant rewrites it.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
}

// Execute runs the root command. Configuration problems exit with status 2,
// any other failure with 1.
func Execute() {
	registerCompletions()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "chatlens.yaml", "config file path (defaults are used when it does not exist)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with CHATLENS_* overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format: text, json or csv (default from report.format)")
}

// initRuntime loads the dotenv file and configuration, then installs the
// configured logger as the slog default.
func initRuntime(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cli.NewConfigError("env-file", fmt.Sprintf("failed to load %s: %v", envFile, err))
		}
	}

	if err := config.ReloadConfig(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	if verbose {
		logCfg.Level = "debug"
	}
	logCfg.Writer = cmd.ErrOrStderr()

	l, err := logging.New(logCfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	logger = l
	slog.SetDefault(l.Slog())

	return nil
}
