package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/history"
	"mercator-hq/chatlens/pkg/loader"
)

var completionGenerators = map[string]func(cmd *cobra.Command, w io.Writer) error{
	"bash":       func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) },
	"zsh":        (*cobra.Command).GenZshCompletion,
	"fish":       func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) },
	"powershell": (*cobra.Command).GenPowerShellCompletionWithDesc,
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a completion script for chatlens. Besides commands and flags it
completes --format, --stdin-format, --status and --order values and export
files for the analysis commands.

  bash:       source <(chatlens completion bash)
  zsh:        chatlens completion zsh > "${fpath[1]}/_chatlens"
  fish:       chatlens completion fish | source
  powershell: chatlens completion powershell | Out-String | Invoke-Expression`,
	ValidArgs:         []string{"bash", "zsh", "fish", "powershell"},
	Args:              cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, ok := completionGenerators[args[0]]
		if !ok {
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
		return gen(rootCmd, cmd.OutOrStdout())
	},
}

type completionFunc = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// fixedValues completes a flag from a closed set.
func fixedValues(values ...string) completionFunc {
	return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
}

// exportFiles completes paths with the default export extensions.
func exportFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// registerCompletions runs after every command's init has defined its flags.
func registerCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("format",
		fixedValues(string(cli.FormatText), string(cli.FormatJSON), string(cli.FormatCSV)))
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})
	_ = historyQueryCmd.RegisterFlagCompletionFunc("status",
		fixedValues(string(analysis.StatusCompleted), string(analysis.StatusCanceled), string(analysis.StatusInProgress)))
	_ = historyQueryCmd.RegisterFlagCompletionFunc("order", fixedValues(history.SortAsc, history.SortDesc))

	for _, c := range []*cobra.Command{analyzeCmd, statusCmd, usersCmd} {
		_ = c.RegisterFlagCompletionFunc("stdin-format",
			fixedValues(string(loader.FormatJSON), string(loader.FormatYAML)))
		c.ValidArgsFunction = exportFiles
	}
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
