package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/loader"
	"mercator-hq/chatlens/pkg/processing"
	"mercator-hq/chatlens/pkg/report"
)

// stdinFormat is the --stdin-format of whichever command reads "-".
var stdinFormat string

// addStdinFormatFlag registers --stdin-format on a command that accepts "-".
func addStdinFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&stdinFormat, "stdin-format", string(loader.FormatJSON), "format of an export read from standard input (json or yaml)")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->...",
	Short: "Analyze chat exports",
	Long: `Analyze one or more chat exports and print a full report for each:
participants, request count and dialog status.

Use "-" to read an export from standard input.

Examples:
  # Analyze one export
  chatlens analyze chat.json

  # Several exports as JSON
  chatlens analyze --format json a.json b.json

  # From standard input
  cat chat.json | chatlens analyze -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	addStdinFormatFlag(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reports, failed := analyzeArgs(cmd.Context(), a.processor(nil), cmd.InOrStdin(), args)
	reportFailures(cmd.ErrOrStderr(), failed)

	if len(reports) > 0 {
		if err := renderAnalysis(a, cmd, reports); err != nil {
			return cli.NewCommandError("analyze", err)
		}
	}

	if len(failed) > 0 {
		return cli.NewCommandError("analyze", fmt.Errorf("%d of %d exports failed", len(failed), len(args)))
	}
	return nil
}

// analyzeArgs processes every argument in order. "-" reads stdin.
func analyzeArgs(ctx context.Context, p *processing.Processor, stdin io.Reader, args []string) (report.Reports, []error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		reports report.Reports
		failed  []error
	)
	for _, arg := range args {
		var (
			rep *report.Report
			err error
		)
		if arg == "-" {
			rep, err = p.ProcessReader(ctx, "-", stdin, loader.Format(stdinFormat))
		} else {
			rep, err = p.ProcessFile(ctx, arg)
		}
		if err != nil {
			failed = append(failed, err)
			continue
		}
		reports = append(reports, rep)
	}
	return reports, failed
}

// renderAnalysis prints one full report per export in text mode, and the
// report list in JSON and CSV.
func renderAnalysis(a *app, cmd *cobra.Command, reports report.Reports) error {
	f, err := a.formatter()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch f.(type) {
	case *cli.TextFormatter:
		for i, rep := range reports {
			if i > 0 {
				fmt.Fprintln(out)
			}
			if err := f.FormatTo(out, rep); err != nil {
				return err
			}
		}
		return nil
	default:
		if len(reports) == 1 {
			return f.FormatTo(out, reports[0])
		}
		return f.FormatTo(out, reports)
	}
}
