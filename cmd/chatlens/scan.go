package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/report"
)

var scanFlags struct {
	quiet  bool
	strict bool
}

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Analyze every chat export under a directory",
	Long: `Recursively analyze every chat export under a directory.

Files are matched by loader.extensions, hidden files are skipped when
loader.skip_hidden is set, and up to processing.workers files are analyzed
concurrently. Files that fail to load are reported and do not stop the scan.

Examples:
  chatlens scan ./exports
  chatlens scan --format csv ./exports > reports.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanFlags.quiet, "quiet", "q", false, "do not print progress")
	scanCmd.Flags().BoolVar(&scanFlags.strict, "strict", false, "exit non-zero when any export fails")
	rootCmd.AddCommand(scanCmd)
}

// scanResult is the JSON form of a scan.
type scanResult struct {
	Reports report.Reports `json:"reports"`
	Summary report.Summary `json:"summary"`
}

// RenderText implements cli.TextRenderer.
func (r scanResult) RenderText(w io.Writer) error {
	return r.Reports.RenderText(w)
}

// CSVHeader implements cli.CSVTable.
func (r scanResult) CSVHeader() []string { return r.Reports.CSVHeader() }

// CSVRows implements cli.CSVTable.
func (r scanResult) CSVRows() [][]string { return r.Reports.CSVRows() }

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var progress cli.ProgressReporter = cli.NoopProgress{}
	if !scanFlags.quiet {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr())
	}

	ctx := cli.SetupSignalHandler()
	reports, failed := a.processor(progress).ProcessDir(ctx, args[0])
	reportFailures(cmd.ErrOrStderr(), failed)

	if len(reports) == 0 && len(failed) > 0 {
		return cli.NewCommandError("scan", fmt.Errorf("no exports analyzed under %s", args[0]))
	}

	result := scanResult{Reports: reports, Summary: report.Summarize(reports)}
	if result.Reports == nil {
		result.Reports = report.Reports{}
	}
	if err := a.render(cmd, result); err != nil {
		return cli.NewCommandError("scan", err)
	}

	if scanFlags.strict && len(failed) > 0 {
		return cli.NewCommandError("scan", fmt.Errorf("%d exports failed", len(failed)))
	}
	return nil
}
