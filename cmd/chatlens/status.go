package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/report"
)

var statusFlags struct {
	details bool
}

var statusCmd = &cobra.Command{
	Use:   "status <file|->...",
	Short: "Print the dialog status of chat exports",
	Long: `Print whether each dialog is completed, canceled or in progress.

The status is derived from the last request record only. With --details
the status sentence and the facts behind it are printed as well.

Examples:
  chatlens status chat.json
  chatlens status --details --format json chat.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStatus,
}

func init() {
	addStdinFormatFlag(statusCmd)
	statusCmd.Flags().BoolVar(&statusFlags.details, "details", false, "include the status sentence and supporting facts")
	rootCmd.AddCommand(statusCmd)
}

// statusResult is the status of one export.
type statusResult struct {
	Source  string                  `json:"source"`
	Status  analysis.Status         `json:"status"`
	Details *analysis.StatusDetails `json:"details,omitempty"`
}

func newStatusResult(rep *report.Report, details bool) statusResult {
	r := statusResult{Source: rep.Source, Status: rep.Status.Status}
	if details {
		d := rep.Status
		r.Details = &d
	}
	return r
}

// RenderText implements cli.TextRenderer.
func (r statusResult) RenderText(w io.Writer) error {
	if r.Details == nil {
		_, err := fmt.Fprintf(w, "%s: %s\n", r.Source, r.Status)
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s (%s) result=%t followups=%t canceled=%t last=%s\n",
		r.Source, r.Status, r.Details.StatusText,
		r.Details.HasResult, r.Details.HasFollowups, r.Details.IsCanceled,
		r.Details.LastRequestID)
	return err
}

// CSVHeader implements cli.CSVRecord.
func (r statusResult) CSVHeader() []string {
	if r.Details == nil {
		return []string{"source", "status"}
	}
	return []string{"source", "status", "status_text", "has_result", "has_followups", "is_canceled", "last_request_id"}
}

// CSVRow implements cli.CSVRecord.
func (r statusResult) CSVRow() []string {
	if r.Details == nil {
		return []string{r.Source, string(r.Status)}
	}
	return []string{
		r.Source,
		string(r.Status),
		r.Details.StatusText,
		strconv.FormatBool(r.Details.HasResult),
		strconv.FormatBool(r.Details.HasFollowups),
		strconv.FormatBool(r.Details.IsCanceled),
		r.Details.LastRequestID,
	}
}

type statusResults []statusResult

// RenderText implements cli.TextRenderer.
func (rs statusResults) RenderText(w io.Writer) error {
	for _, r := range rs {
		if err := r.RenderText(w); err != nil {
			return err
		}
	}
	return nil
}

// CSVHeader implements cli.CSVTable.
func (rs statusResults) CSVHeader() []string {
	if len(rs) == 0 {
		return statusResult{}.CSVHeader()
	}
	return rs[0].CSVHeader()
}

// CSVRows implements cli.CSVTable.
func (rs statusResults) CSVRows() [][]string {
	rows := make([][]string, len(rs))
	for i, r := range rs {
		rows[i] = r.CSVRow()
	}
	return rows
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reports, failed := analyzeArgs(cmd.Context(), a.processor(nil), cmd.InOrStdin(), args)
	reportFailures(cmd.ErrOrStderr(), failed)

	results := make(statusResults, len(reports))
	for i, rep := range reports {
		results[i] = newStatusResult(rep, statusFlags.details)
	}

	if len(results) > 0 {
		var data any = results
		if len(results) == 1 && len(args) == 1 {
			data = results[0]
		}
		if err := a.render(cmd, data); err != nil {
			return cli.NewCommandError("status", err)
		}
	}

	if len(failed) > 0 {
		return cli.NewCommandError("status", fmt.Errorf("%d of %d exports failed", len(failed), len(args)))
	}
	return nil
}
