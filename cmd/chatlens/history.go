package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/cli"
	"mercator-hq/chatlens/pkg/config"
	"mercator-hq/chatlens/pkg/history"
	"mercator-hq/chatlens/pkg/history/retention"
	"mercator-hq/chatlens/pkg/report"
)

// historyOptions holds the history subcommand flags.
type historyOptions struct {
	source     string
	status     string
	requester  string
	since      string
	until      string
	limit      int
	offset     int
	order      string
	days       int
	maxRecords int64
}

var historyFlags historyOptions

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query and prune stored reports",
	Long: `Query and prune the report history.

Reports are stored when history.enabled is set. The history commands open
the configured store even when writing is disabled.

Subcommands:
  query   - List stored reports with filters
  latest  - Show the most recent report of one export
  prune   - Apply the retention policy once

Examples:
  # Dialogs still in progress during the last day
  chatlens history query --status in_progress --since 24h

  # Every report of one export, oldest first
  chatlens history query --source chat.json --order asc

  # Keep 30 days of reports
  chatlens history prune --days 30`,
}

var historyQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "List stored reports",
	Args:  cobra.NoArgs,
	RunE:  runHistoryQuery,
}

var historyLatestCmd = &cobra.Command{
	Use:   "latest <source>",
	Short: "Show the most recent report of an export",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryLatest,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete reports beyond the retention policy",
	Long: `Delete reports older than history.retention.days, then the oldest
reports beyond history.retention.max_records. Flags override the configured
values for this run.`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func init() {
	historyQueryCmd.Flags().StringVar(&historyFlags.source, "source", "", "filter by export path")
	historyQueryCmd.Flags().StringVar(&historyFlags.status, "status", "", "filter by status (completed, canceled, in_progress)")
	historyQueryCmd.Flags().StringVar(&historyFlags.requester, "requester", "", "filter by requester username")
	historyQueryCmd.Flags().StringVar(&historyFlags.since, "since", "", "earliest analysis time (RFC3339 or a duration such as 24h)")
	historyQueryCmd.Flags().StringVar(&historyFlags.until, "until", "", "latest analysis time (RFC3339 or a duration such as 1h)")
	historyQueryCmd.Flags().IntVar(&historyFlags.limit, "limit", 100, "maximum number of reports (0 for all)")
	historyQueryCmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "number of reports to skip")
	historyQueryCmd.Flags().StringVar(&historyFlags.order, "order", history.SortDesc, "sort order by analysis time (asc or desc)")

	historyPruneCmd.Flags().IntVar(&historyFlags.days, "days", 0, "override history.retention.days")
	historyPruneCmd.Flags().Int64Var(&historyFlags.maxRecords, "max-records", 0, "override history.retention.max_records")

	historyCmd.AddCommand(historyQueryCmd)
	historyCmd.AddCommand(historyLatestCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

// openHistory opens the configured store regardless of history.enabled.
func openHistory() (*app, history.Storage, error) {
	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	if a.storage != nil {
		return a, a.storage, nil
	}

	storage, err := history.NewStorage(a.cfg.History)
	if err != nil {
		return nil, nil, cli.NewCommandError("history", fmt.Errorf("failed to open history: %w", err))
	}
	a.storage = storage
	return a, storage, nil
}

// parseTimeFlag accepts RFC3339 timestamps and durations before now.
func parseTimeFlag(name, value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return now.Add(-d), nil
	}
	return time.Time{}, cli.NewConfigError(name, fmt.Sprintf("invalid time %q: use RFC3339 or a duration such as 24h", value))
}

func buildHistoryQuery(now time.Time) (*history.Query, error) {
	since, err := parseTimeFlag("since", historyFlags.since, now)
	if err != nil {
		return nil, err
	}
	until, err := parseTimeFlag("until", historyFlags.until, now)
	if err != nil {
		return nil, err
	}

	query := &history.Query{
		Source:    historyFlags.source,
		Status:    analysis.Status(historyFlags.status),
		Requester: historyFlags.requester,
		Since:     since,
		Until:     until,
		Limit:     historyFlags.limit,
		Offset:    historyFlags.offset,
		SortOrder: historyFlags.order,
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return query, nil
}

// historyPage is a page of stored reports with the total match count.
type historyPage struct {
	Total   int64          `json:"total"`
	Reports report.Reports `json:"reports"`
}

// RenderText implements cli.TextRenderer.
func (p historyPage) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Total records: %s\n\n", humanize.Comma(p.Total)); err != nil {
		return err
	}
	if len(p.Reports) == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	for _, r := range p.Reports {
		if _, err := fmt.Fprintf(w, "%-20s %-12s %s\n", humanize.Time(r.AnalyzedAt), r.Status.Status, r.Source); err != nil {
			return err
		}
	}
	return nil
}

// CSVHeader implements cli.CSVTable.
func (p historyPage) CSVHeader() []string { return p.Reports.CSVHeader() }

// CSVRows implements cli.CSVTable.
func (p historyPage) CSVRows() [][]string { return p.Reports.CSVRows() }

func runHistoryQuery(cmd *cobra.Command, args []string) error {
	query, err := buildHistoryQuery(time.Now())
	if err != nil {
		return err
	}

	a, storage, err := openHistory()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	records, err := storage.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("query failed: %w", err))
	}
	total, err := storage.Count(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("count failed: %w", err))
	}

	page := historyPage{Total: total, Reports: make(report.Reports, len(records))}
	for i, rec := range records {
		page.Reports[i] = rec.Report()
	}

	return a.render(cmd, page)
}

func runHistoryLatest(cmd *cobra.Command, args []string) error {
	a, storage, err := openHistory()
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := storage.Latest(cmd.Context(), args[0])
	if errors.Is(err, history.ErrNotFound) {
		return cli.NewCommandError("history", fmt.Errorf("no reports stored for %s", args[0]))
	}
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	return a.render(cmd, rec.Report())
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	a, storage, err := openHistory()
	if err != nil {
		return err
	}
	defer a.Close()

	retentionCfg := a.cfg.History.Retention
	if historyFlags.days > 0 {
		retentionCfg.Days = historyFlags.days
	}
	if historyFlags.maxRecords > 0 {
		retentionCfg.MaxRecords = historyFlags.maxRecords
	}

	deleted, err := pruneHistory(cmd, storage, retentionCfg)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %s\n", english.Plural(int(deleted), "report", ""))
	return nil
}

func pruneHistory(cmd *cobra.Command, storage history.Storage, cfg config.RetentionConfig) (int64, error) {
	return retention.NewPruner(storage, retention.ConfigFrom(cfg)).Prune(cmd.Context())
}
