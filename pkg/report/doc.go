// Package report turns an analyzed chat export into a Report that the CLI
// renders as text, JSON or CSV and the history store persists.
//
//	r := report.Build(analysis.New(), "chat.json", doc, time.Now())
//	cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, r)
//
// Reports and Summarize cover directory scans.
package report
