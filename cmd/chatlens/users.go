package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/chatlens/pkg/analysis"
	"mercator-hq/chatlens/pkg/cli"
)

var usersCmd = &cobra.Command{
	Use:   "users <file|->",
	Short: "Print the requester and responder of a chat export",
	Long: `Print the requester and responder usernames of a chat export.
Missing participants print as "(unknown)" in text output and null in JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runUsers,
}

func init() {
	addStdinFormatFlag(usersCmd)
	rootCmd.AddCommand(usersCmd)
}

// usersResult wraps the participants for text and CSV output. JSON output
// is the participants object itself.
type usersResult struct {
	analysis.ChatUsers
}

// RenderText implements cli.TextRenderer.
func (u usersResult) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Requester: %s\nResponder: %s\n", orUnknown(u.Requester), orUnknown(u.Responder))
	return err
}

// CSVHeader implements cli.CSVRecord.
func (u usersResult) CSVHeader() []string { return []string{"requester", "responder"} }

// CSVRow implements cli.CSVRecord.
func (u usersResult) CSVRow() []string { return []string{u.Requester, u.Responder} }

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}

func runUsers(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reports, failed := analyzeArgs(cmd.Context(), a.processor(nil), cmd.InOrStdin(), args)
	if len(failed) > 0 {
		return cli.NewCommandError("users", failed[0])
	}

	return a.render(cmd, usersResult{ChatUsers: reports[0].Users})
}
