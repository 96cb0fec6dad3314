/*
Package cli provides command-line interface utilities for chatlens.

The cli package includes output formatters, progress reporters, and common CLI
helpers used by the chatlens command.

Output Formatting:

Results can be rendered as text, JSON or CSV. Values control their own text
form by implementing TextRenderer and their CSV form by implementing CSVRecord
or CSVTable:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Progress Reporting:

Directory scans report progress on stderr so stdout stays machine readable:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(int64(len(files)))
	for range files {
		progress.Increment()
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
