// Package logging provides structured logging for chatlens on top of
// log/slog.
//
// Every record passes through one handler that:
//   - adds the source path, analysis id and component stored in the context
//   - adds trace_id and span_id when the context holds an OpenTelemetry span
//   - optionally redacts usernames, emails and secrets, including inside groups
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:     "info",
//	    Format:    "json",
//	    RedactPII: true,
//	})
//
//	ctx = logging.WithSource(ctx, "exports/chat.json")
//	logger.InfoContext(ctx, "analyzed export",
//	    "requester", "alice@example.com", // logged as a***@example.com
//	    "status", "completed",
//	)
//
// The CLI installs Logger.Slog() with slog.SetDefault, so packages that log
// through slog.Default() get the same fields and redaction.
package logging
