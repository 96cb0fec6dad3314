// Chatlens reports who took part in an AI assistant chat export, how many
// requests it holds and whether the dialog is completed, canceled or still in
// progress.
//
// Usage:
//
//	# Full report for one export
//	chatlens analyze chat.json
//
//	# Status only, as JSON
//	chatlens status --format json chat.json
//
//	# Analyze every export under a directory
//	chatlens scan ./exports
//
//	# Re-analyze an export whenever the assistant rewrites it
//	chatlens watch chat.json
//
//	# Query stored reports
//	chatlens history query --status in_progress
package main

func main() {
	Execute()
}
