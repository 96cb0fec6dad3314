// Package analysis derives simple facts from an AI assistant chat export.
//
// Given an already decoded export (any value: typically the result of
// json.Unmarshal into an `any`), the package answers:
//
//   - who the requester and responder are
//   - how many request records the dialog has
//   - whether the dialog is completed, canceled or still in progress
//
// Every function is total. Malformed, partial or missing documents degrade to
// absent participants, a zero count and the in_progress status; nothing
// panics and nothing returns an error.
//
// # Status inference
//
// Only the last request record is consulted:
//
//   - isCanceled == true (a real boolean)      canceled
//   - followups present and an empty list     completed
//   - anything else                           in_progress
//
// The canceled check runs first, so a canceled record with an empty followups
// list is still canceled.
//
// # Usage
//
//	var doc any
//	if err := json.Unmarshal(data, &doc); err != nil {
//		return err
//	}
//
//	a := analysis.New()
//	users := a.ChatUsers(doc)
//	details := a.DialogStatusDetails(doc)
//	fmt.Println(users.Requester, a.RequestsCount(doc), details.StatusText)
//
// Components can be replaced for testing or extension:
//
//	a := analysis.New(
//		analysis.WithValidator(strictValidator),
//		analysis.WithStatusTexts(analysis.StatusTexts{InProgress: "working"}),
//	)
//
// The free functions Analyze, GetChatUsers, GetRequestsCount, GetDialogStatus
// and GetDialogStatusDetails build a default Analyzer per call.
package analysis
