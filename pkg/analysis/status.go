package analysis

import "mercator-hq/chatlens/pkg/chat"

// StatusAnalyzer derives the dialog status from the last request record.
type StatusAnalyzer interface {
	// DialogStatus classifies the dialog. Earlier requests never affect it.
	DialogStatus(doc any) Status

	// DialogStatusDetails returns the status with the facts behind it.
	DialogStatusDetails(doc any) StatusDetails
}

// DialogStatusAnalyzer is the default StatusAnalyzer.
type DialogStatusAnalyzer struct {
	validator Validator
	requests  RequestAnalyzer
	texts     StatusTexts
}

// NewStatusAnalyzer creates a StatusAnalyzer using DefaultStatusTexts.
func NewStatusAnalyzer(validator Validator, requests RequestAnalyzer) *DialogStatusAnalyzer {
	return NewStatusAnalyzerWithTexts(validator, requests, DefaultStatusTexts)
}

// NewStatusAnalyzerWithTexts creates a StatusAnalyzer reporting texts.
func NewStatusAnalyzerWithTexts(validator Validator, requests RequestAnalyzer, texts StatusTexts) *DialogStatusAnalyzer {
	return &DialogStatusAnalyzer{
		validator: validator,
		requests:  requests,
		texts:     DefaultStatusTexts.Merge(texts),
	}
}

// DialogStatus implements StatusAnalyzer.
//
// The checks run in a fixed order and the first match wins:
//  1. no requests                          -> in_progress
//  2. last request absent                  -> in_progress
//  3. isCanceled is boolean true           -> canceled
//  4. followups is an empty sequence       -> completed
//  5. anything else                        -> in_progress
func (a *DialogStatusAnalyzer) DialogStatus(doc any) Status {
	if !a.validator.HasRequests(doc) {
		return StatusInProgress
	}

	last, ok := a.requests.LastRequest(doc)
	if !ok {
		return StatusInProgress
	}

	return statusOf(last)
}

func statusOf(last chat.Record) Status {
	if canceled(last) {
		return StatusCanceled
	}

	// A missing key, a non-sequence value and a non-empty sequence all mean
	// the assistant may still be working.
	if followups, ok := last.Sequence(chat.FieldFollowups); ok && len(followups) == 0 {
		return StatusCompleted
	}

	return StatusInProgress
}

// canceled uses strict equality: only a boolean true counts.
func canceled(last chat.Record) bool {
	v, ok := last.Bool(chat.FieldIsCanceled)
	return ok && v
}

// DialogStatusDetails implements StatusAnalyzer.
func (a *DialogStatusAnalyzer) DialogStatusDetails(doc any) StatusDetails {
	if !a.validator.HasRequests(doc) {
		return StatusDetails{
			Status:     StatusInProgress,
			StatusText: a.texts.NoRequests,
		}
	}

	status := a.DialogStatus(doc)
	details := StatusDetails{
		Status:     status,
		StatusText: a.texts.Text(status),
	}

	last, ok := a.requests.LastRequest(doc)
	if !ok {
		return details
	}

	details.HasResult = last.Has(chat.FieldResult) && !last.IsNull(chat.FieldResult)
	details.HasFollowups = last.Has(chat.FieldFollowups)
	details.IsCanceled = canceled(last)
	if id, ok := last.String(chat.FieldRequestID); ok {
		details.LastRequestID = id
	}

	return details
}

var _ StatusAnalyzer = (*DialogStatusAnalyzer)(nil)
