package analysis

import "strings"

// StatusTexts holds the human-readable sentence reported for each status.
// NoRequests is used when the export has no requests at all.
type StatusTexts struct {
	NoRequests string `yaml:"no_requests" json:"no_requests"`
	Completed  string `yaml:"completed" json:"completed"`
	Canceled   string `yaml:"canceled" json:"canceled"`
	InProgress string `yaml:"in_progress" json:"in_progress"`
}

// DefaultStatusTexts are the English sentences used by the default analyzer.
var DefaultStatusTexts = StatusTexts{
	NoRequests: "No requests",
	Completed:  "Dialog completed successfully",
	Canceled:   "Dialog was canceled",
	InProgress: "Dialog is in progress",
}

var localizedStatusTexts = map[string]StatusTexts{
	"en": DefaultStatusTexts,
	"ru": {
		NoRequests: "Нет запросов",
		Completed:  "Диалог завершен успешно",
		Canceled:   "Диалог был отменен",
		InProgress: "Диалог в процессе выполнения",
	},
}

// StatusTextsFor returns the built-in sentences for locale ("en", "ru").
// Region suffixes are ignored, so "ru-RU" selects "ru".
func StatusTextsFor(locale string) (StatusTexts, bool) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	texts, ok := localizedStatusTexts[locale]
	return texts, ok
}

// Locales lists the locales StatusTextsFor knows about.
func Locales() []string {
	return []string{"en", "ru"}
}

// Text returns the sentence for status.
func (t StatusTexts) Text(status Status) string {
	switch status {
	case StatusCompleted:
		return t.Completed
	case StatusCanceled:
		return t.Canceled
	default:
		return t.InProgress
	}
}

// Merge returns t with every non-empty field of override applied.
func (t StatusTexts) Merge(override StatusTexts) StatusTexts {
	if override.NoRequests != "" {
		t.NoRequests = override.NoRequests
	}
	if override.Completed != "" {
		t.Completed = override.Completed
	}
	if override.Canceled != "" {
		t.Canceled = override.Canceled
	}
	if override.InProgress != "" {
		t.InProgress = override.InProgress
	}
	return t
}
