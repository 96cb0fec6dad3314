package logging

import (
	"log/slog"
	"regexp"
	"strings"

	"mercator-hq/chatlens/pkg/config"
)

// Redactor masks personal data and secrets in log fields.
type Redactor struct {
	patterns []*redactPattern
}

type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternAPIKey      = "api_key"
	PatternEmail       = "email"
	PatternBearerToken = "bearer_token"
	PatternPassword    = "password"
)

var defaultPatterns = []struct {
	name        string
	regex       string
	replacement string
}{
	{PatternAPIKey, `(sk-[a-zA-Z0-9]+|gh[pousr]_[a-zA-Z0-9]+)`, "sk-***"},
	{PatternEmail, `[a-zA-Z0-9._%+-]+@([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`, "***@$1"},
	{PatternBearerToken, `Bearer\s+[a-zA-Z0-9\-._~+/]+=*`, "Bearer ***"},
	{PatternPassword, `(password|passwd|pwd)[:=]\s*[^\s]+`, "$1: ***"},
}

// NewRedactor creates a Redactor with the built-in patterns followed by
// customPatterns. Custom patterns that fail to compile are skipped; config
// validation reports them before a logger is built.
func NewRedactor(customPatterns []config.RedactPattern) *Redactor {
	r := &Redactor{}

	for _, p := range defaultPatterns {
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.name,
			regex:       regexp.MustCompile(p.regex),
			replacement: p.replacement,
		})
	}

	for _, p := range customPatterns {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		})
	}

	return r
}

// RedactString applies every pattern to value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, pattern := range r.patterns {
		value = pattern.regex.ReplaceAllString(value, pattern.replacement)
	}
	return value
}

// RedactAttr redacts a, descending into groups.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		attrs := v.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = r.RedactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindString:
		return slog.String(a.Key, r.redact(a.Key, v.String()))
	default:
		if isSecretKey(a.Key) {
			return slog.String(a.Key, "***")
		}
		return slog.Attr{Key: a.Key, Value: v}
	}
}

// redact masks values under secret keys whole, shortens values under
// identity keys and scans everything else with the patterns.
func (r *Redactor) redact(key, value string) string {
	switch {
	case isSecretKey(key):
		return "***"
	case isIdentityKey(key):
		return RedactUsername(value)
	default:
		return r.RedactString(value)
	}
}

func isSecretKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range []string{"password", "passwd", "secret", "token", "api_key", "apikey", "authorization"} {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func isIdentityKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range []string{"requester", "responder", "username", "user"} {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// RedactUsername keeps the first character of a username.
func RedactUsername(name string) string {
	if name == "" {
		return ""
	}
	if i := strings.Index(name, "@"); i >= 0 {
		return RedactEmail(name)
	}
	r := []rune(name)
	return string(r[0]) + "***"
}

// RedactEmail redacts an email address partially (shows first char and domain).
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	username := parts[0]
	domain := parts[1]

	if len(username) == 0 {
		return "***@" + domain
	}

	return string([]rune(username)[0]) + "***@" + domain
}
