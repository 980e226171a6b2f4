package logging

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"scratchrobin-hq/advanced/pkg/masking"
)

// sensitiveKeys are matched as substrings of lowercased attribute keys.
var sensitiveKeys = []string{
	"credential",
	"api_key", "apikey",
	"token",
	"password", "passwd",
	"secret",
	"authorization",
	"private_key",
}

var valuePatterns = []struct {
	regex       *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`Bearer\s+[a-zA-Z0-9\-._~+/]+=*`), "Bearer " + masking.RedactedValue},
	{regexp.MustCompile(`\bsk-[a-zA-Z0-9_\-]+`), "sk-" + masking.RedactedValue},
}

// IsSensitiveKey reports whether an attribute key names secret material.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// RedactString removes bearer tokens and API keys embedded in a string.
func RedactString(value string) string {
	for _, p := range valuePatterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// RedactingHandler wraps a handler and masks secret attribute values.
type RedactingHandler struct {
	next slog.Handler
}

// NewRedactingHandler wraps next.
func NewRedactingHandler(next slog.Handler) *RedactingHandler {
	return &RedactingHandler{next: next}
}

// Enabled implements slog.Handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, RedactString(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redactAttr(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

// WithAttrs implements slog.Handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(redacted)}
}

// WithGroup implements slog.Handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		redacted := make([]any, len(group))
		for i, ga := range group {
			redacted[i] = redactAttr(ga)
		}
		return slog.Group(a.Key, redacted...)
	}

	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, masking.Redact(a.Value.String()))
	}
	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, RedactString(a.Value.String()))
	}
	return a
}
