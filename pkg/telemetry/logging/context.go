package logging

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	// ActorKey is the context key for the acting user or service.
	ActorKey contextKey = "actor"

	// EnvironmentKey is the context key for the governance environment.
	EnvironmentKey contextKey = "environment"

	// OperationKey is the context key for the engine operation.
	OperationKey contextKey = "operation"
)

var contextKeys = []contextKey{ActorKey, EnvironmentKey, OperationKey}

// WithActor adds an actor identifier to the context.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// WithEnvironment adds a governance environment id to the context.
func WithEnvironment(ctx context.Context, env string) context.Context {
	return context.WithValue(ctx, EnvironmentKey, env)
}

// WithOperation adds an operation name to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, OperationKey, op)
}

// contextAttrs returns the logging fields stored on ctx.
func contextAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var attrs []slog.Attr
	for _, key := range contextKeys {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			attrs = append(attrs, slog.String(string(key), v))
		}
	}
	return attrs
}

// contextHandler adds context fields to each record.
type contextHandler struct {
	next slog.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := contextAttrs(ctx); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.next.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name)}
}
