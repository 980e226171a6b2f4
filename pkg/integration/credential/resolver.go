package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// Resolver tries its sources in order and caches resolved values.
type Resolver struct {
	sources []Source
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTTL caches resolved values for ttl. Zero disables caching.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) { r.ttl = ttl }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver over sources.
func NewResolver(sources []Source, opts ...Option) *Resolver {
	r := &Resolver{
		sources: sources,
		now:     time.Now,
		logger:  slog.Default(),
		cache:   make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "integration.credential")
	return r
}

// Resolve returns the first value a source has for name. It returns nil
// without error when no source has one, and an error when a source fails
// for any other reason. An empty name resolves to nil.
func (r *Resolver) Resolve(ctx context.Context, name string) (*string, error) {
	if name == "" {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.cache[name]; ok && r.now().Before(e.expiresAt) {
		v := e.value
		return &v, nil
	}

	for _, src := range r.sources {
		value, err := src.Lookup(ctx, name)
		if errors.Is(err, ErrNotFound) {
			r.logger.DebugContext(ctx, "credential not in source", "source", src.Name(), "name", redactName(name))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve credential %s from %s: %w", redactName(name), src.Name(), err)
		}

		if r.ttl > 0 {
			r.cache[name] = cacheEntry{value: value, expiresAt: r.now().Add(r.ttl)}
		}
		r.logger.DebugContext(ctx, "credential resolved", "source", src.Name(), "name", redactName(name))
		return &value, nil
	}
	return nil, nil
}

// Forget drops every cached value.
func (r *Resolver) Forget() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]cacheEntry)
}

func redactName(name string) string {
	if len(name) <= 4 {
		return "***"
	}
	return name[:2] + "..." + name[len(name)-2:]
}
