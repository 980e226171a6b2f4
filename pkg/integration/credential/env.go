package credential

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DefaultEnvPrefix is the prefix used when NewEnvSource gets an empty one.
const DefaultEnvPrefix = "SCRATCHROBIN_SECRET_"

// EnvSource reads credentials from environment variables. The name
// "openai-api-key" is read from SCRATCHROBIN_SECRET_OPENAI_API_KEY.
type EnvSource struct {
	Prefix string
}

// NewEnvSource creates an environment source with prefix, or
// DefaultEnvPrefix when prefix is empty.
func NewEnvSource(prefix string) *EnvSource {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return &EnvSource{Prefix: prefix}
}

// Lookup reads the variable for name. Empty variables count as missing.
func (s *EnvSource) Lookup(ctx context.Context, name string) (string, error) {
	key := s.Variable(name)
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%w: %s not set", ErrNotFound, key)
	}
	return value, nil
}

// Variable returns the environment variable name for a credential name.
func (s *EnvSource) Variable(name string) string {
	return s.Prefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Name returns "env".
func (s *EnvSource) Name() string { return "env" }
