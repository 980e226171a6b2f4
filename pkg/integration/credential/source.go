package credential

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Source that has no value for a name.
var ErrNotFound = errors.New("credential not found")

// Source looks credentials up by name.
type Source interface {
	// Lookup returns the value for name, or an error wrapping ErrNotFound.
	Lookup(ctx context.Context, name string) (string, error)

	// Name identifies the source in logs ("env", "file").
	Name() string
}
