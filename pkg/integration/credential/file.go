package credential

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSource reads credentials from files named after the credential inside
// Dir, as mounted by container secret stores. Files must be regular and
// readable only by their owner (0600 or 0400).
type FileSource struct {
	Dir string
}

// NewFileSource creates a file source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Lookup reads Dir/name and trims surrounding whitespace.
func (s *FileSource) Lookup(ctx context.Context, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid credential name %q", name)
	}
	path := filepath.Join(s.Dir, name)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat credential file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("credential path is not a regular file: %s", path)
	}
	if perm := info.Mode().Perm(); perm != 0o600 && perm != 0o400 {
		return "", fmt.Errorf("insecure permissions on %s: %o (expected 0600 or 0400)", path, perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read credential file: %w", err)
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrNotFound, path)
	}
	return value, nil
}

// Name returns "file".
func (s *FileSource) Name() string { return "file" }
