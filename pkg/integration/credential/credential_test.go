package credential

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"scratchrobin-hq/advanced/internal/testutil"
)

func writeSecret(t *testing.T, dir, name, value string, perm os.FileMode) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(value), perm); err != nil {
		t.Fatalf("failed to write secret: %v", err)
	}
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("failed to chmod secret: %v", err)
	}
}

func TestEnvSource(t *testing.T) {
	src := NewEnvSource("")
	if got := src.Variable("openai-api-key"); got != "SCRATCHROBIN_SECRET_OPENAI_API_KEY" {
		t.Errorf("Variable() = %q", got)
	}

	t.Setenv("SCRATCHROBIN_SECRET_OPENAI_API_KEY", "sk-test")
	v, err := src.Lookup(context.Background(), "openai-api-key")
	testutil.AssertNoError(t, err)
	if v != "sk-test" {
		t.Errorf("Lookup() = %q, want sk-test", v)
	}

	if _, err := src.Lookup(context.Background(), "absent"); err == nil {
		t.Error("expected not found")
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	writeSecret(t, dir, "github-token", "ghp-test\n", 0o600)
	writeSecret(t, dir, "loose", "value", 0o644)
	src := NewFileSource(dir)
	ctx := context.Background()

	v, err := src.Lookup(ctx, "github-token")
	testutil.AssertNoError(t, err)
	if v != "ghp-test" {
		t.Errorf("Lookup() = %q, want ghp-test", v)
	}

	tests := []struct {
		name string
	}{
		{"loose"},
		{"../etc"},
		{"absent"},
		{""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := src.Lookup(ctx, tt.name); err == nil {
				t.Errorf("Lookup(%q) succeeded, want error", tt.name)
			}
		})
	}
}

func TestResolver_Order(t *testing.T) {
	dir := t.TempDir()
	writeSecret(t, dir, "jira-token", "from-file", 0o600)
	t.Setenv("SCRATCHROBIN_SECRET_JIRA_TOKEN", "from-env")

	r := NewResolver([]Source{NewEnvSource(""), NewFileSource(dir)})
	v, err := r.Resolve(context.Background(), "jira-token")
	testutil.AssertNoError(t, err)
	if v == nil || *v != "from-env" {
		t.Errorf("Resolve() = %v, want from-env", v)
	}

	r = NewResolver([]Source{NewFileSource(dir), NewEnvSource("")})
	v, err = r.Resolve(context.Background(), "jira-token")
	testutil.AssertNoError(t, err)
	if v == nil || *v != "from-file" {
		t.Errorf("Resolve() = %v, want from-file", v)
	}
}

func TestResolver_Missing(t *testing.T) {
	r := NewResolver([]Source{NewEnvSource(""), NewFileSource(t.TempDir())})

	v, err := r.Resolve(context.Background(), "nobody-has-this")
	testutil.AssertNoError(t, err)
	if v != nil {
		t.Errorf("Resolve() = %q, want nil", *v)
	}

	v, err = r.Resolve(context.Background(), "")
	testutil.AssertNoError(t, err)
	if v != nil {
		t.Error("empty name should resolve to nil")
	}
}

func TestResolver_SourceFailure(t *testing.T) {
	dir := t.TempDir()
	writeSecret(t, dir, "loose", "value", 0o644)

	r := NewResolver([]Source{NewFileSource(dir)})
	if _, err := r.Resolve(context.Background(), "loose"); err == nil {
		t.Error("expected error for insecure permissions")
	}
}

func TestResolver_Cache(t *testing.T) {
	t.Setenv("SCRATCHROBIN_SECRET_ROTATING", "v1")

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	r := NewResolver([]Source{NewEnvSource("")}, WithTTL(time.Minute))
	r.now = func() time.Time { return now }
	ctx := context.Background()

	if v, _ := r.Resolve(ctx, "rotating"); v == nil || *v != "v1" {
		t.Fatalf("Resolve() = %v, want v1", v)
	}

	t.Setenv("SCRATCHROBIN_SECRET_ROTATING", "v2")
	if v, _ := r.Resolve(ctx, "rotating"); *v != "v1" {
		t.Errorf("cached Resolve() = %q, want v1", *v)
	}

	now = now.Add(2 * time.Minute)
	if v, _ := r.Resolve(ctx, "rotating"); *v != "v2" {
		t.Errorf("expired Resolve() = %q, want v2", *v)
	}

	t.Setenv("SCRATCHROBIN_SECRET_ROTATING", "v3")
	r.Forget()
	if v, _ := r.Resolve(ctx, "rotating"); *v != "v3" {
		t.Errorf("Resolve() after Forget = %q, want v3", *v)
	}
}

func TestRedactName(t *testing.T) {
	if got := redactName("openai-api-key"); got != "op...ey" {
		t.Errorf("redactName() = %q", got)
	}
	if got := redactName("key"); got != "***" {
		t.Errorf("redactName() = %q", got)
	}
}
