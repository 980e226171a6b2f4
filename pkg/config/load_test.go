package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "advanced.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  logging:
    level: "debug"
    format: "text"
    redact_secrets: false

reliability:
  max_attempts: 5
  backoff: "250ms"

masking:
  profiles:
    customer_pii:
      email: redact
      ssn: prefix_mask

review:
  environments:
    production:
      allowed_roles: ["dba", "release_manager"]
      approval_required: true
      min_reviewers: 2

surfaces:
  preview_profiles: ["preview", "nightly"]

audit:
  backend: "sqlite"
  sqlite:
    path: "./audit.db"
    driver: "sqlite3"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("unexpected logging config: %+v", cfg.Telemetry.Logging)
	}
	if cfg.Telemetry.Logging.RedactSecrets {
		t.Error("expected redact_secrets false from file")
	}
	if cfg.Reliability.MaxAttempts != 5 || cfg.Reliability.Backoff != 250*time.Millisecond {
		t.Errorf("unexpected reliability config: %+v", cfg.Reliability)
	}
	if got := cfg.Masking.Profiles["customer_pii"]["ssn"]; got != "prefix_mask" {
		t.Errorf("expected ssn rule prefix_mask, got %q", got)
	}
	env := cfg.Review.Environments["production"]
	if !env.ApprovalRequired || env.MinReviewers != 2 || len(env.AllowedRoles) != 2 {
		t.Errorf("unexpected environment: %+v", env)
	}
	if len(cfg.Surfaces.PreviewProfiles) != 2 {
		t.Errorf("expected 2 preview profiles, got %v", cfg.Surfaces.PreviewProfiles)
	}
	if cfg.Audit.Backend != "sqlite" || cfg.Audit.SQLite.Driver != "sqlite3" {
		t.Errorf("unexpected audit config: %+v", cfg.Audit)
	}
	// Untouched sections keep their defaults.
	if !cfg.Audit.Enabled {
		t.Error("expected audit enabled by default")
	}
	if len(cfg.Integrations.IssueTrackers) != 3 {
		t.Errorf("expected default issue trackers, got %v", cfg.Integrations.IssueTrackers)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "reliability: [unterminated")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
masking:
  profiles:
    broken:
      email: shuffle
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError in error chain, got %T: %v", err, err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
telemetry:
  logging:
    level: "info"
`)

	t.Setenv("SCRATCHROBIN_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("SCRATCHROBIN_RELIABILITY_MAX_ATTEMPTS", "9")
	t.Setenv("SCRATCHROBIN_RELIABILITY_BACKOFF", "2s")
	t.Setenv("SCRATCHROBIN_SURFACES_PREVIEW_PROFILES", "preview, canary ,")
	t.Setenv("SCRATCHROBIN_AUDIT_ENABLED", "false")
	t.Setenv("SCRATCHROBIN_AUDIT_SQLITE_DRIVER", "sqlite3")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected level warn from env, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Reliability.MaxAttempts != 9 {
		t.Errorf("expected max attempts 9 from env, got %d", cfg.Reliability.MaxAttempts)
	}
	if cfg.Reliability.Backoff != 2*time.Second {
		t.Errorf("expected backoff 2s from env, got %v", cfg.Reliability.Backoff)
	}
	if got := cfg.Surfaces.PreviewProfiles; len(got) != 2 || got[0] != "preview" || got[1] != "canary" {
		t.Errorf("expected [preview canary], got %v", got)
	}
	if cfg.Audit.Enabled {
		t.Error("expected audit disabled from env")
	}
	if cfg.Audit.SQLite.Driver != "sqlite3" {
		t.Errorf("expected driver sqlite3 from env, got %q", cfg.Audit.SQLite.Driver)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidEnvValues(t *testing.T) {
	path := writeConfig(t, "reliability:\n  max_attempts: 4\n")

	t.Setenv("SCRATCHROBIN_RELIABILITY_MAX_ATTEMPTS", "many")
	t.Setenv("SCRATCHROBIN_RELIABILITY_BACKOFF", "soon")
	t.Setenv("SCRATCHROBIN_AUDIT_ENABLED", "maybe")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Reliability.MaxAttempts != 4 {
		t.Errorf("malformed env value should be ignored, got %d", cfg.Reliability.MaxAttempts)
	}
	if cfg.Reliability.Backoff != DefaultBackoff {
		t.Errorf("malformed env duration should be ignored, got %v", cfg.Reliability.Backoff)
	}
	if !cfg.Audit.Enabled {
		t.Error("malformed env bool should be ignored")
	}
}

func TestLoadConfigWithEnvOverrides_RevalidatesAfterOverride(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("SCRATCHROBIN_AUDIT_BACKEND", "postgres")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Fatal("expected validation error for unsupported backend from env")
	}
}

func TestLoadConfigWithEnvOverrides_SecretsDir(t *testing.T) {
	path := writeConfig(t, `
integrations:
  secrets_dir: "/etc/scratchrobin/secrets"
`)
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Integrations.SecretsDir != "/etc/scratchrobin/secrets" {
		t.Errorf("SecretsDir = %q", cfg.Integrations.SecretsDir)
	}
	if cfg.Integrations.SecretEnvPrefix != DefaultSecretEnvPrefix {
		t.Errorf("SecretEnvPrefix = %q, want %q", cfg.Integrations.SecretEnvPrefix, DefaultSecretEnvPrefix)
	}

	t.Setenv("SCRATCHROBIN_INTEGRATIONS_SECRETS_DIR", "/run/secrets")
	cfg, err = LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Integrations.SecretsDir != "/run/secrets" {
		t.Errorf("SecretsDir = %q, want env override", cfg.Integrations.SecretsDir)
	}
}
