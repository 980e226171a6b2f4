package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of DefaultConfig and applies defaults to any
// field the document left empty. It does not validate.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SCRATCHROBIN_SECTION_FIELD (e.g., SCRATCHROBIN_AUDIT_BACKEND).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Malformed numeric, boolean and duration values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Telemetry overrides
	if val := os.Getenv("SCRATCHROBIN_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SCRATCHROBIN_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SCRATCHROBIN_TELEMETRY_LOGGING_REDACT_SECRETS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.RedactSecrets = b
		}
	}
	if val := os.Getenv("SCRATCHROBIN_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}

	// Reliability overrides
	if val := os.Getenv("SCRATCHROBIN_RELIABILITY_MAX_ATTEMPTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Reliability.MaxAttempts = i
		}
	}
	if val := os.Getenv("SCRATCHROBIN_RELIABILITY_BACKOFF"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Reliability.Backoff = d
		}
	}

	// Policy table overrides
	if val := os.Getenv("SCRATCHROBIN_SURFACES_PREVIEW_PROFILES"); val != "" {
		cfg.Surfaces.PreviewProfiles = splitList(val)
	}
	if val := os.Getenv("SCRATCHROBIN_EXTENSIONS_SANDBOX_ALLOWLIST"); val != "" {
		cfg.Extensions.SandboxAllowlist = splitList(val)
	}
	if val := os.Getenv("SCRATCHROBIN_INTEGRATIONS_AI_PROVIDERS"); val != "" {
		cfg.Integrations.AIProviders = splitList(val)
	}
	if val := os.Getenv("SCRATCHROBIN_INTEGRATIONS_ISSUE_TRACKERS"); val != "" {
		cfg.Integrations.IssueTrackers = splitList(val)
	}
	if val := os.Getenv("SCRATCHROBIN_INTEGRATIONS_SECRETS_DIR"); val != "" {
		cfg.Integrations.SecretsDir = val
	}

	// Audit overrides
	if val := os.Getenv("SCRATCHROBIN_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("SCRATCHROBIN_AUDIT_BACKEND"); val != "" {
		cfg.Audit.Backend = val
	}
	if val := os.Getenv("SCRATCHROBIN_AUDIT_SQLITE_PATH"); val != "" {
		cfg.Audit.SQLite.Path = val
	}
	if val := os.Getenv("SCRATCHROBIN_AUDIT_SQLITE_DRIVER"); val != "" {
		cfg.Audit.SQLite.Driver = val
	}
	if val := os.Getenv("SCRATCHROBIN_AUDIT_RETENTION_MAX_AGE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Audit.Retention.MaxAge = d
		}
	}
	if val := os.Getenv("SCRATCHROBIN_AUDIT_RETENTION_PRUNE_SCHEDULE"); val != "" {
		cfg.Audit.Retention.PruneSchedule = val
	}
}

// splitList splits a comma separated value, dropping empty items.
func splitList(val string) []string {
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
