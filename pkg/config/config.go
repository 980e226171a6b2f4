package config

import "time"

// Config is the root configuration structure for the advanced-feature engine.
type Config struct {
	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Reliability contains the default CDC delivery settings.
	Reliability ReliabilityConfig `yaml:"reliability"`

	// Masking contains named masking profiles preloaded into the engine.
	Masking MaskingConfig `yaml:"masking"`

	// Review contains governance environments.
	Review ReviewConfig `yaml:"review"`

	// Extensions contains the default extension sandbox.
	Extensions ExtensionsConfig `yaml:"extensions"`

	// Surfaces contains the deployment profiles that enable optional surfaces.
	Surfaces SurfacesConfig `yaml:"surfaces"`

	// Integrations contains the supported external integration providers.
	Integrations IntegrationsConfig `yaml:"integrations"`

	// Audit contains the decision audit mirror configuration.
	Audit AuditConfig `yaml:"audit"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Format is the output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format" validate:"oneof=json text"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`

	// RedactSecrets masks attribute values whose keys look like secrets.
	// Default: true
	RedactSecrets bool `yaml:"redact_secrets"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled turns metric recording on.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric namespace.
	// Default: "scratchrobin"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem.
	// Default: "advanced"
	Subsystem string `yaml:"subsystem"`
}

// ReliabilityConfig contains CDC delivery defaults used by callers that do not
// pass explicit attempt counts.
type ReliabilityConfig struct {
	// MaxAttempts is the number of publish attempts per event.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts" validate:"gte=1,lte=100"`

	// Backoff is the fixed advisory delay between attempts.
	// Default: 50ms
	Backoff time.Duration `yaml:"backoff" validate:"gte=0"`
}

// MaskingConfig contains masking profiles keyed by profile id.
// Each profile maps a field name to a rule name.
type MaskingConfig struct {
	Profiles map[string]map[string]string `yaml:"profiles"`
}

// ReviewConfig contains governance environments keyed by environment id.
type ReviewConfig struct {
	Environments map[string]EnvironmentConfig `yaml:"environments" validate:"dive"`
}

// EnvironmentConfig is the governance policy for one environment.
type EnvironmentConfig struct {
	// AllowedRoles lists the roles that may act in this environment.
	AllowedRoles []string `yaml:"allowed_roles" validate:"required,min=1,dive,required"`

	// ApprovalRequired makes MinReviewers a necessary condition.
	ApprovalRequired bool `yaml:"approval_required"`

	// MinReviewers is the approval quorum when ApprovalRequired is set.
	MinReviewers int `yaml:"min_reviewers" validate:"gte=0"`

	// AIEnabled allows AI-initiated actions.
	AIEnabled bool `yaml:"ai_enabled"`

	// AIAllowedScopes restricts AI-initiated actions to these scopes when non-empty.
	AIAllowedScopes []string `yaml:"ai_allowed_scopes" validate:"dive,required"`
}

// ExtensionsConfig contains extension runtime configuration.
type ExtensionsConfig struct {
	// SandboxAllowlist is the default set of capabilities a sandboxed
	// extension may exercise.
	// Default: ["read_catalog", "read_metadata"]
	SandboxAllowlist []string `yaml:"sandbox_allowlist" validate:"dive,required"`
}

// SurfacesConfig contains optional-surface gating configuration.
type SurfacesConfig struct {
	// PreviewProfiles lists the deployment profiles that enable every optional surface.
	// Default: ["preview"]
	PreviewProfiles []string `yaml:"preview_profiles" validate:"dive,required"`
}

// IntegrationsConfig contains the supported external integration providers.
type IntegrationsConfig struct {
	// AIProviders lists supported AI provider ids.
	// Default: ["openai", "ollama", "anthropic", "local_mock"]
	AIProviders []string `yaml:"ai_providers" validate:"min=1,dive,required"`

	// IssueTrackers lists supported issue-tracker provider ids.
	// Default: ["github", "gitlab", "jira"]
	IssueTrackers []string `yaml:"issue_trackers" validate:"min=1,dive,required"`

	// SecretEnvPrefix prefixes the environment variables credentials are
	// read from. Default: "SCRATCHROBIN_SECRET_"
	SecretEnvPrefix string `yaml:"secret_env_prefix"`

	// SecretsDir is a directory of credential files, one file per credential.
	// Empty disables file lookup.
	SecretsDir string `yaml:"secrets_dir"`
}

// AuditConfig contains configuration for the decision audit mirror.
type AuditConfig struct {
	// Enabled turns audit recording on.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend ("memory", "sqlite").
	// Default: "memory"
	Backend string `yaml:"backend" validate:"oneof=memory sqlite"`

	// SQLite contains SQLite backend settings.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains pruning settings.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite audit storage settings.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/audit.db"
	Path string `yaml:"path"`

	// Driver is the database/sql driver name: "sqlite3" (mattn/go-sqlite3,
	// cgo) or "sqlite" (modernc.org/sqlite, pure Go).
	// Default: "sqlite"
	Driver string `yaml:"driver" validate:"oneof=sqlite3 sqlite"`

	// WALMode enables write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait for locks.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout" validate:"gte=0"`
}

// RetentionConfig contains audit retention settings.
type RetentionConfig struct {
	// MaxAge deletes records older than this age. Zero keeps records forever.
	// Default: 2160h (90 days)
	MaxAge time.Duration `yaml:"max_age" validate:"gte=0"`

	// MaxRecords keeps at most this many records. Zero means unlimited.
	MaxRecords int64 `yaml:"max_records" validate:"gte=0"`

	// PruneSchedule is a standard cron expression. Empty disables scheduling.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}
