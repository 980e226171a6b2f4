package config

import "time"

// Default values for configuration fields.
const (
	// Logging defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultRedactSecrets = true

	// Metrics defaults
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "scratchrobin"
	DefaultMetricsSubsystem = "advanced"

	// Reliability defaults
	DefaultMaxAttempts = 3
	DefaultBackoff     = 50 * time.Millisecond

	// Integration defaults
	DefaultSecretEnvPrefix = "SCRATCHROBIN_SECRET_"

	// Audit defaults
	DefaultAuditEnabled           = true
	DefaultAuditBackend           = "memory"
	DefaultAuditSQLitePath        = "data/audit.db"
	DefaultAuditSQLiteDriver      = "sqlite"
	DefaultAuditSQLiteWALMode     = true
	DefaultAuditSQLiteBusyTimeout = 5 * time.Second
	DefaultAuditRetentionMaxAge   = 90 * 24 * time.Hour
	DefaultAuditPruneSchedule     = "0 3 * * *"
)

// DefaultPreviewProfiles returns the deployment profiles that enable optional surfaces.
func DefaultPreviewProfiles() []string {
	return []string{"preview"}
}

// DefaultAIProviders returns the supported AI provider ids.
func DefaultAIProviders() []string {
	return []string{"openai", "ollama", "anthropic", "local_mock"}
}

// DefaultIssueTrackers returns the supported issue-tracker provider ids.
func DefaultIssueTrackers() []string {
	return []string{"github", "gitlab", "jira"}
}

// DefaultSandboxAllowlist returns the default extension sandbox capabilities.
func DefaultSandboxAllowlist() []string {
	return []string{"read_catalog", "read_metadata"}
}

// DefaultConfig returns a configuration with every default applied.
// Boolean settings that default to true are only set here, so LoadConfig
// decodes YAML on top of this value rather than on a zero Config.
func DefaultConfig() *Config {
	cfg := &Config{
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{RedactSecrets: DefaultRedactSecrets},
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
		Audit: AuditConfig{
			Enabled: DefaultAuditEnabled,
			SQLite:  SQLiteConfig{WALMode: DefaultAuditSQLiteWALMode},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func ApplyDefaults(cfg *Config) {
	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}

	// Reliability defaults
	if cfg.Reliability.MaxAttempts == 0 {
		cfg.Reliability.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Reliability.Backoff == 0 {
		cfg.Reliability.Backoff = DefaultBackoff
	}

	// Policy table defaults
	if cfg.Masking.Profiles == nil {
		cfg.Masking.Profiles = make(map[string]map[string]string)
	}
	if cfg.Review.Environments == nil {
		cfg.Review.Environments = make(map[string]EnvironmentConfig)
	}
	if len(cfg.Extensions.SandboxAllowlist) == 0 {
		cfg.Extensions.SandboxAllowlist = DefaultSandboxAllowlist()
	}
	if len(cfg.Surfaces.PreviewProfiles) == 0 {
		cfg.Surfaces.PreviewProfiles = DefaultPreviewProfiles()
	}
	if len(cfg.Integrations.AIProviders) == 0 {
		cfg.Integrations.AIProviders = DefaultAIProviders()
	}
	if len(cfg.Integrations.IssueTrackers) == 0 {
		cfg.Integrations.IssueTrackers = DefaultIssueTrackers()
	}
	if cfg.Integrations.SecretEnvPrefix == "" {
		cfg.Integrations.SecretEnvPrefix = DefaultSecretEnvPrefix
	}

	// Audit defaults
	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLite.Path == "" {
		cfg.Audit.SQLite.Path = DefaultAuditSQLitePath
	}
	if cfg.Audit.SQLite.Driver == "" {
		cfg.Audit.SQLite.Driver = DefaultAuditSQLiteDriver
	}
	if cfg.Audit.SQLite.BusyTimeout == 0 {
		cfg.Audit.SQLite.BusyTimeout = DefaultAuditSQLiteBusyTimeout
	}
	if cfg.Audit.Retention.MaxAge == 0 {
		cfg.Audit.Retention.MaxAge = DefaultAuditRetentionMaxAge
	}
	if cfg.Audit.Retention.PruneSchedule == "" {
		cfg.Audit.Retention.PruneSchedule = DefaultAuditPruneSchedule
	}
}
