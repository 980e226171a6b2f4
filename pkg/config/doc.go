// Package config provides configuration management for the advanced-feature engine.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It covers the ambient
// concerns (logging, metrics, audit storage) as well as the policy tables the
// engine consults: masking profiles, governance environments, the extension
// sandbox allowlist, preview deployment profiles and supported integrations.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("advanced.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("advanced.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SCRATCHROBIN_SECTION_FIELD.
// For example:
//
//   - SCRATCHROBIN_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//   - SCRATCHROBIN_RELIABILITY_MAX_ATTEMPTS overrides reliability.max_attempts
//   - SCRATCHROBIN_AUDIT_SQLITE_PATH overrides audit.sqlite.path
//
// List values (for example SCRATCHROBIN_SURFACES_PREVIEW_PROFILES) are
// comma separated.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Hot Reload
//
// Watcher observes the configuration file with fsnotify and hands every
// successfully validated reload to a callback. Invalid edits are logged and
// ignored, leaving the previous configuration in effect.
package config
