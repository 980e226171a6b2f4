package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	"scratchrobin-hq/advanced/pkg/masking"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "audit.backend").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// structValidate checks the `validate` struct tags. Field names are reported
// using their yaml keys.
var structValidate *validator.Validate

func init() {
	structValidate = validator.New()
	structValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateTags(cfg)...)
	errs = append(errs, validateMasking(&cfg.Masking)...)
	errs = append(errs, validateReview(&cfg.Review)...)
	errs = append(errs, validateAudit(&cfg.Audit)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateTags runs the struct-tag validator and converts its errors.
func validateTags(cfg *Config) []FieldError {
	err := structValidate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "config", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   trimRoot(fe.Namespace()),
			Message: tagMessage(fe),
		})
	}
	return out
}

// trimRoot drops the leading "Config." from a validator namespace.
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// validateMasking checks that every profile names only supported rules.
func validateMasking(cfg *MaskingConfig) []FieldError {
	var errs []FieldError

	for _, profileID := range sortedKeys(cfg.Profiles) {
		rules := cfg.Profiles[profileID]
		field := fmt.Sprintf("masking.profiles.%s", profileID)
		if profileID == "" {
			errs = append(errs, FieldError{Field: "masking.profiles", Message: "profile id cannot be empty"})
			continue
		}
		if len(rules) == 0 {
			errs = append(errs, FieldError{Field: field, Message: "profile must define at least one rule"})
			continue
		}
		for _, column := range sortedKeys(rules) {
			if !masking.Supported(rules[column]) {
				errs = append(errs, FieldError{
					Field:   field + "." + column,
					Message: fmt.Sprintf("unsupported masking rule %q (supported: %s)", rules[column], strings.Join(masking.RuleNames(), ", ")),
				})
			}
		}
	}

	return errs
}

// validateReview checks governance environments.
func validateReview(cfg *ReviewConfig) []FieldError {
	var errs []FieldError

	for _, envID := range sortedKeys(cfg.Environments) {
		env := cfg.Environments[envID]
		if env.ApprovalRequired && env.MinReviewers < 1 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("review.environments.%s.min_reviewers", envID),
				Message: "must be >= 1 when approval_required is set",
			})
		}
	}

	return errs
}

// validateAudit checks the audit section.
func validateAudit(cfg *AuditConfig) []FieldError {
	var errs []FieldError

	if cfg.Backend == "sqlite" && cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{Field: "audit.sqlite.path", Message: "is required for the sqlite backend"})
	}

	if cfg.Retention.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Retention.PruneSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "audit.retention.prune_schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
