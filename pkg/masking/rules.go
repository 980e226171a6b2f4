package masking

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"scratchrobin-hq/advanced/pkg/reject"
)

// Component is the reject component name for masking failures.
const Component = "masking"

// Rule names.
const (
	RuleRedact     = "redact"
	RulePrefixMask = "prefix_mask"
	RuleHash       = "hash"
)

// RedactedValue is the replacement produced by the redact rule.
const RedactedValue = "***"

// prefixKeep is the number of leading characters kept by prefix_mask.
const prefixKeep = 2

var maskers = map[string]func(string) string{
	RuleRedact:     Redact,
	RulePrefixMask: prefixMask,
	RuleHash:       hash,
}

// Row is one record, keyed by field name.
type Row map[string]string

// Rules maps a field name to a rule name.
type Rules map[string]string

// Supported reports whether rule is a known masking rule.
func Supported(rule string) bool {
	_, ok := maskers[rule]
	return ok
}

// RuleNames returns the supported rule names in sorted order.
func RuleNames() []string {
	names := make([]string, 0, len(maskers))
	for name := range maskers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply masks a single value with the named rule.
func Apply(rule, value string) (string, error) {
	fn, ok := maskers[rule]
	if !ok {
		return "", unsupported("apply_mask", rule)
	}
	return fn(value), nil
}

// Redact is the redact rule, exposed for log redaction.
func Redact(string) string {
	return RedactedValue
}

// prefixMask keeps the first two runes and replaces the rest with '*'.
// Values of two runes or fewer are fully starred.
func prefixMask(v string) string {
	runes := []rune(v)
	if len(runes) <= prefixKeep {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:prefixKeep]) + strings.Repeat("*", len(runes)-prefixKeep)
}

func hash(v string) string {
	sum := sha256.Sum256([]byte(v))
	return hex.EncodeToString(sum[:])
}

// Validate checks a rule set. An empty set and any unsupported rule are
// rejected with SRB1-R-7005. Fields are checked in sorted order so the
// reported detail is deterministic.
func (r Rules) Validate() error {
	return r.validate("validate_masking_rules")
}

func (r Rules) validate(operation string) error {
	if len(r) == 0 {
		return reject.New(reject.CodeMaskingRule, "masking profile missing", Component, operation)
	}
	fields := make([]string, 0, len(r))
	for field := range r {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if !Supported(r[field]) {
			return unsupported(operation, r[field])
		}
	}
	return nil
}

// Clone returns a copy of the rule set.
func (r Rules) Clone() Rules {
	if r == nil {
		return nil
	}
	out := make(Rules, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func unsupported(operation, rule string) error {
	return reject.New(reject.CodeMaskingRule, "unsupported masking method", Component, operation).WithDetail(rule)
}
