// Package masking previews PII masking over tabular rows.
//
// A rule set maps a field name to one of a closed set of rules:
//
//   - redact replaces the value with "***"
//   - prefix_mask keeps the first two characters and stars the rest
//   - hash replaces the value with its lowercase hex SHA-256 digest
//
// Rule sets are validated before any row is touched, so an unsupported rule
// yields a SRB1-R-7005 reject and no partial result. Input rows are never
// mutated.
//
// Named rule sets (masking profiles) live in a Registry. The Registry is not
// safe for concurrent use; the engine façade serializes access to it.
package masking
