package audit

import (
	"context"
	"time"
)

// Decision outcomes.
const (
	OutcomeAllowed  = "allowed"
	OutcomeRejected = "rejected"
)

// Record is one audited decision.
type Record struct {
	ID        string    `json:"id"`        // UUID v4
	Time      time.Time `json:"time"`      // UTC decision time
	Component string    `json:"component"` // Engine component ("masking", "review", ...)
	Operation string    `json:"operation"` // Operation name ("preview_mask", ...)
	Subject   string    `json:"subject"`   // Profile, action, package or environment id
	Outcome   string    `json:"outcome"`   // OutcomeAllowed or OutcomeRejected
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// Query filters audit records. Zero-valued fields do not filter.
type Query struct {
	Component string    `json:"component,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Code      string    `json:"code,omitempty"`
	Since     time.Time `json:"since,omitempty"` // Inclusive
	Until     time.Time `json:"until,omitempty"` // Exclusive

	// Limit caps the number of records returned. Zero means no limit.
	Limit int `json:"limit,omitempty"`
}

// Matches reports whether r satisfies the query filters. Limit is ignored.
func (q *Query) Matches(r *Record) bool {
	if q == nil {
		return true
	}
	if q.Component != "" && r.Component != q.Component {
		return false
	}
	if q.Outcome != "" && r.Outcome != q.Outcome {
		return false
	}
	if q.Code != "" && r.Code != q.Code {
		return false
	}
	if !q.Since.IsZero() && r.Time.Before(q.Since) {
		return false
	}
	if !q.Until.IsZero() && !r.Time.Before(q.Until) {
		return false
	}
	return true
}

// Storage defines the interface for audit storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Query returns matching records, newest first.
	// Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of matching records. Limit is ignored.
	Count(ctx context.Context, query *Query) (int64, error)

	// DeleteOlderThan removes records whose time is before cutoff and
	// returns the number removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes the n oldest records and returns the number removed.
	DeleteOldest(ctx context.Context, n int64) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}
