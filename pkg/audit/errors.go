package audit

import (
	"fmt"
	"time"
)

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend   string // Storage backend type ("memory", "sqlite")
	Operation string // Operation that failed ("store", "query", "delete", ...)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("audit storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// RecorderError represents a failed audit write.
type RecorderError struct {
	RecordID string
	Cause    error
}

// Error implements the error interface.
func (e *RecorderError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("audit recorder error [record_id=%s]: %v", e.RecordID, e.Cause)
	}
	return fmt.Sprintf("audit recorder error: %v", e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RecorderError) Unwrap() error {
	return e.Cause
}

// RetentionError represents an error during retention enforcement.
type RetentionError struct {
	MaxAge time.Duration
	Cause  error
}

// Error implements the error interface.
func (e *RetentionError) Error() string {
	return fmt.Sprintf("audit retention error [max_age=%s]: %v", e.MaxAge, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RetentionError) Unwrap() error {
	return e.Cause
}

// NewRetentionError creates a new RetentionError.
func NewRetentionError(maxAge time.Duration, cause error) *RetentionError {
	return &RetentionError{MaxAge: maxAge, Cause: cause}
}
