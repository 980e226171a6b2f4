package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultWriteTimeout bounds a single audit write.
const DefaultWriteTimeout = 5 * time.Second

// WriteObserver is told about failed writes. metrics.AuditMetrics implements it.
type WriteObserver interface {
	WriteFailed(component string)
}

// Recorder stamps records and writes them to a Storage backend.
type Recorder struct {
	storage      Storage
	writeTimeout time.Duration
	observer     WriteObserver
	now          func() time.Time
	logger       *slog.Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithWriteTimeout overrides the per-write timeout.
func WithWriteTimeout(d time.Duration) RecorderOption {
	return func(r *Recorder) { r.writeTimeout = d }
}

// WithWriteObserver reports write failures to obs.
func WithWriteObserver(obs WriteObserver) RecorderOption {
	return func(r *Recorder) { r.observer = obs }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) { r.now = now }
}

// WithLogger sets the recorder's logger.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger.With("component", "audit.recorder")
		}
	}
}

// NewRecorder creates a recorder writing to storage.
func NewRecorder(storage Storage, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		storage:      storage,
		writeTimeout: DefaultWriteTimeout,
		now:          time.Now,
		logger:       slog.Default().With("component", "audit.recorder"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Storage returns the backend the recorder writes to.
func (r *Recorder) Storage() Storage {
	return r.storage
}

// RecordRequired writes the record and returns any failure as a *RecorderError.
// A missing ID or time is filled in; the caller's record is not modified.
func (r *Recorder) RecordRequired(ctx context.Context, record Record) (*Record, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Time.IsZero() {
		record.Time = r.now()
	}
	record.Time = record.Time.UTC()

	if r.storage == nil {
		return nil, r.fail(&record, errors.New("no audit storage configured"))
	}

	writeCtx := ctx
	if r.writeTimeout > 0 {
		var cancel context.CancelFunc
		writeCtx, cancel = context.WithTimeout(ctx, r.writeTimeout)
		defer cancel()
	}

	if err := r.storage.Store(writeCtx, &record); err != nil {
		return nil, r.fail(&record, err)
	}

	r.logger.Debug("audit record stored",
		"record_id", record.ID,
		"operation", record.Operation,
		"outcome", record.Outcome,
	)
	return &record, nil
}

// RecordBestEffort writes the record and logs any failure.
func (r *Recorder) RecordBestEffort(ctx context.Context, record Record) {
	if _, err := r.RecordRequired(ctx, record); err != nil {
		r.logger.Warn("audit write failed",
			"operation", record.Operation,
			"subject", record.Subject,
			"error", err,
		)
	}
}

func (r *Recorder) fail(record *Record, cause error) error {
	if r.observer != nil {
		r.observer.WriteFailed(record.Component)
	}
	return &RecorderError{RecordID: record.ID, Cause: cause}
}
