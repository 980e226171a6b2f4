package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"scratchrobin-hq/advanced/pkg/audit"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seedRecords() []*audit.Record {
	return []*audit.Record{
		{ID: "r1", Time: base, Component: "masking", Operation: "preview_mask", Subject: "pii", Outcome: audit.OutcomeAllowed},
		{ID: "r2", Time: base.Add(time.Minute), Component: "review", Operation: "enforce_review_action", Subject: "apply", Outcome: audit.OutcomeRejected, Code: "SRB1-R-7301", Message: "review quorum not met"},
		{ID: "r3", Time: base.Add(2 * time.Minute), Component: "review", Operation: "enforce_review_action", Subject: "apply", Outcome: audit.OutcomeAllowed},
		{ID: "r4", Time: base.Add(3 * time.Minute), Component: "extension", Operation: "execute_extension", Subject: "ext.audit", Outcome: audit.OutcomeRejected, Code: "SRB1-R-7304"},
	}
}

// backends returns every storage implementation under test.
func backends(t *testing.T) map[string]func(t *testing.T) audit.Storage {
	return map[string]func(t *testing.T) audit.Storage{
		"memory": func(t *testing.T) audit.Storage {
			return NewMemoryStorage()
		},
		"sqlite-pure": func(t *testing.T) audit.Storage {
			return newSQLite(t, DriverPure)
		},
		"sqlite-cgo": func(t *testing.T) audit.Storage {
			return newSQLite(t, DriverCGO)
		},
	}
}

func newSQLite(t *testing.T, driver string) audit.Storage {
	t.Helper()
	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "audit.db")
	cfg.Driver = driver

	s, err := NewSQLiteStorage(cfg)
	if err != nil {
		if driver == DriverCGO && strings.Contains(err.Error(), "CGO_ENABLED") {
			t.Skip("cgo sqlite driver unavailable in this build")
		}
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	return s
}

func withStorage(t *testing.T, fn func(t *testing.T, s audit.Storage)) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			ctx := context.Background()
			for _, r := range seedRecords() {
				if err := s.Store(ctx, r); err != nil {
					t.Fatalf("Store() error = %v", err)
				}
			}
			fn(t, s)
		})
	}
}

func ids(records []*audit.Record) string {
	var out []string
	for _, r := range records {
		out = append(out, r.ID)
	}
	return strings.Join(out, ",")
}

func TestStorage_Query(t *testing.T) {
	tests := []struct {
		name  string
		query *audit.Query
		want  string
	}{
		{name: "all newest first", query: &audit.Query{}, want: "r4,r3,r2,r1"},
		{name: "nil query", query: nil, want: "r4,r3,r2,r1"},
		{name: "by component", query: &audit.Query{Component: "review"}, want: "r3,r2"},
		{name: "by outcome", query: &audit.Query{Outcome: audit.OutcomeRejected}, want: "r4,r2"},
		{name: "by code", query: &audit.Query{Code: "SRB1-R-7301"}, want: "r2"},
		{name: "since inclusive", query: &audit.Query{Since: base.Add(2 * time.Minute)}, want: "r4,r3"},
		{name: "until exclusive", query: &audit.Query{Until: base.Add(time.Minute)}, want: "r1"},
		{name: "limit", query: &audit.Query{Limit: 2}, want: "r4,r3"},
		{name: "no match", query: &audit.Query{Component: "lineage"}, want: ""},
	}

	withStorage(t, func(t *testing.T, s audit.Storage) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := s.Query(context.Background(), tt.query)
				if err != nil {
					t.Fatalf("Query() error = %v", err)
				}
				if ids(got) != tt.want {
					t.Errorf("Query() = %s, want %s", ids(got), tt.want)
				}
			})
		}
	})
}

func TestStorage_RoundTrip(t *testing.T) {
	withStorage(t, func(t *testing.T, s audit.Storage) {
		got, err := s.Query(context.Background(), &audit.Query{Code: "SRB1-R-7301"})
		if err != nil || len(got) != 1 {
			t.Fatalf("Query() = %v, %v", got, err)
		}
		r := got[0]
		if !r.Time.Equal(base.Add(time.Minute)) {
			t.Errorf("time = %v, want %v", r.Time, base.Add(time.Minute))
		}
		if r.Operation != "enforce_review_action" || r.Subject != "apply" || r.Message != "review quorum not met" {
			t.Errorf("unexpected record: %+v", *r)
		}
	})
}

func TestStorage_Count(t *testing.T) {
	withStorage(t, func(t *testing.T, s audit.Storage) {
		n, err := s.Count(context.Background(), &audit.Query{Outcome: audit.OutcomeAllowed, Limit: 1})
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if n != 2 {
			t.Errorf("Count() = %d, want 2", n)
		}
	})
}

func TestStorage_DeleteOlderThan(t *testing.T) {
	withStorage(t, func(t *testing.T, s audit.Storage) {
		ctx := context.Background()
		deleted, err := s.DeleteOlderThan(ctx, base.Add(2*time.Minute))
		if err != nil {
			t.Fatalf("DeleteOlderThan() error = %v", err)
		}
		if deleted != 2 {
			t.Errorf("deleted = %d, want 2", deleted)
		}
		remaining, _ := s.Query(ctx, &audit.Query{})
		if ids(remaining) != "r4,r3" {
			t.Errorf("remaining = %s, want r4,r3", ids(remaining))
		}
	})
}

func TestStorage_DeleteOldest(t *testing.T) {
	withStorage(t, func(t *testing.T, s audit.Storage) {
		ctx := context.Background()
		deleted, err := s.DeleteOldest(ctx, 3)
		if err != nil {
			t.Fatalf("DeleteOldest() error = %v", err)
		}
		if deleted != 3 {
			t.Errorf("deleted = %d, want 3", deleted)
		}
		remaining, _ := s.Query(ctx, &audit.Query{})
		if ids(remaining) != "r4" {
			t.Errorf("remaining = %s, want r4", ids(remaining))
		}

		if deleted, _ := s.DeleteOldest(ctx, 0); deleted != 0 {
			t.Errorf("DeleteOldest(0) deleted %d", deleted)
		}
	})
}

func TestMemoryStorage_CopiesRecords(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	r := &audit.Record{ID: "a", Time: base, Component: "masking", Outcome: audit.OutcomeAllowed}
	if err := s.Store(ctx, r); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	r.Component = "mutated"

	got, _ := s.Query(ctx, &audit.Query{})
	if got[0].Component != "masking" {
		t.Errorf("stored record was mutated: %+v", *got[0])
	}
	got[0].Component = "mutated"
	again, _ := s.Query(ctx, &audit.Query{})
	if again[0].Component != "masking" {
		t.Error("query results should be copies")
	}
}

func TestMemoryStorage_CancelledContext(t *testing.T) {
	s := NewMemoryStorage()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Store(ctx, &audit.Record{ID: "x"})
	var storageErr *audit.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestNewSQLiteStorage_UnsupportedDriver(t *testing.T) {
	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "audit.db")
	cfg.Driver = "postgres"

	_, err := NewSQLiteStorage(cfg)
	var storageErr *audit.StorageError
	if !errors.As(err, &storageErr) || storageErr.Operation != "open" {
		t.Fatalf("expected open StorageError, got %v", err)
	}
}

func TestNewSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	cfg := &SQLiteConfig{Path: path, Driver: DriverPure, WALMode: true, BusyTimeout: time.Second}

	s, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	if err := s.Store(context.Background(), seedRecords()[0]); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteStorage(&SQLiteConfig{Path: path, Driver: DriverPure, WALMode: true, BusyTimeout: time.Second})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	n, err := reopened.Count(context.Background(), &audit.Query{})
	if err != nil || n != 1 {
		t.Errorf("Count() after reopen = %d, %v; want 1", n, err)
	}
}
