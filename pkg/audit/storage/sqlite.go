package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"scratchrobin-hq/advanced/pkg/audit"
)

// Driver names accepted by SQLiteConfig.Driver.
const (
	DriverCGO  = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPure = "sqlite"  // modernc.org/sqlite
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// Driver is the database/sql driver name.
	// Default: "sqlite"
	Driver string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 4
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/audit.db",
		Driver:       DriverPure,
		MaxOpenConns: 4,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements audit.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database and creates the schema if needed.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverPure
	}
	if config.Driver != DriverCGO && config.Driver != DriverPure {
		return nil, audit.NewStorageError("sqlite", "open", fmt.Errorf("unsupported driver %q", config.Driver))
	}
	if config.MaxOpenConns <= 0 {
		config.MaxOpenConns = 4
	}

	logger := slog.Default().With("component", "audit.storage.sqlite")

	if dir := filepath.Dir(config.Path); config.Path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, audit.NewStorageError("sqlite", "open", err)
		}
	}

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite audit storage initialized",
		"path", config.Path,
		"driver", config.Driver,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize sets pragmas, creates the schema and checks its version.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return audit.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return audit.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return audit.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return audit.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return audit.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return audit.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// Store persists a record.
func (s *SQLiteStorage) Store(ctx context.Context, record *audit.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_records (id, recorded_at, component, operation, subject, outcome, code, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Time.UnixNano(), record.Component, record.Operation,
		record.Subject, record.Outcome, record.Code, record.Message,
	)
	if err != nil {
		return audit.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Query returns matching records, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Record, error) {
	where, args := buildWhereClause(query)

	sqlQuery := "SELECT id, recorded_at, component, operation, subject, outcome, code, message FROM audit_records"
	if where != "" {
		sqlQuery += " WHERE " + where
	}
	sqlQuery += " ORDER BY recorded_at DESC, rowid DESC"
	if query != nil && query.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*audit.Record{}
	for rows.Next() {
		var record audit.Record
		var nanos int64
		if err := rows.Scan(&record.ID, &nanos, &record.Component, &record.Operation,
			&record.Subject, &record.Outcome, &record.Code, &record.Message); err != nil {
			return nil, audit.NewStorageError("sqlite", "scan", err)
		}
		record.Time = time.Unix(0, nanos).UTC()
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of matching records.
func (s *SQLiteStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	where, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM audit_records"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, audit.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// DeleteOlderThan removes records before cutoff.
func (s *SQLiteStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM audit_records WHERE recorded_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete", err)
	}
	return count, nil
}

// DeleteOldest removes the n oldest records.
func (s *SQLiteStorage) DeleteOldest(ctx context.Context, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM audit_records WHERE id IN (
			SELECT id FROM audit_records ORDER BY recorded_at ASC, rowid ASC LIMIT ?
		)`, n)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete_oldest", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete_oldest", err)
	}
	return count, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return audit.NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite audit storage closed")
	return nil
}

// buildWhereClause builds a WHERE clause (without the keyword) and its args.
func buildWhereClause(query *audit.Query) (string, []any) {
	if query == nil {
		return "", nil
	}

	var conditions []string
	var args []any

	if query.Component != "" {
		conditions = append(conditions, "component = ?")
		args = append(args, query.Component)
	}
	if query.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, query.Outcome)
	}
	if query.Code != "" {
		conditions = append(conditions, "code = ?")
		args = append(args, query.Code)
	}
	if !query.Since.IsZero() {
		conditions = append(conditions, "recorded_at >= ?")
		args = append(args, query.Since.UnixNano())
	}
	if !query.Until.IsZero() {
		conditions = append(conditions, "recorded_at < ?")
		args = append(args, query.Until.UnixNano())
	}

	return strings.Join(conditions, " AND "), args
}
