// Package storage provides audit storage backends.
//
// MemoryStorage keeps records in process memory. SQLiteStorage persists them
// with database/sql; the driver is chosen by name, "sqlite3" for the cgo
// github.com/mattn/go-sqlite3 driver and "sqlite" for the pure-Go
// modernc.org/sqlite driver. Both drivers are registered by this package.
//
// Times are stored as Unix nanoseconds so that both drivers round-trip them
// identically.
package storage
