// Package audit mirrors the engine's gated decisions into a queryable store.
//
// Every decision the engine makes about a gated capability (a masking preview,
// a review enforcement, an extension execution, a governed operation) produces
// one Record with outcome "allowed" or "rejected". Records are written through
// a Recorder onto a Storage backend.
//
// # Backends
//
// Two backends are provided in the storage subpackage:
//
//   - MemoryStorage keeps records in a map and is the default.
//   - SQLiteStorage keeps records in a SQLite database through database/sql,
//     using either the cgo driver (github.com/mattn/go-sqlite3, driver name
//     "sqlite3") or the pure-Go driver (modernc.org/sqlite, driver name
//     "sqlite").
//
// The mirror makes no durability guarantee. Best-effort writes log failures and
// continue; required writes surface the failure to the caller, which turns it
// into a SRB1-R-3201 reject.
//
// # Retention
//
// The retention subpackage deletes records older than a maximum age or beyond a
// maximum count, either on demand or on a cron schedule.
package audit
