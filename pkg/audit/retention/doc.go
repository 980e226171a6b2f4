// Package retention enforces audit retention limits.
//
// A Pruner deletes records older than a maximum age and then trims the store
// to a maximum record count, oldest first. A Scheduler runs the pruner on a
// standard five-field cron expression (github.com/robfig/cron/v3), for example
// "0 3 * * *" for daily at 3 AM.
package retention
