// Package gitsync inspects a local Git working copy and reports whether it is
// ready to sync. It only reads the repository; reachability of remotes is
// decided by a caller-supplied probe.
package gitsync
