// Package surface gates optional UI surfaces by deployment profile.
//
// Preview profiles enable every surface. Any other profile disables all of
// them, and each disabled surface maps to its own reject code. Opening an
// enabled surface returns a small JSON descriptor embedding the target id.
package surface
