// Package integration checks that external integrations are configured well
// enough to be offered: AI providers (SRB1-R-7006), issue trackers
// (SRB1-R-7007) and Git sync (SRB1-R-8201).
//
// The validators only look at configuration. They never contact the
// providers.
package integration
