// advancedctl drives the ScratchRobin advanced-feature engine from the
// command line.
//
// It exposes the engine's gated operations:
//   - Masking previews with stored profiles or inline rules
//   - Lineage roots and depth rows from YAML graphs
//   - Optional surface gating per deployment profile
//   - Extension manifest verification against a sandbox
//   - Integration readiness checks, including local git working copies
//   - CDC delivery with retries and a dead-letter queue
//   - Decision audit queries and retention pruning
//
// Usage:
//
//	# Show version information
//	advancedctl version
//
//	# Preview masking with a configured profile
//	advancedctl mask --rows rows.json --profile pii --config engine.yaml
//
//	# Topological lineage depth rows
//	advancedctl lineage --graph graph.yaml --depth --order topological
//
//	# Check whether a working copy is ready to sync
//	advancedctl integrations git --path .
//
//	# Query rejected decisions from the SQLite audit mirror
//	advancedctl audit query --outcome rejected --format json
package main

func main() {
	Execute()
}
