// Package extension validates loadable extensions at the trust boundary.
//
// ValidateRuntime is the core check: an extension must pass signature and
// compatibility verification (SRB1-R-7303) and may only request capabilities
// inside the allowlist (SRB1-R-7304).
//
// A Registry records each package's declared capability ceiling. Executing a
// registered package requires the requested capabilities to be within both the
// ceiling and the sandbox allowlist.
//
// Manifests describing a package can be loaded from YAML:
//
//	id: csv-export
//	signature_sha256: 9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08
//	compatibility: scratchrobin-1
//	capabilities: [read_catalog, read_data]
package extension
