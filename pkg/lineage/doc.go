// Package lineage builds ordered views of a dependency graph given as
// (node, parent) edges. An edge with an empty parent marks the node as a
// lineage root.
package lineage
