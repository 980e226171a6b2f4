package advanced

import "scratchrobin-hq/advanced/pkg/lineage"

// BuildLineage orders nodeIDs and counts lineage roots.
func (s *Service) BuildLineage(nodeIDs []string, edges []lineage.Edge, opts ...lineage.Option) lineage.Result {
	return lineage.Build(nodeIDs, edges, opts...)
}

// BuildLineageDepth reports the depth of every node reachable from a root.
func (s *Service) BuildLineageDepth(nodeIDs []string, edges []lineage.Edge) []lineage.DepthRow {
	return lineage.BuildDepth(nodeIDs, edges)
}
