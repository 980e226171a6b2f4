package lineage

import (
	"sort"
)

// Edge links NodeID to its parent. An empty ParentID means the node has no
// recorded parent.
type Edge struct {
	NodeID   string `yaml:"node" json:"node"`
	ParentID string `yaml:"parent,omitempty" json:"parent,omitempty"`
}

// Result is the output of Build.
type Result struct {
	// Nodes holds every input node id in the orderer's order.
	Nodes []string `json:"nodes"`
	// Roots counts the distinct nodes that have an edge with an empty parent.
	// A node listed with several empty-parent edges is counted once.
	Roots int `json:"roots"`
}

// DepthRow is one row of BuildDepth.
type DepthRow struct {
	NodeID           string `json:"node_id"`
	Depth            int    `json:"depth"`
	UnresolvedParent bool   `json:"unresolved_parent"`
}

type options struct {
	orderer Orderer
}

// Option configures Build.
type Option func(*options)

// WithOrderer selects the node ordering. The default is Lexicographic.
func WithOrderer(o Orderer) Option {
	return func(opts *options) {
		if o != nil {
			opts.orderer = o
		}
	}
}

// Build orders nodeIDs and counts lineage roots. The inputs are not modified.
func Build(nodeIDs []string, edges []Edge, opts ...Option) Result {
	o := options{orderer: Lexicographic{}}
	for _, opt := range opts {
		opt(&o)
	}

	roots := make(map[string]struct{})
	for _, e := range edges {
		if e.ParentID == "" {
			roots[e.NodeID] = struct{}{}
		}
	}
	return Result{
		Nodes: o.orderer.Order(nodeIDs, edges),
		Roots: len(roots),
	}
}

// BuildDepth walks the graph breadth-first from its roots and reports each
// reachable node once, at its nearest depth. Roots are the nodeIDs without a
// parent edge and have depth 0; children are visited in lexicographic order.
// Rows are sorted by depth, then node id. Nodes reachable only through a
// cycle are omitted.
func BuildDepth(nodeIDs []string, edges []Edge) []DepthRow {
	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	unresolved := make(map[string]bool)
	for _, e := range edges {
		if e.ParentID == "" {
			unresolved[e.NodeID] = true
			continue
		}
		children[e.ParentID] = append(children[e.ParentID], e.NodeID)
		hasParent[e.NodeID] = true
	}
	for _, c := range children {
		sort.Strings(c)
	}

	var roots []string
	for _, n := range nodeIDs {
		if !hasParent[n] {
			roots = append(roots, n)
		}
	}
	sort.Strings(roots)

	type item struct {
		node  string
		depth int
	}
	queue := make([]item, 0, len(roots))
	for _, r := range roots {
		queue = append(queue, item{node: r})
	}

	seen := make(map[string]bool)
	var rows []DepthRow
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		if seen[it.node] {
			continue
		}
		seen[it.node] = true
		rows = append(rows, DepthRow{NodeID: it.node, Depth: it.depth, UnresolvedParent: unresolved[it.node]})
		for _, c := range children[it.node] {
			queue = append(queue, item{node: c, depth: it.depth + 1})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Depth != rows[j].Depth {
			return rows[i].Depth < rows[j].Depth
		}
		return rows[i].NodeID < rows[j].NodeID
	})
	return rows
}
