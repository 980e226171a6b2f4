package lineage

import (
	"fmt"
	"sort"
)

// Orderer produces a total order over node ids.
// Implementations return a new slice containing every input id.
type Orderer interface {
	Order(nodeIDs []string, edges []Edge) []string
}

// Lexicographic orders node ids by byte-wise string comparison.
type Lexicographic struct{}

// Order implements Orderer.
func (Lexicographic) Order(nodeIDs []string, _ []Edge) []string {
	out := append([]string(nil), nodeIDs...)
	sort.Strings(out)
	return out
}

// Topological orders parents before children. Ready nodes are taken in
// lexicographic order, and nodes left on a cycle are appended
// lexicographically. Edges naming nodes outside nodeIDs are ignored.
// Duplicate ids are kept and emitted together.
type Topological struct{}

// Order implements Orderer.
func (Topological) Order(nodeIDs []string, edges []Edge) []string {
	count := make(map[string]int, len(nodeIDs))
	for _, n := range nodeIDs {
		count[n]++
	}

	indegree := make(map[string]int, len(count))
	children := make(map[string][]string)
	seenEdge := make(map[Edge]bool)
	for n := range count {
		indegree[n] = 0
	}
	for _, e := range edges {
		if e.ParentID == "" || e.ParentID == e.NodeID || seenEdge[e] {
			continue
		}
		if _, ok := count[e.NodeID]; !ok {
			continue
		}
		if _, ok := count[e.ParentID]; !ok {
			continue
		}
		seenEdge[e] = true
		children[e.ParentID] = append(children[e.ParentID], e.NodeID)
		indegree[e.NodeID]++
	}

	var ready []string
	for n, d := range indegree {
		if d == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	out := make([]string, 0, len(nodeIDs))
	emit := func(n string) {
		for i := 0; i < count[n]; i++ {
			out = append(out, n)
		}
		delete(indegree, n)
	}

	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		emit(n)
		for _, c := range children[n] {
			indegree[c]--
			if indegree[c] == 0 {
				ready = insertSorted(ready, c)
			}
		}
	}

	var cyclic []string
	for n := range indegree {
		cyclic = append(cyclic, n)
	}
	sort.Strings(cyclic)
	for _, n := range cyclic {
		emit(n)
	}
	return out
}

func insertSorted(s []string, v string) []string {
	i := sort.SearchStrings(s, v)
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// ParseOrderer resolves an orderer by name ("lexicographic", "topological").
func ParseOrderer(name string) (Orderer, error) {
	switch name {
	case "", "lexicographic":
		return Lexicographic{}, nil
	case "topological":
		return Topological{}, nil
	default:
		return nil, fmt.Errorf("unknown lineage order %q", name)
	}
}
