package lineage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Graph is the file form of a lineage input:
//
//	nodes: [orders, customers, order_summary]
//	edges:
//	  - {node: order_summary, parent: orders}
//	  - {node: orders}
type Graph struct {
	Nodes []string `yaml:"nodes"`
	Edges []Edge   `yaml:"edges"`
}

// LoadGraph reads a YAML lineage graph from path.
func LoadGraph(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lineage graph: %w", err)
	}
	var g Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse lineage graph %s: %w", path, err)
	}
	return &g, nil
}
