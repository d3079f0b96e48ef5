// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikigraph

import (
	"encoding/json"
	"fmt"
	"os"
)

// exportFile is the on-disk shape of an exported graph.
type exportFile struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"edges"`
}

// WriteJSON writes the graph as a JSON document of nodes and edges,
// overwriting any existing file.
func (g *Graph) WriteJSON(path string) error {
	out := exportFile{
		Nodes: g.Nodes(),
		Edges: g.Edges(),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling graph: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a graph previously written by WriteJSON.
func ReadJSON(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	var in exportFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing graph file: %w", err)
	}

	g := NewGraph()
	for _, n := range in.Nodes {
		g.AddNode(n)
	}
	for _, e := range in.Edges {
		g.AddEdge(e.From, e.To)
	}
	return g, nil
}
