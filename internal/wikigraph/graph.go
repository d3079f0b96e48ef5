// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wikigraph builds a concept graph from Wikidata by expanding seed
// entities along a fixed set of ontology properties.
package wikigraph

import (
	"fmt"
	"sort"
)

// Node is one Wikidata entity in the graph.
type Node struct {
	// QID is the Wikidata entity ID (e.g. "Q2539").
	QID string `json:"qid"`

	// Label is the English label, empty when Wikidata has none.
	Label string `json:"label"`

	// Description is the English description, empty when Wikidata has none.
	Description string `json:"description,omitempty"`

	// Hop is the distance from the nearest seed entity (seeds are hop 0).
	Hop int `json:"hop"`
}

// Edge is an undirected connection between two entities.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is an undirected graph of Wikidata entities.
type Graph struct {
	nodes map[string]*Node
	adj   map[string]map[string]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		adj:   make(map[string]map[string]struct{}),
	}
}

// AddNode inserts a node unless one with the same QID already exists.
func (g *Graph) AddNode(n *Node) {
	if _, ok := g.nodes[n.QID]; ok {
		return
	}
	g.nodes[n.QID] = n
	g.adj[n.QID] = make(map[string]struct{})
}

// AddEdge connects two existing nodes. Self-loops and edges to unknown
// nodes are ignored.
func (g *Graph) AddEdge(a, b string) {
	if a == b {
		return
	}
	if _, ok := g.nodes[a]; !ok {
		return
	}
	if _, ok := g.nodes[b]; !ok {
		return
	}
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
}

// HasNode reports whether the entity is in the graph.
func (g *Graph) HasNode(qid string) bool {
	_, ok := g.nodes[qid]
	return ok
}

// HasEdge reports whether the two entities are connected.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Node returns the node for qid, or nil.
func (g *Graph) Node(qid string) *Node {
	return g.nodes[qid]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Degree returns the number of neighbors of qid.
func (g *Graph) Degree(qid string) int {
	return len(g.adj[qid])
}

// Nodes returns all nodes sorted by QID for deterministic iteration.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QID < out[j].QID })
	return out
}

// Edges returns each undirected edge once, ordered for deterministic output.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for a, nbrs := range g.adj {
		for b := range nbrs {
			if a < b {
				out = append(out, Edge{From: a, To: b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// LargestComponent returns a copy of the largest connected subgraph.
// An empty graph yields an empty graph.
func (g *Graph) LargestComponent() *Graph {
	seen := make(map[string]struct{}, len(g.nodes))
	var best []string

	for qid := range g.nodes {
		if _, ok := seen[qid]; ok {
			continue
		}
		component := []string{qid}
		seen[qid] = struct{}{}
		for i := 0; i < len(component); i++ {
			for nb := range g.adj[component[i]] {
				if _, ok := seen[nb]; ok {
					continue
				}
				seen[nb] = struct{}{}
				component = append(component, nb)
			}
		}
		if len(component) > len(best) {
			best = component
		}
	}

	sub := NewGraph()
	for _, qid := range best {
		n := *g.nodes[qid]
		sub.AddNode(&n)
	}
	for _, qid := range best {
		for nb := range g.adj[qid] {
			sub.AddEdge(qid, nb)
		}
	}
	return sub
}

// RankedNode pairs a node with its centrality score.
type RankedNode struct {
	Node  *Node
	Score float64
}

// TopByDegree returns the topN non-seed nodes by degree centrality,
// excluding any QIDs in stop. Seeds (hop 0) are skipped because they
// trivially dominate the ranking.
func (g *Graph) TopByDegree(stop map[string]struct{}, topN int) []RankedNode {
	denom := float64(len(g.nodes) - 1)
	if denom <= 0 {
		return nil
	}

	var ranked []RankedNode
	for qid, n := range g.nodes {
		if n.Hop == 0 {
			continue
		}
		if _, ok := stop[qid]; ok {
			continue
		}
		ranked = append(ranked, RankedNode{Node: n, Score: float64(len(g.adj[qid])) / denom})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Node.QID < ranked[j].Node.QID
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// String summarizes the graph for progress output.
func (g *Graph) String() string {
	return fmt.Sprintf("graph: %d nodes, %d edges", len(g.nodes), len(g.Edges()))
}
