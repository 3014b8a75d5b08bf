// Package graph provides a directed weighted graph over dense vertex ids and a
// single-source shortest-path router on top of it.
package graph

import "fmt"

// VertexID is a dense vertex index in [0, VertexCount).
type VertexID uint32

// EdgeID is the index of an edge in insertion order.
type EdgeID uint32

// Edge is a directed weighted edge.
type Edge struct {
	From   VertexID
	To     VertexID
	Weight float64
}

// DirectedWeightedGraph stores edges in insertion order plus a per-vertex
// incidence list of outgoing edges.
type DirectedWeightedGraph struct {
	edges     []Edge
	incidence [][]EdgeID
}

// NewDirectedWeightedGraph creates a graph with a fixed number of vertices.
func NewDirectedWeightedGraph(vertexCount int) *DirectedWeightedGraph {
	return &DirectedWeightedGraph{
		incidence: make([][]EdgeID, vertexCount),
	}
}

// AddEdge appends an edge and returns its id. Both endpoints must be valid
// vertices; anything else is a programming error and panics.
func (g *DirectedWeightedGraph) AddEdge(e Edge) EdgeID {
	if int(e.From) >= len(g.incidence) || int(e.To) >= len(g.incidence) {
		panic(fmt.Sprintf("graph: edge %d->%d outside %d vertices", e.From, e.To, len(g.incidence)))
	}
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, e)
	g.incidence[e.From] = append(g.incidence[e.From], id)
	return id
}

func (g *DirectedWeightedGraph) VertexCount() int { return len(g.incidence) }

func (g *DirectedWeightedGraph) EdgeCount() int { return len(g.edges) }

// Edge returns the edge with the given id.
func (g *DirectedWeightedGraph) Edge(id EdgeID) Edge { return g.edges[id] }

// IncidentEdges returns the ids of edges leaving v in insertion order.
// The slice must not be modified.
func (g *DirectedWeightedGraph) IncidentEdges(v VertexID) []EdgeID {
	return g.incidence[v]
}
