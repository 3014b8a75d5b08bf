package graph

import (
	"container/heap"
	"math"
	"slices"
)

// RouteInfo is a shortest path: its total weight and the edges in travel order.
type RouteInfo struct {
	Weight float64
	Edges  []EdgeID
}

// Router answers point-to-point shortest path queries with Dijkstra's
// algorithm. Weights must be non-negative.
type Router struct {
	graph *DirectedWeightedGraph
}

func NewRouter(g *DirectedWeightedGraph) *Router {
	return &Router{graph: g}
}

// Graph returns the graph the router searches.
func (r *Router) Graph() *DirectedWeightedGraph { return r.graph }

// BuildRoute returns the cheapest path from one vertex to another and false
// when the destination is unreachable. A route from a vertex to itself is
// empty with zero weight. Ties are broken by lower vertex id, then by edge
// insertion order, so results are deterministic.
func (r *Router) BuildRoute(from, to VertexID) (RouteInfo, bool) {
	n := r.graph.VertexCount()
	if int(from) >= n || int(to) >= n {
		return RouteInfo{}, false
	}

	dist := make([]float64, n)
	prevEdge := make([]int64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prevEdge[i] = -1
	}
	dist[from] = 0

	pq := &vertexQueue{{vertex: from, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(queueItem)
		if item.dist > dist[item.vertex] {
			continue
		}
		if item.vertex == to {
			break
		}
		for _, id := range r.graph.IncidentEdges(item.vertex) {
			e := r.graph.Edge(id)
			nd := item.dist + e.Weight
			if nd < dist[e.To] {
				dist[e.To] = nd
				prevEdge[e.To] = int64(id)
				heap.Push(pq, queueItem{vertex: e.To, dist: nd})
			}
		}
	}

	if math.IsInf(dist[to], 1) {
		return RouteInfo{}, false
	}

	var edges []EdgeID
	for v := to; v != from; {
		id := EdgeID(prevEdge[v])
		edges = append(edges, id)
		v = r.graph.Edge(id).From
	}
	slices.Reverse(edges)
	return RouteInfo{Weight: dist[to], Edges: edges}, true
}

type queueItem struct {
	vertex VertexID
	dist   float64
}

// vertexQueue is a min-heap of vertices by tentative distance.
type vertexQueue []queueItem

func (q vertexQueue) Len() int { return len(q) }

func (q vertexQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].vertex < q[j].vertex
}

func (q vertexQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *vertexQueue) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *vertexQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}
