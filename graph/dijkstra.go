// Package graph implements the Dijkstra-radius ball query the
// intrinsic triangulation core treats as an external collaborator:
// find every vertex within a given graph distance of a source vertex,
// walking edge lengths rather than Euclidean distance.
package graph

import (
	"container/heap"

	"github.com/GrainArc/IntrinsicTin/halfedge"
)

type heapItem struct {
	v    halfedge.Vertex
	dist float64
}

type vertexHeap []heapItem

func (h vertexHeap) Len() int            { return len(h) }
func (h vertexHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h vertexHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *vertexHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *vertexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// VertexDijkstraDistanceWithinRadius runs Dijkstra's algorithm outward
// from source along mesh edges weighted by lengths, and returns the
// distance to every vertex reachable within radius (inclusive). The
// source itself is included with distance 0.
func VertexDijkstraDistanceWithinRadius(m *halfedge.Mesh, lengths *halfedge.EdgeAttr[float64], source halfedge.Vertex, radius float64) map[halfedge.Vertex]float64 {
	dist := make(map[halfedge.Vertex]float64)
	visited := make(map[halfedge.Vertex]bool)

	pq := &vertexHeap{{v: source, dist: 0}}
	dist[source] = 0

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(heapItem)
		if visited[cur.v] {
			continue
		}
		if cur.dist > dist[cur.v] {
			continue
		}
		visited[cur.v] = true

		m.ForEachOutgoingHalfedge(cur.v, func(he halfedge.Halfedge) bool {
			u := m.Head(he)
			w := lengths.Get(m.Edge(he))
			nd := cur.dist + w
			if nd > radius+1e-12 {
				return true
			}
			if old, ok := dist[u]; !ok || nd < old {
				dist[u] = nd
				heap.Push(pq, heapItem{v: u, dist: nd})
			}
			return true
		})
	}

	return dist
}
