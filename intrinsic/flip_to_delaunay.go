package intrinsic

import (
	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/intrinsic/queue"
)

// FlipToDelaunay flips every non-Delaunay edge until none remain.
// Terminates because flipping only non-Delaunay edges cannot recur
// infinitely on a fixed vertex set (the Lawson flip argument).
func (b *Base) FlipToDelaunay() {
	q := queue.NewEdgeFIFO()
	b.Mesh.ForEachEdge(func(e halfedge.Edge) bool {
		q.Push(e)
		return true
	})

	for !q.Empty() {
		e := q.Pop()
		if b.Mesh.EdgeIsDead(e) {
			continue
		}
		if !b.ops.FlipEdgeIfNotDelaunay(e) {
			continue
		}
		he := b.Mesh.EdgeHalfedge(e)
		b.enqueueFaceEdges(q, b.Mesh.Face(he))
		b.enqueueFaceEdges(q, b.Mesh.Face(b.Mesh.Twin(he)))
	}
}

func (b *Base) enqueueFaceEdges(q *queue.EdgeFIFO, f halfedge.Face) {
	if b.Mesh.FaceIsBoundaryLoop(f) {
		return
	}
	b.Mesh.ForEachAdjacentHalfedge(f, func(he halfedge.Halfedge) bool {
		q.Push(b.Mesh.Edge(he))
		return true
	})
}
