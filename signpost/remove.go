package signpost

import (
	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/intrinsic"
	"github.com/GrainArc/IntrinsicTin/surface"
)

// RemoveInsertedVertex removes v by repeatedly flipping one of its
// non-fixed incident edges (each such flip swaps that spoke for the
// opposite diagonal of its two triangles, which doesn't touch v,
// reducing v's degree by exactly one) until v reaches degree 3, then
// collapses it. v must not sit on the boundary or a marked edge, and
// must not be an original (never-mutated) vertex; both cases return
// an invalid face and leave the mesh unchanged. If no further legal
// flip exists before degree 3, it also returns an invalid face, but
// the flips already made stay in place; they are not undone.
func (t *Triangulation) RemoveInsertedVertex(v halfedge.Vertex) halfedge.Face {
	m := t.Mesh
	if t.IsOnFixedEdge(v) {
		return halfedge.InvalidFace
	}
	if t.VertexLocations.Get(v).Kind == surface.KindVertex {
		return halfedge.InvalidFace
	}

	for m.VertexDegree(v) > 3 {
		if !t.flipOneIncidentEdge(v) {
			return halfedge.InvalidFace
		}
	}
	if m.VertexDegree(v) != 3 {
		return halfedge.InvalidFace
	}

	f, err := m.RemoveDegreeThreeVertex(v)
	if err != nil {
		return halfedge.InvalidFace
	}
	return f
}

// flipOneIncidentEdge tries every edge currently incident to v, in
// turn, flipping the first one that is both unfixed and geometrically
// feasible. The spoke list is snapshotted before flipping starts since
// a successful flip changes v's outgoing halfedges.
func (t *Triangulation) flipOneIncidentEdge(v halfedge.Vertex) bool {
	m := t.Mesh
	var spokes []halfedge.Edge
	m.ForEachOutgoingHalfedge(v, func(he halfedge.Halfedge) bool {
		spokes = append(spokes, m.Edge(he))
		return true
	})
	for _, e := range spokes {
		if t.IsFixed(e) {
			continue
		}
		if t.FlipEdgeIfPossible(e, intrinsic.Eps) {
			return true
		}
	}
	return false
}
