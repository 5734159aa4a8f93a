package signpost

import (
	"fmt"

	"github.com/GrainArc/IntrinsicTin/geom"
	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/intrinsic"
)

// flippedQuad lays out the two triangles incident to e in a shared 2D
// frame (A at origin, B on +x, C above, D unfolded across AB opposite
// C) and returns the candidate new diagonal length |C-D| along with
// the four surrounding edge lengths needed to check feasibility.
func (t *Triangulation) flippedQuad(e halfedge.Edge) (newLen, lCA, lAD, lDB, lBC float64) {
	he0 := t.Mesh.EdgeHalfedge(e)
	het0 := t.Mesh.Twin(he0)
	h1 := t.Mesh.Next(he0)
	h2 := t.Mesh.Next(h1)
	h3 := t.Mesh.Next(het0)
	h4 := t.Mesh.Next(h3)

	lAB := t.EdgeLengths.Get(e)
	lBC = t.EdgeLengths.Get(t.Mesh.Edge(h1))
	lCA = t.EdgeLengths.Get(t.Mesh.Edge(h2))
	lAD = t.EdgeLengths.Get(t.Mesh.Edge(h3))
	lDB = t.EdgeLengths.Get(t.Mesh.Edge(h4))

	posA, posB, posC := geom.LayoutTriangleFromLengths(lAB, lBC, lCA)
	posD := geom.UnfoldApex(posA, posB, lAD, lDB, posC)
	newLen = geom.Norm(geom.Sub(posD, posC))
	return
}

// computeFlippedLength returns the candidate new diagonal length for
// flipping e, and whether the flip is geometrically feasible with the
// given slack: the new length is strictly positive and both resulting
// triangles satisfy the triangle inequality with margin slack.
func (t *Triangulation) computeFlippedLength(e halfedge.Edge, slack float64) (float64, bool) {
	newLen, lCA, lAD, lDB, lBC := t.flippedQuad(e)
	if newLen <= slack {
		return 0, false
	}
	if !geom.SatisfiesTriangleInequality(lAD, newLen, lCA, slack) {
		return 0, false
	}
	if !geom.SatisfiesTriangleInequality(lDB, lBC, newLen, slack) {
		return 0, false
	}
	return newLen, true
}

// flipEdgeInternal is the low-level flip: edits M's combinatorics,
// writes the new length, clears edgeIsOriginal, recomputes the two
// touched halfedges' directions from their (unaffected) CW neighbors,
// and fires the edge-flip callbacks.
func (t *Triangulation) flipEdgeInternal(e halfedge.Edge, newLen float64) error {
	he := t.Mesh.EdgeHalfedge(e)
	if t.Mesh.FaceIsBoundaryLoop(t.Mesh.Face(he)) || t.Mesh.FaceIsBoundaryLoop(t.Mesh.Face(t.Mesh.Twin(he))) {
		return fmt.Errorf("signpost: cannot flip a boundary edge")
	}
	if err := t.Mesh.FlipEdge(e); err != nil {
		return err
	}

	t.EdgeLengths.Set(e, newLen)
	t.edgeIsOriginal.Set(e, false)

	he = t.Mesh.EdgeHalfedge(e)
	twin := t.Mesh.Twin(he)
	t.updateAngleFromCWNeighbor(he)
	t.updateAngleFromCWNeighbor(twin)

	t.FireEdgeFlip(e)
	return nil
}

// FlipEdgeIfNotDelaunay flips e iff it is not fixed, not already
// Delaunay, and the flip is geometrically feasible. Returns whether a
// flip occurred.
func (t *Triangulation) FlipEdgeIfNotDelaunay(e halfedge.Edge) bool {
	if t.IsFixed(e) || t.IsDelaunay(e) {
		return false
	}
	newLen, ok := t.computeFlippedLength(e, intrinsic.Eps)
	if !ok {
		return false
	}
	return t.flipEdgeInternal(e, newLen) == nil
}

// FlipEdgeIfPossible flips e iff it is not fixed and the flip is
// geometrically feasible with the given slack, regardless of whether
// e is currently Delaunay. Returns whether a flip occurred.
func (t *Triangulation) FlipEdgeIfPossible(e halfedge.Edge, eps float64) bool {
	if t.IsFixed(e) {
		return false
	}
	newLen, ok := t.computeFlippedLength(e, eps)
	if !ok {
		return false
	}
	return t.flipEdgeInternal(e, newLen) == nil
}

// FlipEdgeManual performs the low-level flip with a caller-supplied
// new length and the two new halfedges' directions (already
// standardized cone-space angles), bypassing updateAngleFromCWNeighbor.
func (t *Triangulation) FlipEdgeManual(e halfedge.Edge, newLen, dirHe, dirTwin float64) error {
	he := t.Mesh.EdgeHalfedge(e)
	if t.Mesh.FaceIsBoundaryLoop(t.Mesh.Face(he)) || t.Mesh.FaceIsBoundaryLoop(t.Mesh.Face(t.Mesh.Twin(he))) {
		return fmt.Errorf("signpost: cannot flip a boundary edge")
	}
	if err := t.Mesh.FlipEdge(e); err != nil {
		return err
	}
	t.EdgeLengths.Set(e, newLen)
	t.edgeIsOriginal.Set(e, false)

	he = t.Mesh.EdgeHalfedge(e)
	twin := t.Mesh.Twin(he)
	t.intrinsicHalfedgeDirections.Set(he, t.standardizeAngle(t.Mesh.Tail(he), dirHe))
	t.intrinsicHalfedgeDirections.Set(twin, t.standardizeAngle(t.Mesh.Tail(twin), dirTwin))

	t.FireEdgeFlip(e)
	return nil
}
