package signpost

import (
	"math"

	"github.com/GrainArc/IntrinsicTin/geom"
	"github.com/GrainArc/IntrinsicTin/halfedge"
)

// SplitEdge inserts a new vertex on he's edge at parameter t from
// Tail(he), dividing each of its (up to two) incident triangles in
// two. he must not border a boundary loop; the boundary case is left
// to insertVertexOnBoundaryEdge, which this realization does not
// implement (the data model only promises boundary-edge splitting via
// the input mesh's own fixed structure, never the intrinsic one).
//
// Returns the invalid halfedge pair if he's edge cannot be split.
func (t *Triangulation) SplitEdge(he halfedge.Halfedge, tParam float64) (halfedge.Halfedge, halfedge.Halfedge) {
	m := t.Mesh
	het0 := m.Twin(he)
	if m.FaceIsBoundaryLoop(m.Face(he)) || m.FaceIsBoundaryLoop(m.Face(het0)) {
		return halfedge.InvalidHalfedge, halfedge.InvalidHalfedge
	}

	e := m.Edge(he)
	lAB := t.EdgeLengths.Get(e)
	wasOriginal := t.edgeIsOriginal.Get(e)
	a := m.Tail(he)
	trueAngleAB := t.intrinsicHalfedgeDirections.Get(he) * t.vertexAngleScaling(a)

	he1 := m.Next(he)
	he2 := m.Next(he1)
	he3 := m.Next(het0)
	he4 := m.Next(he3)
	lBC := t.EdgeLengths.Get(m.Edge(he1))
	lCA := t.EdgeLengths.Get(m.Edge(he2))
	lAD := t.EdgeLengths.Get(m.Edge(he3))
	lDB := t.EdgeLengths.Get(m.Edge(he4))

	posA, posB, posC := geom.LayoutTriangleFromLengths(lAB, lBC, lCA)
	posV1 := geom.Add(posA, geom.Scale(geom.Sub(posB, posA), tParam))
	lVC := geom.Norm(geom.Sub(posV1, posC))

	posB2, posA2, posD := geom.LayoutTriangleFromLengths(lAB, lAD, lDB)
	posV2 := geom.Add(posB2, geom.Scale(geom.Sub(posA2, posB2), 1-tParam))
	lVD := geom.Norm(geom.Sub(posV2, posD))

	v, heVB, heVA, err := m.SplitEdgeWithVertex(he)
	if err != nil {
		return halfedge.InvalidHalfedge, halfedge.InvalidHalfedge
	}

	t.EdgeLengths.Grow(m)
	t.edgeIsOriginal.Grow(m)
	t.intrinsicHalfedgeDirections.Grow(m)
	t.intrinsicVertexAngleSums.Grow(m)
	t.VertexLocations.Grow(m)
	t.MarkedEdges.Grow(m)

	heVC := m.Next(he)
	heVD := m.Twin(m.Next(he3))
	eVB := m.Edge(heVB)
	eVC := m.Edge(heVC)
	eVD := m.Edge(heVD)

	t.EdgeLengths.Set(e, tParam*lAB)
	t.EdgeLengths.Set(eVB, (1-tParam)*lAB)
	t.EdgeLengths.Set(eVC, lVC)
	t.EdgeLengths.Set(eVD, lVD)

	t.edgeIsOriginal.Set(e, wasOriginal)
	t.edgeIsOriginal.Set(eVB, wasOriginal)
	t.edgeIsOriginal.Set(eVC, false)
	t.edgeIsOriginal.Set(eVD, false)

	loc, err := t.traceFromVertex(a, trueAngleAB, tParam*lAB)
	if err != nil {
		loc = t.VertexLocations.Get(a)
	}
	t.VertexLocations.Set(v, loc)
	t.intrinsicVertexAngleSums.Set(v, 2*math.Pi)

	b := m.Head(heVB)
	c := m.Head(heVC)
	d := m.Head(heVD)
	for _, vv := range [5]halfedge.Vertex{a, b, c, d, v} {
		t.initDirectionsAroundVertex(vv)
	}

	t.FireEdgeSplit(e, heVA, heVB)
	return heVA, heVB
}
