package signpost

import (
	"math"

	"github.com/GrainArc/IntrinsicTin/geodesic"
	"github.com/GrainArc/IntrinsicTin/geom"
	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/surface"
)

// InsertVertex adds p to the intrinsic mesh: a Face point splits its
// face into three, an Edge point splits the edge in two, and a Vertex
// point is a no-op that returns the vertex already there.
func (t *Triangulation) InsertVertex(p surface.Point) halfedge.Vertex {
	switch p.Kind {
	case surface.KindVertex:
		return p.Vertex

	case surface.KindEdge:
		he := t.Mesh.EdgeHalfedge(p.Edge)
		_, h2 := t.SplitEdge(he, p.T)
		if !h2.IsValid() {
			return halfedge.InvalidVertex
		}
		return t.Mesh.Tail(h2)

	default:
		return t.insertVertexInFace(p.Face, p.Bary0, p.Bary1, p.Bary2)
	}
}

// insertVertexInFace lays out f, places the new point by its
// barycentric coordinates, and records its three distances to f's
// corners as the new edges' lengths. Its location on the input mesh is
// resolved by tracing from f's first corner along the straight path to
// it, reusing that corner's existing signpost direction to f's first
// edge as the reference to rotate from.
func (t *Triangulation) insertVertexInFace(f halfedge.Face, b0, b1, b2 float64) halfedge.Vertex {
	m := t.Mesh
	h0 := m.FaceHalfedge(f)
	h1 := m.Next(h0)
	h2 := m.Next(h1)
	a := m.Tail(h0)
	b := m.Tail(h1)
	c := m.Tail(h2)

	lAB := t.EdgeLengths.Get(m.Edge(h0))
	lBC := t.EdgeLengths.Get(m.Edge(h1))
	lCA := t.EdgeLengths.Get(m.Edge(h2))
	posA, posB, posC := geom.LayoutTriangleFromLengths(lAB, lBC, lCA)
	p := geom.PointFromBarycentric(b0, b1, b2, posA, posB, posC)

	dA := geom.Norm(geom.Sub(p, posA))
	dB := geom.Norm(geom.Sub(p, posB))
	dC := geom.Norm(geom.Sub(p, posC))

	// posB sits on the +x axis in this layout, so the angle of h0 (the
	// a->b direction) within it is 0: the offset from h0 to a->p is
	// exactly p's own polar angle here.
	offsetFromAB := geom.Angle(geom.Sub(p, posA))
	trueAngleAB := t.intrinsicHalfedgeDirections.Get(h0) * t.vertexAngleScaling(a)
	traceAngle := trueAngleAB + offsetFromAB

	v, edges := m.SplitFaceWithVertex(f)

	t.EdgeLengths.Grow(m)
	t.edgeIsOriginal.Grow(m)
	t.intrinsicHalfedgeDirections.Grow(m)
	t.intrinsicVertexAngleSums.Grow(m)
	t.VertexLocations.Grow(m)
	t.MarkedEdges.Grow(m)

	t.EdgeLengths.Set(edges[0], dA)
	t.EdgeLengths.Set(edges[1], dB)
	t.EdgeLengths.Set(edges[2], dC)
	for _, e := range edges {
		t.edgeIsOriginal.Set(e, false)
	}

	t.intrinsicVertexAngleSums.Set(v, 2*math.Pi)

	loc, err := t.traceFromVertex(a, traceAngle, dA)
	if err != nil {
		loc = t.VertexLocations.Get(a)
	}
	t.VertexLocations.Set(v, loc)

	for _, vv := range [4]halfedge.Vertex{a, b, c, v} {
		t.initDirectionsAroundVertex(vv)
	}

	t.FireFaceInsertion(f, v)
	return v
}

// InsertCircumcenter inserts f's circumcenter, or — if a marked edge
// blocks the straight path to it — the midpoint of that edge instead,
// which is exactly what Chew's second algorithm needs there. If the
// path reaches the mesh boundary, nothing is inserted and
// InvalidVertex is returned, since SplitEdge does not split boundary
// edges.
func (t *Triangulation) InsertCircumcenter(f halfedge.Face) halfedge.Vertex {
	m := t.Mesh
	h0 := m.FaceHalfedge(f)
	h1 := m.Next(h0)
	h2 := m.Next(h1)
	lAB := t.EdgeLengths.Get(m.Edge(h0))
	lBC := t.EdgeLengths.Get(m.Edge(h1))
	lCA := t.EdgeLengths.Get(m.Edge(h2))

	w0, w1, w2 := geom.CircumcenterBarycentric(lBC, lCA, lAB)
	b0, b1, b2 := geom.NormalizeBarycentric(w0, w1, w2)

	posA, posB, posC := geom.LayoutTriangleFromLengths(lAB, lBC, lCA)
	barycenter := geom.PointFromBarycentric(1.0/3, 1.0/3, 1.0/3, posA, posB, posC)
	circum := geom.PointFromBarycentric(b0, b1, b2, posA, posB, posC)
	dir := geom.Sub(circum, barycenter)

	barrier := make(map[halfedge.Edge]bool)
	anyMarked := false
	m.ForEachEdge(func(e halfedge.Edge) bool {
		if t.MarkedEdges.Get(e) {
			barrier[e] = true
			anyMarked = true
		}
		return true
	})
	opts := geodesic.TraceOptions{}
	if anyMarked {
		opts.BarrierEdges = barrier
	}

	res, err := geodesic.TraceGeodesic(m, t.EdgeLengths, f, 1.0/3, 1.0/3, 1.0/3, dir, opts)
	if err != nil {
		return halfedge.InvalidVertex
	}

	newPos := res.EndPoint
	if newPos.Kind == surface.KindEdge {
		newPos = surface.AtEdge(newPos.Edge, 0.5)
	}
	return t.InsertVertex(newPos)
}

// InsertBarycenter inserts f's barycenter.
func (t *Triangulation) InsertBarycenter(f halfedge.Face) halfedge.Vertex {
	return t.InsertVertex(surface.Barycenter(f))
}
