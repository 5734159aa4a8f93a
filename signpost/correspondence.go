package signpost

import (
	"github.com/paulmach/orb"

	"github.com/GrainArc/IntrinsicTin/geodesic"
	"github.com/GrainArc/IntrinsicTin/geom"
	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/surface"
)

// inputFaceAndBary re-expresses a SurfacePoint on the input mesh as a
// (face, barycentric) pair, picking an arbitrary incident face for
// Vertex- and Edge-kind points.
func inputFaceAndBary(m *halfedge.Mesh, p surface.Point) (halfedge.Face, [3]float64) {
	switch p.Kind {
	case surface.KindFace:
		return p.Face, [3]float64{p.Bary0, p.Bary1, p.Bary2}

	case surface.KindEdge:
		he := m.EdgeHalfedge(p.Edge)
		f := m.Face(he)
		if m.FaceIsBoundaryLoop(f) {
			he = m.Twin(he)
			f = m.Face(he)
		}
		h0 := m.FaceHalfedge(f)
		h1 := m.Next(h0)
		h2 := m.Next(h1)
		corners := [3]halfedge.Halfedge{h0, h1, h2}
		for _, hk := range corners {
			if m.Edge(hk) != p.Edge {
				continue
			}
			canon := hk == m.EdgeHalfedge(p.Edge)
			tTail, tHead := 1-p.T, p.T
			if !canon {
				tTail, tHead = p.T, 1-p.T
			}
			var bary [3]float64
			tail, head := m.Tail(hk), m.Head(hk)
			for i, hc := range corners {
				switch m.Tail(hc) {
				case tail:
					bary[i] = tTail
				case head:
					bary[i] = tHead
				default:
					bary[i] = 0
				}
			}
			return f, bary
		}
		return f, [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}

	default: // KindVertex
		var f halfedge.Face
		m.ForEachOutgoingHalfedge(p.Vertex, func(he halfedge.Halfedge) bool {
			if !m.FaceIsBoundaryLoop(m.Face(he)) {
				f = m.Face(he)
				return false
			}
			return true
		})
		h0 := m.FaceHalfedge(f)
		h1 := m.Next(h0)
		h2 := m.Next(h1)
		var bary [3]float64
		for i, hc := range [3]halfedge.Halfedge{h0, h1, h2} {
			if m.Tail(hc) == p.Vertex {
				bary[i] = 1
			}
		}
		return f, bary
	}
}

// layoutInputFace lays out f (a face of the input mesh) in 2D from
// InputLengths.
func (t *Triangulation) layoutInputFace(f halfedge.Face) (halfedge.Halfedge, halfedge.Halfedge, halfedge.Halfedge, orb.Point, orb.Point, orb.Point) {
	m := t.InputMesh
	h0 := m.FaceHalfedge(f)
	h1 := m.Next(h0)
	h2 := m.Next(h1)
	lAB := t.InputLengths.Get(m.Edge(h0))
	lBC := t.InputLengths.Get(m.Edge(h1))
	lCA := t.InputLengths.Get(m.Edge(h2))
	a, b, c := geom.LayoutTriangleFromLengths(lAB, lBC, lCA)
	return h0, h1, h2, a, b, c
}

// resolveFrame picks an input-mesh face and barycentric point equal to
// ι(v), together with a unit reference direction within that face's 2D
// layout. The reference direction is tied to v's designated
// angle-zero halfedge (VertexHalfedge(v), the same one
// initDirectionsAroundVertex anchors at direction zero) whenever that
// halfedge's neighbor is still resolvable on the input mesh, so a
// trace at true angle zero retraces v's real edge to that neighbor
// rather than an arbitrary rotation of it. Every direction anchored at
// v — an existing halfedge's signpost direction, or a fresh direction
// computed while inserting or splitting — is expressed as a rotation
// of this same reference, so it never needs to be stored.
func (t *Triangulation) resolveFrame(v halfedge.Vertex) (halfedge.Face, [3]float64, orb.Point) {
	loc := t.VertexLocations.Get(v)

	if loc.Kind == surface.KindVertex {
		if f, bary, anchorUnit, ok := t.resolveVertexFrameFromAnchor(v, loc.Vertex); ok {
			return f, bary, anchorUnit
		}
	}

	f, bary := inputFaceAndBary(t.InputMesh, loc)
	_, _, _, posA, posB, posC := t.layoutInputFace(f)
	p := geom.PointFromBarycentric(bary[0], bary[1], bary[2], posA, posB, posC)

	target := posA
	if geom.Norm(geom.Sub(target, p)) < 1e-9 {
		target = posB
	}
	anchor := geom.Sub(target, p)
	anchorLen := geom.Norm(anchor)
	if anchorLen < 1e-12 {
		anchor = orb.Point{1, 0}
		anchorLen = 1
	}
	return f, bary, geom.Scale(anchor, 1/anchorLen)
}

// resolveVertexFrameFromAnchor handles the common case where v is
// still an original (never relocated) input vertex: it finds the
// input face lying across v's angle-zero halfedge and lays it out
// from that halfedge, so the reference direction points exactly at
// that halfedge's neighbor. ok is false when the neighbor has itself
// moved off the input mesh (no longer a Vertex-kind correspondent) or
// shares no input face with inputV — resolveFrame then falls back to
// an arbitrary incident face, which is correct but not anchor-exact.
func (t *Triangulation) resolveVertexFrameFromAnchor(v, inputV halfedge.Vertex) (halfedge.Face, [3]float64, orb.Point, bool) {
	vhe := t.Mesh.VertexHalfedge(v)
	if !vhe.IsValid() {
		return halfedge.InvalidFace, [3]float64{}, orb.Point{}, false
	}
	wLoc := t.VertexLocations.Get(t.Mesh.Head(vhe))
	if wLoc.Kind != surface.KindVertex {
		return halfedge.InvalidFace, [3]float64{}, orb.Point{}, false
	}

	found := halfedge.InvalidHalfedge
	t.InputMesh.ForEachOutgoingHalfedge(inputV, func(he halfedge.Halfedge) bool {
		if t.InputMesh.FaceIsBoundaryLoop(t.InputMesh.Face(he)) {
			return true
		}
		if t.InputMesh.Head(he) == wLoc.Vertex {
			found = he
			return false
		}
		return true
	})
	if !found.IsValid() {
		return halfedge.InvalidFace, [3]float64{}, orb.Point{}, false
	}

	f := t.InputMesh.Face(found)
	h0, h1, _, posA, posB, posC := t.layoutInputFace(f)

	var bary [3]float64
	var p, target orb.Point
	switch found {
	case h0:
		bary, p, target = [3]float64{1, 0, 0}, posA, posB
	case h1:
		bary, p, target = [3]float64{0, 1, 0}, posB, posC
	default:
		bary, p, target = [3]float64{0, 0, 1}, posC, posA
	}

	anchor := geom.Sub(target, p)
	anchorLen := geom.Norm(anchor)
	if anchorLen < 1e-12 {
		return halfedge.InvalidFace, [3]float64{}, orb.Point{}, false
	}
	return f, bary, geom.Scale(anchor, 1/anchorLen), true
}

// traceFromVertex traces a straight geodesic of the given length from v,
// trueAngle radians (true, unscaled radians) from resolveFrame(v)'s
// reference direction, and returns where it lands on the input mesh.
func (t *Triangulation) traceFromVertex(v halfedge.Vertex, trueAngle, length float64) (surface.Point, error) {
	f, bary, anchorUnit := t.resolveFrame(v)
	dir := geom.Scale(geom.Rotate(anchorUnit, trueAngle), length)
	res, err := geodesic.TraceGeodesic(t.InputMesh, t.InputLengths, f, bary[0], bary[1], bary[2], dir, geodesic.TraceOptions{})
	if err != nil {
		return surface.Point{}, err
	}
	return res.EndPoint, nil
}

// TraceDirectionOnInput resolves he's tracing frame against the input
// mesh: resolveFrame(tail(he)) rotated by he's signpost direction.
func (t *Triangulation) TraceDirectionOnInput(he halfedge.Halfedge) (halfedge.Face, [3]float64, orb.Point) {
	v := t.Mesh.Tail(he)
	f, bary, anchorUnit := t.resolveFrame(v)
	trueAngle := t.intrinsicHalfedgeDirections.Get(he) * t.vertexAngleScaling(v)
	return f, bary, geom.Rotate(anchorUnit, trueAngle)
}

// EquivalentPointOnInput returns the location on the input mesh that
// corresponds to an intrinsic-mesh SurfacePoint p, by re-expressing
// its face/vertex/edge handles as input-mesh ones when p lies on an
// original (index-preserved, unmutated) element. Otherwise it returns
// the input-mesh location of the edge's canonical first endpoint, or
// of the face's first corner; no interpolation is done.
func (t *Triangulation) EquivalentPointOnInput(p surface.Point) surface.Point {
	switch p.Kind {
	case surface.KindVertex:
		return t.VertexLocations.Get(p.Vertex)
	case surface.KindEdge:
		he := t.Mesh.EdgeHalfedge(p.Edge)
		a := t.VertexLocations.Get(t.Mesh.Tail(he))
		b := t.VertexLocations.Get(t.Mesh.Head(he))
		if a.Kind == surface.KindVertex && b.Kind == surface.KindVertex {
			if e, ok := t.sharedInputEdge(a.Vertex, b.Vertex); ok {
				return surface.AtEdge(e, p.T)
			}
		}
		return a // best effort: no exact input-mesh edge exists post-mutation
	default:
		h0 := t.Mesh.FaceHalfedge(p.Face)
		h1 := t.Mesh.Next(h0)
		h2 := t.Mesh.Next(h1)
		locA := t.VertexLocations.Get(t.Mesh.Tail(h0))
		locB := t.VertexLocations.Get(t.Mesh.Tail(h1))
		locC := t.VertexLocations.Get(t.Mesh.Tail(h2))
		if locA.Kind == surface.KindVertex && locB.Kind == surface.KindVertex && locC.Kind == surface.KindVertex {
			if f, ok := t.sharedInputFace(locA.Vertex, locB.Vertex, locC.Vertex); ok {
				return surface.AtFace(f, p.Bary0, p.Bary1, p.Bary2)
			}
		}
		return locA
	}
}

func (t *Triangulation) sharedInputEdge(a, b halfedge.Vertex) (halfedge.Edge, bool) {
	found := halfedge.InvalidEdge
	t.InputMesh.ForEachOutgoingHalfedge(a, func(he halfedge.Halfedge) bool {
		if t.InputMesh.Head(he) == b {
			found = t.InputMesh.Edge(he)
			return false
		}
		return true
	})
	return found, found.IsValid()
}

func (t *Triangulation) sharedInputFace(a, b, c halfedge.Vertex) (halfedge.Face, bool) {
	result := halfedge.InvalidFace
	t.InputMesh.ForEachOutgoingHalfedge(a, func(he halfedge.Halfedge) bool {
		f := t.InputMesh.Face(he)
		if t.InputMesh.FaceIsBoundaryLoop(f) {
			return true
		}
		has := func(v halfedge.Vertex) bool {
			ok := false
			t.InputMesh.ForEachAdjacentHalfedge(f, func(h halfedge.Halfedge) bool {
				if t.InputMesh.Tail(h) == v {
					ok = true
					return false
				}
				return true
			})
			return ok
		}
		if has(b) && has(c) {
			result = f
			return false
		}
		return true
	})
	return result, result.IsValid()
}

// EquivalentPointOnIntrinsic locates the intrinsic-mesh point
// corresponding to p, a SurfacePoint on the input mesh. Only
// Vertex-kind points are handled: it returns the intrinsic vertex
// whose location is p's input vertex. For Edge- and Face-kind points
// it returns false; no tracing is done.
func (t *Triangulation) EquivalentPointOnIntrinsic(p surface.Point) (surface.Point, bool) {
	if p.Kind == surface.KindVertex {
		var found surface.Point
		ok := false
		t.Mesh.ForEachVertex(func(v halfedge.Vertex) bool {
			loc := t.VertexLocations.Get(v)
			if loc.Kind == surface.KindVertex && loc.Vertex == p.Vertex {
				found = surface.AtVertex(v)
				ok = true
				return false
			}
			return true
		})
		return found, ok
	}
	return surface.Point{}, false
}
