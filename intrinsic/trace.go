package intrinsic

import (
	"math"

	"github.com/GrainArc/IntrinsicTin/geodesic"
	"github.com/GrainArc/IntrinsicTin/geom"
	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/surface"
)

// pointsCoincide reports whether two SurfacePoints on the input mesh
// are close enough to be treated as the same location, for the
// purposes of traceHalfedge's trimEnd behavior.
func pointsCoincide(a, b surface.Point) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case surface.KindVertex:
		return a.Vertex == b.Vertex
	case surface.KindEdge:
		return a.Edge == b.Edge && math.Abs(a.T-b.T) < 1e-9
	default:
		return a.Face == b.Face
	}
}

// traceHalfedge walks he as a geodesic across the input mesh, starting
// from ι(tail(he)) with the tangent given by he's signpost direction,
// for distance edgeLengths[edge(he)]. If trimEnd, the returned
// sequence stops at the first point that coincides with ι(head(he));
// otherwise it runs the full traced distance and appends that endpoint.
func (b *Base) traceHalfedge(he halfedge.Halfedge, trimEnd bool) ([]surface.Point, error) {
	length := b.EdgeLengths.Get(b.Mesh.Edge(he))
	startFace, bary, dir := b.ops.TraceDirectionOnInput(he)

	dirLen := geom.Norm(dir)
	if dirLen < 1e-12 {
		return []surface.Point{b.VertexLocations.Get(b.Mesh.Tail(he))}, nil
	}
	dir = geom.Scale(dir, length/dirLen)

	res, err := geodesic.TraceGeodesic(b.InputMesh, b.InputLengths, startFace, bary[0], bary[1], bary[2], dir, geodesic.TraceOptions{})
	if err != nil {
		return nil, err
	}

	headLoc := b.VertexLocations.Get(b.Mesh.Head(he))

	points := []surface.Point{b.VertexLocations.Get(b.Mesh.Tail(he))}
	for _, c := range res.Crossings {
		p := surface.AtEdge(c.Edge, c.T)
		points = append(points, p)
		if trimEnd && pointsCoincide(p, headLoc) {
			return points, nil
		}
	}
	points = append(points, res.EndPoint)
	return points, nil
}

// TraceHalfedge is the exported form of traceHalfedge.
func (b *Base) TraceHalfedge(he halfedge.Halfedge, trimEnd bool) ([]surface.Point, error) {
	return b.traceHalfedge(he, trimEnd)
}

// TraceEdges traces every edge of the intrinsic mesh as a geodesic
// across the input mesh, keyed by edge.
func (b *Base) TraceEdges() (map[halfedge.Edge][]surface.Point, error) {
	out := make(map[halfedge.Edge][]surface.Point)
	var err error
	b.Mesh.ForEachEdge(func(e halfedge.Edge) bool {
		pts, terr := b.traceHalfedge(b.Mesh.EdgeHalfedge(e), false)
		if terr != nil {
			err = terr
			return false
		}
		out[e] = pts
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
