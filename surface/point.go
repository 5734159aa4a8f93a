// Package surface defines SurfacePoint, the tagged location type used
// throughout the intrinsic triangulation engine to pin an intrinsic
// vertex, or a geodesic trace endpoint, to a concrete spot on a
// triangle mesh.
package surface

import "github.com/GrainArc/IntrinsicTin/halfedge"

// Kind discriminates the three cases a Point can be in.
type Kind int

const (
	// KindVertex: the point is exactly a mesh vertex.
	KindVertex Kind = iota
	// KindEdge: the point lies on an edge at parameter T from its
	// canonical first endpoint.
	KindEdge
	// KindFace: the point lies in a face (interior or boundary) at
	// barycentric coordinates Bary0, Bary1, Bary2.
	KindFace
)

// Point is a location on some triangle mesh, tagged as exactly one of
// a vertex, a point along an edge, or a barycentric point in a face.
// The zero value equals AtVertex of the vertex with index 0; use the
// constructors below.
type Point struct {
	Kind Kind

	Vertex halfedge.Vertex

	Edge halfedge.Edge
	T    float64 // parameter along Edge from its canonical first endpoint

	Face  halfedge.Face
	Bary0 float64
	Bary1 float64
	Bary2 float64
}

// AtVertex returns a vertex SurfacePoint.
func AtVertex(v halfedge.Vertex) Point { return Point{Kind: KindVertex, Vertex: v} }

// AtEdge returns an edge SurfacePoint at parameter t in [0,1] from e's
// canonical first endpoint.
func AtEdge(e halfedge.Edge, t float64) Point { return Point{Kind: KindEdge, Edge: e, T: t} }

// AtFace returns a barycentric face SurfacePoint. The three weights
// need not already sum to 1.
func AtFace(f halfedge.Face, b0, b1, b2 float64) Point {
	return Point{Kind: KindFace, Face: f, Bary0: b0, Bary1: b1, Bary2: b2}
}

// Barycenter returns the centroid SurfacePoint of f.
func Barycenter(f halfedge.Face) Point {
	return AtFace(f, 1.0/3, 1.0/3, 1.0/3)
}
