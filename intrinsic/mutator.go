package intrinsic

import (
	"github.com/paulmach/orb"

	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/surface"
)

// Mutator is the abstract mutation contract a concrete intrinsic
// triangulation realization must satisfy. Base's refinement drivers
// (FlipToDelaunay, DelaunayRefine) are written only against this
// interface; they never know whether the concrete realization is the
// signpost layer or some other variant (e.g. an integer-coordinate
// one). A concrete type embeds *Base and calls Base.BindMutator(self)
// at construction so the drivers can call back into it.
type Mutator interface {
	FlipEdgeIfNotDelaunay(e halfedge.Edge) bool
	FlipEdgeIfPossible(e halfedge.Edge, eps float64) bool

	InsertVertex(p surface.Point) halfedge.Vertex
	InsertCircumcenter(f halfedge.Face) halfedge.Vertex
	InsertBarycenter(f halfedge.Face) halfedge.Vertex
	RemoveInsertedVertex(v halfedge.Vertex) halfedge.Face
	SplitEdge(he halfedge.Halfedge, t float64) (halfedge.Halfedge, halfedge.Halfedge)

	// TraceDirectionOnInput resolves the tracing frame for he's
	// signpost direction against the input mesh: a starting face and
	// barycentric point equal to ι(tail(he)), and a 2D direction vector
	// expressed in that face's layout basis pointing along he's
	// signpost direction. Base.traceHalfedge scales this vector to
	// edgeLengths[edge(he)] and hands it to the geodesic tracer.
	TraceDirectionOnInput(he halfedge.Halfedge) (halfedge.Face, [3]float64, orb.Point)
}
