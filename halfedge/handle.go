// Package halfedge implements a mutable half-edge triangle mesh: the
// mesh handle layer that the intrinsic triangulation core is built on
// top of. Every combinatorial edit (flip, vertex insertion, vertex
// removal) lives here; the package knows nothing about edge lengths,
// angles, or surface correspondence.
package halfedge

// invalidIndex marks a handle that does not refer to any element.
const invalidIndex = -1

// Vertex identifies a vertex of a Mesh. The zero value refers to the
// vertex with index 0; InvalidVertex is the "no such vertex" handle.
// Use Mesh.VertexIsDead to test validity after possible deletion.
type Vertex struct{ id int32 }

// Edge identifies an undirected edge of a Mesh.
type Edge struct{ id int32 }

// Face identifies a triangular face of a Mesh, or a boundary loop when
// Mesh.FaceIsBoundaryLoop reports true for it.
type Face struct{ id int32 }

// Halfedge identifies one of the two directed halves of an Edge.
type Halfedge struct{ id int32 }

// InvalidVertex, InvalidEdge, InvalidFace and InvalidHalfedge are the
// sentinel "no such element" handles returned when an operation fails.
var (
	InvalidVertex   = Vertex{invalidIndex}
	InvalidEdge     = Edge{invalidIndex}
	InvalidFace     = Face{invalidIndex}
	InvalidHalfedge = Halfedge{invalidIndex}
)

// IsValid reports whether the handle could possibly refer to a live
// element. It does not consult the mesh, so it cannot detect deletion;
// use Mesh.VertexIsDead (and friends) for that.
func (v Vertex) IsValid() bool   { return v.id != invalidIndex }
func (e Edge) IsValid() bool     { return e.id != invalidIndex }
func (f Face) IsValid() bool     { return f.id != invalidIndex }
func (h Halfedge) IsValid() bool { return h.id != invalidIndex }
