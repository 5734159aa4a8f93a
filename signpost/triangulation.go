// Package signpost implements the concrete realization of the
// intrinsic triangulation mutation contract: it stores, per halfedge,
// a polar-angle "signpost" direction in a tangent space rescaled so
// one full turn equals the tail vertex's cone-angle sum, and combines
// local Euclidean layout with geodesic tracing over the input mesh to
// keep every intrinsic vertex traceable back to a concrete input
// surface location.
//
// Triangulation is not thread-safe: a single logical owner mutates at
// a time, exactly like the Base it embeds.
package signpost

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/GrainArc/IntrinsicTin/geom"
	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/intrinsic"
)

// Triangulation is the signpost realization of an intrinsic
// triangulation.
type Triangulation struct {
	*intrinsic.Base

	// intrinsicHalfedgeDirections holds each halfedge's polar angle at
	// its tail, in cone-rescaled units (i.e. already reduced modulo
	// the tail's angle sum).
	intrinsicHalfedgeDirections *halfedge.HalfedgeAttr[float64]

	// intrinsicVertexAngleSums holds the total corner angle around each
	// vertex: 2*pi for a flat interior point, less at a convex cone,
	// in (0, pi] at the mesh boundary.
	intrinsicVertexAngleSums *halfedge.VertexAttr[float64]

	// edgeIsOriginal is true for exactly the edges unchanged since
	// construction; cleared permanently by any mutation touching them.
	edgeIsOriginal *halfedge.EdgeAttr[bool]
}

// New builds a signpost intrinsic triangulation as a structural copy
// of inputMesh, which must be triangular, with the given per-edge
// lengths.
func New(inputMesh *halfedge.Mesh, inputLengths *halfedge.EdgeAttr[float64]) (*Triangulation, error) {
	base, err := intrinsic.NewBase(inputMesh, inputLengths)
	if err != nil {
		return nil, err
	}

	t := &Triangulation{
		Base:                        base,
		intrinsicHalfedgeDirections: halfedge.NewHalfedgeAttr[float64](base.Mesh),
		intrinsicVertexAngleSums:    halfedge.NewVertexAttr[float64](base.Mesh),
		edgeIsOriginal:              halfedge.NewEdgeAttr[bool](base.Mesh),
	}
	base.Mesh.ForEachEdge(func(e halfedge.Edge) bool { t.edgeIsOriginal.Set(e, true); return true })
	base.Mesh.ForEachVertex(func(v halfedge.Vertex) bool {
		t.intrinsicVertexAngleSums.Set(v, t.computeAngleSumFromLengths(v))
		return true
	})
	base.Mesh.ForEachVertex(func(v halfedge.Vertex) bool {
		t.initDirectionsAroundVertex(v)
		return true
	})

	t.BindMutator(t)
	return t, nil
}

// computeAngleSumFromLengths sums the corner angles of every
// non-boundary-loop face incident to v, from the current edge lengths.
func (t *Triangulation) computeAngleSumFromLengths(v halfedge.Vertex) float64 {
	sum := 0.0
	t.Mesh.ForEachOutgoingHalfedge(v, func(he halfedge.Halfedge) bool {
		if !t.Mesh.FaceIsBoundaryLoop(t.Mesh.Face(he)) {
			sum += t.CornerAngle(he)
		}
		return true
	})
	return sum
}

// cornerAngleForDirection is CornerAngle, except it reports zero for a
// halfedge whose face is a boundary loop (not a real triangle, so
// there is no corner angle to accumulate there).
func (t *Triangulation) cornerAngleForDirection(he halfedge.Halfedge) float64 {
	if t.Mesh.FaceIsBoundaryLoop(t.Mesh.Face(he)) {
		return 0
	}
	return t.CornerAngle(he)
}

// standardizeAngle reduces theta modulo v's angle sum into [0, sum).
func (t *Triangulation) standardizeAngle(v halfedge.Vertex, theta float64) float64 {
	sum := t.intrinsicVertexAngleSums.Get(v)
	if sum <= 0 {
		return 0
	}
	m := math.Mod(theta, sum)
	if m < 0 {
		m += sum
	}
	return m
}

// vertexAngleScaling converts a cone-rescaled angle at v into true
// radians: one full turn (v's angle sum) maps to 2*pi.
func (t *Triangulation) vertexAngleScaling(v halfedge.Vertex) float64 {
	sum := t.intrinsicVertexAngleSums.Get(v)
	if sum <= 0 {
		return 1
	}
	return 2 * math.Pi / sum
}

// cwNeighbor returns the outgoing halfedge immediately clockwise of he
// around its tail.
func (t *Triangulation) cwNeighbor(he halfedge.Halfedge) halfedge.Halfedge {
	return t.Mesh.Twin(t.Mesh.Prev(he))
}

// updateAngleFromCWNeighbor sets he's direction from its
// counter-clockwise predecessor's direction plus the corner angle
// between them, matching invariant 3 of the data model.
func (t *Triangulation) updateAngleFromCWNeighbor(he halfedge.Halfedge) {
	v := t.Mesh.Tail(he)
	cw := t.cwNeighbor(he)
	theta := t.intrinsicHalfedgeDirections.Get(cw) + t.cornerAngleForDirection(he)
	t.intrinsicHalfedgeDirections.Set(he, t.standardizeAngle(v, theta))
}

// initDirectionsAroundVertex assigns directions to every halfedge
// outgoing from v, anchoring v's designated first outgoing halfedge at
// angle 0 and propagating around the CCW 1-ring from there.
func (t *Triangulation) initDirectionsAroundVertex(v halfedge.Vertex) {
	first := true
	t.Mesh.ForEachOutgoingHalfedge(v, func(he halfedge.Halfedge) bool {
		if first {
			t.intrinsicHalfedgeDirections.Set(he, 0)
			first = false
			return true
		}
		t.updateAngleFromCWNeighbor(he)
		return true
	})
}

// HalfedgeVector returns the 2D tangent vector of he in the intrinsic
// mesh's local polar frame at its tail, with length
// edgeLengths[edge(he)].
func (t *Triangulation) HalfedgeVector(he halfedge.Halfedge) orb.Point {
	v := t.Mesh.Tail(he)
	trueAngle := t.intrinsicHalfedgeDirections.Get(he) * t.vertexAngleScaling(v)
	length := t.EdgeLengths.Get(t.Mesh.Edge(he))
	return geom.FromPolar(trueAngle, length)
}

// VertexHalfedgeVectors realizes "computeHalfedgeVectorsInVertex": the
// 2D tangent vector of every halfedge outgoing from v, in v's own
// local polar frame.
func (t *Triangulation) VertexHalfedgeVectors(v halfedge.Vertex) map[halfedge.Halfedge]orb.Point {
	out := make(map[halfedge.Halfedge]orb.Point)
	t.Mesh.ForEachOutgoingHalfedge(v, func(he halfedge.Halfedge) bool {
		out[he] = t.HalfedgeVector(he)
		return true
	})
	return out
}
