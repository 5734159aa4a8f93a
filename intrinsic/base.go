// Package intrinsic implements the intrinsic-triangulation core: the
// data model shared by every concrete realization (Base), the
// abstract mutation contract such realizations must satisfy
// (Mutator), and the two refinement drivers (FlipToDelaunay,
// DelaunayRefine) written only against that contract.
//
// Package intrinsic never imports package signpost; signpost imports
// intrinsic, so the dependency only ever points one way.
package intrinsic

import (
	"fmt"
	"math"

	"github.com/GrainArc/IntrinsicTin/geom"
	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/surface"
)

// Eps is the single named numerical tolerance applied uniformly to
// Delaunay, flip-feasibility and recheck logic, in units of the
// triangulation's natural length scale squared for cotan weights and
// unscaled elsewhere.
const Eps = 1e-6

// Base owns the intrinsic mesh, its core attribute tables, and the
// callback lists the refinement drivers publish to; it is embedded by
// every concrete triangulation realization.
//
// Base is not thread-safe: a single logical owner mutates at a time.
type Base struct {
	Mesh *halfedge.Mesh // M: the mutable intrinsic triangulation

	InputMesh    *halfedge.Mesh             // M_in: read-only, fixed for the triangulation's lifetime
	InputLengths *halfedge.EdgeAttr[float64] // L_in

	EdgeLengths     *halfedge.EdgeAttr[float64]      // edgeLengths on M
	VertexLocations *halfedge.VertexAttr[surface.Point] // ι: V(M) -> SurfacePoint on M_in
	MarkedEdges     *halfedge.EdgeAttr[bool]         // caller-forbidden edges

	ops Mutator

	edgeFlipCallbacks       CallbackList[func(halfedge.Edge)]
	faceInsertionCallbacks  CallbackList[func(halfedge.Face, halfedge.Vertex)]
	edgeSplitCallbacks      CallbackList[func(eOld halfedge.Edge, he1, he2 halfedge.Halfedge)]
}

// NewBase clones inputMesh's topology and edge lengths into a fresh
// intrinsic mesh. inputMesh must be triangular; every input vertex
// starts out as its own correspondent.
func NewBase(inputMesh *halfedge.Mesh, inputLengths *halfedge.EdgeAttr[float64]) (*Base, error) {
	if !inputMesh.IsTriangular() {
		return nil, fmt.Errorf("intrinsic: input mesh is not triangular")
	}

	m := inputMesh.Clone()
	edgeLengths := halfedge.NewEdgeAttr[float64](m)
	m.ForEachEdge(func(e halfedge.Edge) bool {
		edgeLengths.Set(e, inputLengths.Get(e))
		return true
	})

	vertexLocations := halfedge.NewVertexAttr[surface.Point](m)
	m.ForEachVertex(func(v halfedge.Vertex) bool {
		vertexLocations.Set(v, surface.AtVertex(v))
		return true
	})

	b := &Base{
		Mesh:            m,
		InputMesh:       inputMesh,
		InputLengths:    inputLengths,
		EdgeLengths:     edgeLengths,
		VertexLocations: vertexLocations,
		MarkedEdges:     halfedge.NewEdgeAttr[bool](m),
	}
	return b, nil
}

// BindMutator installs the concrete realization that implements
// Mutator, letting Base's drivers call back into it. Concrete types
// call this once, on themselves, right after construction.
func (b *Base) BindMutator(ops Mutator) { b.ops = ops }

// OnEdgeFlip registers fn to run after every successful edge flip.
func (b *Base) OnEdgeFlip(fn func(halfedge.Edge)) Token { return b.edgeFlipCallbacks.Add(fn) }

// RemoveEdgeFlipCallback deregisters a callback added via OnEdgeFlip.
func (b *Base) RemoveEdgeFlipCallback(t Token) { b.edgeFlipCallbacks.Remove(t) }

// OnFaceInsertion registers fn to run after every vertex insertion
// into a face. Insertions on an edge run the edge-split callbacks
// instead.
func (b *Base) OnFaceInsertion(fn func(halfedge.Face, halfedge.Vertex)) Token {
	return b.faceInsertionCallbacks.Add(fn)
}

// RemoveFaceInsertionCallback deregisters a callback added via
// OnFaceInsertion.
func (b *Base) RemoveFaceInsertionCallback(t Token) { b.faceInsertionCallbacks.Remove(t) }

// OnEdgeSplit registers fn to run after every edge split.
func (b *Base) OnEdgeSplit(fn func(eOld halfedge.Edge, he1, he2 halfedge.Halfedge)) Token {
	return b.edgeSplitCallbacks.Add(fn)
}

// RemoveEdgeSplitCallback deregisters a callback added via OnEdgeSplit.
func (b *Base) RemoveEdgeSplitCallback(t Token) { b.edgeSplitCallbacks.Remove(t) }

// FireEdgeFlip runs every registered edge-flip callback. Concrete
// Mutator realizations call this once their own bookkeeping for a
// completed flip is up to date.
func (b *Base) FireEdgeFlip(e halfedge.Edge) {
	b.edgeFlipCallbacks.Each(func(fn func(halfedge.Edge)) { fn(e) })
}

// FireFaceInsertion runs every registered face-insertion callback.
func (b *Base) FireFaceInsertion(f halfedge.Face, v halfedge.Vertex) {
	b.faceInsertionCallbacks.Each(func(fn func(halfedge.Face, halfedge.Vertex)) { fn(f, v) })
}

// FireEdgeSplit runs every registered edge-split callback.
func (b *Base) FireEdgeSplit(eOld halfedge.Edge, he1, he2 halfedge.Halfedge) {
	b.edgeSplitCallbacks.Each(func(fn func(halfedge.Edge, halfedge.Halfedge, halfedge.Halfedge)) { fn(eOld, he1, he2) })
}

// DefaultSplitMarkPropagation registers the default split callback
// that propagates MarkedEdges[eOld] onto both halves of a split edge.
func (b *Base) DefaultSplitMarkPropagation() Token {
	return b.OnEdgeSplit(func(eOld halfedge.Edge, he1, he2 halfedge.Halfedge) {
		if !b.MarkedEdges.Get(eOld) {
			return
		}
		b.MarkedEdges.Set(b.Mesh.Edge(he1), true)
		b.MarkedEdges.Set(b.Mesh.Edge(he2), true)
	})
}

// cornerAngle returns the interior angle at Tail(he) within Face(he),
// computed from the three incident edge lengths via law of cosines.
func (b *Base) cornerAngle(he halfedge.Halfedge) float64 {
	h1 := b.Mesh.Next(he)
	h2 := b.Mesh.Next(h1)
	opposite := b.EdgeLengths.Get(b.Mesh.Edge(h1))
	a := b.EdgeLengths.Get(b.Mesh.Edge(he))
	c := b.EdgeLengths.Get(b.Mesh.Edge(h2))
	return geom.CornerAngleFromLengths(opposite, a, c)
}

// CornerAngle is the exported form of cornerAngle, for use by
// concrete Mutator realizations in other packages.
func (b *Base) CornerAngle(he halfedge.Halfedge) float64 { return b.cornerAngle(he) }

// isDegreeOneTip reports whether he sits at a "tip" vertex whose
// 1-ring consists of a single triangle folded back on itself — the
// open-question policy from geometry-central's source, carried over
// verbatim: he.Next().Next() == he.Twin().
func (b *Base) isDegreeOneTip(he halfedge.Halfedge) bool {
	return b.Mesh.Next(b.Mesh.Next(he)) == b.Mesh.Twin(he)
}

// IsDegreeOneTip is the exported form of isDegreeOneTip.
func (b *Base) IsDegreeOneTip(he halfedge.Halfedge) bool { return b.isDegreeOneTip(he) }

// edgeCotanWeight sums 1/2*cot(opposite angle) over the up to two
// triangles incident to e.
func (b *Base) edgeCotanWeight(e halfedge.Edge) float64 {
	he := b.Mesh.EdgeHalfedge(e)
	total := 0.0
	for _, h := range [2]halfedge.Halfedge{he, b.Mesh.Twin(he)} {
		f := b.Mesh.Face(h)
		if b.Mesh.FaceIsBoundaryLoop(f) {
			continue
		}
		apex := b.Mesh.Next(b.Mesh.Next(h))
		angle := b.cornerAngle(apex)
		total += 0.5 / math.Tan(angle)
	}
	return total
}

// isFixed reports whether e must never be flipped or split: boundary
// edges, and edges the caller has marked.
func (b *Base) isFixed(e halfedge.Edge) bool {
	return b.Mesh.IsBoundaryEdge(e) || b.MarkedEdges.Get(e)
}

// IsFixed is the exported form of isFixed.
func (b *Base) IsFixed(e halfedge.Edge) bool { return b.isFixed(e) }

// isOnFixedEdge reports whether v touches the boundary or any marked
// edge.
func (b *Base) isOnFixedEdge(v halfedge.Vertex) bool {
	if b.Mesh.IsBoundaryVertex(v) {
		return true
	}
	onFixed := false
	b.Mesh.ForEachOutgoingHalfedge(v, func(he halfedge.Halfedge) bool {
		if b.isFixed(b.Mesh.Edge(he)) {
			onFixed = true
			return false
		}
		return true
	})
	return onFixed
}

// IsOnFixedEdge is the exported form of isOnFixedEdge.
func (b *Base) IsOnFixedEdge(v halfedge.Vertex) bool { return b.isOnFixedEdge(v) }

// isDelaunay reports whether e is fixed, or its cotan weight is
// non-negative within Eps.
func (b *Base) isDelaunay(e halfedge.Edge) bool {
	return b.isFixed(e) || b.edgeCotanWeight(e) >= -Eps
}

// IsDelaunay is the exported form of isDelaunay.
func (b *Base) IsDelaunay(e halfedge.Edge) bool { return b.isDelaunay(e) }

// faceLengths returns the three edge lengths of a triangular face, in
// halfedge-chain order.
func (b *Base) faceLengths(f halfedge.Face) (float64, float64, float64) {
	h0 := b.Mesh.FaceHalfedge(f)
	h1 := b.Mesh.Next(h0)
	h2 := b.Mesh.Next(h1)
	return b.EdgeLengths.Get(b.Mesh.Edge(h0)), b.EdgeLengths.Get(b.Mesh.Edge(h1)), b.EdgeLengths.Get(b.Mesh.Edge(h2))
}

// FaceCircumradius returns the circumradius of f.
func (b *Base) FaceCircumradius(f halfedge.Face) float64 {
	a, c, e := b.faceLengths(f)
	return geom.CircumradiusFromLengths(a, c, e)
}

// FaceArea returns the area of f.
func (b *Base) FaceArea(f halfedge.Face) float64 {
	a, c, e := b.faceLengths(f)
	return geom.FaceAreaFromLengths(a, c, e)
}

// ShortestEdge returns the length of f's shortest side.
func (b *Base) ShortestEdge(f halfedge.Face) float64 {
	a, c, e := b.faceLengths(f)
	m := a
	if c < m {
		m = c
	}
	if e < m {
		m = e
	}
	return m
}

// MinAngleDegrees returns the smallest corner angle of f, in degrees.
func (b *Base) MinAngleDegrees(f halfedge.Face) float64 {
	h0 := b.Mesh.FaceHalfedge(f)
	h1 := b.Mesh.Next(h0)
	h2 := b.Mesh.Next(h1)
	min := math.Min(b.cornerAngle(h0), math.Min(b.cornerAngle(h1), b.cornerAngle(h2)))
	return min * 180 / math.Pi
}
