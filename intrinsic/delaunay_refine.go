package intrinsic

import (
	"math"

	"github.com/GrainArc/IntrinsicTin/graph"
	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/intrinsic/queue"
	"github.com/GrainArc/IntrinsicTin/surface"
)

// dijkstraBallFactor scales the diametral ball radius used to search
// for nearby inserted vertices to delete after a split; empirically
// chosen (the stretch factor of a Delaunay triangulation argues for
// the safety of a factor of 2, not a proof of minimality).
const dijkstraBallFactor = 2.0

// RefineOptions parameterizes DelaunayRefine.
type RefineOptions struct {
	// MinAngleDegrees is theta_min; faces with a correctable corner
	// angle below this are refined.
	MinAngleDegrees float64
	// MaxCircumradius is rho_max; 0 means unbounded.
	MaxCircumradius float64
	// MaxInsertions bounds the number of circumcenter insertions; 0
	// means unbounded.
	MaxInsertions int
	// MaxRecheckCount bounds the number of full rescans performed once
	// both queues empty, to recover from numerical drift; 0 defaults
	// to 5.
	MaxRecheckCount int
}

func (b *Base) shouldRefine(f halfedge.Face, minAngleRad, maxCircumradius float64) bool {
	if b.Mesh.FaceIsBoundaryLoop(f) {
		return false
	}
	if maxCircumradius > 0 && b.FaceCircumradius(f) > maxCircumradius {
		return true
	}
	h0 := b.Mesh.FaceHalfedge(f)
	h1 := b.Mesh.Next(h0)
	h2 := b.Mesh.Next(h1)
	for _, he := range [3]halfedge.Halfedge{h0, h1, h2} {
		if b.cornerAngle(he) >= minAngleRad {
			continue
		}
		if b.isDegreeOneTip(he) {
			continue
		}
		prev := b.Mesh.Prev(he)
		if b.isFixed(b.Mesh.Edge(he)) && b.isFixed(b.Mesh.Edge(prev)) {
			continue
		}
		return true
	}
	return false
}

func (b *Base) refineWeight(f halfedge.Face) float64 {
	anyFixed := false
	b.Mesh.ForEachAdjacentHalfedge(f, func(he halfedge.Halfedge) bool {
		if b.isFixed(b.Mesh.Edge(he)) {
			anyFixed = true
			return false
		}
		return true
	})
	if anyFixed {
		return math.Inf(1)
	}
	return b.FaceArea(f)
}

func (b *Base) pushIfNeedsRefine(q *queue.FaceHeap, f halfedge.Face, minAngleRad, maxCircumradius float64) {
	if b.shouldRefine(f, minAngleRad, maxCircumradius) {
		q.Push(f, b.refineWeight(f))
	}
}

// DelaunayRefine performs Chew's second algorithm: alternately flips
// non-Delaunay edges and inserts circumcenters of faces that violate
// the angle/circumradius bounds, splitting marked edges at their
// midpoint instead of crossing them (via InsertCircumcenter), until
// both work queues empty and a bounded number of full rescans find
// nothing left to do. Boundary edges are not split: a face whose
// circumcenter lies beyond the boundary gets no insertion and can
// remain below the bounds when DelaunayRefine returns.
func (b *Base) DelaunayRefine(opts RefineOptions) {
	minAngleRad := opts.MinAngleDegrees * math.Pi / 180
	maxCircumradius := opts.MaxCircumradius
	maxInsertions := opts.MaxInsertions
	if maxInsertions <= 0 {
		maxInsertions = math.MaxInt32
	}
	maxRecheck := opts.MaxRecheckCount
	if maxRecheck <= 0 {
		maxRecheck = 5
	}

	delaunayQ := queue.NewEdgeFIFO()
	refineQ := queue.NewFaceHeap()

	b.Mesh.ForEachEdge(func(e halfedge.Edge) bool { delaunayQ.Push(e); return true })
	b.Mesh.ForEachFace(func(f halfedge.Face) bool {
		b.pushIfNeedsRefine(refineQ, f, minAngleRad, maxCircumradius)
		return true
	})

	flipTok := b.OnEdgeFlip(func(e halfedge.Edge) {
		he := b.Mesh.EdgeHalfedge(e)
		for _, f := range [2]halfedge.Face{b.Mesh.Face(he), b.Mesh.Face(b.Mesh.Twin(he))} {
			if b.Mesh.FaceIsBoundaryLoop(f) {
				continue
			}
			b.pushIfNeedsRefine(refineQ, f, minAngleRad, maxCircumradius)
			b.enqueueFaceEdges(delaunayQ, f)
		}
	})
	defer b.RemoveEdgeFlipCallback(flipTok)

	splitTok := b.OnEdgeSplit(func(eOld halfedge.Edge, he1, he2 halfedge.Halfedge) {
		newV := b.Mesh.Tail(he1)
		ballRad := math.Max(b.EdgeLengths.Get(b.Mesh.Edge(he1)), b.EdgeLengths.Get(b.Mesh.Edge(he2)))

		dist := graph.VertexDijkstraDistanceWithinRadius(b.Mesh, b.EdgeLengths, newV, dijkstraBallFactor*ballRad)
		for u := range dist {
			if u == newV {
				continue
			}
			if b.isOnFixedEdge(u) {
				continue
			}
			if b.VertexLocations.Get(u).Kind == surface.KindVertex {
				continue
			}
			survivor := b.ops.RemoveInsertedVertex(u)
			if survivor.IsValid() {
				b.enqueueFaceEdges(delaunayQ, survivor)
				b.pushIfNeedsRefine(refineQ, survivor, minAngleRad, maxCircumradius)
			}
		}

		b.Mesh.ForEachOutgoingHalfedge(newV, func(he halfedge.Halfedge) bool {
			f := b.Mesh.Face(he)
			b.enqueueFaceEdges(delaunayQ, f)
			b.pushIfNeedsRefine(refineQ, f, minAngleRad, maxCircumradius)
			return true
		})
	})
	defer b.RemoveEdgeSplitCallback(splitTok)

	nInsertions := 0
	recheckCount := 0

	for {
		for !delaunayQ.Empty() {
			e := delaunayQ.Pop()
			if b.Mesh.EdgeIsDead(e) {
				continue
			}
			b.ops.FlipEdgeIfNotDelaunay(e)
		}

		if nInsertions >= maxInsertions {
			return
		}

		if refineQ.Empty() {
			if recheckCount >= maxRecheck {
				return
			}
			recheckCount++
			if !b.rescan(delaunayQ, refineQ, minAngleRad, maxCircumradius) {
				return
			}
			continue
		}

		f, fresh := refineQ.Pop()
		if !fresh || b.Mesh.FaceIsDead(f) || b.Mesh.FaceIsBoundaryLoop(f) {
			continue
		}
		if !b.shouldRefine(f, minAngleRad, maxCircumradius) {
			continue
		}
		b.ops.InsertCircumcenter(f)
		nInsertions++
	}
}

// rescan re-seeds both queues from scratch and reports whether it
// found anything to do, recovering from numerical drift missed by the
// incremental callbacks.
func (b *Base) rescan(delaunayQ *queue.EdgeFIFO, refineQ *queue.FaceHeap, minAngleRad, maxCircumradius float64) bool {
	found := false
	b.Mesh.ForEachEdge(func(e halfedge.Edge) bool {
		if !b.isDelaunay(e) {
			delaunayQ.Push(e)
			found = true
		}
		return true
	})
	b.Mesh.ForEachFace(func(f halfedge.Face) bool {
		if b.shouldRefine(f, minAngleRad, maxCircumradius) {
			refineQ.Push(f, b.refineWeight(f))
			found = true
		}
		return true
	})
	return found
}
