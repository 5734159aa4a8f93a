// Package geodesic implements straight-line geodesic tracing across a
// triangulated surface: the component the intrinsic triangulation core
// treats as an external collaborator to locate where a direction out
// of some face ends up.
package geodesic

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/GrainArc/IntrinsicTin/geom"
	"github.com/GrainArc/IntrinsicTin/halfedge"
	"github.com/GrainArc/IntrinsicTin/surface"
)

const traceEPS = 1e-9

// EdgeCrossing records one edge a trace passed through, at parameter T
// along the edge's canonical direction (see Mesh.EdgeVertices).
type EdgeCrossing struct {
	Edge halfedge.Edge
	T    float64
}

// TraceOptions configures a TraceGeodesic call.
type TraceOptions struct {
	// MaxDistance, if > 0, caps the distance traced to less than
	// |direction|.
	MaxDistance float64

	// BarrierEdges, if non-nil, names edges the trace must not cross;
	// hitting one stops the trace exactly at that edge.
	BarrierEdges map[halfedge.Edge]bool

	// MaxSteps bounds the number of triangles visited, guarding against
	// a runaway trace under degenerate input; 0 means a default of 10000.
	MaxSteps int
}

// TraceResult is the outcome of a geodesic trace.
type TraceResult struct {
	EndPoint  surface.Point
	Crossings []EdgeCrossing
	// StoppedAtBarrier is the barrier edge the trace halted at, or
	// halfedge.InvalidEdge if the trace ended for any other reason
	// (distance exhausted, or the surface boundary was reached).
	StoppedAtBarrier halfedge.Edge
}

// frame tracks the 2D layout of the face currently being walked:
// tri[i] is the halfedge whose Tail sits at pos[i], for i in 0..2,
// going around the face in CCW order (tri[i].Next() == tri[i+1 mod 3]).
type frame struct {
	tri [3]halfedge.Halfedge
	pos [3]orb.Point
}

func layoutFace(m *halfedge.Mesh, lengths *halfedge.EdgeAttr[float64], f halfedge.Face) frame {
	h0 := m.FaceHalfedge(f)
	h1 := m.Next(h0)
	h2 := m.Next(h1)

	lAB := lengths.Get(m.Edge(h0))
	lBC := lengths.Get(m.Edge(h1))
	lCA := lengths.Get(m.Edge(h2))

	a, b, c := geom.LayoutTriangleFromLengths(lAB, lBC, lCA)
	return frame{tri: [3]halfedge.Halfedge{h0, h1, h2}, pos: [3]orb.Point{a, b, c}}
}

// unfoldAcross lays out the face on the other side of he (identified
// by fr.tri[entryIdx] == he) into the same world frame as fr, by
// reflecting its apex across the shared edge.
func unfoldAcross(m *halfedge.Mesh, lengths *halfedge.EdgeAttr[float64], fr frame, entryIdx int) frame {
	entry := fr.tri[entryIdx]
	twin := m.Twin(entry)

	p := fr.pos[entryIdx]
	q := fr.pos[(entryIdx+1)%3]
	oldApex := fr.pos[(entryIdx+2)%3]

	n1 := m.Next(twin)
	n2 := m.Next(n1)

	lenQR := lengths.Get(m.Edge(n2))
	lenRP := lengths.Get(m.Edge(n1))
	r := geom.UnfoldApex(q, p, lenQR, lenRP, oldApex)

	return frame{
		tri: [3]halfedge.Halfedge{twin, n1, n2},
		pos: [3]orb.Point{q, p, r},
	}
}

// raySegment intersects the ray origin+t*dir (t>=0) against the
// segment p->q, returning the ray parameter t and the segment
// parameter u in [0,1].
func raySegment(origin, dir, p, q orb.Point) (t, u float64, ok bool) {
	seg := geom.Sub(q, p)
	denom := dir[0]*seg[1] - dir[1]*seg[0]
	if math.Abs(denom) < traceEPS {
		return 0, 0, false
	}
	diff := geom.Sub(p, origin)
	t = (diff[0]*seg[1] - diff[1]*seg[0]) / denom
	u = (diff[0]*dir[1] - diff[1]*dir[0]) / denom
	if t < -traceEPS || u < -traceEPS || u > 1+traceEPS {
		return 0, 0, false
	}
	if t < 0 {
		t = 0
	}
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	return t, u, true
}

// canonicalT maps a parameter u measured along he (from Tail(he) to
// Head(he)) to the canonical parameter along he's edge.
func canonicalT(m *halfedge.Mesh, he halfedge.Halfedge, u float64) float64 {
	if he == m.EdgeHalfedge(m.Edge(he)) {
		return u
	}
	return 1 - u
}

// TraceGeodesic walks the straight-line path starting at barycentric
// coordinates (b0,b1,b2) in startFace, in the direction given (a 2D
// vector expressed in startFace's own layout basis, whose length is
// the distance to travel unless capped by opts.MaxDistance), crossing
// into neighboring faces until the distance is exhausted, a barrier
// edge is hit, or the mesh boundary is reached.
func TraceGeodesic(m *halfedge.Mesh, lengths *halfedge.EdgeAttr[float64], startFace halfedge.Face, b0, b1, b2 float64, direction orb.Point, opts TraceOptions) (TraceResult, error) {
	if m.FaceIsBoundaryLoop(startFace) {
		return TraceResult{}, fmt.Errorf("geodesic: cannot start a trace on a boundary loop face")
	}
	dirLen := geom.Norm(direction)
	if dirLen < traceEPS {
		fr := layoutFace(m, lengths, startFace)
		pt := geom.PointFromBarycentric(b0, b1, b2, fr.pos[0], fr.pos[1], fr.pos[2])
		end := endpointOnFace(m, fr, pt, startFace)
		return TraceResult{EndPoint: end, StoppedAtBarrier: halfedge.InvalidEdge}, nil
	}

	budget := dirLen
	if opts.MaxDistance > 0 && opts.MaxDistance < budget {
		budget = opts.MaxDistance
	}
	unit := geom.Scale(direction, 1/dirLen)

	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 10000
	}

	fr := layoutFace(m, lengths, startFace)
	pt := geom.PointFromBarycentric(b0, b1, b2, fr.pos[0], fr.pos[1], fr.pos[2])
	entryIdx := -1

	var crossings []EdgeCrossing

	for step := 0; ; step++ {
		if step >= maxSteps {
			return TraceResult{}, fmt.Errorf("geodesic: trace exceeded %d steps without converging", maxSteps)
		}

		bestT := math.Inf(1)
		bestIdx := -1
		bestU := 0.0
		for i := 0; i < 3; i++ {
			if i == entryIdx {
				continue
			}
			p := fr.pos[i]
			q := fr.pos[(i+1)%3]
			t, u, ok := raySegment(pt, unit, p, q)
			if !ok || t >= bestT {
				continue
			}
			bestT, bestIdx, bestU = t, i, u
		}

		if bestIdx < 0 || bestT >= budget {
			// Budget exhausted strictly inside this face.
			final := geom.Add(pt, geom.Scale(unit, budget))
			curFace := m.Face(fr.tri[0])
			end := endpointOnFace(m, fr, final, curFace)
			return TraceResult{EndPoint: end, Crossings: crossings, StoppedAtBarrier: halfedge.InvalidEdge}, nil
		}

		hitHE := fr.tri[bestIdx]
		edge := m.Edge(hitHE)
		tCanon := canonicalT(m, hitHE, bestU)

		if opts.BarrierEdges != nil && opts.BarrierEdges[edge] {
			return TraceResult{
				EndPoint:         surface.AtEdge(edge, tCanon),
				Crossings:        crossings,
				StoppedAtBarrier: edge,
			}, nil
		}

		twin := m.Twin(hitHE)
		nextFace := m.Face(twin)
		hitPoint := geom.Add(pt, geom.Scale(unit, bestT))

		if m.FaceIsBoundaryLoop(nextFace) {
			return TraceResult{
				EndPoint:         surface.AtEdge(edge, tCanon),
				Crossings:        crossings,
				StoppedAtBarrier: halfedge.InvalidEdge,
			}, nil
		}

		crossings = append(crossings, EdgeCrossing{Edge: edge, T: tCanon})
		budget -= bestT
		pt = hitPoint

		fr = unfoldAcross(m, lengths, fr, bestIdx)
		entryIdx = 0
	}
}

// endpointOnFace classifies the final traced point against the three
// corners/edges of f, snapping to a vertex or edge SurfacePoint when
// the point lands on the boundary of the face within tolerance, and
// otherwise returning a barycentric face point.
func endpointOnFace(m *halfedge.Mesh, fr frame, pt orb.Point, f halfedge.Face) surface.Point {
	b0, b1, b2 := geom.BarycentricFromPoint(pt, fr.pos[0], fr.pos[1], fr.pos[2])
	bary := [3]float64{b0, b1, b2}

	for i, b := range bary {
		if b > 1-traceEPS {
			return surface.AtVertex(m.Tail(fr.tri[i]))
		}
	}
	for i, b := range bary {
		if b < traceEPS {
			j, k := (i+1)%3, (i+2)%3
			he := fr.tri[j]
			return surface.AtEdge(m.Edge(he), canonicalT(m, he, bary[k]))
		}
	}
	return surface.AtFace(f, b0, b1, b2)
}
