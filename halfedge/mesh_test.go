package halfedge

import "testing"

// tetrahedronTriangles returns a closed, boundary-free combinatorial
// tetrahedron: every directed edge of one face is matched by its
// reverse in exactly one other face.
func tetrahedronTriangles() [][3]int32 {
	return [][3]int32{
		{0, 1, 2},
		{0, 3, 1},
		{0, 2, 3},
		{1, 3, 2},
	}
}

func TestNewFromTrianglesTetrahedronIsClosed(t *testing.T) {
	m, err := NewFromTriangles(4, tetrahedronTriangles())
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	if m.NVertices() != 4 {
		t.Fatalf("NVertices = %d, want 4", m.NVertices())
	}
	nFaces := 0
	m.ForEachFace(func(Face) bool { nFaces++; return true })
	if nFaces != 4 {
		t.Fatalf("nFaces = %d, want 4", nFaces)
	}
	nEdges := 0
	m.ForEachEdge(func(Edge) bool { nEdges++; return true })
	if nEdges != 6 {
		t.Fatalf("nEdges = %d, want 6", nEdges)
	}
	m.ForEachEdge(func(e Edge) bool {
		if m.IsBoundaryEdge(e) {
			t.Errorf("edge %v reported boundary on a closed tetrahedron", e)
		}
		return true
	})
	if !m.IsTriangular() {
		t.Fatalf("tetrahedron should be triangular")
	}
}

func TestNewFromTrianglesSingleTriangleIsAllBoundary(t *testing.T) {
	m, err := NewFromTriangles(3, [][3]int32{{0, 1, 2}})
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	m.ForEachEdge(func(e Edge) bool {
		if !m.IsBoundaryEdge(e) {
			t.Errorf("edge %v of a lone triangle should be boundary", e)
		}
		return true
	})
	m.ForEachVertex(func(v Vertex) bool {
		if !m.IsBoundaryVertex(v) {
			t.Errorf("vertex %v of a lone triangle should be boundary", v)
		}
		return true
	})
	nFaces := 0
	m.ForEachFace(func(Face) bool { nFaces++; return true })
	if nFaces != 1 {
		t.Fatalf("nFaces = %d, want 1", nFaces)
	}
}

func TestNewFromTrianglesRejectsInconsistentWinding(t *testing.T) {
	// Two triangles sharing the directed edge 0->1 twice is not a
	// consistently-oriented manifold.
	_, err := NewFromTriangles(4, [][3]int32{{0, 1, 2}, {0, 1, 3}})
	if err == nil {
		t.Fatalf("expected an error for a non-manifold/inconsistent winding input")
	}
}

func TestNavigationRoundTrips(t *testing.T) {
	m, err := NewFromTriangles(4, tetrahedronTriangles())
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	m.ForEachVertex(func(v Vertex) bool {
		he := m.VertexHalfedge(v)
		if m.Tail(he) != v {
			t.Errorf("VertexHalfedge(%v) has tail %v", v, m.Tail(he))
		}
		return true
	})
	m.ForEachEdge(func(e Edge) bool {
		he := m.EdgeHalfedge(e)
		if m.Twin(m.Twin(he)) != he {
			t.Errorf("Twin(Twin(he)) != he for edge %v", e)
		}
		if m.Edge(m.Twin(he)) != e {
			t.Errorf("Edge(Twin(he)) != e for edge %v", e)
		}
		return true
	})
	m.ForEachFace(func(f Face) bool {
		he0 := m.FaceHalfedge(f)
		he := m.Next(he0)
		n := 1
		for he != he0 {
			if m.Face(he) != f {
				t.Errorf("halfedge in face %v chain reports face %v", f, m.Face(he))
			}
			he = m.Next(he)
			n++
		}
		if n != 3 {
			t.Errorf("face %v chain length = %d, want 3", f, n)
		}
		return true
	})
	// Prev is Next's inverse.
	m.ForEachVertex(func(v Vertex) bool {
		he := m.VertexHalfedge(v)
		if m.Next(m.Prev(he)) != he {
			t.Errorf("Next(Prev(he)) != he at vertex %v", v)
		}
		return true
	})
}

func TestVertexDegreeMatchesOutgoingWalk(t *testing.T) {
	m, err := NewFromTriangles(4, tetrahedronTriangles())
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	m.ForEachVertex(func(v Vertex) bool {
		n := 0
		m.ForEachOutgoingHalfedge(v, func(Halfedge) bool { n++; return true })
		if n != m.VertexDegree(v) {
			t.Errorf("vertex %v: walk count %d != VertexDegree %d", v, n, m.VertexDegree(v))
		}
		if n != 3 {
			t.Errorf("regular tetrahedron vertex %v should have degree 3, got %d", v, n)
		}
		return true
	})
}

func TestCloneIsIndexPreservingAndIndependent(t *testing.T) {
	m, err := NewFromTriangles(4, tetrahedronTriangles())
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	c := m.Clone()
	if c.NVertices() != m.NVertices() || c.NEdges() != m.NEdges() || c.NFaces() != m.NFaces() {
		t.Fatalf("clone element counts differ from original")
	}
	// Every edge has the same endpoints, by index, in both meshes.
	m.ForEachEdge(func(e Edge) bool {
		ma, mb := m.EdgeVertices(e)
		ca, cb := c.EdgeVertices(e)
		if ma != ca || mb != cb {
			t.Errorf("edge %v endpoints differ: orig (%v,%v) clone (%v,%v)", e, ma, mb, ca, cb)
		}
		return true
	})

	// On a closed tetrahedron every edge is flippable; flip one on the
	// clone only, and check the original's corresponding edge endpoints
	// are untouched.
	e := Edge{0}
	origA, origB := m.EdgeVertices(e)
	if err := c.FlipEdge(e); err != nil {
		t.Fatalf("FlipEdge on clone: %v", err)
	}
	stillA, stillB := m.EdgeVertices(e)
	if stillA != origA || stillB != origB {
		t.Fatalf("original mesh mutated by editing its clone")
	}
	newA, newB := c.EdgeVertices(e)
	if newA == origA && newB == origB {
		t.Fatalf("clone's edge endpoints unchanged after flip")
	}
}
