package halfedge

import "testing"

// quadTriangles returns an open quad A(0) B(1) C(2) D(3) split along
// diagonal A-C into two triangles, with a boundary loop around the
// outside.
func quadTriangles() [][3]int32 {
	return [][3]int32{
		{0, 1, 2},
		{0, 2, 3},
	}
}

func TestFlipEdgeRejectsBoundaryEdge(t *testing.T) {
	m, err := NewFromTriangles(4, quadTriangles())
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	var boundary Edge
	m.ForEachEdge(func(e Edge) bool {
		if m.IsBoundaryEdge(e) {
			boundary = e
			return false
		}
		return true
	})
	if err := m.FlipEdge(boundary); err == nil {
		t.Fatalf("FlipEdge on a boundary edge should fail")
	}
}

func TestFlipEdgePreservesHandleIdentity(t *testing.T) {
	m, err := NewFromTriangles(4, quadTriangles())
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	var diag Edge
	m.ForEachEdge(func(e Edge) bool {
		if !m.IsBoundaryEdge(e) {
			diag = e
			return false
		}
		return true
	})
	a0, b0 := m.EdgeVertices(diag)
	f1 := m.Face(m.EdgeHalfedge(diag))
	f2 := m.Face(m.Twin(m.EdgeHalfedge(diag)))

	if err := m.FlipEdge(diag); err != nil {
		t.Fatalf("FlipEdge: %v", err)
	}

	if !m.IsTriangular() {
		t.Fatalf("mesh not triangular after flip")
	}
	a1, b1 := m.EdgeVertices(diag)
	if a1 == a0 && b1 == b0 {
		t.Fatalf("flip did not change the diagonal's endpoints")
	}
	// Face handles are stable across a flip.
	stillF1 := m.Face(m.EdgeHalfedge(diag))
	stillF2 := m.Face(m.Twin(m.EdgeHalfedge(diag)))
	if (stillF1 != f1 && stillF1 != f2) || (stillF2 != f1 && stillF2 != f2) {
		t.Fatalf("flip did not preserve the two face handles")
	}
	// All four original corners (0,1,2,3) are still vertices of the mesh.
	if m.NVertices() != 4 {
		t.Fatalf("flip should not add or remove vertices")
	}
	nEdges := 0
	m.ForEachEdge(func(Edge) bool { nEdges++; return true })
	if nEdges != 5 {
		t.Fatalf("flip should not add or remove edges, got %d", nEdges)
	}
}

func TestSplitFaceWithVertexProducesThreeTriangles(t *testing.T) {
	m, err := NewFromTriangles(3, [][3]int32{{0, 1, 2}})
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	var f Face
	m.ForEachFace(func(ff Face) bool { f = ff; return false })

	v, edges := m.SplitFaceWithVertex(f)
	if m.VertexIsDead(v) {
		t.Fatalf("new vertex should be alive")
	}
	if m.VertexDegree(v) != 3 {
		t.Fatalf("new vertex degree = %d, want 3", m.VertexDegree(v))
	}
	for _, e := range edges {
		if m.EdgeIsDead(e) {
			t.Errorf("new edge %v should be alive", e)
		}
	}
	nFaces := 0
	m.ForEachFace(func(Face) bool { nFaces++; return true })
	if nFaces != 3 {
		t.Fatalf("nFaces = %d, want 3", nFaces)
	}
	if !m.IsTriangular() {
		t.Fatalf("mesh not triangular after split")
	}
	// Every original boundary edge is untouched and still boundary.
	boundaryCount := 0
	m.ForEachEdge(func(e Edge) bool {
		if m.IsBoundaryEdge(e) {
			boundaryCount++
		}
		return true
	})
	if boundaryCount != 3 {
		t.Fatalf("boundary edge count = %d, want 3", boundaryCount)
	}
}

func TestSplitEdgeWithVertexRejectsBoundaryEdge(t *testing.T) {
	m, err := NewFromTriangles(3, [][3]int32{{0, 1, 2}})
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	var he Halfedge
	m.ForEachEdge(func(e Edge) bool { he = m.EdgeHalfedge(e); return false })
	if _, _, _, err := m.SplitEdgeWithVertex(he); err == nil {
		t.Fatalf("splitting a boundary edge should fail")
	}
}

func TestSplitEdgeWithVertexProducesFourTriangles(t *testing.T) {
	m, err := NewFromTriangles(4, quadTriangles())
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	var diag Edge
	m.ForEachEdge(func(e Edge) bool {
		if !m.IsBoundaryEdge(e) {
			diag = e
			return false
		}
		return true
	})
	he := m.EdgeHalfedge(diag)
	a := m.Tail(he)

	v, heVB, heVA, err := m.SplitEdgeWithVertex(he)
	if err != nil {
		t.Fatalf("SplitEdgeWithVertex: %v", err)
	}
	if m.Tail(heVB) != v || m.Tail(heVA) != v {
		t.Fatalf("both returned halfedges should be outgoing from the new vertex")
	}
	if m.Tail(he) != a {
		t.Fatalf("he's tail should be unchanged (still a), got %v want %v", m.Tail(he), a)
	}
	if m.VertexDegree(v) != 4 {
		t.Fatalf("new vertex degree = %d, want 4", m.VertexDegree(v))
	}
	nFaces := 0
	m.ForEachFace(func(Face) bool { nFaces++; return true })
	if nFaces != 4 {
		t.Fatalf("nFaces = %d, want 4", nFaces)
	}
	if !m.IsTriangular() {
		t.Fatalf("mesh not triangular after edge split")
	}
}

func TestRemoveDegreeThreeVertexRequiresDegreeThree(t *testing.T) {
	m, err := NewFromTriangles(4, tetrahedronTriangles())
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	var v Vertex
	m.ForEachVertex(func(vv Vertex) bool { v = vv; return false })
	// Every vertex of a regular tetrahedron already has degree 3.
	if m.VertexDegree(v) != 3 {
		t.Fatalf("test setup assumption broken: want degree 3, got %d", m.VertexDegree(v))
	}
	if _, err := m.RemoveDegreeThreeVertex(v); err != nil {
		t.Fatalf("RemoveDegreeThreeVertex: %v", err)
	}
	if !m.VertexIsDead(v) {
		t.Fatalf("removed vertex should be dead")
	}
	nFaces := 0
	m.ForEachFace(func(Face) bool { nFaces++; return true })
	// Its three faces merge into one; the opposite face is untouched.
	if nFaces != 2 {
		t.Fatalf("removing a degree-3 vertex from a tetrahedron should leave 2 faces, got %d", nFaces)
	}
}

func TestSplitThenRemoveIsIdentityOnFaceCount(t *testing.T) {
	m, err := NewFromTriangles(3, [][3]int32{{0, 1, 2}})
	if err != nil {
		t.Fatalf("NewFromTriangles: %v", err)
	}
	var f Face
	m.ForEachFace(func(ff Face) bool { f = ff; return false })

	v, _ := m.SplitFaceWithVertex(f)
	survivor, err := m.RemoveDegreeThreeVertex(v)
	if err != nil {
		t.Fatalf("RemoveDegreeThreeVertex: %v", err)
	}
	if m.VertexIsDead(Vertex{0}) || m.VertexIsDead(Vertex{1}) || m.VertexIsDead(Vertex{2}) {
		t.Fatalf("original corners should survive a split+remove round trip")
	}
	nFaces := 0
	m.ForEachFace(func(Face) bool { nFaces++; return true })
	if nFaces != 1 {
		t.Fatalf("nFaces after split+remove = %d, want 1", nFaces)
	}
	if m.FaceIsDead(survivor) {
		t.Fatalf("survivor face should be alive")
	}
}
