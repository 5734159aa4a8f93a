package halfedge

import "fmt"

// NewFromTriangles builds a manifold half-edge mesh from an explicit
// triangle soup: nVertices vertices indexed [0,nVertices), and a list
// of triangles given as vertex-index triples in CCW winding order.
// Boundary edges are closed with real boundary-loop halfedges so that
// Next/Twin navigation never needs a nil check. Returns an error if
// the input is not a consistently-oriented manifold triangulation.
func NewFromTriangles(nVertices int, triangles [][3]int32) (*Mesh, error) {
	m := NewEmpty()

	for i := 0; i < nVertices; i++ {
		id := m.allocVertex()
		if id != int32(i) {
			return nil, fmt.Errorf("halfedge: internal vertex allocation out of order")
		}
		m.vHalfedge[id] = invalidIndex
	}

	type dirKey struct{ a, b int32 }
	interior := make(map[dirKey]int32, len(triangles)*3)

	for ti, tri := range triangles {
		a, b, c := tri[0], tri[1], tri[2]
		if int(a) >= nVertices || int(b) >= nVertices || int(c) >= nVertices || a < 0 || b < 0 || c < 0 {
			return nil, fmt.Errorf("halfedge: triangle %d references out-of-range vertex", ti)
		}
		face := m.allocFace(false)
		hs := [3]int32{m.allocHalfedge(), m.allocHalfedge(), m.allocHalfedge()}
		verts := [3]int32{a, b, c}
		for k := 0; k < 3; k++ {
			he := hs[k]
			nextHe := hs[(k+1)%3]
			m.heNext[he] = nextHe
			m.heVert[he] = verts[k]
			m.heFace[he] = face
			if m.vHalfedge[verts[k]] == invalidIndex {
				m.vHalfedge[verts[k]] = he
			}
			key := dirKey{verts[k], verts[(k+1)%3]}
			if _, dup := interior[key]; dup {
				return nil, fmt.Errorf("halfedge: directed edge (%d,%d) used by more than one face; non-manifold or inconsistent winding", key.a, key.b)
			}
			interior[key] = he
		}
		m.fHalfedge[face] = hs[0]
	}

	// Match interior twins and collect border halfedges that still need
	// a partner.
	matched := make(map[dirKey]bool, len(interior))
	var borderInterior []int32
	for key, he := range interior {
		if matched[key] {
			continue
		}
		rev := dirKey{key.b, key.a}
		if twinHe, ok := interior[rev]; ok {
			m.heTwin[he] = twinHe
			m.heTwin[twinHe] = he
			edge := m.allocEdge()
			m.eHalfedge[edge] = he
			m.heEdge[he] = edge
			m.heEdge[twinHe] = edge
			matched[key] = true
			matched[rev] = true
		} else {
			borderInterior = append(borderInterior, he)
		}
	}

	// Create boundary-loop halfedges for every unmatched interior
	// halfedge, then stitch their Next pointers and group them into
	// boundary-loop faces.
	boundaryStartingAt := make(map[int32]int32, len(borderInterior))
	for _, he := range borderInterior {
		w := m.heVert[m.heNext[he]]
		b := m.allocHalfedge()
		m.heVert[b] = w
		m.heTwin[b] = he
		m.heTwin[he] = b
		edge := m.allocEdge()
		m.eHalfedge[edge] = he
		m.heEdge[he] = edge
		m.heEdge[b] = edge
		boundaryStartingAt[w] = b
	}
	for _, he := range borderInterior {
		b := m.heTwin[he]
		u := m.heVert[he]
		nxt, ok := boundaryStartingAt[u]
		if !ok {
			return nil, fmt.Errorf("halfedge: boundary is not a manifold loop at vertex %d", u)
		}
		m.heNext[b] = nxt
	}

	visited := make(map[int32]bool, len(borderInterior))
	for _, he := range borderInterior {
		b := m.heTwin[he]
		if visited[b] {
			continue
		}
		face := m.allocFace(true)
		cur := b
		for {
			visited[cur] = true
			m.heFace[cur] = face
			if m.fHalfedge[face] == invalidIndex {
				m.fHalfedge[face] = cur
			}
			cur = m.heNext[cur]
			if cur == b {
				break
			}
		}
	}

	return m, nil
}
