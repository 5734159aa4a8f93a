package halfedge

// Mesh is a manifold (possibly with boundary) triangulated surface,
// stored as a half-edge structure. Boundary is represented the way
// geometry-central represents it: every boundary edge gets a real
// halfedge whose Face is a boundary loop (Mesh.FaceIsBoundaryLoop
// reports true), so Next/Twin navigation never has to special-case
// missing neighbors.
type Mesh struct {
	heNext []int32
	heTwin []int32
	heVert []int32 // tail vertex of the halfedge
	heEdge []int32
	heFace []int32

	vHalfedge []int32 // one outgoing halfedge per vertex
	vAlive    []bool

	eHalfedge []int32 // canonical (first) halfedge per edge
	eAlive    []bool

	fHalfedge    []int32
	fAlive       []bool
	fIsBoundary  []bool

	freeHE   []int32
	freeV    []int32
	freeE    []int32
	freeF    []int32
}

// NewEmpty returns a mesh with no elements.
func NewEmpty() *Mesh {
	return &Mesh{}
}

func (m *Mesh) allocHalfedge() int32 {
	if n := len(m.freeHE); n > 0 {
		id := m.freeHE[n-1]
		m.freeHE = m.freeHE[:n-1]
		return id
	}
	id := int32(len(m.heNext))
	m.heNext = append(m.heNext, invalidIndex)
	m.heTwin = append(m.heTwin, invalidIndex)
	m.heVert = append(m.heVert, invalidIndex)
	m.heEdge = append(m.heEdge, invalidIndex)
	m.heFace = append(m.heFace, invalidIndex)
	return id
}

func (m *Mesh) allocVertex() int32 {
	if n := len(m.freeV); n > 0 {
		id := m.freeV[n-1]
		m.freeV = m.freeV[:n-1]
		m.vAlive[id] = true
		return id
	}
	id := int32(len(m.vHalfedge))
	m.vHalfedge = append(m.vHalfedge, invalidIndex)
	m.vAlive = append(m.vAlive, true)
	return id
}

func (m *Mesh) allocEdge() int32 {
	if n := len(m.freeE); n > 0 {
		id := m.freeE[n-1]
		m.freeE = m.freeE[:n-1]
		m.eAlive[id] = true
		return id
	}
	id := int32(len(m.eHalfedge))
	m.eHalfedge = append(m.eHalfedge, invalidIndex)
	m.eAlive = append(m.eAlive, true)
	return id
}

func (m *Mesh) allocFace(isBoundary bool) int32 {
	if n := len(m.freeF); n > 0 {
		id := m.freeF[n-1]
		m.freeF = m.freeF[:n-1]
		m.fAlive[id] = true
		m.fIsBoundary[id] = isBoundary
		return id
	}
	id := int32(len(m.fHalfedge))
	m.fHalfedge = append(m.fHalfedge, invalidIndex)
	m.fAlive = append(m.fAlive, true)
	m.fIsBoundary = append(m.fIsBoundary, isBoundary)
	return id
}

func (m *Mesh) freeVertex(v int32) {
	m.vAlive[v] = false
	m.vHalfedge[v] = invalidIndex
	m.freeV = append(m.freeV, v)
}

func (m *Mesh) freeEdge(e int32) {
	m.eAlive[e] = false
	m.eHalfedge[e] = invalidIndex
	m.freeE = append(m.freeE, e)
}

func (m *Mesh) freeFace(f int32) {
	m.fAlive[f] = false
	m.fHalfedge[f] = invalidIndex
	m.freeF = append(m.freeF, f)
}

func (m *Mesh) freeHalfedge(h int32) {
	m.heNext[h] = invalidIndex
	m.heTwin[h] = invalidIndex
	m.heVert[h] = invalidIndex
	m.heEdge[h] = invalidIndex
	m.heFace[h] = invalidIndex
	m.freeHE = append(m.freeHE, h)
}

// NVertices, NEdges, NFaces and NHalfedges report the capacity of the
// backing slices, including dead (freed) slots; use for sizing
// attribute tables.
func (m *Mesh) NVertices() int  { return len(m.vHalfedge) }
func (m *Mesh) NEdges() int     { return len(m.eHalfedge) }
func (m *Mesh) NFaces() int     { return len(m.fHalfedge) }
func (m *Mesh) NHalfedges() int { return len(m.heNext) }

func (m *Mesh) VertexIsDead(v Vertex) bool {
	return v.id < 0 || int(v.id) >= len(m.vAlive) || !m.vAlive[v.id]
}
func (m *Mesh) EdgeIsDead(e Edge) bool {
	return e.id < 0 || int(e.id) >= len(m.eAlive) || !m.eAlive[e.id]
}
func (m *Mesh) FaceIsDead(f Face) bool {
	return f.id < 0 || int(f.id) >= len(m.fAlive) || !m.fAlive[f.id]
}
func (m *Mesh) HalfedgeIsDead(h Halfedge) bool {
	return h.id < 0 || int(h.id) >= len(m.heNext) || m.heNext[h.id] == invalidIndex
}

// FaceIsBoundaryLoop reports whether f represents the exterior of a
// boundary loop rather than a real triangle.
func (m *Mesh) FaceIsBoundaryLoop(f Face) bool { return m.fIsBoundary[f.id] }

// Navigation

func (m *Mesh) Next(h Halfedge) Halfedge  { return Halfedge{m.heNext[h.id]} }
func (m *Mesh) Twin(h Halfedge) Halfedge  { return Halfedge{m.heTwin[h.id]} }
func (m *Mesh) Tail(h Halfedge) Vertex    { return Vertex{m.heVert[h.id]} }
func (m *Mesh) Head(h Halfedge) Vertex    { return m.Tail(m.Twin(h)) }
func (m *Mesh) Edge(h Halfedge) Edge      { return Edge{m.heEdge[h.id]} }
func (m *Mesh) Face(h Halfedge) Face      { return Face{m.heFace[h.id]} }
func (m *Mesh) Prev(h Halfedge) Halfedge {
	cur := h
	for {
		n := m.Next(cur)
		if n == h {
			return cur
		}
		cur = n
	}
}

// VertexHalfedge returns some outgoing halfedge of v.
func (m *Mesh) VertexHalfedge(v Vertex) Halfedge { return Halfedge{m.vHalfedge[v.id]} }

// EdgeHalfedge returns the canonical (first) halfedge of e; its Tail
// is e's canonical first endpoint for SurfacePoint Edge(t) parameters.
func (m *Mesh) EdgeHalfedge(e Edge) Halfedge { return Halfedge{m.eHalfedge[e.id]} }

// FaceHalfedge returns some halfedge bounding f.
func (m *Mesh) FaceHalfedge(f Face) Halfedge { return Halfedge{m.fHalfedge[f.id]} }

// EdgeVertices returns the two endpoints of e, in the canonical order
// used for SurfacePoint Edge(t) parameterization.
func (m *Mesh) EdgeVertices(e Edge) (Vertex, Vertex) {
	he := m.EdgeHalfedge(e)
	return m.Tail(he), m.Head(he)
}

// IsTriangular reports whether every non-boundary face has exactly 3
// sides.
func (m *Mesh) IsTriangular() bool {
	for i := 0; i < len(m.fHalfedge); i++ {
		f := Face{int32(i)}
		if !m.fAlive[i] || m.fIsBoundary[i] {
			continue
		}
		he0 := m.FaceHalfedge(f)
		he := m.Next(he0)
		n := 1
		for he != he0 {
			n++
			he = m.Next(he)
			if n > 3 {
				return false
			}
		}
		if n != 3 {
			return false
		}
	}
	return true
}

// IsBoundaryEdge reports whether e borders a boundary loop.
func (m *Mesh) IsBoundaryEdge(e Edge) bool {
	he := m.EdgeHalfedge(e)
	return m.fIsBoundary[m.Face(he).id] || m.fIsBoundary[m.Face(m.Twin(he)).id]
}

// IsBoundaryVertex reports whether any halfedge outgoing from v lies
// on a boundary loop.
func (m *Mesh) IsBoundaryVertex(v Vertex) bool {
	result := false
	m.ForEachOutgoingHalfedge(v, func(h Halfedge) bool {
		if m.fIsBoundary[m.Face(h).id] {
			result = true
			return false
		}
		return true
	})
	return result
}

// Iteration

// ForEachVertex calls fn for every live vertex, stopping early if fn
// returns false.
func (m *Mesh) ForEachVertex(fn func(Vertex) bool) {
	for i := 0; i < len(m.vHalfedge); i++ {
		if !m.vAlive[i] {
			continue
		}
		if !fn(Vertex{int32(i)}) {
			return
		}
	}
}

// ForEachEdge calls fn for every live edge.
func (m *Mesh) ForEachEdge(fn func(Edge) bool) {
	for i := 0; i < len(m.eHalfedge); i++ {
		if !m.eAlive[i] {
			continue
		}
		if !fn(Edge{int32(i)}) {
			return
		}
	}
}

// ForEachFace calls fn for every live, non-boundary-loop face.
func (m *Mesh) ForEachFace(fn func(Face) bool) {
	for i := 0; i < len(m.fHalfedge); i++ {
		if !m.fAlive[i] || m.fIsBoundary[i] {
			continue
		}
		if !fn(Face{int32(i)}) {
			return
		}
	}
}

// ForEachOutgoingHalfedge walks the halfedges leaving v, stepping from
// he to Next(Twin(he)); with faces wound CCW this is clockwise order.
func (m *Mesh) ForEachOutgoingHalfedge(v Vertex, fn func(Halfedge) bool) {
	start := m.VertexHalfedge(v)
	if !start.IsValid() {
		return
	}
	cur := start
	for {
		if !fn(cur) {
			return
		}
		cur = m.Next(m.Twin(cur))
		if cur == start {
			return
		}
	}
}

// ForEachAdjacentHalfedge walks the three halfedges bounding f.
func (m *Mesh) ForEachAdjacentHalfedge(f Face, fn func(Halfedge) bool) {
	start := m.FaceHalfedge(f)
	cur := start
	for {
		if !fn(cur) {
			return
		}
		cur = m.Next(cur)
		if cur == start {
			return
		}
	}
}

// VertexDegree counts the edges incident to v.
func (m *Mesh) VertexDegree(v Vertex) int {
	n := 0
	m.ForEachOutgoingHalfedge(v, func(Halfedge) bool { n++; return true })
	return n
}
