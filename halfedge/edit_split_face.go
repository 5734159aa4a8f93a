package halfedge

// SplitFaceWithVertex subdivides f into three triangles meeting at a
// freshly created vertex. f must not be a boundary loop. Returns the
// new vertex and the three new edges (v-a, v-b, v-c, in the order the
// face's original corners a,b,c were visited).
func (m *Mesh) SplitFaceWithVertex(f Face) (Vertex, [3]Edge) {
	he0 := m.FaceHalfedge(f) // a -> b
	he1 := m.Next(he0)       // b -> c
	he2 := m.Next(he1)       // c -> a

	a := m.Tail(he0)
	b := m.Tail(he1)
	c := m.Tail(he2)

	v := Vertex{m.allocVertex()}

	eAV := Edge{m.allocEdge()}
	eBV := Edge{m.allocEdge()}
	eCV := Edge{m.allocEdge()}

	heAV := Halfedge{m.allocHalfedge()} // a -> v
	heVA := Halfedge{m.allocHalfedge()} // v -> a
	heBV := Halfedge{m.allocHalfedge()} // b -> v
	heVB := Halfedge{m.allocHalfedge()} // v -> b
	heCV := Halfedge{m.allocHalfedge()} // c -> v
	heVC := Halfedge{m.allocHalfedge()} // v -> c

	m.setTwins(heAV, heVA, eAV)
	m.setTwins(heBV, heVB, eBV)
	m.setTwins(heCV, heVC, eCV)

	m.heVert[heAV.id] = a.id
	m.heVert[heVA.id] = v.id
	m.heVert[heBV.id] = b.id
	m.heVert[heVB.id] = v.id
	m.heVert[heCV.id] = c.id
	m.heVert[heVC.id] = v.id

	fNew2 := Face{m.allocFace(false)}
	fNew3 := Face{m.allocFace(false)}

	// Triangle1 = (a,b,v): reuses f.
	m.chainFace(f, he0, heBV, heVA)
	// Triangle2 = (b,c,v): new face.
	m.chainFace(fNew2, he1, heCV, heVB)
	// Triangle3 = (c,a,v): new face.
	m.chainFace(fNew3, he2, heAV, heVC)

	m.vHalfedge[v.id] = heVA.id

	return v, [3]Edge{eAV, eBV, eCV}
}

func (m *Mesh) setTwins(h1, h2 Halfedge, e Edge) {
	m.heTwin[h1.id] = h2.id
	m.heTwin[h2.id] = h1.id
	m.eHalfedge[e.id] = h1.id
	m.heEdge[h1.id] = e.id
	m.heEdge[h2.id] = e.id
}

// chainFace sets the three given halfedges (already in CCW order) to
// form the cycle of f, in order.
func (m *Mesh) chainFace(f Face, h0, h1, h2 Halfedge) {
	m.heNext[h0.id] = h1.id
	m.heNext[h1.id] = h2.id
	m.heNext[h2.id] = h0.id
	m.heFace[h0.id] = f.id
	m.heFace[h1.id] = f.id
	m.heFace[h2.id] = f.id
	m.fHalfedge[f.id] = h0.id
}
