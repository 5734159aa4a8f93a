package halfedge

import "fmt"

// SplitEdgeWithVertex splits e with a freshly created vertex, dividing
// each of its (up to two) incident triangles into two. e must not
// border a boundary loop. Returns the new vertex and the two
// halfedges outgoing from it that continue in, respectively, the same
// and opposite direction as he relative to e's original halfedge.
//
// Before, with he = (a->b): faces (a,b,c) and (b,a,d).
// After: vertex v on (a,b); faces (a,v,c), (v,b,c), (b,v,d), (v,a,d).
// e keeps representing (a,v); a new edge represents (v,b).
func (m *Mesh) SplitEdgeWithVertex(he Halfedge) (Vertex, Halfedge, Halfedge, error) {
	het0 := m.Twin(he)
	f1 := m.Face(he)
	f2 := m.Face(het0)
	if m.fIsBoundary[f1.id] || m.fIsBoundary[f2.id] {
		return InvalidVertex, InvalidHalfedge, InvalidHalfedge, fmt.Errorf("halfedge: cannot split a boundary edge with this operation")
	}

	he1 := m.Next(he)   // b -> c
	he2 := m.Next(he1)  // c -> a
	he3 := m.Next(het0) // a -> d
	he4 := m.Next(he3)  // d -> b

	a := m.Tail(he)
	b := m.Tail(het0)
	c := m.Tail(he2)
	d := m.Tail(he3)

	v := Vertex{m.allocVertex()}

	eVB := Edge{m.allocEdge()}
	eVC := Edge{m.allocEdge()}
	eVD := Edge{m.allocEdge()}

	heVB := Halfedge{m.allocHalfedge()}
	heBV := Halfedge{m.allocHalfedge()}
	heVC := Halfedge{m.allocHalfedge()}
	heCV := Halfedge{m.allocHalfedge()}
	heVD := Halfedge{m.allocHalfedge()}
	heDV := Halfedge{m.allocHalfedge()}

	m.setTwins(heVB, heBV, eVB)
	m.setTwins(heVC, heCV, eVC)
	m.setTwins(heVD, heDV, eVD)

	// Repurpose he/het0 as the a-v edge.
	m.heVert[het0.id] = v.id

	m.heVert[heVB.id] = v.id
	m.heVert[heBV.id] = b.id
	m.heVert[heVC.id] = v.id
	m.heVert[heCV.id] = c.id
	m.heVert[heVD.id] = v.id
	m.heVert[heDV.id] = d.id

	fNew3 := Face{m.allocFace(false)} // (v,b,c)
	fNew4 := Face{m.allocFace(false)} // (v,a,d)

	// T1 = (a,v,c): he(a->v) -> heVC(v->c) -> he2(c->a); reuses f1.
	m.chainFace(f1, he, heVC, he2)
	// T2 = (v,b,c): heVB(v->b) -> he1(b->c) -> heCV(c->v); new face.
	m.chainFace(fNew3, heVB, he1, heCV)
	// T3 = (b,v,d): heBV(b->v) -> heVD(v->d) -> he4(d->b); reuses f2.
	m.chainFace(f2, heBV, heVD, he4)
	// T4 = (v,a,d): het0(v->a) -> he3(a->d) -> heDV(d->v); new face.
	m.chainFace(fNew4, het0, he3, heDV)

	// a's old outgoing anchor (he, a->b) is still valid: he now reads
	// a->v, tail unchanged. b's old anchor (het0, b->a) is not: het0
	// now reads v->a, tail moved to v, so b needs a new one.
	m.vHalfedge[a.id] = he.id
	m.vHalfedge[b.id] = he1.id
	m.vHalfedge[v.id] = heVC.id
	m.vHalfedge[c.id] = he2.id
	m.vHalfedge[d.id] = he3.id

	return v, heVB, het0, nil
}
