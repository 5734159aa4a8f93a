package halfedge

import "fmt"

// FlipEdge rotates the diagonal of the two triangles sharing e. e must
// not border a boundary loop. The Edge and Halfedge handles of e are
// kept (same identity, new endpoints); Vertex/Face handles of the
// quad's four corners and two faces are also kept. Returns an error if
// e borders a boundary loop.
//
// Before, with e = (a,b): faces (a,b,c) and (b,a,d).
// After: e = (d,c); faces (a,d,c) and (d,b,c).
func (m *Mesh) FlipEdge(e Edge) error {
	he0 := m.EdgeHalfedge(e)  // a -> b
	het0 := m.Twin(he0)       // b -> a
	f1 := m.Face(he0)
	f2 := m.Face(het0)
	if m.fIsBoundary[f1.id] || m.fIsBoundary[f2.id] {
		return fmt.Errorf("halfedge: cannot flip a boundary edge")
	}

	he1 := m.Next(he0)  // b -> c
	he2 := m.Next(he1)  // c -> a
	he3 := m.Next(het0) // a -> d
	he4 := m.Next(he3)  // d -> b

	a := m.Tail(he0)
	b := m.Tail(het0)
	c := m.Tail(he2)
	d := m.Tail(he3)

	// Repurpose he0/het0 as the new diagonal d->c / c->d.
	m.heVert[he0.id] = d.id
	m.heVert[het0.id] = c.id

	// Triangle1 = (a,d,c) keeps face f1: he3(a->d) -> he0(d->c) -> he2(c->a)
	m.heNext[he3.id] = he0.id
	m.heNext[he0.id] = he2.id
	m.heNext[he2.id] = he3.id
	m.heFace[he3.id] = f1.id
	m.heFace[he0.id] = f1.id
	m.heFace[he2.id] = f1.id
	m.fHalfedge[f1.id] = he0.id

	// Triangle2 = (d,b,c) keeps face f2: he4(d->b) -> he1(b->c) -> het0(c->d)
	m.heNext[he4.id] = he1.id
	m.heNext[he1.id] = het0.id
	m.heNext[het0.id] = he4.id
	m.heFace[he4.id] = f2.id
	m.heFace[he1.id] = f2.id
	m.heFace[het0.id] = f2.id
	m.fHalfedge[f2.id] = het0.id

	// Fix vertex anchors: a and b no longer have he0/het0 outgoing.
	if m.vHalfedge[a.id] == he0.id {
		m.vHalfedge[a.id] = he3.id
	}
	if m.vHalfedge[b.id] == het0.id {
		m.vHalfedge[b.id] = he1.id
	}
	m.vHalfedge[c.id] = he2.id
	m.vHalfedge[d.id] = he4.id

	return nil
}
