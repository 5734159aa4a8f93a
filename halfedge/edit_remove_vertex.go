package halfedge

import "fmt"

// RemoveDegreeThreeVertex deletes v, which must have exactly degree 3
// and no incident boundary loop, merging its three incident triangles
// into a single face. Returns the surviving face.
func (m *Mesh) RemoveDegreeThreeVertex(v Vertex) (Face, error) {
	if deg := m.VertexDegree(v); deg != 3 {
		return InvalidFace, fmt.Errorf("halfedge: RemoveDegreeThreeVertex requires degree 3, got %d", deg)
	}

	// Walk the three outgoing spokes v->u_i in ForEachOutgoingHalfedge
	// order (clockwise); outer[i] is the edge u_i -> u_{i-1} opposite v
	// in that wedge's triangle, so the merged face's cycle is
	// outer[0], outer[2], outer[1].
	var spokes, outer [3]Halfedge
	cur := m.VertexHalfedge(v)
	for i := 0; i < 3; i++ {
		spokes[i] = cur
		outer[i] = m.Next(cur)
		if m.fIsBoundary[m.Face(cur).id] {
			return InvalidFace, fmt.Errorf("halfedge: cannot remove a vertex touching a boundary loop")
		}
		cur = m.Next(m.Twin(cur))
	}
	if cur != spokes[0] {
		return InvalidFace, fmt.Errorf("halfedge: vertex star is not closed")
	}

	var origFace [3]Face
	for i := 0; i < 3; i++ {
		origFace[i] = m.Face(outer[i])
	}

	survivor := origFace[0]
	m.chainFace(survivor, outer[0], outer[2], outer[1])

	for i := 0; i < 3; i++ {
		u := m.Tail(spokes[i])
		m.vHalfedge[u.id] = outer[i].id
	}

	for i := 0; i < 3; i++ {
		twin := m.Twin(spokes[i])
		e := m.Edge(spokes[i])
		m.freeHalfedge(spokes[i].id)
		m.freeHalfedge(twin.id)
		m.freeEdge(e.id)
	}

	for i := 1; i < 3; i++ {
		if origFace[i] != survivor {
			m.freeFace(origFace[i].id)
		}
	}

	m.freeVertex(v.id)

	return survivor, nil
}
