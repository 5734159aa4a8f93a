package halfedge

// Clone returns a structural copy of m: a new Mesh with identical
// vertex/edge/face/halfedge indices and connectivity, safe to mutate
// independently of m. Used to seed an intrinsic triangulation as a
// copy of its fixed input mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		heNext:      append([]int32(nil), m.heNext...),
		heTwin:      append([]int32(nil), m.heTwin...),
		heVert:      append([]int32(nil), m.heVert...),
		heEdge:      append([]int32(nil), m.heEdge...),
		heFace:      append([]int32(nil), m.heFace...),
		vHalfedge:   append([]int32(nil), m.vHalfedge...),
		vAlive:      append([]bool(nil), m.vAlive...),
		eHalfedge:   append([]int32(nil), m.eHalfedge...),
		eAlive:      append([]bool(nil), m.eAlive...),
		fHalfedge:   append([]int32(nil), m.fHalfedge...),
		fAlive:      append([]bool(nil), m.fAlive...),
		fIsBoundary: append([]bool(nil), m.fIsBoundary...),
		freeHE:      append([]int32(nil), m.freeHE...),
		freeV:       append([]int32(nil), m.freeV...),
		freeE:       append([]int32(nil), m.freeE...),
		freeF:       append([]int32(nil), m.freeF...),
	}
	return c
}
