// Package queue implements the two work queues the refinement drivers
// in package intrinsic run over: a deduplicating FIFO of edges for
// Delaunay maintenance, and a max-heap of faces by weight for
// Delaunay refinement. The FIFO is a plain slice; the heap is
// hand-rolled against container/heap, following the precedent of hand-rolled priority queues elsewhere in
// this codebase's mesh libraries rather than pulling in a generic
// heap/pq dependency.
package queue

import (
	"container/heap"

	"github.com/GrainArc/IntrinsicTin/halfedge"
)

// EdgeFIFO is a FIFO queue of edges with O(1) membership testing, so
// the same edge is never enqueued twice while already pending.
type EdgeFIFO struct {
	items   []halfedge.Edge
	inQueue map[halfedge.Edge]bool
}

// NewEdgeFIFO returns an empty edge queue.
func NewEdgeFIFO() *EdgeFIFO {
	return &EdgeFIFO{inQueue: make(map[halfedge.Edge]bool)}
}

// Push enqueues e unless it is already pending.
func (q *EdgeFIFO) Push(e halfedge.Edge) {
	if q.inQueue[e] {
		return
	}
	q.inQueue[e] = true
	q.items = append(q.items, e)
}

// Empty reports whether the queue has no pending edges.
func (q *EdgeFIFO) Empty() bool { return len(q.items) == 0 }

// Pop removes and returns the oldest pending edge. Callers must not
// call Pop on an empty queue.
func (q *EdgeFIFO) Pop() halfedge.Edge {
	e := q.items[0]
	q.items = q.items[1:]
	delete(q.inQueue, e)
	return e
}

// faceHeapItem is one entry in FaceHeap: a face and the weight it was
// pushed with, so a stale entry (the face's true weight has since
// changed) can be detected at pop time by recomputing and comparing.
type faceHeapItem struct {
	face   halfedge.Face
	weight float64
}

type faceHeapImpl []faceHeapItem

func (h faceHeapImpl) Len() int            { return len(h) }
func (h faceHeapImpl) Less(i, j int) bool  { return h[i].weight > h[j].weight }
func (h faceHeapImpl) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *faceHeapImpl) Push(x interface{}) { *h = append(*h, x.(faceHeapItem)) }
func (h *faceHeapImpl) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// FaceHeap is a max-heap of faces ordered by a caller-supplied weight
// (larger weight popped first), used to prioritize refinement of
// large or boundary-adjacent faces. It tracks, per face, the weight it
// was last pushed with, so callers can recognize and discard stale
// entries (a face re-pushed with a different weight invalidates any
// earlier entry still sitting in the heap).
type FaceHeap struct {
	h           faceHeapImpl
	lastWeight  map[halfedge.Face]float64
}

// NewFaceHeap returns an empty face heap.
func NewFaceHeap() *FaceHeap {
	return &FaceHeap{lastWeight: make(map[halfedge.Face]float64)}
}

// Push enqueues f with the given weight, superseding any previous
// entry's weight (the old heap entry, if any, becomes stale and will
// be discarded on pop).
func (q *FaceHeap) Push(f halfedge.Face, weight float64) {
	q.lastWeight[f] = weight
	heap.Push(&q.h, faceHeapItem{face: f, weight: weight})
}

// Empty reports whether the heap has no pending entries.
func (q *FaceHeap) Empty() bool { return q.h.Len() == 0 }

// Pop removes and returns the highest-weight pending face along with
// whether the popped entry's weight matches the face's current
// registered weight (false means the entry is stale and should be
// ignored by the caller). Callers must not call Pop on an empty heap.
func (q *FaceHeap) Pop() (halfedge.Face, bool) {
	it := heap.Pop(&q.h).(faceHeapItem)
	fresh := q.lastWeight[it.face] == it.weight
	if fresh {
		delete(q.lastWeight, it.face)
	}
	return it.face, fresh
}
