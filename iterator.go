package rtreestar

import "github.com/mist90/RTreeStar/mbr"

// ListIterator walks the insertion-ordered doubly-linked list of stored
// payloads, independent of tree shape (spec.md §4.8 "list iterator"). The
// zero value is the end iterator.
type ListIterator[T Spatial[N], N mbr.Number] struct {
	cur *leaf[T, N]
}

// Valid reports whether the iterator points at a payload.
func (it ListIterator[T, N]) Valid() bool { return it.cur != nil }

// Value returns the payload at the iterator's position. Panics if !Valid.
func (it ListIterator[T, N]) Value() T { return it.cur.payload }

// Next advances toward the tail of the list, i.e. to the payload inserted
// just before this one (the list head is the newest). No-op past the end.
func (it *ListIterator[T, N]) Next() {
	if it.cur != nil {
		it.cur = it.cur.next
	}
}

// Prev steps back toward the head of the list, i.e. to the payload inserted
// just after this one. No-op at the head.
func (it *ListIterator[T, N]) Prev() {
	if it.cur != nil && it.cur.prev != nil {
		it.cur = it.cur.prev
	}
}

// Equal reports whether it and other reference the same position,
// including both being the end iterator.
func (it ListIterator[T, N]) Equal(other ListIterator[T, N]) bool { return it.cur == other.cur }

// Begin returns a ListIterator at the most recently inserted payload.
func (t *Tree[T, N]) Begin() ListIterator[T, N] { return ListIterator[T, N]{cur: t.list.head} }

// End returns the list's end iterator.
func (t *Tree[T, N]) End() ListIterator[T, N] { return ListIterator[T, N]{} }

// treeFrame is one stack level of a TreeIterator's depth-first descent: a
// node plus the next child index to examine in it.
type treeFrame[T Spatial[N], N mbr.Number] struct {
	n   *node[T, N]
	idx int
}

// TreeIterator walks the tree structurally rather than by insertion order,
// yielding payloads whose leaf MBR satisfies objectPredicate, descending
// only into children whose MBR satisfies nodePredicate (spec.md §4.8
// "tree iterator"). Traversal order is whatever the tree's current shape
// produces, not insertion order, and is invalidated by any mutation.
type TreeIterator[T Spatial[N], N mbr.Number] struct {
	nodePredicate   func(mbr.MBR[N]) bool
	objectPredicate func(mbr.MBR[N]) bool
	stack           []treeFrame[T, N]
	cur             *leaf[T, N]
}

func alwaysTrue[N mbr.Number](mbr.MBR[N]) bool { return true }

func newTreeIterator[T Spatial[N], N mbr.Number](root *node[T, N], nodePredicate, objectPredicate func(mbr.MBR[N]) bool) *TreeIterator[T, N] {
	if nodePredicate == nil {
		nodePredicate = alwaysTrue[N]
	}
	if objectPredicate == nil {
		objectPredicate = alwaysTrue[N]
	}
	it := &TreeIterator[T, N]{nodePredicate: nodePredicate, objectPredicate: objectPredicate}
	if root != nil {
		it.stack = append(it.stack, treeFrame[T, N]{n: root})
	}
	it.advance()
	return it
}

// advance finds the next leaf satisfying objectPredicate reachable through
// nodes satisfying nodePredicate, implementing spec.md §4.8's descend /
// backtrack procedure as a single explicit-stack scan: a leaf-parent frame
// that runs out of matching leaves is popped, which resumes its parent
// frame's for-loop exactly where it left off — i.e. at the next sibling.
func (it *TreeIterator[T, N]) advance() {
	it.cur = nil
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.n.isLeafParent {
			for top.idx < top.n.len() {
				i := top.idx
				top.idx++
				lf := top.n.leafAt(i)
				if it.objectPredicate(lf.box) {
					it.cur = lf
					return
				}
			}
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		descended := false
		for top.idx < top.n.len() {
			i := top.idx
			top.idx++
			child := top.n.nodeAt(i)
			if it.nodePredicate(child.box) {
				it.stack = append(it.stack, treeFrame[T, N]{n: child})
				descended = true
				break
			}
		}
		if !descended {
			it.stack = it.stack[:len(it.stack)-1]
		}
	}
}

// Valid reports whether the iterator points at a payload.
func (it *TreeIterator[T, N]) Valid() bool { return it.cur != nil }

// Value returns the payload at the iterator's position. Panics if !Valid.
func (it *TreeIterator[T, N]) Value() T { return it.cur.payload }

// Next advances to the next matching payload in structural order.
func (it *TreeIterator[T, N]) Next() { it.advance() }

// Search returns a TreeIterator over every payload whose leaf MBR
// intersects region, descending only into subtrees whose MBR also
// intersects region — the region-valued constructor of spec.md §4.8.
func (t *Tree[T, N]) Search(region mbr.MBR[N]) *TreeIterator[T, N] {
	pred := func(m mbr.MBR[N]) bool { return m.Intersects(region) }
	return newTreeIterator(t.root, pred, pred)
}

// SearchFunc returns a TreeIterator driven by explicit predicates: objectPred
// selects which leaves are yielded, nodePred gates descent into internal
// children. Either may be nil, meaning always-true.
func (t *Tree[T, N]) SearchFunc(objectPred, nodePred func(mbr.MBR[N]) bool) *TreeIterator[T, N] {
	return newTreeIterator(t.root, nodePred, objectPred)
}
