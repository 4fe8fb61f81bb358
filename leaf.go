package rtreestar

import "github.com/mist90/RTreeStar/mbr"

// leaf is a stored payload plus its cached MBR, its position in the
// doubly-linked insertion-ordered list, and its position in the tree
// (parent leaf-parent node and slot within it). It is the generalization
// of the teacher's storage.entry{mbr, mmsi} to an arbitrary payload type,
// plus the auxiliary list links spec.md §3 asks for (the teacher has no
// equivalent; it is grounded on original_source/MathRTreeStar.h's DataNode
// prev/next fields).
type leaf[T Spatial[N], N mbr.Number] struct {
	payload T
	box     mbr.MBR[N]

	prev, next *leaf[T, N]

	parent *node[T, N]
	slot   int
}

func (l *leaf[T, N]) mbrOf() mbr.MBR[N] { return l.box }

func (l *leaf[T, N]) setParent(p *node[T, N], slot int) {
	l.parent = p
	l.slot = slot
}

func (l *leaf[T, N]) parentSlot() (*node[T, N], int) { return l.parent, l.slot }

// refreshBox recomputes the cached MBR from the payload, per spec.md's
// invariant 7 ("each Leaf.mbr equals Leaf.payload.mbr() at every stable
// observation point").
func (l *leaf[T, N]) refreshBox() {
	l.box = l.payload.Bounds()
}

// list is the insertion-ordered doubly-linked traversal of every stored
// leaf, maintained independently of tree shape (spec.md §3/§4.8a). head is
// the most recently inserted leaf; tail is tracked so Splice can
// concatenate two lists in O(1).
type list[T Spatial[N], N mbr.Number] struct {
	head, tail *leaf[T, N]
}

// pushFront links l in at the head of the list, matching Tree.insert step 1
// ("Link at list head").
func (ls *list[T, N]) pushFront(l *leaf[T, N]) {
	l.prev = nil
	l.next = ls.head
	if ls.head != nil {
		ls.head.prev = l
	}
	ls.head = l
	if ls.tail == nil {
		ls.tail = l
	}
}

// unlink removes l from the list. l's own prev/next are left dangling
// (the caller is about to discard or reuse l).
func (ls *list[T, N]) unlink(l *leaf[T, N]) {
	if l.prev != nil {
		l.prev.next = l.next
	} else {
		ls.head = l.next
	}
	if l.next != nil {
		l.next.prev = l.prev
	} else {
		ls.tail = l.prev
	}
}

// concat appends other's whole list after ls's, leaving other empty. This
// is the clean version of the teacher-adjacent source's splice, which
// spec.md §9 notes only patched one of the two endpoints; here both
// ls.tail/other.head links are always rewritten together.
func (ls *list[T, N]) concat(other *list[T, N]) {
	if other.head == nil {
		return
	}
	if ls.head == nil {
		ls.head, ls.tail = other.head, other.tail
	} else {
		ls.tail.next = other.head
		other.head.prev = ls.tail
		ls.tail = other.tail
	}
	other.head, other.tail = nil, nil
}
