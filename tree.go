package rtreestar

import (
	"fmt"

	"github.com/mist90/RTreeStar/mbr"
	"github.com/mist90/RTreeStar/rtreedbg"
)

// Tree is a generic, in-memory R*-tree: a balanced tree of MBRs over
// payloads of type T in N-typed, fixed-dimension space, plus an
// insertion-ordered doubly-linked traversal maintained independently of
// tree shape. It generalizes the teacher's storage.RTree (hardcoded to
// 2-D lat/long boats, RTree_m=4, RTree_M=10) to an arbitrary payload,
// numeric type and dimension count chosen at construction time.
type Tree[T Spatial[N], N mbr.Number] struct {
	dim  int
	m, M int

	root *node[T, N]
	list list[T, N]

	count  int
	levels int

	forcedReinsert bool
	debug          bool
	logger         *rtreedbg.Logger
}

// New builds an empty tree over dim axes, with m the minimum and M the
// maximum children per node. Returns an error if 2 ≤ m ≤ ⌈M/2⌉ and M ≥ 2
// don't hold, or dim < 1 (spec.md §3).
func New[T Spatial[N], N mbr.Number](dim, m, M int, opts ...Option[T, N]) (*Tree[T, N], error) {
	if dim < 1 {
		return nil, fmt.Errorf("rtreestar: dimension must be >= 1, got %d", dim)
	}
	if M < 2 {
		return nil, fmt.Errorf("rtreestar: M must be >= 2, got %d", M)
	}
	ceilHalfM := (M + 1) / 2
	if m < 2 || m > ceilHalfM {
		return nil, fmt.Errorf("rtreestar: m must satisfy 2 <= m <= ceil(M/2) = %d, got %d", ceilHalfM, m)
	}
	t := &Tree[T, N]{dim: dim, m: m, M: M}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Len is the number of stored payloads (spec.md's size()).
func (t *Tree[T, N]) Len() int { return t.count }

// Levels is the tree's height in node-rows, 0 iff empty.
func (t *Tree[T, N]) Levels() int { return t.levels }

// Empty reports whether the tree holds no payloads.
func (t *Tree[T, N]) Empty() bool { return t.count == 0 }

// Root returns the root node for read-only introspection (e.g.
// rtreedbg.Dump), or nil if the tree is empty.
func (t *Tree[T, N]) Root() rtreedbg.NodeView[N] {
	if t.root == nil {
		return nil
	}
	return t.root
}

// Clear discards every node and leaf, leaving an empty tree.
func (t *Tree[T, N]) Clear() {
	t.root = nil
	t.list = list[T, N]{}
	t.count = 0
	t.levels = 0
}

// Swap exchanges the full contents of t and other.
func (t *Tree[T, N]) Swap(other *Tree[T, N]) {
	*t, *other = *other, *t
}

// Insert adds payload to the tree: a Leaf is allocated with its current
// MBR, linked at the list head, then attached to the tree via leaf
// selection and overflow resolution (spec.md §4.3).
func (t *Tree[T, N]) Insert(payload T) {
	l := &leaf[T, N]{payload: payload, box: payload.Bounds()}
	t.list.pushFront(l)
	t.attachToTree(l, t.forcedReinsert)
	t.count++
	t.debugCheck("Insert")
}

// debugCheck runs Verify when the tree was built WithDebug(true), logging
// and panicking with an InvariantViolation *Error on failure — the
// call-after-every-mutation hook spec.md §9 asks verify() to provide.
func (t *Tree[T, N]) debugCheck(op string) {
	if !t.debug {
		return
	}
	if err := t.Verify(); err != nil {
		if t.logger != nil {
			t.logger.Errorf("%s left the tree inconsistent: %v", op, err)
		}
		panic(err)
	}
}

// Axis returns box's bounds on the given axis. Outside WithDebug(true),
// this is sugar for box.Min(axis)/box.Max(axis) and behaves exactly as
// those do: it panics on an out-of-range axis and does not check for an
// empty box. Under WithDebug(true),
// it instead wires spec.md §7's DimensionOutOfRange/EmptyMBRAccess into
// recoverable errors — mbr.MBR.TryAxis's check, tagged with the matching
// Kind and, if a logger is attached, reported at Warning severity before
// returning to the caller.
func (t *Tree[T, N]) Axis(box mbr.MBR[N], axis int) (lo, hi N, err error) {
	if !t.debug {
		return box.Min(axis), box.Max(axis), nil
	}
	lo, hi, terr := box.TryAxis(axis)
	if terr == nil {
		return lo, hi, nil
	}
	kind := DimensionOutOfRange
	if axis >= 0 && axis < box.Dim() {
		kind = EmptyMBRAccess
	}
	e := newError(kind, "%v", terr)
	if t.logger != nil {
		t.logger.Warningf("%v", e)
	}
	return lo, hi, e
}

// attachToTree runs leaf selection and overflow resolution for l, without
// touching t.count or the doubly-linked list — the shared core of Insert,
// Reinsert and the underflow/rebuild reinsertion paths.
func (t *Tree[T, N]) attachToTree(l *leaf[T, N], allowForcedReinsert bool) {
	if t.root == nil {
		t.root = &node[T, N]{isLeafParent: true, box: mbr.Empty[N](t.dim)}
		t.levels = 1
	}
	target := t.selectLeafParent(l.box)
	if target.len() < t.M {
		target.attach(l, t.M)
		target.updateUpMBR(t.dim)
		return
	}
	if allowForcedReinsert {
		t.forcedReinsertAndAttach(target, l)
	} else {
		t.divideAndAttach(target, l)
	}
}

// selectLeafParent implements spec.md §4.3 step 2 / the classic R*
// ChooseSubtree, grounded on the teacher's chooseSubtree: descend from the
// root, using union-volume enlargement to pick a child while its siblings
// are plain internal nodes, switching to overlap-increase once the
// children being compared are themselves leaf-parents — then return the
// leaf-parent reached. Ties are broken by first (smallest) index.
func (t *Tree[T, N]) selectLeafParent(box mbr.MBR[N]) *node[T, N] {
	cur := t.root
	for !cur.isLeafParent {
		if cur.len() == 0 {
			panic(newError(DegenerateSelection, "selectLeafParent reached a node with no children"))
		}
		childrenAreLeafParents := cur.nodeAt(0).isLeafParent
		best := 0
		var bestMetric N
		for i := 0; i < cur.len(); i++ {
			var metric N
			if childrenAreLeafParents {
				metric = cur.overlapIncreaseWith(i, box) - cur.overlapIncrease(i)
			} else {
				child := cur.nodeAt(i)
				metric = child.box.UnionVolume(box) - child.box.Volume()
			}
			if i == 0 || metric < bestMetric {
				best = i
				bestMetric = metric
			}
		}
		cur = cur.nodeAt(best)
	}
	return cur
}

// divideAndAttach is overflow resolution mode A (spec.md §4.4.A): split
// target with the newcomer and propagate the new sibling up the ancestor
// chain, splitting again wherever it doesn't fit, growing a new root if
// the chain is exhausted.
func (t *Tree[T, N]) divideAndAttach(target *node[T, N], newcomer childRef[T, N]) {
	cur := target
	sibling := cur.split(newcomer, t.dim, t.m, t.M)

	for cur.parent != nil {
		parent := cur.parent
		parent.updateMBR(t.dim)
		if parent.attach(sibling, t.M) {
			parent.updateUpMBR(t.dim)
			return
		}
		cur = parent
		sibling = cur.split(sibling, t.dim, t.m, t.M)
	}

	// cur is (was) the root; grow a new root over cur and sibling.
	newRoot := &node[T, N]{isLeafParent: false, box: mbr.Empty[N](t.dim)}
	newRoot.attach(cur, t.M)
	newRoot.attach(sibling, t.M)
	t.root = newRoot
	t.levels++
}

// forcedReinsertAndAttach is overflow resolution mode B (spec.md §4.4.B):
// on the first overflow of an insert path, remove the p children farthest
// from target's center (keeping the other M+1−p) and reinsert them from the
// root, with
// forced reinsertion disabled for that recursive attach so it fires at
// most once per original Insert call.
func (t *Tree[T, N]) forcedReinsertAndAttach(target *node[T, N], newcomer childRef[T, N]) {
	all := make([]childRef[T, N], 0, t.M+1)
	all = append(all, target.children...)
	all = append(all, newcomer)

	center := target.box
	ordered := make([]childRef[T, N], len(all))
	copy(ordered, all)
	sortByDescendingCenterDistance(ordered, center)

	p := int(float64(t.M)*0.33 + 0.5)
	if p < 1 {
		p = 1
	}
	if p > len(ordered) {
		p = len(ordered)
	}
	farthest := ordered[:p]
	keep := ordered[p:]

	target.detachAll(t.dim)
	for _, c := range keep {
		target.attachLight(c, t.M)
	}
	target.updateMBR(t.dim)
	target.updateUpMBR(t.dim)

	// target is always a leaf-parent here: forcedReinsertAndAttach is only
	// reached from Insert's overflow branch, and selectLeafParent only
	// ever returns leaf-parents.
	for _, c := range farthest {
		t.attachToTree(c.(*leaf[T, N]), false)
	}
}

func sortByDescendingCenterDistance[T Spatial[N], N mbr.Number](s []childRef[T, N], center mbr.MBR[N]) {
	insertionSortDesc(s, func(c childRef[T, N]) N { return center.SquaredCenterDistance(c.mbrOf()) })
}

// findLeaf locates the *leaf* whose cached box equals target and whose
// payload equals payload, descending only through nodes whose box
// contains target — spec.md §4.5 step 1's objectPredicate/nodePredicate
// pair, with the address-equality confirmation realized as payload
// equality since T is constrained to comparable.
func (t *Tree[T, N]) findLeaf(payload T, target mbr.MBR[N]) *leaf[T, N] {
	it := newTreeIterator(t.root,
		func(m mbr.MBR[N]) bool { return m.Contains(target) },
		func(m mbr.MBR[N]) bool { return m.Equal(target) },
	)
	for it.Valid() {
		if it.cur.payload == payload {
			return it.cur
		}
		it.Next()
	}
	return nil
}

// Find locates payload and returns a ListIterator at it, or the end
// iterator if payload isn't stored.
func (t *Tree[T, N]) Find(payload T) ListIterator[T, N] {
	l := t.findLeaf(payload, payload.Bounds())
	return ListIterator[T, N]{cur: l}
}

// Erase removes payload from the tree, handling any resulting underflow,
// and reports whether it was found (spec.md §4.5).
func (t *Tree[T, N]) Erase(payload T) bool {
	l := t.findLeaf(payload, payload.Bounds())
	if l == nil {
		return false
	}
	t.eraseLeaf(l)
	t.debugCheck("Erase")
	return true
}

func (t *Tree[T, N]) eraseLeaf(l *leaf[T, N]) {
	parent := l.parent
	parent.detach(l.slot, t.dim)
	t.count--
	if parent.len() >= t.m {
		parent.updateUpMBR(t.dim)
	} else {
		t.collapseUnderflow(parent)
	}
	t.list.unlink(l)
}

// collapseUnderflow implements spec.md §4.5 step 4: find the highest
// ancestor of l that would itself underflow if l's subtree were removed,
// detach that whole branch, and reinsert every leaf it contained from the
// root. Reattaching through attachToTree never touches t.count, so unlike
// the source's bookkeeping this needs no compensating decrement per
// reinserted leaf — the leaves are only ever relocated, never added or
// removed.
func (t *Tree[T, N]) collapseUnderflow(l *node[T, N]) {
	branch := l
	for branch.parent != nil && branch.parent.len() < t.m+1 {
		branch = branch.parent
	}
	collected := collectLeaves(branch)

	if branch.parent == nil {
		t.root = nil
		t.levels = 0
		for _, lf := range collected {
			t.attachToTree(lf, false)
		}
		return
	}

	parent := branch.parent
	parent.detach(branch.slot, t.dim)
	parent.updateUpMBR(t.dim)
	for _, lf := range collected {
		t.attachToTree(lf, false)
	}
}

// collectLeaves returns every leaf reachable under n, in leaf-parent
// order.
func collectLeaves[T Spatial[N], N mbr.Number](n *node[T, N]) []*leaf[T, N] {
	var out []*leaf[T, N]
	var walk func(*node[T, N])
	walk = func(cur *node[T, N]) {
		if cur.isLeafParent {
			for i := 0; i < cur.len(); i++ {
				out = append(out, cur.leafAt(i))
			}
			return
		}
		for i := 0; i < cur.len(); i++ {
			walk(cur.nodeAt(i))
		}
	}
	walk(n)
	return out
}

// Reinsert detaches the payload whose current box equals oldBounds,
// recomputes its box from Bounds(), and reinserts it into the tree without
// touching the doubly-linked list or t.count (spec.md §4.6). Reports
// whether a matching payload was found.
func (t *Tree[T, N]) Reinsert(payload T, oldBounds mbr.MBR[N]) bool {
	l := t.findLeaf(payload, oldBounds)
	if l == nil {
		return false
	}
	t.reinsertLeaf(l)
	t.debugCheck("Reinsert")
	return true
}

// ReinsertAt is Reinsert addressed by a ListIterator rather than a
// (payload, oldBounds) pair — the spec's reinsert(list_iterator) overload.
func (t *Tree[T, N]) ReinsertAt(it ListIterator[T, N]) bool {
	if it.cur == nil {
		return false
	}
	t.reinsertLeaf(it.cur)
	t.debugCheck("ReinsertAt")
	return true
}

func (t *Tree[T, N]) reinsertLeaf(l *leaf[T, N]) {
	parent := l.parent
	parent.detach(l.slot, t.dim)
	if parent.len() < t.m {
		t.collapseUnderflow(parent)
	} else {
		parent.updateUpMBR(t.dim)
	}
	l.refreshBox()
	t.attachToTree(l, false)
}

// RemoveIf erases every payload satisfying pred and returns how many were
// removed (spec.md §6 remove_if). Payloads are snapshotted before erasing
// since Erase mutates the list RemoveIf is walking.
func (t *Tree[T, N]) RemoveIf(pred func(T) bool) int {
	var doomed []T
	for cur := t.list.head; cur != nil; cur = cur.next {
		if pred(cur.payload) {
			doomed = append(doomed, cur.payload)
		}
	}
	removed := 0
	for _, payload := range doomed {
		if t.Erase(payload) {
			removed++
		}
	}
	return removed
}

// Splice moves every payload from other into t, preserving other's list
// order after t's, and leaves other empty (spec.md §4.7). Splicing a tree
// into itself is a no-op.
func (t *Tree[T, N]) Splice(other *Tree[T, N]) {
	if other == t || other.count == 0 {
		return
	}
	for cur := other.list.head; cur != nil; cur = cur.next {
		t.attachToTree(cur, false)
	}
	t.count += other.count
	t.list.concat(&other.list)
	other.root = nil
	other.count = 0
	other.levels = 0
	t.debugCheck("Splice")
}

// Clone returns a deep, independent copy of t. Rather than transcribing
// the node skeleton level by level, it Inserts every payload from the
// list's tail (oldest) to its head into a fresh tree with the same shape
// parameters, so the copy's list order matches t's: the result
// satisfies the same structural invariants (it's just Insert, run count
// times) and Go's GC makes a from-scratch rebuild as cheap as a manual
// node-by-node clone would be, without needing a second traversal to fix
// up parent back-links afterward.
func (t *Tree[T, N]) Clone() *Tree[T, N] {
	out := &Tree[T, N]{dim: t.dim, m: t.m, M: t.M, forcedReinsert: t.forcedReinsert, debug: t.debug, logger: t.logger}
	var order []T
	for cur := t.list.head; cur != nil; cur = cur.next {
		order = append(order, cur.payload)
	}
	for i := len(order) - 1; i >= 0; i-- {
		out.Insert(order[i])
	}
	return out
}

// UpdateMBRs refreshes every Leaf's cached box from payload.Bounds(), then
// recomputes every Node's box bottom-up, without reshaping the tree
// (spec.md §4.7).
func (t *Tree[T, N]) UpdateMBRs() {
	for cur := t.list.head; cur != nil; cur = cur.next {
		cur.refreshBox()
	}
	if t.root != nil {
		updateSubtreeMBR(t.root, t.dim)
	}
}

func updateSubtreeMBR[T Spatial[N], N mbr.Number](n *node[T, N], dim int) {
	if !n.isLeafParent {
		for i := 0; i < n.len(); i++ {
			updateSubtreeMBR(n.nodeAt(i), dim)
		}
	}
	n.updateMBR(dim)
}

// Rebuild refreshes every box via UpdateMBRs, then discards and rebuilds
// the tree structure from scratch by reinserting every leaf, preserving
// list order and t.count (spec.md §4.7).
func (t *Tree[T, N]) Rebuild() {
	t.UpdateMBRs()
	t.root = nil
	t.levels = 0
	for cur := t.list.head; cur != nil; cur = cur.next {
		t.attachToTree(cur, false)
	}
	t.debugCheck("Rebuild")
}

// Verify re-checks the structural invariants of spec.md §3/§8: balanced
// depth, per-node capacity, MBR consistency, back-link consistency, and
// list/tree agreement on the payload set. It is the realization of spec.md
// §9's "single verify() method gated by a debug configuration"; callers can
// call it after every mutation in tests, and a WithDebug Tree calls it
// internally after each mutating operation and panics with the returned
// InvariantViolation error if it fails.
func (t *Tree[T, N]) Verify() error {
	if t.root == nil {
		if t.count != 0 || t.levels != 0 || t.list.head != nil || t.list.tail != nil {
			return newError(InvariantViolation, "empty tree has nonzero count=%d levels=%d or non-nil list", t.count, t.levels)
		}
		return nil
	}

	leafDepth := -1
	var checkNode func(n *node[T, N], depth int) error
	checkNode = func(n *node[T, N], depth int) error {
		if n == t.root {
			if n.len() < 1 || n.len() > t.M {
				return newError(InvariantViolation, "root has %d children, want [1,%d]", n.len(), t.M)
			}
		} else if n.len() < t.m || n.len() > t.M {
			return newError(InvariantViolation, "node at depth %d has %d children, want [%d,%d]", depth, n.len(), t.m, t.M)
		}
		union := mbr.Empty[N](t.dim)
		for i := 0; i < n.len(); i++ {
			c := n.children[i]
			union.UnionInPlace(c.mbrOf())
			if p, slot := c.parentSlot(); p != n || slot != i {
				return newError(InvariantViolation, "child %d of node at depth %d has bad back-link", i, depth)
			}
			if !n.isLeafParent {
				if err := checkNode(n.nodeAt(i), depth+1); err != nil {
					return err
				}
			}
		}
		if n.isLeafParent {
			if leafDepth == -1 {
				leafDepth = depth
			} else if leafDepth != depth {
				return newError(InvariantViolation, "unbalanced tree: leaf-parents at depth %d and %d", leafDepth, depth)
			}
			for i := 0; i < n.len(); i++ {
				lf := n.leafAt(i)
				if !lf.box.Equal(lf.payload.Bounds()) {
					return newError(InvariantViolation, "leaf box stale at depth %d slot %d", depth, i)
				}
			}
		}
		if !n.box.Equal(union) {
			return newError(InvariantViolation, "node at depth %d has stale box", depth)
		}
		return nil
	}
	if err := checkNode(t.root, 0); err != nil {
		return err
	}
	if leafDepth+1 != t.levels {
		return newError(InvariantViolation, "levels=%d but leaves found at depth %d", t.levels, leafDepth)
	}

	seen := make(map[*leaf[T, N]]bool, t.count)
	n := 0
	for cur := t.list.head; cur != nil; cur = cur.next {
		if seen[cur] {
			return newError(InvariantViolation, "list has a cycle")
		}
		seen[cur] = true
		n++
	}
	if n != t.count {
		return newError(InvariantViolation, "list has %d entries, count says %d", n, t.count)
	}
	reachable := collectLeaves(t.root)
	if len(reachable) != t.count {
		return newError(InvariantViolation, "tree reaches %d leaves, count says %d", len(reachable), t.count)
	}
	for _, lf := range reachable {
		if !seen[lf] {
			return newError(InvariantViolation, "leaf reachable from tree missing from list")
		}
	}
	return nil
}

// insertionSortDesc sorts s by descending key(s[i]). M is small (tens),
// so a simple stable insertion sort avoids pulling in sort.Slice's
// reflection-based comparator for a handful of elements.
func insertionSortDesc[E any, N mbr.Number](s []E, key func(E) N) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		kv := key(v)
		j := i - 1
		for j >= 0 && key(s[j]) < kv {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}
