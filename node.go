package rtreestar

import (
	"sort"

	"github.com/mist90/RTreeStar/mbr"
)

// childRef is implemented by both *node and *leaf, so a node's children
// slice can hold either kind behind one type, tagged by isLeafParent —
// the Go analogue of the teacher's node.entries[] of {mbr, child}-or-
// {mbr, mmsi} pairs (spec.md §9 "type-erased child array").
type childRef[T Spatial[N], N mbr.Number] interface {
	mbrOf() mbr.MBR[N]
	setParent(p *node[T, N], slot int)
	parentSlot() (*node[T, N], int)
}

// node is an internal tree node: either an internal-node parent (children
// are *node) or a leaf-parent (children are *leaf), distinguished by
// isLeafParent. It is the generalization of the teacher's storage.node,
// which folds the same two roles into one struct keyed off n.height==0.
type node[T Spatial[N], N mbr.Number] struct {
	box          mbr.MBR[N]
	parent       *node[T, N]
	slot         int
	isLeafParent bool
	children     []childRef[T, N]
}

func (n *node[T, N]) mbrOf() mbr.MBR[N] { return n.box }

func (n *node[T, N]) setParent(p *node[T, N], slot int) {
	n.parent = p
	n.slot = slot
}

func (n *node[T, N]) parentSlot() (*node[T, N], int) { return n.parent, n.slot }

// len returns the number of populated child slots.
func (n *node[T, N]) len() int { return len(n.children) }

func (n *node[T, N]) leafAt(i int) *leaf[T, N] { return n.children[i].(*leaf[T, N]) }
func (n *node[T, N]) nodeAt(i int) *node[T, N] { return n.children[i].(*node[T, N]) }

// attach appends child if there's room, updating the child's parent/slot
// and this node's cached box. Returns whether it fit.
func (n *node[T, N]) attach(child childRef[T, N], M int) bool {
	if len(n.children) >= M {
		return false
	}
	child.setParent(n, len(n.children))
	n.children = append(n.children, child)
	n.box.UnionInPlace(child.mbrOf())
	return true
}

// attachLight is attach without touching n.box; used when the caller will
// recompute it itself (spec.md §4.2).
func (n *node[T, N]) attachLight(child childRef[T, N], M int) bool {
	if len(n.children) >= M {
		return false
	}
	child.setParent(n, len(n.children))
	n.children = append(n.children, child)
	return true
}

// detach removes the child at slot i, shifting later children left and
// fixing up their slots, then recomputes n.box from scratch.
func (n *node[T, N]) detach(i, dim int) bool {
	if i < 0 || i >= len(n.children) {
		return false
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	for j := i; j < len(n.children); j++ {
		n.children[j].setParent(n, j)
	}
	n.updateMBR(dim)
	return true
}

// detachAll empties the node without changing isLeafParent.
func (n *node[T, N]) detachAll(dim int) {
	n.children = n.children[:0]
	n.box = mbr.Empty[N](dim)
}

// updateMBR recomputes n.box as the union of its current children.
func (n *node[T, N]) updateMBR(dim int) {
	box := mbr.Empty[N](dim)
	for _, c := range n.children {
		box.UnionInPlace(c.mbrOf())
	}
	n.box = box
}

// updateUpMBR walks the parent chain above n, recomputing MBRs root-ward.
func (n *node[T, N]) updateUpMBR(dim int) {
	for p := n.parent; p != nil; p = p.parent {
		p.updateMBR(dim)
	}
}

// overlapIncrease sums the overlap volume of children[i] against every
// other child. selectLeafParent uses it on nodes whose children are
// leaf-parents.
func (n *node[T, N]) overlapIncrease(i int) N {
	var sum N
	box := n.children[i].mbrOf()
	for j, c := range n.children {
		if j == i {
			continue
		}
		sum += box.OverlapVolume(c.mbrOf())
	}
	return sum
}

// overlapIncreaseWith is overlapIncrease as if children[i]'s box were first
// enlarged to include probe.
func (n *node[T, N]) overlapIncreaseWith(i int, probe mbr.MBR[N]) N {
	var sum N
	box := n.children[i].mbrOf().Union(probe)
	for j, c := range n.children {
		if j == i {
			continue
		}
		sum += box.OverlapVolume(c.mbrOf())
	}
	return sum
}

// split partitions n's current M children plus newcomer into two groups of
// R*-tree-valid size using the choose-axis/choose-index procedure of
// spec.md §4.2, grounded on original_source/MathRTreeStar.h's
// Node::devide/getNumAxis/getNumIndex and on the teacher's
// node.split()/chooseSplitAxis(). n keeps the first group; the returned
// node holds the second.
func (n *node[T, N]) split(newcomer childRef[T, N], dim, m, M int) *node[T, N] {
	all := make([]childRef[T, N], 0, M+1)
	all = append(all, n.children...)
	all = append(all, newcomer)
	boxAt := func(i int) mbr.MBR[N] { return all[i].mbrOf() }

	order, splitAt := chooseSplit[N](dim, m, M, boxAt)

	// attachLight + a single updateMBR per group, rather than n.attach's
	// incremental per-child union, since both groups are rebuilt from
	// scratch here and the caller (this function) is the one recomputing.
	n.detachAll(dim)
	for i := 0; i < splitAt; i++ {
		n.attachLight(all[order[i]], M)
	}
	n.updateMBR(dim)

	sibling := &node[T, N]{isLeafParent: n.isLeafParent, box: mbr.Empty[N](dim)}
	for i := splitAt; i < len(order); i++ {
		sibling.attachLight(all[order[i]], M)
	}
	sibling.updateMBR(dim)
	return sibling
}

// chooseSplit runs the R* choose-axis then choose-index procedure over
// M+1 boxes accessed through boxAt, and returns the winning permutation of
// indices [0,M] plus the prefix length (group-1 size) to split at.
// Ties at every step are broken by keeping the first candidate encountered
// (smallest axis / smallest k), per spec.md §4.2.
func chooseSplit[N mbr.Number](dim, m, M int, boxAt func(int) mbr.MBR[N]) (order []int, splitAt int) {
	n := M + 1
	base := make([]int, n)
	for i := range base {
		base[i] = i
	}

	var bestAxis int
	var bestPerimeter N
	bestOrder := make([]int, n)
	for axis := 0; axis < dim; axis++ {
		cur := append([]int(nil), base...)
		sortByAxisDesc(cur, boxAt, axis)
		perim := minGroupPerimeter(cur, boxAt, m, M)
		if axis == 0 || perim < bestPerimeter {
			bestAxis = axis
			bestPerimeter = perim
			copy(bestOrder, cur)
		}
	}
	_ = bestAxis

	k := bestSplitIndex(bestOrder, boxAt, m, M)
	return bestOrder, m + k
}

// sortByAxisDesc sorts idx (indices into boxAt) by descending min on the
// given axis, ties broken by descending max — spec.md §4.2 step 1.
func sortByAxisDesc[N mbr.Number](idx []int, boxAt func(int) mbr.MBR[N], axis int) {
	sort.SliceStable(idx, func(i, j int) bool {
		bi, bj := boxAt(idx[i]), boxAt(idx[j])
		mi, mj := bi.Min(axis), bj.Min(axis)
		if mi != mj {
			return mi > mj
		}
		return bi.Max(axis) > bj.Max(axis)
	})
}

// groupBox returns the union MBR of the boxes at the given indices.
func groupBox[N mbr.Number](idx []int, boxAt func(int) mbr.MBR[N]) mbr.MBR[N] {
	var box mbr.MBR[N]
	for _, i := range idx {
		box.UnionInPlace(boxAt(i))
	}
	return box
}

// minGroupPerimeter returns, over every valid split point on this order,
// the minimum sum of the two groups' perimeters.
func minGroupPerimeter[N mbr.Number](order []int, boxAt func(int) mbr.MBR[N], m, M int) N {
	maxK := M - 2*m + 1
	var best N
	for k := 0; k <= maxK; k++ {
		p := m + k
		perim := groupBox(order[:p], boxAt).Perimeter() + groupBox(order[p:], boxAt).Perimeter()
		if k == 0 || perim < best {
			best = perim
		}
	}
	return best
}

// bestSplitIndex finds k minimizing the two groups' overlap volume, ties
// going to the smallest k, per spec.md §4.2 step 2.
func bestSplitIndex[N mbr.Number](order []int, boxAt func(int) mbr.MBR[N], m, M int) int {
	maxK := M - 2*m + 1
	bestK := 0
	var bestOverlap N
	for k := 0; k <= maxK; k++ {
		p := m + k
		g1 := groupBox(order[:p], boxAt)
		g2 := groupBox(order[p:], boxAt)
		overlap := g1.OverlapVolume(g2)
		if k == 0 || overlap < bestOverlap {
			bestK, bestOverlap = k, overlap
		}
	}
	return bestK
}
