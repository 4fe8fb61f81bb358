package rtreedbg

import "github.com/mist90/RTreeStar/mbr"

// NodeView is a read-only window onto one node of an R*-tree, returned by
// Tree.Root() for introspection — the generalization of spec.md §6's
// "root() accessor for introspection (e.g. visualization)" and of the
// teacher's ShipDB.DebugShowLayout(). A Tree's internal *node type
// implements this without rtreedbg importing the tree package back,
// avoiding an import cycle between the core package and its debug helpers.
type NodeView[N mbr.Number] interface {
	// Box is the node's cached subtree MBR.
	Box() mbr.MBR[N]
	// Len is the number of populated child slots.
	Len() int
	// IsLeafParent reports whether this node's children are payload
	// leaves (true) or nested nodes (false).
	IsLeafParent() bool
	// Child returns the i'th child as a NodeView. Panics if IsLeafParent.
	Child(i int) NodeView[N]
	// LeafBox returns the i'th leaf's MBR. Panics unless IsLeafParent.
	LeafBox(i int) mbr.MBR[N]
	// LeafLabel returns a short human-readable label for the i'th leaf,
	// usually fmt.Sprint of the payload. Panics unless IsLeafParent.
	LeafLabel(i int) string
}
