package rtreestar

import (
	"fmt"

	"github.com/mist90/RTreeStar/mbr"
	"github.com/mist90/RTreeStar/rtreedbg"
)

// node implements rtreedbg.NodeView so Tree.Root() can hand a node out for
// introspection without rtreedbg importing this package back.

func (n *node[T, N]) Box() mbr.MBR[N]    { return n.box }
func (n *node[T, N]) Len() int           { return n.len() }
func (n *node[T, N]) IsLeafParent() bool { return n.isLeafParent }

func (n *node[T, N]) Child(i int) rtreedbg.NodeView[N] {
	return n.nodeAt(i)
}

func (n *node[T, N]) LeafBox(i int) mbr.MBR[N] {
	return n.leafAt(i).box
}

func (n *node[T, N]) LeafLabel(i int) string {
	return fmt.Sprint(n.leafAt(i).payload)
}
