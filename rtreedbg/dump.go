package rtreedbg

import (
	"fmt"

	"github.com/mist90/RTreeStar/mbr"
	tp "github.com/xlab/treeprint"
)

// Dump renders the subtree rooted at root as an indented outline, one line
// per node/leaf, each annotated with its MBR. This is the direct
// generalization of the teacher's ShipDB.DebugShowLayout() (which renders
// the tree as GeoJSON by hand) to an arbitrary payload and dimension count,
// built on the same tree-printing library npillmayer-fp/persistent/btree
// and .../vector use in their own test helpers (printTree/ppt).
func Dump[N mbr.Number](root NodeView[N]) string {
	if root == nil {
		return "(empty)"
	}
	tree := tp.New()
	tree.SetValue(fmt.Sprintf("node %v", root.Box()))
	addChildren(tree, root)
	return tree.String()
}

func addChildren[N mbr.Number](branch tp.Tree, n NodeView[N]) {
	if n.IsLeafParent() {
		for i := 0; i < n.Len(); i++ {
			branch.AddNode(fmt.Sprintf("%s %v", n.LeafLabel(i), n.LeafBox(i)))
		}
		return
	}
	for i := 0; i < n.Len(); i++ {
		child := n.Child(i)
		childBranch := branch.AddBranch(fmt.Sprintf("node %v", child.Box()))
		addChildren(childBranch, child)
	}
}
