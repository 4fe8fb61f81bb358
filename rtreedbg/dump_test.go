package rtreedbg_test

import (
	"strings"
	"testing"

	"github.com/mist90/RTreeStar/mbr"
	"github.com/mist90/RTreeStar/rtreedbg"
)

// fakeNode is a minimal rtreedbg.NodeView for testing Dump without pulling
// in the full tree package.
type fakeNode struct {
	box          mbr.MBR[float64]
	isLeafParent bool
	children     []*fakeNode
	leafBoxes    []mbr.MBR[float64]
	leafLabels   []string
}

func (n *fakeNode) Box() mbr.MBR[float64]    { return n.box }
func (n *fakeNode) Len() int                 { return len(n.children) + len(n.leafBoxes) }
func (n *fakeNode) IsLeafParent() bool       { return n.isLeafParent }
func (n *fakeNode) LeafBox(i int) mbr.MBR[float64] { return n.leafBoxes[i] }
func (n *fakeNode) LeafLabel(i int) string   { return n.leafLabels[i] }
func (n *fakeNode) Child(i int) rtreedbg.NodeView[float64] {
	return n.children[i]
}

func TestDumpNilIsEmpty(t *testing.T) {
	if got := rtreedbg.Dump[float64](nil); got != "(empty)" {
		t.Fatalf("Dump(nil) = %q, want %q", got, "(empty)")
	}
}

func TestDumpRendersLeavesAndChildren(t *testing.T) {
	root := &fakeNode{
		box: mbr.FromPoint([]float64{0, 0}),
		children: []*fakeNode{
			{
				box:          mbr.FromPoint([]float64{1, 1}),
				isLeafParent: true,
				leafBoxes:    []mbr.MBR[float64]{mbr.FromPoint([]float64{1, 1})},
				leafLabels:   []string{"leaf-A"},
			},
		},
	}
	out := rtreedbg.Dump[float64](root)
	if !strings.Contains(out, "leaf-A") {
		t.Fatalf("Dump output missing leaf label: %q", out)
	}
	if !strings.Contains(out, "node") {
		t.Fatalf("Dump output missing node annotation: %q", out)
	}
}
