package rtreestar

import "fmt"

// Kind identifies the class of a debug-mode domain error (spec.md §7).
// Apart from DegenerateSelection, which selectLeafParent raises in every
// mode, these conditions are only checked when a Tree is built
// WithDebug(true); release-mode callers pay no cost for them, the same tradeoff
// original_source/MathMBR.h and MathRTreeStar.h make with their
// MATH_RTREE_STAR_MBR_DEBUG / MATH_RTREE_STAR_DEBUG macros.
type Kind int

const (
	// DimensionOutOfRange: axis index >= the tree's dimension count.
	DimensionOutOfRange Kind = iota
	// EmptyMBRAccess: Min/Max accessed on an empty MBR.
	EmptyMBRAccess
	// InvariantViolation: a structural check failed (level mismatch,
	// orphan node, parent/child mismatch, MBR mismatch, count mismatch).
	InvariantViolation
	// DegenerateSelection: selectLeafParent reached an internal node with
	// no children to choose from. Should never happen under the structural
	// invariants; treated as fatal (a panic).
	DegenerateSelection
)

func (k Kind) String() string {
	switch k {
	case DimensionOutOfRange:
		return "DimensionOutOfRange"
	case EmptyMBRAccess:
		return "EmptyMBRAccess"
	case InvariantViolation:
		return "InvariantViolation"
	case DegenerateSelection:
		return "DegenerateSelection"
	default:
		return "Unknown"
	}
}

// Error is the error/panic value raised by debug-mode checks.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rtreestar: %s: %s", e.Kind, e.Msg)
}

func newError(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}
