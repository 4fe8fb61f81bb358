package rtreestar

import (
	"github.com/mist90/RTreeStar/mbr"
	"github.com/mist90/RTreeStar/rtreedbg"
)

// Option configures a Tree at construction time. Go has no const-generic
// parameters to carry D/m/M/the forced-reinsertion flag the way the
// original template did, so they become constructor arguments and
// functional options instead (spec.md §9 "Templated dimension").
type Option[T Spatial[N], N mbr.Number] func(*Tree[T, N])

// WithForcedReinsert turns on the R* forced-reinsertion overflow strategy
// (spec.md §4.4.B) for this tree. Default is split-only (§4.4.A), matching
// original_source/MathRTreeStar.h's compile-time flag defaulting off.
func WithForcedReinsert[T Spatial[N], N mbr.Number](on bool) Option[T, N] {
	return func(t *Tree[T, N]) { t.forcedReinsert = on }
}

// WithDebug turns on the structural/domain checks of spec.md §7:
// Tree.Axis raises a DimensionOutOfRange/EmptyMBRAccess *Error instead of
// panicking outright, and mutating operations call Verify and log+panic
// on an InvariantViolation.
func WithDebug[T Spatial[N], N mbr.Number](on bool) Option[T, N] {
	return func(t *Tree[T, N]) { t.debug = on }
}

// WithLogger attaches a logger that receives a Warning message when a
// debug-mode Tree.Axis returns an error, and an Error message just before a
// debug-mode Tree panics on an invariant violation. Has no effect unless
// WithDebug(true) is also given.
func WithLogger[T Spatial[N], N mbr.Number](l *rtreedbg.Logger) Option[T, N] {
	return func(t *Tree[T, N]) { t.logger = l }
}
