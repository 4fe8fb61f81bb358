// Package mbr implements the minimum-bounding-rectangle algebra the R*-tree
// is built on: a fixed-dimension, axis-aligned hyperrectangle with union,
// intersection, containment, volume, perimeter and the handful of distance
// measures the split and leaf-selection algorithms need.
//
// It is grounded on original_source/MathMBR.h, generalized from the
// teacher's 2-D geo.Rectangle (lat/long only) to an arbitrary dimension
// count chosen at construction time, since Go has no const-generic array
// length to carry the dimension as a type parameter.
package mbr

import "fmt"

// Number is the set of built-in numeric kinds an MBR can be built over.
// original_source/MathMBR.h leaves NumberType as a template parameter with
// +,-,*,/ and ordering; no example repo in the corpus imports
// golang.org/x/exp/constraints for an equivalent constraint, so this is a
// local three-line interface rather than an added dependency.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// MBR is a minimum bounding rectangle in N-dimensional space, or the empty
// rectangle. The zero value is empty.
type MBR[T Number] struct {
	min, max []T
	hasData  bool // false means empty; the zero value is thus empty.
}

// Empty returns the empty MBR of the given dimension count. Empty is the
// identity element of Union and absorbs under Intersect.
func Empty[T Number](dim int) MBR[T] {
	return MBR[T]{min: make([]T, dim), max: make([]T, dim)}
}

// Dim returns the number of axes the MBR was constructed with.
func (m MBR[T]) Dim() int { return len(m.min) }

// IsEmpty reports whether the MBR carries no rectangle.
func (m MBR[T]) IsEmpty() bool { return !m.hasData }

// SetAxis sets axis i to the closed interval [lo, hi] and marks the MBR
// non-empty. Callers are responsible for lo <= hi and i < Dim(), same as
// MathMBR::setDim; out-of-range axes panic, the same way an unchecked slice
// index would in the teacher's code.
func (m *MBR[T]) SetAxis(i int, lo, hi T) {
	m.min[i] = lo
	m.max[i] = hi
	m.hasData = true
}

// Min returns the lower bound on axis i. Panics if i is out of range; on an
// empty MBR the result is not meaningful (zero for one built by Empty, a
// panic for the zero value). Use TryAxis for a checked variant.
func (m MBR[T]) Min(i int) T { return m.min[i] }

// Max returns the upper bound on axis i. Panics if i is out of range; on an
// empty MBR the result is not meaningful (zero for one built by Empty, a
// panic for the zero value). Use TryAxis for a checked variant.
func (m MBR[T]) Max(i int) T { return m.max[i] }

// TryAxis is the debug-mode accessor: it returns an error for an
// out-of-range axis or an empty MBR instead of panicking, for callers that
// opted into Tree's debug checks (spec.md §7). Tree.Axis tags these errors
// as DimensionOutOfRange or EmptyMBRAccess.
func (m MBR[T]) TryAxis(i int) (lo, hi T, err error) {
	if i < 0 || i >= len(m.min) {
		return lo, hi, fmt.Errorf("mbr: axis %d out of range [0,%d)", i, len(m.min))
	}
	if !m.hasData {
		return lo, hi, fmt.Errorf("mbr: access to empty MBR")
	}
	return m.min[i], m.max[i], nil
}

// Union returns the smallest MBR containing both m and other. Union with an
// empty operand is a no-op on the non-empty side; union of two empties is
// empty.
func (m MBR[T]) Union(other MBR[T]) MBR[T] {
	out := m.Clone()
	out.UnionInPlace(other)
	return out
}

// UnionInPlace grows m to also contain other, in place.
func (m *MBR[T]) UnionInPlace(other MBR[T]) {
	if !other.hasData {
		return
	}
	if !m.hasData {
		m.min = append([]T(nil), other.min...)
		m.max = append([]T(nil), other.max...)
		m.hasData = true
		return
	}
	for i := range m.min {
		if other.min[i] < m.min[i] {
			m.min[i] = other.min[i]
		}
		if other.max[i] > m.max[i] {
			m.max[i] = other.max[i]
		}
	}
}

// Intersect returns the overlapping rectangle of m and other, or the empty
// MBR if they don't overlap or either is empty.
func (m MBR[T]) Intersect(other MBR[T]) MBR[T] {
	if !m.hasData || !other.hasData {
		return MBR[T]{}
	}
	out := Empty[T](len(m.min))
	for i := range m.min {
		lo := m.min[i]
		if other.min[i] > lo {
			lo = other.min[i]
		}
		hi := m.max[i]
		if other.max[i] < hi {
			hi = other.max[i]
		}
		if lo > hi {
			return MBR[T]{}
		}
		out.min[i], out.max[i] = lo, hi
	}
	out.hasData = true
	return out
}

// Intersects reports whether m and other overlap on every axis. False if
// either is empty.
func (m MBR[T]) Intersects(other MBR[T]) bool {
	if !m.hasData || !other.hasData {
		return false
	}
	for i := range m.min {
		if other.min[i] > m.max[i] || other.max[i] < m.min[i] {
			return false
		}
	}
	return true
}

// Contains reports whether other lies entirely within m. False if either is
// empty.
func (m MBR[T]) Contains(other MBR[T]) bool {
	if !m.hasData || !other.hasData {
		return false
	}
	for i := range m.min {
		if other.min[i] < m.min[i] || other.max[i] > m.max[i] {
			return false
		}
	}
	return true
}

// ContainsPointOn reports whether k lies within m's bounds on axis i.
// False if m is empty.
func (m MBR[T]) ContainsPointOn(i int, k T) bool {
	if !m.hasData {
		return false
	}
	return k >= m.min[i] && k <= m.max[i]
}

// Volume returns the product of side lengths; zero for an empty MBR.
func (m MBR[T]) Volume() T {
	if !m.hasData {
		var zero T
		return zero
	}
	v := m.max[0] - m.min[0]
	for i := 1; i < len(m.min); i++ {
		v *= m.max[i] - m.min[i]
	}
	return v
}

// Perimeter returns 2 * sum of side lengths; zero for an empty MBR.
func (m MBR[T]) Perimeter() T {
	if !m.hasData {
		var zero T
		return zero
	}
	var sum T
	for i := range m.min {
		sum += m.max[i] - m.min[i]
	}
	return sum * T(2)
}

// SquaredCenterDistance returns the squared Euclidean distance between the
// centers of m and other, scaled as in MathMBR::distance: (1/4) * sum of
// (other.min[i]+other.max[i]-m.min[i]-m.max[i])^2. This avoids a division
// by two per axis per center, at the cost of the overall /4 factor, which
// is exactly what original_source/MathMBR.h does.
func (m MBR[T]) SquaredCenterDistance(other MBR[T]) T {
	var sum T
	for i := range m.min {
		d := other.min[i] + other.max[i] - m.min[i] - m.max[i]
		sum += d * d
	}
	return sum / T(4)
}

// OverlapVolume returns the volume of the intersection of m and other, zero
// if either is empty or they don't overlap on some axis.
func (m MBR[T]) OverlapVolume(other MBR[T]) T {
	var zero T
	if !m.hasData || !other.hasData {
		return zero
	}
	lo := m.min[0]
	if other.min[0] > lo {
		lo = other.min[0]
	}
	hi := m.max[0]
	if other.max[0] < hi {
		hi = other.max[0]
	}
	if lo >= hi {
		return zero
	}
	v := hi - lo
	for i := 1; i < len(m.min); i++ {
		lo := m.min[i]
		if other.min[i] > lo {
			lo = other.min[i]
		}
		hi := m.max[i]
		if other.max[i] < hi {
			hi = other.max[i]
		}
		if lo >= hi {
			return zero
		}
		v *= hi - lo
	}
	return v
}

// UnionVolume returns the volume of Union(m, other) without materializing
// the union, mirroring MathMBR::unionVolume's short-circuits for an empty
// operand.
func (m MBR[T]) UnionVolume(other MBR[T]) T {
	if !m.hasData && !other.hasData {
		var zero T
		return zero
	}
	if !m.hasData {
		return other.Volume()
	}
	if !other.hasData {
		return m.Volume()
	}
	lo := m.min[0]
	if other.min[0] < lo {
		lo = other.min[0]
	}
	hi := m.max[0]
	if other.max[0] > hi {
		hi = other.max[0]
	}
	v := hi - lo
	for i := 1; i < len(m.min); i++ {
		lo := m.min[i]
		if other.min[i] < lo {
			lo = other.min[i]
		}
		hi := m.max[i]
		if other.max[i] > hi {
			hi = other.max[i]
		}
		v *= hi - lo
	}
	return v
}

// Equal reports componentwise equality. Two empty MBRs are equal regardless
// of dimension.
func (m MBR[T]) Equal(other MBR[T]) bool {
	if m.hasData != other.hasData {
		return false
	}
	if !m.hasData {
		return true
	}
	if len(m.min) != len(other.min) {
		return false
	}
	for i := range m.min {
		if m.min[i] != other.min[i] || m.max[i] != other.max[i] {
			return false
		}
	}
	return true
}

// String renders the MBR as "min-max" for debug output, or "{}" when empty.
func (m MBR[T]) String() string {
	if !m.hasData {
		return "{}"
	}
	return fmt.Sprintf("%v-%v", m.min, m.max)
}

// Clone returns a deep copy, so callers can keep mutating one MBR without
// aliasing another's backing arrays.
func (m MBR[T]) Clone() MBR[T] {
	if !m.hasData {
		return MBR[T]{}
	}
	return MBR[T]{
		min:     append([]T(nil), m.min...),
		max:     append([]T(nil), m.max...),
		hasData: true,
	}
}

// FromPoint builds a zero-volume MBR that is both the min and max corner,
// the representation the teacher uses for boats (geo.NewRectangle with
// identical min/max) and that spec.md's scenarios use for point payloads.
func FromPoint[T Number](coords []T) MBR[T] {
	out := Empty[T](len(coords))
	copy(out.min, coords)
	copy(out.max, coords)
	out.hasData = true
	return out
}

// New builds an MBR from explicit min/max slices, erroring if a min exceeds
// its corresponding max or the slices disagree in length — the Go
// equivalent of the teacher's geo.NewRectangle validation.
func New[T Number](min, max []T) (MBR[T], error) {
	if len(min) != len(max) {
		return MBR[T]{}, fmt.Errorf("mbr: min and max have different dimension (%d vs %d)", len(min), len(max))
	}
	for i := range min {
		if min[i] > max[i] {
			return MBR[T]{}, fmt.Errorf("mbr: axis %d has min %v > max %v", i, min[i], max[i])
		}
	}
	return MBR[T]{
		min:     append([]T(nil), min...),
		max:     append([]T(nil), max...),
		hasData: true,
	}, nil
}
