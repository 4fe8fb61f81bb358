package mbr_test

import (
	"testing"

	"github.com/mist90/RTreeStar/mbr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(min, max []float64) mbr.MBR[float64] {
	m, err := mbr.New(min, max)
	if err != nil {
		panic(err)
	}
	return m
}

func TestEmptyIsUnionIdentity(t *testing.T) {
	a := rect([]float64{0, 0}, []float64{1, 1})
	empty := mbr.Empty[float64](2)

	got := a.Union(empty)
	assert.True(t, got.Equal(a), "A + empty should equal A")

	got = empty.Union(a)
	assert.True(t, got.Equal(a), "empty + A should equal A")

	assert.True(t, empty.Union(empty).IsEmpty())
}

func TestIntersectCommutative(t *testing.T) {
	a := rect([]float64{0, 0}, []float64{2, 2})
	b := rect([]float64{1, 1}, []float64{3, 3})

	assert.True(t, a.Intersect(b).Equal(b.Intersect(a)))
}

func TestIntersectWithEmptyIsEmpty(t *testing.T) {
	a := rect([]float64{0, 0}, []float64{2, 2})
	empty := mbr.Empty[float64](2)
	assert.True(t, a.Intersect(empty).IsEmpty())
	assert.False(t, a.Intersects(empty))
	assert.False(t, a.Contains(empty))
	assert.False(t, empty.Contains(a))
}

func TestContainsImpliesIntersects(t *testing.T) {
	outer := rect([]float64{0, 0}, []float64{10, 10})
	inner := rect([]float64{2, 2}, []float64{4, 4})
	require.True(t, outer.Contains(inner))
	assert.True(t, outer.Intersects(inner))
	assert.True(t, outer.Contains(outer), "contains is reflexive on non-empty MBRs")
}

func TestDisjointDoesNotIntersect(t *testing.T) {
	a := rect([]float64{0, 0}, []float64{1, 1})
	b := rect([]float64{2, 2}, []float64{3, 3})
	assert.False(t, a.Intersects(b))
	assert.True(t, a.Intersect(b).IsEmpty())
	assert.Equal(t, float64(0), a.OverlapVolume(b))
}

func TestVolumeAndPerimeter(t *testing.T) {
	a := rect([]float64{0, 0}, []float64{2, 3})
	assert.Equal(t, float64(6), a.Volume())
	assert.Equal(t, float64(10), a.Perimeter())
	assert.Equal(t, float64(0), mbr.Empty[float64](2).Volume())
	assert.Equal(t, float64(0), mbr.Empty[float64](2).Perimeter())
}

func TestOverlapVolume(t *testing.T) {
	a := rect([]float64{0, 0}, []float64{2, 2})
	b := rect([]float64{1, 1}, []float64{3, 3})
	assert.Equal(t, float64(1), a.OverlapVolume(b))
	assert.Equal(t, a.OverlapVolume(b), b.OverlapVolume(a))
}

func TestUnionVolumeMatchesMaterializedUnion(t *testing.T) {
	a := rect([]float64{0, 0}, []float64{1, 1})
	b := rect([]float64{2, 2}, []float64{3, 3})
	assert.Equal(t, a.Union(b).Volume(), a.UnionVolume(b))

	empty := mbr.Empty[float64](2)
	assert.Equal(t, a.Volume(), a.UnionVolume(empty))
	assert.Equal(t, a.Volume(), empty.UnionVolume(a))
}

func TestSquaredCenterDistance(t *testing.T) {
	a := rect([]float64{0, 0}, []float64{0, 0})
	b := rect([]float64{3, 4}, []float64{3, 4})
	assert.Equal(t, float64(25), a.SquaredCenterDistance(b))
}

func TestNewRejectsInvertedAxis(t *testing.T) {
	_, err := mbr.New([]float64{5}, []float64{1})
	assert.Error(t, err)
}

func TestNewRejectsMismatchedLength(t *testing.T) {
	_, err := mbr.New([]float64{0, 0}, []float64{1})
	assert.Error(t, err)
}

func TestTryAxisOnEmpty(t *testing.T) {
	empty := mbr.Empty[float64](2)
	_, _, err := empty.TryAxis(0)
	assert.Error(t, err)
}

func TestTryAxisOutOfRange(t *testing.T) {
	a := rect([]float64{0}, []float64{1})
	_, _, err := a.TryAxis(5)
	assert.Error(t, err)
}

func TestFromPoint(t *testing.T) {
	p := mbr.FromPoint([]float64{1, 2, 3})
	assert.Equal(t, float64(1), p.Min(0))
	assert.Equal(t, float64(1), p.Max(0))
	assert.Equal(t, float64(0), p.Volume(), "a point has zero volume")
}

func TestCloneIsIndependent(t *testing.T) {
	a := rect([]float64{0, 0}, []float64{1, 1})
	b := a.Clone()
	b.SetAxis(0, -5, 5)
	assert.Equal(t, float64(0), a.Min(0), "mutating the clone must not affect the original")
}
