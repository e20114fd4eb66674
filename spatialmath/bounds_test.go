package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBounds(t *testing.T) {
	empty := EmptyBounds()
	test.That(t, empty.IsEmpty(), test.ShouldBeTrue)
	test.That(t, empty.Diagonal(), test.ShouldEqual, 0.)
	test.That(t, empty.ContainsPoint(r3.Vector{}), test.ShouldBeFalse)
	test.That(t, empty.IntersectsSegment(r3.Vector{-1, 0, 0}, r3.Vector{1, 0, 0}), test.ShouldBeFalse)

	b := NewBoundsFromPoints(r3.Vector{1, 2, 3}, r3.Vector{-1, 0, 5}, r3.Vector{0, 1, 4})
	test.That(t, b.IsEmpty(), test.ShouldBeFalse)
	test.That(t, b.Min, test.ShouldResemble, r3.Vector{-1, 0, 3})
	test.That(t, b.Max, test.ShouldResemble, r3.Vector{1, 2, 5})
	test.That(t, b.Center(), test.ShouldResemble, r3.Vector{0, 1, 4})
	test.That(t, b.Diagonal(), test.ShouldAlmostEqual, math.Sqrt(12))

	t.Run("contains", func(t *testing.T) {
		test.That(t, b.ContainsPoint(r3.Vector{1, 2, 5}), test.ShouldBeTrue)
		test.That(t, b.ContainsPoint(r3.Vector{1.1, 2, 5}), test.ShouldBeFalse)
		test.That(t, b.Pad(0.2).ContainsPoint(r3.Vector{1.1, 2, 5}), test.ShouldBeTrue)
	})

	t.Run("overlaps", func(t *testing.T) {
		touching := NewBoundsFromPoints(r3.Vector{1, 2, 5}, r3.Vector{3, 3, 6})
		test.That(t, b.Overlaps(touching), test.ShouldBeTrue)
		test.That(t, touching.Overlaps(b), test.ShouldBeTrue)
		apart := NewBoundsFromPoints(r3.Vector{1.5, 0, 3}, r3.Vector{3, 3, 6})
		test.That(t, b.Overlaps(apart), test.ShouldBeFalse)
		test.That(t, b.Overlaps(empty), test.ShouldBeFalse)
	})

	t.Run("segment", func(t *testing.T) {
		test.That(t, b.IntersectsSegment(r3.Vector{-5, 1, 4}, r3.Vector{5, 1, 4}), test.ShouldBeTrue)
		test.That(t, b.IntersectsSegment(r3.Vector{-5, 1, 4}, r3.Vector{-2, 1, 4}), test.ShouldBeFalse)
		test.That(t, b.IntersectsSegment(r3.Vector{-5, 5, 4}, r3.Vector{5, 5, 4}), test.ShouldBeFalse)
		test.That(t, b.IntersectsSegment(r3.Vector{-3, -2, 3}, r3.Vector{3, 4, 5}), test.ShouldBeTrue)
		// degenerate segment inside
		test.That(t, b.IntersectsSegment(r3.Vector{0, 1, 4}, r3.Vector{0, 1, 4}), test.ShouldBeTrue)
	})
}

func TestPlane(t *testing.T) {
	p := NewPlane(r3.Vector{0, 0, 1}, r3.Vector{0, 0, 3})
	test.That(t, p.Normal, test.ShouldResemble, r3.Vector{0, 0, 1})
	test.That(t, p.SignedDistance(r3.Vector{4, 4, 3}), test.ShouldEqual, 2.)
	test.That(t, p.SignedDistance(r3.Vector{4, 4, -1}), test.ShouldEqual, -2.)

	kind, tt, pt := p.IntersectSegment(r3.Vector{1, 1, 0}, r3.Vector{1, 1, 4})
	test.That(t, kind, test.ShouldEqual, SegmentCrosses)
	test.That(t, tt, test.ShouldAlmostEqual, 0.25)
	test.That(t, pt, test.ShouldResemble, r3.Vector{1, 1, 1})

	kind, tt, _ = p.IntersectSegment(r3.Vector{1, 1, 2}, r3.Vector{1, 1, 4})
	test.That(t, kind, test.ShouldEqual, SegmentMisses)
	test.That(t, tt, test.ShouldBeLessThan, 0)

	kind, _, _ = p.IntersectSegment(r3.Vector{0, 0, 1}, r3.Vector{5, 2, 1})
	test.That(t, kind, test.ShouldEqual, SegmentParallel)
}

func TestVectorHelpers(t *testing.T) {
	n := PlaneNormal(r3.Vector{0, 0, 0}, r3.Vector{2, 0, 0}, r3.Vector{0, 2, 0})
	test.That(t, n, test.ShouldResemble, r3.Vector{0, 0, 1})
	test.That(t, PlaneNormal(r3.Vector{0, 0, 0}, r3.Vector{1, 0, 0}, r3.Vector{2, 0, 0}), test.ShouldResemble, r3.Vector{})

	// leading collinear vertices do not matter to Newell's method
	quad := []r3.Vector{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0}}
	test.That(t, PolygonNormal(quad), test.ShouldResemble, r3.Vector{0, 0, 1})

	test.That(t, Centroid(nil), test.ShouldResemble, r3.Vector{})
	test.That(t, Centroid([]r3.Vector{{0, 0, 0}, {2, 4, 6}}), test.ShouldResemble, r3.Vector{1, 2, 3})

	a, b := r3.Vector{0, 0, 0}, r3.Vector{4, 0, 0}
	test.That(t, ClosestPointSegmentPoint(a, b, r3.Vector{1, 3, 0}), test.ShouldResemble, r3.Vector{1, 0, 0})
	test.That(t, ClosestPointSegmentPoint(a, b, r3.Vector{-2, 1, 0}), test.ShouldResemble, a)
	test.That(t, ClosestPointSegmentPoint(a, a, r3.Vector{1, 1, 1}), test.ShouldResemble, a)
	test.That(t, DistanceToSegment(a, b, r3.Vector{7, 4, 0}), test.ShouldAlmostEqual, 5)

	test.That(t, R3VectorAlmostEqual(r3.Vector{1, 1, 1}, r3.Vector{1, 1, 1.0001}, 1e-3), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(r3.Vector{1, 1, 1}, r3.Vector{1, 1, 1.01}, 1e-3), test.ShouldBeFalse)
}
