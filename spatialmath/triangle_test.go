package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBasicTriangleFunctions(t *testing.T) {
	expectedPts := []r3.Vector{{0, 0, 0}, {0, 3, 0}, {3, 0, 0}}
	tri := NewTriangle(expectedPts[0], expectedPts[1], expectedPts[2])

	expectedNormal := r3.Vector{0, 0, 1}
	expectedArea := 4.5
	expectedCentroid := r3.Vector{1, 1, 0}

	t.Run("constructor", func(t *testing.T) {
		test.That(t, tri.Points(), test.ShouldResemble, expectedPts)
		// the cross product of the normal with what is expected should result in nothing
		test.That(t, tri.Normal().Cross(expectedNormal), test.ShouldResemble, r3.Vector{})
	})

	t.Run("area", func(t *testing.T) {
		test.That(t, tri.Area(), test.ShouldEqual, expectedArea)
	})

	t.Run("centroid", func(t *testing.T) {
		test.That(t, tri.Centroid(), test.ShouldResemble, expectedCentroid)
	})

	t.Run("bounds", func(t *testing.T) {
		b := tri.Bounds()
		test.That(t, b.Min, test.ShouldResemble, r3.Vector{})
		test.That(t, b.Max, test.ShouldResemble, r3.Vector{3, 3, 0})
	})

	t.Run("projection", func(t *testing.T) {
		type testCase struct {
			name      string
			query     r3.Vector
			projected r3.Vector
			inside    bool
		}
		for _, tc := range []testCase{
			{"interior", r3.Vector{1, 1, 1}, r3.Vector{1, 1, 0}, true},
			{"above edge", r3.Vector{2, 0, 1}, r3.Vector{2, 0, 0}, true},
			{"above vertex", r3.Vector{0, 3, -2}, r3.Vector{0, 3, 0}, true},
			{"beside edge", r3.Vector{1, -1, 1}, r3.Vector{1, -1, 0}, false},
			{"past vertex", r3.Vector{0, 4, 0}, r3.Vector{0, 4, 0}, false},
		} {
			t.Run(tc.name, func(t *testing.T) {
				projected, inside := tri.ClosestInsidePoint(tc.query)
				test.That(t, inside, test.ShouldEqual, tc.inside)
				test.That(t, R3VectorAlmostEqual(projected, tc.projected, 1e-12), test.ShouldBeTrue)
			})
		}

		tilted := NewTriangle(r3.Vector{0, 0, 0}, r3.Vector{50, 0, 0}, r3.Vector{0, 30, 40})
		// (0, 4, -3) is normal to the tilted plane
		projected, inside := tilted.ClosestInsidePoint(r3.Vector{1, 3 + 4, 4 - 3})
		test.That(t, R3VectorAlmostEqual(projected, r3.Vector{1, 3, 4}, 1e-9), test.ShouldBeTrue)
		test.That(t, inside, test.ShouldBeTrue)

		sliver := NewTriangle(r3.Vector{}, r3.Vector{1, 0, 0}, r3.Vector{2, 0, 0})
		_, inside = sliver.ClosestInsidePoint(r3.Vector{1, 0, 0})
		test.That(t, inside, test.ShouldBeFalse)
	})

	t.Run("nearest point", func(t *testing.T) {
		test.That(t, tri.ClosestPointToPoint(r3.Vector{1, 1, 1}), test.ShouldResemble, r3.Vector{1, 1, 0})
		// nearest to the hypotenuse
		test.That(t, tri.ClosestPointToPoint(r3.Vector{3, 2, 1}), test.ShouldResemble, r3.Vector{2, 1, 0})
		// nearest to a corner
		test.That(t, tri.ClosestPointToPoint(r3.Vector{-1, -1, 1}), test.ShouldResemble, r3.Vector{0, 0, 0})
		test.That(t, tri.ClosestPointToPoint(r3.Vector{0, 5, 0}), test.ShouldResemble, r3.Vector{0, 3, 0})
	})

	t.Run("contains point", func(t *testing.T) {
		test.That(t, tri.ContainsPoint(r3.Vector{1, 1, 0}, 0), test.ShouldBeTrue)
		test.That(t, tri.ContainsPoint(r3.Vector{1.5, 1.5, 0}, 0), test.ShouldBeTrue)
		test.That(t, tri.ContainsPoint(r3.Vector{-0.05, 1, 0}, 0), test.ShouldBeFalse)
		test.That(t, tri.ContainsPoint(r3.Vector{-0.05, 1, 0}, 0.1), test.ShouldBeTrue)
		test.That(t, tri.ContainsPoint(r3.Vector{2, 2, 0}, 0.1), test.ShouldBeFalse)
	})

	t.Run("intersects plane", func(t *testing.T) {
		test.That(t, tri.IntersectsPlane(r3.Vector{1, 0, 0}, r3.Vector{1, 0, 0}, 0), test.ShouldBeTrue)
		test.That(t, tri.IntersectsPlane(r3.Vector{0, 0, 0}, r3.Vector{0, 0, 1}, 0), test.ShouldBeTrue)
		test.That(t, tri.IntersectsPlane(r3.Vector{0, 0, 1}, r3.Vector{0, 0, 1}, 0), test.ShouldBeFalse)
		test.That(t, tri.IntersectsPlane(r3.Vector{0, 0, 1}, r3.Vector{0, 0, 1}, 1.5), test.ShouldBeTrue)
		test.That(t, tri.IntersectsPlane(r3.Vector{4, 0, 0}, r3.Vector{1, 0, 0}, 0), test.ShouldBeFalse)
	})
}
