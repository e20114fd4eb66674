package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// floatEpsilon is the smallest magnitude treated as non-zero by the geometric predicates.
const floatEpsilon = 1e-12

// PlaneNormal returns the unit normal of the plane through the three points, following the
// right-hand rule p0 -> p1 -> p2. Collinear points yield the zero vector.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// PolygonNormal returns the unit normal of a planar polygon using Newell's method, which is
// robust to collinear leading vertices.
func PolygonNormal(pts []r3.Vector) r3.Vector {
	var n r3.Vector
	for i := range pts {
		cur := pts[i]
		next := pts[(i+1)%len(pts)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n.Normalize()
}

// Centroid returns the arithmetic mean of the points.
func Centroid(pts []r3.Vector) r3.Vector {
	var c r3.Vector
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(pts)))
}

// ClosestPointSegmentPoint takes a line segment defined by two points and a third point, and
// returns the point on the segment that is closest to the third point.
func ClosestPointSegmentPoint(segA, segB, pt r3.Vector) r3.Vector {
	ab := segB.Sub(segA)
	denom := ab.Norm2()
	if denom < floatEpsilon {
		return segA
	}
	t := pt.Sub(segA).Dot(ab) / denom
	return segA.Add(ab.Mul(clamp01(t)))
}

// DistanceToSegment returns the Euclidean distance from pt to the segment [segA, segB].
func DistanceToSegment(segA, segB, pt r3.Vector) float64 {
	return pt.Sub(ClosestPointSegmentPoint(segA, segB, pt)).Norm()
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}
