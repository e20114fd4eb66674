package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Triangle is three points in space with a cached unit normal.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	normal r3.Vector
}

// NewTriangle returns a triangle through the three points.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
	}
}

// Points returns the vertices of the triangle.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the unit normal of the triangle.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// Area returns the area of the triangle.
func (t *Triangle) Area() float64 {
	return 0.5 * t.p1.Sub(t.p0).Cross(t.p2.Sub(t.p0)).Norm()
}

// Centroid returns the centroid of the triangle.
func (t *Triangle) Centroid() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1. / 3.)
}

// Bounds returns the axis-aligned bounds of the triangle.
func (t *Triangle) Bounds() Bounds {
	return NewBoundsFromPoints(t.p0, t.p1, t.p2)
}

// Plane returns the supporting plane of the triangle.
func (t *Triangle) Plane() Plane {
	return Plane{Origin: t.p0, Normal: t.normal}
}

// ClosestPointToPoint returns the point of the triangle nearest to point.
func (t *Triangle) ClosestPointToPoint(point r3.Vector) r3.Vector {
	if projected, inside := t.ClosestInsidePoint(point); inside {
		return projected
	}
	// outside the prism over the triangle the nearest point is on an edge
	pts := [3]r3.Vector{t.p0, t.p1, t.p2}
	best := ClosestPointSegmentPoint(pts[0], pts[1], point)
	bestDist := point.Sub(best).Norm2()
	for i := 1; i < 3; i++ {
		candidate := ClosestPointSegmentPoint(pts[i], pts[(i+1)%3], point)
		if d := point.Sub(candidate).Norm2(); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// barycentricEpsilon is the slack on barycentric coordinates when deciding if a projection lands
// inside the triangle.
const barycentricEpsilon = 1e-9

// ClosestInsidePoint projects point onto the triangle's plane. The bool is true when the projection
// lies inside the triangle; otherwise the returned point is the projection onto the plane, or point
// itself for a degenerate triangle.
func (t *Triangle) ClosestInsidePoint(point r3.Vector) (r3.Vector, bool) {
	// solve p0 + u*e0 + v*e1 = projection of point in the least squares sense
	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	d := point.Sub(t.p0)
	e00, e01, e11 := e0.Norm2(), e0.Dot(e1), e1.Norm2()
	d0, d1 := e0.Dot(d), e1.Dot(d)
	det := e00*e11 - e01*e01
	if math.Abs(det) < floatEpsilon {
		return point, false
	}
	u := (e11*d0 - e01*d1) / det
	v := (e00*d1 - e01*d0) / det
	inside := u >= -barycentricEpsilon && v >= -barycentricEpsilon && u+v <= 1+barycentricEpsilon
	return t.p0.Add(e0.Mul(u)).Add(e1.Mul(v)), inside
}

// ContainsPoint reports whether a point lying in the triangle's plane is inside the triangle, or
// within tolerance of its boundary.
func (t *Triangle) ContainsPoint(pt r3.Vector, tolerance float64) bool {
	if _, inside := t.ClosestInsidePoint(pt); inside {
		return true
	}
	if tolerance <= 0 {
		return false
	}
	return pt.Sub(t.ClosestPointToPoint(pt)).Norm() <= tolerance
}

// IntersectsPlane returns false only when every vertex lies more than tolerance on the same side
// of the plane through planePt with normal planeNormal.
func (t *Triangle) IntersectsPlane(planePt, planeNormal r3.Vector, tolerance float64) bool {
	eps := math.Max(tolerance, floatEpsilon)
	plane := Plane{Origin: planePt, Normal: planeNormal}
	above, below := 0, 0
	for _, p := range [3]r3.Vector{t.p0, t.p1, t.p2} {
		switch dist := plane.SignedDistance(p); {
		case dist > eps:
			above++
		case dist < -eps:
			below++
		}
	}
	return above < 3 && below < 3
}
