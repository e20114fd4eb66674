package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/srizzi88/SENSEI-sub038/utils"
)

// PointInPolygon reports whether pt, assumed to lie in the plane of the polygon with unit normal
// n, is inside the polygon or within tolerance of its boundary. The polygon is projected onto the
// coordinate plane most orthogonal to n and classified by ray crossing parity.
func PointInPolygon(pt r3.Vector, pts []r3.Vector, n r3.Vector, tolerance float64) bool {
	if len(pts) < 3 {
		return false
	}
	if len(pts) == 3 {
		return NewTriangle(pts[0], pts[1], pts[2]).ContainsPoint(pt, tolerance)
	}
	if !NewBoundsFromPoints(pts...).Pad(tolerance + floatEpsilon).ContainsPoint(pt) {
		return false
	}

	// drop the coordinate with the largest normal component
	u, v := projectionAxes(n)
	px, py := u(pt), v(pt)
	inside := false
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		if tolerance > 0 && DistanceToSegment(a, b, pt) <= tolerance {
			return true
		}
		ax, ay := u(a), v(a)
		bx, by := u(b), v(b)
		if (ay > py) != (by > py) {
			xCross := ax + (py-ay)*(bx-ax)/(by-ay)
			if px < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func projectionAxes(n r3.Vector) (func(r3.Vector) float64, func(r3.Vector) float64) {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		return func(p r3.Vector) float64 { return p.Y }, func(p r3.Vector) float64 { return p.Z }
	case ay >= ax && ay >= az:
		return func(p r3.Vector) float64 { return p.Z }, func(p r3.Vector) float64 { return p.X }
	default:
		return func(p r3.Vector) float64 { return p.X }, func(p r3.Vector) float64 { return p.Y }
	}
}

// SegmentIntersection intersects two coplanar segments p0->p1 and q0->q1. When the segments cross
// or come within tolerance of each other it returns the point of closest approach on p0->p1.
func SegmentIntersection(p0, p1, q0, q1 r3.Vector, tolerance float64) (r3.Vector, bool) {
	ptP, ptQ := closestPointsSegmentSegment(p0, p1, q0, q1)
	scale := math.Max(1, math.Max(p1.Sub(p0).Norm(), q1.Sub(q0).Norm()))
	if ptP.Sub(ptQ).Norm() <= tolerance+1e-9*scale {
		return ptP, true
	}
	return r3.Vector{}, false
}

// closestPointsSegmentSegment returns the closest pair of points between two segments.
// Reference: Ericson, "Real-Time Collision Detection", 5.1.9.
func closestPointsSegmentSegment(p0, p1, q0, q1 r3.Vector) (r3.Vector, r3.Vector) {
	d1 := p1.Sub(p0)
	d2 := q1.Sub(q0)
	r := p0.Sub(q0)
	a := d1.Norm2()
	e := d2.Norm2()
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a <= floatEpsilon && e <= floatEpsilon:
		return p0, q0
	case a <= floatEpsilon:
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= floatEpsilon {
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom > floatEpsilon*a*e {
				s = clamp01((b*f - c*e) / denom)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	return p0.Add(d1.Mul(s)), q0.Add(d2.Mul(t))
}

func clamp01(v float64) float64 {
	return utils.Clamp(v, 0, 1)
}
