package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// coplanarEpsilon is the relative distance, scaled by polygon size, under which two polygons are
// treated as lying in the same plane.
const coplanarEpsilon = 1e-9

// IntersectPolygons determines whether two planar convex polygons intersect and returns up to
// maxPoints contact points.
//
// Every edge of a is intersected with the plane of b; a crossing inside b (within tolerance) is a
// contact point. The edges of b are then tested against a the same way. When no crossing is found
// and more than one edge was parallel to the opposite plane, the polygons may be coplanar; in that
// case the edges of a are intersected with the edges of b in the shared plane, and containment of a
// vertex of one in the other is checked.
//
// An empty result means the polygons do not intersect. Coplanar pairs that the fallback cannot
// resolve are reported as non-intersecting.
func IntersectPolygons(a, b []r3.Vector, tolerance float64, maxPoints int) []r3.Vector {
	if len(a) < 3 || len(b) < 3 || maxPoints < 1 {
		return nil
	}
	boundsA := NewBoundsFromPoints(a...)
	boundsB := NewBoundsFromPoints(b...)
	if !boundsA.Pad(tolerance).Overlaps(boundsB) {
		return nil
	}
	normalA := PolygonNormal(a)
	normalB := PolygonNormal(b)

	// triangles entirely on one side of the other's plane cannot touch
	slack := math.Max(tolerance, coplanarEpsilon*math.Max(1, math.Max(boundsA.Diagonal(), boundsB.Diagonal())))
	if len(a) == 3 && !NewTriangle(a[0], a[1], a[2]).IntersectsPlane(b[0], normalB, slack) {
		return nil
	}
	if len(b) == 3 && !NewTriangle(b[0], b[1], b[2]).IntersectsPlane(a[0], normalA, slack) {
		return nil
	}

	var hits []r3.Vector
	parallelEdges := 0

	hits, parallelEdges = edgesAgainstPolygon(a, b, normalB, boundsB, tolerance, maxPoints, hits, parallelEdges)
	if len(hits) >= maxPoints {
		return hits
	}
	hits, parallelEdges = edgesAgainstPolygon(b, a, normalA, boundsA, tolerance, maxPoints, hits, parallelEdges)
	if len(hits) > 0 || parallelEdges < 2 {
		return hits
	}

	if !coplanar(a, b, normalB, tolerance) {
		return nil
	}
	return coplanarOverlap(a, b, normalA, normalB, tolerance, maxPoints)
}

// IntersectTriangles is IntersectPolygons for two triangles.
func IntersectTriangles(a, b *Triangle, tolerance float64, maxPoints int) []r3.Vector {
	return IntersectPolygons(a.Points(), b.Points(), tolerance, maxPoints)
}

// edgesAgainstPolygon intersects the edges of poly with the plane of other and appends crossing
// points that lie inside other.
func edgesAgainstPolygon(
	poly, other []r3.Vector,
	otherNormal r3.Vector,
	otherBounds Bounds,
	tolerance float64,
	maxPoints int,
	hits []r3.Vector,
	parallelEdges int,
) ([]r3.Vector, int) {
	plane := Plane{Origin: other[0], Normal: otherNormal}
	padded := otherBounds.Pad(tolerance + floatEpsilon)
	for i := range poly {
		p0 := poly[i]
		p1 := poly[(i+1)%len(poly)]
		if !padded.IntersectsSegment(p0, p1) {
			continue
		}
		crossing, _, x := plane.IntersectSegment(p0, p1)
		switch crossing {
		case SegmentParallel:
			parallelEdges++
			continue
		case SegmentMisses:
			continue
		case SegmentCrosses:
		}
		if !PointInPolygon(x, other, otherNormal, tolerance) {
			continue
		}
		if len(hits) > 0 && R3VectorAlmostEqual(hits[len(hits)-1], x, floatEpsilon) {
			// the same vertex touching twice is one contact
			continue
		}
		hits = append(hits, x)
		if len(hits) >= maxPoints {
			return hits, parallelEdges
		}
	}
	return hits, parallelEdges
}

// coplanar reports whether every vertex of a lies in the plane of b.
func coplanar(a, b []r3.Vector, normalB r3.Vector, tolerance float64) bool {
	if normalB.Norm2() == 0 {
		return false
	}
	scale := math.Max(NewBoundsFromPoints(a...).Diagonal(), NewBoundsFromPoints(b...).Diagonal())
	eps := math.Max(tolerance, coplanarEpsilon*math.Max(1, scale))
	plane := Plane{Origin: b[0], Normal: normalB}
	for _, p := range a {
		if math.Abs(plane.SignedDistance(p)) > eps {
			return false
		}
	}
	return true
}

func coplanarOverlap(a, b []r3.Vector, normalA, normalB r3.Vector, tolerance float64, maxPoints int) []r3.Vector {
	var hits []r3.Vector
	for i := range a {
		p0 := a[i]
		p1 := a[(i+1)%len(a)]
		for j := range b {
			q0 := b[j]
			q1 := b[(j+1)%len(b)]
			x, ok := SegmentIntersection(p0, p1, q0, q1, tolerance)
			if !ok {
				continue
			}
			if len(hits) > 0 && R3VectorAlmostEqual(hits[len(hits)-1], x, floatEpsilon) {
				continue
			}
			hits = append(hits, x)
			if len(hits) >= maxPoints {
				return hits
			}
		}
	}
	if len(hits) > 0 {
		return hits
	}

	// no edge crossings: one polygon may lie entirely inside the other
	if PointInPolygon(a[0], b, normalB, tolerance) {
		return []r3.Vector{a[0]}
	}
	if PointInPolygon(b[0], a, normalA, tolerance) {
		return []r3.Vector{b[0]}
	}
	return nil
}
