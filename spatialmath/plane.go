package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Plane is an infinite plane through Origin with unit Normal.
type Plane struct {
	Origin r3.Vector
	Normal r3.Vector
}

// NewPlane returns a plane through origin with the normalized normal.
func NewPlane(origin, normal r3.Vector) Plane {
	return Plane{Origin: origin, Normal: normal.Normalize()}
}

// SignedDistance returns the signed distance of pt from the plane, positive on the normal side.
func (p Plane) SignedDistance(pt r3.Vector) float64 {
	return p.Normal.Dot(pt.Sub(p.Origin))
}

// SegmentCrossing describes how a segment meets a plane.
type SegmentCrossing int

const (
	// SegmentMisses means the supporting line crosses the plane outside the segment.
	SegmentMisses SegmentCrossing = iota
	// SegmentCrosses means the segment crosses the plane at a single parameter in [0, 1].
	SegmentCrosses
	// SegmentParallel means the segment is parallel to the plane and never crosses it.
	SegmentParallel
)

// IntersectSegment intersects the segment p0->p1 with the plane. It returns the crossing kind,
// the parametric coordinate of the crossing and the crossing point.
func (p Plane) IntersectSegment(p0, p1 r3.Vector) (SegmentCrossing, float64, r3.Vector) {
	ray := p1.Sub(p0)
	denom := p.Normal.Dot(ray)
	if math.Abs(denom) <= floatEpsilon*math.Max(1, ray.Norm()) {
		return SegmentParallel, 0, r3.Vector{}
	}
	t := p.Normal.Dot(p.Origin.Sub(p0)) / denom
	if t < 0 || t > 1 {
		return SegmentMisses, t, r3.Vector{}
	}
	return SegmentCrosses, t, p0.Add(ray.Mul(t))
}
