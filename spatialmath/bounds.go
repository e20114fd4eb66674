package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min r3.Vector
	Max r3.Vector
}

// EmptyBounds returns bounds that contain nothing; expanding them by a point yields that point.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: r3.Vector{X: inf, Y: inf, Z: inf},
		Max: r3.Vector{X: -inf, Y: -inf, Z: -inf},
	}
}

// NewBoundsFromPoints returns the tightest bounds around pts.
func NewBoundsFromPoints(pts ...r3.Vector) Bounds {
	b := EmptyBounds()
	for _, p := range pts {
		b = b.ExpandTo(p)
	}
	return b
}

// IsEmpty returns true when no point has been added to the bounds.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExpandTo returns the bounds grown to include pt.
func (b Bounds) ExpandTo(pt r3.Vector) Bounds {
	return Bounds{
		Min: r3.Vector{X: math.Min(b.Min.X, pt.X), Y: math.Min(b.Min.Y, pt.Y), Z: math.Min(b.Min.Z, pt.Z)},
		Max: r3.Vector{X: math.Max(b.Max.X, pt.X), Y: math.Max(b.Max.Y, pt.Y), Z: math.Max(b.Max.Z, pt.Z)},
	}
}

// Pad returns the bounds grown by tol on every side.
func (b Bounds) Pad(tol float64) Bounds {
	d := r3.Vector{X: tol, Y: tol, Z: tol}
	return Bounds{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Center returns the center of the bounds.
func (b Bounds) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the length of the bounds diagonal.
func (b Bounds) Diagonal() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.Sub(b.Min).Norm()
}

// ContainsPoint returns true if pt lies inside or on the bounds.
func (b Bounds) ContainsPoint(pt r3.Vector) bool {
	return pt.X >= b.Min.X && pt.X <= b.Max.X &&
		pt.Y >= b.Min.Y && pt.Y <= b.Max.Y &&
		pt.Z >= b.Min.Z && pt.Z <= b.Max.Z
}

// Overlaps returns true if the two bounds share any point, touching faces included.
func (b Bounds) Overlaps(other Bounds) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// IntersectsSegment reports whether the segment from p0 to p1 passes through the bounds, using the
// slab method.
func (b Bounds) IntersectsSegment(p0, p1 r3.Vector) bool {
	if b.IsEmpty() {
		return false
	}
	dir := p1.Sub(p0)
	tMin, tMax := 0.0, 1.0
	origin := [3]float64{p0.X, p0.Y, p0.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < floatEpsilon {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / d[i]
		t2 := (hi[i] - origin[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
