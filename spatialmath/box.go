package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/srizzi88/SENSEI-sub038/utils"
)

// Ordered list of box vertices as multiples of the three edge axes, starting at the corner.
var boxVertices = [8][3]float64{
	{0, 0, 0},
	{1, 0, 0},
	{0, 1, 0},
	{1, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{0, 1, 1},
	{1, 1, 1},
}

// The six faces of a box as quads of vertex indices, wound outward.
var boxFaces = [6][4]int{
	{0, 2, 3, 1},
	{4, 5, 7, 6},
	{0, 1, 5, 4},
	{2, 6, 7, 3},
	{0, 4, 6, 2},
	{1, 3, 7, 5},
}

// OrientedBox is a box spanned by three mutually orthogonal edge vectors from one corner.
// Directions holds the unit direction of each edge so that a box flattened along an axis still
// keeps that axis available to the separating axis test.
type OrientedBox struct {
	Corner     r3.Vector
	Axes       [3]r3.Vector
	Directions [3]r3.Vector
}

// NewOrientedBox returns a box from a corner and its three edge vectors. Directions are derived
// from the edges; a zero edge falls back to the cross product of the other two.
func NewOrientedBox(corner r3.Vector, axes [3]r3.Vector) OrientedBox {
	b := OrientedBox{Corner: corner, Axes: axes}
	for i := range axes {
		b.Directions[i] = axes[i].Normalize()
	}
	for i := range axes {
		if b.Directions[i].Norm2() == 0 {
			b.Directions[i] = b.Directions[(i+1)%3].Cross(b.Directions[(i+2)%3]).Normalize()
		}
	}
	return b
}

// Center returns the center of the box.
func (b OrientedBox) Center() r3.Vector {
	return b.Corner.Add(b.Axes[0].Add(b.Axes[1]).Add(b.Axes[2]).Mul(0.5))
}

// Size returns the length of each edge.
func (b OrientedBox) Size() [3]float64 {
	return [3]float64{b.Axes[0].Norm(), b.Axes[1].Norm(), b.Axes[2].Norm()}
}

// Volume returns the volume of the box.
func (b OrientedBox) Volume() float64 {
	s := b.Size()
	return s[0] * s[1] * s[2]
}

func (b OrientedBox) String() string {
	c := b.Center()
	s := b.Size()
	return fmt.Sprintf("Type: OBB | Center: X:%.3f, Y:%.3f, Z:%.3f | Dims: %.3f, %.3f, %.3f",
		c.X, c.Y, c.Z, s[0], s[1], s[2])
}

// Transform returns the box mapped through the homogeneous matrix m.
func (b OrientedBox) Transform(m mgl64.Mat4) OrientedBox {
	out := OrientedBox{Corner: TransformPoint(m, b.Corner)}
	for i := 0; i < 3; i++ {
		out.Axes[i] = TransformVector(m, b.Axes[i])
		out.Directions[i] = TransformVector(m, b.Directions[i]).Normalize()
	}
	return out
}

// Vertices returns the eight vertices of the box, in boxVertices order.
func (b OrientedBox) Vertices() []r3.Vector {
	verts := make([]r3.Vector, 0, 8)
	for _, v := range boxVertices {
		verts = append(verts, b.Corner.
			Add(b.Axes[0].Mul(v[0])).
			Add(b.Axes[1].Mul(v[1])).
			Add(b.Axes[2].Mul(v[2])))
	}
	return verts
}

// Faces returns the six quads bounding the box as indices into Vertices.
func (b OrientedBox) Faces() [6][4]int {
	return boxFaces
}

// ContainsPoint returns true if pt is inside the box grown by tolerance on every side.
func (b OrientedBox) ContainsPoint(pt r3.Vector, tolerance float64) bool {
	d := pt.Sub(b.Corner)
	for i := 0; i < 3; i++ {
		length := b.Axes[i].Norm()
		proj := d.Dot(b.Directions[i])
		if proj < -tolerance || proj > length+tolerance {
			return false
		}
	}
	return true
}

// projectedRadius is half of the extent of the box projected onto the unit axis.
func (b OrientedBox) projectedRadius(axis r3.Vector) float64 {
	return 0.5 * (math.Abs(b.Axes[0].Dot(axis)) + math.Abs(b.Axes[1].Dot(axis)) + math.Abs(b.Axes[2].Dot(axis)))
}

// SeparatingAxis searches the 15 candidate axes (3 face directions of each box and their 9 cross
// products) for one along which the projected intervals of a and b are more than tolerance apart.
// It returns the index of the separating axis in [0, 15), or -1 if none separates the boxes.
func SeparatingAxis(a, b OrientedBox, tolerance float64) int {
	centerDist := b.Center().Sub(a.Center())

	for i := 0; i < 3; i++ {
		if separatingAxisTest(centerDist, a.Directions[i], a, b) > tolerance {
			return i
		}
	}
	for i := 0; i < 3; i++ {
		if separatingAxisTest(centerDist, b.Directions[i], a, b) > tolerance {
			return 3 + i
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			crossProductPlane := a.Directions[i].Cross(b.Directions[j])

			// if edges are parallel, this check is already accounted for by one of the face projections, so skip this case
			if utils.Float64AlmostEqual(crossProductPlane.Norm(), 0, 1e-9) {
				continue
			}
			if separatingAxisTest(centerDist, crossProductPlane.Normalize(), a, b) > tolerance {
				return 6 + 3*i + j
			}
		}
	}
	return -1
}

// separatingAxisTest projects two boxes onto the given plane and compute how much distance is between them along
// this plane. Per the separating hyperplane theorem, if such a plane exists (and a positive number is returned)
// this proves that there is no collision between the boxes
// references:  https://gamedev.stackexchange.com/questions/112883/simple-3d-obb-collision-directx9-c
//
//	https://gamedev.stackexchange.com/questions/25397/obb-vs-obb-collision-detection
func separatingAxisTest(positionDelta, plane r3.Vector, a, b OrientedBox) float64 {
	return math.Abs(positionDelta.Dot(plane)) - a.projectedRadius(plane) - b.projectedRadius(plane)
}
