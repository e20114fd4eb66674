package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

// makeBox returns a box of the given half size centered at center and turned by rotation.
func makeBox(center r3.Vector, rotation *Transform, halfSize r3.Vector) OrientedBox {
	m := NewTransform().Translate(center.X, center.Y, center.Z)
	if rotation != nil {
		m.Concatenate(rotation.Matrix())
	}
	local := NewOrientedBox(halfSize.Mul(-1), [3]r3.Vector{{X: 2 * halfSize.X}, {Y: 2 * halfSize.Y}, {Z: 2 * halfSize.Z}})
	return local.Transform(m.Matrix())
}

func TestOrientedBox(t *testing.T) {
	box := NewOrientedBox(r3.Vector{1, 1, 1}, [3]r3.Vector{{4, 0, 0}, {0, 2, 0}, {0, 0, 1}})
	test.That(t, box.Center(), test.ShouldResemble, r3.Vector{3, 2, 1.5})
	test.That(t, box.Size(), test.ShouldResemble, [3]float64{4, 2, 1})
	test.That(t, box.Volume(), test.ShouldEqual, 8.)
	test.That(t, box.Vertices(), test.ShouldHaveLength, 8)
	test.That(t, box.Vertices()[7], test.ShouldResemble, r3.Vector{5, 3, 2})
	test.That(t, box.ContainsPoint(r3.Vector{5, 3, 2}, 0), test.ShouldBeTrue)
	test.That(t, box.ContainsPoint(r3.Vector{5.1, 3, 2}, 0), test.ShouldBeFalse)
	test.That(t, box.ContainsPoint(r3.Vector{5.1, 3, 2}, 0.2), test.ShouldBeTrue)
	test.That(t, box.String(), test.ShouldContainSubstring, "Dims: 4.000, 2.000, 1.000")

	// every face is wound outward
	verts := box.Vertices()
	for _, face := range box.Faces() {
		n := PolygonNormal([]r3.Vector{verts[face[0]], verts[face[1]], verts[face[2]], verts[face[3]]})
		test.That(t, n.Dot(verts[face[0]].Sub(box.Center())), test.ShouldBeGreaterThan, 0)
	}

	t.Run("flat", func(t *testing.T) {
		flat := NewOrientedBox(r3.Vector{}, [3]r3.Vector{{2, 0, 0}, {0, 2, 0}, {}})
		test.That(t, flat.Directions[2].Norm(), test.ShouldAlmostEqual, 1)
		test.That(t, math.Abs(flat.Directions[2].Z), test.ShouldAlmostEqual, 1)
		// a flat box above another one is still separated along its thin axis
		other := NewOrientedBox(r3.Vector{0, 0, 0.5}, [3]r3.Vector{{2, 0, 0}, {0, 2, 0}, {}})
		test.That(t, SeparatingAxis(flat, other, 0), test.ShouldBeGreaterThanOrEqualTo, 0)
		test.That(t, SeparatingAxis(flat, other, 0.6), test.ShouldEqual, -1)
	})

	t.Run("transform", func(t *testing.T) {
		moved := box.Transform(NewTransform().Translate(1, 0, 0).RotateZ(90).Matrix())
		test.That(t, R3VectorAlmostEqual(moved.Center(), r3.Vector{-1, 3, 1.5}, 1e-9), test.ShouldBeTrue)
		test.That(t, moved.Volume(), test.ShouldAlmostEqual, 8)
	})
}

func TestSeparatingAxis(t *testing.T) {
	unit := r3.Vector{1, 1, 1}
	diagonalUp := NewTransform().RotateX(math.Atan(math.Sqrt2) * 180 / math.Pi).RotateZ(45)
	cases := []struct {
		name     string
		A, B     OrientedBox
		Expected bool
	}{
		{
			"inscribed box",
			makeBox(r3.Vector{0, 0, 0}, nil, r3.Vector{2, 2, 2}),
			makeBox(r3.Vector{0, 0, 0}, nil, unit),
			true,
		},
		{
			"face to face contact",
			makeBox(r3.Vector{0, 0, 0}, nil, unit),
			makeBox(r3.Vector{2, 0, 0}, nil, unit),
			true,
		},
		{
			"face to face near contact",
			makeBox(r3.Vector{0, 0, 0}, nil, unit),
			makeBox(r3.Vector{2.01, 0, 0}, nil, unit),
			false,
		},
		{
			"coincident edge contact",
			makeBox(r3.Vector{0, 0, 0}, nil, unit),
			makeBox(r3.Vector{2, 4, 0}, nil, r3.Vector{1, 3, 1}),
			true,
		},
		{
			"nearly coincident edges",
			makeBox(r3.Vector{0, 0, 0}, nil, unit),
			makeBox(r3.Vector{2, 4.01, 0}, nil, r3.Vector{1, 3, 1}),
			false,
		},
		{
			"vertex to vertex contact",
			makeBox(r3.Vector{0, 0, 0}, nil, unit),
			makeBox(r3.Vector{2, 2, 2}, nil, unit),
			true,
		},
		{
			"vertex to vertex near contact",
			makeBox(r3.Vector{0, 0, 0}, nil, unit),
			makeBox(r3.Vector{2.01, 2, 2}, nil, unit),
			false,
		},
		{
			"edge along face contact",
			makeBox(r3.Vector{0, 0, 0}, NewTransform().RotateX(45), unit),
			makeBox(r3.Vector{0, 1 + math.Sqrt(2), 0}, nil, unit),
			true,
		},
		{
			"edge along face near contact",
			makeBox(r3.Vector{0, 0, 0}, NewTransform().RotateX(45), unit),
			makeBox(r3.Vector{0, 1.01 + math.Sqrt(2), 0}, nil, unit),
			false,
		},
		{
			"edge to edge contact",
			makeBox(r3.Vector{0, 0, 0}, NewTransform().RotateZ(45), unit),
			makeBox(r3.Vector{2 * math.Sqrt(2), 0, 0}, NewTransform().RotateY(45), unit),
			true,
		},
		{
			"edge to edge near contact",
			makeBox(r3.Vector{-.01, 0, 0}, NewTransform().RotateZ(45), unit),
			makeBox(r3.Vector{2 * math.Sqrt(2), 0, 0}, NewTransform().RotateY(45), unit),
			false,
		},
		{
			"vertex to face contact",
			makeBox(r3.Vector{0, 0, 0}, diagonalUp, unit),
			makeBox(r3.Vector{0, 0, 1 + math.Sqrt(3)}, nil, unit),
			true,
		},
		{
			"vertex to face near contact",
			makeBox(r3.Vector{0, 0, -0.01}, diagonalUp, unit),
			makeBox(r3.Vector{0, 0, 1 + math.Sqrt(3)}, nil, unit),
			false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			overlap := SeparatingAxis(c.A, c.B, 1e-9) < 0
			test.That(t, overlap, test.ShouldEqual, c.Expected)
			test.That(t, SeparatingAxis(c.B, c.A, 1e-9) < 0, test.ShouldEqual, c.Expected)
			// slack wider than every near miss joins the boxes
			test.That(t, SeparatingAxis(c.A, c.B, 0.02), test.ShouldEqual, -1)
		})
	}

	t.Run("cross product axis", func(t *testing.T) {
		a := makeBox(r3.Vector{-.01, 0, 0}, NewTransform().RotateZ(45), unit)
		b := makeBox(r3.Vector{2 * math.Sqrt(2), 0, 0}, NewTransform().RotateY(45), unit)
		test.That(t, SeparatingAxis(a, b, 0), test.ShouldBeGreaterThanOrEqualTo, 6)
	})
}
