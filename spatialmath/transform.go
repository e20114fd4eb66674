package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/srizzi88/SENSEI-sub038/utils"
)

// Transform is a linear transform built by concatenating translations, rotations and scales.
// Each operation is post-multiplied, so the last operation added is applied to points first.
type Transform struct {
	mat mgl64.Mat4
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	return &Transform{mat: mgl64.Ident4()}
}

// NewTransformFromMatrix returns a transform whose matrix is m.
func NewTransformFromMatrix(m mgl64.Mat4) *Transform {
	return &Transform{mat: m}
}

// Clone returns a deep copy of the transform.
func (t *Transform) Clone() *Transform {
	return &Transform{mat: t.mat}
}

// Matrix returns the 4x4 homogeneous matrix of the transform.
func (t *Transform) Matrix() mgl64.Mat4 {
	return t.mat
}

// SetMatrix replaces the transform's matrix.
func (t *Transform) SetMatrix(m mgl64.Mat4) {
	t.mat = m
}

// Identity resets the transform.
func (t *Transform) Identity() *Transform {
	t.mat = mgl64.Ident4()
	return t
}

// Translate concatenates a translation.
func (t *Transform) Translate(x, y, z float64) *Transform {
	t.mat = t.mat.Mul4(mgl64.Translate3D(x, y, z))
	return t
}

// RotateWXYZ concatenates a rotation of angle degrees about the axis (x, y, z).
func (t *Transform) RotateWXYZ(angle, x, y, z float64) *Transform {
	axis := r3.Vector{X: x, Y: y, Z: z}.Normalize()
	if axis.Norm2() == 0 {
		return t
	}
	half := utils.DegToRad(angle) / 2
	s := math.Sin(half)
	q := quat.Number{Real: math.Cos(half), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
	t.mat = t.mat.Mul4(quaternionToMat4(q))
	return t
}

// RotateX concatenates a rotation of angle degrees about the X axis.
func (t *Transform) RotateX(angle float64) *Transform {
	return t.RotateWXYZ(angle, 1, 0, 0)
}

// RotateY concatenates a rotation of angle degrees about the Y axis.
func (t *Transform) RotateY(angle float64) *Transform {
	return t.RotateWXYZ(angle, 0, 1, 0)
}

// RotateZ concatenates a rotation of angle degrees about the Z axis.
func (t *Transform) RotateZ(angle float64) *Transform {
	return t.RotateWXYZ(angle, 0, 0, 1)
}

// Scale concatenates a scale.
func (t *Transform) Scale(x, y, z float64) *Transform {
	t.mat = t.mat.Mul4(mgl64.Scale3D(x, y, z))
	return t
}

// Concatenate post-multiplies the transform by m.
func (t *Transform) Concatenate(m mgl64.Mat4) *Transform {
	t.mat = t.mat.Mul4(m)
	return t
}

// Inverse returns a new transform that undoes this one.
func (t *Transform) Inverse() *Transform {
	return &Transform{mat: t.mat.Inv()}
}

// TransformPoint applies the transform to a point.
func (t *Transform) TransformPoint(pt r3.Vector) r3.Vector {
	return TransformPoint(t.mat, pt)
}

func (t *Transform) String() string {
	return MatrixString(t.mat)
}

// quaternionToMat4 converts a unit quaternion into a homogeneous rotation matrix.
func quaternionToMat4(q quat.Number) mgl64.Mat4 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	rot := mgl64.Mat3{
		1 - 2*(y*y+z*z), 2 * (x*y + w*z), 2 * (x*z - w*y),
		2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x),
		2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y),
	}
	return rot.Mat4()
}

// TransformPoint applies a homogeneous matrix to a point, dividing by w when it is not 1.
func TransformPoint(m mgl64.Mat4, pt r3.Vector) r3.Vector {
	v := m.Mul4x1(mgl64.Vec4{pt.X, pt.Y, pt.Z, 1})
	if v[3] != 0 && v[3] != 1 {
		return r3.Vector{X: v[0] / v[3], Y: v[1] / v[3], Z: v[2] / v[3]}
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// TransformVector applies the linear part of a homogeneous matrix to a direction.
func TransformVector(m mgl64.Mat4, vec r3.Vector) r3.Vector {
	v := m.Mul4x1(mgl64.Vec4{vec.X, vec.Y, vec.Z, 0})
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// TransformPoints applies a homogeneous matrix to every point, returning a new slice.
func TransformPoints(m mgl64.Mat4, pts []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		out[i] = TransformPoint(m, p)
	}
	return out
}

// IsIdentity returns true if every element of m is within epsilon of the identity matrix.
func IsIdentity(m mgl64.Mat4, epsilon float64) bool {
	ident := mgl64.Ident4()
	for i := range m {
		if !utils.Float64AlmostEqual(m[i], ident[i], epsilon) {
			return false
		}
	}
	return true
}

// RelativeMatrix returns inverse(m0) * m1, the matrix mapping coordinates of frame 1 into frame 0.
func RelativeMatrix(m0, m1 mgl64.Mat4) mgl64.Mat4 {
	return m0.Inv().Mul4(m1)
}

// MatrixFromRowMajor builds a matrix from 16 row-major values.
func MatrixFromRowMajor(values [16]float64) mgl64.Mat4 {
	var m mgl64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m.Set(row, col, values[row*4+col])
		}
	}
	return m
}

// MatrixString renders a matrix row by row.
func MatrixString(m mgl64.Mat4) string {
	s := ""
	for row := 0; row < 4; row++ {
		s += fmt.Sprintf("[%.4f %.4f %.4f %.4f]", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3))
		if row < 3 {
			s += "\n"
		}
	}
	return s
}
