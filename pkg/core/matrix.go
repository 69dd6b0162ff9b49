package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DeterminantEpsilon is the smallest |det| of the linear 3x3 block for which
// an inverse transform is attempted. Below it the transform is treated as identity.
const DeterminantEpsilon = 1e-7

// Matrix4 is a 4x4 affine transform. The accessor API is row-major; storage
// is a column-major mgl64.Mat4.
type Matrix4 struct {
	m mgl64.Mat4
}

// Identity returns the identity transform
func Identity() Matrix4 {
	return Matrix4{m: mgl64.Ident4()}
}

// NewMatrix4 creates a matrix from 16 values given in row-major order
func NewMatrix4(
	e00, e01, e02, e03,
	e10, e11, e12, e13,
	e20, e21, e22, e23,
	e30, e31, e32, e33 float64,
) Matrix4 {
	return Matrix4{m: mgl64.Mat4FromRows(
		mgl64.Vec4{e00, e01, e02, e03},
		mgl64.Vec4{e10, e11, e12, e13},
		mgl64.Vec4{e20, e21, e22, e23},
		mgl64.Vec4{e30, e31, e32, e33},
	)}
}

// Translate returns a translation matrix
func Translate(x, y, z float64) Matrix4 {
	return Matrix4{m: mgl64.Translate3D(x, y, z)}
}

// Scale returns a non-uniform scale matrix
func Scale(x, y, z float64) Matrix4 {
	return Matrix4{m: mgl64.Scale3D(x, y, z)}
}

// Rotate returns a rotation of degrees around axis (right-handed).
// The axis is normalized first; a zero axis yields the identity.
func Rotate(axis Vec3, degrees float64) Matrix4 {
	a := axis.Normalize()
	if a.IsZero() {
		return Identity()
	}
	return Matrix4{m: mgl64.HomogRotate3D(mgl64.DegToRad(degrees), mgl64.Vec3{a.X, a.Y, a.Z})}
}

// At returns the element at row r, column c
func (m Matrix4) At(r, c int) float64 {
	return m.m.At(r, c)
}

// Set returns a copy of m with the element at row r, column c replaced
func (m Matrix4) Set(r, c int, v float64) Matrix4 {
	m.m.Set(r, c, v)
	return m
}

// Add returns the element-wise sum
func (m Matrix4) Add(other Matrix4) Matrix4 {
	return Matrix4{m: m.m.Add(other.m)}
}

// Sub returns the element-wise difference
func (m Matrix4) Sub(other Matrix4) Matrix4 {
	return Matrix4{m: m.m.Sub(other.m)}
}

// MulScalar scales every element
func (m Matrix4) MulScalar(s float64) Matrix4 {
	return Matrix4{m: m.m.Mul(s)}
}

// Mul returns the matrix product m · other
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	return Matrix4{m: m.m.Mul4(other.m)}
}

// ApproxEqual compares element-wise within eps
func (m Matrix4) ApproxEqual(other Matrix4, eps float64) bool {
	return m.m.ApproxEqualThreshold(other.m, eps)
}

// ApplyRay maps a ray through the full 4x4 transform. The origin goes through
// the homogeneous divide; the direction only through the linear block.
func (m Matrix4) ApplyRay(r Ray) Ray {
	p := r.Origin
	w := m.At(3, 0)*p.X + m.At(3, 1)*p.Y + m.At(3, 2)*p.Z + m.At(3, 3)

	var pos, dir [3]float64
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			pos[i] += m.At(i, k) * p.At(k)
			dir[i] += m.At(i, k) * r.Direction.At(k)
		}
		pos[i] = (pos[i] + m.At(i, 3)) / w
	}

	return Ray{
		Origin:    NewPoint3(pos[0], pos[1], pos[2]),
		Direction: NewVec3(dir[0], dir[1], dir[2]),
	}
}

// ApplyPoint maps a point (translation and homogeneous divide apply)
func (m Matrix4) ApplyPoint(p Point3) Point3 {
	return m.ApplyRay(Ray{Origin: p}).Origin
}

// ApplyVector maps a direction (translation does not apply)
func (m Matrix4) ApplyVector(v Vec3) Vec3 {
	return m.ApplyRay(Ray{Direction: v}).Direction
}

// columns returns the three linear-block columns, the translation column and
// the determinant of the linear block
func (m Matrix4) columns() (x0, x1, x2, x3 Vec3, det float64) {
	x0 = NewVec3(m.At(0, 0), m.At(1, 0), m.At(2, 0))
	x1 = NewVec3(m.At(0, 1), m.At(1, 1), m.At(2, 1))
	x2 = NewVec3(m.At(0, 2), m.At(1, 2), m.At(2, 2))
	x3 = NewVec3(m.At(0, 3), m.At(1, 3), m.At(2, 3))
	det = x0.Dot(x1.Cross(x2))
	return
}

// Determinant3 returns the determinant of the upper-left 3x3 block
func (m Matrix4) Determinant3() float64 {
	_, _, _, _, det := m.columns()
	return det
}

// InverseRay maps a world-space ray into the space the transform maps from,
// using cofactors of the 3x3 block instead of a general 4x4 inversion.
// A near-singular block (|det| <= DeterminantEpsilon) returns r unchanged.
func (m Matrix4) InverseRay(r Ray) Ray {
	x0, x1, x2, x3, det := m.columns()
	if math.Abs(det) <= DeterminantEpsilon {
		return r
	}

	// rows of the inverse linear block
	y0 := x1.Cross(x2).Multiply(1 / det)
	y1 := x2.Cross(x0).Multiply(1 / det)
	y2 := x0.Cross(x1).Multiply(1 / det)

	p := r.Origin.SubVec(x3).Vec()
	d := r.Direction
	return Ray{
		Origin:    NewPoint3(y0.Dot(p), y1.Dot(p), y2.Dot(p)),
		Direction: NewVec3(y0.Dot(d), y1.Dot(d), y2.Dot(d)),
	}
}

// InversePoint maps a world-space point into object space
func (m Matrix4) InversePoint(p Point3) Point3 {
	return m.InverseRay(Ray{Origin: p}).Origin
}

// InverseVector maps a world-space direction into object space
func (m Matrix4) InverseVector(v Vec3) Vec3 {
	return m.InverseRay(Ray{Direction: v}).Direction
}

// InverseNormal maps an object-space normal to world space with the
// transpose of the inverse linear block. The result is always normalized.
func (m Matrix4) InverseNormal(n Vec3) Vec3 {
	x0, x1, x2, _, det := m.columns()
	if math.Abs(det) <= DeterminantEpsilon {
		return n.Normalize()
	}

	// (M^-1)^T has the cofactor vectors as its columns
	y0 := x1.Cross(x2)
	y1 := x2.Cross(x0)
	y2 := x0.Cross(x1)
	return y0.Multiply(n.X / det).
		Add(y1.Multiply(n.Y / det)).
		Add(y2.Multiply(n.Z / det)).
		Normalize()
}
