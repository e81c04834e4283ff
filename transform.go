package raydist

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is an affine map from world coordinates to a primitive's local
// frame, stored as the top three rows of a 4x4 matrix.
// The zero value of Transform is the identity transform.
//
// Distances are only preserved by rigid transforms (rotations, reflections
// and translations), which is what the solvers assume.
type Transform struct {
	// The identity is subtracted from the diagonal so that the zero value
	// is the identity:
	//  d00 = x00-1, d11 = x11-1, d22 = x22-1
	d00, x01, x02, x03 float64
	x10, d11, x12, x13 float64
	x20, x21, d22, x23 float64
}

// NewTransform returns a Transform populated with the 12 values of the top
// three rows of an affine matrix in row-major order.
func NewTransform(a []float64) Transform {
	if len(a) != 12 {
		panic("Transform is initialized with 12 values")
	}
	return Transform{
		d00: a[0] - 1, x01: a[1], x02: a[2], x03: a[3],
		x10: a[4], d11: a[5] - 1, x12: a[6], x13: a[7],
		x20: a[8], x21: a[9], d22: a[10] - 1, x23: a[11],
	}
}

// Translation returns the transform that adds v to points.
func Translation(v r3.Vec) Transform {
	return Transform{x03: v.X, x13: v.Y, x23: v.Z}
}

// ComposeTransform returns the rigid transform that rotates by q and then
// translates by position. q should be a unit quaternion.
func ComposeTransform(position r3.Vec, q r3.Rotation) Transform {
	x2 := q.Imag + q.Imag
	y2 := q.Jmag + q.Jmag
	z2 := q.Kmag + q.Kmag
	xx := q.Imag * x2
	yy := q.Jmag * y2
	zz := q.Kmag * z2
	xy := q.Imag * y2
	xz := q.Imag * z2
	yz := q.Jmag * z2
	wx := q.Real * x2
	wy := q.Real * y2
	wz := q.Real * z2

	var t Transform
	t.d00 = -(yy + zz)
	t.x10 = xy + wz
	t.x20 = xz - wy

	t.x01 = xy - wz
	t.d11 = -(xx + zz)
	t.x21 = yz + wx

	t.x02 = xz + wy
	t.x12 = yz - wx
	t.d22 = -(xx + yy)

	t.x03 = position.X
	t.x13 = position.Y
	t.x23 = position.Z
	return t
}

// Point applies the transform to the point v.
func (t Transform) Point(v r3.Vec) r3.Vec {
	return r3.Add(t.Dir(v), r3.Vec{X: t.x03, Y: t.x13, Z: t.x23})
}

// Dir applies the linear part of the transform to the direction v.
func (t Transform) Dir(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z,
		Z: t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z,
	}
}

// Ray transforms the origin as a point and the direction as a vector.
func (t Transform) Ray(r Ray) Ray {
	if t == (Transform{}) {
		return r
	}
	return Ray{Origin: t.Point(r.Origin), Dir: t.Dir(r.Dir)}
}

// Mul returns the transform equivalent to applying b and then t.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	x00, x11, x22 := t.d00+1, t.d11+1, t.d22+1
	y00, y11, y22 := b.d00+1, b.d11+1, b.d22+1
	var m Transform
	m.d00 = x00*y00 + t.x01*b.x10 + t.x02*b.x20 - 1
	m.x01 = x00*b.x01 + t.x01*y11 + t.x02*b.x21
	m.x02 = x00*b.x02 + t.x01*b.x12 + t.x02*y22
	m.x03 = x00*b.x03 + t.x01*b.x13 + t.x02*b.x23 + t.x03

	m.x10 = t.x10*y00 + x11*b.x10 + t.x12*b.x20
	m.d11 = t.x10*b.x01 + x11*y11 + t.x12*b.x21 - 1
	m.x12 = t.x10*b.x02 + x11*b.x12 + t.x12*y22
	m.x13 = t.x10*b.x03 + x11*b.x13 + t.x12*b.x23 + t.x13

	m.x20 = t.x20*y00 + t.x21*b.x10 + x22*b.x20
	m.x21 = t.x20*b.x01 + t.x21*y11 + x22*b.x21
	m.d22 = t.x20*b.x02 + t.x21*b.x12 + x22*y22 - 1
	m.x23 = t.x20*b.x03 + t.x21*b.x13 + x22*b.x23 + t.x23
	return m
}

// Det returns the determinant of the linear part of the transform.
func (t Transform) Det() float64 {
	x00, x11, x22 := t.d00+1, t.d11+1, t.d22+1
	return x00*(x11*x22-t.x12*t.x21) -
		t.x01*(t.x10*x22-t.x12*t.x20) +
		t.x02*(t.x10*t.x21-x11*t.x20)
}

// Inv returns the inverse of the transform such that t.Inv().Mul(t) is the
// identity. A singular transform has no inverse and Inv returns the zero
// value with ok false.
func (t Transform) Inv() (inv Transform, ok bool) {
	if t == (Transform{}) {
		return t, true
	}
	det := t.Det()
	if math.Abs(det) < 1e-16 {
		return Transform{}, false
	}
	d := 1 / det
	x00, x11, x22 := t.d00+1, t.d11+1, t.d22+1
	a00 := (x11*x22 - t.x12*t.x21) * d
	a01 := (t.x02*t.x21 - t.x01*x22) * d
	a02 := (t.x01*t.x12 - t.x02*x11) * d
	a10 := (t.x12*t.x20 - t.x10*x22) * d
	a11 := (x00*x22 - t.x02*t.x20) * d
	a12 := (t.x02*t.x10 - x00*t.x12) * d
	a20 := (t.x10*t.x21 - x11*t.x20) * d
	a21 := (t.x01*t.x20 - x00*t.x21) * d
	a22 := (x00*x11 - t.x01*t.x10) * d
	inv = Transform{
		d00: a00 - 1, x01: a01, x02: a02,
		x10: a10, d11: a11 - 1, x12: a12,
		x20: a20, x21: a21, d22: a22 - 1,
	}
	tr := inv.Dir(r3.Vec{X: t.x03, Y: t.x13, Z: t.x23})
	inv.x03, inv.x13, inv.x23 = -tr.X, -tr.Y, -tr.Z
	return inv, true
}

// IsRigid reports whether the linear part of t is orthonormal within tol,
// that is, whether t preserves distances.
func (t Transform) IsRigid(tol float64) bool {
	c0 := r3.Vec{X: t.d00 + 1, Y: t.x10, Z: t.x20}
	c1 := r3.Vec{X: t.x01, Y: t.d11 + 1, Z: t.x21}
	c2 := r3.Vec{X: t.x02, Y: t.x12, Z: t.d22 + 1}
	return math.Abs(r3.Dot(c0, c0)-1) <= tol &&
		math.Abs(r3.Dot(c1, c1)-1) <= tol &&
		math.Abs(r3.Dot(c2, c2)-1) <= tol &&
		math.Abs(r3.Dot(c0, c1)) <= tol &&
		math.Abs(r3.Dot(c0, c2)) <= tol &&
		math.Abs(r3.Dot(c1, c2)) <= tol
}

// SliceCopy returns a copy of the Transform's 12 values in row-major order.
func (t Transform) SliceCopy() []float64 {
	return []float64{
		t.d00 + 1, t.x01, t.x02, t.x03,
		t.x10, t.d11 + 1, t.x12, t.x13,
		t.x20, t.x21, t.d22 + 1, t.x23,
	}
}
