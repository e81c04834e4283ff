package form3

import (
	"github.com/soypat/raydist"
	"github.com/soypat/raydist/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere returns a sphere primitive.
func Sphere(center r3.Vec, radius float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.Sphere(center, radius) })
}

// Cylinder returns an infinite cylinder along axis.
func Cylinder(axis raydist.Axis, center r3.Vec, radius float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.Cylinder(axis, center, radius) })
}

// TrimmedCylinder returns a cylinder along axis bounded to lo <= s <= hi.
func TrimmedCylinder(axis raydist.Axis, center r3.Vec, radius, lo, hi float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.TrimmedCylinder(axis, center, radius, lo, hi) })
}

// RCC returns the right circular cylinder from base to base+height.
func RCC(base, height r3.Vec, radius float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.RCC(base, height, radius) })
}

// TRC returns the truncated cone from base to base+height.
func TRC(base, height r3.Vec, r1, r2 float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.TRC(base, height, r1, r2) })
}

// Torus returns an elliptic torus along axis.
func Torus(axis raydist.Axis, center r3.Vec, R, a, b float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.Torus(axis, center, R, a, b) })
}

// Cuboid returns the axis aligned box spanning min to max.
func Cuboid(min, max r3.Vec) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.Cuboid(min, max) })
}

// Square returns a z prism of square section with rounded corners.
func Square(x0, y0, h, round float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.Square(x0, y0, h, round) })
}

// Hexagon returns a z prism of hexagonal section with rounded corners.
func Hexagon(x0, y0, h, round float64, flatX bool) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.Hexagon(x0, y0, h, round, flatX) })
}

// Cross returns the plus shaped z prism.
func Cross(x0, y0, r, d, round float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.Cross(x0, y0, r, d, round) })
}

// PadSector returns an annular sector z prism.
func PadSector(x0, y0, r1, r2, theta1, theta2 float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.PadSector(x0, y0, r1, r2, theta1, theta2) })
}

// Parallelepiped returns the parallelepiped with the given corner, edges
// and angles in degrees.
func Parallelepiped(corner r3.Vec, a, b, c, alpha, beta, gamma float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.Parallelepiped(corner, a, b, c, alpha, beta, gamma) })
}

// PlaneFromPoints returns the plane through three non-collinear points.
func PlaneFromPoints(p1, p2, p3 r3.Vec) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.PlaneFromPoints(p1, p2, p3) })
}

// Poly returns the intersection of the half-spaces.
func Poly(hs ...must3.Halfspace) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.Poly(hs...) })
}

// Involute returns an involute plate.
func Involute(center r3.Vec, r0, r1, r2, theta1, theta2 float64) (raydist.Primitive, error) {
	return guard(func() raydist.Primitive { return must3.Involute(center, r0, r1, r2, theta1, theta2) })
}
