package must3

import (
	"github.com/soypat/raydist"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere returns a sphere primitive.
func Sphere(center r3.Vec, radius float64) raydist.Primitive {
	if radius <= 0 {
		panic("radius <= 0")
	}
	return prim(raydist.KindSphere, center.X, center.Y, center.Z, radius)
}

// Cylinder returns an infinite cylinder along axis. center gives the
// position of the axis; its component along axis is ignored.
func Cylinder(axis raydist.Axis, center r3.Vec, radius float64) raydist.Primitive {
	if radius <= 0 {
		panic("radius <= 0")
	}
	a, b := transverse(axis, center)
	return prim(cylKind(axis), a, b, radius)
}

// TrimmedCylinder returns a cylinder along axis bounded to lo <= s <= hi,
// s being the coordinate along axis.
func TrimmedCylinder(axis raydist.Axis, center r3.Vec, radius, lo, hi float64) raydist.Primitive {
	if radius <= 0 {
		panic("radius <= 0")
	}
	if lo >= hi {
		panic("lo >= hi")
	}
	a, b := transverse(axis, center)
	return prim(cylKind(axis), a, b, radius, lo, hi)
}

// CylinderV returns an infinite cylinder of the given radius around the
// line through base along dir.
func CylinderV(base, dir r3.Vec, radius float64) raydist.Primitive {
	if dir == (r3.Vec{}) {
		panic("zero axis")
	}
	if radius <= 0 {
		panic("radius <= 0")
	}
	return prim(raydist.KindCylV, base.X, base.Y, base.Z, dir.X, dir.Y, dir.Z, radius)
}

// RCC returns the right circular cylinder from base to base+height.
func RCC(base, height r3.Vec, radius float64) raydist.Primitive {
	if height == (r3.Vec{}) {
		panic("zero height")
	}
	if radius <= 0 {
		panic("radius <= 0")
	}
	return prim(raydist.KindRCC, base.X, base.Y, base.Z, height.X, height.Y, height.Z, radius)
}

// TRC returns the truncated cone from base, radius r1, to base+height,
// radius r2.
func TRC(base, height r3.Vec, r1, r2 float64) raydist.Primitive {
	if height == (r3.Vec{}) {
		panic("zero height")
	}
	if r1 <= 0 {
		panic("r1 <= 0")
	}
	if r2 < 0 {
		panic("r2 < 0")
	}
	return prim(raydist.KindTRC, base.X, base.Y, base.Z, height.X, height.Y, height.Z, r1, r2)
}

// Cone returns the double cone along axis with apex at apex and squared
// half angle tangent k2.
func Cone(axis raydist.Axis, apex r3.Vec, k2 float64) raydist.Primitive {
	if k2 <= 0 {
		panic("k2 <= 0")
	}
	return prim(coneKind(axis), apex.X, apex.Y, apex.Z, k2)
}

// Nappe returns one nappe of the cone along axis: the one on the positive
// side of the apex when up is true.
func Nappe(axis raydist.Axis, apex r3.Vec, k2 float64, up bool) raydist.Primitive {
	if k2 <= 0 {
		panic("k2 <= 0")
	}
	s := -1.0
	if up {
		s = 1
	}
	return prim(coneKind(axis), apex.X, apex.Y, apex.Z, k2, s)
}

// TruncatedCone returns the z cone of base radius r at base with its apex
// at base.Z+height.
func TruncatedCone(base r3.Vec, radius, height float64) raydist.Primitive {
	if radius <= 0 {
		panic("radius <= 0")
	}
	if height == 0 {
		panic("height == 0")
	}
	return prim(raydist.KindCone, base.X, base.Y, base.Z, radius, height)
}

// Torus returns an elliptic torus along axis. Its tube cross section is an
// ellipse of semi-axis a along the axis and b radially, centred R away from
// the axis.
func Torus(axis raydist.Axis, center r3.Vec, R, a, b float64) raydist.Primitive {
	if R <= 0 || a <= 0 || b <= 0 {
		panic("torus dimensions must be positive")
	}
	k := [3]raydist.Kind{raydist.KindTorusX, raydist.KindTorusY, raydist.KindTorusZ}[axisIndex(axis)]
	return prim(k, center.X, center.Y, center.Z, R, a, b)
}

// Involute returns the plate between the involutes of the base circle r0
// starting at theta1 and theta2 degrees, within radii r1 to r2.
func Involute(center r3.Vec, r0, r1, r2, theta1, theta2 float64) raydist.Primitive {
	if r0 <= 0 || r0 > r1 || r1 >= r2 {
		panic("involute radii must satisfy 0 < r0 <= r1 < r2")
	}
	if theta1 >= theta2 || theta2-theta1 >= 360 {
		panic("involute angles out of range")
	}
	return prim(raydist.KindInvolute, center.X, center.Y, r0, r1, r2, theta1, theta2)
}

func cylKind(axis raydist.Axis) raydist.Kind {
	return [3]raydist.Kind{raydist.KindCylX, raydist.KindCylY, raydist.KindCylZ}[axisIndex(axis)]
}

func coneKind(axis raydist.Axis) raydist.Kind {
	return [3]raydist.Kind{raydist.KindConeX, raydist.KindConeY, raydist.KindConeZ}[axisIndex(axis)]
}

func axisIndex(axis raydist.Axis) int {
	if axis < raydist.AxisX || axis > raydist.AxisZ {
		panic("bad axis " + axis.String())
	}
	return int(axis)
}

// transverse returns the two coordinates of v across axis in parameter order.
func transverse(axis raydist.Axis, v r3.Vec) (a, b float64) {
	switch axisIndex(axis) {
	case 0:
		return v.Y, v.Z
	case 1:
		return v.X, v.Z
	}
	return v.X, v.Y
}

// prim builds a primitive and panics if it does not validate.
func prim(k raydist.Kind, params ...float64) raydist.Primitive {
	p := raydist.Primitive{Kind: k, Params: params}
	if err := p.Validate(); err != nil {
		panic(err.Error())
	}
	return p
}
