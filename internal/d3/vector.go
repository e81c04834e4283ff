package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector helpers shared by the surface solvers.

// AbsElem returns the componentwise absolute value of a.
func AbsElem(a r3.Vec) r3.Vec {
	return r3.Vec{X: math.Abs(a.X), Y: math.Abs(a.Y), Z: math.Abs(a.Z)}
}

// Max returns the largest component of a.
func Max(a r3.Vec) float64 {
	return math.Max(a.Z, math.Max(a.X, a.Y))
}

// Permute reorders the components of v so that the component along axis
// (0=X, 1=Y, 2=Z) ends up in Z. The two transverse components keep their
// relative order so that parameter pairs such as (x0, z0) of a y-axis
// cylinder map onto (X, Y).
func Permute(v r3.Vec, axis int) r3.Vec {
	switch axis {
	case 0:
		return r3.Vec{X: v.Y, Y: v.Z, Z: v.X}
	case 1:
		return r3.Vec{X: v.X, Y: v.Z, Z: v.Y}
	}
	return v
}

// Perp returns the component of v perpendicular to the unit vector axis.
func Perp(v, axis r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(r3.Dot(v, axis), axis))
}

// Set is a set of points.
type Set []r3.Vec

// Centroid returns the arithmetic mean of the set.
func (a Set) Centroid() r3.Vec {
	var c r3.Vec
	for _, v := range a {
		c = r3.Add(c, v)
	}
	return r3.Scale(1/float64(len(a)), c)
}

// Scale returns the largest absolute coordinate in the set, at least 1.
// It serves as the reference magnitude for relative tolerances.
func (a Set) Scale() float64 {
	s := 1.0
	for _, v := range a {
		s = math.Max(s, Max(AbsElem(v)))
	}
	return s
}
