package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Elem returns a vector with both components set to sides.
func Elem(sides float64) r2.Vec {
	return r2.Vec{X: sides, Y: sides}
}

// AbsElem returns the componentwise absolute value of a.
func AbsElem(a r2.Vec) r2.Vec {
	return r2.Vec{X: math.Abs(a.X), Y: math.Abs(a.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// Polar returns the unit vector at angle theta (radians).
func Polar(theta float64) r2.Vec {
	s, c := math.Sincos(theta)
	return r2.Vec{X: c, Y: s}
}

// Box returns the signed distance from p to an origin-centred rectangle of
// half sizes s. Negative inside.
func Box(p, s r2.Vec) float64 {
	d := r2.Sub(AbsElem(p), s)
	outside := r2.Norm(MaxElem(d, r2.Vec{}))
	inside := math.Min(math.Max(d.X, d.Y), 0)
	return outside + inside
}
