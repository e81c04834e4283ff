package raydist

import (
	"math"

	"github.com/pkg/errors"
	"github.com/soypat/raydist/internal/d3"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// PlaneDistance returns the distance along r to the plane a·x+b·y+c·z = d.
// A ray parallel to the plane or heading away from it returns +Inf.
func PlaneDistance(a, b, c, d float64, r Ray) float64 {
	den := a*r.Dir.X + b*r.Dir.Y + c*r.Dir.Z
	if den == 0 {
		return inf
	}
	t := -(a*r.Origin.X + b*r.Origin.Y + c*r.Origin.Z - d) / den
	if !(t >= 0) {
		return inf
	}
	return t
}

// PlaneFromPoints returns the coefficients of the plane a·x+b·y+c·z = d
// through three points. The normal (a, b, c) follows the right hand rule
// over p1, p2, p3 and is not normalized. The derived coefficients are
// checked against all three points; collinear or numerically inconsistent
// input is an error.
func PlaneFromPoints(p1, p2, p3 r3.Vec) (a, b, c, d float64, err error) {
	e1, e2 := r3.Sub(p2, p1), r3.Sub(p3, p1)
	n := r3.Cross(e1, e2)
	scale := d3.Set{p1, p2, p3}.Scale()
	nn := r3.Norm(n)
	if nn <= coefTolerance*r3.Norm(e1)*r3.Norm(e2) {
		return 0, 0, 0, 0, errors.Errorf("points %v %v %v are collinear", p1, p2, p3)
	}
	d = r3.Dot(n, p1)
	for i, p := range [3]r3.Vec{p1, p2, p3} {
		got := r3.Dot(n, p)
		if !scalar.EqualWithinAbsOrRel(got, d, coefTolerance*nn*scale, coefTolerance) {
			return 0, 0, 0, 0, errors.Errorf("plane coefficients (%g %g %g %g) inconsistent with point %d %v: residual %g",
				n.X, n.Y, n.Z, d, i+1, p, got-d)
		}
	}
	return n.X, n.Y, n.Z, d, nil
}

// axisPlane pushes the crossing of a coordinate plane pos+t·dir = p0.
func axisPlane(pos, dir, p0 float64, c *candidates) {
	if dir == 0 {
		return
	}
	c.push((p0 - pos) / dir)
}

// plane pushes the crossing of n·x = d.
func plane(n r3.Vec, d float64, r Ray, c *candidates) {
	den := r3.Dot(n, r.Dir)
	if math.Abs(den) < epsilon*r3.Norm(n) {
		return
	}
	c.push((d - r3.Dot(n, r.Origin)) / den)
}

// slab pushes the crossings of the two coordinate planes bounding lo <= s <= hi.
func slab(pos, dir, lo, hi float64, c *candidates) {
	axisPlane(pos, dir, lo, c)
	axisPlane(pos, dir, hi, c)
}

// slabEval is the implicit function of lo <= s <= hi, negative inside.
func slabEval(s, lo, hi float64) float64 {
	return math.Max(lo-s, s-hi)
}

func planeDistance(p []float64, r Ray) float64 {
	a, b, c, d := planeCoefficients(p)
	return PlaneDistance(a, b, c, d, r)
}

// planeCoefficients returns A B C D for either plane arity. The three point
// form is validated by checkThreePointPlane before any query reaches here.
func planeCoefficients(p []float64) (a, b, c, d float64) {
	if len(p) == 4 {
		return p[0], p[1], p[2], p[3]
	}
	n := r3.Cross(
		r3.Vec{X: p[3] - p[0], Y: p[4] - p[1], Z: p[5] - p[2]},
		r3.Vec{X: p[6] - p[0], Y: p[7] - p[1], Z: p[8] - p[2]},
	)
	return n.X, n.Y, n.Z, n.X*p[0] + n.Y*p[1] + n.Z*p[2]
}

func checkPlane(p []float64) error {
	if len(p) == 4 {
		if p[0] == 0 && p[1] == 0 && p[2] == 0 {
			return errors.New("plane normal is zero")
		}
		return nil
	}
	return checkThreePointPlane(p)
}

func checkThreePointPlane(p []float64) error {
	if len(p) != 9 {
		return nil
	}
	_, _, _, _, err := PlaneFromPoints(
		r3.Vec{X: p[0], Y: p[1], Z: p[2]},
		r3.Vec{X: p[3], Y: p[4], Z: p[5]},
		r3.Vec{X: p[6], Y: p[7], Z: p[8]},
	)
	return err
}

func planeEval(p []float64, q r3.Vec) float64 {
	a, b, c, d := planeCoefficients(p)
	return (a*q.X + b*q.Y + c*q.Z - d) / math.Sqrt(a*a+b*b+c*c)
}
