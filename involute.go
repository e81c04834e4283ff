package raydist

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Involute plate: the region of the annulus r1 <= ρ <= r2 swept between the
// involutes of the base circle r0 that start at angles θ1 and θ2.
//
// A point of the involute starting at θs at radius ρ has polar angle
// θs + inv(α) where cos α = r0/ρ and inv(α) = tan α - α. The plate is the set
// of points whose unrolled angle ψ = φ - inv(α) lies within [θ1, θ2].

const (
	involuteSamples  = 128 // per radial width of the plate
	involuteMaxSteps = 4096
	involuteBisect   = 60
	involuteMaxRoots = 3 // per curve per interval
)

type involute struct {
	c              r2.Vec
	r0, r1, r2     float64
	theta1, theta2 float64
}

func newInvolute(p []float64) involute {
	return involute{
		c:  r2.Vec{X: p[0], Y: p[1]},
		r0: p[2], r1: p[3], r2: p[4],
		theta1: DtoR(p[5]), theta2: DtoR(p[6]),
	}
}

// unrolled returns ψ for the point at rel from the centre.
func (iv *involute) unrolled(rel r2.Vec) float64 {
	rho := r2.Norm(rel)
	s := math.Sqrt(math.Max(rho*rho/(iv.r0*iv.r0)-1, 0))
	return math.Atan2(rel.Y, rel.X) - (s - math.Atan(s))
}

func (iv *involute) eval(q r3.Vec) float64 {
	rel := r2.Vec{X: q.X - iv.c.X, Y: q.Y - iv.c.Y}
	rho := r2.Norm(rel)
	mid := (iv.theta1 + iv.theta2) / 2
	half := (iv.theta2 - iv.theta1) / 2
	angular := rho * (math.Abs(wrapPi(iv.unrolled(rel)-mid)) - half)
	return math.Max(math.Max(iv.r1-rho, rho-iv.r2), angular)
}

func (iv *involute) hits(r Ray, c *candidates) {
	circle(iv.c.X, iv.c.Y, iv.r1, r, c)
	circle(iv.c.X, iv.c.Y, iv.r2, r, c)

	o := r2.Vec{X: r.Origin.X - iv.c.X, Y: r.Origin.Y - iv.c.Y}
	d := r2.Vec{X: r.Dir.X, Y: r.Dir.Y}
	a := r2.Norm2(d)
	if a < epsilon {
		// Parallel to the involute surfaces.
		return
	}
	// The ray projection is inside the annulus on [outer0, inner0] and
	// [inner1, outer1], the inner interval collapsing when it misses r1.
	outer0, outer1, ok := projectedCircle(o, d, iv.r2)
	if !ok {
		return
	}
	inner0, inner1, ok := projectedCircle(o, d, iv.r1)
	if !ok || inner1 <= outer0 || inner0 >= outer1 {
		iv.curveHits(o, d, outer0, outer1, c)
		return
	}
	iv.curveHits(o, d, outer0, inner0, c)
	iv.curveHits(o, d, inner1, outer1, c)
}

// projectedCircle returns the ray parameters where the XY projection of the
// ray crosses the circle of radius rad centred at the origin.
func projectedCircle(o, d r2.Vec, rad float64) (t0, t1 float64, ok bool) {
	n := r2.Norm2(d)
	m := 2 * r2.Dot(o, d)
	l := r2.Norm2(o) - rad*rad
	s := m*m - 4*n*l
	if s < 0 {
		return 0, 0, false
	}
	t0, t1 = quadraticRoots(n, m, l, s)
	return t0, t1, true
}

// curveHits pushes the crossings of both involute curves for t in [t0, t1].
func (iv *involute) curveHits(o, d r2.Vec, t0, t1 float64, c *candidates) {
	t0 = math.Max(t0, 0)
	if !(t0 < t1) {
		return
	}
	for _, theta := range [2]float64{iv.theta1, iv.theta2} {
		g := func(t float64) float64 {
			return wrapPi(iv.unrolled(r2.Add(o, r2.Scale(t, d))) - theta)
		}
		steps := int(math.Ceil((t1 - t0) * involuteSamples / (iv.r2 - iv.r1)))
		steps = max(8, min(steps, involuteMaxSteps))
		found := 0
		dt := (t1 - t0) / float64(steps)
		ta, ga := t0, g(t0)
		for i := 1; i <= steps && found < involuteMaxRoots; i++ {
			tb := t0 + float64(i)*dt
			if i == steps {
				tb = t1
			}
			gb := g(tb)
			// A sign change across ±π is the angle wrapping, not a root.
			if ga*gb <= 0 && math.Abs(ga) < pi/2 && math.Abs(gb) < pi/2 {
				c.push(bisect(g, ta, tb, ga))
				found++
			}
			ta, ga = tb, gb
		}
	}
}

// bisect narrows a bracketed sign change of g over [a, b] with a fixed
// number of iterations. ga is g(a).
func bisect(g func(float64) float64, a, b, ga float64) float64 {
	if ga == 0 {
		return a
	}
	for i := 0; i < involuteBisect; i++ {
		m := 0.5 * (a + b)
		gm := g(m)
		if gm == 0 {
			return m
		}
		if (gm < 0) == (ga < 0) {
			a, ga = m, gm
		} else {
			b = m
		}
	}
	return 0.5 * (a + b)
}

func involuteHits(p []float64, r Ray, c *candidates) {
	iv := newInvolute(p)
	iv.hits(r, c)
}

func involuteEval(p []float64, q r3.Vec) float64 {
	iv := newInvolute(p)
	return iv.eval(q)
}

func checkInvolute(p []float64) error {
	r0, r1, r2 := p[2], p[3], p[4]
	if !(r0 > 0 && r0 <= r1 && r1 < r2) {
		return errors.Errorf("involute radii must satisfy 0 < r0 <= r1 < r2, got %g %g %g", r0, r1, r2)
	}
	if err := checkRange("involute angle", p[5], p[6]); err != nil {
		return err
	}
	if p[6]-p[5] >= 360 {
		return errors.Errorf("involute angles span %g degrees", p[6]-p[5])
	}
	return nil
}
