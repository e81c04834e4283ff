package raydist

import (
	"math"

	"github.com/pkg/errors"
	"github.com/soypat/raydist/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// SolveQuadratic returns the nearest non-negative root of n·d² + m·d + l = 0
// or +Inf if there is none.
//
// When n > 0 and l < 0 the ray starts inside the surface and only the exit
// root is returned. A vanishing n degrades to the linear equation m·d + l = 0.
func SolveQuadratic(n, m, l float64) float64 {
	if n > epsilon && l < 0 {
		s := m*m - 4*n*l
		return exitRoot(n, m, l, s)
	}
	var c candidates
	quadratic(n, m, l, &c)
	return c.min()
}

// quadratic pushes every non-negative root of n·d² + m·d + l = 0.
func quadratic(n, m, l float64, c *candidates) {
	if math.Abs(n) < epsilon {
		if math.Abs(m) < epsilon {
			return
		}
		c.push(-l / m)
		return
	}
	s := m*m - 4*n*l
	if s < 0 {
		return
	}
	if n > 0 && l < 0 {
		c.push(exitRoot(n, m, l, s))
		return
	}
	d0, d1 := quadraticRoots(n, m, l, s)
	c.push(d0)
	if d1 != d0 {
		c.push(d1)
	}
}

// quadraticRoots returns both roots given the discriminant s >= 0 using the
// cancellation free form q = -(m + sign(m)√s)/2.
func quadraticRoots(n, m, l, s float64) (d0, d1 float64) {
	q := -0.5 * (m + sign(m)*math.Sqrt(s))
	d0 = q / n
	if q == 0 {
		return d0, d0
	}
	d1 = l / q
	if d1 < d0 {
		d0, d1 = d1, d0
	}
	return d0, d1
}

// exitRoot is the positive root when the roots straddle zero (n > 0, l < 0).
func exitRoot(n, m, l, s float64) float64 {
	_, d1 := quadraticRoots(n, m, l, s)
	return d1
}

// sphere pushes the crossings of the sphere centred at c0 with radius r.
func sphere(c0 r3.Vec, r float64, ray Ray, c *candidates) {
	rel := r3.Sub(ray.Origin, c0)
	quadratic(r3.Norm2(ray.Dir), 2*r3.Dot(rel, ray.Dir), r3.Norm2(rel)-r*r, c)
}

// circle pushes the crossings of the infinite cylinder whose cross section in
// the (X, Y) components of ray is the circle (x0, y0, r). Callers permute the
// ray so the cylinder axis lies along Z. Fillet corners are circles too.
func circle(x0, y0, r float64, ray Ray, c *candidates) {
	x, y := ray.Origin.X-x0, ray.Origin.Y-y0
	u, v := ray.Dir.X, ray.Dir.Y
	quadratic(u*u+v*v, 2*(x*u+y*v), x*x+y*y-r*r, c)
}

func circleEval(x0, y0, r float64, q r3.Vec) float64 {
	return math.Hypot(q.X-x0, q.Y-y0) - r
}

// cone pushes the crossings of the double cone with apex a and axis along Z:
// (x-ax)² + (y-ay)² = k2·(z-az)². Only crossings on the nappe selected by
// nappe (+1 above the apex, -1 below, 0 both) are kept.
func cone(a r3.Vec, k2, nappe float64, ray Ray, c *candidates) {
	rel := r3.Sub(ray.Origin, a)
	u, v, w := ray.Dir.X, ray.Dir.Y, ray.Dir.Z
	n := u*u + v*v - k2*w*w
	m := 2 * (rel.X*u + rel.Y*v - k2*rel.Z*w)
	l := rel.X*rel.X + rel.Y*rel.Y - k2*rel.Z*rel.Z
	if nappe == 0 {
		quadratic(n, m, l, c)
		return
	}
	var roots candidates
	quadratic(n, m, l, &roots)
	for _, t := range roots.t[:roots.n] {
		if nappe*(rel.Z+t*w) >= 0 {
			c.push(t)
		}
	}
}

func coneEval(a r3.Vec, k2, nappe float64, q r3.Vec) float64 {
	rel := r3.Sub(q, a)
	rho := math.Hypot(rel.X, rel.Y)
	d := rho - math.Sqrt(k2)*math.Abs(rel.Z)
	if nappe != 0 {
		d = math.Max(d, -nappe*rel.Z)
	}
	return d
}

// axialCone describes a finite right circular cone or cylinder along the unit
// axis from base point b: radius r1 at the base, r2 at axial height h.
type axialCone struct {
	b      r3.Vec
	axis   r3.Vec
	h      float64
	r1, r2 float64
}

// hits pushes the crossings of the lateral surface extended to infinity and
// of both cap planes.
func (ac axialCone) hits(ray Ray, c *candidates) {
	ac.lateral(ray, c)
	rel := r3.Sub(ray.Origin, ac.b)
	s0 := r3.Dot(rel, ac.axis)
	da := r3.Dot(ray.Dir, ac.axis)
	if da != 0 {
		c.push(-s0 / da)
		c.push((ac.h - s0) / da)
	}
}

// lateral pushes the crossings of the lateral surface only.
func (ac axialCone) lateral(ray Ray, c *candidates) {
	rel := r3.Sub(ray.Origin, ac.b)
	k := (ac.r2 - ac.r1) / ac.h
	s0 := r3.Dot(rel, ac.axis)
	da := r3.Dot(ray.Dir, ac.axis)
	rs := ac.r1 + k*s0
	n := r3.Norm2(ray.Dir) - da*da - k*k*da*da
	m := 2 * (r3.Dot(rel, ray.Dir) - s0*da - k*da*rs)
	l := r3.Norm2(rel) - s0*s0 - rs*rs
	quadratic(n, m, l, c)
}

func (ac axialCone) eval(q r3.Vec) float64 {
	rel := r3.Sub(q, ac.b)
	s := r3.Dot(rel, ac.axis)
	rho := r3.Norm(d3.Perp(rel, ac.axis))
	r := ac.r1 + (ac.r2-ac.r1)*s/ac.h
	return math.Max(rho-r, slabEval(s, 0, ac.h))
}

// quadric evaluates the general second order surface
// Ax²+By²+Cz²+Dxy+Eyz+Fzx+Gx+Hy+Jz+K.
func quadricEval(p []float64, q r3.Vec) float64 {
	x, y, z := q.X, q.Y, q.Z
	return p[0]*x*x + p[1]*y*y + p[2]*z*z + p[3]*x*y + p[4]*y*z + p[5]*z*x +
		p[6]*x + p[7]*y + p[8]*z + p[9]
}

// quadricCoefficients substitutes the ray into the general quadric and
// returns the canonical (N, M, L).
func quadricCoefficients(p []float64, r Ray) (n, m, l float64) {
	x, y, z := r.Origin.X, r.Origin.Y, r.Origin.Z
	u, v, w := r.Dir.X, r.Dir.Y, r.Dir.Z
	a, b, cc, d, e, f, g, h, j := p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[7], p[8]
	n = a*u*u + b*v*v + cc*w*w + d*u*v + e*v*w + f*w*u
	m = 2*(a*x*u+b*y*v+cc*z*w) + d*(x*v+y*u) + e*(y*w+z*v) + f*(z*u+x*w) +
		g*u + h*v + j*w
	l = quadricEval(p, r.Origin)
	return n, m, l
}

func checkPositive(name string, v float64) error {
	if !(v > 0) {
		return errors.Errorf("%s must be positive, got %g", name, v)
	}
	return nil
}

func checkRange(name string, lo, hi float64) error {
	if !(lo < hi) {
		return errors.Errorf("%s range must be increasing, got [%g, %g]", name, lo, hi)
	}
	return nil
}
