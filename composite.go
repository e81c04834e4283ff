package raydist

import (
	"math"

	"github.com/pkg/errors"
	"github.com/soypat/raydist/internal/d2"
	"github.com/soypat/raydist/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Compound primitives. Each enumerates the elementary surfaces that contain
// its boundary and pushes all their crossings; the dispatcher reduces them.

func permuteRay(r Ray, axis int) Ray {
	return Ray{Origin: d3.Permute(r.Origin, axis), Dir: d3.Permute(r.Dir, axis)}
}

// Axis aligned cylinders: a0 b0 r [lo hi].

func axisCylHits(axis int) func(p []float64, r Ray, c *candidates) {
	return func(p []float64, r Ray, c *candidates) {
		r = permuteRay(r, axis)
		circle(p[0], p[1], p[2], r, c)
		if len(p) == 5 {
			slab(r.Origin.Z, r.Dir.Z, p[3], p[4], c)
		}
	}
}

func axisCylEval(axis int) func(p []float64, q r3.Vec) float64 {
	return func(p []float64, q r3.Vec) float64 {
		q = d3.Permute(q, axis)
		d := circleEval(p[0], p[1], p[2], q)
		if len(p) == 5 {
			d = math.Max(d, slabEval(q.Z, p[3], p[4]))
		}
		return d
	}
}

func checkAxisCyl(p []float64) error {
	if err := checkPositive("r", p[2]); err != nil {
		return err
	}
	if len(p) == 5 {
		return checkRange("axial", p[3], p[4])
	}
	return nil
}

// Arbitrary axis cylinder: x0 y0 z0 u v w r [t1 t2].

func cylv(p []float64) axialCone {
	axis := r3.Unit(r3.Vec{X: p[3], Y: p[4], Z: p[5]})
	ac := axialCone{b: r3.Vec{X: p[0], Y: p[1], Z: p[2]}, axis: axis, h: 1, r1: p[6], r2: p[6]}
	if len(p) == 9 {
		ac.b = r3.Add(ac.b, r3.Scale(p[7], axis))
		ac.h = p[8] - p[7]
	}
	return ac
}

func cylvHits(p []float64, r Ray, c *candidates) {
	ac := cylv(p)
	if len(p) == 9 {
		ac.hits(r, c)
		return
	}
	ac.lateral(r, c)
}

func cylvEval(p []float64, q r3.Vec) float64 {
	ac := cylv(p)
	if len(p) == 9 {
		return ac.eval(q)
	}
	return r3.Norm(d3.Perp(r3.Sub(q, ac.b), ac.axis)) - p[6]
}

func checkCylv(p []float64) error {
	if p[3] == 0 && p[4] == 0 && p[5] == 0 {
		return errors.New("cylinder axis is zero")
	}
	if err := checkPositive("r", p[6]); err != nil {
		return err
	}
	if len(p) == 9 {
		return checkRange("axial", p[7], p[8])
	}
	return nil
}

// Axis aligned cones: x0 y0 z0 k2 [s].

func nappe(p []float64) float64 {
	if len(p) == 5 {
		return sign(p[4])
	}
	return 0
}

func axisConeHits(axis int) func(p []float64, r Ray, c *candidates) {
	return func(p []float64, r Ray, c *candidates) {
		apex := d3.Permute(r3.Vec{X: p[0], Y: p[1], Z: p[2]}, axis)
		cone(apex, p[3], nappe(p), permuteRay(r, axis), c)
	}
}

func axisConeEval(axis int) func(p []float64, q r3.Vec) float64 {
	return func(p []float64, q r3.Vec) float64 {
		apex := d3.Permute(r3.Vec{X: p[0], Y: p[1], Z: p[2]}, axis)
		return coneEval(apex, p[3], nappe(p), d3.Permute(q, axis))
	}
}

func checkAxisCone(p []float64) error {
	if err := checkPositive("k2", p[3]); err != nil {
		return err
	}
	if len(p) == 5 && p[4] != 1 && p[4] != -1 {
		return errors.Errorf("nappe selector must be 1 or -1, got %g", p[4])
	}
	return nil
}

// Truncated z cone: x0 y0 z0 r h.

func zCone(p []float64) axialCone {
	return axialCone{
		b:    r3.Vec{X: p[0], Y: p[1], Z: p[2]},
		axis: r3.Vec{Z: sign(p[4])},
		h:    math.Abs(p[4]),
		r1:   p[3],
	}
}

func checkZCone(p []float64) error {
	if err := checkPositive("r", p[3]); err != nil {
		return err
	}
	if p[4] == 0 {
		return errors.New("cone height is zero")
	}
	return nil
}

// Right circular cylinder x0 y0 z0 hx hy hz r and truncated cone
// x0 y0 z0 hx hy hz r1 r2.

func macroCone(p []float64) axialCone {
	h := r3.Vec{X: p[3], Y: p[4], Z: p[5]}
	hn := r3.Norm(h)
	ac := axialCone{b: r3.Vec{X: p[0], Y: p[1], Z: p[2]}, axis: r3.Scale(1/hn, h), h: hn, r1: p[6], r2: p[6]}
	if len(p) == 8 {
		ac.r2 = p[7]
	}
	return ac
}

func checkMacroCone(p []float64) error {
	if p[3] == 0 && p[4] == 0 && p[5] == 0 {
		return errors.New("height vector is zero")
	}
	if err := checkPositive("r1", p[6]); err != nil {
		return err
	}
	if len(p) == 8 && p[7] < 0 {
		return errors.Errorf("r2 must not be negative, got %g", p[7])
	}
	return nil
}

// Boxes.

func rectHits(p []float64, r Ray, c *candidates) {
	slab(r.Origin.X, r.Dir.X, p[0], p[1], c)
	slab(r.Origin.Y, r.Dir.Y, p[2], p[3], c)
}

func rectEval(p []float64, q r3.Vec) float64 {
	return math.Max(slabEval(q.X, p[0], p[1]), slabEval(q.Y, p[2], p[3]))
}

func checkRect(p []float64) error {
	if err := checkRange("x", p[0], p[1]); err != nil {
		return err
	}
	return checkRange("y", p[2], p[3])
}

func cuboidHits(p []float64, r Ray, c *candidates) {
	rectHits(p, r, c)
	slab(r.Origin.Z, r.Dir.Z, p[4], p[5], c)
}

func cuboidEval(p []float64, q r3.Vec) float64 {
	return math.Max(rectEval(p, q), slabEval(q.Z, p[4], p[5]))
}

func checkCuboid(p []float64) error {
	if err := checkRect(p); err != nil {
		return err
	}
	return checkRange("z", p[4], p[5])
}

func cubeBounds(p []float64) [6]float64 {
	x, y, z, h := p[0], p[1], p[2], p[3]
	return [6]float64{x - h, x + h, y - h, y + h, z - h, z + h}
}

func cubeHits(p []float64, r Ray, c *candidates) {
	b := cubeBounds(p)
	cuboidHits(b[:], r, c)
}

func cubeEval(p []float64, q r3.Vec) float64 {
	b := cubeBounds(p)
	return cuboidEval(b[:], q)
}

// Cross: x0 y0 r d [rf]. Union of the slabs |x|<r,|y|<d and |x|<d,|y|<r
// with the four concave inner corners filled by fillets of radius rf.

func crossFillet(p []float64) float64 {
	if len(p) == 5 {
		return p[4]
	}
	return 0
}

func crossHits(p []float64, r Ray, c *candidates) {
	x0, y0, h, d := p[0], p[1], p[2], p[3]
	slab(r.Origin.X, r.Dir.X, x0-h, x0+h, c)
	slab(r.Origin.X, r.Dir.X, x0-d, x0+d, c)
	slab(r.Origin.Y, r.Dir.Y, y0-h, y0+h, c)
	slab(r.Origin.Y, r.Dir.Y, y0-d, y0+d, c)
	rf := crossFillet(p)
	if rf <= 0 {
		return
	}
	k := d + rf
	circle(x0+k, y0+k, rf, r, c)
	circle(x0-k, y0+k, rf, r, c)
	circle(x0-k, y0-k, rf, r, c)
	circle(x0+k, y0-k, rf, r, c)
}

func crossEval(p []float64, q r3.Vec) float64 {
	h, d := p[2], p[3]
	a := d2.AbsElem(r2.Vec{X: q.X - p[0], Y: q.Y - p[1]})
	v := math.Min(d2.Box(a, r2.Vec{X: h, Y: d}), d2.Box(a, r2.Vec{X: d, Y: h}))
	rf := crossFillet(p)
	if rf <= 0 {
		return v
	}
	k := d + rf
	if a.X >= d && a.X <= k && a.Y >= d && a.Y <= k {
		v = math.Min(v, rf-math.Hypot(a.X-k, a.Y-k))
	}
	return v
}

func checkCross(p []float64) error {
	if err := checkPositive("d", p[3]); err != nil {
		return err
	}
	if !(p[3] < p[2]) {
		return errors.Errorf("arm half width %g must be less than half length %g", p[3], p[2])
	}
	if rf := crossFillet(p); rf < 0 || p[3]+rf > p[2] {
		return errors.Errorf("fillet radius %g outside [0, %g]", rf, p[2]-p[3])
	}
	return nil
}

// Astroid: x0 y0 r. The square of half width r minus the four discs of
// radius r centred on its corners; cusps lie on the axes.

func astroidHits(p []float64, r Ray, c *candidates) {
	x0, y0, h := p[0], p[1], p[2]
	slab(r.Origin.X, r.Dir.X, x0-h, x0+h, c)
	slab(r.Origin.Y, r.Dir.Y, y0-h, y0+h, c)
	circle(x0+h, y0+h, h, r, c)
	circle(x0-h, y0+h, h, r, c)
	circle(x0-h, y0-h, h, r, c)
	circle(x0+h, y0-h, h, r, c)
}

func astroidEval(p []float64, q r3.Vec) float64 {
	h := p[2]
	a := d2.AbsElem(r2.Vec{X: q.X - p[0], Y: q.Y - p[1]})
	return math.Max(d2.Box(a, d2.Elem(h)), h-math.Hypot(a.X-h, a.Y-h))
}

// Pad: x0 y0 r1 r2 [theta1 theta2]. Annulus, optionally restricted to the
// counterclockwise sector from theta1 to theta2.

type pad struct {
	x0, y0, r1, r2 float64
	sector         bool
	n1, n2         r2.Vec // outward normals of the sector edges
	convex         bool
}

func newPad(p []float64) pad {
	pd := pad{x0: p[0], y0: p[1], r1: p[2], r2: p[3]}
	if len(p) == 6 && p[5]-p[4] < 360 {
		t1, t2 := DtoR(p[4]), DtoR(p[5])
		pd.sector = true
		pd.n1 = r2.Vec{X: math.Sin(t1), Y: -math.Cos(t1)}
		pd.n2 = r2.Vec{X: -math.Sin(t2), Y: math.Cos(t2)}
		pd.convex = p[5]-p[4] <= 180
	}
	return pd
}

func padHits(p []float64, r Ray, c *candidates) {
	pd := newPad(p)
	if pd.r1 > 0 {
		circle(pd.x0, pd.y0, pd.r1, r, c)
	}
	circle(pd.x0, pd.y0, pd.r2, r, c)
	if !pd.sector {
		return
	}
	centre := r2.Vec{X: pd.x0, Y: pd.y0}
	plane(r3.Vec{X: pd.n1.X, Y: pd.n1.Y}, r2.Dot(pd.n1, centre), r, c)
	plane(r3.Vec{X: pd.n2.X, Y: pd.n2.Y}, r2.Dot(pd.n2, centre), r, c)
}

func padEval(p []float64, q r3.Vec) float64 {
	pd := newPad(p)
	rel := r2.Vec{X: q.X - pd.x0, Y: q.Y - pd.y0}
	rho := r2.Norm(rel)
	d := math.Max(pd.r1-rho, rho-pd.r2)
	if !pd.sector {
		return d
	}
	e1, e2 := r2.Dot(pd.n1, rel), r2.Dot(pd.n2, rel)
	if pd.convex {
		return math.Max(d, math.Max(e1, e2))
	}
	return math.Max(d, math.Min(e1, e2))
}

func checkPad(p []float64) error {
	if p[2] < 0 || !(p[2] < p[3]) {
		return errors.Errorf("pad radii must satisfy 0 <= r1 < r2, got %g %g", p[2], p[3])
	}
	if len(p) == 6 {
		if err := checkRange("angle", p[4], p[5]); err != nil {
			return err
		}
		if p[5]-p[4] > 360 {
			return errors.Errorf("pad sector spans %g degrees", p[5]-p[4])
		}
	}
	return nil
}

// Half-space sets: A1 B1 C1 D1 ... An Bn Cn Dn with Ai·x+Bi·y+Ci·z <= Di
// inside each half-space. poly intersects them, polyunion unites them.

const maxHalfspaces = 16

func halfspacesHits(p []float64, r Ray, c *candidates) {
	for i := 0; i+3 < len(p); i += 4 {
		plane(r3.Vec{X: p[i], Y: p[i+1], Z: p[i+2]}, p[i+3], r, c)
	}
}

func halfspace(p []float64, q r3.Vec) float64 {
	n := r3.Vec{X: p[0], Y: p[1], Z: p[2]}
	return (r3.Dot(n, q) - p[3]) / r3.Norm(n)
}

func polyEval(p []float64, q r3.Vec) float64 {
	d := -inf
	for i := 0; i+3 < len(p); i += 4 {
		d = math.Max(d, halfspace(p[i:i+4], q))
	}
	return d
}

func polyUnionEval(p []float64, q r3.Vec) float64 {
	d := inf
	for i := 0; i+3 < len(p); i += 4 {
		d = math.Min(d, halfspace(p[i:i+4], q))
	}
	return d
}

func halfspaceArity(n int) bool {
	return n > 0 && n%4 == 0 && n/4 <= maxHalfspaces
}

func checkHalfspaces(p []float64) error {
	for i := 0; i+3 < len(p); i += 4 {
		if p[i] == 0 && p[i+1] == 0 && p[i+2] == 0 {
			return errors.Errorf("half-space %d has a zero normal", i/4)
		}
	}
	return nil
}
