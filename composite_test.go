package raydist

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func distance(kind Kind, params []float64, r Ray) float64 {
	return NewSolver().Distance(Primitive{Kind: kind, Params: params}, r, 0)
}

func expectDistance(t *testing.T, kind Kind, params []float64, r Ray, want float64) {
	t.Helper()
	got := distance(kind, params, r)
	if math.IsInf(want, 1) {
		test.That(t, math.IsInf(got, 1), test.ShouldBeTrue)
		return
	}
	test.That(t, got, test.ShouldAlmostEqual, want, 1e-9)
}

func TestCylinderContainment(t *testing.T) {
	for _, p := range [][2]float64{{0.5, 0}, {0, -0.9}, {0.3, 0.3}} {
		expectDistance(t, KindCylZ, []float64{0, 0, 1}, NewRay(p[0], p[1], 0, 0, 0, 1), inf)
		expectDistance(t, KindCylZ, []float64{0, 0, 1}, NewRay(p[0], p[1], 0, 0, 0, -1), inf)
	}
	// Outside and parallel never hits either.
	expectDistance(t, KindCylZ, []float64{0, 0, 1}, NewRay(2, 0, 0, 0, 0, 1), inf)
}

func TestAxisCylinders(t *testing.T) {
	expectDistance(t, KindCylZ, []float64{0, 0, 1}, NewRay(-3, 0, 7, 1, 0, 0), 2)
	expectDistance(t, KindCylZ, []float64{0, 0, 1}, NewRay(0, 0, 7, 1, 0, 0), 1)
	expectDistance(t, KindCylX, []float64{1, 2, 0.5}, NewRay(0, 1, 0, 0, 0, 1), 1.5)
	expectDistance(t, KindCylY, []float64{1, 2, 0.5}, NewRay(1, 0, 0, 0, 0, 1), 1.5)
	expectDistance(t, KindCylV, []float64{0, 0, 0, 0, 0, 1, 1}, NewRay(3, 0, 0, -1, 0, 0), 2)
	expectDistance(t, KindCylV, []float64{0, 0, 0, 0, 0, 2, 1}, NewRay(0.5, 0, 0, 0, 0, 1), inf)
	// Along x from -1 to 2.
	trimmed := []float64{0, 0, 0, 1, 0, 0, 0.5, -1, 2}
	expectDistance(t, KindCylV, trimmed, NewRay(0, 0, 0, 1, 0, 0), 2)
	expectDistance(t, KindCylV, trimmed, NewRay(-5, 0, 0, 1, 0, 0), 4)
	expectDistance(t, KindCylV, trimmed, NewRay(0, -3, 0, 0, 1, 0), 2.5)
}

func TestTrimmedCylinderCapping(t *testing.T) {
	p := []float64{0, 0, 1, -2, 3}
	expectDistance(t, KindCylZ, p, NewRay(0.2, 0, 0, 0, 0, 1), 3)
	expectDistance(t, KindCylZ, p, NewRay(0.2, 0, 0, 0, 0, -1), 2)
	expectDistance(t, KindCylZ, p, NewRay(0.2, 0, -5, 0, 0, 1), 3)
	expectDistance(t, KindCylZ, p, NewRay(0.2, 0, 5, 0, 0, -1), 2)
	expectDistance(t, KindCylZ, p, NewRay(0.2, 0, 5, 0, 0, 1), inf)
	// Barrel crossing lies outside the trim.
	expectDistance(t, KindCylZ, p, NewRay(-3, 0, 4, 1, 0, 0), inf)
	expectDistance(t, KindCylX, []float64{0, 0, 1, -2, 3}, NewRay(-5, 0.2, 0, 1, 0, 0), 3)
	expectDistance(t, KindRCC, []float64{0, 0, 0, 0, 0, 2, 1}, NewRay(0, 0, -1, 0, 0, 1), 1)
	expectDistance(t, KindRCC, []float64{0, 0, 0, 0, 0, 2, 1}, NewRay(0.5, 0, 1, 1, 0, 0), 0.5)
	expectDistance(t, KindTRC, []float64{0, 0, 0, 0, 0, 2, 1, 0.5}, NewRay(5, 0, 1, -1, 0, 0), 4.25)
	expectDistance(t, KindTRC, []float64{0, 0, 0, 0, 0, 2, 1, 0.5}, NewRay(0, 0, 1, 0, 0, 1), 1)
}

func TestBoxes(t *testing.T) {
	expectDistance(t, KindCuboid, []float64{-1, 1, -2, 2, -3, 3}, NewRay(-5, 0, 0, 1, 0, 0), 4)
	expectDistance(t, KindCuboid, []float64{-1, 1, -2, 2, -3, 3}, NewRay(0, 0, 0, 0, 0, 1), 3)
	expectDistance(t, KindCuboid, []float64{-1, 1, -2, 2, -3, 3}, NewRay(-5, 3, 0, 1, 0, 0), inf)
	expectDistance(t, KindCube, []float64{1, 1, 1, 0.5}, NewRay(1, 1, -1, 0, 0, 1), 1.5)
	expectDistance(t, KindRect, []float64{-1, 1, -2, 2}, NewRay(0, 0, 100, 0, 1, 0), 2)
	expectDistance(t, KindRect, []float64{-1, 1, -2, 2}, NewRay(0, 0, 100, 0, 0, 1), inf)
}

func TestPolygons(t *testing.T) {
	expectDistance(t, KindSquare, []float64{0, 0, 1}, NewRay(-5, 0.5, 0, 1, 0, 0), 4)
	expectDistance(t, KindHexX, []float64{0, 0, 1}, NewRay(-5, 0, 0, 1, 0, 0), 4)
	expectDistance(t, KindHexY, []float64{0, 0, 1}, NewRay(0, -5, 0, 0, 1, 0), 4)
	expectDistance(t, KindHexY, []float64{0, 0, 1}, NewRay(-5, 0, 0, 1, 0, 0), 5-2/math.Sqrt(3))
	expectDistance(t, KindHexXPrism, []float64{0, 0, 1, -1, 1}, NewRay(0, 0, -5, 0, 0, 1), 4)
	expectDistance(t, KindHexYPrism, []float64{0, 0, 1, -1, 1}, NewRay(0, 0, 0, 0, 1, 0), 1)
	expectDistance(t, KindOctagon, []float64{0, 0, 1, 1.2}, NewRay(-5, 0, 0, 1, 0, 0), 4)
	// Diagonal flats at 1.2 cut the corner at (1, 1).
	expectDistance(t, KindOctagon, []float64{0, 0, 1, 1.2}, NewRay(0, 0, 0, math.Sqrt2/2, math.Sqrt2/2, 0), 1.2)
	expectDistance(t, KindDodecagon, []float64{0, 0, 1, 1.1}, NewRay(0, 0, 0, 1, 0, 0), 1)
	expectDistance(t, KindDodecagon, []float64{0, 0, 1, 1.1}, NewRay(0, 0, 0, math.Sqrt(3)/2, 0.5, 0), 1.1)
}

func TestFilletedCorner(t *testing.T) {
	d := 1 / math.Sqrt2
	// Sharp corner at (1, 1); the fillet circle is centred at (0.5, 0.5).
	expectDistance(t, KindSquare, []float64{0, 0, 1}, NewRay(3, 3, 0, -d, -d, 0), 2*math.Sqrt2)
	expectDistance(t, KindSquare, []float64{0, 0, 1, 0.5}, NewRay(3, 3, 0, -d, -d, 0), 2.5*math.Sqrt2-0.5)
	expectDistance(t, KindSquare, []float64{0, 0, 1, 0.5}, NewRay(0, 0, 0, d, d, 0), 0.5*math.Sqrt2+0.5)
	expectDistance(t, KindHexX, []float64{0, 0, 1, 0.2}, NewRay(-5, 0, 0, 1, 0, 0), 4)
}

func TestFilletConsistency(t *testing.T) {
	const r, rf = 1.0, 0.3
	sharp := Primitive{Kind: KindSquare, Params: []float64{0, 0, r}}
	round := Primitive{Kind: KindSquare, Params: []float64{0, 0, r, rf}}
	s := NewSolver()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		// Away from the corners: transverse coordinate within r-rf.
		a := (2*rng.Float64() - 1) * (r - rf)
		b := (2*rng.Float64() - 1) * 3
		sgn := float64(1 - 2*rng.Intn(2))
		var ray Ray
		if i%2 == 0 {
			ray = NewRay(b, a, 0, sgn, 0, 0)
		} else {
			ray = NewRay(a, b, 0, 0, sgn, 0)
		}
		test.That(t, s.Distance(round, ray, 0), test.ShouldEqual, s.Distance(sharp, ray, 0))
	}

	// The rounded section keeps the area of the square minus the corner
	// regions cut by the fillets.
	const samples = 200000
	in := 0
	for i := 0; i < samples; i++ {
		q := r3.Vec{X: (2*rng.Float64() - 1) * r, Y: (2*rng.Float64() - 1) * r}
		if s.Contains(round, q) {
			in++
		}
	}
	area := 4 * r * r * float64(in) / samples
	test.That(t, area, test.ShouldAlmostEqual, 4*r*r-(4-math.Pi)*rf*rf, 0.02)
}

func TestCross(t *testing.T) {
	p := []float64{0, 0, 2, 0.5}
	expectDistance(t, KindCross, p, NewRay(-5, 0, 0, 1, 0, 0), 3)
	expectDistance(t, KindCross, p, NewRay(-5, 1, 0, 1, 0, 0), 4.5)
	expectDistance(t, KindCross, p, NewRay(0, 0, 0, 0, 1, 0), 2)
	expectDistance(t, KindCross, p, NewRay(-5, 3, 0, 1, 0, 0), inf)
	// The inner corner fillet of radius 0.3 is centred at (-0.8, 0.8).
	filleted := []float64{0, 0, 2, 0.5, 0.3}
	expectDistance(t, KindCross, filleted, NewRay(-5, 0.7, 0, 1, 0, 0), 4.2+math.Sqrt(0.08))
	expectDistance(t, KindCross, filleted, NewRay(-5, 0.2, 0, 1, 0, 0), 3)

	// The nearest candidate is the horizontal arm's end plane at (-2, 1),
	// which is off the cross; both policies skip it.
	simple := NewSolver(WithPolicy(PolicySimple))
	got := simple.Distance(Primitive{Kind: KindCross, Params: p}, NewRay(-5, 1, 0, 1, 0, 0), 0)
	test.That(t, got, test.ShouldAlmostEqual, 4.5, 1e-12)
}

func TestAstroid(t *testing.T) {
	p := []float64{0, 0, 1}
	expectDistance(t, KindAstroid, p, NewRay(-5, 0.2, 0, 1, 0, 0), 4.6)
	expectDistance(t, KindAstroid, p, NewRay(0, 0, 0, 0, 1, 0), 1)
	expectDistance(t, KindAstroid, p, NewRay(0.6, 0.6, 0, 1, 0, 0), inf)
	test.That(t, Contains(Primitive{Kind: KindAstroid, Params: p}, r3.Vec{X: 0.5, Y: 0.5}), test.ShouldBeFalse)
	test.That(t, Contains(Primitive{Kind: KindAstroid, Params: p}, r3.Vec{X: 0.1, Y: 0.1}), test.ShouldBeTrue)
}

func TestPad(t *testing.T) {
	annulus := []float64{0, 0, 1, 2}
	expectDistance(t, KindPad, annulus, NewRay(0, 0, 0, 1, 0, 0), 1)
	expectDistance(t, KindPad, annulus, NewRay(1.5, 0, 0, 1, 0, 0), 0.5)
	expectDistance(t, KindPad, annulus, NewRay(1.5, 0, 0, -1, 0, 0), 0.5)
	expectDistance(t, KindPad, []float64{0, 0, 0, 2}, NewRay(0, 0, 0, 1, 0, 0), 2)

	quarter := []float64{0, 0, 1, 2, 0, 90}
	expectDistance(t, KindPad, quarter, NewRay(1.5, -1, 0, 0, 1, 0), 1)
	expectDistance(t, KindPad, quarter, NewRay(-1.5, 1.5, 0, 1, 0, 0), 1.5)
	expectDistance(t, KindPad, quarter, NewRay(-0.5, -1.5, 0, 0, 1, 0), inf)

	// Three quarters: the sector is non-convex.
	wide := []float64{0, 0, 1, 2, 0, 270}
	expectDistance(t, KindPad, wide, NewRay(1.5, -3, 0, 0, 1, 0), 3)
	expectDistance(t, KindPad, wide, NewRay(-1.5, -3, 0, 0, 1, 0), 3-math.Sqrt(1.75))
	test.That(t, Contains(Primitive{Kind: KindPad, Params: wide}, r3.Vec{X: 1, Y: -1}), test.ShouldBeFalse)
	test.That(t, Contains(Primitive{Kind: KindPad, Params: wide}, r3.Vec{X: -1, Y: -1}), test.ShouldBeTrue)
}

func TestHalfspaces(t *testing.T) {
	cube := []float64{
		1, 0, 0, 1, -1, 0, 0, 1,
		0, 1, 0, 1, 0, -1, 0, 1,
		0, 0, 1, 1, 0, 0, -1, 1,
	}
	expectDistance(t, KindPoly, cube, NewRay(0, 0, 0, 1, 0, 0), 1)
	expectDistance(t, KindPoly, cube, NewRay(-3, 0, 0, 1, 0, 0), 2)
	expectDistance(t, KindPoly, cube, NewRay(-3, 2, 0, 1, 0, 0), inf)

	outer := []float64{1, 0, 0, -1, -1, 0, 0, -1} // x <= -1 or x >= 1
	expectDistance(t, KindPolyUnion, outer, NewRay(0, 0, 0, 1, 0, 0), 1)
	expectDistance(t, KindPolyUnion, outer, NewRay(2, 0, 0, -1, 0, 0), 1)
	expectDistance(t, KindPolyUnion, outer, NewRay(-2, 0, 0, 1, 0, 0), 1)
	expectDistance(t, KindPolyUnion, outer, NewRay(0, 0, 0, 0, 1, 0), inf)
}

func TestParallelepiped(t *testing.T) {
	box := []float64{0, 0, 0, 1, 2, 3, 90, 90, 90}
	expectDistance(t, KindParallelepiped, box, NewRay(0.5, 1, -1, 0, 0, 1), 1)
	expectDistance(t, KindParallelepiped, box, NewRay(0.5, 1, 1.5, 0, 0, 1), 1.5)
	expectDistance(t, KindParallelepiped, box, NewRay(0.5, 1, 1.5, 1, 0, 0), 0.5)

	// Rhombic base: b leans 60 degrees from a.
	sheared := []float64{0, 0, 0, 1, 1, 1, 90, 90, 60}
	expectDistance(t, KindParallelepiped, sheared, NewRay(0.5, 0.2, -1, 0, 0, 1), 1)
	expectDistance(t, KindParallelepiped, sheared, NewRay(-5, math.Sqrt(3)/4, 0.5, 1, 0, 0), 5.25)

	pp, err := newParallelepiped(sheared)
	test.That(t, err, test.ShouldBeNil)
	corners, err := ppdCorners(sheared)
	test.That(t, err, test.ShouldBeNil)
	centroid := r3.Scale(0.5, r3.Add(corners[0], corners[7]))
	for _, f := range pp {
		test.That(t, halfspace(f[:], centroid), test.ShouldBeLessThan, 0)
	}

	for _, bad := range [][]float64{
		{0, 0, 0, 1, 1, 1, 90, 90, 0},
		{0, 0, 0, 1, 1, 1, 120, 120, 120},
		{0, 0, 0, 1, 0, 1, 90, 90, 90},
	} {
		test.That(t, func() { distance(KindParallelepiped, bad, NewRay(0, 0, 0, 1, 0, 0)) }, test.ShouldPanic)
	}

	// Face planes are derived and checked on every query, strict or not.
	lax := NewSolver(WithStrict(false))
	err = Guard(func() {
		lax.Distance(Primitive{Kind: KindParallelepiped, Params: []float64{0, 0, 0, 1, 1, 1, 120, 120, 120}},
			NewRay(0, 0, 0, 1, 0, 0), 3)
	})
	test.That(t, err, test.ShouldBeError)
	test.That(t, err.Error(), test.ShouldContainSubstring, "do not span space")
	var cerr *ConfigError
	test.That(t, errors.As(err, &cerr), test.ShouldBeTrue)
	test.That(t, cerr.Thread, test.ShouldEqual, 3)
	got := lax.Distance(Primitive{Kind: KindParallelepiped, Params: sheared}, NewRay(0.5, 0.2, -1, 0, 0, 1), 0)
	test.That(t, got, test.ShouldAlmostEqual, 1, 1e-12)
}

func TestInvolute(t *testing.T) {
	p := []float64{0, 0, 1, 1, 3, 0, 90}
	iv := newInvolute(p)
	d := math.Sqrt2 / 2

	// Radially outwards at 45 degrees: enter through r1, then leave through
	// the involute that starts at 0 degrees.
	expectDistance(t, KindInvolute, p, NewRay(0, 0, 0, d, d, 0), 1)
	got := distance(KindInvolute, p, NewRay(1.2*d, 1.2*d, 0, d, d, 0))
	test.That(t, math.IsInf(got, 1), test.ShouldBeFalse)
	q := r3.Vec{X: (1.2 + got) * d, Y: (1.2 + got) * d}
	rho := math.Hypot(q.X, q.Y)
	test.That(t, rho, test.ShouldBeBetween, 1, 3)
	test.That(t, wrapPi(iv.unrolled(r2.Vec{X: q.X, Y: q.Y})), test.ShouldAlmostEqual, 0, 1e-9)
	s := math.Sqrt(rho*rho - 1)
	test.That(t, s-math.Atan(s), test.ShouldAlmostEqual, pi/4, 1e-9)

	// Parallel to the plate's extrusion axis.
	expectDistance(t, KindInvolute, p, NewRay(1.2*d, 1.2*d, 0, 0, 0, 1), inf)
	test.That(t, Contains(Primitive{Kind: KindInvolute, Params: p}, r3.Vec{X: 1.2 * d, Y: 1.2 * d}), test.ShouldBeTrue)
	test.That(t, Contains(Primitive{Kind: KindInvolute, Params: p}, r3.Vec{X: -1.2 * d, Y: 1.2 * d}), test.ShouldBeFalse)
}

// shapes exercises every kind, including arities with optional groups.
var shapes = []Primitive{
	{Kind: KindInf},
	{Kind: KindPlaneX, Params: []float64{0.5}},
	{Kind: KindPlane, Params: []float64{1, 1, 1, 0.3}},
	{Kind: KindPlane, Params: []float64{0, 0, 1, 1, 0, 1, 0, 1, 1.5}},
	{Kind: KindSphere, Params: []float64{0.2, 0, 0, 1.5}},
	{Kind: KindCylY, Params: []float64{0, 0, 1}},
	{Kind: KindCylZ, Params: []float64{0, 0.1, 1, -1, 1}},
	{Kind: KindCylV, Params: []float64{0, 0, 0, 1, 2, 2, 0.8}},
	{Kind: KindCylV, Params: []float64{0, 0, 0, 1, 2, 2, 0.8, -1, 1.5}},
	{Kind: KindConeY, Params: []float64{0, 0, 0, 0.5}},
	{Kind: KindConeZ, Params: []float64{0, 0, 0, 0.5, 1}},
	{Kind: KindCone, Params: []float64{0, 0, -1, 1.5, 2.5}},
	{Kind: KindQuadric, Params: []float64{1, 2, 0.5, 0, 0, 0, 0, 0, 0, -1}},
	{Kind: KindTorusX, Params: []float64{0, 0, 0, 2, 0.5, 0.7}},
	{Kind: KindTorusZ, Params: []float64{0, 0.3, 0, 1.5, 0.6, 0.4}},
	{Kind: KindSquare, Params: []float64{0, 0, 1.5, 0.4}},
	{Kind: KindRect, Params: []float64{-1, 1, -2, 0.5}},
	{Kind: KindCube, Params: []float64{0.1, 0.2, 0.3, 1}},
	{Kind: KindCuboid, Params: []float64{-1, 1, -2, 2, -0.5, 0.5}},
	{Kind: KindHexX, Params: []float64{0, 0, 1.5, 0.3}},
	{Kind: KindHexY, Params: []float64{0, 0, 1.5}},
	{Kind: KindHexXPrism, Params: []float64{0, 0, 1, -1, 1}},
	{Kind: KindHexYPrism, Params: []float64{0.2, 0, 1, -0.5, 1}},
	{Kind: KindOctagon, Params: []float64{0, 0, 1, 1.2}},
	{Kind: KindDodecagon, Params: []float64{0, 0, 1, 1.05}},
	{Kind: KindCross, Params: []float64{0, 0, 2, 0.5, 0.3}},
	{Kind: KindAstroid, Params: []float64{0, 0, 1.5}},
	{Kind: KindPad, Params: []float64{0, 0, 0.5, 2}},
	{Kind: KindPad, Params: []float64{0, 0, 0.5, 2, 30, 300}},
	{Kind: KindParallelepiped, Params: []float64{-0.5, -0.5, -0.5, 1, 1.5, 1, 80, 70, 60}},
	{Kind: KindPoly, Params: []float64{1, 0, 0, 1, -1, 0, 0, 1, 0, 1, 0, 1, 0, -1, 0, 1, 0, 0, 1, 1, 0, 0, -1, 1, 1, 1, 1, 1.5}},
	{Kind: KindPolyUnion, Params: []float64{1, 0, 0, -0.5, 0, 1, 0, -0.5, 0, 0, 1, -0.5}},
	{Kind: KindInvolute, Params: []float64{0, 0, 0.5, 0.6, 2.5, -30, 60}},
	{Kind: KindRCC, Params: []float64{0, 0, -1, 0.3, 0.2, 2, 1}},
	{Kind: KindTRC, Params: []float64{0, 0, -1, 0, 0, 2, 1.5, 0.5}},
}

func randomUnit(rng *rand.Rand) r3.Vec {
	for {
		v := r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
		if n := r3.Norm(v); n > 1e-3 {
			return r3.Scale(1/n, v)
		}
	}
}

func randomPoint(rng *rand.Rand, half float64) r3.Vec {
	return r3.Vec{
		X: (2*rng.Float64() - 1) * half,
		Y: (2*rng.Float64() - 1) * half,
		Z: (2*rng.Float64() - 1) * half,
	}
}

func TestNonNegativeAndBoundaryLanding(t *testing.T) {
	s := NewSolver()
	rng := rand.New(rand.NewSource(1))
	for _, p := range shapes {
		t.Run(p.Kind.String(), func(t *testing.T) {
			hits := 0
			for i := 0; i < 300; i++ {
				r := Ray{Origin: randomPoint(rng, 4), Dir: randomUnit(rng)}
				d := s.Distance(p, r, 0)
				if math.IsInf(d, 1) {
					continue
				}
				hits++
				test.That(t, d, test.ShouldBeGreaterThanOrEqualTo, 0)
				test.That(t, math.IsNaN(d), test.ShouldBeFalse)
				test.That(t, math.Abs(s.Evaluate(p, r.At(d))), test.ShouldBeLessThan, 1e-5)
			}
			if p.Kind != KindInf {
				test.That(t, hits, test.ShouldBeGreaterThan, 0)
			}
		})
	}
}

func TestSimpleRobustAgreement(t *testing.T) {
	robust := NewSolver()
	simple := NewSolver(WithPolicy(PolicySimple))
	rng := rand.New(rand.NewSource(2))
	convex := []Primitive{
		{Kind: KindCuboid, Params: []float64{-1, 1, -2, 2, -0.5, 0.5}},
		{Kind: KindCube, Params: []float64{0.1, 0.2, 0.3, 1}},
		{Kind: KindRect, Params: []float64{-1, 1, -1, 1}},
		{Kind: KindSquare, Params: []float64{0, 0, 1}},
		{Kind: KindHexXPrism, Params: []float64{0, 0, 1, -1, 1}},
		{Kind: KindOctagon, Params: []float64{0, 0, 1, 1.2}},
		{Kind: KindDodecagon, Params: []float64{0, 0, 1, 1.05}},
		{Kind: KindParallelepiped, Params: []float64{-0.5, -0.5, -0.5, 1, 1.5, 1, 80, 70, 60}},
		{Kind: KindPoly, Params: []float64{1, 0, 0, 1, -1, 0, 0, 1, 0, 1, 0, 1, 0, -1, 0, 1, 0, 0, 1, 1, 0, 0, -1, 1, 1, 1, 1, 1.5}},
		{Kind: KindCylZ, Params: []float64{0, 0, 1, -1, 1}},
		{Kind: KindCylV, Params: []float64{0, 0, 0, 1, 1, 1, 1, -1, 1}},
		{Kind: KindRCC, Params: []float64{0, 0, -1, 0.3, 0.2, 2, 1}},
		{Kind: KindTRC, Params: []float64{0, 0, -1, 0, 0, 2, 1.5, 0.5}},
		{Kind: KindCone, Params: []float64{0, 0, -1, 1.5, 2.5}},
	}
	for _, p := range convex {
		for _, inside := range []bool{true, false} {
			name := p.Kind.String() + "/outside"
			if inside {
				name = p.Kind.String() + "/inside"
			}
			t.Run(name, func(t *testing.T) {
				hits := 0
				for i := 0; i < 1000; i++ {
					var origin r3.Vec
					for {
						origin = randomPoint(rng, 3)
						if robust.Contains(p, origin) == inside {
							break
						}
					}
					r := Ray{Origin: origin, Dir: randomUnit(rng)}
					dr := robust.Distance(p, r, 0)
					ds := simple.Distance(p, r, 0)
					if math.IsInf(ds, 1) {
						test.That(t, math.IsInf(dr, 1), test.ShouldBeTrue)
						continue
					}
					hits++
					test.That(t, dr, test.ShouldAlmostEqual, ds, 1e-9)
					test.That(t, math.Abs(simple.Evaluate(p, r.At(ds))), test.ShouldBeLessThan, 1e-6)
				}
				test.That(t, hits, test.ShouldBeGreaterThan, 0)
			})
		}
	}
}

func TestSimpleSkipsExtendedFaces(t *testing.T) {
	simple := NewSolver(WithPolicy(PolicySimple))
	box := Primitive{Kind: KindCuboid, Params: []float64{-1, 1, -1, 1, -1, 1}}
	// The plane x = -1 is crossed at (-1, 3, 0), above the box.
	d := simple.Distance(box, NewRay(-5, 3, 0, 1, 0, 0), 0)
	test.That(t, math.IsInf(d, 1), test.ShouldBeTrue)
	// Entering through x = -1 after skipping y = -1 at (-3, -1, 0).
	d = simple.Distance(box, Ray{Origin: r3.Vec{X: -5, Y: -2}, Dir: r3.Unit(r3.Vec{X: 1, Y: 0.5})}, 0)
	test.That(t, d, test.ShouldAlmostEqual, 4*math.Sqrt(1.25), 1e-12)
}

func TestCandidateBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, p := range shapes {
		h := &handlers[p.Kind]
		for i := 0; i < 200; i++ {
			var c candidates
			h.hits(p.Params, Ray{Origin: randomPoint(rng, 4), Dir: randomUnit(rng)}, &c)
			test.That(t, c.n, test.ShouldBeLessThanOrEqualTo, h.bound)
		}
	}
}
