package raydist

import (
	"github.com/soypat/raydist/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// handler implements one primitive kind.
type handler struct {
	// arity lists the accepted parameter counts. When nil, variadic decides.
	arity    []int
	variadic func(n int) bool
	// bound is the largest number of candidates hits may push.
	bound int
	// single reports whether the arity describes a single surface whose
	// nearest root is the answer. Nil means the kind is always composite.
	single func(n int) bool
	hits   func(p []float64, r Ray, c *candidates)
	eval   func(p []float64, q r3.Vec) float64
	check  func(p []float64) error

	// derived validates coefficients computed from the parameters. Unlike
	// check it runs on every query.
	derived func(p []float64) error
}

func (h *handler) accepts(n int) bool {
	if h.variadic != nil {
		return h.variadic(n)
	}
	for _, a := range h.arity {
		if a == n {
			return true
		}
	}
	return false
}

func (h *handler) isSingle(n int) bool {
	return h.single != nil && h.single(n)
}

func always(int) bool { return true }

func arityIs(want int) func(int) bool {
	return func(n int) bool { return n == want }
}

func noCheck([]float64) error { return nil }

// handlers is indexed by Kind and read only after initialization.
var handlers [kindMax]handler

func init() {
	handlers = [kindMax]handler{
		KindInf: {
			arity: []int{0}, single: always,
			hits: func([]float64, Ray, *candidates) {},
			eval: func([]float64, r3.Vec) float64 { return -inf },
		},
		KindPlaneX: {
			arity: []int{1}, bound: 1, single: always,
			hits: func(p []float64, r Ray, c *candidates) { axisPlane(r.Origin.X, r.Dir.X, p[0], c) },
			eval: func(p []float64, q r3.Vec) float64 { return q.X - p[0] },
		},
		KindPlaneY: {
			arity: []int{1}, bound: 1, single: always,
			hits: func(p []float64, r Ray, c *candidates) { axisPlane(r.Origin.Y, r.Dir.Y, p[0], c) },
			eval: func(p []float64, q r3.Vec) float64 { return q.Y - p[0] },
		},
		KindPlaneZ: {
			arity: []int{1}, bound: 1, single: always,
			hits: func(p []float64, r Ray, c *candidates) { axisPlane(r.Origin.Z, r.Dir.Z, p[0], c) },
			eval: func(p []float64, q r3.Vec) float64 { return q.Z - p[0] },
		},
		KindPlane: {
			arity: []int{4, 9}, bound: 1, single: always,
			hits: func(p []float64, r Ray, c *candidates) { c.push(planeDistance(p, r)) },
			eval: planeEval, check: checkPlane, derived: checkThreePointPlane,
		},
		KindSphere: {
			arity: []int{4}, bound: 2, single: always,
			hits: func(p []float64, r Ray, c *candidates) {
				sphere(r3.Vec{X: p[0], Y: p[1], Z: p[2]}, p[3], r, c)
			},
			eval: func(p []float64, q r3.Vec) float64 {
				return r3.Norm(r3.Sub(q, r3.Vec{X: p[0], Y: p[1], Z: p[2]})) - p[3]
			},
			check: func(p []float64) error { return checkPositive("r", p[3]) },
		},
		KindCylX: axisCylinder(0),
		KindCylY: axisCylinder(1),
		KindCylZ: axisCylinder(2),
		KindCylV: {
			arity: []int{7, 9}, bound: 4, single: arityIs(7),
			hits: cylvHits, eval: cylvEval, check: checkCylv,
		},
		KindConeX: axisCone(0),
		KindConeY: axisCone(1),
		KindConeZ: axisCone(2),
		KindCone: {
			arity: []int{5}, bound: 4,
			hits:  func(p []float64, r Ray, c *candidates) { zCone(p).hits(r, c) },
			eval:  func(p []float64, q r3.Vec) float64 { return zCone(p).eval(q) },
			check: checkZCone,
		},
		KindQuadric: {
			arity: []int{10}, bound: 2, single: always,
			hits: func(p []float64, r Ray, c *candidates) {
				n, m, l := quadricCoefficients(p, r)
				quadratic(n, m, l, c)
			},
			eval: quadricEval,
		},
		KindTorusX: torusKind(0),
		KindTorusY: torusKind(1),
		KindTorusZ: torusKind(2),
		KindSquare: filletedKind(squareFaces, 12),
		KindRect: {
			arity: []int{4}, bound: 4,
			hits: rectHits, eval: rectEval, check: checkRect,
		},
		KindCube: {
			arity: []int{4}, bound: 6,
			hits: cubeHits, eval: cubeEval,
			check: func(p []float64) error { return checkPositive("r", p[3]) },
		},
		KindCuboid: {
			arity: []int{6}, bound: 6,
			hits: cuboidHits, eval: cuboidEval, check: checkCuboid,
		},
		KindHexX:      filletedKind(hexXFaces, 18),
		KindHexY:      filletedKind(hexYFaces, 18),
		KindHexXPrism: trimmedPolygonKind(hexXFaces),
		KindHexYPrism: trimmedPolygonKind(hexYFaces),
		KindOctagon:   alternatingKind(octagonFaces),
		KindDodecagon: alternatingKind(dodecagonFaces),
		KindCross: {
			arity: []int{4, 5}, bound: 16,
			hits: crossHits, eval: crossEval, check: checkCross,
		},
		KindAstroid: {
			arity: []int{3}, bound: 12,
			hits: astroidHits, eval: astroidEval,
			check: func(p []float64) error { return checkPositive("r", p[2]) },
		},
		KindPad: {
			arity: []int{4, 6}, bound: 6,
			hits: padHits, eval: padEval, check: checkPad,
		},
		KindParallelepiped: {
			arity: []int{9}, bound: 6,
			hits: ppdHits, eval: ppdEval, check: checkParallelepiped,
			derived: func(p []float64) error {
				_, err := newParallelepiped(p)
				return err
			},
		},
		KindPoly: {
			variadic: halfspaceArity, bound: maxHalfspaces,
			hits: halfspacesHits, eval: polyEval, check: checkHalfspaces,
		},
		KindPolyUnion: {
			variadic: halfspaceArity, bound: maxHalfspaces,
			hits: halfspacesHits, eval: polyUnionEval, check: checkHalfspaces,
		},
		KindInvolute: {
			arity: []int{7}, bound: 4 + 2*2*involuteMaxRoots,
			hits: involuteHits, eval: involuteEval, check: checkInvolute,
		},
		KindRCC: macroConeKind(7),
		KindTRC: macroConeKind(8),
		// Candidates and membership of user kinds come from the Solver's
		// registry; the entry only carries arity and bound.
		KindUser: {
			variadic: func(n int) bool { return n >= 1 }, bound: maxCandidates,
		},
	}
	for k := range handlers {
		if handlers[k].check == nil {
			handlers[k].check = noCheck
		}
	}
}

func axisCylinder(axis int) handler {
	return handler{
		arity: []int{3, 5}, bound: 4, single: arityIs(3),
		hits: axisCylHits(axis), eval: axisCylEval(axis), check: checkAxisCyl,
	}
}

// Both nappes of a cone are one quadric surface, so cones are single
// surfaces with either arity.
func axisCone(axis int) handler {
	return handler{
		arity: []int{4, 5}, bound: 2, single: always,
		hits: axisConeHits(axis), eval: axisConeEval(axis), check: checkAxisCone,
	}
}

func torusKind(axis int) handler {
	return handler{
		arity: []int{6}, bound: 4, single: always,
		hits: func(p []float64, r Ray, c *candidates) {
			torusFromParams(p, axis).hits(permuteRay(r, axis), c)
		},
		eval: func(p []float64, q r3.Vec) float64 {
			return torusFromParams(p, axis).eval(d3.Permute(q, axis))
		},
		check: checkTorus,
	}
}

func filletedKind(faces *faceTable, bound int) handler {
	return handler{
		arity: []int{3, 4}, bound: bound,
		hits: func(p []float64, r Ray, c *candidates) {
			pg := filleted(p, faces)
			pg.hits(r, c)
		},
		eval: func(p []float64, q r3.Vec) float64 {
			pg := filleted(p, faces)
			return pg.eval(q)
		},
		check: checkFilleted,
	}
}

func trimmedPolygonKind(faces *faceTable) handler {
	return handler{
		arity: []int{5}, bound: faces.n + 2,
		hits: func(p []float64, r Ray, c *candidates) {
			trimmedPolygonHits(p, faces, r, c)
		},
		eval: func(p []float64, q r3.Vec) float64 {
			return trimmedPolygonEval(p, faces, q)
		},
		check: checkTrimmedPolygon,
	}
}

func alternatingKind(faces *faceTable) handler {
	return handler{
		arity: []int{4}, bound: faces.n,
		hits: func(p []float64, r Ray, c *candidates) {
			pg := alternatingPolygon(p[0], p[1], faces, p[2], p[3])
			pg.hits(r, c)
		},
		eval: func(p []float64, q r3.Vec) float64 {
			pg := alternatingPolygon(p[0], p[1], faces, p[2], p[3])
			return pg.eval(q)
		},
		check: checkAlternating,
	}
}

func macroConeKind(arity int) handler {
	return handler{
		arity: []int{arity}, bound: 4,
		hits:  func(p []float64, r Ray, c *candidates) { macroCone(p).hits(r, c) },
		eval:  func(p []float64, q r3.Vec) float64 { return macroCone(p).eval(q) },
		check: checkMacroCone,
	}
}
