package raydist

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// landingTolerance bounds |Evaluate| at a candidate accepted as lying on the
// boundary, relative to the magnitude of the point.
const landingTolerance = 1e-7

// disambiguate returns the first candidate across which membership of the
// world ray r changes with respect to its origin, or +Inf if none does.
// Each candidate is probed at the extrapolation length past it.
func (s *Solver) disambiguate(p Primitive, r Ray, c *candidates, thread int) float64 {
	if c.n == 0 {
		return inf
	}
	c.sort()
	in0 := s.inside(p, r.Origin, thread)
	prev := -inf
	for _, t := range c.t[:c.n] {
		if t == prev {
			continue
		}
		prev = t
		if s.inside(p, r.At(t+s.extrap), thread) != in0 {
			return t
		}
	}
	return inf
}

// nearestOnBoundary returns the smallest candidate whose point is on the
// boundary of p, or +Inf if none is. Crossings of a face's plane or
// surface outside the face are skipped.
func (s *Solver) nearestOnBoundary(p Primitive, r Ray, c *candidates, thread int) float64 {
	c.sort()
	for _, t := range c.t[:c.n] {
		q := r.At(t)
		if math.Abs(s.evaluate(p, q, thread)) <= landingTolerance*(1+r3.Norm(q)) {
			return t
		}
	}
	return inf
}
