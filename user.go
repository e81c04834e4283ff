package raydist

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// UserSurface implements a KindUser primitive. The Params of a KindUser
// primitive are an integer id selecting the registered UserSurface
// followed by the surface's own parameters, which are what the methods
// receive. Rays and points are in the primitive's local frame.
//
// Implementations must be safe for concurrent use and must not retain dst.
type UserSurface interface {
	// Candidates appends to dst every non-negative distance at which r may
	// cross the surface and returns the extended slice.
	Candidates(params []float64, r Ray, dst []float64) []float64
	// Evaluate returns a value that is negative inside the surface,
	// positive outside and close to the distance from it nearby.
	Evaluate(params []float64, q r3.Vec) float64
}

func userID(params []float64) int {
	return int(math.Round(params[0]))
}

func (s *Solver) userHits(p Primitive, local Ray, c *candidates, thread int) {
	u, ok := s.users[userID(p.Params)]
	if !ok {
		s.die(p, thread, "no user surface registered")
	}
	var buf [maxCandidates]float64
	got := u.Candidates(p.Params[1:], local, buf[:0])
	if len(got) > maxCandidates {
		s.die(p, thread, fmt.Sprintf("user surface returned %d candidates, at most %d allowed", len(got), maxCandidates))
	}
	for _, t := range got {
		c.push(t)
	}
}
