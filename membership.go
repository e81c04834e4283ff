package raydist

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Membership reports whether the world point q lies inside primitive p.
// Implementations must be safe for concurrent use.
type Membership interface {
	Inside(p Primitive, q r3.Vec) bool
}

// MembershipFunc adapts a function to the Membership interface.
type MembershipFunc func(p Primitive, q r3.Vec) bool

// Inside calls f(p, q).
func (f MembershipFunc) Inside(p Primitive, q r3.Vec) bool { return f(p, q) }

// inside uses the configured Membership, falling back to the sign of the
// implicit function.
func (s *Solver) inside(p Primitive, q r3.Vec, thread int) bool {
	if s.membership != nil {
		return s.membership.Inside(p, q)
	}
	return s.evaluate(p, q, thread) < 0
}

// Evaluate returns the implicit function of p at the world point q: negative
// inside, positive outside and zero on the boundary. Near the boundary the
// value approximates the distance to it; away from it only the sign is
// meaningful.
func (s *Solver) Evaluate(p Primitive, q r3.Vec) float64 {
	s.checkDerived(s.handler(p, 0), p, 0)
	return s.evaluate(p, q, 0)
}

// evaluate is Evaluate for a primitive already accepted by the handler
// table, reporting errors against thread.
func (s *Solver) evaluate(p Primitive, q r3.Vec, thread int) float64 {
	h := s.handler(p, thread)
	q = p.localPoint(q)
	if p.Kind == KindUser {
		u, ok := s.users[userID(p.Params)]
		if !ok {
			s.die(p, thread, "no user surface registered")
		}
		return u.Evaluate(p.Params[1:], q)
	}
	return h.eval(p.Params, q)
}

// Contains reports whether the world point q lies inside p.
func (s *Solver) Contains(p Primitive, q r3.Vec) bool {
	return s.Evaluate(p, q) < 0
}

// Evaluate is Solver.Evaluate on the default solver.
func Evaluate(p Primitive, q r3.Vec) float64 {
	return defaultSolver.Evaluate(p, q)
}

// Contains is Solver.Contains on the default solver.
func Contains(p Primitive, q r3.Vec) bool {
	return defaultSolver.Contains(p, q)
}
