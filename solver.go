package raydist

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Policy selects how the distance is chosen among the candidate crossings of
// a composite primitive.
type Policy uint8

const (
	// PolicyRobust sorts the candidates and returns the first one across
	// which membership changes. It is correct for non-convex shapes.
	PolicyRobust Policy = iota
	// PolicySimple returns the nearest candidate lying on the boundary,
	// skipping crossings of extended faces outside the primitive. It needs
	// no membership probes and is exact for convex composites.
	PolicySimple
)

func (p Policy) String() string {
	switch p {
	case PolicyRobust:
		return "robust"
	case PolicySimple:
		return "simple"
	}
	return fmt.Sprintf("Policy(%d)", p)
}

// ParsePolicy parses "robust" or "simple".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "robust", "":
		return PolicyRobust, nil
	case "simple":
		return PolicySimple, nil
	}
	return 0, errors.Errorf("unknown policy %q", s)
}

// Solver computes ray distances to primitive boundaries. A Solver is
// immutable once built and safe for concurrent use.
type Solver struct {
	policy     Policy
	extrap     float64
	membership Membership
	users      map[int]UserSurface
	strict     bool
	logger     *zap.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithPolicy sets the candidate selection policy. The default is PolicyRobust.
func WithPolicy(p Policy) Option {
	return func(s *Solver) { s.policy = p }
}

// WithExtrapolation sets the distance a ray is advanced past a candidate
// before membership is evaluated. Defaults to DefaultExtrapolation.
func WithExtrapolation(d float64) Option {
	return func(s *Solver) { s.extrap = d }
}

// WithMembership replaces the built-in membership test used by PolicyRobust.
// PolicySimple always uses Evaluate.
func WithMembership(m Membership) Option {
	return func(s *Solver) { s.membership = m }
}

// WithUserSurface registers the surface answering KindUser primitives whose
// first parameter is id.
func WithUserSurface(id int, u UserSurface) Option {
	return func(s *Solver) {
		if s.users == nil {
			s.users = make(map[int]UserSurface)
		}
		s.users[id] = u
	}
}

// WithStrict enables or disables parameter validation on every query.
// Strict mode is on by default. Coefficients derived from parameters, such
// as three point planes and parallelepiped faces, are validated either way.
func WithStrict(strict bool) Option {
	return func(s *Solver) { s.strict = strict }
}

// WithLogger sets the logger configuration errors are reported to. A nil
// logger disables logging, which is the default.
func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// NewSolver returns a Solver configured by opts.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		policy: PolicyRobust,
		extrap: DefaultExtrapolation,
		strict: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if !(s.extrap > 0) {
		panic(fmt.Sprintf("raydist: extrapolation length must be positive, got %g", s.extrap))
	}
	return s
}

// ConfigError reports malformed primitive input. The Solver panics with a
// ConfigError wrapped with a stack trace: malformed geometry is a programming
// error in the stage that built it.
type ConfigError struct {
	Kind   Kind
	Params []float64
	Thread int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("raydist: %s primitive %v (thread %d): %s", e.Kind, e.Params, e.Thread, e.Reason)
}

// die logs the configuration error and panics with it.
func (s *Solver) die(p Primitive, thread int, reason string) {
	err := &ConfigError{Kind: p.Kind, Params: p.Params, Thread: thread, Reason: reason}
	s.logger.Error("invalid primitive",
		zap.Stringer("kind", p.Kind),
		zap.Float64s("params", p.Params),
		zap.Int("thread", thread),
		zap.String("reason", reason),
	)
	panic(errors.WithStack(err))
}

// handler returns the handler for p, dying on an unknown kind or arity.
func (s *Solver) handler(p Primitive, thread int) *handler {
	if !p.Kind.Valid() {
		s.die(p, thread, "unknown primitive kind")
	}
	h := &handlers[p.Kind]
	if !h.accepts(len(p.Params)) {
		s.die(p, thread, fmt.Sprintf("parameter count %d not accepted", len(p.Params)))
	}
	return h
}

// Distance returns the distance along r to the next boundary of p, or +Inf
// if the ray never crosses it. The thread identifies the calling worker in
// error reports only. Malformed primitives cause a panic with a
// *ConfigError; see Solver.
func (s *Solver) Distance(p Primitive, r Ray, thread int) float64 {
	h := s.handler(p, thread)
	if s.strict {
		if err := s.validate(h, p); err != nil {
			s.die(p, thread, err.Error())
		}
		if !r.unit() {
			s.die(p, thread, fmt.Sprintf("ray direction %v is not a unit vector", r.Dir))
		}
	} else {
		// h.check covers h.derived in strict mode.
		s.checkDerived(h, p, thread)
	}
	local := p.local(r)
	var c candidates
	if p.Kind == KindUser {
		s.userHits(p, local, &c, thread)
	} else {
		h.hits(p.Params, local, &c)
	}
	if c.n > h.bound {
		panic(fmt.Sprintf("raydist: %s produced %d candidates, bound is %d", p.Kind, c.n, h.bound))
	}
	switch {
	case h.isSingle(len(p.Params)):
		return c.min()
	case s.policy == PolicySimple:
		return s.nearestOnBoundary(p, r, &c, thread)
	}
	return s.disambiguate(p, r, &c, thread)
}

// checkDerived dies if coefficients derived from p's parameters fail their
// consistency checks.
func (s *Solver) checkDerived(h *handler, p Primitive, thread int) {
	if h.derived == nil {
		return
	}
	if err := h.derived(p.Params); err != nil {
		s.die(p, thread, err.Error())
	}
}

func (s *Solver) validate(h *handler, p Primitive) error {
	if p.Transform != nil && !p.Transform.IsRigid(unitTolerance) {
		return errors.New("transform is not rigid")
	}
	if p.Kind == KindUser {
		if _, ok := s.users[userID(p.Params)]; !ok {
			return errors.Errorf("no user surface registered with id %g", p.Params[0])
		}
		return nil
	}
	return h.check(p.Params)
}

// Validate checks p for the errors the Solver dies on: an unknown kind, an
// unaccepted parameter count, invalid parameters or a non-rigid transform.
// KindUser primitives are only checked for arity.
func (p Primitive) Validate() error {
	if !p.Kind.Valid() {
		return errors.Errorf("unknown primitive kind %d", p.Kind)
	}
	h := &handlers[p.Kind]
	if !h.accepts(len(p.Params)) {
		return errors.Errorf("%s: parameter count %d not accepted", p.Kind, len(p.Params))
	}
	if p.Transform != nil && !p.Transform.IsRigid(unitTolerance) {
		return errors.Errorf("%s: transform is not rigid", p.Kind)
	}
	return errors.Wrap(h.check(p.Params), p.Kind.String())
}

var defaultSolver = NewSolver()

// Solve is the flat call form of Solver.Distance using a strict solver with
// the robust policy: the primitive of the given kind and params against the
// ray from (x, y, z) with direction cosines (u, v, w).
func Solve(kind Kind, params []float64, x, y, z, u, v, w float64, thread int) float64 {
	return defaultSolver.Distance(Primitive{Kind: kind, Params: params}, NewRay(x, y, z, u, v, w), thread)
}
