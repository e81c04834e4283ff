/*
Package raydist computes the distance along a ray to the next boundary of a
constructive solid geometry primitive.

A Primitive is a Kind tag, a positional parameter list whose layout is fixed
per Kind, and an optional rigid Transform from world coordinates to the frame
the parameters are written in. Solver.Distance returns the distance from the
ray origin to the first boundary crossing, or +Inf when the ray never
crosses the primitive again:

	s := raydist.NewSolver()
	p := raydist.Primitive{Kind: raydist.KindCylZ, Params: []float64{0, 0, 1, -2, 3}}
	d := s.Distance(p, raydist.NewRay(0.2, 0, 0, 0, 0, 1), 0) // 3

Single surfaces (planes, spheres, cylinders, cones, quadrics, tori) return
the nearest non-negative root of their ray equation. Composite kinds push
the roots of every elementary surface bounding them and, under the default
PolicyRobust, return the first one across which membership changes.
PolicySimple returns the nearest root lying on the boundary instead, which
is exact for convex kinds and needs no membership probes.

Malformed primitives are programming errors. The Solver logs them and
panics with a *ConfigError; Guard, DistanceErr and SolveBatch turn that
panic back into an error.

The flat call form Solve mirrors the tag and parameter-array interface used
by geometry files.
*/
package raydist
