package raydist

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ray is a half line starting at Origin and heading along the unit vector Dir.
// Distances returned by the solvers are measured along Dir from Origin.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// NewRay returns the ray starting at (x, y, z) with direction cosines (u, v, w).
func NewRay(x, y, z, u, v, w float64) Ray {
	return Ray{Origin: r3.Vec{X: x, Y: y, Z: z}, Dir: r3.Vec{X: u, Y: v, Z: w}}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Dir))
}

// unit reports whether the ray direction has unit norm within unitTolerance.
func (r Ray) unit() bool {
	return math.Abs(r3.Norm(r.Dir)-1) <= unitTolerance
}

// Primitive describes one surface: its kind, its positional parameters and
// an optional transform from world coordinates to the frame in which the
// parameters are expressed. The Params layout is fixed per Kind.
type Primitive struct {
	Kind      Kind
	Params    []float64
	Transform *Transform
}

// local returns the ray expressed in the primitive's frame.
func (p Primitive) local(r Ray) Ray {
	if p.Transform == nil {
		return r
	}
	return p.Transform.Ray(r)
}

// localPoint returns point q expressed in the primitive's frame.
func (p Primitive) localPoint(q r3.Vec) r3.Vec {
	if p.Transform == nil {
		return q
	}
	return p.Transform.Point(q)
}
