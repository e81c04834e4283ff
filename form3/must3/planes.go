package must3

import (
	"github.com/soypat/raydist"
	"gonum.org/v1/gonum/spatial/r3"
)

// Halfspace is n·x <= d.
type Halfspace struct {
	N r3.Vec
	D float64
}

// Plane returns the plane n·x = d. Inside is the side opposite to n.
func Plane(n r3.Vec, d float64) raydist.Primitive {
	if n == (r3.Vec{}) {
		panic("zero normal")
	}
	return prim(raydist.KindPlane, n.X, n.Y, n.Z, d)
}

// PlaneFromPoints returns the plane through three non-collinear points.
// Its normal follows the right hand rule over p1, p2, p3.
func PlaneFromPoints(p1, p2, p3 r3.Vec) raydist.Primitive {
	return prim(raydist.KindPlane, p1.X, p1.Y, p1.Z, p2.X, p2.Y, p2.Z, p3.X, p3.Y, p3.Z)
}

// AxisPlane returns the plane normal to axis at offset.
func AxisPlane(axis raydist.Axis, offset float64) raydist.Primitive {
	k := [3]raydist.Kind{raydist.KindPlaneX, raydist.KindPlaneY, raydist.KindPlaneZ}[axisIndex(axis)]
	return prim(k, offset)
}

// Poly returns the intersection of the half-spaces.
func Poly(hs ...Halfspace) raydist.Primitive {
	return prim(raydist.KindPoly, flatten(hs)...)
}

// PolyUnion returns the union of the half-spaces.
func PolyUnion(hs ...Halfspace) raydist.Primitive {
	return prim(raydist.KindPolyUnion, flatten(hs)...)
}

// Quadric returns the surface Ax²+By²+Cz²+Dxy+Eyz+Fzx+Gx+Hy+Jz+K = 0.
func Quadric(coef [10]float64) raydist.Primitive {
	return prim(raydist.KindQuadric, coef[:]...)
}

func flatten(hs []Halfspace) []float64 {
	if len(hs) == 0 {
		panic("no half-spaces")
	}
	p := make([]float64, 0, 4*len(hs))
	for _, h := range hs {
		p = append(p, h.N.X, h.N.Y, h.N.Z, h.D)
	}
	return p
}
