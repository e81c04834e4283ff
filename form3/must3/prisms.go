package must3

import (
	"github.com/soypat/raydist"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cuboid returns the axis aligned box spanning min to max.
func Cuboid(min, max r3.Vec) raydist.Primitive {
	if min.X >= max.X || min.Y >= max.Y || min.Z >= max.Z {
		panic("min >= max")
	}
	return prim(raydist.KindCuboid, min.X, max.X, min.Y, max.Y, min.Z, max.Z)
}

// Cube returns the cube centred at center with half width h.
func Cube(center r3.Vec, h float64) raydist.Primitive {
	if h <= 0 {
		panic("h <= 0")
	}
	return prim(raydist.KindCube, center.X, center.Y, center.Z, h)
}

// Rect returns the z prism of rectangular section [x1, x2]×[y1, y2].
func Rect(x1, x2, y1, y2 float64) raydist.Primitive {
	if x1 >= x2 || y1 >= y2 {
		panic("min >= max")
	}
	return prim(raydist.KindRect, x1, x2, y1, y2)
}

// Square returns the z prism of square section with half width h and
// corners rounded by round.
func Square(x0, y0, h, round float64) raydist.Primitive {
	return filleted(raydist.KindSquare, x0, y0, h, round)
}

// Hexagon returns a z prism of hexagonal section with apothem h. The flats
// are normal to the x axis if flatX is true, to the y axis otherwise.
func Hexagon(x0, y0, h, round float64, flatX bool) raydist.Primitive {
	k := raydist.KindHexY
	if flatX {
		k = raydist.KindHexX
	}
	return filleted(k, x0, y0, h, round)
}

// HexPrism is Hexagon trimmed to z1 <= z <= z2, without rounding.
func HexPrism(x0, y0, h, z1, z2 float64, flatX bool) raydist.Primitive {
	if h <= 0 {
		panic("h <= 0")
	}
	if z1 >= z2 {
		panic("z1 >= z2")
	}
	k := raydist.KindHexYPrism
	if flatX {
		k = raydist.KindHexXPrism
	}
	return prim(k, x0, y0, h, z1, z2)
}

// Octagon returns a z prism with axis flats at r1 and diagonal flats at r2.
func Octagon(x0, y0, r1, r2 float64) raydist.Primitive {
	if r1 <= 0 || r2 <= 0 {
		panic("apothem <= 0")
	}
	return prim(raydist.KindOctagon, x0, y0, r1, r2)
}

// Dodecagon returns a z prism with alternating apothems r1 and r2.
func Dodecagon(x0, y0, r1, r2 float64) raydist.Primitive {
	if r1 <= 0 || r2 <= 0 {
		panic("apothem <= 0")
	}
	return prim(raydist.KindDodecagon, x0, y0, r1, r2)
}

// Cross returns the plus shaped z prism with arm half length r, arm half
// width d and inner corners rounded by round.
func Cross(x0, y0, r, d, round float64) raydist.Primitive {
	if d <= 0 || d >= r {
		panic("arm width out of range")
	}
	if round < 0 || d+round > r {
		panic("round out of range")
	}
	if round == 0 {
		return prim(raydist.KindCross, x0, y0, r, d)
	}
	return prim(raydist.KindCross, x0, y0, r, d, round)
}

// Astroid returns the astroid z prism of half width r.
func Astroid(x0, y0, r float64) raydist.Primitive {
	if r <= 0 {
		panic("r <= 0")
	}
	return prim(raydist.KindAstroid, x0, y0, r)
}

// Pad returns the annular z prism between radii r1 and r2.
func Pad(x0, y0, r1, r2 float64) raydist.Primitive {
	if r1 < 0 || r1 >= r2 {
		panic("radii must satisfy 0 <= r1 < r2")
	}
	return prim(raydist.KindPad, x0, y0, r1, r2)
}

// PadSector is Pad restricted to the counterclockwise sector from theta1 to
// theta2 degrees.
func PadSector(x0, y0, r1, r2, theta1, theta2 float64) raydist.Primitive {
	if theta1 >= theta2 || theta2-theta1 > 360 {
		panic("sector angles out of range")
	}
	p := Pad(x0, y0, r1, r2)
	return prim(raydist.KindPad, append(p.Params, theta1, theta2)...)
}

// Parallelepiped returns the parallelepiped with corner at corner, edge
// lengths a, b and c, and inter-edge angles alpha (b, c), beta (a, c) and
// gamma (a, b) in degrees.
func Parallelepiped(corner r3.Vec, a, b, c, alpha, beta, gamma float64) raydist.Primitive {
	if a <= 0 || b <= 0 || c <= 0 {
		panic("edge length <= 0")
	}
	return prim(raydist.KindParallelepiped, corner.X, corner.Y, corner.Z, a, b, c, alpha, beta, gamma)
}

func filleted(k raydist.Kind, x0, y0, h, round float64) raydist.Primitive {
	if h <= 0 {
		panic("h <= 0")
	}
	if round < 0 {
		panic("round < 0")
	}
	if round > h {
		panic("round > h")
	}
	if round == 0 {
		return prim(k, x0, y0, h)
	}
	return prim(k, x0, y0, h, round)
}
