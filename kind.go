package raydist

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind identifies a primitive surface type. Kind values and the parameter
// layout of each kind are part of the geometry file format and must never
// be renumbered.
type Kind uint8

// Primitive kinds. Parameter layouts are listed as comments, optional
// trailing groups are in brackets. Angles are in degrees.
const (
	KindUndefined      Kind = iota
	KindInf                 // no parameters
	KindPlaneX              // x0
	KindPlaneY              // y0
	KindPlaneZ              // z0
	KindPlane               // A B C D | x1 y1 z1 x2 y2 z2 x3 y3 z3
	KindSphere              // x0 y0 z0 r
	KindCylX                // y0 z0 r [x1 x2]
	KindCylY                // x0 z0 r [y1 y2]
	KindCylZ                // x0 y0 r [z1 z2]
	KindCylV                // x0 y0 z0 u v w r [t1 t2]
	KindConeX               // x0 y0 z0 k2 [s]
	KindConeY               // x0 y0 z0 k2 [s]
	KindConeZ               // x0 y0 z0 k2 [s]
	KindCone                // x0 y0 z0 r h
	KindQuadric             // A B C D E F G H J K
	KindTorusX              // x0 y0 z0 R a b
	KindTorusY              // x0 y0 z0 R a b
	KindTorusZ              // x0 y0 z0 R a b
	KindSquare              // x0 y0 r [rf]
	KindRect                // x1 x2 y1 y2
	KindCube                // x0 y0 z0 r
	KindCuboid              // x1 x2 y1 y2 z1 z2
	KindHexX                // x0 y0 r [rf]
	KindHexY                // x0 y0 r [rf]
	KindHexXPrism           // x0 y0 r z1 z2
	KindHexYPrism           // x0 y0 r z1 z2
	KindOctagon             // x0 y0 r1 r2
	KindDodecagon           // x0 y0 r1 r2
	KindCross               // x0 y0 r d [rf]
	KindAstroid             // x0 y0 r
	KindPad                 // x0 y0 r1 r2 [theta1 theta2]
	KindParallelepiped      // x0 y0 z0 a b c alpha beta gamma
	KindPoly                // A1 B1 C1 D1 ... An Bn Cn Dn
	KindPolyUnion           // A1 B1 C1 D1 ... An Bn Cn Dn
	KindInvolute            // x0 y0 r0 r1 r2 theta1 theta2
	KindRCC                 // x0 y0 z0 hx hy hz r
	KindTRC                 // x0 y0 z0 hx hy hz r1 r2
	KindUser                // id p1 ... pn
	kindMax
)

var kindNames = [kindMax]string{
	KindUndefined:      "undefined",
	KindInf:            "inf",
	KindPlaneX:         "px",
	KindPlaneY:         "py",
	KindPlaneZ:         "pz",
	KindPlane:          "plane",
	KindSphere:         "sph",
	KindCylX:           "cylx",
	KindCylY:           "cyly",
	KindCylZ:           "cylz",
	KindCylV:           "cylv",
	KindConeX:          "ckx",
	KindConeY:          "cky",
	KindConeZ:          "ckz",
	KindCone:           "cone",
	KindQuadric:        "quadratic",
	KindTorusX:         "torx",
	KindTorusY:         "tory",
	KindTorusZ:         "torz",
	KindSquare:         "sqc",
	KindRect:           "rect",
	KindCube:           "cube",
	KindCuboid:         "cuboid",
	KindHexX:           "hexxc",
	KindHexY:           "hexyc",
	KindHexXPrism:      "hexxprism",
	KindHexYPrism:      "hexyprism",
	KindOctagon:        "octa",
	KindDodecagon:      "dode",
	KindCross:          "cross",
	KindAstroid:        "astro",
	KindPad:            "pad",
	KindParallelepiped: "ppd",
	KindPoly:           "poly",
	KindPolyUnion:      "polyunion",
	KindInvolute:       "inv",
	KindRCC:            "rcc",
	KindTRC:            "trc",
	KindUser:           "usr",
}

func (k Kind) String() string {
	if k >= kindMax {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Valid reports whether k names a supported primitive kind.
func (k Kind) Valid() bool { return k > KindUndefined && k < kindMax }

// ParseKind accepts either a kind name as used in geometry files ("cylz")
// or its numeric tag ("9").
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		k := Kind(n)
		if n < 0 || n > 255 || !k.Valid() {
			return KindUndefined, errors.Errorf("unknown primitive tag %d", n)
		}
		return k, nil
	}
	for k := KindInf; k < kindMax; k++ {
		if strings.EqualFold(kindNames[k], s) {
			return k, nil
		}
	}
	return KindUndefined, errors.Errorf("unknown primitive kind %q", s)
}

// Axis selects a coordinate axis for axis-aligned kinds.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "Axis(" + strconv.Itoa(int(a)) + ")"
}
