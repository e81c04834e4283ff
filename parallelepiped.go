package raydist

import (
	"math"

	"github.com/pkg/errors"
	"github.com/soypat/raydist/internal/d3"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// parallelepiped holds the six face planes A B C D of a parallelepiped,
// oriented so that A·x+B·y+C·z <= D inside.
type parallelepiped [6][4]float64

// ppdCorners returns the eight corners of the parallelepiped with corner
// x0 y0 z0, edge lengths a b c and angles alpha (between b and c), beta
// (between a and c) and gamma (between a and b). Corner i has edge j
// included when bit j of i is set.
func ppdCorners(p []float64) (corners [8]r3.Vec, err error) {
	a, b, c := p[3], p[4], p[5]
	ca, cb, cg := math.Cos(DtoR(p[6])), math.Cos(DtoR(p[7])), math.Cos(DtoR(p[8]))
	sg := math.Sin(DtoR(p[8]))
	if math.Abs(sg) < unitTolerance {
		return corners, errors.Errorf("parallelepiped gamma %g degenerates the base", p[8])
	}
	cy := (ca - cb*cg) / sg
	cz2 := 1 - cb*cb - cy*cy
	if !(cz2 > unitTolerance) {
		return corners, errors.Errorf("parallelepiped angles %g %g %g do not span space", p[6], p[7], p[8])
	}
	o := r3.Vec{X: p[0], Y: p[1], Z: p[2]}
	edges := [3]r3.Vec{
		{X: a},
		{X: b * cg, Y: b * sg},
		{X: c * cb, Y: c * cy, Z: c * math.Sqrt(cz2)},
	}
	for i := range corners {
		v := o
		for j, e := range edges {
			if i&(1<<j) != 0 {
				v = r3.Add(v, e)
			}
		}
		corners[i] = v
	}
	return corners, nil
}

// ppdFaceCorners lists, per face, three generating corners followed by the
// fourth corner of the face.
var ppdFaceCorners = [6][4]int{
	{0, 1, 2, 3}, {4, 5, 6, 7}, // a-b faces
	{0, 1, 4, 5}, {2, 3, 6, 7}, // a-c faces
	{0, 2, 4, 6}, {1, 3, 5, 7}, // b-c faces
}

// newParallelepiped derives the face planes from the corner construction.
// Every face is derived from three corners, re-validated against its fourth
// corner and oriented so the centroid lies inside.
func newParallelepiped(p []float64) (pp parallelepiped, err error) {
	corners, err := ppdCorners(p)
	if err != nil {
		return pp, err
	}
	centroid := d3.Set(corners[:]).Centroid()
	scale := d3.Set(corners[:]).Scale()
	for i, f := range ppdFaceCorners {
		a, b, c, d, err := PlaneFromPoints(corners[f[0]], corners[f[1]], corners[f[2]])
		if err != nil {
			return pp, errors.Wrapf(err, "parallelepiped face %d", i)
		}
		n := r3.Vec{X: a, Y: b, Z: c}
		nn := r3.Norm(n)
		if got := r3.Dot(n, corners[f[3]]); !scalar.EqualWithinAbsOrRel(got, d, coefTolerance*nn*scale, coefTolerance) {
			return pp, errors.Errorf("parallelepiped face %d not planar: residual %g", i, got-d)
		}
		if r3.Dot(n, centroid) > d {
			a, b, c, d = -a, -b, -c, -d
		}
		pp[i] = [4]float64{a, b, c, d}
	}
	return pp, nil
}

// mustParallelepiped is newParallelepiped for parameters that already
// passed derived validation.
func mustParallelepiped(p []float64) parallelepiped {
	pp, err := newParallelepiped(p)
	if err != nil {
		panic(err)
	}
	return pp
}

func ppdHits(p []float64, r Ray, c *candidates) {
	pp := mustParallelepiped(p)
	flat := pp.flat()
	halfspacesHits(flat[:], r, c)
}

func ppdEval(p []float64, q r3.Vec) float64 {
	pp := mustParallelepiped(p)
	flat := pp.flat()
	return polyEval(flat[:], q)
}

func (pp *parallelepiped) flat() (flat [24]float64) {
	for i, f := range pp {
		copy(flat[4*i:], f[:])
	}
	return flat
}

func checkParallelepiped(p []float64) error {
	for i, name := range [3]string{"a", "b", "c"} {
		if err := checkPositive(name, p[3+i]); err != nil {
			return err
		}
	}
	for i, name := range [3]string{"alpha", "beta", "gamma"} {
		if v := p[6+i]; !(v > 0 && v < 180) {
			return errors.Errorf("%s must be within (0, 180) degrees, got %g", name, v)
		}
	}
	_, err := newParallelepiped(p)
	return err
}
