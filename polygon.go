package raydist

import (
	"math"

	"github.com/pkg/errors"
	"github.com/soypat/raydist/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Prisms with polygonal cross section, infinite along Z unless trimmed.

const maxFaces = 12

// faceTable holds the unit outward normals of a polygon's faces in
// counterclockwise order.
type faceTable struct {
	n       int
	normals [maxFaces]r2.Vec
}

func newFaceTable(n int, start float64) *faceTable {
	ft := &faceTable{n: n}
	for i := 0; i < n; i++ {
		ft.normals[i] = d2.Polar(start + tau*float64(i)/float64(n))
	}
	return ft
}

// Read only after initialization.
var (
	squareFaces    = newFaceTable(4, 0)
	hexXFaces      = newFaceTable(6, 0)
	hexYFaces      = newFaceTable(6, pi/6)
	octagonFaces   = newFaceTable(8, 0)
	dodecagonFaces = newFaceTable(12, 0)
)

// polygon is a convex polygon centred at (x0, y0) whose faces lie at
// distance apothem[i] along faces.normals[i]. Corners are rounded by fillet.
type polygon struct {
	x0, y0  float64
	faces   *faceTable
	apothem [maxFaces]float64
	fillet  float64
}

func regularPolygon(x0, y0 float64, faces *faceTable, r, fillet float64) polygon {
	pg := polygon{x0: x0, y0: y0, faces: faces, fillet: fillet}
	for i := 0; i < faces.n; i++ {
		pg.apothem[i] = r
	}
	return pg
}

// alternatingPolygon gives even faces apothem r1 and odd faces apothem r2.
func alternatingPolygon(x0, y0 float64, faces *faceTable, r1, r2 float64) polygon {
	pg := polygon{x0: x0, y0: y0, faces: faces}
	for i := 0; i < faces.n; i++ {
		pg.apothem[i] = r1
		if i%2 == 1 {
			pg.apothem[i] = r2
		}
	}
	return pg
}

// corner returns the centre of the fillet circle tangent to faces i and
// i+1, relative to the polygon centre. With a zero fillet it is the sharp
// corner itself.
func (pg *polygon) corner(i int) r2.Vec {
	j := (i + 1) % pg.faces.n
	ni, nj := pg.faces.normals[i], pg.faces.normals[j]
	bi, bj := pg.apothem[i]-pg.fillet, pg.apothem[j]-pg.fillet
	det := ni.X*nj.Y - ni.Y*nj.X
	return r2.Vec{
		X: (bi*nj.Y - bj*ni.Y) / det,
		Y: (ni.X*bj - nj.X*bi) / det,
	}
}

// hits pushes the crossings of every face plane and every fillet circle.
func (pg *polygon) hits(ray Ray, c *candidates) {
	centre := r2.Vec{X: pg.x0, Y: pg.y0}
	for i := 0; i < pg.faces.n; i++ {
		n := pg.faces.normals[i]
		plane(r3.Vec{X: n.X, Y: n.Y}, pg.apothem[i]+r2.Dot(n, centre), ray, c)
	}
	if pg.fillet <= 0 {
		return
	}
	for i := 0; i < pg.faces.n; i++ {
		k := pg.corner(i)
		circle(pg.x0+k.X, pg.y0+k.Y, pg.fillet, ray, c)
	}
}

func (pg *polygon) eval(q r3.Vec) float64 {
	p := r2.Vec{X: q.X - pg.x0, Y: q.Y - pg.y0}
	d := -inf
	for i := 0; i < pg.faces.n; i++ {
		d = math.Max(d, r2.Dot(pg.faces.normals[i], p)-pg.apothem[i])
	}
	if pg.fillet <= 0 {
		return d
	}
	for i := 0; i < pg.faces.n; i++ {
		// The corner is cut inside the wedge between the normals of its two
		// faces drawn from the fillet centre.
		j := (i + 1) % pg.faces.n
		x := r2.Sub(p, pg.corner(i))
		if r2.Cross(pg.faces.normals[i], x) < 0 || r2.Cross(x, pg.faces.normals[j]) < 0 {
			continue
		}
		d = math.Max(d, r2.Norm(x)-pg.fillet)
	}
	return d
}

// filleted builds a regular polygon from x0 y0 r [rf].
func filleted(p []float64, faces *faceTable) polygon {
	var rf float64
	if len(p) > 3 {
		rf = p[3]
	}
	return regularPolygon(p[0], p[1], faces, p[2], rf)
}

func checkFilleted(p []float64) error {
	if err := checkPositive("r", p[2]); err != nil {
		return err
	}
	if len(p) > 3 && (p[3] < 0 || p[3] > p[2]) {
		return errors.Errorf("fillet radius %g outside [0, %g]", p[3], p[2])
	}
	return nil
}

func checkAlternating(p []float64) error {
	if err := checkPositive("r1", p[2]); err != nil {
		return err
	}
	return checkPositive("r2", p[3])
}

// trimmedPolygon adds the z1 <= z <= z2 slab to a regular polygon given
// as x0 y0 r z1 z2.
func trimmedPolygonHits(p []float64, faces *faceTable, r Ray, c *candidates) {
	pg := regularPolygon(p[0], p[1], faces, p[2], 0)
	pg.hits(r, c)
	slab(r.Origin.Z, r.Dir.Z, p[3], p[4], c)
}

func trimmedPolygonEval(p []float64, faces *faceTable, q r3.Vec) float64 {
	pg := regularPolygon(p[0], p[1], faces, p[2], 0)
	return math.Max(pg.eval(q), slabEval(q.Z, p[3], p[4]))
}

func checkTrimmedPolygon(p []float64) error {
	if err := checkPositive("r", p[2]); err != nil {
		return err
	}
	return checkRange("z", p[3], p[4])
}
