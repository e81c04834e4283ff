package raydist

import (
	"math"
	"math/cmplx"

	"github.com/soypat/raydist/internal/d3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// torus is an elliptic torus with its axis along Z after permutation.
// Its cross section in any half plane containing the axis is an ellipse
// centred at radius R with semi-axis a along the axis and b radially.
type torus struct {
	c       r3.Vec
	R, a, b float64
}

func torusFromParams(p []float64, axis int) torus {
	return torus{
		c: d3.Permute(r3.Vec{X: p[0], Y: p[1], Z: p[2]}, axis),
		R: p[3], a: p[4], b: p[5],
	}
}

func checkTorus(p []float64) error {
	for i, name := range [3]string{"R", "a", "b"} {
		if err := checkPositive(name, p[3+i]); err != nil {
			return err
		}
	}
	return nil
}

func (tr torus) eval(q r3.Vec) float64 {
	rel := r3.Sub(q, tr.c)
	rho := math.Hypot(rel.X, rel.Y) - tr.R
	// scaled so the value is a length near the surface
	return (math.Sqrt(rho*rho/(tr.b*tr.b)+rel.Z*rel.Z/(tr.a*tr.a)) - 1) * math.Min(tr.a, tr.b)
}

// hits pushes the real non-negative roots of the torus quartic.
//
// With ρ² = x²+y² and k = b²/a² the surface is (ρ-R)² + k·z² = b², which
// squares to (ρ² + k·z² + R² - b²)² = 4R²ρ². Roots of the squared form with
// ρ² + k·z² + R² - b² < 0 belong to the mirrored torus and are discarded.
func (tr torus) hits(ray Ray, c *candidates) {
	rel := r3.Sub(ray.Origin, tr.c)
	// Start the polynomial near the torus to keep its coefficients well
	// conditioned for far away origins.
	bound := tr.R + math.Max(tr.a, tr.b)
	var shift float64
	if r3.Norm2(rel) > 4*bound*bound {
		var entry candidates
		sphere(r3.Vec{}, bound, Ray{Origin: rel, Dir: ray.Dir}, &entry)
		if entry.n == 0 {
			return
		}
		// Stop short of the bounding sphere so roots stay positive.
		shift = math.Max(entry.min()-bound, 0)
		rel = r3.Add(rel, r3.Scale(shift, ray.Dir))
	}
	u, v, w := ray.Dir.X, ray.Dir.Y, ray.Dir.Z
	k := tr.b * tr.b / (tr.a * tr.a)
	R2 := tr.R * tr.R
	a2 := u*u + v*v
	a1 := 2 * (rel.X*u + rel.Y*v)
	a0 := rel.X*rel.X + rel.Y*rel.Y
	q2 := a2 + k*w*w
	q1 := a1 + 2*k*rel.Z*w
	q0 := a0 + k*rel.Z*rel.Z + R2 - tr.b*tr.b
	coef := [5]float64{
		q0*q0 - 4*R2*a0,
		2*q1*q0 - 4*R2*a1,
		q1*q1 + 2*q2*q0 - 4*R2*a2,
		2 * q2 * q1,
		q2 * q2,
	}
	var roots [4]float64
	n := quarticRoots(coef, &roots)
	for _, t := range roots[:n] {
		if q2*t*t+q1*t+q0 < -epsilon*(1+R2) {
			continue
		}
		c.push(t + shift)
	}
}

// quarticRoots stores the real roots of c[4]·t⁴ + ... + c[0] in dst and
// returns how many there are. Roots are the eigenvalues of the companion
// matrix, polished with a fixed number of Newton steps.
func quarticRoots(c [5]float64, dst *[4]float64) int {
	if c[4] == 0 {
		return 0
	}
	a3, a2, a1, a0 := c[3]/c[4], c[2]/c[4], c[1]/c[4], c[0]/c[4]
	companion := mat.NewDense(4, 4, []float64{
		-a3, -a2, -a1, -a0,
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	})
	var eig mat.Eigen
	if !eig.Factorize(companion, mat.EigenNone) {
		return 0
	}
	var vals [4]complex128
	eig.Values(vals[:])
	n := 0
	for _, z := range vals {
		t := real(z)
		if math.Abs(imag(z)) > 1e-6*(1+cmplx.Abs(z)) {
			continue
		}
		f := (((t+a3)*t+a2)*t+a1)*t + a0
		for i := 0; i < 4 && f != 0; i++ {
			df := ((4*t+3*a3)*t+2*a2)*t + a1
			if df == 0 {
				break
			}
			tn := t - f/df
			fn := (((tn+a3)*tn+a2)*tn+a1)*tn + a0
			if math.Abs(fn) >= math.Abs(f) {
				break
			}
			t, f = tn, fn
		}
		dst[n] = t
		n++
	}
	return n
}
