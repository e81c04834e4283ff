package raydist

import (
	"math"
	"strconv"
)

const (
	pi  = math.Pi
	tau = 2 * pi
	// epsilon is the threshold below which a quadratic leading coefficient
	// or a plane denominator is treated as zero.
	epsilon = 1e-12
	// unitTolerance is the allowed deviation of |dir| from 1.
	unitTolerance = 1e-6
	// coefTolerance is the relative tolerance used to validate derived
	// plane coefficients against their generating points.
	coefTolerance = 1e-6
	// DefaultExtrapolation is the distance a ray is advanced past a
	// candidate crossing before membership is re-evaluated.
	DefaultExtrapolation = 1e-6
)

var inf = math.Inf(1)

// maxCandidates bounds the number of candidate roots any kind may produce.
// Each handler declares its own bound, all of which fit here.
const maxCandidates = 24

// candidates is a fixed capacity list of non-negative crossing distances.
// It lives on the caller's stack so concurrent queries never share it.
type candidates struct {
	n int
	t [maxCandidates]float64
}

// push records t if it is a valid candidate: non-negative and finite.
func (c *candidates) push(t float64) {
	if !(t >= 0) || math.IsInf(t, 1) {
		return
	}
	if c.n == maxCandidates {
		panic("raydist: candidate list overflow (" + strconv.Itoa(maxCandidates) + ")")
	}
	c.t[c.n] = t
	c.n++
}

// min returns the smallest candidate or +Inf if there are none.
func (c *candidates) min() float64 {
	d := inf
	for _, t := range c.t[:c.n] {
		if t < d {
			d = t
		}
	}
	return d
}

// sort orders candidates ascending. Insertion sort: lists are tiny and the
// result must not depend on anything but the input.
func (c *candidates) sort() {
	t := c.t[:c.n]
	for i := 1; i < len(t); i++ {
		v := t[i]
		j := i - 1
		for ; j >= 0 && t[j] > v; j-- {
			t[j+1] = t[j]
		}
		t[j+1] = v
	}
}

// DtoR converts degrees to radians.
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// wrapPi maps an angle onto (-pi, pi].
func wrapPi(a float64) float64 {
	a = math.Mod(a, tau)
	if a > pi {
		a -= tau
	} else if a <= -pi {
		a += tau
	}
	return a
}

// sign returns the sign of x, with sign(0) = 1.
func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
