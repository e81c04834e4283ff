package main

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/soypat/raydist"
)

const input = `# kind by name or by tag
{"kind": "sph", "params": [0, 0, 0, 1], "origin": [-5, 0, 0], "dir": [1, 0, 0]}

{"kind": "cuboid", "params": [-1, 1, -2, 2, -3, 3], "origin": [0, 0, 0], "dir": [0, 0, 1]}
{"kind": "cross", "params": [0, 0, 2, 0.5], "origin": [-5, 1, 0], "dir": [1, 0, 0]}
{"kind": "pz", "params": [1], "origin": [0, 0, 0], "dir": [0, 0, -1]}
{"kind": "cuboid", "params": [-1, 1, -2, 2, -3, 3], "origin": [0, 0, 0], "dir": [1, 0, 0], "transform": [0, -1, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0]}
`

func TestDecodeQueries(t *testing.T) {
	qs, err := decodeQueries(strings.NewReader(input))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, qs, test.ShouldHaveLength, 5)
	test.That(t, raydist.Kind(qs[0].Kind), test.ShouldEqual, raydist.KindSphere)
	test.That(t, qs[2].primitive().Params, test.ShouldResemble, []float64{0, 0, 2, 0.5})
	test.That(t, qs[4].primitive().Transform, test.ShouldNotBeNil)
	test.That(t, qs[0].primitive().Transform, test.ShouldBeNil)

	tagged, err := decodeQueries(strings.NewReader(`{"kind": 5, "params": [0, 0, 0, 1], "origin": [0, 0, 0], "dir": [1, 0, 0]}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, raydist.Kind(tagged[0].Kind), test.ShouldEqual, raydist.Kind(5))

	for _, bad := range []string{
		`{"kind": "nope", "params": []}`,
		`{"kind": true}`,
		`{"kind": "sph", "params": [0, 0, 0, 1], "transform": [1, 0, 0]}`,
		`not json`,
	} {
		_, err := decodeQueries(strings.NewReader(bad))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "line 1")
	}
}

func TestSolveAll(t *testing.T) {
	qs, err := decodeQueries(strings.NewReader(input))
	test.That(t, err, test.ShouldBeNil)
	want := []float64{4, 3, 4.5, math.Inf(1), 2}
	for _, workers := range []int{0, 1, 2, 16} {
		dist, err := solveAll(context.Background(), raydist.NewSolver(), qs, workers)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dist, test.ShouldHaveLength, len(want))
		for i, w := range want {
			if math.IsInf(w, 1) {
				test.That(t, math.IsInf(dist[i], 1), test.ShouldBeTrue)
				continue
			}
			test.That(t, dist[i], test.ShouldAlmostEqual, w, 1e-12)
		}
	}

	var buf bytes.Buffer
	test.That(t, writeDistances(&buf, []float64{4, math.Inf(1), 0.5}), test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldEqual, "4\n+Inf\n0.5\n")
}

func TestSolveAllConfigError(t *testing.T) {
	qs, err := decodeQueries(strings.NewReader(
		`{"kind": "sph", "params": [0, 0, 0, 1], "origin": [-5, 0, 0], "dir": [1, 0, 0]}
{"kind": "sph", "params": [0, 0, 0, -1], "origin": [-5, 0, 0], "dir": [1, 0, 0]}`))
	test.That(t, err, test.ShouldBeNil)
	_, err = solveAll(context.Background(), raydist.NewSolver(), qs, 2)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "query 2")
	var cerr *raydist.ConfigError
	test.That(t, errors.As(err, &cerr), test.ShouldBeTrue)
	test.That(t, cerr.Thread, test.ShouldEqual, 1)
}
