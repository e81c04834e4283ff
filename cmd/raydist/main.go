// Package main is the raydist command: it evaluates ray distance queries
// read as JSON lines.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/raydist"
	"github.com/soypat/raydist/form3"
)

const (
	flagPolicy        = "policy"
	flagWorkers       = "workers"
	flagExtrapolation = "extrapolation"
	flagLax           = "lax"
	flagDebug         = "debug"
)

func main() {
	var logger *zap.Logger

	app := &cli.App{
		Name:      "raydist",
		Usage:     "compute ray distances to CSG primitive boundaries",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagDebug) {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = l
			} else {
				logger = zap.NewNop()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "print the distance for each query line",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagPolicy,
						Value: raydist.PolicyRobust.String(),
						Usage: "candidate selection policy: robust or simple",
					},
					&cli.IntFlag{
						Name:  flagWorkers,
						Value: runtime.GOMAXPROCS(0),
						Usage: "number of parallel workers",
					},
					&cli.Float64Flag{
						Name:  flagExtrapolation,
						Value: raydist.DefaultExtrapolation,
						Usage: "distance past a candidate at which membership is probed",
					},
					&cli.BoolFlag{
						Name:  flagLax,
						Usage: "skip per query range checks (derived coefficients are still validated)",
					},
				},
				Action: func(c *cli.Context) error {
					policy, err := raydist.ParsePolicy(c.String(flagPolicy))
					if err != nil {
						return err
					}
					solver := raydist.NewSolver(
						raydist.WithPolicy(policy),
						raydist.WithExtrapolation(c.Float64(flagExtrapolation)),
						raydist.WithStrict(!c.Bool(flagLax)),
						raydist.WithLogger(logger),
					)
					qs, err := readQueries(c)
					if err != nil {
						return err
					}
					dist, err := solveAll(c.Context, solver, qs, c.Int(flagWorkers))
					if err != nil {
						return err
					}
					return writeDistances(c.App.Writer, dist)
				},
			},
			{
				Name:      "validate",
				Usage:     "check every query primitive and report all errors",
				ArgsUsage: "[FILE]",
				Action: func(c *cli.Context) error {
					qs, err := readQueries(c)
					if err != nil {
						return err
					}
					prims := make([]raydist.Primitive, len(qs))
					for i, q := range qs {
						prims[i] = q.primitive()
					}
					if err := form3.ValidateAll(prims); err != nil {
						return err
					}
					logger.Info("all primitives valid", zap.Int("count", len(prims)))
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// query is one input line.
type query struct {
	Kind      kindField  `json:"kind"`
	Params    []float64  `json:"params"`
	Origin    [3]float64 `json:"origin"`
	Dir       [3]float64 `json:"dir"`
	Transform []float64  `json:"transform,omitempty"`
}

// kindField accepts a kind either by name or by numeric tag.
type kindField raydist.Kind

func (k *kindField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int
		if err := json.Unmarshal(b, &n); err != nil {
			return errors.Errorf("kind must be a name or a number, got %s", b)
		}
		s = strconv.Itoa(n)
	}
	kind, err := raydist.ParseKind(s)
	if err != nil {
		return err
	}
	*k = kindField(kind)
	return nil
}

func (q *query) primitive() raydist.Primitive {
	p := raydist.Primitive{Kind: raydist.Kind(q.Kind), Params: q.Params}
	if len(q.Transform) == 12 {
		t := raydist.NewTransform(q.Transform)
		p.Transform = &t
	}
	return p
}

func (q *query) ray() raydist.Ray {
	return raydist.Ray{
		Origin: r3.Vec{X: q.Origin[0], Y: q.Origin[1], Z: q.Origin[2]},
		Dir:    r3.Vec{X: q.Dir[0], Y: q.Dir[1], Z: q.Dir[2]},
	}
}

func readQueries(c *cli.Context) ([]query, error) {
	var r io.Reader = os.Stdin
	if c.Args().Len() > 0 {
		f, err := os.Open(c.Args().First())
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return decodeQueries(r)
}

func decodeQueries(r io.Reader) ([]query, error) {
	var qs []query
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 || b[0] == '#' {
			continue
		}
		var q query
		if err := json.Unmarshal(b, &q); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if q.Transform != nil && len(q.Transform) != 12 {
			return nil, errors.Errorf("line %d: transform needs 12 values, got %d", line, len(q.Transform))
		}
		qs = append(qs, q)
	}
	return qs, sc.Err()
}

// solveAll evaluates the queries on workers goroutines. Query i is always
// solved by the same worker for a given worker count.
func solveAll(ctx context.Context, s *raydist.Solver, qs []query, workers int) ([]float64, error) {
	dist := make([]float64, len(qs))
	if workers < 1 {
		workers = 1
	}
	errs, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		thread := w
		errs.Go(func() error {
			for i := thread; i < len(qs); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				d, err := s.DistanceErr(qs[i].primitive(), qs[i].ray(), thread)
				if err != nil {
					return errors.Wrapf(err, "query %d", i+1)
				}
				dist[i] = d
			}
			return nil
		})
	}
	return dist, errs.Wait()
}

func writeDistances(w io.Writer, dist []float64) error {
	bw := bufio.NewWriter(w)
	for _, d := range dist {
		if _, err := fmt.Fprintln(bw, strconv.FormatFloat(d, 'g', -1, 64)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
