package raydist

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SolveBatch stores in dist[i] the distance along rays[i] to the boundary of
// p. Rays are split into contiguous chunks, one per worker, and each worker
// passes its index as the thread id. Results do not depend on the number of
// workers. A configuration error stops the batch and is returned as an error
// wrapping the *ConfigError.
func (s *Solver) SolveBatch(ctx context.Context, p Primitive, rays []Ray, dist []float64, workers int) error {
	if len(dist) < len(rays) {
		return errors.Errorf("distance buffer holds %d values, need %d", len(dist), len(rays))
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(rays) {
		workers = len(rays)
	}
	s.logger.Debug("batch start",
		zap.Stringer("kind", p.Kind), zap.Int("rays", len(rays)), zap.Int("workers", workers))
	errs, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo, hi := w*len(rays)/workers, (w+1)*len(rays)/workers
		thread := w
		errs.Go(func() error {
			return s.solveChunk(ctx, p, rays[lo:hi], dist[lo:hi], thread)
		})
	}
	if err := errs.Wait(); err != nil {
		return err
	}
	s.logger.Debug("batch done", zap.Stringer("kind", p.Kind))
	return nil
}

// chunkCheck is how many rays a worker solves between context checks.
const chunkCheck = 1024

func (s *Solver) solveChunk(ctx context.Context, p Primitive, rays []Ray, dist []float64, thread int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverConfigError(r)
		}
	}()
	for i, r := range rays {
		if i%chunkCheck == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		dist[i] = s.Distance(p, r, thread)
	}
	return nil
}

// recoverConfigError converts a recovered configuration panic to an error
// and re-panics anything else.
func recoverConfigError(r any) error {
	err, ok := r.(error)
	if !ok {
		panic(r)
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		panic(r)
	}
	return err
}

// Guard runs f and returns the *ConfigError it panics with, if any, as an
// error. Other panics propagate.
func Guard(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverConfigError(r)
		}
	}()
	f()
	return nil
}

// DistanceErr is Solver.Distance returning configuration errors instead of
// panicking.
func (s *Solver) DistanceErr(p Primitive, r Ray, thread int) (d float64, err error) {
	err = Guard(func() { d = s.Distance(p, r, thread) })
	if err != nil {
		return inf, errors.Wrap(err, "distance")
	}
	return d, nil
}
