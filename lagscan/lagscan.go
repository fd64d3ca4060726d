// Package lagscan evaluates the coincidence likelihood of two burst histograms over a range of bin
// offsets and locates the offset that best aligns them.
package lagscan

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/burstlag/burstlag/relation"
)

// Options control a Scan.
type Options struct {
	// MaxLag is the largest offset, in bins, tried in either direction.
	MaxLag int
	// Precision is the relative precision of each bin log-likelihood.
	Precision float64
	// Workers is the number of goroutines. Values < 1 use GOMAXPROCS.
	Workers int
	// NoCache disables the per-worker result cache.
	NoCache bool
	// Exact sums every term of every bin.
	Exact bool
}

// Point is the histogram log-likelihood at one lag.
type Point struct {
	Lag           int
	LogLikelihood float64
}

// Window returns the bins [lo, hi) of the first histogram that are compared at every lag.
func Window(n, maxLag int) (lo, hi int, err error) {
	if maxLag < 0 {
		return 0, 0, errors.Errorf("lagscan: max lag must be >= 0, got %d", maxLag)
	}
	if n-2*maxLag < 1 {
		return 0, 0, errors.Errorf("lagscan: max lag %d leaves no bins of %d to compare", maxLag, n)
	}
	return maxLag, n - maxLag, nil
}

// Scan returns the log-likelihood of h1[t] against h2[t+lag] over the Window for every lag in
// [-MaxLag, MaxLag], ordered by lag. A positive lag means h2 trails h1.
//
// Lags are shared out to opts.Workers goroutines, each with its own relation.Session. The first
// error stops the scan.
func Scan(ctx context.Context, rel relation.Relation, h1, h2 []int, opts Options) ([]Point, error) {
	if len(h1) != len(h2) {
		return nil, errors.Wrapf(relation.ErrMismatch, "lagscan: %d != %d", len(h1), len(h2))
	}
	lo, hi, err := Window(len(h1), opts.MaxLag)
	if err != nil {
		return nil, err
	}
	points := make([]Point, 2*opts.MaxLag+1)

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(points) {
		workers = len(points)
	}

	g, ctx := errgroup.WithContext(ctx)
	idx := make(chan int)
	g.Go(func() error {
		defer close(idx)
		for k := range points {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case idx <- k:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			s := relation.NewSession(rel)
			s.Exact = opts.Exact
			for k := range idx {
				lag := k - opts.MaxLag
				v, err := s.LogLikelihood(h1[lo:hi], h2[lo+lag:hi+lag], opts.Precision, !opts.NoCache)
				if err != nil {
					return errors.Wrapf(err, "lagscan: lag %d", lag)
				}
				points[k] = Point{Lag: lag, LogLikelihood: v}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Best returns the point with the largest log-likelihood, the smallest lag on a tie.
func Best(points []Point) Point {
	var best Point
	for i, p := range points {
		if i == 0 || p.LogLikelihood > best.LogLikelihood || (p.LogLikelihood == best.LogLikelihood && p.Lag < best.Lag) {
			best = p
		}
	}
	return best
}
