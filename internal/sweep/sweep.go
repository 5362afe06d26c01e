// Package sweep evaluates line parameters over a range of frequencies.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/logging"
	"github.com/san-kum/emsolve/internal/metrics"
	"github.com/san-kum/emsolve/internal/rlgc"
	"github.com/san-kum/emsolve/internal/solver"
)

var ErrInvalidRange = errors.New("sweep: invalid frequency range")

type Point struct {
	Index     int
	Frequency float64
	Params    *rlgc.Parameters
}

// Options tunes Run. Progress is called once per finished point, never
// concurrently, with the number of points done so far.
type Options struct {
	Workers  int
	Progress func(done, total int, p Point)
}

// Frequencies returns n points from start to stop inclusive, spaced
// linearly or, when log is set, logarithmically.
func Frequencies(start, stop float64, n int, log bool) ([]float64, error) {
	switch {
	case n < 1:
		return nil, fmt.Errorf("%w: %d points", ErrInvalidRange, n)
	case !(start > 0) || stop < start:
		return nil, fmt.Errorf("%w: %g..%g Hz", ErrInvalidRange, start, stop)
	}
	if n == 1 {
		return []float64{start}, nil
	}

	out := make([]float64, n)
	for k := range out {
		t := float64(k) / float64(n-1)
		if log {
			out[k] = math.Pow(10, math.Log10(start)+t*(math.Log10(stop)-math.Log10(start)))
		} else {
			out[k] = start + t*(stop-start)
		}
	}
	out[0], out[n-1] = start, stop
	return out, nil
}

// Run computes rlgc.Calculate at every frequency. Points are independent
// and evaluated in parallel; the result is ordered like freqs and matches
// a serial evaluation. The first failure cancels the remaining points.
func Run(ctx context.Context, g *geometry.Geometry, p solver.Params, freqs []float64, names []string, opts Options) ([]Point, error) {
	log := logging.FromContext(ctx)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	points := make([]Point, len(freqs))
	var (
		mu   sync.Mutex
		done int
	)

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for k, f := range freqs {
		k, f := k, f
		eg.Go(func() error {
			params, err := rlgc.Calculate(ectx, g, p, f, names)
			if err != nil {
				return fmt.Errorf("sweep point %d (%g Hz): %w", k, f, err)
			}
			pt := Point{Index: k, Frequency: f, Params: params}
			points[k] = pt
			metrics.IncSweepPoint()

			mu.Lock()
			done++
			log.V(logging.DEBUG).Info("sweep point done", "index", k, "frequency", f, "done", done, "total", len(freqs))
			if opts.Progress != nil {
				opts.Progress(done, len(freqs), pt)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Series extracts one quantity per point, in order.
func Series(points []Point, get func(*rlgc.Parameters) float64) []float64 {
	out := make([]float64, len(points))
	for i, pt := range points {
		out[i] = get(pt.Params)
	}
	return out
}
