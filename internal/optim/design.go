package optim

import (
	"context"
	"math"

	"github.com/san-kum/emsolve/internal/config"
	"github.com/san-kum/emsolve/internal/logging"
	"github.com/san-kum/emsolve/internal/rlgc"
)

const TraceWidth = "trace_width"

// Design is the outcome of a trace width search.
type Design struct {
	TraceWidth float64
	Params     *rlgc.Parameters
	Error      float64
}

// DesignTraceWidth searches steps trace widths in [lo, hi] for the one
// whose solved Z0 is closest to target. Everything else comes from base.
func DesignTraceWidth(ctx context.Context, base *config.Config, target, lo, hi float64, steps int) (*Design, error) {
	log := logging.FromContext(ctx)
	results := make(map[float64]*rlgc.Parameters)

	objective := func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := *base
		cfg.Geometry.TraceWidth = params[TraceWidth]
		g, err := cfg.BuildGeometry()
		if err != nil {
			return 0, err
		}
		p, err := rlgc.Calculate(ctx, g, cfg.SolverParams(), cfg.Frequency, cfg.ConductorPair())
		if err != nil {
			log.V(logging.DEBUG).Info("candidate failed", "trace_width", cfg.Geometry.TraceWidth, "error", err.Error())
			return 0, err
		}
		results[cfg.Geometry.TraceWidth] = p
		log.V(logging.DEBUG).Info("candidate", "trace_width", cfg.Geometry.TraceWidth, "z0", p.Z0)
		return math.Abs(p.Z0 - target), nil
	}

	gs := NewGridSearch([]string{TraceWidth}, [][]float64{Linspace(lo, hi, steps)})
	best, score, err := gs.Search(ctx, objective)
	if err != nil {
		return nil, err
	}
	w := best[TraceWidth]
	return &Design{TraceWidth: w, Params: results[w], Error: score}, nil
}
