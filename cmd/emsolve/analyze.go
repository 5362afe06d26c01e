package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/emsolve/internal/analytic"
	"github.com/san-kum/emsolve/internal/config"
	"github.com/san-kum/emsolve/internal/export"
	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/logging"
	"github.com/san-kum/emsolve/internal/optim"
	"github.com/san-kum/emsolve/internal/rlgc"
	"github.com/san-kum/emsolve/internal/solver"
	"github.com/san-kum/emsolve/internal/storage"
	"github.com/san-kum/emsolve/internal/viz"
)

// loadConfig starts from defaults, then a preset, then a config file, and
// finally applies the flags the user actually set.
func loadConfig(cmd *cobra.Command, kind string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Line = kind

	if preset != "" {
		p := config.GetPreset(kind, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if cmd.Flags().Changed("line") {
			cfg.Line = lineKind
		}
	}

	applyFlags(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(f *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	set("width", func() { cfg.Geometry.SubstrateWidth = width })
	set("height", func() { cfg.Geometry.SubstrateHeight = height })
	set("trace-width", func() { cfg.Geometry.TraceWidth = traceWidth })
	set("trace-thickness", func() { cfg.Geometry.TraceThickness = traceThickness })
	set("er", func() { cfg.Geometry.EpsilonR = epsilonR })
	set("conductor", func() { cfg.Geometry.Conductor = conductor })
	set("ground-thickness", func() { cfg.Geometry.GroundThickness = groundThickness })
	set("frequency", func() { cfg.Frequency = frequency })
	set("nx", func() { cfg.Solver.NX = nx })
	set("ny", func() { cfg.Solver.NY = ny })
	set("output-json", func() { cfg.Output.JSON = outputJSON })
	set("compare-analytical", func() { cfg.Output.CompareAnalytical = compareAnalytical })
	set("save-plots", func() { cfg.Output.SavePlots = savePlots })
	set("start", func() { cfg.Sweep.Start = sweepStart })
	set("stop", func() { cfg.Sweep.Stop = sweepStop })
	set("points", func() { cfg.Sweep.Points = sweepPoints })
	set("log", func() { cfg.Sweep.Log = sweepLog })
}

func analyzeLine(cmd *cobra.Command, kind string) error {
	cfg, err := loadConfig(cmd, kind)
	if err != nil {
		return err
	}
	return analyze(cmd.Context(), cfg)
}

func runConfigured(cmd *cobra.Command, args []string) error {
	if configFile == "" && preset == "" {
		return fmt.Errorf("run needs --config or --preset")
	}
	cfg, err := loadConfig(cmd, lineKind)
	if err != nil {
		return err
	}
	return analyze(cmd.Context(), cfg)
}

func analyze(ctx context.Context, cfg *config.Config) error {
	log := logging.FromContext(ctx)

	g, err := cfg.BuildGeometry()
	if err != nil {
		return err
	}
	p := cfg.SolverParams()
	names := cfg.ConductorPair()

	fmt.Printf("solving %s on a %dx%d grid...\n", cfg.Line, p.NX, p.NY)
	start := time.Now()
	params, err := rlgc.Calculate(ctx, g, p, cfg.Frequency, names)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var cmp *analytic.Comparison
	var cmpErr error
	if cfg.Output.CompareAnalytical {
		var z float64
		if z, cmpErr = cfg.AnalyticZ0(); cmpErr == nil {
			c := analytic.Compare(params.Z0, z)
			cmp = &c
		}
	}

	fmt.Println()
	fmt.Print(viz.Report(fmt.Sprintf("%s  %s", cfg.Line, export.FormatFrequency(cfg.Frequency)), params, cmp))
	fmt.Println(viz.Subtle.Render(fmt.Sprintf("solved in %v", elapsed.Round(time.Millisecond))))

	if cfg.Output.JSON != "" {
		res := export.NewResults(cfg.Line, cfg.Geometry, cfg.Conductor(), p, params)
		if cfg.Output.CompareAnalytical {
			var c analytic.Comparison
			if cmp != nil {
				c = *cmp
			}
			res.WithComparison(c, cmpErr)
		}
		m, err := solver.ComputeCapacitance(ctx, g, p)
		if err != nil {
			return err
		}
		res.CapacitanceMatrix = m
		if err := export.SaveJSON(cfg.Output.JSON, res); err != nil {
			return err
		}
		fmt.Printf("results saved to %s\n", cfg.Output.JSON)
	}

	if cfg.Output.SavePlots {
		sol, err := solvePotential(ctx, g, p, cfg.Conductor())
		if err != nil {
			return err
		}
		paths, err := export.SaveFieldPlots(sol, cfg.Line, plotFormat)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Printf("plot saved to %s\n", path)
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Kind:       cfg.Line,
		Geometry:   cfg.Geometry,
		Solver:     p,
		Conductors: names,
		Result:     params,
		Comparison: cmp,
		Metrics: map[string]float64{
			"wavelength_m":  params.Wavelength(),
			"loss_db_per_m": params.LossDBPerMeter(),
			"elapsed_s":     elapsed.Seconds(),
		},
	})
	if err != nil {
		return err
	}
	log.V(logging.DEBUG).Info("run stored", "id", runID, "dir", dataDir)
	fmt.Printf("run id: %s\n", runID)
	return nil
}

// solvePotential drives the signal conductor at 1 V against ground.
func solvePotential(ctx context.Context, g *geometry.Geometry, p solver.Params, signal string) (*solver.Solution, error) {
	s, err := solver.New(g, p)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, solver.Excitation{signal: 1, geometry.GroundName: 0})
}

var validationRatios = []float64{0.5, 1, 2, 3}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	base := config.DefaultConfig()
	applyFlags(cmd.Flags(), base)

	fmt.Println(viz.GradientText("closed-form validation", "#00ffff", "#ff00ff"))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tW/H\tNUMERIC\tANALYTIC\tERROR\t")

	passed, total := 0, 0
	for _, kind := range analytic.Kinds() {
		for _, ratio := range validationRatios {
			cfg := *base
			cfg.Line = kind
			cfg.Geometry.TraceWidth = ratio * cfg.Geometry.SubstrateHeight
			cfg.Geometry.SubstrateWidth = math.Max(cfg.Geometry.SubstrateWidth, 3*cfg.Geometry.TraceWidth)

			g, err := cfg.BuildGeometry()
			if err != nil {
				return err
			}
			params, err := rlgc.Calculate(ctx, g, cfg.SolverParams(), cfg.Frequency, cfg.ConductorPair())
			if err != nil {
				return fmt.Errorf("%s w/h=%g: %w", kind, ratio, err)
			}
			z, err := cfg.AnalyticZ0()
			if err != nil {
				return err
			}
			c := analytic.Compare(params.Z0, z)

			status := viz.Good.Render("ok")
			if !c.Within(analytic.DefaultTolerance) {
				status = viz.Bad.Render("off")
			} else {
				passed++
			}
			total++
			fmt.Fprintf(w, "%s\t%.2f\t%.2f Ω\t%.2f Ω\t%.1f%%\t%s\n", kind, ratio, params.Z0, z, c.RelativeError*100, status)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d/%d within %.0f%% of the closed form\n", passed, total, analytic.DefaultTolerance*100)
	return nil
}

func runDesign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, lineKind)
	if err != nil {
		return err
	}
	if maxWidth >= cfg.Geometry.SubstrateWidth {
		return fmt.Errorf("--max %g must be narrower than the substrate (%g)", maxWidth, cfg.Geometry.SubstrateWidth)
	}

	fmt.Printf("searching %d widths in [%s, %s] for Z0 = %.1f Ω...\n",
		steps, viz.FormatSI(minWidth, "m"), viz.FormatSI(maxWidth, "m"), targetZ0)
	d, err := optim.DesignTraceWidth(cmd.Context(), cfg, targetZ0, minWidth, maxWidth, steps)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.Label.Render("trace width") + viz.Value.Render(viz.FormatSI(d.TraceWidth, "m")))
	fmt.Println(viz.Label.Render("Z0") + viz.Value.Render(fmt.Sprintf("%.2f Ω", d.Params.Z0)))
	fmt.Println(viz.Label.Render("|Z0 - target|") + viz.Value.Render(fmt.Sprintf("%.2f Ω", d.Error)))
	fmt.Println(viz.Label.Render("εeff") + viz.Value.Render(fmt.Sprintf("%.3f", d.Params.EpsilonEff)))
	return nil
}
