package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/emsolve/internal/export"
	"github.com/san-kum/emsolve/internal/logging"
	"github.com/san-kum/emsolve/internal/rlgc"
	"github.com/san-kum/emsolve/internal/storage"
	"github.com/san-kum/emsolve/internal/sweep"
	"github.com/san-kum/emsolve/internal/tui"
	"github.com/san-kum/emsolve/internal/viz"
)

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	cfg, err := loadConfig(cmd, lineKind)
	if err != nil {
		return err
	}
	g, err := cfg.BuildGeometry()
	if err != nil {
		return err
	}
	p := cfg.SolverParams()
	names := cfg.ConductorPair()

	freqs, err := sweep.Frequencies(cfg.Sweep.Start, cfg.Sweep.Stop, cfg.Sweep.Points, cfg.Sweep.Log)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s sweep %s to %s", cfg.Line,
		export.FormatFrequency(freqs[0]), export.FormatFrequency(freqs[len(freqs)-1]))

	run := func(ctx context.Context, progress func(done, total int, pt sweep.Point)) ([]sweep.Point, error) {
		return sweep.Run(ctx, g, p, freqs, names, sweep.Options{Workers: workers, Progress: progress})
	}

	var points []sweep.Point
	if sweepTUI {
		points, err = tui.RunSweep(ctx, title, len(freqs), run)
	} else {
		fmt.Printf("running %s over %d frequencies...\n", cfg.Line, len(freqs))
		points, err = run(ctx, func(done, total int, pt sweep.Point) {
			log.Info("point done", "done", done, "total", total,
				"frequency", export.FormatFrequency(pt.Frequency), "z0", pt.Params.Z0)
		})
	}
	if err != nil {
		return err
	}

	fmt.Println()
	printSweepPlots(points)

	if sweepHTML != "" {
		if err := export.SaveSweepReport(sweepHTML, title, points); err != nil {
			return err
		}
		fmt.Printf("report saved to %s\n", sweepHTML)
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
		Result:     points[0].Params,
		Sweep:      points,
	})
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func printSweepPlots(points []sweep.Point) {
	plots := []struct {
		caption string
		get     func(*rlgc.Parameters) float64
	}{
		{"Z0 (Ω)", func(p *rlgc.Parameters) float64 { return p.Z0 }},
		{"εeff", func(p *rlgc.Parameters) float64 { return p.EpsilonEff }},
		{"α (dB/m)", func(p *rlgc.Parameters) float64 { return p.LossDBPerMeter() }},
	}
	for i, pl := range plots {
		if i > 0 {
			fmt.Println(viz.Separator(60))
		}
		fmt.Println(viz.SweepPlot(points, pl.get, pl.caption+" vs frequency point"))
		fmt.Println()
	}
}
