package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/emsolve/internal/analytic"
	"github.com/san-kum/emsolve/internal/config"
	"github.com/san-kum/emsolve/internal/export"
	"github.com/san-kum/emsolve/internal/storage"
	"github.com/san-kum/emsolve/internal/sweep"
	"github.com/san-kum/emsolve/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tFREQ\tZ0\tGRID\tPOINTS")

	for _, run := range runs {
		freq, z0 := "-", "-"
		if run.Result != nil {
			freq = export.FormatFrequency(run.Result.Frequency)
			z0 = fmt.Sprintf("%.2f", run.Result.Z0)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%dx%d\t%d\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			freq,
			z0,
			run.Solver.NX, run.Solver.NY,
			run.SweepPoints,
		)
	}

	return w.Flush()
}

// runConfig rebuilds the configuration a stored run was solved with.
func runConfig(meta *storage.RunMetadata) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Line = meta.Kind
	cfg.Geometry = meta.Geometry
	cfg.Solver.NX, cfg.Solver.NY = meta.Solver.NX, meta.Solver.NY
	cfg.Frequency = meta.Solver.Frequency
	return cfg
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if meta.Result == nil {
		return fmt.Errorf("run %s has no result", meta.ID)
	}

	fmt.Print(viz.Report(meta.ID, meta.Result, meta.Comparison))
	fmt.Println()

	cfg := runConfig(meta)
	g, err := cfg.BuildGeometry()
	if err != nil {
		return err
	}
	fmt.Println(viz.Subtle.Render("cross-section"))
	fmt.Println(viz.GeometryOutline(g, 60, 12).String())

	sol, err := solvePotential(cmd.Context(), g, cfg.SolverParams(), cfg.Conductor())
	if err != nil {
		return err
	}
	fmt.Println(viz.Subtle.Render("potential, signal at 1 V"))
	fmt.Println(viz.PotentialMap(sol, 60, 20))

	for name, val := range meta.Metrics {
		fmt.Printf("%s%.6g\n", viz.Label.Render(name), val)
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if meta.SweepPoints == 0 {
		return fmt.Errorf("run %s has no sweep data", meta.ID)
	}
	params, err := st.LoadSweep(meta.ID)
	if err != nil {
		return err
	}

	points := make([]sweep.Point, len(params))
	for i, p := range params {
		points[i] = sweep.Point{Index: i, Frequency: p.Frequency, Params: p}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("points: %d (%s to %s)\n\n", len(points),
		export.FormatFrequency(points[0].Frequency), export.FormatFrequency(points[len(points)-1].Frequency))
	printSweepPlots(points)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if meta.Result == nil {
		return fmt.Errorf("run %s has no result", meta.ID)
	}

	cfg := runConfig(meta)
	res := export.NewResults(meta.Kind, meta.Geometry, cfg.Conductor(), meta.Solver, meta.Result)
	if meta.Comparison != nil {
		res.WithComparison(*meta.Comparison, nil)
	}

	if outputJSON == "" {
		return export.WriteJSON(os.Stdout, res)
	}
	if err := export.SaveJSON(outputJSON, res); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outputJSON)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := analytic.Kinds()
	if len(args) > 0 {
		kinds = args[:1]
	}
	for _, kind := range kinds {
		presets := config.ListPresets(kind)
		if len(presets) == 0 {
			fmt.Printf("no presets for kind: %s\n", kind)
			continue
		}
		fmt.Printf("presets for %s:\n", kind)
		for _, name := range presets {
			p := config.GetPreset(kind, name)
			fmt.Printf("  %-14s %s\n", name, describeStackup(p.Geometry))
		}
	}
	return nil
}

func describeStackup(g config.GeometryConfig) string {
	parts := []string{
		"w " + viz.FormatSI(g.TraceWidth, "m"),
		"h " + viz.FormatSI(g.SubstrateHeight, "m"),
		fmt.Sprintf("εr %.2f", g.EpsilonR),
	}
	return strings.Join(parts, ", ")
}
