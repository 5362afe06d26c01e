package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/emsolve/internal/analytic"
	"github.com/san-kum/emsolve/internal/config"
	"github.com/san-kum/emsolve/internal/logging"
	"github.com/san-kum/emsolve/internal/metrics"
	"github.com/san-kum/emsolve/internal/solver"
)

var (
	dataDir     string
	metricsFile string
	verbose     bool

	frequency         float64
	nx                int
	ny                int
	outputJSON        string
	compareAnalytical bool
	savePlots         bool
	plotFormat        string

	width           float64
	height          float64
	traceWidth      float64
	traceThickness  float64
	epsilonR        float64
	conductor       string
	groundThickness float64

	configFile string
	preset     string
	lineKind   string

	sweepStart  float64
	sweepStop   float64
	sweepPoints int
	sweepLog    bool
	sweepTUI    bool
	sweepHTML   string
	workers     int

	targetZ0 float64
	minWidth float64
	maxWidth float64
	steps    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "emsolve",
		Short:         "2D electrostatic RLGC solver for transmission lines",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(verbose)
			if err != nil {
				return err
			}
			cmd.SetContext(logging.IntoContext(cmd.Context(), log))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if metricsFile == "" {
				return nil
			}
			return metrics.Default.WriteFile(metricsFile)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".emsolve", "run store directory")
	pf.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.Float64Var(&frequency, "frequency", solver.DefaultFrequency, "analysis frequency (Hz)")
	pf.IntVar(&nx, "nx", solver.DefaultNX, "grid points in x")
	pf.IntVar(&ny, "ny", solver.DefaultNY, "grid points in y")
	pf.StringVar(&outputJSON, "output-json", "", "write results to this JSON file")
	pf.BoolVar(&compareAnalytical, "compare-analytical", false, "compare Z0 with the closed-form formula")
	pf.BoolVar(&savePlots, "save-plots", false, "save potential and field plots")
	pf.StringVar(&plotFormat, "plot-format", "png", "plot file format (png, svg, pdf)")

	microstripCmd := &cobra.Command{
		Use:   "microstrip",
		Short: "analyze a microstrip line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeLine(cmd, analytic.Microstrip)
		},
	}
	geometryFlags(microstripCmd)
	microstripCmd.Flags().Float64Var(&groundThickness, "ground-thickness", 0, "ground plane thickness (m), 0 for the default")

	striplineCmd := &cobra.Command{
		Use:   "stripline",
		Short: "analyze a stripline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeLine(cmd, analytic.Stripline)
		},
	}
	geometryFlags(striplineCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an analysis from a config file or preset",
		Args:  cobra.NoArgs,
		RunE:  runConfigured,
	}
	sourceFlags(runCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "frequency sweep",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sourceFlags(sweepCmd)
	geometryFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepStart, "start", config.DefaultSweepStart, "first frequency (Hz)")
	sweepCmd.Flags().Float64Var(&sweepStop, "stop", config.DefaultSweepStop, "last frequency (Hz)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", config.DefaultSweepPoints, "number of frequencies")
	sweepCmd.Flags().BoolVar(&sweepLog, "log", true, "logarithmic spacing")
	sweepCmd.Flags().BoolVar(&sweepTUI, "tui", false, "show an interactive progress view")
	sweepCmd.Flags().StringVar(&sweepHTML, "html", "", "write an HTML report to this file")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel frequency points, 0 for GOMAXPROCS")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "compare solved Z0 with closed-form formulas over several w/h ratios",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}

	designCmd := &cobra.Command{
		Use:   "design",
		Short: "search the trace width for a target Z0",
		Args:  cobra.NoArgs,
		RunE:  runDesign,
	}
	sourceFlags(designCmd)
	geometryFlags(designCmd)
	designCmd.Flags().Float64Var(&targetZ0, "target", 50, "target Z0 (Ω)")
	designCmd.Flags().Float64Var(&minWidth, "min", 0.2e-3, "narrowest trace (m)")
	designCmd.Flags().Float64Var(&maxWidth, "max", 4e-3, "widest trace (m)")
	designCmd.Flags().IntVar(&steps, "steps", 12, "candidate widths")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list stackup presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(microstripCmd, striplineCmd, runCmd, sweepCmd, validateCmd, designCmd,
		listCmd, showCmd, plotCmd, exportJSONCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func geometryFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&width, "width", config.DefaultSubstrateWidth, "substrate width (m)")
	f.Float64Var(&height, "height", config.DefaultSubstrateHeight, "substrate height (m)")
	f.Float64Var(&traceWidth, "trace-width", config.DefaultTraceWidth, "trace width (m)")
	f.Float64Var(&traceThickness, "trace-thickness", config.DefaultTraceThickness, "trace thickness (m)")
	f.Float64Var(&epsilonR, "er", config.DefaultEpsilonR, "substrate relative permittivity")
	f.StringVar(&conductor, "conductor", "", "signal conductor name")
}

func sourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "stackup preset")
	f.StringVar(&lineKind, "line", analytic.Microstrip, "line kind for --preset (microstrip, stripline)")
}
