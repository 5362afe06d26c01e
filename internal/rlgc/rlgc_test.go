package rlgc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticref "github.com/san-kum/emsolve/internal/analytic"
	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/solver"
)

func microstrip(t *testing.T) *geometry.Geometry {
	t.Helper()
	g, err := geometry.Microstrip(geometry.MicrostripSpec{
		SubstrateWidth:  5e-3,
		SubstrateHeight: 1.6e-3,
		TraceWidth:      3e-3,
		TraceThickness:  35e-6,
		EpsilonR:        4.6,
	})
	require.NoError(t, err)
	return g
}

// plate builds a domain filled with fill and a "signal" plate along the top.
func plate(t *testing.T, fill geometry.Material) *geometry.Geometry {
	t.Helper()
	g, err := geometry.New(10e-3, 1e-3, fill)
	require.NoError(t, err)
	require.NoError(t, g.AddRegion(geometry.Region{
		XMin: 0, XMax: 10e-3, YMin: 0.9e-3, YMax: 1e-3,
		Material: geometry.NewConductor("signal", geometry.CopperConductivity),
	}))
	return g
}

func TestLineCapacitance(t *testing.T) {
	two := &solver.CapacitanceMatrix{
		Names:  []string{"a", "b"},
		Values: [][]float64{{3, -1}, {-1, 2}},
	}
	assert.Equal(t, 4.0, LineCapacitance(two, "a"))
	assert.Equal(t, 3.0, LineCapacitance(two, "b"))
	assert.Equal(t, 4.0, LineCapacitance(two, "missing"))

	three := &solver.CapacitanceMatrix{
		Names:  []string{"a", "b", "c"},
		Values: [][]float64{{5, -1, -2}, {-1, 4, -1}, {-2, -1, 6}},
	}
	assert.Equal(t, 5.0, LineCapacitance(three, "a"))
	assert.Equal(t, 6.0, LineCapacitance(three, "c"))

	// A lone conductor is reported as [[C,-C],[-C,C]], so the line sees 2C.
	single := &solver.CapacitanceMatrix{
		Names:  []string{"copper", geometry.GroundName},
		Values: [][]float64{{1.5, -1.5}, {-1.5, 1.5}},
	}
	assert.Equal(t, 3.0, LineCapacitance(single, "copper"))
}

func TestSkinDepth_Copper(t *testing.T) {
	assert.InEpsilon(t, 2.0898e-6, SkinDepth(1e9, 5.8e7), 1e-3)
	assert.InEpsilon(t, SkinDepth(1e9, 5.8e7)*2, SkinDepth(0.25e9, 5.8e7), 1e-12)
}

func TestResistance_SumsNamedConductors(t *testing.T) {
	g, err := geometry.New(10e-3, 5e-3, geometry.Air())
	require.NoError(t, err)
	require.NoError(t, g.AddRegion(geometry.Region{
		XMin: 1e-3, XMax: 2e-3, YMin: 1e-3, YMax: 1.1e-3,
		Material: geometry.NewConductor("signal", 5.8e7),
	}))
	require.NoError(t, g.AddRegion(geometry.Region{
		XMin: 4e-3, XMax: 6e-3, YMin: 1e-3, YMax: 1.5e-3,
		Material: geometry.NewConductor("other", 5.8e7),
	}))

	f := 1e9
	rs := 1 / (5.8e7 * SkinDepth(f, 5.8e7))
	want := rs / (2 * (1e-3 + 0.1e-3))

	assert.InEpsilon(t, want, Resistance(g, f, []string{"signal", "ground"}), 1e-12)
	assert.InEpsilon(t, want+rs/(2*(2e-3+0.5e-3)), Resistance(g, f, []string{"signal", "other"}), 1e-12)
	assert.Zero(t, Resistance(g, f, []string{"missing"}))
}

func TestSecondaryParameters_Lossless(t *testing.T) {
	l, c := 250e-9, 100e-12
	s := SecondaryParameters(0, l, 0, c, 1e9)

	assert.InDelta(t, 50, s.Z0, 1e-9)
	assert.Zero(t, s.Alpha)
	assert.InEpsilon(t, 2*math.Pi*1e9*math.Sqrt(l*c), s.Beta, 1e-12)
	assert.InEpsilon(t, 1/math.Sqrt(l*c), s.VPhase, 1e-12)
	assert.InEpsilon(t, l*c*CLight*CLight, s.EpsilonEff, 1e-9)
}

func TestSecondaryParameters_Lossy(t *testing.T) {
	s := SecondaryParameters(5, 300e-9, 1e-4, 120e-12, 1e9)
	assert.Greater(t, s.Alpha, 0.0)
	assert.Greater(t, s.Beta, 0.0)
	assert.Equal(t, real(s.Gamma), s.Alpha)
	assert.Equal(t, imag(s.Gamma), s.Beta)
}

func TestSecondaryParameters_ZeroFrequency(t *testing.T) {
	s := SecondaryParameters(1, 1e-7, 0, 1e-10, 0)
	assert.Zero(t, s.Beta)
	assert.Zero(t, s.VPhase)
	assert.Equal(t, 1.0, s.EpsilonEff)
}

func TestInductance_AirFilledBranch(t *testing.T) {
	g := plate(t, geometry.NewMaterial("fill", 4))
	p := solver.Params{NX: 30, NY: 30, Frequency: 1e9}

	est, err := Inductance(context.Background(), g, p, 1e-10, "signal")
	require.NoError(t, err)
	assert.Equal(t, BranchAirFilled, est.Branch)

	m, err := solver.ComputeCapacitance(context.Background(), g.AirFilled(), p)
	require.NoError(t, err)
	assert.Equal(t, LineCapacitance(m, "signal"), est.CAir)
	assert.Equal(t, Mu0*Eps0/est.CAir, est.Value)
}

func TestInductance_FallbackChain(t *testing.T) {
	bad := solver.Params{NX: 1, NY: 1, Frequency: 1e9}

	t.Run("analytic", func(t *testing.T) {
		g := microstrip(t)
		est, err := Inductance(context.Background(), g, bad, 1e-10, "signal")
		require.NoError(t, err)
		assert.Equal(t, BranchAnalytic, est.Branch)

		// First conductor is the ground plane spanning the full width.
		w := g.ConductorRegions()[0].Width()
		assert.InEpsilon(t, Eps0*w/g.Height, est.CAir, 1e-12)
	})

	t.Run("capacitance", func(t *testing.T) {
		g, err := geometry.New(1e-3, 1e-3, geometry.Air())
		require.NoError(t, err)
		est, err := Inductance(context.Background(), g, bad, 1e-10, "signal")
		require.NoError(t, err)
		assert.Equal(t, BranchCapacitance, est.Branch)
		assert.Equal(t, 1e-10, est.CAir)
		assert.InEpsilon(t, Mu0*Eps0/1e-10, est.Value, 1e-12)
	})

	t.Run("near-zero capacitance", func(t *testing.T) {
		g, err := geometry.New(1e-3, 1e-3, geometry.Air())
		require.NoError(t, err)
		est, err := Inductance(context.Background(), g, bad, 1e-25, "signal")
		require.NoError(t, err)
		assert.InEpsilon(t, Mu0*Eps0/MinCapacitance, est.Value, 1e-12)
	})
}

func TestAnalytic_NarrowAndWide(t *testing.T) {
	g, err := geometry.New(10e-3, 2e-3, geometry.Air())
	require.NoError(t, err)
	require.NoError(t, g.AddRegion(geometry.Region{
		XMin: 4e-3, XMax: 5e-3, YMin: 1e-3, YMax: 1.1e-3,
		Material: geometry.NewConductor("signal", 5.8e7),
	}))
	est, ok := analytic(g)
	require.True(t, ok)
	assert.InEpsilon(t, Eps0*math.Pi/math.Log(8), est.CAir, 1e-12)

	wide, err := geometry.New(10e-3, 2e-3, geometry.Air())
	require.NoError(t, err)
	require.NoError(t, wide.AddRegion(geometry.Region{
		XMin: 1e-3, XMax: 9e-3, YMin: 1e-3, YMax: 1.1e-3,
		Material: geometry.NewConductor("signal", 5.8e7),
	}))
	est, ok = analytic(wide)
	require.True(t, ok)
	assert.InEpsilon(t, Eps0*4, est.CAir, 1e-12)

	empty, err := geometry.New(1, 1, geometry.Air())
	require.NoError(t, err)
	_, ok = analytic(empty)
	assert.False(t, ok)
}

func TestSanityClamp(t *testing.T) {
	g := microstrip(t)
	w := g.ConductorRegions()[0].Width()

	l, clamped := sanityClamp(g, 300e-9)
	assert.False(t, clamped)
	assert.Equal(t, 300e-9, l)

	for _, bad := range []float64{1e-15, 1, -1e-7} {
		l, clamped = sanityClamp(g, bad)
		assert.True(t, clamped, "l = %g", bad)
		assert.Equal(t, Mu0*g.Height/w, l)
	}

	empty, err := geometry.New(1, 1, geometry.Air())
	require.NoError(t, err)
	_, clamped = sanityClamp(empty, 1)
	assert.False(t, clamped)
}

func TestInductance_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Inductance(ctx, microstrip(t), solver.Params{NX: 20, NY: 20, Frequency: 1e9}, 1e-10, "signal")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConductance(t *testing.T) {
	p := solver.Params{NX: 30, NY: 30, Frequency: 1e9}
	ctx := context.Background()
	f := 1e9

	t.Run("lossless", func(t *testing.T) {
		g, err := Conductance(ctx, plate(t, geometry.NewMaterial("fill", 4)), p, 1e-10, f)
		require.NoError(t, err)
		assert.Zero(t, g)
	})

	t.Run("uniform loss", func(t *testing.T) {
		fill := geometry.Material{Name: "fill", EpsilonR: 4, MuR: 1, Sigma: 1e-3}
		g, err := Conductance(ctx, plate(t, fill), p, 1e-10, f)
		require.NoError(t, err)

		omega := 2 * math.Pi * f
		tan := fill.Sigma / (omega * Eps0 * fill.EpsilonR)
		assert.InEpsilon(t, omega*1e-10*tan, g, 1e-9)
	})

	t.Run("fixed excitation names", func(t *testing.T) {
		// A conductor not called "signal" stays at 0 V, so the field and
		// the weighted loss tangent vanish.
		geo, err := geometry.New(10e-3, 1e-3, geometry.Material{Name: "fill", EpsilonR: 4, MuR: 1, Sigma: 1e-3})
		require.NoError(t, err)
		require.NoError(t, geo.AddRegion(geometry.Region{
			XMin: 0, XMax: 10e-3, YMin: 0.9e-3, YMax: 1e-3,
			Material: geometry.NewConductor("copper", geometry.CopperConductivity),
		}))
		g, err := Conductance(ctx, geo, p, 1e-10, f)
		require.NoError(t, err)
		assert.Zero(t, g)
	})
}

func TestCalculate_Microstrip(t *testing.T) {
	if testing.Short() {
		t.Skip("100x100 field solves")
	}
	g := microstrip(t)
	p := solver.Params{NX: 100, NY: 100, Frequency: 1e9}

	params, err := Calculate(context.Background(), g, p, 1e9, nil)
	require.NoError(t, err)

	assert.Equal(t, BranchAirFilled, params.InductanceBranch)
	assert.Greater(t, params.R, 0.0)
	assert.Zero(t, params.G)
	assert.Greater(t, params.C, 10e-12)
	assert.Less(t, params.C, 1e-9)
	assert.Greater(t, params.L, 50e-9)
	assert.Less(t, params.L, 2e-6)
	assert.Greater(t, params.Z0, 10.0)
	assert.Less(t, params.Z0, 200.0)
	// Conductor nodes carry eps_r 1 in the stencil while the extracted
	// charge uses the substrate eps_r, which pushes eps_eff above eps_r.
	assert.Greater(t, params.EpsilonEff, 4.6)
	assert.Greater(t, params.VPhase, 0.0)
	assert.Less(t, params.VPhase, CLight)
	assert.Equal(t, 1e9, params.Frequency)
}

func TestCalculate_Stripline(t *testing.T) {
	er := 4.6
	g, err := geometry.Stripline(geometry.StriplineSpec{
		SubstrateWidth:  5e-3,
		SubstrateHeight: 1.6e-3,
		TraceWidth:      1e-3,
		TraceThickness:  35e-6,
		EpsilonR:        er,
	})
	require.NoError(t, err)

	// Odd ny places a node row on the trace center line.
	params, err := Calculate(context.Background(), g, solver.Params{NX: 41, NY: 41, Frequency: 1e9}, 1e9, []string{"copper"})
	require.NoError(t, err)

	assert.Greater(t, params.EpsilonEff, 1.0)
	assert.Less(t, params.EpsilonEff, 1.25*er)
	assert.Greater(t, params.Z0, 0.0)
}

func TestCalculate_MicrostripMatchesWheeler(t *testing.T) {
	if testing.Short() {
		t.Skip("100x100 field solves")
	}
	const h, er = 1.6e-3, 4.6
	for _, w := range []float64{0.5e-3, 1e-3, 1.6e-3, 3e-3} {
		t.Run(fmt.Sprintf("w/h=%.2f", w/h), func(t *testing.T) {
			g, err := geometry.Microstrip(geometry.MicrostripSpec{
				SubstrateWidth:  5e-3,
				SubstrateHeight: h,
				TraceWidth:      w,
				TraceThickness:  35e-6,
				EpsilonR:        er,
			})
			require.NoError(t, err)

			params, err := Calculate(context.Background(), g, solver.Params{NX: 100, NY: 100, Frequency: 1e9}, 1e9, nil)
			require.NoError(t, err)

			cmp := analyticref.Compare(params.Z0, analyticref.MicrostripZ0(w, h, er))
			assert.True(t, cmp.Within(analyticref.DefaultTolerance),
				"Z0 %.2f vs closed form %.2f (%.1f%%)", cmp.Numeric, cmp.Analytic, 100*cmp.RelativeError)
		})
	}
}

// The stripline trace is the only conductor, so its line capacitance is
// 2|Q| and Z0 lands near half the closed form.
func TestCalculate_StriplineBelowClosedForm(t *testing.T) {
	if testing.Short() {
		t.Skip("101x101 field solves")
	}
	const h, er = 1.6e-3, 4.6
	for _, w := range []float64{0.5e-3, 1e-3} {
		t.Run(fmt.Sprintf("w/h=%.2f", w/h), func(t *testing.T) {
			g, err := geometry.Stripline(geometry.StriplineSpec{
				SubstrateWidth:  5e-3,
				SubstrateHeight: h,
				TraceWidth:      w,
				TraceThickness:  35e-6,
				EpsilonR:        er,
			})
			require.NoError(t, err)

			params, err := Calculate(context.Background(), g, solver.Params{NX: 101, NY: 101, Frequency: 1e9}, 1e9, []string{"copper"})
			require.NoError(t, err)

			ratio := params.Z0 / analyticref.StriplineZ0(w, h, er)
			assert.Greater(t, ratio, 0.3)
			assert.Less(t, ratio, 0.6)
		})
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	g := microstrip(t)
	p := solver.Params{NX: 40, NY: 60, Frequency: 1e9}

	a, err := Calculate(context.Background(), g, p, 2e9, nil)
	require.NoError(t, err)
	b, err := Calculate(context.Background(), g, p, 2e9, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCalculate_StageErrors(t *testing.T) {
	p := solver.Params{NX: 10, NY: 10, Frequency: 1e9}
	empty, err := geometry.New(1e-3, 1e-3, geometry.Air())
	require.NoError(t, err)

	tests := []struct {
		name  string
		g     *geometry.Geometry
		p     solver.Params
		f     float64
		stage string
		want  error
	}{
		{"zero frequency", microstrip(t), p, 0, StageGeometry, ErrInvalidFrequency},
		{"bad grid", microstrip(t), solver.Params{NX: 1, NY: 10, Frequency: 1e9}, 1e9, StageGeometry, solver.ErrInvalidParams},
		{"no conductors", empty, p, 1e9, StageSolve, solver.ErrNoConductors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(context.Background(), tt.g, tt.p, tt.f, nil)
			var se *StageError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tt.stage, se.Stage)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParameters_Derived(t *testing.T) {
	p := NewParameters(0, 250e-9, 0, 100e-12, 1e9)
	assert.InEpsilon(t, 0.2, p.Wavelength(), 1e-9)
	assert.Zero(t, p.LossDBPerMeter())
}
