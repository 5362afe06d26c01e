package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/emsolve/internal/analytic"
	"github.com/san-kum/emsolve/internal/geometry"
	"github.com/san-kum/emsolve/internal/rlgc"
	"github.com/san-kum/emsolve/internal/solver"
	"github.com/san-kum/emsolve/internal/sweep"
)

func TestFormatSI(t *testing.T) {
	tests := []struct {
		v    float64
		unit string
		want string
	}{
		{310e-9, "H/m", "310.00 nH/m"},
		{150e-12, "F/m", "150.00 pF/m"},
		{2.5e9, "Hz", "2.50 GHz"},
		{0, "S/m", "0.00 S/m"},
		{-4.2e-3, "V", "-4.20 mV"},
	}
	for _, tt := range tests {
		if got := FormatSI(tt.v, tt.unit); got != tt.want {
			t.Errorf("FormatSI(%g): expected %q, got %q", tt.v, tt.want, got)
		}
	}
}

func TestReport(t *testing.T) {
	p := rlgc.NewParameters(2, 300e-9, 0, 150e-12, 2.5e9)
	cmp := analytic.Compare(p.Z0, 40)

	out := Report("microstrip", p, &cmp)
	for _, want := range []string{"microstrip", "Z0", "44.72 Ω", "300.00 nH/m", "closed-form check", "ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(Report("bare", p, nil), "closed-form") {
		t.Error("comparison section rendered without a comparison")
	}

	p.InductanceBranch = rlgc.BranchClamped
	if !strings.Contains(Report("clamped", p, nil), string(rlgc.BranchClamped)) {
		t.Error("clamped inductance not flagged")
	}
}

func TestPotentialMap(t *testing.T) {
	sol := &solver.Solution{Potential: [][]float64{
		{0, 0, 0},
		{0, 0.5, 0},
		{1, 1, 1},
	}}
	out := PotentialMap(sol, 3, 3)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	if lines[0] != "@@@" {
		t.Errorf("top row should be the highest potential, got %q", lines[0])
	}
	if lines[2] != "   " {
		t.Errorf("bottom row should be blank, got %q", lines[2])
	}
	if []rune(lines[1])[1] != '=' {
		t.Errorf("center should be mid shade, got %q", lines[1])
	}
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(10, 0)
	if c.Grid[0][0] != 0x2801 || c.Grid[0][1] != 0x2880 {
		t.Errorf("unexpected cells %U %U", c.Grid[0][0], c.Grid[0][1])
	}

	c = NewCanvas(1, 1)
	c.FillRect(0, 0, 1, 3)
	if c.Grid[0][0] != 0x28ff {
		t.Errorf("expected full cell, got %U", c.Grid[0][0])
	}
}

func TestGeometryOutline(t *testing.T) {
	g, err := geometry.Microstrip(geometry.MicrostripSpec{
		SubstrateWidth: 5e-3, SubstrateHeight: 1.6e-3, TraceWidth: 3e-3, TraceThickness: 35e-6,
	})
	if err != nil {
		t.Fatal(err)
	}
	c := GeometryOutline(g, 40, 10)
	if out := c.String(); strings.Count(out, "\n") != 10 {
		t.Errorf("expected 10 rows:\n%s", out)
	}
	// The ground plane fills the lowest two dot rows of the bottom cells.
	if c.Grid[9][20] != 0x28e4 {
		t.Errorf("ground plane not drawn, got %U:\n%s", c.Grid[9][20], c)
	}
}

func TestSparklineAndProgress(t *testing.T) {
	if got := Sparkline([]float64{0, 1}, 2); got != "▁█" {
		t.Errorf("expected ▁█, got %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("expected empty line, got %q", got)
	}
	if bar := ProgressBar(1, 2, 10); strings.Count(bar, "█") != 5 {
		t.Errorf("expected half bar, got %q", bar)
	}
}

func TestSweepPlot(t *testing.T) {
	var points []sweep.Point
	for i, f := range []float64{1e8, 1e9, 1e10} {
		points = append(points, sweep.Point{Index: i, Frequency: f, Params: rlgc.NewParameters(float64(i+1), 300e-9, 0, 150e-12, f)})
	}
	out := SweepPlot(points, func(p *rlgc.Parameters) float64 { return p.R }, "R over frequency")
	if !strings.Contains(out, "R over frequency") {
		t.Errorf("caption missing:\n%s", out)
	}
	if SweepPlot(nil, func(p *rlgc.Parameters) float64 { return p.R }, "x") != "" {
		t.Error("expected empty plot for no points")
	}
}

func TestHexColors(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
	}{
		{"#00ccff", 0, 204, 255},
		{"#FF4444", 255, 68, 68},
		{"cyan", 255, 255, 255},
		{"#12345", 255, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b := parseHex(tt.in)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("parseHex(%q) = %d,%d,%d", tt.in, r, g, b)
			}
		})
	}
	if got := hexColor(300, -5, 171); got != "#ff00ab" {
		t.Errorf("expected #ff00ab, got %s", got)
	}
}

func TestGradientText(t *testing.T) {
	if GradientText("", "#000000", "#ffffff") != "" {
		t.Error("expected empty output")
	}
	if out := GradientText("abc", "#000000", "#ffffff"); !strings.Contains(out, "a") || !strings.Contains(out, "c") {
		t.Errorf("text lost: %q", out)
	}
}
