package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/emsolve/internal/analytic"
	"github.com/san-kum/emsolve/internal/rlgc"
)

var siPrefixes = []struct {
	exp    int
	prefix string
}{
	{12, "T"}, {9, "G"}, {6, "M"}, {3, "k"}, {0, ""},
	{-3, "m"}, {-6, "µ"}, {-9, "n"}, {-12, "p"}, {-15, "f"},
}

// FormatSI prints v with an engineering prefix and unit, e.g. 3.1e-7 H/m
// as "310.00 nH/m".
func FormatSI(v float64, unit string) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%.2f %s", v, unit)
	}
	exp := int(math.Floor(math.Log10(math.Abs(v))))
	for _, p := range siPrefixes {
		if exp >= p.exp {
			return fmt.Sprintf("%.2f %s%s", v/math.Pow(10, float64(p.exp)), p.prefix, unit)
		}
	}
	return fmt.Sprintf("%.3e %s", v, unit)
}

// Report renders the parameter table. cmp may be nil.
func Report(title string, p *rlgc.Parameters, cmp *analytic.Comparison) string {
	var s strings.Builder
	s.WriteString(Header.Render(title) + "\n\n")

	row := func(label, value string) {
		s.WriteString(Label.Render(label) + Value.Render(value) + "\n")
	}

	s.WriteString(Subtle.Render("primary (per unit length)") + "\n")
	row("R", FormatSI(p.R, "Ω/m"))
	row("L", FormatSI(p.L, "H/m"))
	row("G", FormatSI(p.G, "S/m"))
	row("C", FormatSI(p.C, "F/m"))

	s.WriteString("\n" + Subtle.Render("secondary") + "\n")
	row("Z0", fmt.Sprintf("%.2f Ω", p.Z0))
	row("εeff", fmt.Sprintf("%.3f", p.EpsilonEff))
	row("v_phase", fmt.Sprintf("%s (%.3f c)", FormatSI(p.VPhase, "m/s"), p.VPhase/rlgc.CLight))
	row("α", fmt.Sprintf("%.4g Np/m (%.4g dB/m)", p.Alpha, p.LossDBPerMeter()))
	row("β", fmt.Sprintf("%.4g rad/m", p.Beta))
	row("frequency", FormatSI(p.Frequency, "Hz"))
	if p.InductanceBranch != "" && p.InductanceBranch != rlgc.BranchAirFilled {
		row("L source", Warn.Render(string(p.InductanceBranch)))
	}

	if cmp != nil {
		s.WriteString("\n" + Subtle.Render("closed-form check") + "\n")
		row("analytic Z0", fmt.Sprintf("%.2f Ω", cmp.Analytic))
		status := Good.Render("ok")
		if !cmp.Within(analytic.DefaultTolerance) {
			status = Bad.Render("outside tolerance")
		}
		row("difference", fmt.Sprintf("%.2f Ω (%.1f%%) ", math.Abs(cmp.Difference), cmp.RelativeError*100)+status)
	}

	return Panel.Render(s.String())
}
