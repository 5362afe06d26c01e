package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/emsolve/internal/rlgc"
	"github.com/san-kum/emsolve/internal/sweep"
)

type series struct {
	title string
	unit  string
	get   func(*rlgc.Parameters) float64
}

var reportSeries = []series{
	{"Characteristic impedance", "Z0 (ohm)", func(p *rlgc.Parameters) float64 { return p.Z0 }},
	{"Effective permittivity", "eps_eff", func(p *rlgc.Parameters) float64 { return p.EpsilonEff }},
	{"Attenuation", "alpha (dB/m)", func(p *rlgc.Parameters) float64 { return p.LossDBPerMeter() }},
	{"Resistance", "R (ohm/m)", func(p *rlgc.Parameters) float64 { return p.R }},
}

// SweepReport renders an HTML page with one line chart per quantity.
func SweepReport(w io.Writer, title string, points []sweep.Point) error {
	x := make([]string, len(points))
	for i, pt := range points {
		x[i] = FormatFrequency(pt.Frequency)
	}

	page := components.NewPage()
	page.SetPageTitle(title)
	for _, s := range reportSeries {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{
				Title:    s.title,
				Subtitle: title,
			}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Name: "frequency"}),
			charts.WithYAxisOpts(opts.YAxis{Name: s.unit, Scale: opts.Bool(true)}),
		)

		data := make([]opts.LineData, len(points))
		for i, v := range sweep.Series(points, s.get) {
			data[i] = opts.LineData{Value: v}
		}
		line.SetXAxis(x).AddSeries(s.unit, data)
		page.AddCharts(line)
	}
	return page.Render(w)
}

func SaveSweepReport(path, title string, points []sweep.Point) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return SweepReport(file, title, points)
}

// FormatFrequency prints f with an engineering unit, e.g. "2.5 GHz".
func FormatFrequency(f float64) string {
	switch {
	case f >= 1e9:
		return fmt.Sprintf("%.4g GHz", f/1e9)
	case f >= 1e6:
		return fmt.Sprintf("%.4g MHz", f/1e6)
	case f >= 1e3:
		return fmt.Sprintf("%.4g kHz", f/1e3)
	}
	return fmt.Sprintf("%.4g Hz", f)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
