package export

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/san-kum/emsolve/internal/analytic"
	"github.com/san-kum/emsolve/internal/config"
	"github.com/san-kum/emsolve/internal/rlgc"
	"github.com/san-kum/emsolve/internal/solver"
)

type GeometryParameters struct {
	Width          float64 `json:"width_m"`
	Height         float64 `json:"height_m"`
	TraceWidth     float64 `json:"trace_width_m"`
	TraceThickness float64 `json:"trace_thickness_m"`
	SubstrateEr    float64 `json:"substrate_er"`
	Conductor      string  `json:"conductor"`
}

type SolverParameters struct {
	NX int `json:"nx"`
	NY int `json:"ny"`
}

// AnalyticalComparison is either a comparison or the reason none could
// be made.
type AnalyticalComparison struct {
	AnalyticalZ0         float64 `json:"analytical_z0_ohm,omitempty"`
	Difference           float64 `json:"difference_ohm,omitempty"`
	RelativeErrorPercent float64 `json:"relative_error_percent,omitempty"`
	Error                string  `json:"error,omitempty"`
}

// Results is the JSON document written by --output-json.
type Results struct {
	GeometryType      string                    `json:"geometry_type"`
	Frequency         float64                   `json:"frequency_hz"`
	Geometry          GeometryParameters        `json:"geometry_parameters"`
	Parameters        *rlgc.Parameters          `json:"transmission_line_parameters"`
	Solver            SolverParameters          `json:"solver_parameters"`
	Comparison        *AnalyticalComparison     `json:"analytical_comparison,omitempty"`
	CapacitanceMatrix *solver.CapacitanceMatrix `json:"capacitance_matrix,omitempty"`
}

func NewResults(kind string, gc config.GeometryConfig, conductor string, p solver.Params, params *rlgc.Parameters) *Results {
	return &Results{
		GeometryType: kind,
		Frequency:    params.Frequency,
		Geometry: GeometryParameters{
			Width:          gc.SubstrateWidth,
			Height:         gc.SubstrateHeight,
			TraceWidth:     gc.TraceWidth,
			TraceThickness: gc.TraceThickness,
			SubstrateEr:    gc.EpsilonR,
			Conductor:      conductor,
		},
		Parameters: params,
		Solver:     SolverParameters{NX: p.NX, NY: p.NY},
	}
}

// WithComparison attaches c, or err when the closed form was unavailable.
func (r *Results) WithComparison(c analytic.Comparison, err error) *Results {
	if err != nil {
		r.Comparison = &AnalyticalComparison{Error: err.Error()}
		return r
	}
	r.Comparison = &AnalyticalComparison{
		AnalyticalZ0:         c.Analytic,
		Difference:           math.Abs(c.Difference),
		RelativeErrorPercent: c.RelativeError * 100,
	}
	return r
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func SaveJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, v)
}
