package analytic

import "math"

// DefaultTolerance is the relative error accepted between a field
// solution and the closed-form estimate.
const DefaultTolerance = 0.30

type Comparison struct {
	Analytic      float64 `json:"analytical_z0_ohm"`
	Numeric       float64 `json:"numerical_z0_ohm"`
	Difference    float64 `json:"difference_ohm"`
	RelativeError float64 `json:"relative_error"`
}

func Compare(numeric, analytic float64) Comparison {
	c := Comparison{
		Analytic:   analytic,
		Numeric:    numeric,
		Difference: numeric - analytic,
	}
	if analytic != 0 {
		c.RelativeError = math.Abs(c.Difference) / math.Abs(analytic)
	} else if numeric != 0 {
		c.RelativeError = math.Inf(1)
	}
	return c
}

// Within reports whether the relative error is at most tol.
func (c Comparison) Within(tol float64) bool {
	return c.RelativeError <= tol
}
