// Package analytic holds closed-form characteristic impedance estimates
// used to cross-check field solutions.
package analytic

import (
	"errors"
	"fmt"
	"math"
)

// Line kinds understood by Z0.
const (
	Microstrip = "microstrip"
	Stripline  = "stripline"
)

var ErrUnknownKind = errors.New("analytic: unknown line kind")

// MicrostripZ0 is Wheeler's approximation for a microstrip of width w on a
// substrate of height h.
func MicrostripZ0(w, h, er float64) float64 {
	u := w / h
	if u <= 1 {
		return 60 / math.Sqrt(er) * math.Log(8/u+u/4)
	}
	return 120 * math.Pi / (math.Sqrt(er) * (u + 1.393 + 0.667*math.Log(u+1.444)))
}

// StriplineZ0 approximates a centered stripline of width w between planes
// h apart.
func StriplineZ0(w, h, er float64) float64 {
	u := w / h
	if u <= 0.35 {
		return 60 / math.Sqrt(er) * math.Log(4/(u*math.Sqrt(1-u*u)))
	}
	return 60 / math.Sqrt(er) * math.Log(2/u+1.7*u)
}

func Z0(kind string, w, h, er float64) (float64, error) {
	switch kind {
	case Microstrip:
		return MicrostripZ0(w, h, er), nil
	case Stripline:
		return StriplineZ0(w, h, er), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Kinds lists the supported line kinds.
func Kinds() []string {
	return []string{Microstrip, Stripline}
}
