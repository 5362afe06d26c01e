package rlgc

import "fmt"

// Pipeline stages reported by StageError.
const (
	StageGeometry = "geometry"
	StageSolve    = "solve"
	StageRLGC     = "rlgc"
)

// StageError records which step of the parameter pipeline failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
