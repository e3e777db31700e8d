package models

import (
	"errors"
	"fmt"
)

var (
	ErrNoOptions      = errors.New("no initialized model options")
	ErrNoTrainingData = errors.New("no training data")
	ErrMissingValues  = errors.New("training segment contains missing values")
	ErrSeriesTooShort = errors.New("training segment too short for seasonal period")
	ErrConstantSeries = errors.New("constant training segment")
	ErrDegenerateFit  = errors.New("fit produced no residual variance")
	ErrNoUsableModel  = errors.New("no candidate model converged")
	ErrInvalidHorizon = errors.New("forecast horizon must be at least 1")
	ErrInvalidPeriod  = errors.New("seasonal period must be at least 1")
)

// FitError records why a model family could not produce a usable model for a
// training segment. Evaluators record it against the fold instead of aborting
// the sweep.
type FitError struct {
	Model  string
	Reason error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("%s fit failed, %v", e.Model, e.Reason)
}

func (e *FitError) Unwrap() error {
	return e.Reason
}

func newFitError(model string, reason error) *FitError {
	return &FitError{Model: model, Reason: reason}
}
