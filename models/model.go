// Package models contains the forecasting model families evaluated by the
// validation engine. Each family fits a training segment and forecasts a
// fixed horizon through the same narrow interface, so evaluators never depend
// on a family's internals.
package models

// Interval holds lower and upper prediction bounds at one confidence level.
type Interval struct {
	Level float64   `json:"level"`
	Lower []float64 `json:"lower"`
	Upper []float64 `json:"upper"`
}

// ForecastResult is the point forecast for a fixed horizon with optional
// prediction intervals. It carries plain slices only so downstream consumers
// have no dependency on fitted model internals.
type ForecastResult struct {
	Point     []float64  `json:"point"`
	Intervals []Interval `json:"intervals,omitempty"`
}

// FittedModel is the opaque result of fitting one model family to one
// training segment. It is owned by the evaluation call that created it and is
// discarded once its forecast is produced.
type FittedModel interface {
	// Forecast produces a point forecast of the given horizon along with
	// prediction intervals at each of the requested confidence levels.
	Forecast(horizon int, confidenceLevels []float64) (*ForecastResult, error)
}

// Forecaster fits one model family to a training segment with the given
// seasonal period. A failed or degenerate fit surfaces as a *FitError rather
// than a silently degenerate forecast.
type Forecaster interface {
	Name() string
	Fit(train []float64, period int) (FittedModel, error)
}
