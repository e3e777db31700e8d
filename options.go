package climaval

import (
	"errors"
	"fmt"

	"github.com/climaval/climaval/timedataset"
)

var (
	ErrNoDataset        = errors.New("no dataset")
	ErrNoForecaster     = errors.New("no forecasting model family")
	ErrTrainFraction    = errors.New("training fraction must leave at least one train and one test point")
	ErrInitialTooLarge  = errors.New("initial window must be smaller than the series length")
	ErrNonPositiveInit  = errors.New("initial window must be at least 1")
	ErrNonPositiveHrzn  = errors.New("horizon must be at least 1")
	ErrNonPositiveStep  = errors.New("step must be at least 1")
	ErrInvalidFrequency = errors.New("seasonal frequency must be at least 1")
)

// HoldoutOptions configures the single chronological train/test split.
type HoldoutOptions struct {
	// TrainFraction is the fraction of the series used as the training
	// prefix; the remainder becomes the test window and the forecast horizon.
	TrainFraction float64 `json:"train_fraction"`
	// ConfidenceLevels are the prediction interval levels requested from the
	// fitted model for the illustrative holdout forecast.
	ConfidenceLevels []float64 `json:"confidence_levels"`
}

// NewDefaultHoldoutOptions returns an 80/20 split with 80% and 95% bands.
func NewDefaultHoldoutOptions() *HoldoutOptions {
	return &HoldoutOptions{
		TrainFraction:    0.8,
		ConfidenceLevels: []float64{0.80, 0.95},
	}
}

// Validate fills in defaults and rejects fractions outside (0, 1).
func (o *HoldoutOptions) Validate() (*HoldoutOptions, error) {
	if o == nil {
		return NewDefaultHoldoutOptions(), nil
	}
	out := *o
	if out.TrainFraction == 0 {
		out.TrainFraction = 0.8
	}
	if out.TrainFraction <= 0 || out.TrainFraction >= 1 {
		return nil, fmt.Errorf("train fraction %f, %w", out.TrainFraction, ErrTrainFraction)
	}
	return &out, nil
}

// RollingOriginOptions configures the expanding-window walk-forward
// validation.
type RollingOriginOptions struct {
	// InitialWindow is the first training window length in months.
	InitialWindow int `json:"initial_window"`
	// Horizon is the number of months forecast from each origin.
	Horizon int `json:"horizon"`
	// Step is the number of months each successive origin advances.
	Step int `json:"step"`
	// Parallelization sets how many folds to evaluate concurrently. Zero or
	// one evaluates folds sequentially. Output order is ascending origin
	// regardless.
	Parallelization int `json:"parallelization"`
}

// NewDefaultRollingOriginOptions returns a three-year initial window with
// one-month horizon and step.
func NewDefaultRollingOriginOptions() *RollingOriginOptions {
	return &RollingOriginOptions{
		InitialWindow: 3 * timedataset.Frequency,
		Horizon:       1,
		Step:          1,
	}
}

// Validate fills in defaults and rejects non-positive window parameters.
func (o *RollingOriginOptions) Validate() (*RollingOriginOptions, error) {
	if o == nil {
		return NewDefaultRollingOriginOptions(), nil
	}
	out := *o
	if out.Horizon == 0 {
		out.Horizon = 1
	}
	if out.Step == 0 {
		out.Step = 1
	}
	if out.InitialWindow < 1 {
		return nil, fmt.Errorf("initial window %d, %w", out.InitialWindow, ErrNonPositiveInit)
	}
	if out.Horizon < 1 {
		return nil, fmt.Errorf("horizon %d, %w", out.Horizon, ErrNonPositiveHrzn)
	}
	if out.Step < 1 {
		return nil, fmt.Errorf("step %d, %w", out.Step, ErrNonPositiveStep)
	}
	return &out, nil
}

// Options configures a full validation run. The seasonal frequency and
// confidence levels are threaded explicitly so evaluations are pure functions
// of their inputs.
type Options struct {
	// Frequency is the seasonal period passed to every model fit.
	Frequency int `json:"frequency"`

	Holdout       *HoldoutOptions       `json:"holdout"`
	RollingOrigin *RollingOriginOptions `json:"rolling_origin"`
}

// NewDefaultOptions returns the monthly defaults.
func NewDefaultOptions() *Options {
	return &Options{
		Frequency:     timedataset.Frequency,
		Holdout:       NewDefaultHoldoutOptions(),
		RollingOrigin: NewDefaultRollingOriginOptions(),
	}
}

// Validate fills in defaults for nested options.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	out := *o
	if out.Frequency == 0 {
		out.Frequency = timedataset.Frequency
	}
	if out.Frequency < 1 {
		return nil, fmt.Errorf("frequency %d, %w", out.Frequency, ErrInvalidFrequency)
	}
	holdout, err := out.Holdout.Validate()
	if err != nil {
		return nil, err
	}
	out.Holdout = holdout
	rolling, err := out.RollingOrigin.Validate()
	if err != nil {
		return nil, err
	}
	out.RollingOrigin = rolling
	return &out, nil
}
