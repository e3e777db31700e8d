package climaval

import (
	"fmt"
	"log/slog"

	"github.com/climaval/climaval/models"
	"github.com/climaval/climaval/timedataset"
)

// Runner drives a full validation run: every supplied series is evaluated
// against every model family under both protocols, and the results flow into
// one aggregated report. Variable order and model family order in the report
// match input order.
type Runner struct {
	opt         *Options
	forecasters []models.Forecaster
}

// NewRunner creates a runner for the given model families. If no options are
// provided a default is used.
func NewRunner(opt *Options, forecasters ...models.Forecaster) (*Runner, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if len(forecasters) == 0 {
		return nil, ErrNoForecaster
	}
	return &Runner{
		opt:         opt,
		forecasters: forecasters,
	}, nil
}

// Run evaluates each series under the holdout and rolling-origin protocols
// for each model family. A configuration error is fatal to that one
// (variable, model) evaluation and is reported in its place, without stopping
// the rest of the run.
func (r *Runner) Run(datasets ...*timedataset.TimeDataset) (*Report, error) {
	if len(datasets) == 0 {
		return nil, ErrNoDataset
	}

	var holdout []HoldoutResult
	agg := NewAggregator()

	for _, td := range datasets {
		for _, f := range r.forecasters {
			res, err := EvaluateHoldout(td, f, r.opt.Frequency, r.opt.Holdout)
			if err != nil {
				slog.Warn("skipping holdout evaluation",
					"variable", td.Name, "model", f.Name(), "error", err.Error())
			} else {
				holdout = append(holdout, *res)
			}

			folds, err := EvaluateRollingOrigin(td, f, r.opt.Frequency, r.opt.RollingOrigin)
			if err != nil {
				slog.Warn("skipping rolling-origin evaluation",
					"variable", td.Name, "model", f.Name(), "error", err.Error())
				continue
			}
			if len(folds) == 0 {
				slog.Warn("rolling-origin produced no folds",
					"variable", td.Name, "model", f.Name(),
					"length", td.Len(), "initial_window", r.opt.RollingOrigin.InitialWindow)
				continue
			}
			agg.Add(folds...)
		}
	}

	return &Report{
		Holdout: HoldoutTables(holdout),
		Folds:   agg.Folds(),
		Summary: agg.Summarize(),
	}, nil
}

// DefaultForecasters returns the two model families evaluated by a standard
// run: the automatic seasonal ARIMA and the automatic exponential smoothing
// model.
func DefaultForecasters() ([]models.Forecaster, error) {
	sarima, err := models.NewAutoSARIMA(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize sarima family, %w", err)
	}
	ets, err := models.NewAutoETS(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize ets family, %w", err)
	}
	return []models.Forecaster{sarima, ets}, nil
}
