package climaval

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/climaval/climaval/models"
	"github.com/climaval/climaval/scores"
	"github.com/climaval/climaval/timedataset"
)

// EvaluateRollingOrigin runs an expanding-window walk-forward validation:
// each origin trains on the full prefix up to the origin and scores a
// forecast over the following horizon months, so the training window only
// ever grows. Folds are independent and may be evaluated in parallel, but the
// returned slice is always in ascending origin order.
//
// A series too short to produce any origin yields zero folds, not an error;
// callers must check the fold count before trusting a summary. A fold whose
// fit fails is recorded with NaN metrics and its reason, without stopping the
// sweep.
func EvaluateRollingOrigin(td *timedataset.TimeDataset, f models.Forecaster, frequency int, opt *RollingOriginOptions) ([]FoldMetric, error) {
	if td == nil {
		return nil, ErrNoDataset
	}
	if f == nil {
		return nil, ErrNoForecaster
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("variable %q model %q, %w", td.Name, f.Name(), err)
	}

	n := td.Len()
	if opt.InitialWindow >= n {
		return nil, fmt.Errorf(
			"variable %q model %q initial window %d on %d points, %w",
			td.Name, f.Name(), opt.InitialWindow, n, ErrInitialTooLarge,
		)
	}

	var origins []int
	for origin := opt.InitialWindow; origin+opt.Horizon <= n; origin += opt.Step {
		origins = append(origins, origin)
	}
	folds := make([]FoldMetric, len(origins))
	if len(origins) == 0 {
		return folds, nil
	}

	parallelization := opt.Parallelization
	if parallelization < 1 {
		parallelization = 1
	}

	sem := make(chan struct{}, parallelization)
	var wg sync.WaitGroup
	for i, origin := range origins {
		sem <- struct{}{}
		wg.Add(1)

		go func(i, origin int) {
			defer func() {
				wg.Done()
				<-sem
			}()
			folds[i] = evaluateFold(td, f, frequency, origin, opt.Horizon)
		}(i, origin)
	}
	wg.Wait()

	return folds, nil
}

// evaluateFold runs one fit/forecast/score cycle. The fitted model and
// forecast are transient and discarded when the fold metric is produced.
func evaluateFold(td *timedataset.TimeDataset, f models.Forecaster, frequency, origin, horizon int) FoldMetric {
	fold := FoldMetric{
		Variable: td.Name,
		Model:    f.Name(),
		Origin:   origin,
	}

	train := td.Slice(0, origin)
	test := td.Slice(origin, origin+horizon)

	fitted, err := f.Fit(train.Y, frequency)
	if err != nil {
		var fitErr *models.FitError
		reason := err.Error()
		if errors.As(err, &fitErr) {
			reason = fitErr.Reason.Error()
		}
		slog.Warn("rolling-origin fit failed",
			"variable", td.Name, "model", f.Name(), "origin", origin, "error", err.Error())
		return foldWithNaN(fold, reason)
	}

	forecast, err := fitted.Forecast(horizon, nil)
	if err != nil {
		slog.Warn("rolling-origin forecast failed",
			"variable", td.Name, "model", f.Name(), "origin", origin, "error", err.Error())
		return foldWithNaN(fold, err.Error())
	}

	s, err := scores.NewScores(forecast.Point, test.Y)
	if err != nil {
		slog.Warn("rolling-origin scoring failed",
			"variable", td.Name, "model", f.Name(), "origin", origin, "error", err.Error())
		return foldWithNaN(fold, err.Error())
	}

	fold.RMSE = Metric(s.RMSE)
	fold.MAE = Metric(s.MAE)
	fold.MAPE = Metric(s.MAPE)
	return fold
}

func foldWithNaN(fold FoldMetric, reason string) FoldMetric {
	s := scores.NaN()
	fold.RMSE = Metric(s.RMSE)
	fold.MAE = Metric(s.MAE)
	fold.MAPE = Metric(s.MAPE)
	fold.FitFailure = reason
	return fold
}
