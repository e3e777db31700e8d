package climaval

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/climaval/climaval/models"
	"github.com/climaval/climaval/scores"
	"github.com/climaval/climaval/timedataset"
)

// EvaluateHoldout fits the model family on the first floor(fraction*n) points
// of the series and scores a forecast over the remaining points. The horizon
// is always the full test window, so train and test partition the series
// exactly. A failed fit is recorded on the result with NaN metrics and the
// retained reason; only configuration problems return an error.
func EvaluateHoldout(td *timedataset.TimeDataset, f models.Forecaster, frequency int, opt *HoldoutOptions) (*HoldoutResult, error) {
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
	nTrain := int(math.Floor(opt.TrainFraction * float64(n)))
	horizon := n - nTrain
	if nTrain < 1 || horizon < 1 {
		return nil, fmt.Errorf(
			"variable %q model %q train fraction %f on %d points leaves train=%d test=%d, %w",
			td.Name, f.Name(), opt.TrainFraction, n, nTrain, horizon, ErrTrainFraction,
		)
	}

	train, test := td.Split(nTrain)
	res := &HoldoutResult{
		Variable: td.Name,
		Model:    f.Name(),
		NTrain:   nTrain,
		Horizon:  horizon,
		TestT:    test.T,
		Actual:   test.Y,
	}

	fitted, err := f.Fit(train.Y, frequency)
	if err != nil {
		var fitErr *models.FitError
		if errors.As(err, &fitErr) {
			slog.Warn("holdout fit failed",
				"variable", td.Name, "model", f.Name(), "n_train", nTrain, "error", err.Error())
			s := scores.NaN()
			res.RMSE = Metric(s.RMSE)
			res.MAE = Metric(s.MAE)
			res.MAPE = Metric(s.MAPE)
			res.FitFailure = fitErr.Reason.Error()
			return res, nil
		}
		return nil, fmt.Errorf("variable %q model %q, %w", td.Name, f.Name(), err)
	}

	forecast, err := fitted.Forecast(horizon, opt.ConfidenceLevels)
	if err != nil {
		return nil, fmt.Errorf("variable %q model %q unable to forecast, %w", td.Name, f.Name(), err)
	}

	s, err := scores.NewScores(forecast.Point, test.Y)
	if err != nil {
		return nil, fmt.Errorf("variable %q model %q unable to score, %w", td.Name, f.Name(), err)
	}

	res.RMSE = Metric(s.RMSE)
	res.MAE = Metric(s.MAE)
	res.MAPE = Metric(s.MAPE)
	res.Forecast = forecast
	res.Fitted = fitted
	return res, nil
}
