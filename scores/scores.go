// Package scores computes out-of-sample accuracy metrics between realized and
// predicted values. Positions where the realized value is missing (NaN) are
// excluded from every metric; they are never imputed or coerced to zero.
package scores

import (
	"errors"
	"fmt"
	"math"
)

var ErrResLenMismatch = errors.New("predicted and actual have different lengths")

// Scores tracks the accuracy of one forecast against its realized values. Any
// metric may be NaN when it has no valid positions to average over, e.g. MAPE
// over an all-zero actual. NaN scores propagate into aggregation as missing
// values rather than zeros.
type Scores struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	MAPE float64 `json:"mape"`
}

// NewScores calculates the accuracy scores given the predicted and actual
// input slice values.
func NewScores(predicted, actual []float64) (*Scores, error) {
	rmse, err := RMSE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute root mean squared error, %w", err)
	}
	mae, err := MAE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute error, %w", err)
	}
	mape, err := MAPE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute percent error, %w", err)
	}

	return &Scores{
		RMSE: rmse,
		MAE:  mae,
		MAPE: mape,
	}, nil
}

// NaN returns a Scores with every metric set to NaN. Used to record folds
// whose model fit failed.
func NaN() *Scores {
	return &Scores{
		RMSE: math.NaN(),
		MAE:  math.NaN(),
		MAPE: math.NaN(),
	}
}

// RMSE computes the root mean squared error over positions where actual is
// present. A score of 0 means a perfect match with no errors.
func RMSE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}

	var sse float64
	var cnt int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		diff := actual[i] - predicted[i]
		sse += diff * diff
		cnt++
	}
	if cnt == 0 {
		return math.NaN(), nil
	}
	return math.Sqrt(sse / float64(cnt)), nil
}

// MAE computes the mean absolute error over positions where actual is
// present. A score of 0 means a perfect match with no errors.
func MAE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}

	var sae float64
	var cnt int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		sae += math.Abs(actual[i] - predicted[i])
		cnt++
	}
	if cnt == 0 {
		return math.NaN(), nil
	}
	return sae / float64(cnt), nil
}

// MAPE calculates the mean absolute percent error, scaled to percent. Only
// positions where actual is present and non-zero contribute; a zero actual is
// a valid observation but has no percent error. When no position qualifies the
// metric is undefined and reported as NaN.
func MAPE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}

	var sape float64
	var cnt int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) || actual[i] == 0 {
			continue
		}
		sape += math.Abs((actual[i] - predicted[i]) / actual[i])
		cnt++
	}
	if cnt == 0 {
		return math.NaN(), nil
	}
	return sape / float64(cnt) * 100.0, nil
}
