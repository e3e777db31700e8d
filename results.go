// Package climaval evaluates the out-of-sample accuracy of forecasting model
// families against monthly climatic series using a single chronological
// holdout split and an expanding-window rolling-origin cross validation.
package climaval

import (
	"math"
	"time"

	"github.com/goccy/go-json"

	"github.com/climaval/climaval/models"
)

// Metric is an accuracy value that may be undefined. Undefined metrics are
// carried as NaN in memory and serialize to null so exporters never see an
// undefined value coerced to zero.
type Metric float64

func (m Metric) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(m)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(m))
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Metric(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Metric(v)
	return nil
}

// IsNaN reports whether the metric is undefined.
func (m Metric) IsNaN() bool {
	return math.IsNaN(float64(m))
}

// FoldMetric is the scored outcome of one rolling-origin fold. Immutable once
// computed. A fold whose model fit failed carries NaN metrics and the retained
// failure reason.
type FoldMetric struct {
	Variable string `json:"variable"`
	Model    string `json:"model"`
	// Origin is the training window length for this fold; the test window is
	// the Horizon points immediately after it.
	Origin int    `json:"origin"`
	RMSE   Metric `json:"rmse"`
	MAE    Metric `json:"mae"`
	MAPE   Metric `json:"mape"`
	// FitFailure holds the reason the fold's fit failed, empty on success.
	FitFailure string `json:"fit_failure,omitempty"`
}

// SummaryRow aggregates one (variable, model) group of rolling-origin folds.
// Derived from the fold table on demand and recomputable at any time.
// Undefined fold metrics are excluded from each mean and standard deviation
// rather than counted as zero, so MAPE may aggregate over fewer folds than
// Folds reports.
type SummaryRow struct {
	Variable string `json:"variable"`
	Model    string `json:"model"`
	MeanRMSE Metric `json:"mean_rmse"`
	SDRMSE   Metric `json:"sd_rmse"`
	MeanMAE  Metric `json:"mean_mae"`
	SDMAE    Metric `json:"sd_mae"`
	MeanMAPE Metric `json:"mean_mape"`
	SDMAPE   Metric `json:"sd_mape"`
	// Folds is the number of folds with a defined RMSE, i.e. folds whose fit
	// produced a usable forecast.
	Folds int `json:"folds"`
}

// HoldoutResult is the scored outcome of one single-split holdout evaluation
// for one (variable, model) pair. The forecast, realized test values, and
// fitted model are retained for this one evaluation only, e.g. for plotting,
// and are never reused across evaluations.
type HoldoutResult struct {
	Variable string `json:"variable"`
	Model    string `json:"model"`
	NTrain   int    `json:"n_train"`
	Horizon  int    `json:"horizon"`
	RMSE     Metric `json:"rmse"`
	MAE      Metric `json:"mae"`
	MAPE     Metric `json:"mape"`
	// FitFailure holds the reason the fit failed, empty on success.
	FitFailure string `json:"fit_failure,omitempty"`

	// Forecast holds the point forecast and interval bounds over the test
	// window, nil when the fit failed.
	Forecast *models.ForecastResult `json:"forecast,omitempty"`
	// TestT and Actual are the test window months and their realized values.
	// Actual may contain NaN for missing observations and is excluded from
	// serialization for that reason.
	TestT  []time.Time        `json:"-"`
	Actual []float64          `json:"-"`
	Fitted models.FittedModel `json:"-"`
}

// HoldoutTable groups holdout rows for one model family across variables,
// preserving variable input order.
type HoldoutTable struct {
	Model string          `json:"model"`
	Rows  []HoldoutResult `json:"rows"`
}

// Report is the full output of a validation run: the holdout tables, the raw
// rolling-origin fold table, and its per-group summary. All tables are plain
// records with no dependency on model internals.
type Report struct {
	Holdout []HoldoutTable `json:"holdout"`
	Folds   []FoldMetric   `json:"folds"`
	Summary []SummaryRow   `json:"summary"`
}
