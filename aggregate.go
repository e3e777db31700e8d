package climaval

import (
	"github.com/climaval/climaval/stats"
)

// Aggregator collects fold metrics across variables and model families into
// one append-only table owned exclusively by the aggregator. Summaries are
// derived from the table on demand; grouping and row order follow first-seen
// input order so repeated runs produce identical tables.
type Aggregator struct {
	folds []FoldMetric

	keys []groupKey
	seen map[groupKey]struct{}
}

type groupKey struct {
	variable string
	model    string
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		seen: make(map[groupKey]struct{}),
	}
}

// Add appends fold metrics to the table.
func (a *Aggregator) Add(folds ...FoldMetric) {
	for _, fold := range folds {
		key := groupKey{variable: fold.Variable, model: fold.Model}
		if _, exists := a.seen[key]; !exists {
			a.seen[key] = struct{}{}
			a.keys = append(a.keys, key)
		}
		a.folds = append(a.folds, fold)
	}
}

// Folds returns a copy of the accumulated fold table.
func (a *Aggregator) Folds() []FoldMetric {
	out := make([]FoldMetric, len(a.folds))
	copy(out, a.folds)
	return out
}

// Summarize groups the fold table by (variable, model) and computes the mean
// and sample standard deviation of each metric. Undefined metrics are treated
// as missing values: excluded from the statistics, never counted as zero.
// Folds reports how many folds had a defined RMSE, so a group where every fit
// failed has Folds of zero and NaN statistics.
func (a *Aggregator) Summarize() []SummaryRow {
	grouped := make(map[groupKey][]FoldMetric)
	for _, fold := range a.folds {
		key := groupKey{variable: fold.Variable, model: fold.Model}
		grouped[key] = append(grouped[key], fold)
	}

	rows := make([]SummaryRow, 0, len(a.keys))
	for _, key := range a.keys {
		folds := grouped[key]
		rmse := make([]float64, 0, len(folds))
		mae := make([]float64, 0, len(folds))
		mape := make([]float64, 0, len(folds))
		for _, fold := range folds {
			rmse = append(rmse, float64(fold.RMSE))
			mae = append(mae, float64(fold.MAE))
			mape = append(mape, float64(fold.MAPE))
		}

		meanRMSE, sdRMSE, n := stats.NaNMeanStdDev(rmse)
		meanMAE, sdMAE, _ := stats.NaNMeanStdDev(mae)
		meanMAPE, sdMAPE, _ := stats.NaNMeanStdDev(mape)

		rows = append(rows, SummaryRow{
			Variable: key.variable,
			Model:    key.model,
			MeanRMSE: Metric(meanRMSE),
			SDRMSE:   Metric(sdRMSE),
			MeanMAE:  Metric(meanMAE),
			SDMAE:    Metric(sdMAE),
			MeanMAPE: Metric(meanMAPE),
			SDMAPE:   Metric(sdMAPE),
			Folds:    n,
		})
	}
	return rows
}

// HoldoutTables wraps holdout results into one table per model family,
// preserving model and variable input order.
func HoldoutTables(results []HoldoutResult) []HoldoutTable {
	var modelOrder []string
	grouped := make(map[string][]HoldoutResult)
	for _, res := range results {
		if _, exists := grouped[res.Model]; !exists {
			modelOrder = append(modelOrder, res.Model)
		}
		grouped[res.Model] = append(grouped[res.Model], res)
	}

	tables := make([]HoldoutTable, 0, len(modelOrder))
	for _, model := range modelOrder {
		tables = append(tables, HoldoutTable{
			Model: model,
			Rows:  grouped[model],
		})
	}
	return tables
}
