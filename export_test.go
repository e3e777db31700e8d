package climaval

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	nan := Metric(math.NaN())
	report := &Report{
		Holdout: []HoldoutTable{
			{
				Model: "ets",
				Rows: []HoldoutResult{
					{Variable: "tmin", Model: "ets", NTrain: 38, Horizon: 10, RMSE: 1.25, MAE: 1, MAPE: 8.5},
					{Variable: "precip", Model: "ets", NTrain: 38, Horizon: 10, RMSE: nan, MAE: nan, MAPE: nan, FitFailure: "constant training segment"},
				},
			},
		},
		Folds: []FoldMetric{
			{Variable: "tmin", Model: "ets", Origin: 36, RMSE: 1.5, MAE: 1.5, MAPE: nan},
		},
		Summary: []SummaryRow{
			{Variable: "tmin", Model: "ets", MeanRMSE: 1.5, SDRMSE: nan, MeanMAE: 1.5, SDMAE: nan, MeanMAPE: nan, SDMAPE: nan, Folds: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, report))

	// undefined metrics serialize as null, never as zero
	assert.Contains(t, buf.String(), `"rmse": null`)
	assert.Contains(t, buf.String(), `"mape": null`)
	assert.Contains(t, buf.String(), `"fit_failure": "constant training segment"`)
	assert.NotContains(t, buf.String(), `NaN`)

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Folds, 1)
	assert.Equal(t, Metric(1.5), decoded.Folds[0].RMSE)
	assert.True(t, decoded.Folds[0].MAPE.IsNaN())
	require.Len(t, decoded.Summary, 1)
	assert.Equal(t, 1, decoded.Summary[0].Folds)
	assert.True(t, decoded.Summary[0].SDRMSE.IsNaN())
}

func TestExportJSON(t *testing.T) {
	report := &Report{
		Summary: []SummaryRow{
			{Variable: "tmin", Model: "sarima", MeanRMSE: 2, MeanMAE: 1.5, MeanMAPE: 9, Folds: 12},
		},
	}

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, ExportJSON(path, report))

	var decoded Report
	bytesRead, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bytesRead, &decoded))
	require.Len(t, decoded.Summary, 1)
	assert.Equal(t, "sarima", decoded.Summary[0].Model)
	assert.Equal(t, 12, decoded.Summary[0].Folds)
}
