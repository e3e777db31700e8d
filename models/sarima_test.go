package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantSeries(n int, val float64) []float64 {
	y := make([]float64, n)
	for i := range y {
		y[i] = val
	}
	return y
}

func TestAutoSARIMAOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *AutoSARIMAOptions
		err      error
		expected *AutoSARIMAOptions
	}{
		"nil": {nil, nil, NewDefaultAutoSARIMAOptions()},
		"budget defaults filled": {
			&AutoSARIMAOptions{MaxP: 3, MaxD: 2, MaxQ: 3, MaxSP: 1, MaxSD: 1, MaxSQ: 1},
			nil,
			NewDefaultAutoSARIMAOptions(),
		},
		"negative bound": {
			&AutoSARIMAOptions{MaxP: -1},
			ErrNoOptions,
			nil,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestAutoSARIMAFitForecast(t *testing.T) {
	n := 72
	horizon := 6
	y := seasonalSeries(n + horizon)

	f, err := NewAutoSARIMA(nil)
	require.NoError(t, err)
	assert.Equal(t, "sarima", f.Name())

	fitted, err := f.Fit(y[:n], 12)
	require.NoError(t, err)

	res, err := fitted.Forecast(horizon, []float64{0.80, 0.95})
	require.NoError(t, err)
	require.Len(t, res.Point, horizon)
	require.Len(t, res.Intervals, 2)

	var sse float64
	for h := 0; h < horizon; h++ {
		require.False(t, math.IsNaN(res.Point[h]))
		require.False(t, math.IsInf(res.Point[h], 0))
		diff := res.Point[h] - y[n+h]
		sse += diff * diff
	}
	rmse := math.Sqrt(sse / float64(horizon))
	assert.Less(t, rmse, 2.0)

	for _, interval := range res.Intervals {
		assert.Greater(t, interval.Level, 0.0)
		assert.Less(t, interval.Level, 1.0)
		for h := 0; h < horizon; h++ {
			assert.Less(t, interval.Lower[h], res.Point[h])
			assert.Greater(t, interval.Upper[h], res.Point[h])
		}
	}
}

func TestAutoSARIMAFitFailures(t *testing.T) {
	missing := seasonalSeries(48)
	missing[5] = math.NaN()

	tiled := make([]float64, 48)
	pattern := []float64{10, 12, 11, 13, 12, 14, 13, 12, 11, 13, 12, 10}
	for i := range tiled {
		tiled[i] = pattern[i%12]
	}

	testData := map[string]struct {
		train  []float64
		period int
		reason error
	}{
		"empty":          {nil, 12, ErrNoTrainingData},
		"invalid period": {seasonalSeries(48), 0, ErrInvalidPeriod},
		"missing values": {missing, 12, ErrMissingValues},
		"too short":      {seasonalSeries(20), 12, ErrSeriesTooShort},
		"constant":       {constantSeries(36, 7.5), 12, ErrConstantSeries},
		"no variance":    {tiled, 12, ErrNoUsableModel},
	}

	f, err := NewAutoSARIMA(nil)
	require.NoError(t, err)

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := f.Fit(td.train, td.period)
			require.Error(t, err)

			var fitErr *FitError
			require.ErrorAs(t, err, &fitErr)
			assert.Equal(t, "sarima", fitErr.Model)
			assert.ErrorIs(t, err, td.reason)
		})
	}
}

func TestAutoSARIMAInvalidHorizon(t *testing.T) {
	f, err := NewAutoSARIMA(nil)
	require.NoError(t, err)

	fitted, err := f.Fit(seasonalSeries(60), 12)
	require.NoError(t, err)

	_, err = fitted.Forecast(-1, nil)
	assert.ErrorIs(t, err, ErrInvalidHorizon)
}

func TestAutoSARIMASearchBudget(t *testing.T) {
	f, err := NewAutoSARIMA(&AutoSARIMAOptions{
		MaxP: 1, MaxD: 1, MaxQ: 1, MaxSP: 1, MaxSD: 1, MaxSQ: 1,
		MaxIterations: 25,
		MaxModels:     3,
	})
	require.NoError(t, err)

	fitted, err := f.Fit(seasonalSeries(60), 12)
	require.NoError(t, err)

	res, err := fitted.Forecast(3, nil)
	require.NoError(t, err)
	assert.Len(t, res.Point, 3)
	assert.Empty(t, res.Intervals)
}
