package scores

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScores(t *testing.T) {
	tol := 1e-9
	testData := map[string]struct {
		predicted []float64
		actual    []float64
		expected  *Scores
	}{
		"perfect": {
			predicted: []float64{10, 12, 11},
			actual:    []float64{10, 12, 11},
			expected:  &Scores{RMSE: 0, MAE: 0, MAPE: 0},
		},
		"constant offset": {
			predicted: []float64{11, 13, 12, 14},
			actual:    []float64{10, 12, 11, 13},
			expected: &Scores{
				RMSE: 1,
				MAE:  1,
				MAPE: (1.0/10 + 1.0/12 + 1.0/11 + 1.0/13) / 4 * 100,
			},
		},
		"missing actual excluded": {
			predicted: []float64{11, 99, 12},
			actual:    []float64{10, math.NaN(), 11},
			expected: &Scores{
				RMSE: 1,
				MAE:  1,
				MAPE: (1.0/10 + 1.0/11) / 2 * 100,
			},
		},
		"zero actual excluded from mape only": {
			predicted: []float64{2, 11},
			actual:    []float64{0, 10},
			expected: &Scores{
				RMSE: math.Sqrt((4.0 + 1.0) / 2),
				MAE:  1.5,
				MAPE: 10,
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			s, err := NewScores(td.predicted, td.actual)
			require.NoError(t, err)
			assert.InDelta(t, td.expected.RMSE, s.RMSE, tol)
			assert.InDelta(t, td.expected.MAE, s.MAE, tol)
			assert.InDelta(t, td.expected.MAPE, s.MAPE, tol)
		})
	}
}

func TestScoresLenMismatch(t *testing.T) {
	_, err := NewScores([]float64{1, 2}, []float64{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResLenMismatch)
}

func TestMAPEUndefined(t *testing.T) {
	testData := map[string]struct {
		predicted []float64
		actual    []float64
	}{
		"all zero":            {[]float64{1, 2}, []float64{0, 0}},
		"all missing":         {[]float64{1, 2}, []float64{math.NaN(), math.NaN()}},
		"zero or missing mix": {[]float64{1, 2, 3}, []float64{0, math.NaN(), 0}},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			mape, err := MAPE(td.predicted, td.actual)
			require.NoError(t, err)
			assert.True(t, math.IsNaN(mape))
		})
	}
}

// RMSE >= MAE >= 0 for any pair without missing values, with equality only
// when all absolute errors are equal.
func TestRMSEDominatesMAE(t *testing.T) {
	testData := map[string]struct {
		predicted []float64
		actual    []float64
		equal     bool
	}{
		"equal abs errors":  {[]float64{11, 9, 11}, []float64{10, 10, 10}, true},
		"uneven abs errors": {[]float64{11, 10, 14}, []float64{10, 10, 10}, false},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			rmse, err := RMSE(td.predicted, td.actual)
			require.NoError(t, err)
			mae, err := MAE(td.predicted, td.actual)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, mae, 0.0)
			if td.equal {
				assert.InDelta(t, rmse, mae, 1e-9)
			} else {
				assert.Greater(t, rmse, mae)
			}
		})
	}
}

func TestAllMissingActual(t *testing.T) {
	s, err := NewScores([]float64{1, 2}, []float64{math.NaN(), math.NaN()})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(s.RMSE))
	assert.True(t, math.IsNaN(s.MAE))
	assert.True(t, math.IsNaN(s.MAPE))
}
