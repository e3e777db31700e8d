package timedataset

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnivariateDataset(t *testing.T) {
	start := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	months := GenerateMonthlyT(24, start)

	gapped := make([]time.Time, len(months))
	copy(gapped, months)
	gapped[10] = gapped[10].AddDate(0, 1, 0)

	unordered := make([]time.Time, len(months))
	copy(unordered, months)
	unordered[4] = unordered[3]

	testData := map[string]struct {
		name string
		t    []time.Time
		y    []float64
		err  error
	}{
		"valid":        {"Temperature", months, GenerateConstY(24, 11.2), nil},
		"no name":      {"", months, GenerateConstY(24, 11.2), ErrNoName},
		"no data":      {"Temperature", nil, nil, ErrNoData},
		"len mismatch": {"Temperature", months, GenerateConstY(23, 11.2), ErrDatasetLenMismatch},
		"gap":          {"Temperature", gapped, GenerateConstY(24, 11.2), ErrNotMonthly},
		"unordered":    {"Temperature", unordered, GenerateConstY(24, 11.2), ErrNonMonotonic},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewUnivariateDataset(td.name, td.t, td.y)
			if td.err != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.name, ds.Name)
			assert.Equal(t, len(td.y), ds.Len())
		})
	}
}

func TestDatasetCopyIsDeep(t *testing.T) {
	months := GenerateMonthlyT(12, time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC))
	ds, err := NewUnivariateDataset("Precipitation", months, GenerateConstY(12, 80.0))
	require.NoError(t, err)

	cp := ds.Copy()
	cp.Y[0] = -1.0
	assert.Equal(t, 80.0, ds.Y[0])
}

func TestDatasetSplit(t *testing.T) {
	n := 48
	months := GenerateMonthlyT(n, time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC))
	y := make([]float64, n)
	for i := range y {
		y[i] = float64(i)
	}
	ds, err := NewUnivariateDataset("Temperature", months, y)
	require.NoError(t, err)

	train, test := ds.Split(38)
	require.Equal(t, 38, train.Len())
	require.Equal(t, 10, test.Len())

	// contiguous with no overlap or gap
	assert.Equal(t, 37.0, train.Y[train.Len()-1])
	assert.Equal(t, 38.0, test.Y[0])
	assert.Equal(t, train.T[train.Len()-1].AddDate(0, 1, 0), test.T[0])
}

func TestMissingCount(t *testing.T) {
	months := GenerateMonthlyT(12, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	y := GenerateConstY(12, 5.0).MaskWithNaN(2, 7)
	ds, err := NewUnivariateDataset("Humidity", months, y)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.MissingCount())
	assert.True(t, math.IsNaN(ds.Y[2]))
	assert.True(t, math.IsNaN(ds.Y[7]))
}
