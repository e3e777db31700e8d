package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestACF(t *testing.T) {
	// alternating series has strong negative lag-1 autocorrelation
	y := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	acf := ACF(y, 2)
	require.Len(t, acf, 3)

	assert.InDelta(t, 1.0, acf[0], 1e-9)
	assert.Less(t, acf[1], -0.5)
	assert.Greater(t, acf[2], 0.5)
}

func TestACFDegenerate(t *testing.T) {
	assert.Nil(t, ACF([]float64{3, 3, 3, 3}, 2))
	assert.Nil(t, ACF(nil, 2))
}

func TestNormalQuantile(t *testing.T) {
	testData := map[string]struct {
		p        float64
		expected float64
	}{
		"median":    {0.5, 0.0},
		"90th":      {0.9, 1.2816},
		"97.5th":    {0.975, 1.9600},
		"lower tail": {0.025, -1.9600},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, td.expected, NormalQuantile(td.p), 5e-3)
		})
	}
}

func TestNaNMeanStdDev(t *testing.T) {
	mean, stddev, n := NaNMeanStdDev([]float64{2, math.NaN(), 4, 6, math.NaN()})
	assert.InDelta(t, 4.0, mean, 1e-9)
	assert.InDelta(t, 2.0, stddev, 1e-9)
	assert.Equal(t, 3, n)

	mean, stddev, n = NaNMeanStdDev([]float64{math.NaN(), math.NaN()})
	assert.True(t, math.IsNaN(mean))
	assert.True(t, math.IsNaN(stddev))
	assert.Equal(t, 0, n)

	mean, stddev, n = NaNMeanStdDev([]float64{5, math.NaN()})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.True(t, math.IsNaN(stddev))
	assert.Equal(t, 1, n)
}
