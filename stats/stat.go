// Package stats provides the statistical helpers shared by the model adapters
// and the result aggregator.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ACF calculates the autocorrelation function for the given values, returning
// values for lags 0 through maxLag. Returns nil for a degenerate series with
// no variance.
func ACF(y []float64, maxLag int) []float64 {
	n := len(y)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(y, nil)
	var variance float64
	for _, v := range y {
		diff := v - mean
		variance += diff * diff
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		var sum float64
		for i := k; i < n; i++ {
			sum += (y[i] - mean) * (y[i-k] - mean)
		}
		acf[k] = sum / variance
	}
	return acf
}

// NormalQuantile returns the z-value for a given cumulative probability using
// the Abramowitz-Stegun rational approximation.
func NormalQuantile(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	if p < 0.5 {
		return -NormalQuantile(1 - p)
	}

	t := math.Sqrt(-2 * math.Log(1-p))
	c0, c1, c2 := 2.515517, 0.802853, 0.010328
	d1, d2, d3 := 1.432788, 0.189269, 0.001308

	return t - (c0+c1*t+c2*t*t)/(1+d1*t+d2*t*t+d3*t*t*t)
}

// NaNMeanStdDev computes the mean and sample standard deviation over the
// non-NaN entries of y, along with the number of contributing entries. The
// mean is NaN when no entry contributes and the standard deviation is NaN
// when fewer than two contribute.
func NaNMeanStdDev(y []float64) (mean, stddev float64, n int) {
	filtered := make([]float64, 0, len(y))
	for _, v := range y {
		if math.IsNaN(v) {
			continue
		}
		filtered = append(filtered, v)
	}
	switch len(filtered) {
	case 0:
		return math.NaN(), math.NaN(), 0
	case 1:
		return filtered[0], math.NaN(), 1
	}
	mean, stddev = stat.MeanStdDev(filtered, nil)
	return mean, stddev, len(filtered)
}
