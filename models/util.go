package models

import "math"

// validateTrain runs the shared degenerate-input checks ahead of any fitting.
// minLen is the family-specific minimum usable segment length.
func validateTrain(train []float64, period, minLen int) error {
	if period < 1 {
		return ErrInvalidPeriod
	}
	if len(train) == 0 {
		return ErrNoTrainingData
	}
	for _, v := range train {
		if math.IsNaN(v) {
			return ErrMissingValues
		}
	}
	if len(train) < minLen {
		return ErrSeriesTooShort
	}

	first := train[0]
	constant := true
	for _, v := range train[1:] {
		if v != first {
			constant = false
			break
		}
	}
	if constant {
		return ErrConstantSeries
	}
	return nil
}

func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

// diff computes the first difference of y.
func diff(y []float64) []float64 {
	if len(y) <= 1 {
		return nil
	}
	out := make([]float64, len(y)-1)
	for i := 1; i < len(y); i++ {
		out[i-1] = y[i] - y[i-1]
	}
	return out
}

// seasonalDiff computes the lag-m difference of y.
func seasonalDiff(y []float64, m int) []float64 {
	if m <= 0 || len(y) <= m {
		return nil
	}
	out := make([]float64, len(y)-m)
	for i := m; i < len(y); i++ {
		out[i-m] = y[i] - y[i-m]
	}
	return out
}
