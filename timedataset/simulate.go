package timedataset

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateMonthlyT generates n consecutive month-start times beginning at
// start, normalized to UTC midnight on the first of the month.
func GenerateMonthlyT(n int, start time.Time) []time.Time {
	t := make([]time.Time, 0, n)
	ct := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		t = append(t, ct.AddDate(0, i, 0))
	}
	return t
}

// Series is a mutable helper for composing synthetic monthly observations in
// tests and benchmarks.
type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// MaskWithNaN marks the given positions as missing.
func (s Series) MaskWithNaN(idxs ...int) Series {
	for _, idx := range idxs {
		if idx >= 0 && idx < len(s) {
			s[idx] = math.NaN()
		}
	}
	return s
}

// GenerateConstY generates a constant series of length n.
func GenerateConstY(n int, val float64) Series {
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = val
	}
	return Series(y)
}

// GenerateAnnualWaveY generates an annual sinusoid evaluated at each month
// with a phase offset expressed in months.
func GenerateAnnualWaveY(t []time.Time, amp, phaseMonths float64) Series {
	n := len(t)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		month := float64(i)
		val := amp * math.Sin(2.0*math.Pi/float64(Frequency)*(month+phaseMonths))
		y = append(y, val)
	}
	return Series(y)
}

// GenerateTrendY generates a linear trend of slope units per month.
func GenerateTrendY(n int, slope float64) Series {
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = slope * float64(i)
	}
	return Series(y)
}

// GenerateNoise generates gaussian noise with the given standard deviation.
func GenerateNoise(n int, scale float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rand.NormFloat64()*scale)
	}
	return Series(y)
}
