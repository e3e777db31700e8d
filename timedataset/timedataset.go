// Package timedataset provides the monthly univariate series consumed by the
// validation engine. A series is loaded once per run and treated as read-only
// afterwards; missing observations are carried as NaN, never coerced to zero.
package timedataset

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Frequency is the number of observations per seasonal cycle. All series are
// monthly with annual seasonality.
const Frequency = 12

var (
	ErrNoData             = errors.New("no observations")
	ErrNoName             = errors.New("series has no variable name")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
	ErrNonMonotonic       = errors.New("time feature is not strictly increasing")
	ErrNotMonthly         = errors.New("time feature does not have a gap-free monthly cadence")
)

// TimeDataset represents one climatic variable as an ordered monthly series.
// T and Y must be of the same length.
type TimeDataset struct {
	Name string
	T    []time.Time
	Y    []float64
}

// NewUnivariateDataset returns an instance of a TimeDataset given a variable
// name, a time slice and a value slice. The time slice must be strictly
// increasing with exactly one calendar month between consecutive points.
// Values may contain NaN to mark a missing observation.
func NewUnivariateDataset(name string, t []time.Time, y []float64) (*TimeDataset, error) {
	if name == "" {
		return nil, ErrNoName
	}
	if len(y) == 0 {
		return nil, ErrNoData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	for i := 1; i < len(t); i++ {
		if !t[i].After(t[i-1]) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
		if !t[i].Equal(t[i-1].AddDate(0, 1, 0)) {
			return nil, fmt.Errorf("gap between %s and %s, %w",
				t[i-1].Format("2006-01"), t[i].Format("2006-01"), ErrNotMonthly,
			)
		}
	}

	tSeries := make([]time.Time, len(t))
	ySeries := make([]float64, len(y))
	copy(tSeries, t)
	copy(ySeries, y)

	return &TimeDataset{
		Name: name,
		T:    tSeries,
		Y:    ySeries,
	}, nil
}

// Len returns the number of monthly observations.
func (td *TimeDataset) Len() int {
	return len(td.Y)
}

// Copy returns a deep copy of the dataset.
func (td *TimeDataset) Copy() *TimeDataset {
	tSeries := make([]time.Time, len(td.T))
	ySeries := make([]float64, len(td.Y))
	copy(tSeries, td.T)
	copy(ySeries, td.Y)
	return &TimeDataset{
		Name: td.Name,
		T:    tSeries,
		Y:    ySeries,
	}
}

// Slice returns a copy of the dataset between start inclusive and end
// exclusive. Bounds are clamped to the dataset length.
func (td *TimeDataset) Slice(start, end int) *TimeDataset {
	if start < 0 {
		start = 0
	}
	if end > len(td.Y) {
		end = len(td.Y)
	}
	if start >= end {
		return &TimeDataset{Name: td.Name}
	}

	tSeries := make([]time.Time, end-start)
	ySeries := make([]float64, end-start)
	copy(tSeries, td.T[start:end])
	copy(ySeries, td.Y[start:end])
	return &TimeDataset{
		Name: td.Name,
		T:    tSeries,
		Y:    ySeries,
	}
}

// Split partitions the dataset into a contiguous training prefix of nTrain
// points and the test suffix immediately following it. The two partitions
// share no points and leave no gap between them.
func (td *TimeDataset) Split(nTrain int) (train, test *TimeDataset) {
	return td.Slice(0, nTrain), td.Slice(nTrain, len(td.Y))
}

// MissingCount returns the number of NaN observations in the series.
func (td *TimeDataset) MissingCount() int {
	var cnt int
	for _, v := range td.Y {
		if math.IsNaN(v) {
			cnt++
		}
	}
	return cnt
}
