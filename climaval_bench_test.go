package climaval

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/profile"

	"github.com/climaval/climaval/models"
	"github.com/climaval/climaval/timedataset"
)

var benchFolds []FoldMetric

func BenchmarkEvaluateRollingOrigin(b *testing.B) {
	n := 120
	tWin := timedataset.GenerateMonthlyT(n, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	y := timedataset.GenerateConstY(n, 15.0).
		Add(timedataset.GenerateTrendY(n, 0.04)).
		Add(timedataset.GenerateAnnualWaveY(tWin, 5.0, 0.0))
	for i := range y {
		y[i] += 0.3 * math.Sin(1.7*float64(i))
	}
	td, err := timedataset.NewUnivariateDataset("tmin", tWin, y)
	if err != nil {
		panic(err)
	}

	ets, err := models.NewAutoETS(nil)
	if err != nil {
		panic(err)
	}
	opt := &RollingOriginOptions{InitialWindow: 36, Horizon: 1, Step: 1, Parallelization: 4}

	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for i := 0; i < b.N; i++ {
		benchFolds, err = EvaluateRollingOrigin(td, ets, timedataset.Frequency, opt)
		if err != nil {
			panic(err)
		}
	}
}
