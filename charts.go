package climaval

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/climaval/climaval/timedataset"
)

// LineHoldout generates an echart line chart for one holdout evaluation,
// plotting the full observed series with the forecast and its interval bounds
// over the test window. Missing observations render as gaps.
func LineHoldout(td *timedataset.TimeDataset, res *HoldoutResult) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: fmt.Sprintf("%s holdout forecast (%s)", res.Variable, res.Model),
			},
		),
	)

	n := td.Len()
	lineDataActual := make([]opts.LineData, 0, n)
	lineDataForecast := make([]opts.LineData, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(td.Y[i]) {
			lineDataActual = append(lineDataActual, opts.LineData{Value: nil})
		} else {
			lineDataActual = append(lineDataActual, opts.LineData{Value: td.Y[i]})
		}
		if i < res.NTrain || res.Forecast == nil {
			lineDataForecast = append(lineDataForecast, opts.LineData{Value: nil})
		} else {
			lineDataForecast = append(lineDataForecast, opts.LineData{Value: res.Forecast.Point[i-res.NTrain]})
		}
	}

	line = line.SetXAxis(td.T).
		AddSeries("Actual", lineDataActual).
		AddSeries("Forecast", lineDataForecast)

	if res.Forecast != nil {
		for _, interval := range res.Forecast.Intervals {
			lower := make([]opts.LineData, 0, n)
			upper := make([]opts.LineData, 0, n)
			for i := 0; i < n; i++ {
				if i < res.NTrain {
					lower = append(lower, opts.LineData{Value: nil})
					upper = append(upper, opts.LineData{Value: nil})
					continue
				}
				lower = append(lower, opts.LineData{Value: interval.Lower[i-res.NTrain]})
				upper = append(upper, opts.LineData{Value: interval.Upper[i-res.NTrain]})
			}
			label := fmt.Sprintf("%.0f%%", interval.Level*100)
			line = line.AddSeries("Lower "+label, lower).
				AddSeries("Upper "+label, upper)
		}
	}

	return line
}

// PlotHoldout renders the holdout evaluations of one series to an html file,
// one chart per model family.
func PlotHoldout(path string, td *timedataset.TimeDataset, results ...*HoldoutResult) error {
	page := components.NewPage()
	for _, res := range results {
		page.AddCharts(LineHoldout(td, res))
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return page.Render(io.MultiWriter(file))
}
