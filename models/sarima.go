package models

import (
	"math"

	"github.com/climaval/climaval/stats"
)

const sarimaName = "sarima"

// order is a SARIMA model order (p, d, q) x (P, D, Q, m).
type order struct {
	p, d, q    int
	sp, sd, sq int
	m          int
}

// AutoSARIMAOptions bounds the automatic order search and the per-candidate
// optimizer so a pathological search cannot stall a validation sweep.
type AutoSARIMAOptions struct {
	MaxP  int `json:"max_p"`
	MaxD  int `json:"max_d"`
	MaxQ  int `json:"max_q"`
	MaxSP int `json:"max_sp"`
	MaxSD int `json:"max_sd"`
	MaxSQ int `json:"max_sq"`

	// MaxIterations is the gradient descent budget for fitting one candidate.
	MaxIterations int `json:"max_iterations"`
	// MaxModels caps the number of candidate orders evaluated in one search.
	MaxModels int `json:"max_models"`
}

// NewDefaultAutoSARIMAOptions returns the default search bounds.
func NewDefaultAutoSARIMAOptions() *AutoSARIMAOptions {
	return &AutoSARIMAOptions{
		MaxP:          3,
		MaxD:          2,
		MaxQ:          3,
		MaxSP:         1,
		MaxSD:         1,
		MaxSQ:         1,
		MaxIterations: 200,
		MaxModels:     40,
	}
}

// Validate fills in defaults for zero valued options.
func (o *AutoSARIMAOptions) Validate() (*AutoSARIMAOptions, error) {
	if o == nil {
		return NewDefaultAutoSARIMAOptions(), nil
	}
	out := *o
	def := NewDefaultAutoSARIMAOptions()
	if out.MaxIterations <= 0 {
		out.MaxIterations = def.MaxIterations
	}
	if out.MaxModels <= 0 {
		out.MaxModels = def.MaxModels
	}
	if out.MaxP < 0 || out.MaxD < 0 || out.MaxQ < 0 || out.MaxSP < 0 || out.MaxSD < 0 || out.MaxSQ < 0 {
		return nil, ErrNoOptions
	}
	return &out, nil
}

// AutoSARIMA fits seasonal autoregressive integrated moving average models,
// selecting the order that minimizes the corrected Akaike information
// criterion through a bounded stepwise search.
type AutoSARIMA struct {
	opt *AutoSARIMAOptions
}

// NewAutoSARIMA initializes the model family with the given search options.
func NewAutoSARIMA(opt *AutoSARIMAOptions) (*AutoSARIMA, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &AutoSARIMA{opt: opt}, nil
}

func (a *AutoSARIMA) Name() string {
	return sarimaName
}

// Fit selects and fits the best order for the training segment. All failures
// surface as *FitError so evaluators can record the fold and move on.
func (a *AutoSARIMA) Fit(train []float64, period int) (FittedModel, error) {
	if err := validateTrain(train, period, 2*period+2); err != nil {
		return nil, newFitError(sarimaName, err)
	}

	y := make([]float64, len(train))
	copy(y, train)

	d := determineDifferencing(y, a.opt.MaxD)
	sd := determineSeasonalDifferencing(y, a.opt.MaxSD, period)

	best := a.stepwiseSearch(y, d, sd, period)
	if best == nil {
		return nil, newFitError(sarimaName, ErrNoUsableModel)
	}
	if best.variance <= 0 || math.IsNaN(best.variance) || math.IsInf(best.variance, 0) {
		return nil, newFitError(sarimaName, ErrDegenerateFit)
	}
	return best, nil
}

// determineDifferencing picks the non-seasonal differencing order by
// differencing until the lag-1 autocorrelation drops below a stationarity
// threshold.
func determineDifferencing(y []float64, maxD int) int {
	current := y
	for d := 0; d < maxD; d++ {
		acf := stats.ACF(current, 1)
		if acf == nil || acf[1] < 0.95 {
			return d
		}
		current = diff(current)
		if len(current) < 10 {
			return d
		}
	}
	return maxD
}

// determineSeasonalDifferencing applies one seasonal difference when the
// autocorrelation at the seasonal lag is strong.
func determineSeasonalDifferencing(y []float64, maxSD, period int) int {
	if maxSD < 1 {
		return 0
	}
	acf := stats.ACF(y, period)
	if acf == nil || len(acf) <= period {
		return 0
	}
	if math.Abs(acf[period]) > 0.5 {
		return 1
	}
	return 0
}

// stepwiseSearch walks the (p, q, P, Q) neighborhood of the best candidate so
// far, in the manner of the usual auto-ARIMA stepwise procedure, until no
// neighbor improves the criterion or the candidate budget runs out.
func (a *AutoSARIMA) stepwiseSearch(y []float64, d, sd, period int) *sarimaFit {
	type spec struct {
		p, q, sp, sq int
	}

	start := []spec{
		{0, 0, 0, 0},
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{1, 0, 1, 0},
		{0, 1, 0, 1},
		{1, 1, 1, 1},
	}

	tried := make(map[spec]struct{})
	evaluated := 0

	var best *sarimaFit
	bestCriterion := math.Inf(1)
	var bestSpec spec

	tryFit := func(s spec) {
		if _, seen := tried[s]; seen {
			return
		}
		tried[s] = struct{}{}
		if s.p < 0 || s.p > a.opt.MaxP || s.q < 0 || s.q > a.opt.MaxQ ||
			s.sp < 0 || s.sp > a.opt.MaxSP || s.sq < 0 || s.sq > a.opt.MaxSQ {
			return
		}
		if evaluated >= a.opt.MaxModels {
			return
		}
		evaluated++

		ord := order{p: s.p, d: d, q: s.q, sp: s.sp, sd: sd, sq: s.sq, m: period}
		fit, err := fitSARIMA(y, ord, a.opt.MaxIterations)
		if err != nil {
			return
		}
		if fit.aicc < bestCriterion {
			bestCriterion = fit.aicc
			best = fit
			bestSpec = s
		}
	}

	for _, s := range start {
		tryFit(s)
	}
	if best == nil {
		return nil
	}

	improved := true
	for improved && evaluated < a.opt.MaxModels {
		improved = false
		prev := bestCriterion
		neighbors := []spec{
			{bestSpec.p + 1, bestSpec.q, bestSpec.sp, bestSpec.sq},
			{bestSpec.p - 1, bestSpec.q, bestSpec.sp, bestSpec.sq},
			{bestSpec.p, bestSpec.q + 1, bestSpec.sp, bestSpec.sq},
			{bestSpec.p, bestSpec.q - 1, bestSpec.sp, bestSpec.sq},
			{bestSpec.p, bestSpec.q, bestSpec.sp + 1, bestSpec.sq},
			{bestSpec.p, bestSpec.q, bestSpec.sp - 1, bestSpec.sq},
			{bestSpec.p, bestSpec.q, bestSpec.sp, bestSpec.sq + 1},
			{bestSpec.p, bestSpec.q, bestSpec.sp, bestSpec.sq - 1},
		}
		for _, s := range neighbors {
			tryFit(s)
		}
		if bestCriterion < prev {
			improved = true
		}
	}

	return best
}

// sarimaFit is a fitted SARIMA model ready for forecasting. It is transient:
// created for one evaluation, consumed by one Forecast call, then discarded.
type sarimaFit struct {
	ord       order
	arCoeffs  []float64
	maCoeffs  []float64
	sarCoeffs []float64
	smaCoeffs []float64
	intercept float64
	variance  float64
	aicc      float64

	data      []float64 // original training segment
	diffData  []float64 // after non-seasonal and seasonal differencing
	residuals []float64
}

// fitSARIMA estimates coefficients by conditional sum of squares using
// gradient descent with momentum, initialized from the autocorrelation
// function.
func fitSARIMA(y []float64, ord order, maxIter int) (*sarimaFit, error) {
	diffData := y
	for i := 0; i < ord.d; i++ {
		diffData = diff(diffData)
		if len(diffData) == 0 {
			return nil, ErrSeriesTooShort
		}
	}
	for i := 0; i < ord.sd; i++ {
		diffData = seasonalDiff(diffData, ord.m)
		if len(diffData) == 0 {
			return nil, ErrSeriesTooShort
		}
	}

	n := len(diffData)
	startIdx := max(max(ord.p, ord.q), max(ord.sp*ord.m, ord.sq*ord.m))
	if n < startIdx+10 {
		return nil, ErrSeriesTooShort
	}

	m := &sarimaFit{
		ord:       ord,
		arCoeffs:  make([]float64, ord.p),
		maCoeffs:  make([]float64, ord.q),
		sarCoeffs: make([]float64, ord.sp),
		smaCoeffs: make([]float64, ord.sq),
		data:      y,
		diffData:  diffData,
	}

	var mean float64
	for _, v := range diffData {
		mean += v
	}
	mean /= float64(n)
	m.intercept = mean

	if ord.p > 0 {
		if acf := stats.ACF(diffData, ord.p); acf != nil {
			for i := 0; i < ord.p && i+1 < len(acf); i++ {
				m.arCoeffs[i] = acf[i+1] * 0.5
			}
		}
	}
	if ord.sp > 0 {
		if acf := stats.ACF(diffData, ord.sp*ord.m); acf != nil {
			for i := 0; i < ord.sp; i++ {
				idx := (i + 1) * ord.m
				if idx < len(acf) {
					m.sarCoeffs[i] = acf[idx] * 0.5
				}
			}
		}
	}
	for i := range m.maCoeffs {
		m.maCoeffs[i] = 0.1
	}
	for i := range m.smaCoeffs {
		m.smaCoeffs[i] = 0.1
	}

	m.optimizeCSS(maxIter)
	m.calculateIC()

	return m, nil
}

func (m *sarimaFit) predictAt(t int, y, residuals []float64, residLimit int) float64 {
	pred := m.intercept
	for i := 0; i < m.ord.p && t-i-1 >= 0; i++ {
		pred += m.arCoeffs[i] * (y[t-i-1] - m.intercept)
	}
	for i := 0; i < m.ord.sp; i++ {
		lag := (i + 1) * m.ord.m
		if t-lag >= 0 {
			pred += m.sarCoeffs[i] * (y[t-lag] - m.intercept)
		}
	}
	for i := 0; i < m.ord.q && t-i-1 >= 0; i++ {
		if t-i-1 < residLimit {
			pred += m.maCoeffs[i] * residuals[t-i-1]
		}
	}
	for i := 0; i < m.ord.sq; i++ {
		lag := (i + 1) * m.ord.m
		if t-lag >= 0 && t-lag < residLimit {
			pred += m.smaCoeffs[i] * residuals[t-lag]
		}
	}
	return pred
}

func (m *sarimaFit) optimizeCSS(maxIter int) {
	y := m.diffData
	n := len(y)
	p, q, sp, sq := m.ord.p, m.ord.q, m.ord.sp, m.ord.sq
	period := m.ord.m

	tolerance := 1e-8
	learningRate := 0.005
	momentum := 0.9
	decay := 0.99

	arMomentum := make([]float64, p)
	maMomentum := make([]float64, q)
	sarMomentum := make([]float64, sp)
	smaMomentum := make([]float64, sq)

	startIdx := max(max(p, q), max(sp*period, sq*period))
	if startIdx >= n-10 {
		startIdx = 0
	}

	bestSSE := math.Inf(1)
	bestAR := make([]float64, p)
	bestMA := make([]float64, q)
	bestSAR := make([]float64, sp)
	bestSMA := make([]float64, sq)
	noImprove := 0

	for iter := 0; iter < maxIter; iter++ {
		residuals := make([]float64, n)
		var currentSSE float64
		for t := startIdx; t < n; t++ {
			residuals[t] = y[t] - m.predictAt(t, y, residuals, n)
			currentSSE += residuals[t] * residuals[t]
		}

		if currentSSE < bestSSE {
			bestSSE = currentSSE
			copy(bestAR, m.arCoeffs)
			copy(bestMA, m.maCoeffs)
			copy(bestSAR, m.sarCoeffs)
			copy(bestSMA, m.smaCoeffs)
			noImprove = 0
		} else {
			noImprove++
		}
		if noImprove > 20 {
			break
		}

		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		sarGrad := make([]float64, sp)
		smaGrad := make([]float64, sq)
		for t := startIdx; t < n; t++ {
			for i := 0; i < p && t-i-1 >= 0; i++ {
				arGrad[i] -= 2 * residuals[t] * (y[t-i-1] - m.intercept)
			}
			for i := 0; i < sp; i++ {
				lag := (i + 1) * period
				if t-lag >= 0 {
					sarGrad[i] -= 2 * residuals[t] * (y[t-lag] - m.intercept)
				}
			}
			for i := 0; i < q && t-i-1 >= 0; i++ {
				maGrad[i] -= 2 * residuals[t] * residuals[t-i-1]
			}
			for i := 0; i < sq; i++ {
				lag := (i + 1) * period
				if t-lag >= 0 {
					smaGrad[i] -= 2 * residuals[t] * residuals[t-lag]
				}
			}
		}

		for i := 0; i < p; i++ {
			arMomentum[i] = momentum*arMomentum[i] + learningRate*arGrad[i]/float64(n)
			m.arCoeffs[i] = clamp(m.arCoeffs[i]-arMomentum[i], -0.99, 0.99)
		}
		for i := 0; i < sp; i++ {
			sarMomentum[i] = momentum*sarMomentum[i] + learningRate*sarGrad[i]/float64(n)
			m.sarCoeffs[i] = clamp(m.sarCoeffs[i]-sarMomentum[i], -0.99, 0.99)
		}
		for i := 0; i < q; i++ {
			maMomentum[i] = momentum*maMomentum[i] + learningRate*maGrad[i]/float64(n)
			m.maCoeffs[i] = clamp(m.maCoeffs[i]-maMomentum[i], -0.99, 0.99)
		}
		for i := 0; i < sq; i++ {
			smaMomentum[i] = momentum*smaMomentum[i] + learningRate*smaGrad[i]/float64(n)
			m.smaCoeffs[i] = clamp(m.smaCoeffs[i]-smaMomentum[i], -0.99, 0.99)
		}
		learningRate *= decay

		if iter > 0 && math.Abs(currentSSE-bestSSE) < tolerance {
			break
		}
	}

	copy(m.arCoeffs, bestAR)
	copy(m.maCoeffs, bestMA)
	copy(m.sarCoeffs, bestSAR)
	copy(m.smaCoeffs, bestSMA)

	m.residuals = make([]float64, n)
	for t := 0; t < n; t++ {
		pred := m.predictAt(t, y, m.residuals, n)
		m.residuals[t] = y[t] - pred
	}

	var sse float64
	var count int
	for t := startIdx; t < n; t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	numParams := p + q + sp + sq + 1
	if count > numParams {
		m.variance = sse / float64(count-numParams)
	} else if count > 0 {
		m.variance = sse / float64(count)
	}
}

func (m *sarimaFit) calculateIC() {
	n := len(m.residuals)
	k := m.ord.p + m.ord.q + m.ord.sp + m.ord.sq + 1

	var sse float64
	for _, r := range m.residuals {
		sse += r * r
	}

	var logLik float64
	if m.variance > 0 {
		logLik = -float64(n)/2*math.Log(2*math.Pi) - float64(n)/2*math.Log(m.variance) - sse/(2*m.variance)
	} else {
		logLik = math.Inf(-1)
	}

	aic := -2*logLik + 2*float64(k)
	kf, nf := float64(k), float64(n)
	if nf-kf-1 > 0 {
		m.aicc = aic + 2*kf*(kf+1)/(nf-kf-1)
	} else {
		m.aicc = math.Inf(1)
	}
}

// Forecast iterates the fitted recursion forward, integrates the differencing
// back out, and derives prediction intervals from the residual variance with
// horizon growth for integrated series.
func (m *sarimaFit) Forecast(horizon int, confidenceLevels []float64) (*ForecastResult, error) {
	if horizon < 1 {
		return nil, ErrInvalidHorizon
	}

	y := m.diffData
	n := len(y)

	extY := make([]float64, n+horizon)
	copy(extY, y)
	extResiduals := make([]float64, n+horizon)
	copy(extResiduals, m.residuals)

	for h := 0; h < horizon; h++ {
		t := n + h
		// future residuals are zero in expectation
		extY[t] = m.predictAt(t, extY, extResiduals, n)
	}

	point := make([]float64, horizon)
	copy(point, extY[n:])
	point = m.integrate(point)

	res := &ForecastResult{Point: point}
	for _, level := range confidenceLevels {
		if level <= 0 || level >= 1 {
			continue
		}
		z := stats.NormalQuantile((1 + level) / 2)
		lower := make([]float64, horizon)
		upper := make([]float64, horizon)
		for h := 0; h < horizon; h++ {
			se := math.Sqrt(m.variance)
			if m.ord.d > 0 {
				se *= math.Sqrt(float64(h + 1))
			}
			if m.ord.sd > 0 && m.ord.m > 0 {
				se *= math.Sqrt(float64(h/m.ord.m + 1))
			}
			lower[h] = point[h] - z*se
			upper[h] = point[h] + z*se
		}
		res.Intervals = append(res.Intervals, Interval{Level: level, Lower: lower, Upper: upper})
	}
	return res, nil
}

// integrate undoes the differencing applied during fitting. Non-seasonal
// differencing was applied first, so integration undoes seasonal differencing
// first, then cumulates from the last original value.
func (m *sarimaFit) integrate(forecasts []float64) []float64 {
	d, sd, period := m.ord.d, m.ord.sd, m.ord.m
	original := m.data
	n := len(original)

	result := make([]float64, len(forecasts))
	copy(result, forecasts)

	nonSeasonalDiff := original
	for i := 0; i < d; i++ {
		if len(nonSeasonalDiff) <= 1 {
			break
		}
		nonSeasonalDiff = diff(nonSeasonalDiff)
	}

	if sd > 0 && period > 0 {
		nDiff := len(nonSeasonalDiff)
		for i := 0; i < sd; i++ {
			for j := 0; j < len(result); j++ {
				if j < period {
					idx := nDiff - period + j
					if idx >= 0 && idx < nDiff {
						result[j] += nonSeasonalDiff[idx]
					}
				} else {
					result[j] += result[j-period]
				}
			}
		}
	}

	for i := 0; i < d; i++ {
		lastVal := original[n-1]
		for j := 0; j < len(result); j++ {
			if j == 0 {
				result[j] += lastVal
			} else {
				result[j] += result[j-1]
			}
		}
	}
	return result
}
