package models

import (
	"math"

	"github.com/climaval/climaval/stats"
)

const etsName = "ets"

// AutoETSOptions bounds the exponential smoothing component and parameter
// search. Candidate smoothing parameters are drawn from a fixed coarse grid;
// component structures (trend and seasonality on or off) are selected by the
// corrected Akaike information criterion.
type AutoETSOptions struct {
	// ParamGrid holds the candidate values tried for each active smoothing
	// parameter.
	ParamGrid []float64 `json:"param_grid"`
	// MaxCandidates caps the total number of fitted candidates per search.
	MaxCandidates int `json:"max_candidates"`
}

// NewDefaultAutoETSOptions returns the default search grid.
func NewDefaultAutoETSOptions() *AutoETSOptions {
	return &AutoETSOptions{
		ParamGrid:     []float64{0.1, 0.3, 0.5, 0.7, 0.9},
		MaxCandidates: 300,
	}
}

// Validate fills in defaults for zero valued options and rejects smoothing
// parameters outside (0, 1).
func (o *AutoETSOptions) Validate() (*AutoETSOptions, error) {
	if o == nil {
		return NewDefaultAutoETSOptions(), nil
	}
	out := *o
	def := NewDefaultAutoETSOptions()
	if len(out.ParamGrid) == 0 {
		out.ParamGrid = def.ParamGrid
	}
	for _, p := range out.ParamGrid {
		if p <= 0 || p >= 1 {
			return nil, ErrNoOptions
		}
	}
	if out.MaxCandidates <= 0 {
		out.MaxCandidates = def.MaxCandidates
	}
	return &out, nil
}

// AutoETS fits additive exponential smoothing state space models
// (Holt-Winters), automatically selecting trend and seasonal components and
// their smoothing parameters to minimize an information criterion.
type AutoETS struct {
	opt *AutoETSOptions
}

// NewAutoETS initializes the model family with the given search options.
func NewAutoETS(opt *AutoETSOptions) (*AutoETS, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &AutoETS{opt: opt}, nil
}

func (a *AutoETS) Name() string {
	return etsName
}

// Fit searches the component/parameter grid and returns the candidate with
// the lowest AICc. All failures surface as *FitError.
func (a *AutoETS) Fit(train []float64, period int) (FittedModel, error) {
	if err := validateTrain(train, period, 3); err != nil {
		return nil, newFitError(etsName, err)
	}

	y := make([]float64, len(train))
	copy(y, train)

	// seasonal structures need at least two full cycles to initialize the
	// seasonal state
	allowSeasonal := len(y) >= 2*period && period > 1

	type structure struct {
		trend    bool
		seasonal bool
	}
	structures := []structure{
		{false, false},
		{true, false},
	}
	if allowSeasonal {
		structures = append(structures, structure{false, true}, structure{true, true})
	}

	var best *etsFit
	bestCriterion := math.Inf(1)
	candidates := 0

	for _, s := range structures {
		betas := []float64{0}
		if s.trend {
			betas = a.opt.ParamGrid
		}
		gammas := []float64{0}
		if s.seasonal {
			gammas = a.opt.ParamGrid
		}
		for _, alpha := range a.opt.ParamGrid {
			for _, beta := range betas {
				for _, gamma := range gammas {
					if candidates >= a.opt.MaxCandidates {
						break
					}
					candidates++
					fit := fitETS(y, period, s.trend, s.seasonal, alpha, beta, gamma)
					if fit == nil {
						continue
					}
					if fit.aicc < bestCriterion {
						bestCriterion = fit.aicc
						best = fit
					}
				}
			}
		}
	}

	if best == nil {
		return nil, newFitError(etsName, ErrNoUsableModel)
	}
	if best.variance <= 0 || math.IsNaN(best.variance) || math.IsInf(best.variance, 0) {
		return nil, newFitError(etsName, ErrDegenerateFit)
	}
	return best, nil
}

// etsFit is one fitted additive exponential smoothing model. Transient, like
// every FittedModel.
type etsFit struct {
	period      int
	hasTrend    bool
	hasSeasonal bool

	level     float64
	trend     float64
	seasonals []float64
	trainLen  int

	variance float64
	aicc     float64
}

// fitETS runs the additive smoothing recursion with the given parameters and
// scores the candidate by AICc over its one-step-ahead residuals. Returns nil
// when the recursion diverges.
func fitETS(y []float64, period int, withTrend, withSeasonal bool, alpha, beta, gamma float64) *etsFit {
	n := len(y)

	var level, trend float64
	seasonals := make([]float64, period)

	if withSeasonal {
		level, trend, seasonals = initSeasonalState(y, period, withTrend)
	} else {
		level = y[0]
		if withTrend && n > 1 {
			trend = y[1] - y[0]
		}
	}

	var sse float64
	var cnt int
	for t := 0; t < n; t++ {
		pred := level + trend
		if withSeasonal {
			pred += seasonals[t%period]
		}
		if t > 0 {
			residual := y[t] - pred
			sse += residual * residual
			cnt++
		}

		prevLevel := level
		if withSeasonal {
			level = alpha*(y[t]-seasonals[t%period]) + (1-alpha)*(level+trend)
		} else {
			level = alpha*y[t] + (1-alpha)*(level+trend)
		}
		if withTrend {
			trend = beta*(level-prevLevel) + (1-beta)*trend
		}
		if withSeasonal {
			seasonals[t%period] = gamma*(y[t]-level) + (1-gamma)*seasonals[t%period]
		}
		if math.IsNaN(level) || math.IsInf(level, 0) {
			return nil
		}
	}
	if cnt == 0 {
		return nil
	}

	variance := sse / float64(cnt)

	// one parameter per active smoothing constant plus the initial states
	k := 1 + 1 // alpha + initial level
	if withTrend {
		k += 2
	}
	if withSeasonal {
		k += 1 + period
	}

	var logSigma float64
	if variance > 0 {
		logSigma = math.Log(variance)
	} else {
		logSigma = math.Inf(-1)
	}
	aic := float64(cnt)*logSigma + 2*float64(k)
	kf, nf := float64(k), float64(cnt)
	aicc := math.Inf(1)
	if nf-kf-1 > 0 {
		aicc = aic + 2*kf*(kf+1)/(nf-kf-1)
	}

	return &etsFit{
		period:      period,
		hasTrend:    withTrend,
		hasSeasonal: withSeasonal,
		level:       level,
		trend:       trend,
		seasonals:   seasonals,
		trainLen:    n,
		variance:    variance,
		aicc:        aicc,
	}
}

// initSeasonalState computes the classic Holt-Winters initial level, trend,
// and seasonal components from the first complete cycles.
func initSeasonalState(y []float64, period int, withTrend bool) (level, trend float64, seasonals []float64) {
	n := len(y)
	cycles := n / period

	var firstCycleMean float64
	for i := 0; i < period; i++ {
		firstCycleMean += y[i]
	}
	firstCycleMean /= float64(period)
	level = firstCycleMean

	if withTrend && cycles >= 2 {
		var sum float64
		for i := 0; i < period; i++ {
			sum += (y[i+period] - y[i]) / float64(period)
		}
		trend = sum / float64(period)
	}

	seasonals = make([]float64, period)
	cycleMeans := make([]float64, cycles)
	for c := 0; c < cycles; c++ {
		var sum float64
		for i := 0; i < period; i++ {
			sum += y[c*period+i]
		}
		cycleMeans[c] = sum / float64(period)
	}
	for i := 0; i < period; i++ {
		var sum float64
		for c := 0; c < cycles; c++ {
			sum += y[c*period+i] - cycleMeans[c]
		}
		seasonals[i] = sum / float64(cycles)
	}
	return level, trend, seasonals
}

// Forecast extends the smoothing recursion h steps ahead. Interval width
// grows with the horizon from the one-step residual variance.
func (m *etsFit) Forecast(horizon int, confidenceLevels []float64) (*ForecastResult, error) {
	if horizon < 1 {
		return nil, ErrInvalidHorizon
	}

	point := make([]float64, horizon)
	for h := 0; h < horizon; h++ {
		v := m.level
		if m.hasTrend {
			v += float64(h+1) * m.trend
		}
		if m.hasSeasonal {
			v += m.seasonals[(m.trainLen+h)%m.period]
		}
		point[h] = v
	}

	res := &ForecastResult{Point: point}
	sigma := math.Sqrt(m.variance)
	for _, level := range confidenceLevels {
		if level <= 0 || level >= 1 {
			continue
		}
		z := stats.NormalQuantile((1 + level) / 2)
		lower := make([]float64, horizon)
		upper := make([]float64, horizon)
		for h := 0; h < horizon; h++ {
			se := sigma * math.Sqrt(float64(h+1))
			lower[h] = point[h] - z*se
			upper[h] = point[h] + z*se
		}
		res.Intervals = append(res.Intervals, Interval{Level: level, Lower: lower, Upper: upper})
	}
	return res, nil
}
