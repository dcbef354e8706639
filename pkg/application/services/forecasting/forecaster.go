// Package forecasting produces per-item demand projections. Method
// selection is driven by the item's ABC/XYZ classification through an
// explicit strategy table; every method yields a finite horizon of
// non-negative daily values that is regenerated wholesale each run.
package forecasting

import (
	"fmt"

	"planforge/pkg/domain/entities"
)

// Config holds the forecasting parameters
type Config struct {
	HorizonDays          int
	SMAWindow            int
	Alpha                float64 // exponential smoothing level constant
	HoltWinters          HoltWintersParams
	SeasonCandidates     []int   // season lengths probed by the periodicity test
	SeasonThreshold      float64 // minimum autocorrelation to accept a season
	HoldoutPeriods       int     // most recent periods held out for accuracy
	MinObservations      int     // fewer observed periods withholds the forecast
	DegradationThreshold float64 // MAPE increase vs prior run that flags re-evaluation
}

// DefaultConfig returns the standard forecasting parameters
func DefaultConfig() Config {
	return Config{
		HorizonDays:          90,
		SMAWindow:            14,
		Alpha:                0.3,
		HoltWinters:          HoltWintersParams{Alpha: 0.3, Beta: 0.1, Gamma: 0.1},
		SeasonCandidates:     []int{7, 30},
		SeasonThreshold:      0.3,
		HoldoutPeriods:       14,
		MinObservations:      5,
		DegradationThreshold: 0.15,
	}
}

// Input carries everything needed to forecast one item
type Input struct {
	SKU             entities.SKU
	RunID           string
	History         []float64 // zero-filled daily demand series, oldest first
	ObservedPeriods int
	Classification  entities.Classification
	Override        entities.ForecastMethod
	PreviousMAPE    *float64 // chosen method's MAPE from the last published run
}

// Forecaster produces forecasts for classified items
type Forecaster struct {
	config Config
}

// NewForecaster creates a forecaster with the given configuration
func NewForecaster(config Config) *Forecaster {
	return &Forecaster{config: config}
}

// Forecast projects demand for one item. Items with insufficient
// history get an InsufficientHistoryError and no forecast.
func (f *Forecaster) Forecast(in Input) (*entities.Forecast, error) {
	if in.ObservedPeriods < f.config.MinObservations {
		return nil, &entities.InsufficientHistoryError{
			SKU:      in.SKU,
			Observed: in.ObservedPeriods,
			Required: f.config.MinObservations,
		}
	}

	method := SelectMethod(in.Classification, in.Override)
	if method == entities.MethodNone {
		return nil, &entities.InsufficientHistoryError{
			SKU:      in.SKU,
			Observed: in.ObservedPeriods,
			Required: f.config.MinObservations,
		}
	}

	seasonLen, hasSeason := DetectSeason(in.History, f.config.SeasonCandidates, f.config.SeasonThreshold)

	// A confirmed season upgrades exponential smoothing to Holt-Winters.
	// C-class items keep the cheap moving average regardless.
	if method == entities.MethodETS && hasSeason {
		method = entities.MethodHoltWinters
	}
	if method == entities.MethodHoltWinters && !hasSeason {
		method = entities.MethodETS
	}

	if method == entities.MethodEnsemble {
		return f.forecastEnsemble(in, seasonLen, hasSeason)
	}
	return f.forecastSingle(in, method, seasonLen)
}

// forecastSingle runs one method over the full history
func (f *Forecaster) forecastSingle(in Input, method entities.ForecastMethod, seasonLen int) (*entities.Forecast, error) {
	values, residuals, err := f.project(method, in.History, f.config.HorizonDays, seasonLen)
	if err != nil {
		return nil, fmt.Errorf("failed to forecast %s with %s: %w", in.SKU, method, err)
	}

	forecast, err := entities.NewForecast(in.SKU, in.RunID, method, values)
	if err != nil {
		return nil, err
	}
	forecast.ResidualStdDev = StdDev(residuals)

	if holdout, herr := EvaluateHoldout(in.History, f.config.HoldoutPeriods, f.projector(method, seasonLen)); herr == nil {
		forecast.Accuracy = toEntityAccuracy(holdout.Accuracy)
	}
	forecast.Degraded = f.degraded(forecast.Accuracy, in.PreviousMAPE)
	return forecast, nil
}

// forecastEnsemble blends the single methods with inverse-MAPE weights.
// Members whose holdout MAPE is undefined get weight zero; if every
// member is undefined the item degrades to a plain moving average.
func (f *Forecaster) forecastEnsemble(in Input, seasonLen int, hasSeason bool) (*entities.Forecast, error) {
	methods := []entities.ForecastMethod{entities.MethodSMA, entities.MethodETS}
	if hasSeason {
		methods = append(methods, entities.MethodHoltWinters)
	}

	forecasts := make([][]float64, len(methods))
	stddevs := make([]float64, len(methods))
	holdouts := make([]*HoldoutResult, len(methods))
	mapes := make([]*float64, len(methods))

	for i, m := range methods {
		values, residuals, err := f.project(m, in.History, f.config.HorizonDays, seasonLen)
		if err != nil {
			return nil, fmt.Errorf("failed to forecast %s ensemble member %s: %w", in.SKU, m, err)
		}
		forecasts[i] = values
		stddevs[i] = StdDev(residuals)

		if holdout, herr := EvaluateHoldout(in.History, f.config.HoldoutPeriods, f.projector(m, seasonLen)); herr == nil {
			holdouts[i] = holdout
			mapes[i] = holdout.Accuracy.MAPE
		}
	}

	weights := Weights(mapes)
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		degradedForecast, err := f.forecastSingle(in, entities.MethodSMA, seasonLen)
		if err != nil {
			return nil, err
		}
		degradedForecast.Degraded = true
		return degradedForecast, nil
	}

	combined := Combine(forecasts, weights, f.config.HorizonDays)
	forecast, err := entities.NewForecast(in.SKU, in.RunID, entities.MethodEnsemble, combined)
	if err != nil {
		return nil, err
	}

	for i, w := range weights {
		forecast.ResidualStdDev += w * stddevs[i]
	}
	forecast.Accuracy = f.ensembleAccuracy(holdouts, weights)
	forecast.Degraded = f.degraded(forecast.Accuracy, in.PreviousMAPE)
	return forecast, nil
}

// ensembleAccuracy scores the weighted combination of the members'
// holdout predictions against the held-out actuals
func (f *Forecaster) ensembleAccuracy(holdouts []*HoldoutResult, weights []float64) *entities.Accuracy {
	var actual []float64
	members := make([][]float64, len(holdouts))
	for i, h := range holdouts {
		if h == nil || weights[i] == 0 {
			continue
		}
		members[i] = h.Predicted
		if actual == nil {
			actual = h.Actual
		}
	}
	if actual == nil {
		return nil
	}

	combined := Combine(members, weights, len(actual))
	return toEntityAccuracy(Metrics(actual, combined))
}

// projector returns a holdout-evaluation closure for the given method
func (f *Forecaster) projector(method entities.ForecastMethod, seasonLen int) Projector {
	return func(train []float64, horizon int) ([]float64, error) {
		values, _, err := f.project(method, train, horizon, seasonLen)
		return values, err
	}
}

// project dispatches to the closed set of methods
func (f *Forecaster) project(method entities.ForecastMethod, history []float64, horizon, seasonLen int) ([]float64, []float64, error) {
	switch method {
	case entities.MethodSMA:
		return SMA(history, f.config.SMAWindow, horizon)
	case entities.MethodETS:
		return ETS(history, f.config.Alpha, horizon)
	case entities.MethodHoltWinters:
		return HoltWinters(history, seasonLen, f.config.HoltWinters, horizon)
	default:
		return nil, nil, fmt.Errorf("unsupported forecast method %s", method)
	}
}

// degraded reports whether accuracy slipped past the re-evaluation
// threshold since the previous published run
func (f *Forecaster) degraded(accuracy *entities.Accuracy, previousMAPE *float64) bool {
	if accuracy == nil || accuracy.MAPE == nil || previousMAPE == nil {
		return false
	}
	return *accuracy.MAPE > *previousMAPE+f.config.DegradationThreshold
}

func toEntityAccuracy(m AccuracyMetrics) *entities.Accuracy {
	return &entities.Accuracy{MAPE: m.MAPE, MAE: m.MAE, Bias: m.Bias}
}
