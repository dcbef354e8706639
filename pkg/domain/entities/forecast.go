package entities

import "fmt"

// ForecastMethod is the closed set of supported forecasting methods
type ForecastMethod int

const (
	// MethodAuto defers to the classification-driven strategy table
	MethodAuto ForecastMethod = iota
	// MethodNone means the forecast was withheld (insufficient history)
	MethodNone
	MethodSMA
	MethodETS
	MethodHoltWinters
	MethodEnsemble
)

// String method for ForecastMethod enum
func (m ForecastMethod) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodNone:
		return "none"
	case MethodSMA:
		return "sma"
	case MethodETS:
		return "ets"
	case MethodHoltWinters:
		return "holt_winters"
	case MethodEnsemble:
		return "ensemble"
	default:
		return "unknown"
	}
}

// Accuracy holds holdout accuracy metrics for a forecast. MAPE is nil
// when every holdout actual was zero and the metric is undefined.
type Accuracy struct {
	MAPE *float64
	MAE  float64
	Bias float64 // positive means systematic over-forecasting
}

// Forecast represents one run-scoped demand projection for a SKU.
// Forecasts are superseded wholesale by the next run, never patched.
type Forecast struct {
	SKU            SKU
	RunID          string
	Method         ForecastMethod
	HorizonDays    int
	Predicted      []float64 // len == HorizonDays, all values >= 0
	Accuracy       *Accuracy
	ResidualStdDev float64 // one-step-ahead in-sample residual stddev
	Degraded       bool    // accuracy degraded past threshold since last run
}

// NewForecast creates a validated Forecast
func NewForecast(sku SKU, runID string, method ForecastMethod, predicted []float64) (*Forecast, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if runID == "" {
		return nil, fmt.Errorf("run id cannot be empty")
	}
	for i, v := range predicted {
		if v < 0 {
			return nil, fmt.Errorf("predicted value at day %d cannot be negative, got %g", i, v)
		}
	}

	return &Forecast{
		SKU:         sku,
		RunID:       runID,
		Method:      method,
		HorizonDays: len(predicted),
		Predicted:   predicted,
	}, nil
}
