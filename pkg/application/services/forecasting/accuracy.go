package forecasting

import (
	"fmt"
	"math"
)

// HoldoutResult holds a candidate method's performance over the held-out
// tail of the history
type HoldoutResult struct {
	Accuracy  AccuracyMetrics
	Predicted []float64
	Actual    []float64
}

// AccuracyMetrics mirrors the published accuracy fields. MAPE is nil
// when every holdout actual was zero, leaving the metric undefined; an
// undefined MAPE excludes the method from ensemble weighting rather
// than guessing a numeric stand-in.
type AccuracyMetrics struct {
	MAPE *float64
	MAE  float64
	Bias float64
}

// Projector produces a forecast of the given horizon from a training
// series
type Projector func(train []float64, horizon int) ([]float64, error)

// EvaluateHoldout holds out the most recent holdout periods, forecasts
// them from the remaining history, and scores the result.
func EvaluateHoldout(history []float64, holdout int, project Projector) (*HoldoutResult, error) {
	if holdout <= 0 {
		return nil, fmt.Errorf("holdout must be positive, got %d", holdout)
	}
	if len(history) <= holdout {
		return nil, fmt.Errorf("history of %d periods cannot hold out %d", len(history), holdout)
	}

	train := history[:len(history)-holdout]
	actual := history[len(history)-holdout:]

	predicted, err := project(train, holdout)
	if err != nil {
		return nil, err
	}

	return &HoldoutResult{
		Accuracy:  Metrics(actual, predicted),
		Predicted: predicted,
		Actual:    actual,
	}, nil
}

// Metrics computes MAPE, MAE and bias of predictions against actuals.
// Zero-actual periods are excluded from MAPE.
func Metrics(actual, predicted []float64) AccuracyMetrics {
	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}
	if n == 0 {
		return AccuracyMetrics{}
	}

	var absErr, signedErr, pctErr float64
	pctCount := 0
	for i := 0; i < n; i++ {
		err := predicted[i] - actual[i]
		absErr += math.Abs(err)
		signedErr += err
		if actual[i] > 0 {
			pctErr += math.Abs(err) / actual[i]
			pctCount++
		}
	}

	metrics := AccuracyMetrics{
		MAE:  absErr / float64(n),
		Bias: signedErr / float64(n),
	}
	if pctCount > 0 {
		mape := pctErr / float64(pctCount)
		metrics.MAPE = &mape
	}
	return metrics
}

// StdDev computes the population standard deviation of residuals
func StdDev(residuals []float64) float64 {
	if len(residuals) == 0 {
		return 0
	}
	m := mean(residuals)
	variance := 0.0
	for _, r := range residuals {
		d := r - m
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(residuals)))
}
