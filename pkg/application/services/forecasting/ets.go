package forecasting

import "fmt"

// ETS produces a flat forecast from single exponential smoothing of the
// level, along with one-step-ahead residuals. Negative smoothed levels
// are clamped to zero in the projection.
func ETS(history []float64, alpha float64, horizon int) ([]float64, []float64, error) {
	if len(history) == 0 {
		return nil, nil, fmt.Errorf("ets requires at least one observation")
	}
	if alpha <= 0 || alpha > 1 {
		return nil, nil, fmt.Errorf("ets alpha must be in (0, 1], got %g", alpha)
	}

	level := history[0]
	residuals := make([]float64, 0, len(history)-1)
	for t := 1; t < len(history); t++ {
		residuals = append(residuals, history[t]-level)
		level = alpha*history[t] + (1-alpha)*level
	}

	if level < 0 {
		level = 0
	}
	forecast := make([]float64, horizon)
	for i := range forecast {
		forecast[i] = level
	}
	return forecast, residuals, nil
}
