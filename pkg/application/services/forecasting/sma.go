package forecasting

import "fmt"

// SMA produces a flat forecast equal to the mean of the trailing window,
// along with the one-step-ahead in-sample residuals. The cheapest method;
// the default for low-value items.
func SMA(history []float64, window, horizon int) ([]float64, []float64, error) {
	if len(history) == 0 {
		return nil, nil, fmt.Errorf("sma requires at least one observation")
	}
	if window <= 0 {
		return nil, nil, fmt.Errorf("sma window must be positive, got %d", window)
	}
	if window > len(history) {
		window = len(history)
	}

	var residuals []float64
	for t := window; t < len(history); t++ {
		pred := mean(history[t-window : t])
		residuals = append(residuals, history[t]-pred)
	}

	level := mean(history[len(history)-window:])
	if level < 0 {
		level = 0
	}

	forecast := make([]float64, horizon)
	for i := range forecast {
		forecast[i] = level
	}
	return forecast, residuals, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
