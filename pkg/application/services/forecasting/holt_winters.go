package forecasting

import "fmt"

// HoltWintersParams holds the additive Holt-Winters smoothing constants
type HoltWintersParams struct {
	Alpha float64 // level
	Beta  float64 // trend
	Gamma float64 // seasonal
}

// HoltWinters produces an additive level + trend + seasonal forecast,
// along with one-step-ahead residuals. Requires at least two full
// seasons of history. Negative projections are clamped to zero.
func HoltWinters(history []float64, seasonLen int, params HoltWintersParams, horizon int) ([]float64, []float64, error) {
	if seasonLen < 2 {
		return nil, nil, fmt.Errorf("season length must be at least 2, got %d", seasonLen)
	}
	if len(history) < 2*seasonLen {
		return nil, nil, fmt.Errorf("holt-winters requires %d observations for season length %d, got %d",
			2*seasonLen, seasonLen, len(history))
	}
	for _, p := range []float64{params.Alpha, params.Beta, params.Gamma} {
		if p <= 0 || p > 1 {
			return nil, nil, fmt.Errorf("smoothing constants must be in (0, 1], got %g", p)
		}
	}

	// Initialize from the first two seasons: level is the first-season
	// mean, trend the per-period change between season means.
	level := mean(history[:seasonLen])
	trend := (mean(history[seasonLen:2*seasonLen]) - level) / float64(seasonLen)

	seasonal := make([]float64, seasonLen)
	for i := 0; i < seasonLen; i++ {
		seasonal[i] = history[i] - level
	}

	var residuals []float64
	for t := seasonLen; t < len(history); t++ {
		idx := t % seasonLen
		pred := level + trend + seasonal[idx]
		residuals = append(residuals, history[t]-pred)

		prevLevel := level
		level = params.Alpha*(history[t]-seasonal[idx]) + (1-params.Alpha)*(level+trend)
		trend = params.Beta*(level-prevLevel) + (1-params.Beta)*trend
		seasonal[idx] = params.Gamma*(history[t]-level) + (1-params.Gamma)*seasonal[idx]
	}

	forecast := make([]float64, horizon)
	for h := 0; h < horizon; h++ {
		idx := (len(history) + h) % seasonLen
		v := level + float64(h+1)*trend + seasonal[idx]
		if v < 0 {
			v = 0
		}
		forecast[h] = v
	}
	return forecast, residuals, nil
}
