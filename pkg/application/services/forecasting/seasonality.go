package forecasting

// DetectSeason tests candidate season lengths against the history using
// lag autocorrelation and returns the strongest candidate whose
// autocorrelation clears the threshold. A candidate needs two full
// seasons of history to be considered.
func DetectSeason(history []float64, candidates []int, threshold float64) (int, bool) {
	bestLen := 0
	bestACF := threshold
	for _, m := range candidates {
		if m < 2 || len(history) < 2*m {
			continue
		}
		if acf := autocorrelation(history, m); acf > bestACF {
			bestACF = acf
			bestLen = m
		}
	}
	return bestLen, bestLen > 0
}

// autocorrelation computes the sample autocorrelation of the series at
// the given lag
func autocorrelation(series []float64, lag int) float64 {
	n := len(series)
	if lag <= 0 || lag >= n {
		return 0
	}

	m := mean(series)
	var num, den float64
	for t := 0; t < n; t++ {
		d := series[t] - m
		den += d * d
	}
	if den == 0 {
		return 0
	}
	for t := 0; t < n-lag; t++ {
		num += (series[t] - m) * (series[t+lag] - m)
	}
	return num / den
}
