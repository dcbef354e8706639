package forecasting

// minMAPE floors the MAPE used for weighting so a perfect holdout score
// does not produce an infinite weight.
const minMAPE = 1e-6

// Weights computes inverse-MAPE ensemble weights, renormalized to sum
// to 1. A nil (undefined) MAPE contributes weight 0. If no method has a
// defined MAPE the returned weights are all zero.
func Weights(mapes []*float64) []float64 {
	weights := make([]float64, len(mapes))
	total := 0.0
	for i, m := range mapes {
		if m == nil {
			continue
		}
		v := *m
		if v < minMAPE {
			v = minMAPE
		}
		weights[i] = 1 / v
		total += weights[i]
	}
	if total == 0 {
		return weights
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// Combine blends member forecasts with the given weights, element-wise.
// All members must share the same horizon.
func Combine(members [][]float64, weights []float64, horizon int) []float64 {
	combined := make([]float64, horizon)
	for i, member := range members {
		if weights[i] == 0 {
			continue
		}
		for d := 0; d < horizon && d < len(member); d++ {
			combined[d] += weights[i] * member[d]
		}
	}
	for d, v := range combined {
		if v < 0 {
			combined[d] = 0
		}
	}
	return combined
}
