package forecasting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantSeries(n int, v float64) []float64 {
	series := make([]float64, n)
	for i := range series {
		series[i] = v
	}
	return series
}

func weeklySeries(weeks int) []float64 {
	pattern := []float64{5, 10, 20, 30, 25, 15, 5}
	var series []float64
	for w := 0; w < weeks; w++ {
		series = append(series, pattern...)
	}
	return series
}

func TestSMA_FlatMeanOfWindow(t *testing.T) {
	history := []float64{10, 20, 30, 40}

	forecast, _, err := SMA(history, 2, 3)
	require.NoError(t, err)

	require.Len(t, forecast, 3)
	for _, v := range forecast {
		assert.InDelta(t, 35.0, v, 1e-9) // mean of trailing {30, 40}
	}
}

func TestSMA_WindowLargerThanHistory(t *testing.T) {
	forecast, _, err := SMA([]float64{10, 20}, 14, 1)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, forecast[0], 1e-9)
}

func TestSMA_EmptyHistory(t *testing.T) {
	_, _, err := SMA(nil, 7, 5)
	assert.Error(t, err)
}

func TestETS_ConvergesOnConstantDemand(t *testing.T) {
	forecast, residuals, err := ETS(constantSeries(30, 20), 0.3, 5)
	require.NoError(t, err)

	for _, v := range forecast {
		assert.InDelta(t, 20.0, v, 1e-9)
	}
	for _, r := range residuals {
		assert.InDelta(t, 0.0, r, 1e-9)
	}
}

func TestETS_RejectsBadAlpha(t *testing.T) {
	_, _, err := ETS(constantSeries(10, 1), 0, 5)
	assert.Error(t, err)
	_, _, err = ETS(constantSeries(10, 1), 1.5, 5)
	assert.Error(t, err)
}

func TestHoltWinters_TracksSeasonalPattern(t *testing.T) {
	history := weeklySeries(8)

	forecast, _, err := HoltWinters(history, 7, HoltWintersParams{Alpha: 0.3, Beta: 0.1, Gamma: 0.1}, 14)
	require.NoError(t, err)
	require.Len(t, forecast, 14)

	// A stable repeating pattern should forecast peaks well above troughs
	// at the matching phase offsets.
	assert.Greater(t, forecast[3], forecast[0])
	assert.Greater(t, forecast[10], forecast[7])
	for _, v := range forecast {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestHoltWinters_RequiresTwoSeasons(t *testing.T) {
	_, _, err := HoltWinters(constantSeries(10, 5), 7, HoltWintersParams{Alpha: 0.3, Beta: 0.1, Gamma: 0.1}, 5)
	assert.Error(t, err)
}

func TestDetectSeason_FindsWeeklyCycle(t *testing.T) {
	seasonLen, found := DetectSeason(weeklySeries(6), []int{7, 30}, 0.3)
	assert.True(t, found)
	assert.Equal(t, 7, seasonLen)
}

func TestDetectSeason_NoSeasonInNoise(t *testing.T) {
	// Pseudo-random series with no 7-day structure should not clear a
	// high threshold.
	series := make([]float64, 40)
	for i := range series {
		series[i] = float64((i*7919)%13) * 0.01
	}
	_, found := DetectSeason(series, []int{7}, 0.9)
	assert.False(t, found)
}

func TestMetrics_KnownValues(t *testing.T) {
	actual := []float64{10, 20, 0}
	predicted := []float64{12, 18, 3}

	m := Metrics(actual, predicted)

	require.NotNil(t, m.MAPE)
	// Zero-actual period excluded: (2/10 + 2/20) / 2 = 0.15
	assert.InDelta(t, 0.15, *m.MAPE, 1e-9)
	assert.InDelta(t, 7.0/3.0, m.MAE, 1e-9)
	assert.InDelta(t, 1.0, m.Bias, 1e-9)
}

func TestMetrics_AllZeroActualsLeavesMAPEUndefined(t *testing.T) {
	m := Metrics([]float64{0, 0, 0}, []float64{1, 2, 3})
	assert.Nil(t, m.MAPE)
	assert.InDelta(t, 2.0, m.MAE, 1e-9)
}

func TestWeights_SumToOne(t *testing.T) {
	cases := [][]float64{
		{0.1, 0.2, 0.4},
		{0.5, 0.5},
		{1.0, 0.01, 3.7, 0.2},
	}
	for _, mapes := range cases {
		ptrs := make([]*float64, len(mapes))
		for i := range mapes {
			ptrs[i] = &mapes[i]
		}
		weights := Weights(ptrs)
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestWeights_UndefinedMAPEGetsZero(t *testing.T) {
	mape := 0.2
	weights := Weights([]*float64{&mape, nil})
	assert.InDelta(t, 1.0, weights[0], 1e-9)
	assert.Equal(t, 0.0, weights[1])
}

func TestWeights_AllUndefined(t *testing.T) {
	weights := Weights([]*float64{nil, nil})
	for _, w := range weights {
		assert.Equal(t, 0.0, w)
	}
}

func TestWeights_LowerMAPEGetsMoreWeight(t *testing.T) {
	good, bad := 0.1, 0.4
	weights := Weights([]*float64{&good, &bad})
	assert.Greater(t, weights[0], weights[1])
	assert.False(t, math.IsInf(weights[0], 1))
}
