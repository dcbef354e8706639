package safetystock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/pkg/domain/entities"
)

func TestCalculator_WorkedExample(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// A-class, sigma 5, effective lead 7 days, no review period:
	// 2.05 * 5 * sqrt(7) ~= 27.1
	ss, ok := calc.Calculate(Input{
		SKU:               "A-ITEM",
		RunID:             "run-1",
		Classification:    entities.Classification{SKU: "A-ITEM", ABC: entities.ClassA},
		SigmaDailyDemand:  5,
		EffectiveLeadDays: 7,
	})

	require.True(t, ok)
	assert.InDelta(t, 27.12, ss.Value, 0.05)
	assert.InDelta(t, 2.05, ss.ServiceLevelZ, 1e-9)
}

func TestCalculator_ServiceLevelByClass(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	testCases := []struct {
		name      string
		abc       entities.ABCClass
		expectedZ float64
	}{
		{"A targets 98 percent", entities.ClassA, 2.05},
		{"B targets 95 percent", entities.ClassB, 1.645},
		{"C targets 90 percent", entities.ClassC, 1.28},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ss, ok := calc.Calculate(Input{
				SKU:               "X",
				RunID:             "run-1",
				Classification:    entities.Classification{SKU: "X", ABC: tc.abc},
				SigmaDailyDemand:  1,
				EffectiveLeadDays: 4,
			})
			require.True(t, ok)
			assert.InDelta(t, tc.expectedZ, ss.ServiceLevelZ, 1e-9)
			assert.InDelta(t, tc.expectedZ*2, ss.Value, 1e-9) // sqrt(4) = 2
		})
	}
}

func TestCalculator_ReviewPeriodExtendsExposure(t *testing.T) {
	calc := NewCalculator(Config{ReviewPeriodDays: 9})

	ss, ok := calc.Calculate(Input{
		SKU:               "X",
		RunID:             "run-1",
		Classification:    entities.Classification{SKU: "X", ABC: entities.ClassC},
		SigmaDailyDemand:  2,
		EffectiveLeadDays: 7,
	})

	require.True(t, ok)
	assert.InDelta(t, 1.28*2*4, ss.Value, 1e-9) // sqrt(7+9) = 4
}

func TestCalculator_InsufficientDataSkipped(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	_, ok := calc.Calculate(Input{
		SKU:   "NEW",
		RunID: "run-1",
		Classification: entities.Classification{
			SKU: "NEW", ABC: entities.ABCInsufficientData, InsufficientData: true,
		},
		SigmaDailyDemand:  5,
		EffectiveLeadDays: 7,
	})

	assert.False(t, ok)
}
