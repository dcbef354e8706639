package classification

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/pkg/domain/entities"
)

func newItem(t *testing.T, sku entities.SKU, unitCost string) *entities.Item {
	t.Helper()
	cost, err := decimal.NewFromString(unitCost)
	require.NoError(t, err)
	item, err := entities.NewItem(sku, string(sku), cost, 7)
	require.NoError(t, err)
	return item
}

func steadyDemand(sku entities.SKU, asOf time.Time, days int, qty entities.Quantity) []entities.DemandObservation {
	var obs []entities.DemandObservation
	for d := 1; d <= days; d++ {
		obs = append(obs, entities.DemandObservation{
			SKU:        sku,
			PeriodDate: asOf.AddDate(0, 0, -d),
			Quantity:   qty,
		})
	}
	return obs
}

func TestClassifier_ABCBands(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	classifier := NewClassifier(DefaultConfig())

	// Dollar usage over 10 periods: HIGH 8000, MID 1500, LOW 500.
	items := []*entities.Item{
		newItem(t, "HIGH", "80"),
		newItem(t, "MID", "15"),
		newItem(t, "LOW", "5"),
	}
	observations := map[entities.SKU][]entities.DemandObservation{
		"HIGH": steadyDemand("HIGH", asOf, 10, 10),
		"MID":  steadyDemand("MID", asOf, 10, 10),
		"LOW":  steadyDemand("LOW", asOf, 10, 10),
	}

	result := classifier.Classify(items, observations, nil, asOf)

	assert.Equal(t, entities.ClassA, result["HIGH"].ABC)
	assert.Equal(t, entities.ClassB, result["MID"].ABC)
	assert.Equal(t, entities.ClassC, result["LOW"].ABC)
}

func TestClassifier_TieBreakBySKU(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	cfg.ABoundary = 0.50
	classifier := NewClassifier(cfg)

	// Identical usage; only the sku ordering decides who lands in the A prefix.
	items := []*entities.Item{
		newItem(t, "BBB", "10"),
		newItem(t, "AAA", "10"),
	}
	observations := map[entities.SKU][]entities.DemandObservation{
		"AAA": steadyDemand("AAA", asOf, 10, 10),
		"BBB": steadyDemand("BBB", asOf, 10, 10),
	}

	result := classifier.Classify(items, observations, nil, asOf)

	assert.Equal(t, entities.ClassA, result["AAA"].ABC)
	assert.NotEqual(t, entities.ClassA, result["BBB"].ABC)
}

func TestClassifier_XYZBands(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	classifier := NewClassifier(DefaultConfig())

	items := []*entities.Item{newItem(t, "FLAT", "1")}
	observations := map[entities.SKU][]entities.DemandObservation{
		"FLAT": steadyDemand("FLAT", asOf, 10, 20),
	}

	result := classifier.Classify(items, observations, nil, asOf)

	flat := result["FLAT"]
	assert.Equal(t, entities.ClassX, flat.XYZ)
	assert.InDelta(t, 0.0, flat.CV, 1e-9)
}

func TestClassifier_ZeroMeanIsZ(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	classifier := NewClassifier(DefaultConfig())

	items := []*entities.Item{newItem(t, "DEAD", "1")}
	observations := map[entities.SKU][]entities.DemandObservation{
		"DEAD": steadyDemand("DEAD", asOf, 10, 0),
	}

	result := classifier.Classify(items, observations, nil, asOf)

	dead := result["DEAD"]
	assert.Equal(t, entities.ClassZ, dead.XYZ)
	assert.False(t, dead.InsufficientData)
}

func TestClassifier_InsufficientHistory(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	classifier := NewClassifier(DefaultConfig())

	items := []*entities.Item{newItem(t, "NEW", "1")}
	observations := map[entities.SKU][]entities.DemandObservation{
		"NEW": steadyDemand("NEW", asOf, 2, 5),
	}

	result := classifier.Classify(items, observations, nil, asOf)

	cls := result["NEW"]
	assert.True(t, cls.InsufficientData)
	assert.Equal(t, entities.ABCInsufficientData, cls.ABC)
	assert.Equal(t, entities.XYZInsufficientData, cls.XYZ)
}

func TestClassifier_OverrideWins(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	classifier := NewClassifier(DefaultConfig())

	items := []*entities.Item{newItem(t, "PINNED", "1")}
	observations := map[entities.SKU][]entities.DemandObservation{
		"PINNED": steadyDemand("PINNED", asOf, 10, 20),
	}
	pinnedABC := entities.ClassA
	overrides := []entities.ClassificationOverride{{SKU: "PINNED", ABC: &pinnedABC}}

	result := classifier.Classify(items, observations, overrides, asOf)

	assert.Equal(t, entities.ClassA, result["PINNED"].ABC)
	assert.Equal(t, entities.ClassX, result["PINNED"].XYZ)
}
