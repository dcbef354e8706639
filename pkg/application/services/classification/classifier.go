// Package classification assigns ABC (value) and XYZ (variability) bands
// to items from a snapshot of demand history. Classification is pure: the
// same snapshot always yields the same map, and nothing is mutated in
// place during a run.
package classification

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"planforge/pkg/domain/entities"
)

// Config holds the classification thresholds
type Config struct {
	WindowDays      int     // trailing demand window
	MinObservations int     // fewer observed periods flags insufficient data
	ABoundary       float64 // cumulative dollar-usage share covered by class A
	BBoundary       float64 // cumulative share covered by classes A+B
	XThreshold      float64 // CV below this is X
	YThreshold      float64 // CV below this (and >= XThreshold) is Y
}

// DefaultConfig returns the standard 80/95 ABC split and 0.5/1.0 CV bands
func DefaultConfig() Config {
	return Config{
		WindowDays:      90,
		MinObservations: 5,
		ABoundary:       0.80,
		BBoundary:       0.95,
		XThreshold:      0.5,
		YThreshold:      1.0,
	}
}

// Classifier computes per-run ABC/XYZ classifications
type Classifier struct {
	config Config
}

// NewClassifier creates a classifier with the given configuration
func NewClassifier(config Config) *Classifier {
	return &Classifier{config: config}
}

// Classify computes the classification map for all items as of asOf.
// Manual overrides are applied after computation and win over computed
// bands. Items with zero-mean demand fall to class Z by convention
// rather than erroring.
func (c *Classifier) Classify(
	items []*entities.Item,
	observations map[entities.SKU][]entities.DemandObservation,
	overrides []entities.ClassificationOverride,
	asOf time.Time,
) map[entities.SKU]entities.Classification {
	windowStart := asOf.AddDate(0, 0, -c.config.WindowDays)

	result := make(map[entities.SKU]entities.Classification, len(items))
	for _, item := range items {
		obs := inWindow(observations[item.SKU], windowStart, asOf)
		result[item.SKU] = c.classifyVariability(item, obs)
	}

	c.assignValueBands(items, result)

	for _, override := range overrides {
		cls, exists := result[override.SKU]
		if !exists {
			continue
		}
		if override.ABC != nil {
			cls.ABC = *override.ABC
		}
		if override.XYZ != nil {
			cls.XYZ = *override.XYZ
		}
		result[override.SKU] = cls
	}

	return result
}

// classifyVariability computes the XYZ band and dollar usage for one item
func (c *Classifier) classifyVariability(item *entities.Item, obs []entities.DemandObservation) entities.Classification {
	cls := entities.Classification{
		SKU:             item.SKU,
		ObservedPeriods: len(obs),
		DollarUsage:     decimal.Zero,
	}

	totalQty := decimal.Zero
	for _, o := range obs {
		totalQty = totalQty.Add(decimal.NewFromFloat(float64(o.Quantity)))
	}
	cls.DollarUsage = totalQty.Mul(item.UnitCost)

	if len(obs) < c.config.MinObservations {
		cls.InsufficientData = true
		cls.ABC = entities.ABCInsufficientData
		cls.XYZ = entities.XYZInsufficientData
		return cls
	}

	mean, stddev := meanStdDev(obs)
	if mean == 0 {
		// Zero-mean demand leaves CV undefined; Z by convention,
		// not an error.
		cls.XYZ = entities.ClassZ
		return cls
	}

	cls.CV = stddev / mean
	switch {
	case cls.CV < c.config.XThreshold:
		cls.XYZ = entities.ClassX
	case cls.CV < c.config.YThreshold:
		cls.XYZ = entities.ClassY
	default:
		cls.XYZ = entities.ClassZ
	}
	return cls
}

// assignValueBands sorts items by descending dollar usage and assigns A
// to the prefix reaching the A boundary, B up to the B boundary, C to
// the remainder. Equal usage ties break by ascending SKU so runs are
// deterministic. Items flagged insufficient keep that band.
func (c *Classifier) assignValueBands(items []*entities.Item, result map[entities.SKU]entities.Classification) {
	type usage struct {
		sku    entities.SKU
		dollar decimal.Decimal
	}

	var ranked []usage
	total := decimal.Zero
	for _, item := range items {
		cls := result[item.SKU]
		if cls.InsufficientData {
			continue
		}
		ranked = append(ranked, usage{sku: item.SKU, dollar: cls.DollarUsage})
		total = total.Add(cls.DollarUsage)
	}

	sort.Slice(ranked, func(i, j int) bool {
		cmp := ranked[i].dollar.Cmp(ranked[j].dollar)
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].sku < ranked[j].sku
	})

	cumulative := decimal.Zero
	for _, u := range ranked {
		cls := result[u.sku]
		share := 0.0
		if total.IsPositive() {
			share, _ = cumulative.Div(total).Float64()
		}
		switch {
		case total.IsZero():
			cls.ABC = entities.ClassC
		case share < c.config.ABoundary:
			cls.ABC = entities.ClassA
		case share < c.config.BBoundary:
			cls.ABC = entities.ClassB
		default:
			cls.ABC = entities.ClassC
		}
		cumulative = cumulative.Add(u.dollar)
		result[u.sku] = cls
	}
}

func inWindow(obs []entities.DemandObservation, start, end time.Time) []entities.DemandObservation {
	var filtered []entities.DemandObservation
	for _, o := range obs {
		if o.PeriodDate.Before(start) || o.PeriodDate.After(end) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}

func meanStdDev(obs []entities.DemandObservation) (float64, float64) {
	if len(obs) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, o := range obs {
		sum += float64(o.Quantity)
	}
	mean := sum / float64(len(obs))

	variance := 0.0
	for _, o := range obs {
		d := float64(o.Quantity) - mean
		variance += d * d
	}
	variance /= float64(len(obs))
	return mean, math.Sqrt(variance)
}
