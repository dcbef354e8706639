// Package safetystock sizes per-item service-level buffers from demand
// variability and replenishment lead time.
package safetystock

import (
	"math"

	"planforge/pkg/domain/entities"
)

// Config holds the safety stock parameters
type Config struct {
	ReviewPeriodDays int // added to lead time under periodic review
}

// DefaultConfig returns continuous-review defaults
func DefaultConfig() Config {
	return Config{ReviewPeriodDays: 0}
}

// Calculator computes run-scoped safety stock values
type Calculator struct {
	config Config
}

// NewCalculator creates a calculator with the given configuration
func NewCalculator(config Config) *Calculator {
	return &Calculator{config: config}
}

// Input carries the per-item figures for one calculation
type Input struct {
	SKU               entities.SKU
	RunID             string
	Classification    entities.Classification
	SigmaDailyDemand  float64 // forecast residual stddev, or raw stddev fallback
	EffectiveLeadDays int
}

// Calculate sizes the buffer as z * sigma_daily * sqrt(lead + review).
// The z-score comes from the fixed service level of the item's ABC
// class. Items flagged insufficient are not buffered.
func (c *Calculator) Calculate(in Input) (*entities.SafetyStock, bool) {
	if in.Classification.InsufficientData {
		return nil, false
	}

	z := entities.ServiceLevelZ(in.Classification.ABC)
	exposure := float64(in.EffectiveLeadDays + c.config.ReviewPeriodDays)
	if exposure < 0 {
		exposure = 0
	}

	value := z * in.SigmaDailyDemand * math.Sqrt(exposure)
	if value < 0 {
		value = 0
	}

	ss, err := entities.NewSafetyStock(in.SKU, in.RunID, value, z)
	if err != nil {
		return nil, false
	}
	return ss, true
}
