package entities

import "fmt"

// ServiceLevelZ returns the z-score for the fixed service level assigned
// to an ABC class: A targets 98%, B 95%, C 90%. Unclassified items get
// the C-class service level.
func ServiceLevelZ(class ABCClass) float64 {
	switch class {
	case ClassA:
		return 2.05
	case ClassB:
		return 1.645
	default:
		return 1.28
	}
}

// SafetyStock represents the run-scoped service-level buffer for a SKU
type SafetyStock struct {
	SKU           SKU
	RunID         string
	Value         float64
	ServiceLevelZ float64
}

// NewSafetyStock creates a validated SafetyStock
func NewSafetyStock(sku SKU, runID string, value, serviceLevelZ float64) (*SafetyStock, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if value < 0 {
		return nil, fmt.Errorf("safety stock cannot be negative, got %g", value)
	}
	if serviceLevelZ <= 0 {
		return nil, fmt.Errorf("service level z must be positive, got %g", serviceLevelZ)
	}

	return &SafetyStock{
		SKU:           sku,
		RunID:         runID,
		Value:         value,
		ServiceLevelZ: serviceLevelZ,
	}, nil
}
