package entities

import (
	"fmt"
	"time"
)

// RiskType classifies a detected supply risk
type RiskType int

const (
	RiskStockout RiskType = iota
	RiskComponentShort
	RiskSSBreach
	RiskPOLate
)

// String method for RiskType enum
func (r RiskType) String() string {
	switch r {
	case RiskStockout:
		return "STOCKOUT"
	case RiskComponentShort:
		return "COMPONENT_SHORT"
	case RiskSSBreach:
		return "SS_BREACH"
	case RiskPOLate:
		return "PO_LATE"
	default:
		return "UNKNOWN"
	}
}

// SeverityRank returns the ordering used when multiple risks apply to
// the same item: lower rank is more severe
func (r RiskType) SeverityRank() int {
	switch r {
	case RiskStockout:
		return 0
	case RiskComponentShort:
		return 1
	case RiskSSBreach:
		return 2
	case RiskPOLate:
		return 3
	default:
		return 4
	}
}

// Risk represents one run-scoped risk record for a SKU. Only the
// top-ranked active risk per item is surfaced; lower-ranked ones are
// retained for audit with Suppressed set.
type Risk struct {
	SKU                SKU
	RunID              string
	Type               RiskType
	TriggerDay         int
	TriggerDate        time.Time
	SeverityRank       int
	Suppressed         bool
	RiskStatement      string
	ActionStatement    string
	AffectedAssemblies []SKU // populated for COMPONENT_SHORT
}

// NewRisk creates a validated Risk
func NewRisk(sku SKU, runID string, riskType RiskType, triggerDay int, triggerDate time.Time) (*Risk, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if runID == "" {
		return nil, fmt.Errorf("run id cannot be empty")
	}
	if triggerDay < 0 {
		return nil, fmt.Errorf("trigger day cannot be negative, got %d", triggerDay)
	}

	return &Risk{
		SKU:          sku,
		RunID:        runID,
		Type:         riskType,
		TriggerDay:   triggerDay,
		TriggerDate:  triggerDate,
		SeverityRank: riskType.SeverityRank(),
	}, nil
}
