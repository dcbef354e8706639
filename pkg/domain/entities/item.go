package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SKU represents a unique stock keeping unit identifier
type SKU string

// Quantity represents a demand or inventory quantity in base units
type Quantity float64

// ABCClass represents the value-based classification band of an item
type ABCClass int

const (
	ABCUnclassified ABCClass = iota
	ClassA
	ClassB
	ClassC
	ABCInsufficientData
)

// String method for ABCClass enum
func (c ABCClass) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	case ABCInsufficientData:
		return "insufficient_data"
	default:
		return "unclassified"
	}
}

// XYZClass represents the variability-based classification band of an item
type XYZClass int

const (
	XYZUnclassified XYZClass = iota
	ClassX
	ClassY
	ClassZ
	XYZInsufficientData
)

// String method for XYZClass enum
func (c XYZClass) String() string {
	switch c {
	case ClassX:
		return "X"
	case ClassY:
		return "Y"
	case ClassZ:
		return "Z"
	case XYZInsufficientData:
		return "insufficient_data"
	default:
		return "unclassified"
	}
}

// Item represents a planned item with its master data
type Item struct {
	SKU            SKU
	Description    string
	UnitCost       decimal.Decimal
	LeadTimeDays   int            // vendor-quoted lead time
	MethodOverride ForecastMethod // MethodAuto unless pinned per item
}

// NewItem creates a validated Item
func NewItem(sku SKU, description string, unitCost decimal.Decimal, leadTimeDays int) (*Item, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative, got %s", unitCost)
	}
	if leadTimeDays < 0 {
		return nil, fmt.Errorf("lead time cannot be negative, got %d", leadTimeDays)
	}

	return &Item{
		SKU:            sku,
		Description:    description,
		UnitCost:       unitCost,
		LeadTimeDays:   leadTimeDays,
		MethodOverride: MethodAuto,
	}, nil
}

// Classification holds the per-run ABC/XYZ banding of a single item
type Classification struct {
	SKU              SKU
	ABC              ABCClass
	XYZ              XYZClass
	DollarUsage      decimal.Decimal
	CV               float64 // coefficient of variation over the window
	ObservedPeriods  int
	InsufficientData bool
}

// ClassificationOverride pins one or both bands for a SKU, bypassing
// the computed classification
type ClassificationOverride struct {
	SKU SKU
	ABC *ABCClass
	XYZ *XYZClass
}
