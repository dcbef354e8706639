package entities

import "fmt"

// BOMEdge represents a single parent-component relationship in the
// bill of materials graph
type BOMEdge struct {
	ParentSKU    SKU
	ComponentSKU SKU
	QtyPerParent Quantity
	IsPhantom    bool // phantom components are exploded through, never stocked
}

// NewBOMEdge creates a validated BOMEdge
func NewBOMEdge(parentSKU, componentSKU SKU, qtyPerParent Quantity, isPhantom bool) (*BOMEdge, error) {
	if string(parentSKU) == "" {
		return nil, fmt.Errorf("parent sku cannot be empty")
	}
	if string(componentSKU) == "" {
		return nil, fmt.Errorf("component sku cannot be empty")
	}
	if parentSKU == componentSKU {
		return nil, fmt.Errorf("parent and component skus cannot be the same: %s", parentSKU)
	}
	if qtyPerParent <= 0 {
		return nil, fmt.Errorf("quantity per parent must be positive, got %g", float64(qtyPerParent))
	}

	return &BOMEdge{
		ParentSKU:    parentSKU,
		ComponentSKU: componentSKU,
		QtyPerParent: qtyPerParent,
		IsPhantom:    isPhantom,
	}, nil
}
