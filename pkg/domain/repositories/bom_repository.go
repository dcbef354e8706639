package repositories

import "planforge/pkg/domain/entities"

// BOMRepository provides access to the bill of materials graph
type BOMRepository interface {
	// GetComponents returns the direct component edges of a parent SKU
	GetComponents(parent entities.SKU) ([]*entities.BOMEdge, error)
	// GetParents returns the direct where-used edges of a component SKU
	GetParents(component entities.SKU) ([]*entities.BOMEdge, error)
	GetAllEdges() ([]*entities.BOMEdge, error)
	// Roots returns SKUs that appear as a parent but never as a component,
	// i.e. the finished goods of the single-facility BOM
	Roots() ([]entities.SKU, error)
}
