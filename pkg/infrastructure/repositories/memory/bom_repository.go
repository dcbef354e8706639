package memory

import (
	"sort"

	"planforge/pkg/domain/entities"
	"planforge/pkg/domain/repositories"
)

// BOMRepository provides in-memory bill of materials storage with
// parent and component indexes for traversal in either direction
type BOMRepository struct {
	edges       []entities.BOMEdge
	parentIndex map[entities.SKU][]int // edges where SKU is the parent
	childIndex  map[entities.SKU][]int // edges where SKU is the component
}

// NewBOMRepository creates a new in-memory BOM repository
func NewBOMRepository(expectedEdges int) *BOMRepository {
	return &BOMRepository{
		edges:       make([]entities.BOMEdge, 0, expectedEdges),
		parentIndex: make(map[entities.SKU][]int),
		childIndex:  make(map[entities.SKU][]int),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// LoadEdges loads BOM edges into the repository
func (r *BOMRepository) LoadEdges(edges []*entities.BOMEdge) error {
	for _, edge := range edges {
		r.AddEdge(*edge)
	}
	return nil
}

// AddEdge adds a BOM edge to the repository
func (r *BOMRepository) AddEdge(edge entities.BOMEdge) {
	index := len(r.edges)
	r.edges = append(r.edges, edge)
	r.parentIndex[edge.ParentSKU] = append(r.parentIndex[edge.ParentSKU], index)
	r.childIndex[edge.ComponentSKU] = append(r.childIndex[edge.ComponentSKU], index)
}

// GetComponents returns the direct component edges of a parent SKU
func (r *BOMRepository) GetComponents(parent entities.SKU) ([]*entities.BOMEdge, error) {
	return r.edgesAt(r.parentIndex[parent]), nil
}

// GetParents returns the direct where-used edges of a component SKU
func (r *BOMRepository) GetParents(component entities.SKU) ([]*entities.BOMEdge, error) {
	return r.edgesAt(r.childIndex[component]), nil
}

// GetAllEdges returns all BOM edges
func (r *BOMRepository) GetAllEdges() ([]*entities.BOMEdge, error) {
	var edges []*entities.BOMEdge
	for i := range r.edges {
		edges = append(edges, &r.edges[i])
	}
	return edges, nil
}

// Roots returns SKUs that appear as a parent but never as a component
func (r *BOMRepository) Roots() ([]entities.SKU, error) {
	var roots []entities.SKU
	for parent := range r.parentIndex {
		if len(r.childIndex[parent]) == 0 {
			roots = append(roots, parent)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots, nil
}

func (r *BOMRepository) edgesAt(indexes []int) []*entities.BOMEdge {
	var edges []*entities.BOMEdge
	for _, index := range indexes {
		edge := r.edges[index]
		edges = append(edges, &edge)
	}
	return edges
}
