// Package explosion flattens multi-level bills of materials into
// per-component quantity requirements with per-path provenance.
package explosion

import (
	"fmt"
	"sort"

	"planforge/pkg/domain/entities"
	"planforge/pkg/domain/repositories"
)

// DefaultMaxDepth bounds traversal depth as a secondary defense; cycle
// detection along the current path is the primary one.
const DefaultMaxDepth = 25

// Path records one route from the exploded root down to a component,
// with the quantity contributed along that route
type Path struct {
	Route []entities.SKU
	Qty   entities.Quantity
}

// Requirement is the flattened demand for one component across every
// path that reaches it
type Requirement struct {
	ComponentSKU entities.SKU
	TotalQty     entities.Quantity
	Paths        []Path
}

// Engine explodes BOM structures
type Engine struct {
	bomRepo  repositories.BOMRepository
	maxDepth int
}

// NewEngine creates an explosion engine over the given BOM graph
func NewEngine(bomRepo repositories.BOMRepository) *Engine {
	return &Engine{bomRepo: bomRepo, maxDepth: DefaultMaxDepth}
}

// node is one frontier entry of the breadth-first traversal
type node struct {
	sku  entities.SKU
	qty  entities.Quantity
	path []entities.SKU // root..sku inclusive
}

// Explode traverses breadth-first from root, multiplying quantities at
// each level. Phantom components are exploded through without being
// stocked. A SKU reappearing as its own ancestor along the current path
// aborts that subtree with a CircularBOMError; independent branches may
// share a SKU freely. Recovered subtree failures are returned as
// warnings, repository failures as the error.
func (e *Engine) Explode(root entities.SKU, buildQty entities.Quantity) ([]*Requirement, []error, error) {
	if buildQty <= 0 {
		return nil, nil, fmt.Errorf("build quantity must be positive, got %g", float64(buildQty))
	}

	requirements := make(map[entities.SKU]*Requirement)
	var warnings []error

	queue := []node{{sku: root, qty: buildQty, path: []entities.SKU{root}}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if len(current.path) > e.maxDepth {
			warnings = append(warnings, fmt.Errorf(
				"max BOM depth %d exceeded at %s, aborting subtree", e.maxDepth, current.sku))
			continue
		}

		edges, err := e.bomRepo.GetComponents(current.sku)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get components of %s: %w", current.sku, err)
		}

		for _, edge := range edges {
			if onPath(current.path, edge.ComponentSKU) {
				warnings = append(warnings, &entities.CircularBOMError{
					SKU:  edge.ComponentSKU,
					Path: current.path,
				})
				continue
			}

			childQty := current.qty * edge.QtyPerParent
			childPath := extend(current.path, edge.ComponentSKU)

			if !edge.IsPhantom {
				req, exists := requirements[edge.ComponentSKU]
				if !exists {
					req = &Requirement{ComponentSKU: edge.ComponentSKU}
					requirements[edge.ComponentSKU] = req
				}
				req.TotalQty += childQty
				req.Paths = append(req.Paths, Path{Route: childPath, Qty: childQty})
			}

			queue = append(queue, node{sku: edge.ComponentSKU, qty: childQty, path: childPath})
		}
	}

	flattened := make([]*Requirement, 0, len(requirements))
	for _, req := range requirements {
		flattened = append(flattened, req)
	}
	sort.Slice(flattened, func(i, j int) bool {
		return flattened[i].ComponentSKU < flattened[j].ComponentSKU
	})
	return flattened, warnings, nil
}

// WhereUsed returns the finished goods (BOM roots) that transitively
// reference the given component, sorted by SKU
func (e *Engine) WhereUsed(component entities.SKU) ([]entities.SKU, error) {
	visited := map[entities.SKU]bool{component: true}
	queue := []entities.SKU{component}
	rootSet := make(map[entities.SKU]bool)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		parents, err := e.bomRepo.GetParents(current)
		if err != nil {
			return nil, fmt.Errorf("failed to get parents of %s: %w", current, err)
		}

		if len(parents) == 0 && current != component {
			rootSet[current] = true
			continue
		}
		for _, edge := range parents {
			if visited[edge.ParentSKU] {
				continue
			}
			visited[edge.ParentSKU] = true
			queue = append(queue, edge.ParentSKU)
		}
	}

	roots := make([]entities.SKU, 0, len(rootSet))
	for sku := range rootSet {
		roots = append(roots, sku)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots, nil
}

func onPath(path []entities.SKU, sku entities.SKU) bool {
	for _, p := range path {
		if p == sku {
			return true
		}
	}
	return false
}

// extend copies the path so sibling branches never share backing arrays
func extend(path []entities.SKU, sku entities.SKU) []entities.SKU {
	extended := make([]entities.SKU, len(path), len(path)+1)
	copy(extended, path)
	return append(extended, sku)
}
