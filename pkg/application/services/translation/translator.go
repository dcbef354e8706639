// Package translation converts finished-goods forecasts into dependent
// component demand by exploding each finished good's bill of materials
// and accumulating component quantities per future day.
package translation

import (
	"fmt"
	"sort"
	"sync"

	"planforge/pkg/application/services/explosion"
	"planforge/pkg/domain/entities"
)

// Plan holds the aggregated dependent demand of one run. It must be
// complete for every finished good before any component's balance
// simulation starts, because a component's total dependent demand spans
// all of its parent assemblies.
type Plan struct {
	HorizonDays int
	dependent   map[entities.SKU][]float64
	assemblies  map[entities.SKU]map[entities.SKU]bool
}

// DependentFor returns the per-day dependent demand for a SKU, or nil
// when the SKU supports no assembly
func (p *Plan) DependentFor(sku entities.SKU) []float64 {
	return p.dependent[sku]
}

// IsComponent reports whether the SKU carries dependent demand from at
// least one assembly
func (p *Plan) IsComponent(sku entities.SKU) bool {
	return len(p.assemblies[sku]) > 0
}

// AssembliesFor returns the finished goods whose builds consume the
// SKU, sorted for deterministic reporting
func (p *Plan) AssembliesFor(sku entities.SKU) []entities.SKU {
	set := p.assemblies[sku]
	if len(set) == 0 {
		return nil
	}
	result := make([]entities.SKU, 0, len(set))
	for fg := range set {
		result = append(result, fg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Translator aggregates dependent demand across finished goods
type Translator struct {
	engine *explosion.Engine
}

// NewTranslator creates a translator over the given explosion engine
func NewTranslator(engine *explosion.Engine) *Translator {
	return &Translator{engine: engine}
}

// Translate explodes a unit build of each finished good and scales the
// flattened component requirements by the finished good's daily
// forecast. Explosions fan out concurrently per finished good; the
// merge runs in SKU order so the plan is deterministic. Subtree
// failures (circular references, depth guard) are returned as warnings;
// the affected branch contributes no demand and the run continues.
func (t *Translator) Translate(
	finishedGoods []entities.SKU,
	forecasts map[entities.SKU]*entities.Forecast,
	horizonDays int,
) (*Plan, []error, error) {
	plan := &Plan{
		HorizonDays: horizonDays,
		dependent:   make(map[entities.SKU][]float64),
		assemblies:  make(map[entities.SKU]map[entities.SKU]bool),
	}
	var warnings []error

	ordered := make([]entities.SKU, len(finishedGoods))
	copy(ordered, finishedGoods)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	type explodeResult struct {
		requirements []*explosion.Requirement
		warnings     []error
		err          error
	}
	results := make([]explodeResult, len(ordered))
	var wg sync.WaitGroup
	for i, fg := range ordered {
		forecast, exists := forecasts[fg]
		if !exists || forecast.Method == entities.MethodNone {
			continue
		}
		wg.Add(1)
		go func(i int, fg entities.SKU) {
			defer wg.Done()
			reqs, warns, err := t.engine.Explode(fg, 1)
			results[i] = explodeResult{requirements: reqs, warnings: warns, err: err}
		}(i, fg)
	}
	wg.Wait()

	for i, fg := range ordered {
		res := results[i]
		if res.err != nil {
			return nil, nil, fmt.Errorf("failed to explode %s: %w", fg, res.err)
		}
		warnings = append(warnings, res.warnings...)
		forecast := forecasts[fg]

		for _, req := range res.requirements {
			daily := plan.dependent[req.ComponentSKU]
			if daily == nil {
				daily = make([]float64, horizonDays)
				plan.dependent[req.ComponentSKU] = daily
			}
			for d := 0; d < horizonDays && d < len(forecast.Predicted); d++ {
				daily[d] += float64(req.TotalQty) * forecast.Predicted[d]
			}

			if plan.assemblies[req.ComponentSKU] == nil {
				plan.assemblies[req.ComponentSKU] = make(map[entities.SKU]bool)
			}
			plan.assemblies[req.ComponentSKU][fg] = true
		}
	}

	return plan, warnings, nil
}
