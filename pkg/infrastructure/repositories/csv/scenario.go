package csv

import (
	"path/filepath"

	"planforge/pkg/infrastructure/repositories/memory"
)

// Scenario bundles the repositories loaded from one scenario directory.
// Warnings carry recoverable per-row problems (skipped demand rows).
type Scenario struct {
	Items    *memory.ItemRepository
	Demand   *memory.DemandRepository
	BOMs     *memory.BOMRepository
	Supply   *memory.SupplyRepository
	Warnings []error
}

// LoadScenario loads a complete scenario from a directory holding
// items.csv, demand.csv, bom.csv, and supply.csv, with optional
// receipts.csv, deliveries.csv, and overrides.csv alongside.
func (l *Loader) LoadScenario(dir string) (*Scenario, error) {
	items, err := l.LoadItems(filepath.Join(dir, "items.csv"))
	if err != nil {
		return nil, err
	}
	observations, warnings, err := l.LoadDemand(filepath.Join(dir, "demand.csv"))
	if err != nil {
		return nil, err
	}
	edges, err := l.LoadBOM(filepath.Join(dir, "bom.csv"))
	if err != nil {
		return nil, err
	}
	positions, err := l.LoadSupply(filepath.Join(dir, "supply.csv"), filepath.Join(dir, "receipts.csv"))
	if err != nil {
		return nil, err
	}
	deliveries, err := l.LoadDeliveries(filepath.Join(dir, "deliveries.csv"))
	if err != nil {
		return nil, err
	}
	overrides, err := l.LoadOverrides(filepath.Join(dir, "overrides.csv"))
	if err != nil {
		return nil, err
	}

	scenario := &Scenario{
		Items:    memory.NewItemRepository(len(items)),
		Demand:   memory.NewDemandRepository(),
		BOMs:     memory.NewBOMRepository(len(edges)),
		Supply:   memory.NewSupplyRepository(len(positions)),
		Warnings: warnings,
	}
	if err := scenario.Items.LoadItems(items); err != nil {
		return nil, err
	}
	for _, override := range overrides {
		scenario.Items.AddOverride(override)
	}
	if err := scenario.Demand.LoadObservations(observations); err != nil {
		return nil, err
	}
	if err := scenario.BOMs.LoadEdges(edges); err != nil {
		return nil, err
	}
	if err := scenario.Supply.LoadPositions(positions); err != nil {
		return nil, err
	}
	for _, delivery := range deliveries {
		scenario.Supply.AddDelivery(*delivery)
	}
	return scenario, nil
}
