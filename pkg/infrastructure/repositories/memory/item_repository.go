package memory

import (
	"fmt"

	"planforge/pkg/domain/entities"
	"planforge/pkg/domain/repositories"
)

// ItemRepository provides in-memory item master storage
type ItemRepository struct {
	items     []entities.Item
	itemsMap  map[entities.SKU]int
	overrides []entities.ClassificationOverride
}

// NewItemRepository creates a new in-memory item repository
func NewItemRepository(expectedItems int) *ItemRepository {
	return &ItemRepository{
		items:    make([]entities.Item, 0, expectedItems),
		itemsMap: make(map[entities.SKU]int, expectedItems),
	}
}

// Verify interface compliance
var _ repositories.ItemRepository = (*ItemRepository)(nil)

// LoadItems loads items into the repository
func (r *ItemRepository) LoadItems(items []*entities.Item) error {
	for _, item := range items {
		r.AddItem(*item)
	}
	return nil
}

// AddItem adds an item to the repository
func (r *ItemRepository) AddItem(item entities.Item) {
	r.itemsMap[item.SKU] = len(r.items)
	r.items = append(r.items, item)
}

// AddOverride registers a manual classification override
func (r *ItemRepository) AddOverride(override entities.ClassificationOverride) {
	r.overrides = append(r.overrides, override)
}

// GetItem returns master data for a SKU
func (r *ItemRepository) GetItem(sku entities.SKU) (*entities.Item, error) {
	index, exists := r.itemsMap[sku]
	if !exists {
		return nil, fmt.Errorf("item not found: %s", sku)
	}
	return &r.items[index], nil
}

// GetAllItems returns all items
func (r *ItemRepository) GetAllItems() ([]*entities.Item, error) {
	var items []*entities.Item
	for i := range r.items {
		items = append(items, &r.items[i])
	}
	return items, nil
}

// GetOverrides returns all manual classification overrides
func (r *ItemRepository) GetOverrides() ([]entities.ClassificationOverride, error) {
	return r.overrides, nil
}
