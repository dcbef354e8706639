package repositories

import "planforge/pkg/domain/entities"

// ItemRepository provides read access to item master data. Planning runs
// treat the repository contents as a snapshot taken at run start.
type ItemRepository interface {
	GetItem(sku entities.SKU) (*entities.Item, error)
	GetAllItems() ([]*entities.Item, error)
	GetOverrides() ([]entities.ClassificationOverride, error)
}
