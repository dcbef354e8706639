package repositories

import "planforge/pkg/domain/entities"

// SupplyRepository provides read access to supply positions and
// historical delivery records
type SupplyRepository interface {
	GetPosition(sku entities.SKU) (*entities.SupplyPosition, error)
	GetAllPositions() ([]*entities.SupplyPosition, error)
	// GetDeliveries returns historical deliveries for a SKU ordered by
	// ordered date, used to learn effective lead times
	GetDeliveries(sku entities.SKU) ([]entities.DeliveryRecord, error)
}
