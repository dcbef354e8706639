package memory

import (
	"fmt"
	"sort"

	"planforge/pkg/domain/entities"
	"planforge/pkg/domain/repositories"
)

// SupplyRepository provides in-memory supply position and delivery
// history storage
type SupplyRepository struct {
	positions    []entities.SupplyPosition
	positionsMap map[entities.SKU]int
	deliveries   map[entities.SKU][]entities.DeliveryRecord
}

// NewSupplyRepository creates a new in-memory supply repository
func NewSupplyRepository(expectedPositions int) *SupplyRepository {
	return &SupplyRepository{
		positions:    make([]entities.SupplyPosition, 0, expectedPositions),
		positionsMap: make(map[entities.SKU]int, expectedPositions),
		deliveries:   make(map[entities.SKU][]entities.DeliveryRecord),
	}
}

// Verify interface compliance
var _ repositories.SupplyRepository = (*SupplyRepository)(nil)

// LoadPositions loads supply positions into the repository
func (r *SupplyRepository) LoadPositions(positions []*entities.SupplyPosition) error {
	for _, pos := range positions {
		r.AddPosition(*pos)
	}
	return nil
}

// AddPosition adds a supply position, keeping receipts ordered by
// expected date
func (r *SupplyRepository) AddPosition(pos entities.SupplyPosition) {
	sort.Slice(pos.OpenReceipts, func(i, j int) bool {
		return pos.OpenReceipts[i].ExpectedDate.Before(pos.OpenReceipts[j].ExpectedDate)
	})
	r.positionsMap[pos.SKU] = len(r.positions)
	r.positions = append(r.positions, pos)
}

// AddDelivery appends one historical delivery record
func (r *SupplyRepository) AddDelivery(delivery entities.DeliveryRecord) {
	records := append(r.deliveries[delivery.SKU], delivery)
	sort.Slice(records, func(i, j int) bool {
		return records[i].OrderedDate.Before(records[j].OrderedDate)
	})
	r.deliveries[delivery.SKU] = records
}

// GetPosition returns the supply position for a SKU
func (r *SupplyRepository) GetPosition(sku entities.SKU) (*entities.SupplyPosition, error) {
	index, exists := r.positionsMap[sku]
	if !exists {
		return nil, fmt.Errorf("supply position not found: %s", sku)
	}
	return &r.positions[index], nil
}

// GetAllPositions returns all supply positions
func (r *SupplyRepository) GetAllPositions() ([]*entities.SupplyPosition, error) {
	var positions []*entities.SupplyPosition
	for i := range r.positions {
		positions = append(positions, &r.positions[i])
	}
	return positions, nil
}

// GetDeliveries returns delivery history for a SKU ordered by ordered date
func (r *SupplyRepository) GetDeliveries(sku entities.SKU) ([]entities.DeliveryRecord, error) {
	return r.deliveries[sku], nil
}
