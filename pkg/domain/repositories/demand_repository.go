package repositories

import "planforge/pkg/domain/entities"

// DemandRepository provides read access to historical demand observations
type DemandRepository interface {
	// GetObservations returns observations for a SKU ordered by period date
	GetObservations(sku entities.SKU) ([]entities.DemandObservation, error)
	// GetAllObservations returns every SKU's observations ordered by period date
	GetAllObservations() (map[entities.SKU][]entities.DemandObservation, error)
}
