package memory

import (
	"sort"

	"planforge/pkg/domain/entities"
	"planforge/pkg/domain/repositories"
)

// DemandRepository provides in-memory demand observation storage
type DemandRepository struct {
	observations map[entities.SKU][]entities.DemandObservation
}

// NewDemandRepository creates a new in-memory demand repository
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{
		observations: make(map[entities.SKU][]entities.DemandObservation),
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadObservations loads observations into the repository
func (r *DemandRepository) LoadObservations(observations []*entities.DemandObservation) error {
	for _, obs := range observations {
		r.AddObservation(*obs)
	}
	return nil
}

// AddObservation appends one observation, keeping per-SKU period order
func (r *DemandRepository) AddObservation(obs entities.DemandObservation) {
	series := append(r.observations[obs.SKU], obs)
	sort.Slice(series, func(i, j int) bool {
		return series[i].PeriodDate.Before(series[j].PeriodDate)
	})
	r.observations[obs.SKU] = series
}

// GetObservations returns observations for a SKU ordered by period date
func (r *DemandRepository) GetObservations(sku entities.SKU) ([]entities.DemandObservation, error) {
	return r.observations[sku], nil
}

// GetAllObservations returns every SKU's observations ordered by period date
func (r *DemandRepository) GetAllObservations() (map[entities.SKU][]entities.DemandObservation, error) {
	all := make(map[entities.SKU][]entities.DemandObservation, len(r.observations))
	for sku, series := range r.observations {
		all[sku] = series
	}
	return all, nil
}
