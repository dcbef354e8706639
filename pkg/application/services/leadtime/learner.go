// Package leadtime learns effective replenishment lead times from
// historical vendor deliveries, preferring observed arrival lag over the
// nominal vendor-quoted figure when enough history exists.
package leadtime

import "planforge/pkg/domain/entities"

// Config holds the lead time learning parameters
type Config struct {
	MinSamples int // deliveries required before trusting the observed lag
}

// DefaultConfig returns the standard learning parameters
func DefaultConfig() Config {
	return Config{MinSamples: 3}
}

// Learner derives effective lead times per SKU
type Learner struct {
	config Config
}

// NewLearner creates a learner with the given configuration
func NewLearner(config Config) *Learner {
	return &Learner{config: config}
}

// EffectiveLeadDays returns the rounded mean order-to-receipt lag when at
// least MinSamples deliveries exist, otherwise the nominal lead time.
func (l *Learner) EffectiveLeadDays(deliveries []entities.DeliveryRecord, nominalDays int) int {
	if len(deliveries) < l.config.MinSamples {
		return nominalDays
	}

	total := 0
	for _, d := range deliveries {
		total += d.LagDays()
	}
	// Round half up to whole days.
	return (total*2 + len(deliveries)) / (2 * len(deliveries))
}
