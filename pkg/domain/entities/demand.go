package entities

import "time"

// DemandObservation represents one closed demand period for a SKU.
// Observations are append-only and immutable once a period closes.
type DemandObservation struct {
	SKU        SKU
	PeriodDate time.Time
	Quantity   Quantity
}

// NewDemandObservation creates a validated DemandObservation
func NewDemandObservation(sku SKU, periodDate time.Time, quantity Quantity) (*DemandObservation, error) {
	if string(sku) == "" {
		return nil, &InvalidDemandDataError{SKU: sku, Reason: "sku cannot be empty"}
	}
	if periodDate.IsZero() {
		return nil, &InvalidDemandDataError{SKU: sku, Reason: "period date cannot be zero"}
	}
	if quantity < 0 {
		return nil, &InvalidDemandDataError{SKU: sku, Reason: "quantity cannot be negative"}
	}

	return &DemandObservation{
		SKU:        sku,
		PeriodDate: periodDate,
		Quantity:   quantity,
	}, nil
}

// DailySeries buckets observations into a contiguous zero-filled daily
// series covering [start, end). Observations outside the range are ignored.
func DailySeries(observations []DemandObservation, start, end time.Time) []float64 {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return nil
	}

	series := make([]float64, days)
	for _, obs := range observations {
		day := int(obs.PeriodDate.Sub(start).Hours() / 24)
		if day < 0 || day >= days {
			continue
		}
		series[day] += float64(obs.Quantity)
	}
	return series
}
