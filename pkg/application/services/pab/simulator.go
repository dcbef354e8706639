// Package pab simulates projected available balance per item per day
// over the planning horizon.
package pab

import (
	"fmt"
	"time"

	"planforge/pkg/domain/entities"
)

// Input carries everything one SKU's simulation needs. Demand slices
// are indexed by future day: index 0 is the first day after the run
// date. Day 0 of the resulting timeline is the run date itself and
// carries no forecast demand.
type Input struct {
	SKU               entities.SKU
	RunID             string
	RunDate           time.Time
	HorizonDays       int
	OnHand            float64
	OpenReceipts      []entities.OpenReceipt
	IndependentDemand []float64
	DependentDemand   []float64

	// IncludeOverdue places overdue unconfirmed receipts at day 0.
	// The baseline simulation sets it; the late-PO counterfactual
	// clears it to see whether the item survives without them.
	IncludeOverdue bool
}

// Simulate projects the available balance for every day of the horizon.
// It never stops early at a runout, so later recovery stays visible in
// the trajectory.
func Simulate(in Input) (*entities.PABTimeline, error) {
	if string(in.SKU) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if in.RunID == "" {
		return nil, fmt.Errorf("run id cannot be empty")
	}
	if in.HorizonDays <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", in.HorizonDays)
	}

	receipts := bucketReceipts(in)

	days := make([]entities.PABDay, in.HorizonDays+1)
	balance := in.OnHand
	for d := range days {
		demand := 0.0
		if d > 0 {
			if d-1 < len(in.IndependentDemand) {
				demand += in.IndependentDemand[d-1]
			}
			if d-1 < len(in.DependentDemand) {
				demand += in.DependentDemand[d-1]
			}
		}

		days[d] = entities.PABDay{
			Beginning: balance,
			Receipts:  receipts[d],
			Demand:    demand,
			Ending:    balance + receipts[d] - demand,
		}
		balance = days[d].Ending
	}

	return &entities.PABTimeline{
		SKU:   in.SKU,
		RunID: in.RunID,
		Days:  days,
	}, nil
}

// bucketReceipts sums open receipt quantities into day offsets from the
// run date. Confirmed receipts with a past expected date land at day 0;
// unconfirmed overdue ones land there only when IncludeOverdue is set.
// Receipts beyond the horizon contribute nothing.
func bucketReceipts(in Input) []float64 {
	receipts := make([]float64, in.HorizonDays+1)
	runDay := truncateDay(in.RunDate)
	for _, r := range in.OpenReceipts {
		offset := int(truncateDay(r.ExpectedDate).Sub(runDay).Hours() / 24)
		if offset < 0 {
			if !r.Confirmed && !in.IncludeOverdue {
				continue
			}
			offset = 0
		}
		if offset > in.HorizonDays {
			continue
		}
		receipts[offset] += float64(r.Quantity)
	}
	return receipts
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
