package entities

import "fmt"

// PABDay is one simulated day of projected available balance
type PABDay struct {
	Beginning float64
	Receipts  float64
	Demand    float64
	Ending    float64
}

// PABTimeline is the full projected available balance trajectory for a
// SKU over the planning horizon. The simulation always covers the whole
// horizon so later recovery after a runout remains visible.
type PABTimeline struct {
	SKU   SKU
	RunID string
	Days  []PABDay
}

// Validate checks the balance identities on every simulated day:
// ending = beginning + receipts - demand, and each day's beginning
// equals the previous day's ending.
func (t *PABTimeline) Validate(onHand float64) error {
	const eps = 1e-6
	for d, day := range t.Days {
		want := day.Beginning + day.Receipts - day.Demand
		if diff := day.Ending - want; diff > eps || diff < -eps {
			return fmt.Errorf("day %d: ending %g != beginning %g + receipts %g - demand %g",
				d, day.Ending, day.Beginning, day.Receipts, day.Demand)
		}
		if d == 0 {
			if diff := day.Beginning - onHand; diff > eps || diff < -eps {
				return fmt.Errorf("day 0: beginning %g != on hand %g", day.Beginning, onHand)
			}
			continue
		}
		if diff := day.Beginning - t.Days[d-1].Ending; diff > eps || diff < -eps {
			return fmt.Errorf("day %d: beginning %g != prior ending %g", d, day.Beginning, t.Days[d-1].Ending)
		}
	}
	return nil
}

// RunoutDay returns the first day whose ending balance is negative
func (t *PABTimeline) RunoutDay() (int, bool) {
	for d, day := range t.Days {
		if day.Ending < 0 {
			return d, true
		}
	}
	return 0, false
}

// BreachDay returns the first day whose ending balance falls below the
// given safety stock level
func (t *PABTimeline) BreachDay(safetyStock float64) (int, bool) {
	for d, day := range t.Days {
		if day.Ending < safetyStock {
			return d, true
		}
	}
	return 0, false
}
