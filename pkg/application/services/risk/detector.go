// Package risk classifies projected balance trajectories into risk
// records and renders their human-readable statements.
package risk

import (
	"sort"
	"time"

	"planforge/pkg/domain/entities"
)

// Item carries one SKU's simulated state into detection. Counterfactual
// is the timeline re-simulated without overdue unconfirmed receipts; it
// is nil when the item has none.
type Item struct {
	SKU                entities.SKU
	RunID              string
	RunDate            time.Time
	Timeline           *entities.PABTimeline
	Counterfactual     *entities.PABTimeline
	SafetyStock        float64
	HasSafetyStock     bool
	IsComponent        bool
	AffectedAssemblies []entities.SKU
	OverdueReferences  []string
	EffectiveLeadDays  int
}

// Detect classifies the item's trajectory. Every applicable risk is
// returned; only the top-ranked one is left unsuppressed. Ordering is
// severity rank ascending, then trigger day ascending.
func Detect(item Item) ([]*entities.Risk, error) {
	var risks []*entities.Risk

	runoutDay, hasRunout := item.Timeline.RunoutDay()
	breachDay, hasBreach := 0, false
	if item.HasSafetyStock {
		breachDay, hasBreach = item.Timeline.BreachDay(item.SafetyStock)
	}

	if hasRunout {
		risk, err := newRisk(item, entities.RiskStockout, runoutDay, item.Timeline)
		if err != nil {
			return nil, err
		}
		risks = append(risks, risk)
	}

	if hasBreach && !hasRunout {
		risk, err := newRisk(item, entities.RiskSSBreach, breachDay, item.Timeline)
		if err != nil {
			return nil, err
		}
		risks = append(risks, risk)
	}

	if item.IsComponent && (hasRunout || hasBreach) {
		triggerDay := breachDay
		if hasRunout && (!hasBreach || runoutDay < breachDay) {
			triggerDay = runoutDay
		}
		risk, err := newRisk(item, entities.RiskComponentShort, triggerDay, item.Timeline)
		if err != nil {
			return nil, err
		}
		risk.AffectedAssemblies = item.AffectedAssemblies
		risks = append(risks, risk)
	}

	if late, triggerDay := lateReceiptExposure(item); late {
		risk, err := newRisk(item, entities.RiskPOLate, triggerDay, item.Counterfactual)
		if err != nil {
			return nil, err
		}
		risks = append(risks, risk)
	}

	sort.Slice(risks, func(i, j int) bool {
		if risks[i].SeverityRank != risks[j].SeverityRank {
			return risks[i].SeverityRank < risks[j].SeverityRank
		}
		return risks[i].TriggerDay < risks[j].TriggerDay
	})
	for i := range risks {
		risks[i].Suppressed = i > 0
	}

	return risks, nil
}

// lateReceiptExposure reports whether the item's health depends on
// overdue unconfirmed receipts: it does when the counterfactual
// trajectory without them runs out or breaches safety stock.
func lateReceiptExposure(item Item) (bool, int) {
	if len(item.OverdueReferences) == 0 || item.Counterfactual == nil {
		return false, 0
	}
	if day, ok := item.Counterfactual.RunoutDay(); ok {
		return true, day
	}
	if item.HasSafetyStock {
		if day, ok := item.Counterfactual.BreachDay(item.SafetyStock); ok {
			return true, day
		}
	}
	return false, 0
}

func newRisk(item Item, riskType entities.RiskType, triggerDay int, timeline *entities.PABTimeline) (*entities.Risk, error) {
	risk, err := entities.NewRisk(item.SKU, item.RunID, riskType, triggerDay, item.RunDate.AddDate(0, 0, triggerDay))
	if err != nil {
		return nil, err
	}
	risk.RiskStatement = formatRiskStatement(risk, item)
	risk.ActionStatement = formatActionStatement(risk, item, timeline)
	return risk, nil
}
