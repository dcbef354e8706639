package risk

import (
	"fmt"
	"math"
	"strings"

	"planforge/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

// formatRiskStatement renders the one-sentence description of the risk
func formatRiskStatement(risk *entities.Risk, item Item) string {
	date := risk.TriggerDate.Format(dateLayout)
	switch risk.Type {
	case entities.RiskStockout:
		return fmt.Sprintf("SKU %s will stock out on %s (%d days)", risk.SKU, date, risk.TriggerDay)
	case entities.RiskSSBreach:
		return fmt.Sprintf("SKU %s will breach safety stock on %s (%d days)", risk.SKU, date, risk.TriggerDay)
	case entities.RiskComponentShort:
		return fmt.Sprintf("SKU %s will run short on %s (%d days), impacting %s",
			risk.SKU, date, risk.TriggerDay, joinSKUs(item.AffectedAssemblies))
	case entities.RiskPOLate:
		return fmt.Sprintf("SKU %s depends on overdue receipt %s and will breach on %s (%d days)",
			risk.SKU, strings.Join(item.OverdueReferences, ", "), date, risk.TriggerDay)
	default:
		return fmt.Sprintf("SKU %s has an unclassified risk on %s", risk.SKU, date)
	}
}

// formatActionStatement renders the one-sentence recommendation. The
// order-by date backs the effective lead time off the trigger date, and
// the quantity covers the projected shortfall plus the safety stock
// level, rounded up to whole units.
func formatActionStatement(risk *entities.Risk, item Item, timeline *entities.PABTimeline) string {
	ending := 0.0
	if risk.TriggerDay < len(timeline.Days) {
		ending = timeline.Days[risk.TriggerDay].Ending
	}
	quantity := int(math.Ceil(item.SafetyStock - ending))
	if quantity < 1 {
		quantity = 1
	}
	orderBy := risk.TriggerDate.AddDate(0, 0, -item.EffectiveLeadDays).Format(dateLayout)

	goal := "to prevent stockout"
	switch risk.Type {
	case entities.RiskSSBreach:
		goal = "to restore safety stock"
	case entities.RiskPOLate:
		goal = "to cover the late receipt"
	}
	return fmt.Sprintf("ACTION: Order %d units by %s %s", quantity, orderBy, goal)
}

func joinSKUs(skus []entities.SKU) string {
	if len(skus) == 0 {
		return "no known assemblies"
	}
	parts := make([]string, len(skus))
	for i, sku := range skus {
		parts[i] = string(sku)
	}
	return strings.Join(parts, ", ")
}
