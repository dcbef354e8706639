package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"planforge/pkg/application/dto"
	"planforge/pkg/domain/entities"
)

// renderJSON writes the complete run result as indented JSON
func renderJSON(w io.Writer, result *dto.RunResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// renderText writes a human-readable run report: summary counts,
// classification distribution, and the surfaced risks with their
// statements.
func renderText(w io.Writer, result *dto.RunResult) error {
	fmt.Fprintf(w, "Planning Run %s (%s)\n", result.RunID, result.Status)
	fmt.Fprintf(w, "Run date: %s, horizon: %d days\n\n",
		result.RunDate.Format("2006-01-02"), result.HorizonDays)

	fmt.Fprintf(w, "Items: %d processed, %d skipped, %d degraded\n",
		result.Summary.SKUsProcessed, result.Summary.SKUsSkipped, result.Summary.SKUsDegraded)

	bands := make(map[string]int)
	for _, cls := range result.Classifications {
		if cls.InsufficientData {
			bands["insufficient"]++
			continue
		}
		bands[cls.ABC.String()+cls.XYZ.String()]++
	}
	var keys []string
	for k := range bands {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprint(w, "Classification:")
	for _, k := range keys {
		fmt.Fprintf(w, " %s=%d", k, bands[k])
	}
	fmt.Fprintln(w)

	surfaced := result.SurfacedRisks()
	fmt.Fprintf(w, "\nRisks: %d surfaced (%d total)\n", len(surfaced), len(result.Risks))
	for _, risk := range surfaced {
		fmt.Fprintf(w, "  [%s] %s\n", risk.Type, risk.RiskStatement)
		fmt.Fprintf(w, "         %s\n", risk.ActionStatement)
		if len(risk.AffectedAssemblies) > 0 {
			fmt.Fprintf(w, "         affects: %s\n", joinSKUs(risk.AffectedAssemblies))
		}
	}

	if len(result.Summary.Errors) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(result.Summary.Errors))
		for _, msg := range result.Summary.Errors {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
	return nil
}

func joinSKUs(skus []entities.SKU) string {
	out := ""
	for i, sku := range skus {
		if i > 0 {
			out += ", "
		}
		out += string(sku)
	}
	return out
}
