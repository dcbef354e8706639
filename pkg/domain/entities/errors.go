package entities

import (
	"fmt"
	"strings"
)

// CircularBOMError reports a SKU that reappeared as its own ancestor
// along a single explosion path. Independent branches may legitimately
// share a SKU; only the revisit along the current path is an error.
type CircularBOMError struct {
	SKU  SKU
	Path []SKU
}

func (e *CircularBOMError) Error() string {
	parts := make([]string, 0, len(e.Path)+1)
	for _, s := range e.Path {
		parts = append(parts, string(s))
	}
	parts = append(parts, string(e.SKU))
	return fmt.Sprintf("circular BOM reference at %s (path %s)", e.SKU, strings.Join(parts, " -> "))
}

// InsufficientHistoryError reports an item with too few observed periods
// to forecast. The forecast is withheld; the run continues.
type InsufficientHistoryError struct {
	SKU      SKU
	Observed int
	Required int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient demand history for %s: %d observed periods, %d required",
		e.SKU, e.Observed, e.Required)
}

// InvalidDemandDataError reports a malformed demand observation. The
// observation is skipped with a warning; the run continues.
type InvalidDemandDataError struct {
	SKU    SKU
	Reason string
}

func (e *InvalidDemandDataError) Error() string {
	return fmt.Sprintf("invalid demand data for %s: %s", e.SKU, e.Reason)
}
