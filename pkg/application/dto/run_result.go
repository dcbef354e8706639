package dto

import (
	"time"

	"planforge/pkg/domain/entities"
)

// RunStatus represents the lifecycle state of a planning run
type RunStatus int

const (
	RunRunning RunStatus = iota
	RunCommitted
	RunFailed
	RunAborted
)

// String method for RunStatus enum
func (s RunStatus) String() string {
	switch s {
	case RunRunning:
		return "running"
	case RunCommitted:
		return "committed"
	case RunFailed:
		return "failed"
	case RunAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// RunSummary tallies per-item outcomes of a planning run
type RunSummary struct {
	SKUsProcessed int      `json:"skus_processed"`
	SKUsSkipped   int      `json:"skus_skipped"`
	SKUsDegraded  int      `json:"skus_degraded"`
	Errors        []string `json:"errors"`
}

// RunResult contains the complete run-scoped output of one planning run.
// Results are published atomically on commit; a failed or aborted run
// leaves the previously published result untouched.
type RunResult struct {
	RunID           string                                     `json:"run_id"`
	Status          RunStatus                                  `json:"status"`
	StartedAt       time.Time                                  `json:"started_at"`
	CompletedAt     time.Time                                  `json:"completed_at"`
	RunDate         time.Time                                  `json:"run_date"`
	HorizonDays     int                                        `json:"horizon_days"`
	Classifications map[entities.SKU]entities.Classification   `json:"classifications"`
	Forecasts       map[entities.SKU]*entities.Forecast        `json:"forecasts"`
	SafetyStocks    map[entities.SKU]*entities.SafetyStock     `json:"safety_stocks"`
	Timelines       map[entities.SKU]*entities.PABTimeline     `json:"timelines"`
	Risks           []*entities.Risk                           `json:"risks"`
	EffectiveLead   map[entities.SKU]int                       `json:"effective_lead_days"`
	Summary         RunSummary                                 `json:"summary"`
}

// SurfacedRisks returns the non-suppressed risks in detector order
func (r *RunResult) SurfacedRisks() []*entities.Risk {
	var surfaced []*entities.Risk
	for _, risk := range r.Risks {
		if !risk.Suppressed {
			surfaced = append(surfaced, risk)
		}
	}
	return surfaced
}
