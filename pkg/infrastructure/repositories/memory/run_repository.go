package memory

import (
	"sync"

	"planforge/pkg/application/dto"
)

// RunRepository holds the currently published planning run. Publication
// swaps the whole result under a write lock so readers never observe a
// half-finished run; failed or aborted runs are simply never published.
type RunRepository struct {
	mu      sync.RWMutex
	current *dto.RunResult
}

// NewRunRepository creates a new in-memory run repository
func NewRunRepository() *RunRepository {
	return &RunRepository{}
}

// Publish atomically replaces the published result
func (r *RunRepository) Publish(result *dto.RunResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = result
}

// Current returns the published result, if any
func (r *RunRepository) Current() (*dto.RunResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil, false
	}
	return r.current, true
}
