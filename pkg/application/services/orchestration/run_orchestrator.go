// Package orchestration drives the three-phase planning run over a
// snapshot of the input repositories and publishes results atomically.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"planforge/pkg/application/dto"
	"planforge/pkg/application/services/classification"
	"planforge/pkg/application/services/explosion"
	"planforge/pkg/application/services/forecasting"
	"planforge/pkg/application/services/leadtime"
	"planforge/pkg/application/services/pab"
	"planforge/pkg/application/services/risk"
	"planforge/pkg/application/services/safetystock"
	"planforge/pkg/application/services/translation"
	"planforge/pkg/domain/entities"
	"planforge/pkg/domain/repositories"
)

// RunStore publishes committed run results atomically. A reader either
// sees the previous fully-committed run or the new one, never a mix.
type RunStore interface {
	Publish(result *dto.RunResult)
	Current() (*dto.RunResult, bool)
}

// Config holds the run-level parameters plus each stage's configuration
type Config struct {
	HistoryDays int           // demand history window fed to forecasting
	Workers     int           // parallel workers per phase
	Timeout     time.Duration // whole-run budget; expiry aborts the run

	Classification classification.Config
	Forecasting    forecasting.Config
	SafetyStock    safetystock.Config
	LeadTime       leadtime.Config
}

// DefaultConfig returns the standard run parameters
func DefaultConfig() Config {
	return Config{
		HistoryDays:    365,
		Workers:        8,
		Timeout:        10 * time.Minute,
		Classification: classification.DefaultConfig(),
		Forecasting:    forecasting.DefaultConfig(),
		SafetyStock:    safetystock.DefaultConfig(),
		LeadTime:       leadtime.DefaultConfig(),
	}
}

// Orchestrator coordinates a full planning run: classification, then
// phase 1 (forecast + safety stock per item), a barrier, phase 2
// (dependent demand translation across finished goods), a barrier, and
// phase 3 (balance simulation + risk detection per item).
type Orchestrator struct {
	config Config
	logger zerolog.Logger

	itemRepo   repositories.ItemRepository
	demandRepo repositories.DemandRepository
	bomRepo    repositories.BOMRepository
	supplyRepo repositories.SupplyRepository
	store      RunStore

	classifier *classification.Classifier
	forecaster *forecasting.Forecaster
	calculator *safetystock.Calculator
	learner    *leadtime.Learner
	translator *translation.Translator
}

// NewOrchestrator wires the orchestrator over its repositories and store
func NewOrchestrator(
	config Config,
	itemRepo repositories.ItemRepository,
	demandRepo repositories.DemandRepository,
	bomRepo repositories.BOMRepository,
	supplyRepo repositories.SupplyRepository,
	store RunStore,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		config:     config,
		logger:     logger,
		itemRepo:   itemRepo,
		demandRepo: demandRepo,
		bomRepo:    bomRepo,
		supplyRepo: supplyRepo,
		store:      store,
		classifier: classification.NewClassifier(config.Classification),
		forecaster: forecasting.NewForecaster(config.Forecasting),
		calculator: safetystock.NewCalculator(config.SafetyStock),
		learner:    leadtime.NewLearner(config.LeadTime),
		translator: translation.NewTranslator(explosion.NewEngine(bomRepo)),
	}
}

// snapshot is the run-start view of every input source. Phases read
// only from here, so no item ever observes a partially-updated dataset.
type snapshot struct {
	items        []*entities.Item
	observations map[entities.SKU][]entities.DemandObservation
	overrides    []entities.ClassificationOverride
	positions    map[entities.SKU]*entities.SupplyPosition
	roots        []entities.SKU
}

// Run executes one full planning run as of runDate. On success the
// result is committed and published; cancellation, timeout, or loss of
// a required input source leaves the previously published run in place.
func (o *Orchestrator) Run(ctx context.Context, runDate time.Time) (*dto.RunResult, error) {
	runID := uuid.NewString()
	logger := o.logger.With().Str("run_id", runID).Logger()
	runsStarted.Inc()
	started := time.Now()

	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	snap, err := o.takeSnapshot()
	if err != nil {
		runsFailed.Inc()
		logger.Error().Err(err).Msg("run failed: input source unavailable")
		return nil, err
	}
	logger.Info().
		Int("items", len(snap.items)).
		Int("finished_goods", len(snap.roots)).
		Time("run_date", runDate).
		Msg("planning run started")

	result := &dto.RunResult{
		RunID:           runID,
		Status:          dto.RunRunning,
		StartedAt:       started,
		RunDate:         runDate,
		HorizonDays:     o.config.Forecasting.HorizonDays,
		Classifications: make(map[entities.SKU]entities.Classification),
		Forecasts:       make(map[entities.SKU]*entities.Forecast),
		SafetyStocks:    make(map[entities.SKU]*entities.SafetyStock),
		Timelines:       make(map[entities.SKU]*entities.PABTimeline),
		EffectiveLead:   make(map[entities.SKU]int),
	}

	// Classification ranks dollar usage across the whole item set, so it
	// runs serially before the per-item fan-out.
	result.Classifications = o.classifier.Classify(snap.items, snap.observations, snap.overrides, runDate)

	if err := o.phaseForecast(ctx, snap, result); err != nil {
		return o.abort(result, logger, err)
	}
	logger.Info().
		Int("processed", result.Summary.SKUsProcessed).
		Int("skipped", result.Summary.SKUsSkipped).
		Msg("forecast phase complete")

	plan, err := o.phaseTranslate(ctx, snap, result)
	if err != nil {
		return o.abort(result, logger, err)
	}

	if err := o.phaseSimulate(ctx, snap, result, runDate, plan); err != nil {
		return o.abort(result, logger, err)
	}

	sort.Slice(result.Risks, func(i, j int) bool {
		a, b := result.Risks[i], result.Risks[j]
		if a.SeverityRank != b.SeverityRank {
			return a.SeverityRank < b.SeverityRank
		}
		if a.TriggerDay != b.TriggerDay {
			return a.TriggerDay < b.TriggerDay
		}
		return a.SKU < b.SKU
	})
	for _, r := range result.Risks {
		risksDetected.WithLabelValues(r.Type.String()).Inc()
	}

	result.Status = dto.RunCommitted
	result.CompletedAt = time.Now()
	o.store.Publish(result)
	runsCommitted.Inc()
	runDuration.Observe(time.Since(started).Seconds())
	logger.Info().
		Int("risks", len(result.Risks)).
		Int("surfaced", len(result.SurfacedRisks())).
		Dur("elapsed", time.Since(started)).
		Msg("planning run committed")
	return result, nil
}

// takeSnapshot loads every input source once. Loss of any required
// source is fatal to the run.
func (o *Orchestrator) takeSnapshot() (*snapshot, error) {
	items, err := o.itemRepo.GetAllItems()
	if err != nil {
		return nil, fmt.Errorf("item source unavailable: %w", err)
	}
	observations, err := o.demandRepo.GetAllObservations()
	if err != nil {
		return nil, fmt.Errorf("demand source unavailable: %w", err)
	}
	overrides, err := o.itemRepo.GetOverrides()
	if err != nil {
		return nil, fmt.Errorf("item source unavailable: %w", err)
	}
	positionList, err := o.supplyRepo.GetAllPositions()
	if err != nil {
		return nil, fmt.Errorf("supply source unavailable: %w", err)
	}
	roots, err := o.bomRepo.Roots()
	if err != nil {
		return nil, fmt.Errorf("bom source unavailable: %w", err)
	}

	positions := make(map[entities.SKU]*entities.SupplyPosition, len(positionList))
	for _, pos := range positionList {
		positions[pos.SKU] = pos
	}
	return &snapshot{
		items:        items,
		observations: observations,
		overrides:    overrides,
		positions:    positions,
		roots:        roots,
	}, nil
}

// phaseForecast runs forecasting, lead time learning, and safety stock
// sizing in parallel across items
func (o *Orchestrator) phaseForecast(ctx context.Context, snap *snapshot, result *dto.RunResult) error {
	previous, hasPrevious := o.store.Current()
	historyStart := result.RunDate.AddDate(0, 0, -o.config.HistoryDays)
	var mu sync.Mutex

	return o.forEachItem(ctx, snap.items, func(item *entities.Item) {
		cls := result.Classifications[item.SKU]
		history := entities.DailySeries(snap.observations[item.SKU], historyStart, result.RunDate)

		var previousMAPE *float64
		if hasPrevious {
			if prior := previous.Forecasts[item.SKU]; prior != nil && prior.Accuracy != nil {
				previousMAPE = prior.Accuracy.MAPE
			}
		}

		forecast, err := o.forecaster.Forecast(forecasting.Input{
			SKU:             item.SKU,
			RunID:           result.RunID,
			History:         history,
			ObservedPeriods: cls.ObservedPeriods,
			Classification:  cls,
			Override:        item.MethodOverride,
			PreviousMAPE:    previousMAPE,
		})

		deliveries, derr := o.supplyRepo.GetDeliveries(item.SKU)
		effectiveLead := o.learner.EffectiveLeadDays(deliveries, item.LeadTimeDays)

		mu.Lock()
		defer mu.Unlock()
		result.EffectiveLead[item.SKU] = effectiveLead
		if derr != nil {
			result.Summary.Errors = append(result.Summary.Errors,
				fmt.Sprintf("%s: delivery history unavailable: %v", item.SKU, derr))
		}
		if err != nil {
			result.Summary.SKUsSkipped++
			var insufficient *entities.InsufficientHistoryError
			if !errors.As(err, &insufficient) {
				result.Summary.Errors = append(result.Summary.Errors, fmt.Sprintf("%s: %v", item.SKU, err))
			}
			return
		}

		result.Forecasts[item.SKU] = forecast
		result.Summary.SKUsProcessed++
		skusProcessed.Inc()
		if forecast.Degraded {
			result.Summary.SKUsDegraded++
		}

		sigma := forecast.ResidualStdDev
		if sigma == 0 {
			// Raw demand variability as fallback when the fit left
			// no residual signal.
			sigma = forecasting.StdDev(history)
		}
		if ss, ok := o.calculator.Calculate(safetystock.Input{
			SKU:               item.SKU,
			RunID:             result.RunID,
			Classification:    cls,
			SigmaDailyDemand:  sigma,
			EffectiveLeadDays: effectiveLead,
		}); ok {
			result.SafetyStocks[item.SKU] = ss
		}
	})
}

// phaseTranslate aggregates dependent demand across every finished
// good. It starts only after the forecast barrier, because a
// component's total dependent demand spans all parent forecasts.
func (o *Orchestrator) phaseTranslate(ctx context.Context, snap *snapshot, result *dto.RunResult) (*translation.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plan, warnings, err := o.translator.Translate(snap.roots, result.Forecasts, o.config.Forecasting.HorizonDays)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		result.Summary.Errors = append(result.Summary.Errors, w.Error())
	}
	return plan, nil
}

// phaseSimulate projects balances and detects risks in parallel across
// items, using the fully-aggregated dependent demand plan
func (o *Orchestrator) phaseSimulate(
	ctx context.Context,
	snap *snapshot,
	result *dto.RunResult,
	runDate time.Time,
	plan *translation.Plan,
) error {
	var mu sync.Mutex

	return o.forEachItem(ctx, snap.items, func(item *entities.Item) {
		forecast := result.Forecasts[item.SKU]
		isComponent := plan.IsComponent(item.SKU)
		if forecast == nil && !isComponent {
			return
		}

		var independent []float64
		if forecast != nil {
			independent = forecast.Predicted
		}

		input := pab.Input{
			SKU:               item.SKU,
			RunID:             result.RunID,
			RunDate:           runDate,
			HorizonDays:       o.config.Forecasting.HorizonDays,
			IndependentDemand: independent,
			DependentDemand:   plan.DependentFor(item.SKU),
			IncludeOverdue:    true,
		}

		var overdueRefs []string
		if pos := snap.positions[item.SKU]; pos != nil {
			input.OnHand = float64(pos.OnHand)
			input.OpenReceipts = pos.OpenReceipts
			for _, r := range pos.OverdueReceipts(runDate) {
				overdueRefs = append(overdueRefs, r.Reference)
			}
		}

		timeline, err := pab.Simulate(input)
		if err != nil {
			mu.Lock()
			result.Summary.Errors = append(result.Summary.Errors, fmt.Sprintf("%s: %v", item.SKU, err))
			mu.Unlock()
			return
		}

		var counterfactual *entities.PABTimeline
		if len(overdueRefs) > 0 {
			input.IncludeOverdue = false
			if cf, cerr := pab.Simulate(input); cerr == nil {
				counterfactual = cf
			}
		}

		riskItem := risk.Item{
			SKU:               item.SKU,
			RunID:             result.RunID,
			RunDate:           runDate,
			Timeline:          timeline,
			Counterfactual:    counterfactual,
			IsComponent:       isComponent,
			OverdueReferences: overdueRefs,
			EffectiveLeadDays: result.EffectiveLead[item.SKU],
		}
		if ss := result.SafetyStocks[item.SKU]; ss != nil {
			riskItem.SafetyStock = ss.Value
			riskItem.HasSafetyStock = true
		}
		if isComponent {
			riskItem.AffectedAssemblies = plan.AssembliesFor(item.SKU)
		}

		risks, err := risk.Detect(riskItem)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.Summary.Errors = append(result.Summary.Errors, fmt.Sprintf("%s: %v", item.SKU, err))
			return
		}
		result.Timelines[item.SKU] = timeline
		result.Risks = append(result.Risks, risks...)
	})
}

// forEachItem fans items out over the worker pool, stopping early on
// context cancellation
func (o *Orchestrator) forEachItem(ctx context.Context, items []*entities.Item, fn func(*entities.Item)) error {
	workers := o.config.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan *entities.Item)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				fn(item)
			}
		}()
	}

	for _, item := range items {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- item:
		}
	}
	close(jobs)
	wg.Wait()
	return ctx.Err()
}

// abort discards the run without publishing; the previously published
// result stays authoritative
func (o *Orchestrator) abort(result *dto.RunResult, logger zerolog.Logger, err error) (*dto.RunResult, error) {
	result.Status = dto.RunAborted
	result.CompletedAt = time.Now()
	runsAborted.Inc()
	logger.Warn().Err(err).Msg("planning run aborted, previous results remain published")
	return nil, err
}
