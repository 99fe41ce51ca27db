package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/buyside/internal/scenario"
	"github.com/wonny/buyside/pkg/logger"
)

// ScenarioProcessor runs one scenario to a tagged result
type ScenarioProcessor interface {
	Process(ctx context.Context, spec scenario.Spec) scenario.Result
}

// BatchPublisher sends the notifications the orchestrator owns: the
// per-scenario "none today" message and the end-of-batch aggregate
type BatchPublisher interface {
	PublishNoSignal(ctx context.Context, scenarioName string) error
	PublishBatchEmpty(ctx context.Context) error
}

// ResultRecorder persists scenario outcomes for the status API
type ResultRecorder interface {
	RecordResult(ctx context.Context, runDate time.Time, res scenario.Result) error
}

// NopRecorder discards results. Used when no database is configured.
type NopRecorder struct{}

// RecordResult implements ResultRecorder
func (NopRecorder) RecordResult(ctx context.Context, runDate time.Time, res scenario.Result) error {
	return nil
}

// RunConfig holds configuration for one batch run
type RunConfig struct {
	Date  time.Time
	RunID string
}

// RunResult holds the outcome of a complete batch run
type RunResult struct {
	RunID      string
	Date       time.Time
	Results    []scenario.Result
	AnySignals bool
	Duration   time.Duration
}

// Orchestrator coordinates the multi-scenario batch: discovery, isolated
// per-scenario processing, result aggregation and the fallback notification.
type Orchestrator struct {
	processor    ScenarioProcessor
	publisher    BatchPublisher
	recorder     ResultRecorder
	scenariosDir string
	discover     func(dir string) ([]scenario.Spec, error)
	logger       *logger.Logger
}

// NewOrchestrator creates a new batch orchestrator
func NewOrchestrator(processor ScenarioProcessor, publisher BatchPublisher, recorder ResultRecorder, scenariosDir string, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		processor:    processor,
		publisher:    publisher,
		recorder:     recorder,
		scenariosDir: scenariosDir,
		discover:     scenario.Discover,
		logger:       log,
	}
}

// Run executes one batch pass over every discovered scenario. Scenario
// failures are contained; only a broken scenario discovery aborts the run.
func (o *Orchestrator) Run(ctx context.Context, config RunConfig) (*RunResult, error) {
	startTime := time.Now()

	result := &RunResult{
		RunID:   config.RunID,
		Date:    config.Date,
		Results: make([]scenario.Result, 0),
	}

	specs, err := o.discover(o.scenariosDir)
	if err != nil {
		return result, fmt.Errorf("scenario discovery failed: %w", err)
	}

	o.logger.WithFields(map[string]interface{}{
		"run_id":    config.RunID,
		"date":      config.Date.Format("2006-01-02"),
		"scenarios": len(specs),
	}).Info("Starting batch run")

	for _, spec := range specs {
		res := o.runScenario(ctx, spec)
		result.Results = append(result.Results, res)

		if err := o.recorder.RecordResult(ctx, config.Date, res); err != nil {
			o.logger.WithField("scenario", spec.Name).WithError(err).Error("Failed to record scenario result")
		}

		if res.Outcome == scenario.OutcomeNoSignal {
			if err := o.publisher.PublishNoSignal(ctx, spec.Name); err != nil {
				o.logger.WithField("scenario", spec.Name).WithError(err).Error("No-signal notification failed")
			}
		}
	}

	// The "any signal" decision is a pure function of the collected results
	result.AnySignals = AnySignals(result.Results)

	if !result.AnySignals {
		// Fires in addition to the per-scenario messages so the recipient
		// always gets confirmation that the batch ran
		if err := o.publisher.PublishBatchEmpty(ctx); err != nil {
			o.logger.WithError(err).Error("Aggregate notification failed")
		}
	}

	result.Duration = time.Since(startTime)

	o.logger.WithFields(map[string]interface{}{
		"run_id":      config.RunID,
		"scenarios":   len(result.Results),
		"any_signals": result.AnySignals,
		"duration":    result.Duration,
	}).Info("Batch run completed")

	return result, nil
}

// runScenario processes one scenario with failure containment: a missing
// model artifact or a panic becomes a Failed result, never a batch abort.
func (o *Orchestrator) runScenario(ctx context.Context, spec scenario.Spec) (res scenario.Result) {
	log := o.logger.WithField("scenario", spec.Name)

	if !spec.HasModel() {
		log.Warn("Skipping scenario: missing model artifact")
		return scenario.Result{
			Scenario: spec.Name,
			Outcome:  scenario.OutcomeFailed,
			Reason:   fmt.Sprintf("missing model artifact %s", spec.ModelPath),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Scenario panicked: %v", r)
			res = scenario.Result{
				Scenario: spec.Name,
				Outcome:  scenario.OutcomeFailed,
				Reason:   fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	return o.processor.Process(ctx, spec)
}

// AnySignals reports whether at least one scenario produced an artifact
func AnySignals(results []scenario.Result) bool {
	for _, res := range results {
		if res.Outcome == scenario.OutcomeProduced {
			return true
		}
	}
	return false
}

// GenerateRunID returns a timestamp-based run identifier
func GenerateRunID() string {
	return fmt.Sprintf("run_%s", time.Now().UTC().Format("20060102_150405"))
}
