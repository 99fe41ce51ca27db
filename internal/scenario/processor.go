package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/buyside/internal/model"
	"github.com/wonny/buyside/pkg/logger"
)

// FeatureSource computes per-event features. Implementations are total:
// data gaps and lookup failures degrade to defaults instead of erroring.
type FeatureSource interface {
	PctReturn(ctx context.Context, symbol string, ts time.Time) float64
	EntryPrice(ctx context.Context, symbol string, ts time.Time) (float64, bool)
}

// SignalPublisher receives produced artifacts for upload and notification
type SignalPublisher interface {
	PublishSignals(ctx context.Context, artifact *Artifact) error
}

// Processor runs the per-scenario pipeline: load events, compute features,
// classify, enrich accepted rows with entry prices, persist and publish.
type Processor struct {
	features  FeatureSource
	publisher SignalPublisher
	loadModel func(path string) (model.Classifier, error)
	outputDir string
	logger    *logger.Logger
	now       func() time.Time
}

// NewProcessor creates a new scenario processor
func NewProcessor(features FeatureSource, publisher SignalPublisher, outputDir string, log *logger.Logger) *Processor {
	return &Processor{
		features:  features,
		publisher: publisher,
		loadModel: model.Load,
		outputDir: outputDir,
		logger:    log,
		now:       time.Now,
	}
}

// Process runs one scenario to a tagged Result. Per-row failures degrade in
// place; only a missing/corrupt model artifact or broken input file yields
// OutcomeFailed.
func (p *Processor) Process(ctx context.Context, spec Spec) Result {
	log := p.logger.WithField("scenario", spec.Name)

	result := Result{Scenario: spec.Name}

	events, err := LoadEvents(spec.EventsPath)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Reason = fmt.Sprintf("load events: %v", err)
		return result
	}
	result.RawCount = len(events)

	clf, err := p.loadModel(spec.ModelPath)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Reason = fmt.Sprintf("load model: %v", err)
		return result
	}

	// Rows with unparsable dates stay in RawCount but are excluded from
	// scoring. Input order is preserved.
	scored := make([]RawEvent, 0, len(events))
	features := make([]float64, 0, len(events))
	for _, event := range events {
		if !event.Valid {
			continue
		}
		scored = append(scored, event)
		features = append(features, p.features.PctReturn(ctx, event.Symbol, event.Timestamp))
	}
	result.ScoredCount = len(scored)

	// Single batched call per scenario, positionally aligned
	labels, err := clf.Classify(features)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Reason = fmt.Sprintf("classify: %v", err)
		return result
	}
	if len(labels) != len(scored) {
		result.Outcome = OutcomeFailed
		result.Reason = fmt.Sprintf("classify: got %d labels for %d rows", len(labels), len(scored))
		return result
	}

	accepted := make([]RawEvent, 0, len(scored))
	for i, label := range labels {
		if label == 1 {
			accepted = append(accepted, scored[i])
		}
	}
	result.AcceptedCount = len(accepted)

	if len(accepted) == 0 {
		// No price lookups, no artifact, no upload for an empty set
		log.WithFields(map[string]interface{}{
			"raw_rows":    result.RawCount,
			"scored_rows": result.ScoredCount,
		}).Info("No BUY signals for scenario")
		result.Outcome = OutcomeNoSignal
		return result
	}

	// Entry prices are fetched individually; each failure degrades only
	// that row's price to the unavailable marker
	signals := make([]AcceptedSignal, 0, len(accepted))
	for _, event := range accepted {
		price, ok := p.features.EntryPrice(ctx, event.Symbol, event.Timestamp)
		if !ok {
			log.WithField("symbol", event.Symbol).Warn("Entry price unavailable")
		}
		signals = append(signals, AcceptedSignal{
			Symbol:         event.Symbol,
			EntryPrice:     price,
			PriceAvailable: ok,
			EntryTime:      event.Timestamp,
		})
	}

	runDate := p.now().UTC()
	artifact := &Artifact{
		Scenario: spec.Name,
		RunDate:  runDate,
		Path:     ArtifactPath(p.outputDir, spec.Name, runDate),
		Signals:  signals,
	}

	if err := WriteArtifact(artifact); err != nil {
		result.Outcome = OutcomeFailed
		result.Reason = fmt.Sprintf("persist artifact: %v", err)
		return result
	}

	// Upload/notify failures are logged, not retried, and do not demote the
	// outcome: the artifact exists and the signals were classified
	if err := p.publisher.PublishSignals(ctx, artifact); err != nil {
		log.WithError(err).Error("Publish failed")
	}

	log.WithFields(map[string]interface{}{
		"accepted": len(signals),
		"artifact": artifact.Path,
	}).Info("Scenario produced BUY signals")

	result.Outcome = OutcomeProduced
	result.Artifact = artifact
	return result
}
