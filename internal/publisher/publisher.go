package publisher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/wonny/buyside/internal/scenario"
	"github.com/wonny/buyside/pkg/logger"
)

// Notifier delivers human-readable notifications. Document sends carry the
// artifact as an attachment; message sends are plain text.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
	SendDocument(ctx context.Context, path, caption string) error
}

// Uploader stores artifact files durably by object name
type Uploader interface {
	UploadFile(ctx context.Context, path, objectName string) error
}

// Publisher owns the side effects of a produced artifact: durable upload
// plus notification. Upload and notify are independent; neither failure
// rolls back the other, and neither is retried here.
type Publisher struct {
	uploader Uploader
	notifier Notifier
	logger   *logger.Logger
}

// New creates a new publisher
func New(uploader Uploader, notifier Notifier, log *logger.Logger) *Publisher {
	return &Publisher{
		uploader: uploader,
		notifier: notifier,
		logger:   log,
	}
}

// PublishSignals uploads the artifact and sends it as a document with a
// per-signal caption
func (p *Publisher) PublishSignals(ctx context.Context, artifact *scenario.Artifact) error {
	log := p.logger.WithField("scenario", artifact.Scenario)

	objectName := filepath.Base(artifact.Path)
	if err := p.uploader.UploadFile(ctx, artifact.Path, objectName); err != nil {
		log.WithError(err).Error("Artifact upload failed")
		// Keep going: the notification does not depend on the upload
	}

	caption := BuildCaption(artifact)
	if err := p.notifier.SendDocument(ctx, artifact.Path, caption); err != nil {
		log.WithError(err).Error("Signal notification failed")
		return fmt.Errorf("send signals document: %w", err)
	}

	return nil
}

// PublishNoSignal sends the plain "none today" message for one scenario
func (p *Publisher) PublishNoSignal(ctx context.Context, scenarioName string) error {
	text := fmt.Sprintf("✅ No BUY signals for %s today.", scenarioName)
	if err := p.notifier.SendMessage(ctx, text); err != nil {
		p.logger.WithField("scenario", scenarioName).WithError(err).Error("No-signal notification failed")
		return fmt.Errorf("send no-signal message: %w", err)
	}
	return nil
}

// PublishBatchEmpty sends the single aggregate message for a batch where no
// scenario produced a signal
func (p *Publisher) PublishBatchEmpty(ctx context.Context) error {
	if err := p.notifier.SendMessage(ctx, "✅ No BUY signals in any scenario today."); err != nil {
		p.logger.WithError(err).Error("Aggregate notification failed")
		return fmt.Errorf("send aggregate message: %w", err)
	}
	return nil
}

// BuildCaption renders the document caption: a dated header plus one bullet
// per accepted signal. Unavailable prices render the explicit marker.
func BuildCaption(artifact *scenario.Artifact) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🟢 Scenario: %s | BUY Signals %s GMT:\n",
		artifact.Scenario, formatCaptionDate(artifact.RunDate))

	for _, sig := range artifact.Signals {
		fmt.Fprintf(&b, "• BUY %s | Entry Price: 🟢%s | %s\n",
			sig.Symbol,
			scenario.FormatEntryPrice(sig.EntryPrice, sig.PriceAvailable),
			scenario.FormatEntryTime(sig.EntryTime))
	}

	return b.String()
}

func formatCaptionDate(t time.Time) string {
	return t.UTC().Format("02/01/06")
}
