package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/buyside/internal/scenario"
	"github.com/wonny/buyside/pkg/logger"
)

type fakeNotifier struct {
	messages  []string
	documents []string
	captions  []string
	err       error
}

func (f *fakeNotifier) SendMessage(ctx context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeNotifier) SendDocument(ctx context.Context, path, caption string) error {
	if f.err != nil {
		return f.err
	}
	f.documents = append(f.documents, path)
	f.captions = append(f.captions, caption)
	return nil
}

type fakeUploader struct {
	objects []string
	err     error
}

func (f *fakeUploader) UploadFile(ctx context.Context, path, objectName string) error {
	if f.err != nil {
		return f.err
	}
	f.objects = append(f.objects, objectName)
	return nil
}

func testArtifact() *scenario.Artifact {
	return &scenario.Artifact{
		Scenario: "alpha",
		RunDate:  time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
		Path:     "daily_signals/alpha/alpha_signals_2024-01-03.csv",
		Signals: []scenario.AcceptedSignal{
			{Symbol: "AAPL", EntryPrice: 185.5, PriceAvailable: true,
				EntryTime: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
			{Symbol: "MSFT", PriceAvailable: false,
				EntryTime: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestPublishSignals(t *testing.T) {
	notifier := &fakeNotifier{}
	uploader := &fakeUploader{}
	pub := New(uploader, notifier, logger.NewNop())

	err := pub.PublishSignals(context.Background(), testArtifact())
	require.NoError(t, err)

	require.Len(t, uploader.objects, 1)
	assert.Equal(t, "alpha_signals_2024-01-03.csv", uploader.objects[0])

	// Signals go out as a document with a caption, never as plain text
	require.Len(t, notifier.documents, 1)
	assert.Empty(t, notifier.messages)
	assert.Contains(t, notifier.captions[0], "• BUY AAPL | Entry Price: 🟢185.50 | 03/01/24 00:00")
}

func TestPublishSignalsUploadFailureStillNotifies(t *testing.T) {
	notifier := &fakeNotifier{}
	uploader := &fakeUploader{err: errors.New("storage down")}
	pub := New(uploader, notifier, logger.NewNop())

	err := pub.PublishSignals(context.Background(), testArtifact())
	require.NoError(t, err)
	assert.Len(t, notifier.documents, 1)
}

func TestPublishNoSignal(t *testing.T) {
	notifier := &fakeNotifier{}
	pub := New(&fakeUploader{}, notifier, logger.NewNop())

	require.NoError(t, pub.PublishNoSignal(context.Background(), "alpha"))

	// Plain text, no attachment, no upload
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "✅ No BUY signals for alpha today.", notifier.messages[0])
	assert.Empty(t, notifier.documents)
}

func TestPublishBatchEmpty(t *testing.T) {
	notifier := &fakeNotifier{}
	pub := New(&fakeUploader{}, notifier, logger.NewNop())

	require.NoError(t, pub.PublishBatchEmpty(context.Background()))
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "✅ No BUY signals in any scenario today.", notifier.messages[0])
}

func TestBuildCaption(t *testing.T) {
	caption := BuildCaption(testArtifact())

	assert.Contains(t, caption, "🟢 Scenario: alpha | BUY Signals 03/01/24 GMT:")
	assert.Contains(t, caption, "• BUY AAPL | Entry Price: 🟢185.50 | 03/01/24 00:00")
	// Unavailable price renders an explicit marker, never a silent zero
	assert.Contains(t, caption, "• BUY MSFT | Entry Price: 🟢N/A | 05/01/24 00:00")
}
