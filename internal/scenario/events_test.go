package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvents(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alpha_history_events.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEvents(t *testing.T) {
	path := writeEvents(t, "Date,Ticker\n2024-01-03,AAPL\n2024-01-05,MSFT\n")

	events, err := LoadEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "AAPL", events[0].Symbol)
	assert.True(t, events[0].Valid)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), events[0].Timestamp)

	assert.Equal(t, "MSFT", events[1].Symbol)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), events[1].Timestamp)
}

func TestLoadEventsUnparsableDateRetained(t *testing.T) {
	path := writeEvents(t, "Date,Ticker\nnot-a-date,XYZ\n2024-01-03,AAPL\n")

	events, err := LoadEvents(path)
	require.NoError(t, err)

	// Row count invariant: the bad row stays in the set, flagged invalid
	require.Len(t, events, 2)
	assert.Equal(t, "XYZ", events[0].Symbol)
	assert.False(t, events[0].Valid)
	assert.True(t, events[0].Timestamp.IsZero())
	assert.True(t, events[1].Valid)
}

func TestLoadEventsHeaderOnly(t *testing.T) {
	path := writeEvents(t, "Date,Ticker\n")

	events, err := LoadEvents(path)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLoadEventsMissingFile(t *testing.T) {
	_, err := LoadEvents(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
