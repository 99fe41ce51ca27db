package scenario

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// eventDateFormat is the fixed date format of the first CSV column
const eventDateFormat = "2006-01-02"

// RawEvent is one input record: a calendar date paired with a ticker symbol.
// Rows whose date fails to parse are retained with Valid=false so the raw
// row count survives, but they are excluded from scoring.
type RawEvent struct {
	Symbol    string
	Timestamp time.Time // UTC, date granularity
	Valid     bool
}

// LoadEvents reads a scenario's raw events CSV. The header row is discarded.
// Unparsable dates never fail the load; they yield rows with Valid=false.
func LoadEvents(path string) ([]RawEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read events file %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// First row is the header
	events := make([]RawEvent, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}

		event := RawEvent{Symbol: record[1]}
		if ts, err := time.ParseInLocation(eventDateFormat, record[0], time.UTC); err == nil {
			event.Timestamp = ts
			event.Valid = true
		}

		events = append(events, event)
	}

	return events, nil
}
