package scenario

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Output artifact format
const (
	entryTimeFormat = "02/01/06 15:04" // DD/MM/YY HH:MM, UTC
	runDateFormat   = "2006-01-02"

	// PriceUnavailable marks rows whose entry price lookup failed
	PriceUnavailable = "N/A"
)

// ArtifactPath returns the canonical output path for a scenario run:
// <base>/<name>/<name>_signals_<YYYY-MM-DD>.csv. Deterministic per
// (scenario, UTC run date) so same-day re-runs overwrite the same file.
func ArtifactPath(base, name string, runDate time.Time) string {
	fileName := fmt.Sprintf("%s_signals_%s.csv", name, runDate.UTC().Format(runDateFormat))
	return filepath.Join(base, name, fileName)
}

// FormatEntryTime renders an entry timestamp for the artifact and captions
func FormatEntryTime(ts time.Time) string {
	return ts.UTC().Format(entryTimeFormat)
}

// FormatEntryPrice renders an entry price, or the unavailable marker
func FormatEntryPrice(price float64, available bool) string {
	if !available {
		return PriceUnavailable
	}
	return strconv.FormatFloat(price, 'f', 2, 64)
}

// WriteArtifact persists the artifact CSV to artifact.Path, creating parent
// directories as needed
func WriteArtifact(artifact *Artifact) error {
	if err := os.MkdirAll(filepath.Dir(artifact.Path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	f, err := os.Create(artifact.Path)
	if err != nil {
		return fmt.Errorf("create artifact file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"symbol", "entry_price", "entry_time"}); err != nil {
		return fmt.Errorf("write artifact header: %w", err)
	}

	for _, sig := range artifact.Signals {
		row := []string{
			sig.Symbol,
			FormatEntryPrice(sig.EntryPrice, sig.PriceAvailable),
			FormatEntryTime(sig.EntryTime),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write artifact row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush artifact: %w", err)
	}

	return nil
}
