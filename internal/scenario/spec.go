package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Input file naming convention: each scenario pairs an events file with a
// pre-trained model artifact in the same directory.
const (
	EventsSuffix = "_history_events.csv"
	ModelSuffix  = "_model.pkl"
)

// Spec identifies one unit of work: a scenario name plus the paths to its
// raw event source and its model artifact. Transient, one per batch pass.
type Spec struct {
	Name       string
	EventsPath string
	ModelPath  string
}

// HasModel reports whether the paired model artifact exists on disk
func (s Spec) HasModel() bool {
	info, err := os.Stat(s.ModelPath)
	return err == nil && !info.IsDir()
}

// Discover scans dir for files matching the events naming convention and
// returns one Spec per candidate, sorted lexicographically by scenario name
// so batch runs are reproducible.
func Discover(dir string) ([]Spec, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+EventsSuffix))
	if err != nil {
		return nil, fmt.Errorf("scan scenarios dir %s: %w", dir, err)
	}

	specs := make([]Spec, 0, len(matches))
	for _, eventsPath := range matches {
		name := strings.TrimSuffix(filepath.Base(eventsPath), EventsSuffix)
		if name == "" {
			continue
		}

		specs = append(specs, Spec{
			Name:       name,
			EventsPath: eventsPath,
			ModelPath:  filepath.Join(dir, name+ModelSuffix),
		})
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })

	return specs, nil
}
