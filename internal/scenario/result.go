package scenario

import "time"

// Outcome tags the result of processing one scenario
type Outcome string

const (
	// OutcomeNoSignal means the accepted set was empty. A business outcome,
	// not a failure.
	OutcomeNoSignal Outcome = "no_signal"

	// OutcomeProduced means an artifact was built and handed to the publisher
	OutcomeProduced Outcome = "produced"

	// OutcomeFailed means the scenario could not be processed (e.g. missing
	// model artifact). Never aborts the batch.
	OutcomeFailed Outcome = "failed"
)

// AcceptedSignal is one BUY row of the output artifact. PriceAvailable=false
// means the entry price lookup failed; such rows render an explicit
// unavailable marker, never a silent zero.
type AcceptedSignal struct {
	Symbol         string
	EntryPrice     float64
	PriceAvailable bool
	EntryTime      time.Time
}

// Artifact is the persisted output table for one scenario on one run date.
// Identity is (scenario, run date): re-runs on the same UTC day re-target the
// same path.
type Artifact struct {
	Scenario string
	RunDate  time.Time
	Path     string
	Signals  []AcceptedSignal
}

// Result is the tagged outcome of one scenario invocation
type Result struct {
	Scenario string
	Outcome  Outcome

	// Set when Outcome == OutcomeProduced
	Artifact *Artifact

	// Set when Outcome == OutcomeFailed
	Reason string

	// Bookkeeping counters
	RawCount      int // all rows read, valid or not
	ScoredCount   int // rows with parseable dates fed to the classifier
	AcceptedCount int // rows labeled 1
}
