package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRecord is one persisted scenario outcome, used by the status API
type RunRecord struct {
	ID            int64     `json:"id"`
	Scenario      string    `json:"scenario"`
	RunDate       time.Time `json:"run_date"`
	Outcome       Outcome   `json:"outcome"`
	Reason        string    `json:"reason,omitempty"`
	RawCount      int       `json:"raw_count"`
	ScoredCount   int       `json:"scored_count"`
	AcceptedCount int       `json:"accepted_count"`
	ArtifactPath  string    `json:"artifact_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Repository persists scenario run history and accepted signals
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new scenario repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RecordResult saves one scenario result and, for produced outcomes, its
// accepted signal rows. Same-day re-runs overwrite the run row for the
// (scenario, run_date) identity.
func (r *Repository) RecordResult(ctx context.Context, runDate time.Time, res Result) error {
	day := runDate.UTC().Truncate(24 * time.Hour)

	var artifactPath string
	if res.Artifact != nil {
		artifactPath = res.Artifact.Path
	}

	query := `
		INSERT INTO pipeline.scenario_runs
			(scenario, run_date, outcome, reason, raw_count, scored_count, accepted_count, artifact_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (scenario, run_date) DO UPDATE SET
			outcome = EXCLUDED.outcome,
			reason = EXCLUDED.reason,
			raw_count = EXCLUDED.raw_count,
			scored_count = EXCLUDED.scored_count,
			accepted_count = EXCLUDED.accepted_count,
			artifact_path = EXCLUDED.artifact_path,
			created_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query,
		res.Scenario, day, string(res.Outcome), res.Reason,
		res.RawCount, res.ScoredCount, res.AcceptedCount, artifactPath,
	)
	if err != nil {
		return fmt.Errorf("save scenario run: %w", err)
	}

	if res.Artifact == nil {
		return nil
	}

	// Replace the day's signals for this scenario
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM pipeline.accepted_signals WHERE scenario = $1 AND run_date = $2`,
		res.Scenario, day,
	); err != nil {
		return fmt.Errorf("clear accepted signals: %w", err)
	}

	for _, sig := range res.Artifact.Signals {
		var price *float64
		if sig.PriceAvailable {
			p := sig.EntryPrice
			price = &p
		}

		_, err := r.pool.Exec(ctx, `
			INSERT INTO pipeline.accepted_signals
				(scenario, run_date, symbol, entry_price, entry_time)
			VALUES ($1, $2, $3, $4, $5)
		`, res.Scenario, day, sig.Symbol, price, sig.EntryTime)
		if err != nil {
			return fmt.Errorf("save accepted signal %s: %w", sig.Symbol, err)
		}
	}

	return nil
}

// RecentRuns returns the latest run records, newest first
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, scenario, run_date, outcome, reason,
			raw_count, scored_count, accepted_count, artifact_path, created_at
		FROM pipeline.scenario_runs
		ORDER BY created_at DESC, scenario
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query scenario runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var outcome string
		err := rows.Scan(&rec.ID, &rec.Scenario, &rec.RunDate, &outcome, &rec.Reason,
			&rec.RawCount, &rec.ScoredCount, &rec.AcceptedCount, &rec.ArtifactPath, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan scenario run: %w", err)
		}
		rec.Outcome = Outcome(outcome)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenario runs: %w", err)
	}

	return records, nil
}

// ScenarioRuns returns the latest run records for one scenario, newest first
func (r *Repository) ScenarioRuns(ctx context.Context, name string, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, scenario, run_date, outcome, reason,
			raw_count, scored_count, accepted_count, artifact_path, created_at
		FROM pipeline.scenario_runs
		WHERE scenario = $1
		ORDER BY run_date DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, name, limit)
	if err != nil {
		return nil, fmt.Errorf("query scenario runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var outcome string
		err := rows.Scan(&rec.ID, &rec.Scenario, &rec.RunDate, &outcome, &rec.Reason,
			&rec.RawCount, &rec.ScoredCount, &rec.AcceptedCount, &rec.ArtifactPath, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan scenario run: %w", err)
		}
		rec.Outcome = Outcome(outcome)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenario runs: %w", err)
	}

	return records, nil
}
