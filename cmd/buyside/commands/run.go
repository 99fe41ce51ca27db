package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/buyside/internal/batch"
	"github.com/wonny/buyside/internal/scenario"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the signal batch once",
	Long: `Runs one complete signal batch over every discovered scenario.

This command:
- Discovers scenario pairs under the configured scenarios directory
- Scores today's events per scenario and writes signal artifacts
- Uploads artifacts and sends Telegram notifications

A failing scenario never aborts the batch; its outcome is reported
and the remaining scenarios still run.

Example:
  go run ./cmd/buyside run
  go run ./cmd/buyside run --date 2024-01-03`,
	RunE: runBatch,
}

var runDate string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runDate, "date", "", "run date (YYYY-MM-DD, default today UTC)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if runDate != "" {
		parsed, err := time.Parse("2006-01-02", runDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", runDate, err)
		}
		date = parsed
	}

	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	config := batch.RunConfig{
		Date:  date,
		RunID: batch.GenerateRunID(),
	}

	result, err := p.orchestrator.Run(context.Background(), config)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	fmt.Printf("\n=== Batch %s (%s) ===\n", result.RunID, date.Format("2006-01-02"))
	for _, res := range result.Results {
		switch res.Outcome {
		case scenario.OutcomeProduced:
			fmt.Printf("  %-30s %d signals -> %s\n", res.Scenario, res.AcceptedCount, res.Artifact.Path)
		case scenario.OutcomeNoSignal:
			fmt.Printf("  %-30s no signals\n", res.Scenario)
		case scenario.OutcomeFailed:
			fmt.Printf("  %-30s FAILED: %s\n", res.Scenario, res.Reason)
		}
	}
	fmt.Printf("Completed in %s\n", result.Duration.Round(time.Millisecond))

	return nil
}
