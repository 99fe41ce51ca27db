package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/buyside/internal/batch"
	"github.com/wonny/buyside/pkg/logger"
)

// BatchRunner runs one complete signal batch
type BatchRunner interface {
	Run(ctx context.Context, config batch.RunConfig) (*batch.RunResult, error)
}

// DailySignalsJob runs the signal batch on a daily schedule
type DailySignalsJob struct {
	runner   BatchRunner
	schedule string
	logger   *logger.Logger
}

// NewDailySignalsJob creates the daily signals job
func NewDailySignalsJob(runner BatchRunner, schedule string, log *logger.Logger) *DailySignalsJob {
	return &DailySignalsJob{
		runner:   runner,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *DailySignalsJob) Name() string {
	return "daily_signals"
}

// Schedule returns the cron schedule expression
func (j *DailySignalsJob) Schedule() string {
	return j.schedule
}

// Run executes one batch pass for today's date
func (j *DailySignalsJob) Run(ctx context.Context) error {
	config := batch.RunConfig{
		Date:  time.Now().UTC().Truncate(24 * time.Hour),
		RunID: batch.GenerateRunID(),
	}

	result, err := j.runner.Run(ctx, config)
	if err != nil {
		return fmt.Errorf("signal batch failed: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":      result.RunID,
		"scenarios":   len(result.Results),
		"any_signals": result.AnySignals,
	}).Info("Daily signal batch finished")

	return nil
}
