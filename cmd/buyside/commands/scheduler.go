package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/buyside/internal/scheduler"
	"github.com/wonny/buyside/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the batch scheduler",
	Long: `Starts the scheduler daemon or triggers a registered job.

Registered jobs:
  daily_signals - runs the full signal batch on the configured
                  cron schedule (PIPELINE_SCHEDULE, default 07:00 UTC)

Example:
  go run ./cmd/buyside scheduler start
  go run ./cmd/buyside scheduler run daily_signals`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		RunE:  startScheduler,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a registered job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func initScheduler() (*scheduler.Scheduler, *pipeline, error) {
	p, err := initPipeline()
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(p.log)

	job := jobs.NewDailySignalsJob(p.orchestrator, p.cfg.Pipeline.Schedule, p.log)
	if err := sched.AddJob(job); err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("register job: %w", err)
	}

	return sched, p, nil
}

func startScheduler(cmd *cobra.Command, args []string) error {
	sched, p, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer p.Close()

	sched.Start()

	fmt.Println("Scheduler started")
	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	sched, p, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer p.Close()

	jobName := args[0]
	if err := sched.RunJob(jobName); err != nil {
		return err
	}

	fmt.Printf("Job %s triggered\n", jobName)

	// Give the async job a chance to record its outcome before exit
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	fmt.Println("Press Ctrl+C once the job has finished")
	<-quit

	return nil
}
