package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/buyside/internal/api"
	"github.com/wonny/buyside/internal/api/handlers"
	"github.com/wonny/buyside/internal/scenario"
	"github.com/wonny/buyside/pkg/config"
	"github.com/wonny/buyside/pkg/database"
	"github.com/wonny/buyside/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the status API server",
	Long: `Starts the REST API server exposing batch run history.

Endpoints:
  GET  /health               - Health check
  GET  /api/runs             - Recent runs across all scenarios
  GET  /api/runs/{scenario}  - Run history for one scenario

Example:
  go run ./cmd/buyside api
  go run ./cmd/buyside api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	if !cfg.Database.Enabled {
		return fmt.Errorf("status API requires a database (set DB_ENABLED=true)")
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	repo := scenario.NewRepository(db.Pool)
	runsHandler := handlers.NewRunsHandler(repo, log)
	router := api.NewRouter(runsHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
