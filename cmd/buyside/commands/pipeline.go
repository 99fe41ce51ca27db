package commands

import (
	"fmt"

	"github.com/wonny/buyside/internal/batch"
	"github.com/wonny/buyside/internal/features"
	"github.com/wonny/buyside/internal/marketdata/yahoo"
	"github.com/wonny/buyside/internal/publisher"
	"github.com/wonny/buyside/internal/scenario"
	"github.com/wonny/buyside/internal/storage"
	"github.com/wonny/buyside/pkg/config"
	"github.com/wonny/buyside/pkg/database"
	"github.com/wonny/buyside/pkg/httputil"
	"github.com/wonny/buyside/pkg/logger"
	"github.com/wonny/buyside/pkg/redis"
)

// pipeline holds the wired collaborators shared by the CLI commands
type pipeline struct {
	cfg          *config.Config
	log          *logger.Logger
	orchestrator *batch.Orchestrator
	repository   *scenario.Repository

	db  *database.DB
	rdb *redis.Client
}

// initPipeline loads configuration and wires the full signal pipeline.
// A failure here is fatal for every command; per-scenario failures at
// run time are not.
func initPipeline() (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	rdb, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	httpClient := httputil.New(log)

	marketClient := httputil.New(log).WithRateLimit(cfg.MarketData.RateLimit)
	priceProvider := yahoo.NewClient(marketClient, log, cfg.MarketData.BaseURL)

	priceCache := redis.NewCache(rdb, "prices")
	featureService := features.NewService(priceProvider, priceCache, log)

	uploader, err := storage.NewClient(httpClient, log, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}

	notifier, err := publisher.NewTelegramNotifier(httpClient, log, cfg.Telegram)
	if err != nil {
		return nil, fmt.Errorf("init telegram notifier: %w", err)
	}

	pub := publisher.New(uploader, notifier, log)
	processor := scenario.NewProcessor(featureService, pub, cfg.Pipeline.OutputDir, log)

	p := &pipeline{
		cfg: cfg,
		log: log,
		rdb: rdb,
	}

	var recorder batch.ResultRecorder = batch.NopRecorder{}
	if cfg.Database.Enabled {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		p.db = db
		p.repository = scenario.NewRepository(db.Pool)
		recorder = p.repository
	}

	p.orchestrator = batch.NewOrchestrator(processor, pub, recorder, cfg.Pipeline.ScenariosDir, log)

	return p, nil
}

// Close releases the pipeline's connections
func (p *pipeline) Close() {
	if p.db != nil {
		p.db.Close()
	}
	if p.rdb != nil {
		p.rdb.Close()
	}
}
