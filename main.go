package main

import (
	"context"
	"log"

	"agentmgr/adapters/kv"
	"agentmgr/adapters/llm"
	"agentmgr/adapters/stats/engine"
	"agentmgr/adapters/storage"
	"agentmgr/internal"
	"agentmgr/internal/config"
	"agentmgr/internal/errors"
	"agentmgr/internal/pipeline"
	"agentmgr/internal/synthesis"
	"agentmgr/ports"
	"agentmgr/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initStore picks the key-value backend: Postgres when DATABASE_URL is set,
// otherwise the in-memory store.
func initStore(cfg *config.Config, logger *internal.Logger) (ports.KVStore, func(), error) {
	if cfg.Database.URL == "" {
		logger.Info("no DATABASE_URL configured, using in-memory store")
		return kv.NewMemoryStore(), func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to database")
	}

	store := kv.NewPostgresStore(db)
	if err := store.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "database migration failed")
	}

	logger.Info("using Postgres store")
	return store, func() { db.Close() }, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.DefaultLogger
	gin.SetMode(cfg.Server.GinMode)

	store, closeStore, err := initStore(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer closeStore()

	agents := storage.NewAgentRepository(store)
	sources := storage.NewSourceRepository(store)
	reports := storage.NewReportRepository(store)

	eng := engine.NewEngine(cfg.Analysis.ClassifierConfig())
	synthesizer := synthesis.New(eng, synthesis.Config{
		ChartRowLimit:    cfg.Analysis.ChartRowLimit,
		PieCategoryLimit: cfg.Analysis.PieCategoryLimit,
		CorrelationMin:   cfg.Analysis.CorrelationMin,
	})

	// AI generation is optional; the synthesizer always serves as fallback
	var generator ports.ReportGenerator = synthesizer
	if cfg.AI.Enabled() {
		client := llm.NewClient(llm.Options{
			APIKey:      cfg.AI.APIKey,
			BaseURL:     cfg.AI.BaseURL,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
			Timeout:     cfg.AI.Timeout,
		})
		generator = llm.NewGenerator(client, synthesizer)
		logger.Info("AI report generation enabled (model %s)", cfg.AI.Model)
	}

	executor := pipeline.NewExecutor(eng, generator, agents, sources, reports, logger)

	// Ops sub-app on its own port
	ops := ui.NewOpsApp(store, logger)
	go func() {
		if err := ops.Start(cfg.Server.OpsPort); err != nil {
			logger.Error("ops server stopped: %v", err)
		}
	}()

	server := ui.NewServer(agents, sources, reports, executor, eng, logger)
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("API server stopped: %v", err)
	}
}
