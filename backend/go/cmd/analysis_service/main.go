package main

import (
	"VaultMind/backend/go/internal/analysis/api"
	"VaultMind/backend/go/internal/analysis/cache"
	"VaultMind/backend/go/internal/analysis/pipeline"
	"VaultMind/backend/go/internal/analysis/service"
	"VaultMind/backend/go/internal/analysis/splitters"
	"VaultMind/backend/go/internal/analysis/storages/catalog"
	"VaultMind/backend/go/internal/analysis/storages/vectorstore"
	"VaultMind/backend/go/internal/config"
	"VaultMind/backend/go/internal/database/mysql"
	"VaultMind/backend/go/internal/database/postgres"
	"VaultMind/backend/go/internal/database/redis"
	"VaultMind/backend/go/internal/embedding"
	"VaultMind/backend/go/internal/llm"
	"VaultMind/backend/go/pkg/circuitbreaker"
	"VaultMind/backend/go/pkg/logger"
	"VaultMind/backend/go/pkg/ratelimiter"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	serviceLogger := logger.New("AnalysisService", "")

	// Connect to the datastores using the singleton getters
	pgDB, err := postgres.GetDB(&cfg.Databases.Postgres)
	if err != nil {
		serviceLogger.WithError(err).Fatal("Failed to connect to Postgres")
	}
	serviceLogger.Info("Successfully connected to Postgres")

	mysqlDB, err := mysql.GetDB(&cfg.Databases.MySQL)
	if err != nil {
		serviceLogger.WithError(err).Fatal("Failed to connect to MySQL")
	}
	serviceLogger.Info("Successfully connected to MySQL")

	redisClient, err := redis.GetClient(&cfg.Databases.Redis)
	if err != nil {
		serviceLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	serviceLogger.Info("Successfully connected to Redis")

	// Model providers
	modelTimeout := time.Duration(cfg.Analysis.ModelTimeout) * time.Second
	baseLLM, err := llm.NewClient(cfg.LLM, modelTimeout)
	if err != nil {
		serviceLogger.WithError(err).Fatal("Failed to create LLM client")
	}
	llmClient := llm.NewBreakerClient(baseLLM, circuitbreaker.New(5, 2, 30*time.Second))
	embedder, err := embedding.NewModel(cfg.Embedding)
	if err != nil {
		serviceLogger.WithError(err).Fatal("Failed to create embedding model")
	}
	cacheTTL := time.Duration(cfg.Analysis.EmbeddingCacheTTL) * time.Second
	cachedEmbedder := cache.NewEmbeddingCache(embedder, redisClient, cacheTTL, serviceLogger)

	// Storage components
	store, err := vectorstore.NewPostgresStore(pgDB, cfg.Databases.Postgres.Table, serviceLogger)
	if err != nil {
		serviceLogger.WithError(err).Fatal("Failed to create knowledge store")
	}
	promptCatalog, err := catalog.NewMySQLCatalog(mysqlDB)
	if err != nil {
		serviceLogger.WithError(err).Fatal("Failed to create prompt catalog")
	}

	// Pipelines
	splitter, err := splitters.NewParagraphSplitter(cfg.Analysis.ChunkSize, cfg.Analysis.ChunkOverlap, serviceLogger)
	if err != nil {
		serviceLogger.WithError(err).Fatal("Failed to create splitter")
	}
	retrieval := pipeline.NewRetrievalPipeline(cachedEmbedder, store, serviceLogger)
	indexing := pipeline.NewIndexingPipeline(splitter, cachedEmbedder, store, serviceLogger)
	qa := pipeline.NewQAPipeline(retrieval, promptCatalog, llmClient, cfg.Analysis.TopK, serviceLogger)
	orchestrator := pipeline.NewOrchestrator(retrieval, promptCatalog, llmClient, cfg.Analysis.MaxParallelCalls, cfg.Analysis.TopK, serviceLogger)

	analysisService := service.NewAnalysisService(indexing, qa, orchestrator, serviceLogger)

	// Setup HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	apiHandler := api.NewAPI(analysisService, serviceLogger)
	limiter := ratelimiter.NewTokenBucket(cfg.Server.RatePerSecond, cfg.Server.Burst)
	api.RegisterRoutes(router, apiHandler, limiter)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	// Start server
	go func() {
		serviceLogger.Info("Starting HTTP server on " + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serviceLogger.WithError(err).Fatal("HTTP server failed to start")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	serviceLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		serviceLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	if err := redis.Close(); err != nil {
		serviceLogger.WithError(err).Error("Error closing Redis connection")
	}
	if err := mysql.Close(); err != nil {
		serviceLogger.WithError(err).Error("Error closing MySQL connection")
	}
	if err := postgres.Close(); err != nil {
		serviceLogger.WithError(err).Error("Error closing Postgres connection")
	}

	serviceLogger.Info("Server gracefully stopped")
}
