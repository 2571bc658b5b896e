package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"shopmate/backend/internal/adapter"
	"shopmate/backend/internal/agent"
	"shopmate/backend/internal/catalog"
	"shopmate/backend/internal/conversation"
	"shopmate/backend/internal/graph"
	"shopmate/backend/internal/server"
	"shopmate/backend/pkg/config"
	"shopmate/backend/pkg/logger"
)

func main() {
	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting shopping assistant API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify Neo4j connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	// Initialize dependencies
	graphRepo := graph.NewRepository(driver)
	llmClient := adapter.NewLLMClient(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.GroqModel, cfg.MaxTokens)
	convLog := conversation.NewLog()
	orchestrator := agent.NewOrchestrator(graphRepo, llmClient, convLog, cfg.HistoryWindow)
	catalogClient := catalog.NewClient(cfg.SearchBaseURL)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.NewRouter(server.Deps{
		Config:       cfg,
		Orchestrator: orchestrator,
		Profiles:     graphRepo,
		Conversation: convLog,
		Catalog:      catalogClient,
		Graph:        graphRepo,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("model", cfg.GroqModel),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
