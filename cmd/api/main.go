package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/footagents/internal/config"
	"github.com/jwebster45206/footagents/internal/handlers"
	"github.com/jwebster45206/footagents/internal/logger"
	"github.com/jwebster45206/footagents/internal/middleware"
	"github.com/jwebster45206/footagents/internal/services"
	"github.com/jwebster45206/footagents/internal/storage"
	"github.com/jwebster45206/footagents/pkg/textfilter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Football Agents API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch cfg.LLMProvider {
	case config.ProviderVenice:
		llmService = services.NewVeniceService(cfg.VeniceAPIKey, cfg.ModelName, cfg.VeniceBaseURL)
		log.Info("Using Venice LLM provider")
	case config.ProviderMock:
		llmService = services.NewMockLLMAPI()
		log.Info("Using mock LLM provider")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider,
			"supported", []string{config.ProviderVenice, config.ProviderMock})
		os.Exit(1)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, cfg.MemoryTTL, log)
	if err != nil {
		log.Error("Failed to configure storage", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, llmService, log))

	characterHandler := handlers.NewCharacterHandler(log, store)
	mux.Handle("/characters", characterHandler)
	mux.Handle("/characters/", characterHandler)

	replyFilter := textfilter.New(textfilter.Options{Censor: cfg.ContentFilter})
	mux.Handle("/chat", handlers.NewChatHandler(llmService, store, cfg.HistoryLimit, log).WithFilter(replyFilter))
	mux.Handle("/reset-memory", handlers.NewResetMemoryHandler(store, log))
	mux.Handle("/conversations/", handlers.NewConversationHandler(store, log))

	handler := middleware.Chain(mux,
		middleware.Recover(log),
		middleware.Logger(log),
		middleware.CORS(),
	)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
