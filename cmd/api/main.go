package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/m-goikhman/chicago-formula-web/internal/auth"
	"github.com/m-goikhman/chicago-formula-web/internal/config"
	"github.com/m-goikhman/chicago-formula-web/internal/dialogue"
	"github.com/m-goikhman/chicago-formula-web/internal/director"
	"github.com/m-goikhman/chicago-formula-web/internal/handlers"
	"github.com/m-goikhman/chicago-formula-web/internal/logger"
	"github.com/m-goikhman/chicago-formula-web/internal/middleware"
	"github.com/m-goikhman/chicago-formula-web/internal/progress"
	"github.com/m-goikhman/chicago-formula-web/internal/services"
	"github.com/m-goikhman/chicago-formula-web/internal/session"
	"github.com/m-goikhman/chicago-formula-web/internal/tutor"
	"github.com/m-goikhman/chicago-formula-web/pkg/character"
	"github.com/m-goikhman/chicago-formula-web/pkg/prompts"
)

func main() {
	// Load .env for local development; production uses real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Chicago Formula API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"model_name", cfg.ModelName)

	if cfg.GroqAPIKey == "" {
		log.Error("GROQ_API_KEY is required")
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	storage, err := services.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to configure storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := storage.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	llmService := services.NewGroqService(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.ModelName, log)
	content := services.NewFSContentStore(cfg.DataDir, log)
	registry := character.Default()
	assembler := prompts.NewAssembler(content, registry, log)

	cache := services.NewRedisCache(storage.GetClient(), log)
	progressStore := progress.NewRedisStore(storage.GetClient(), log)

	dialogueClient := dialogue.NewClient(llmService, cfg.DialogueTimeout, log)
	matcher := director.NewStrictMatcher(registry)
	d := director.New(llmService, assembler, matcher, registry, log)

	t := tutor.New(llmService, assembler, log)
	analyzer := tutor.NewAnalyzer(t, progressStore, log)

	manager := session.NewManager(storage, dialogueClient, assembler, d, content, registry, progressStore, analyzer, cache, log)
	explainer := session.NewExplainer(t, manager)

	authService := auth.NewService(cfg.JWTSecret, cfg.SessionTTL)

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(storage, llmService, log))
	mux.Handle("/api/auth/login", handlers.NewLoginHandler(authService, log))

	gameHandler := handlers.NewGameHandler(manager, log)
	authed := http.NewServeMux()
	authed.HandleFunc("/api/game/start", gameHandler.Start)
	authed.HandleFunc("/api/game/action", gameHandler.Action)
	authed.HandleFunc("/api/game/message", gameHandler.Message)
	authed.Handle("/api/game/explain", handlers.NewExplainHandler(explainer, log))
	mux.Handle("/api/game/", middleware.Auth(authed, authService, log))

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.Logger(mux, log),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
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
		log.Error("Server shutdown failed", "error", err)
	}

	// Drain background analysis before closing connections.
	analyzer.Stop()

	if err := storage.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server stopped")
}
