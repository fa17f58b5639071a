package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/config"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/repository/redis"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/arena"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/bot"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/cleanup"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/move"
	transportHttp "github.com/AlexisMrz/Connect-4-AI-Agent/internal/transport/http"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/transport/websocket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := godotenv.Load()
	if envErr != nil {
		envErr = godotenv.Load("../.env")
	}

	cfg := config.LoadConfig()
	config.SetupLogging(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	// 1. Check the configured preset before taking traffic
	if _, err := bot.ParsePreset(cfg.EnginePreset); err != nil {
		log.Fatal().Err(err).Str("preset", cfg.EnginePreset).Msg("invalid ENGINE_PRESET")
	}

	// 2. Initialize Redis (optional decision cache)
	var cache move.DecisionCache
	redisURL := cfg.RedisURL
	if !cfg.DecisionCache {
		log.Info().Msg("DECISION_CACHE_ENABLED=false, skipping redis")
		redisURL = ""
	}
	client, err := redis.Connect(context.Background(), redisURL, cfg.RedisPassword)
	if err != nil {
		log.Warn().Err(err).Msg("running without decision cache")
	} else if client != nil {
		defer client.Close()
		cache = redis.NewDecisionCache(client, cfg.DecisionCacheTTL)
	}

	// 3. Initialize Services (Business Logic Layer)
	moveService := move.NewService(cfg.EnginePreset, cfg.EngineBudget, cfg.EngineMaxBudget, cache)
	jobs := arena.NewManager(cfg.ArenaMaxGames, cfg.ArenaJobTTL)
	connManager := websocket.NewConnectionManager()

	// 4. Initialize Background Workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	go cleanup.NewWorker(jobs, cfg.CleanupEvery).Start(workerCtx)

	// 5. Setup Gin Router
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := transportHttp.NewRouter(transportHttp.RouterDeps{
		Moves:          transportHttp.NewMoveHandler(moveService),
		Arena:          transportHttp.NewArenaHandler(jobs, cfg.ArenaWorkers),
		Stream:         websocket.NewHandler(connManager, moveService, cfg.AllowedOrigins),
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("preset", cfg.EnginePreset).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connManager.CloseAll()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	stopWorkers()
	jobs.Shutdown()

	log.Info().Msg("server exited gracefully")
}
