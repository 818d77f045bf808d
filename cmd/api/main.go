package main

// @title SafeRoute Assistant API
// @version 1.0.0
// @description Диалоговый сервис оценки безопасности пешеходных маршрутов. Принимает маршрут и вопросы пользователя, анализирует криминальные инциденты, уличное освещение и инфраструктуру вдоль маршрута и формирует обоснованные ответы.
// @description
// @description Основные возможности:
// @description - Классификация запросов пользователя по типу анализа
// @description - Фильтрация инцидентов и фонарей по близости к маршруту
// @description - Временные и категориальные сводки преступности
// @description - Статистика преступности по районам (LGA)
// @description - Генерация ответов через языковую модель со структурированными блоками

// @contact.name API Support
// @contact.email support@saferoute-assistant.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/saferoute-assistant/docs"
	"github.com/saferoute-assistant/internal/config"
	httpDelivery "github.com/saferoute-assistant/internal/delivery/http"
	"github.com/saferoute-assistant/internal/delivery/http/handler"
	"github.com/saferoute-assistant/internal/infrastructure/anthropic"
	"github.com/saferoute-assistant/internal/infrastructure/mapstate"
	"github.com/saferoute-assistant/internal/infrastructure/nominatim"
	"github.com/saferoute-assistant/internal/infrastructure/overpass"
	"github.com/saferoute-assistant/internal/pkg/logger"
	"github.com/saferoute-assistant/internal/repository/cache"
	"github.com/saferoute-assistant/internal/repository/postgres"
	redisRepo "github.com/saferoute-assistant/internal/repository/redis"
	"github.com/saferoute-assistant/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting SafeRoute Assistant")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Float64("crime_threshold_m", cfg.Safety.CrimeThresholdMeters),
		zap.Float64("lamp_buffer_m", cfg.Safety.LampBufferMeters))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.Health(ctx); err != nil {
		cancel()
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		cancel()
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	cancel()
	log.Info("Health checks passed")

	// 6. Initialize repositories
	crimeRepo := postgres.NewCrimeRepository(db)
	lgaRepo := postgres.NewLGARepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	sessionRepo := cache.NewSessionRepository(redisClient, cfg.Cache.SessionTTL)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	mapRepo := mapstate.NewStore(log)
	facilityRepo := overpass.NewClient(&cfg.Overpass, log)
	geocodeRepo := nominatim.NewClient(&cfg.Geocoder, log)
	modelRepo := anthropic.NewClient(&cfg.Model, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	thresholds := usecase.SafetyThresholds{
		CrimeThresholdMeters: cfg.Safety.CrimeThresholdMeters,
		LampBufferMeters:     cfg.Safety.LampBufferMeters,
		FacilityRadiusMeters: cfg.Safety.FacilityRadiusMeters,
		WellLitPer100m:       cfg.Safety.WellLitPer100m,
	}

	lgaCtx, lgaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	lgaNames, err := lgaRepo.ListNames(lgaCtx)
	lgaCancel()
	if err != nil {
		log.Warn("Failed to load LGA names, area matching disabled", zap.Error(err))
	}
	classifier := usecase.NewClassifier(lgaNames)

	proximityUC := usecase.NewProximityUseCase(crimeRepo, mapRepo, log)
	facilityUC := usecase.NewFacilityUseCase(
		facilityRepo,
		cacheRepo,
		mapRepo,
		cfg.Cache.LampCacheTTL,
		cfg.Cache.FacilityCacheTTL,
		log,
	)
	lgaUC := usecase.NewLGAUseCase(lgaRepo, log)
	routeUC := usecase.NewRouteUseCase(sessionRepo, streamRepo, mapRepo, log)
	analysisUC := usecase.NewAnalysisUseCase(sessionRepo, proximityUC, facilityUC, thresholds, log)
	builder := usecase.NewContextBuilder(cfg.Safety.WellLitPer100m)
	chatUC := usecase.NewChatUseCase(
		sessionRepo,
		modelRepo,
		geocodeRepo,
		proximityUC,
		facilityUC,
		lgaUC,
		classifier,
		builder,
		thresholds,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	sessionHandler := handler.NewSessionHandler(routeUC, mapRepo, log)
	chatHandler := handler.NewChatHandler(chatUC, log)
	analysisHandler := handler.NewAnalysisHandler(analysisUC, thresholds, log)
	lgaHandler := handler.NewLGAHandler(lgaUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		sessionHandler,
		chatHandler,
		analysisHandler,
		lgaHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}
