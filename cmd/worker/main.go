package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/config"
	"github.com/saferoute-assistant/internal/infrastructure/mapstate"
	"github.com/saferoute-assistant/internal/infrastructure/overpass"
	"github.com/saferoute-assistant/internal/pkg/logger"
	"github.com/saferoute-assistant/internal/repository/cache"
	"github.com/saferoute-assistant/internal/repository/postgres"
	redisRepo "github.com/saferoute-assistant/internal/repository/redis"
	"github.com/saferoute-assistant/internal/usecase"
	"github.com/saferoute-assistant/internal/worker"
	"github.com/saferoute-assistant/internal/worker/analysis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Route Analysis Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
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

	// 5. Initialize repositories
	crimeRepo := postgres.NewCrimeRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	sessionRepo := cache.NewSessionRepository(redisClient, cfg.Cache.SessionTTL)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	mapRepo := mapstate.NewStore(log)
	facilityRepo := overpass.NewClient(&cfg.Overpass, log)

	// 6. Initialize use cases
	thresholds := usecase.SafetyThresholds{
		CrimeThresholdMeters: cfg.Safety.CrimeThresholdMeters,
		LampBufferMeters:     cfg.Safety.LampBufferMeters,
		FacilityRadiusMeters: cfg.Safety.FacilityRadiusMeters,
		WellLitPer100m:       cfg.Safety.WellLitPer100m,
	}

	proximityUC := usecase.NewProximityUseCase(crimeRepo, mapRepo, log)
	facilityUC := usecase.NewFacilityUseCase(
		facilityRepo,
		cacheRepo,
		mapRepo,
		cfg.Cache.LampCacheTTL,
		cfg.Cache.FacilityCacheTTL,
		log,
	)
	analysisUC := usecase.NewAnalysisUseCase(sessionRepo, proximityUC, facilityUC, thresholds, log)

	// 7. Initialize workers
	routeWorker := analysis.NewRouteAnalysisWorker(
		streamRepo,
		analysisUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	// 8. Create worker manager and register workers
	manager := worker.NewManager(log)
	manager.Register(routeWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := manager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker stopped")
}
