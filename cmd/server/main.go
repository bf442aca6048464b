package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lusdt-bridge.backend/internal/config"
	"lusdt-bridge.backend/internal/domain/entities"
	domainrepos "lusdt-bridge.backend/internal/domain/repositories"
	"lusdt-bridge.backend/internal/infrastructure/blockchain"
	"lusdt-bridge.backend/internal/infrastructure/jobs"
	"lusdt-bridge.backend/internal/infrastructure/repositories"
	"lusdt-bridge.backend/internal/infrastructure/volume"
	"lusdt-bridge.backend/internal/interfaces/http/handlers"
	"lusdt-bridge.backend/internal/interfaces/http/middleware"
	"lusdt-bridge.backend/internal/usecases"
	"lusdt-bridge.backend/pkg/jwt"
	"lusdt-bridge.backend/pkg/logger"
	"lusdt-bridge.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories and the volume accumulator
	txRepo := repositories.NewBridgeTransactionRepository(db)
	feeConfigRepo := repositories.NewFeeConfigRepository(db)
	monthlyVolume := volume.NewMonthlyVolume()

	// Chain clients, one per settlement network
	clientFactory := blockchain.NewClientFactory()
	solanaClient, err := blockchain.NewRPCChainClient(entities.NetworkSolana, cfg.Bridge.SolanaRPC)
	if err != nil {
		return fmt.Errorf("failed to dial solana bridge node: %w", err)
	}
	clientFactory.Register(entities.NetworkSolana, solanaClient)
	lunesClient, err := blockchain.NewRPCChainClient(entities.NetworkLunes, cfg.Bridge.LunesRPC)
	if err != nil {
		return fmt.Errorf("failed to dial lunes bridge node: %w", err)
	}
	clientFactory.Register(entities.NetworkLunes, lunesClient)

	coordinator := blockchain.NewCoordinatorClient(cfg.Bridge.CoordinatorURL)

	// Usecases
	guard := usecases.NewGuard()
	feeUsecase := usecases.NewFeeUsecase(feeConfigRepo, monthlyVolume, guard)
	bridgeUsecase := usecases.NewBridgeUsecase(
		txRepo, monthlyVolume, feeUsecase, guard,
		clientFactory, coordinator, coordinator, coordinator,
		cfg.Bridge.VaultAddress, cfg.Bridge.BridgeAccount,
	)

	// Background tracking
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracker := jobs.NewTransactionTracker(bridgeUsecase, txRepo, coordinator,
		cfg.Bridge.PollInterval, cfg.Bridge.ObservationWindow)
	resumeTracking(ctx, txRepo, tracker)

	// Handlers
	bridgeHandler := handlers.NewBridgeHandler(bridgeUsecase, tracker, tracker)
	feeHandler := handlers.NewFeeHandler(feeUsecase)
	adminHandler := handlers.NewAdminHandler(feeUsecase, guard)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		bridgeHandler:  bridgeHandler,
		feeHandler:     feeHandler,
		adminHandler:   adminHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
		tracker.StopAll()
		cancel()
	}()

	logger.Info(ctx, "server starting", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}

// resumeTracking restarts poll loops for transactions that were still in
// flight when the process last stopped.
func resumeTracking(ctx context.Context, txRepo domainrepos.BridgeTransactionRepository, tracker *jobs.TransactionTracker) {
	const pageSize = 200
	for offset := 0; ; offset += pageSize {
		page, total, err := txRepo.List(ctx, "", pageSize, offset)
		if err != nil {
			logger.Warn(ctx, "could not resume transaction tracking", zap.Error(err))
			return
		}
		for _, tx := range page {
			if !tx.Status.Terminal() {
				tracker.StartTracking(ctx, tx.ID, nil)
			}
		}
		if offset+len(page) >= total || len(page) == 0 {
			return
		}
	}
}
