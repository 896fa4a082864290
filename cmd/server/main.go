package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-admission/internal/adapters/http/middleware"
	"user-admission/internal/adapters/http/routes"
	"user-admission/internal/adapters/persistence/models"
	"user-admission/internal/adapters/persistence/repositories"
	"user-admission/internal/config"
	"user-admission/internal/core/services"
	"user-admission/internal/pkg/logger"
	"user-admission/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title User Admission API
// @version 1.0
// @description Registers new users for client accounts after validation, age and credit checks

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.AppMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Connect to database
	db, err := config.ConnectDatabase(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = config.CloseDatabase(db) }()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		zlog.Fatal("failed to auto migrate", zap.Error(err))
	}
	zlog.Info("database migration completed")

	// Seed demo clients and credit records (dev only)
	if cfg.IsDev() {
		seeder := config.NewSeeder(
			repositories.NewClientRepository(db),
			repositories.NewCreditRecordRepository(db),
			zlog,
		)
		if err := seeder.Run(context.Background()); err != nil {
			zlog.Warn("failed to seed demo data", zap.Error(err))
		}
	}

	// Credit cache (optional)
	var rdb *redis.Client
	if cfg.CacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err = config.ConnectRedis(ctx, cfg.Redis)
		cancel()
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		defer func() { _ = rdb.Close() }()
		zlog.Info("credit cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.CreditTTL))
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Admission report
	cronService := services.NewCronService(repositories.NewUserRepository(db), m, cfg.Report.Schedule, zlog)
	if err := cronService.Start(); err != nil {
		zlog.Fatal("invalid admission report schedule", zap.Error(err), zap.String("schedule", cfg.Report.Schedule))
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "User Admission API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, routes.Dependencies{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Logger:   zlog,
		Metrics:  m,
		Gatherer: reg,
	})

	// Graceful shutdown
	go gracefulShutdown(app, zlog)

	// Start server
	zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, zlog *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
	zlog.Info("server stopped gracefully")
}
