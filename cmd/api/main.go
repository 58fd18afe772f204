package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"digitalstore/internal/client"
	"digitalstore/internal/config"
	"digitalstore/internal/jobs"
	"digitalstore/internal/payment"
	"digitalstore/internal/repository"
	"digitalstore/internal/server"
	"digitalstore/internal/service"
	"digitalstore/internal/storage"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := client.InitDBClient(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	store, err := storage.NewS3Store(&cfg.Storage, storage.WithLogger(logger))
	if err != nil {
		logger.Fatal("object store init failed", zap.Error(err))
	}

	paypalClient := client.NewPaypalClient(&cfg.Paypal)
	providers := payment.NewRegistry(
		payment.NewStripeProvider(&cfg.Stripe),
		payment.NewPaypalProvider(paypalClient, cfg.BaseURL),
	)

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	contactRepo := repository.NewContactRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	catalogService := service.NewCatalogService(productRepo)
	authService := service.NewAuthService(userRepo, logger)
	downloadService := service.NewDownloadService(orderRepo, productRepo, userRepo, store, logger)
	checkoutService := service.NewCheckoutService(db, productRepo, orderRepo, userRepo, webhookEventRepo, providers, logger)
	feedbackService := service.NewFeedbackService(reviewRepo, contactRepo, productRepo)

	srv := server.NewServer(catalogService, downloadService, authService, checkoutService, feedbackService)

	jobCtx, jobCancel := context.WithCancel(context.Background())
	pruner := jobs.NewTokenPruner(userRepo, cfg.Jobs.TokenPruneInterval, logger)
	go pruner.Run(jobCtx)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	jobCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	var zapCfg zap.Config
	if cfg.Environment.Name == "development" && cfg.Log.Format != "json" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
