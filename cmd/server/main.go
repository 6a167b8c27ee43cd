package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DKSALL9/StayFlow/internal/adapter/httpapi"
	natsclient "github.com/DKSALL9/StayFlow/internal/adapter/messaging/nats"
	"github.com/DKSALL9/StayFlow/internal/adapter/storage/s3"
	"github.com/DKSALL9/StayFlow/internal/adapter/store/memorystore"
	"github.com/DKSALL9/StayFlow/internal/adapter/store/redisstore"
	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/catalog/usecase"
	"github.com/DKSALL9/StayFlow/internal/config"
	"github.com/DKSALL9/StayFlow/internal/mailer"
	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"github.com/DKSALL9/StayFlow/internal/platform/metrics"
	"github.com/DKSALL9/StayFlow/internal/platform/tracer"
	"github.com/DKSALL9/StayFlow/internal/session"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; environment variables may come from elsewhere.
	_ = godotenv.Load()

	appLogger := logger.NewLogger()
	defer func() {
		_ = appLogger.Sync()
	}()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTELExporterEndpoint, appLogger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Failed to shut down tracer provider", zap.Error(err))
		}
	}()

	var store domain.Store
	switch cfg.StoreBackend {
	case "redis":
		redisStore, err := redisstore.New(ctx, redisstore.Config{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis store", zap.String("address", cfg.RedisAddress), zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				appLogger.Error("Failed to close Redis store", zap.Error(err))
			}
		}()
		store = redisStore
		appLogger.Info("Using Redis store backend", zap.String("address", cfg.RedisAddress))
	default:
		store = memorystore.New()
		appLogger.Info("Using in-memory store backend")
	}

	var publisher usecase.MessagePublisher = usecase.NoopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := natsclient.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Warn("Failed to connect to NATS, continuing without event publishing", zap.Error(err))
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	var mediaStorage usecase.MediaStorage
	if cfg.MinIOEndpoint != "" {
		s3Storage, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
		if err != nil {
			appLogger.Warn("Failed to initialize media storage, keeping media inline", zap.Error(err))
		} else {
			mediaStorage = s3Storage
		}
	}

	var reservationMailer mailer.Mailer
	if cfg.SMTPHost != "" {
		reservationMailer = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
		appLogger.Info("Reservation email notifications enabled", zap.String("smtp_host", cfg.SMTPHost))
	}

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	if cfg.PrometheusMetricsPort != "" {
		go func() {
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	sessionManager := session.NewManager(ctx, store, cfg.JWTSecret, appLogger)

	catalogUC := usecase.NewCatalogUsecase(store, publisher, appLogger)
	mediaUC := usecase.NewMediaUsecase(mediaStorage, appLogger)
	reservationUC := usecase.NewReservationUsecase(store, catalogUC, publisher, reservationMailer, appLogger)
	favoriteUC := usecase.NewFavoriteUsecase(store, catalogUC, sessionManager, appLogger)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Sessions:     httpapi.NewSessionHandler(sessionManager, metricsManager),
		Catalog:      httpapi.NewCatalogHandler(catalogUC, mediaUC, sessionManager, metricsManager),
		Reservations: httpapi.NewReservationHandler(reservationUC, sessionManager, metricsManager),
		Favorites:    httpapi.NewFavoriteHandler(favoriteUC, sessionManager, metricsManager),
		SessionMgr:   sessionManager,
		Metrics:      metricsManager,
		Logger:       appLogger,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		appLogger.Info("HTTP server starting", zap.String("port", cfg.HTTPPort))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	case <-ctx.Done():
		appLogger.Info("Shutdown signal received, stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Graceful shutdown failed, forcing close", zap.Error(err))
			if err := server.Close(); err != nil {
				appLogger.Error("Forced close failed", zap.Error(err))
			}
		}
	}

	appLogger.Info("Service stopped.")
}
