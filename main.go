package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"smart_parking_booking/internal/api"
	"smart_parking_booking/internal/api/handler"
	"smart_parking_booking/internal/api/middleware"
	"smart_parking_booking/internal/config"
	"smart_parking_booking/internal/events"
	"smart_parking_booking/internal/metrics"
	"smart_parking_booking/internal/repository/sqlstore"
	"smart_parking_booking/internal/service"
	"strings"
	"syscall"
	"time"

	awsgo_config "github.com/aws/aws-sdk-go-v2/config" // Alias để tránh trùng tên
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func newLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "json" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}

func main() {
	// 1. Load Configuration
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	log.Logger = logger
	logger.Info().Str("driver", cfg.DBDriver).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database Connection
	db, err := sqlstore.NewDB(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open database")
	}
	defer db.Close()
	store := sqlstore.NewStore(db)

	// 3. Seed dữ liệu mẫu nếu bảng slots còn trống
	if _, err := service.NewSeeder(store, &logger).Seed(ctx); err != nil {
		logger.Fatal().Err(err).Msg("seeding sample data failed")
	}

	if cfg.MetricsEnabled {
		metrics.Register()
	}

	// 4. Slot event sinks
	webSocketManager := handler.NewWebSocketManager(&logger)
	hubCtx, cancelHub := context.WithCancel(context.Background())
	go webSocketManager.Start(hubCtx)

	publisher := events.NewFanout().Add("websocket", webSocketManager)
	if cfg.SQSBookingQueueURL == "" {
		logger.Info().Msg("SQS_BOOKING_QUEUE_URL not set, booking events stay local")
	} else {
		awsSDKCfg, err := awsgo_config.LoadDefaultConfig(ctx, awsgo_config.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot load AWS SDK config")
		}
		publisher.Add("sqs", events.NewSQSPublisher(sqs.NewFromConfig(awsSDKCfg), cfg.SQSBookingQueueURL))
		logger.Info().Str("region", cfg.AWSRegion).Str("queue", cfg.SQSBookingQueueURL).Msg("SQS booking events enabled")
	}

	// 5. Initialize Services
	bookingService := service.NewBookingService(store, publisher, &logger)
	parkingService := service.NewParkingService(store, &logger)

	var (
		authService    *service.AuthService
		authMiddleware *middleware.AuthMiddleware
	)
	if cfg.AuthEnabled() {
		authService = service.NewAuthService(store.Repos().Users, cfg.JWTSecret, cfg.JWTExpirationHours, &logger)
		if err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			logger.Fatal().Err(err).Msg("cannot prepare admin account")
		}
		authMiddleware = middleware.NewAuthMiddleware(authService, &logger)
	} else {
		logger.Warn().Msg("JWT_SECRET not set, operator endpoints are open")
	}

	// 6. Setup HTTP Router
	router := api.SetupRouter(&logger, bookingService, parkingService, authService, authMiddleware, webSocketManager, cfg.MetricsEnabled)

	// 7. Start HTTP Server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.ServerPort).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shut down")
	}
	cancelHub()

	logger.Info().Msg("server stopped")
}
