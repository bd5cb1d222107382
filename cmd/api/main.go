package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wishbox/wishbox/internal/adapter"
	"github.com/wishbox/wishbox/internal/api/server"
	"github.com/wishbox/wishbox/internal/bridge"
	"github.com/wishbox/wishbox/internal/config"
	"github.com/wishbox/wishbox/internal/funding"
	"github.com/wishbox/wishbox/internal/fx"
	"github.com/wishbox/wishbox/internal/logger"
	"github.com/wishbox/wishbox/internal/providers/jetstream"
	"github.com/wishbox/wishbox/internal/ratelimit"
	"github.com/wishbox/wishbox/internal/reservation"
	"github.com/wishbox/wishbox/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Wishbox API")

	// Connect to database. TranslateError lets the store detect unique
	// violations portably.
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	if err := store.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
		logger.FatalCtx(ctx, "Failed to run migrations", zap.Error(err))
	}

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	natsJS := adapter.NewNatsJetStream()

	// Origin distinguishes this process's events from siblings' on the
	// broadcast stream.
	origin := ulid.Make().String()

	// Local fan-out hub plus the broker publisher behind it
	hub := bridge.NewHub(jsonAdapter)

	natsPublisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName + "-publisher",
		PublishTimeout: cfg.NATS.PublishTimeout,
	}, natsJS, jsonAdapter, origin)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err))
	}
	defer natsPublisher.Close()
	publisher := bridge.NewFanoutPublisher(hub, natsPublisher)

	// Bridge consumes events sibling processes publish
	eventBridge, err := bridge.NewBridge(bridge.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		ConsumerName:   cfg.NATS.ConsumerName + "-" + origin,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName + "-bridge",
		AckWaitTimeout: cfg.NATS.AckWait,
		MaxDeliver:     cfg.NATS.MaxDeliver,
	}, natsJS, hub, jsonAdapter, origin)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event bridge", zap.Error(err))
	}
	defer eventBridge.Close()

	// Exchange-rate converter
	httpClient := adapter.NewHTTPClient(cfg.FX.HTTPTimeout)
	converter := fx.NewService(cfg.FX.ProviderURL, cfg.FX.CacheTTL, cfg.FX.FallbackTTL, httpClient, clock)

	// Rate limiter shares budgets across processes when Redis is configured
	var limiter ratelimit.Limiter
	if cfg.RateLimit.RedisAddr != "" {
		redisClient := adapter.NewRedisClient(cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB)
		limiter = ratelimit.NewLimiter(redisClient, clock)
	} else {
		logger.WarnCtx(ctx, "Redis not configured, rate limits enforced per process")
		limiter = ratelimit.NewLocalLimiter(clock)
	}
	defer func() {
		if err := limiter.Close(); err != nil {
			logger.Error(err, zap.String("message", "Failed to close rate limiter"))
		}
	}()

	// Managers
	reservationMgr := reservation.NewManager(dataStore, publisher, clock)
	fundingMgr := funding.NewManager(dataStore, converter, publisher, clock)

	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
	}

	srv := server.New(serverConfig, dataStore, reservationMgr, fundingMgr, hub, limiter)

	errCh := make(chan error, 2)
	go func() {
		if err := eventBridge.Run(ctx); err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("event bridge: %w", err)
		}
	}()
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- fmt.Errorf("server: %w", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "runtime"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
