package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wishbox/wishbox/internal/api/middleware"
	"github.com/wishbox/wishbox/internal/api/rest"
	"github.com/wishbox/wishbox/internal/api/ws"
	"github.com/wishbox/wishbox/internal/bridge"
	"github.com/wishbox/wishbox/internal/funding"
	"github.com/wishbox/wishbox/internal/logger"
	"github.com/wishbox/wishbox/internal/ratelimit"
	"github.com/wishbox/wishbox/internal/reservation"
	"github.com/wishbox/wishbox/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	JWTSecret      string
}

// Server wraps the HTTP server
type Server struct {
	config       Config
	store        store.Store
	reservations reservation.Manager
	funding      funding.Manager
	hub          *bridge.Hub
	limiter      ratelimit.Limiter
	httpServer   *http.Server
}

// New creates a new API server
func New(
	cfg Config,
	st store.Store,
	reservations reservation.Manager,
	fundingMgr funding.Manager,
	hub *bridge.Hub,
	limiter ratelimit.Limiter,
) *Server {
	return &Server{
		config:       cfg,
		store:        st,
		reservations: reservations,
		funding:      fundingMgr,
		hub:          hub,
		limiter:      limiter,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.AllowedOrigins))

	authCfg := middleware.AuthConfig{JWTSecret: s.config.JWTSecret}

	restHandler := rest.NewHandler(s.store, s.reservations, s.funding)
	rest.SetupRoutes(router, restHandler, authCfg, s.limiter)

	wsHandler := ws.NewHandler(s.store, s.hub)
	router.GET("/ws/wishlists/:public_id", wsHandler.WishlistRoom)
	router.GET("/ws/me", middleware.Auth(authCfg), wsHandler.UserRoom)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
