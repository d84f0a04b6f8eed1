// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bootstrapkeyHTTP "github.com/allisson/iot-onboarding/internal/bootstrapkey/http"
	"github.com/allisson/iot-onboarding/internal/config"
	fleetHTTP "github.com/allisson/iot-onboarding/internal/fleet/http"
	"github.com/allisson/iot-onboarding/internal/metrics"
	registrationHTTP "github.com/allisson/iot-onboarding/internal/registration/http"
)

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig bundles the handlers and settings mounted on the server.
type RouterConfig struct {
	Config *config.Config
	// AdminAPIKey is the resolved operator credential (possibly KMS-decrypted).
	AdminAPIKey         string
	RegistrationHandler *registrationHTTP.RegistrationHandler
	BootstrapKeyHandler *bootstrapkeyHTTP.BootstrapKeyHandler
	DeviceHandler       *fleetHTTP.DeviceHandler
	// MetricsProvider enables per-request HTTP metrics when non-nil.
	MetricsProvider *metrics.Provider
}

// SetupRouter builds the gin router with all middleware and routes.
func (s *Server) SetupRouter(rc *RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if rc.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			rc.MetricsProvider.MeterProvider(),
			rc.Config.MetricsNamespace,
		))
	}

	if corsMiddleware := createCORSMiddleware(
		rc.Config.CORSEnabled,
		rc.Config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Public device-facing routes
	public := router.Group(rc.Config.PublicRoutePrefix)
	if rc.Config.RateLimitRegisterEnabled {
		public.Use(RegisterRateLimitMiddleware(
			rc.Config.RateLimitRegisterRequestsPerSec,
			rc.Config.RateLimitRegisterBurst,
			s.logger,
		))
	}
	public.POST("/register", rc.RegistrationHandler.RegisterHandler)

	// Private admin routes behind the static operator credential
	private := router.Group(rc.Config.PrivateRoutePrefix)
	private.Use(AdminAuthMiddleware(rc.AdminAPIKey, s.logger))

	admin := private.Group("/admin")
	admin.POST("/keys", rc.BootstrapKeyHandler.CreateHandler)
	admin.GET("/keys", rc.BootstrapKeyHandler.ListHandler)
	admin.GET("/keys/:id", rc.BootstrapKeyHandler.GetHandler)
	admin.PUT("/keys/:id", rc.BootstrapKeyHandler.SetActivationHandler)
	admin.DELETE("/keys/:id", rc.BootstrapKeyHandler.DeleteHandler)
	admin.GET("/devices", rc.DeviceHandler.ListHandler)
	admin.POST("/devices/revoke", rc.DeviceHandler.RevokeHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness to serve traffic, gated on database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}

	ready := true
	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Error("readiness check failed", slog.String("error", err.Error()))
		components["database"] = "error"
		ready = false
	} else {
		components["database"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
