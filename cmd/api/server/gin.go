package server

import (
	"net/http"
	"time"

	"user-service/internal/adapter/gin/handler"
	ginrouter "user-service/internal/adapter/gin/router"
	grpcmiddleware "user-service/internal/adapter/grpc/middleware"
	"user-service/internal/config"

	"go.uber.org/zap"
)

// NewGinServer creates and configures the Gin REST API server
func NewGinServer(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	rateLimiter *grpcmiddleware.RateLimiter,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(userHandler, ginrouter.Options{
		Mode:           cfg.App.GinMode,
		ServiceName:    cfg.Logger.ServiceName,
		MetricsEnabled: cfg.Telemetry.MetricsEnabled,
		DocsEnabled:    cfg.App.DocsEnabled,
		RateLimiter:    rateLimiter,
	}, l)

	l.Info("Gin REST API configured",
		zap.String("address", cfg.App.HTTPAddress()),
		zap.Bool("metrics", cfg.Telemetry.MetricsEnabled),
		zap.Bool("docs", cfg.App.DocsEnabled),
		zap.Bool("rate_limit", rateLimiter.Enabled()),
	)

	return &http.Server{
		Addr:              cfg.App.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
