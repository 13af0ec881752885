package router

import (
	"net/http"
	"time"

	"user-service/api/swagger"
	"user-service/internal/adapter/gin/handler"
	"user-service/internal/adapter/gin/middleware"
	grpcmiddleware "user-service/internal/adapter/grpc/middleware"
	"user-service/pkg/logger"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Options toggles the optional parts of the router
type Options struct {
	Mode           string // gin mode; empty keeps the current one
	ServiceName    string // span name prefix for tracing
	MetricsEnabled bool
	DocsEnabled    bool
	RateLimiter    *grpcmiddleware.RateLimiter // nil disables rate limiting
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(userHandler *handler.UserHandler, opts Options, log *zap.Logger) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	_ = router.SetTrustedProxies(nil)

	// Global middleware
	router.Use(ginzap.RecoveryWithZap(log, true))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(middleware.Logger(log))
	if opts.MetricsEnabled {
		router.Use(middleware.Metrics())
	}
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(middleware.RateLimiter(opts.RateLimiter, log))

	// Health check endpoint
	router.GET("/health", handler.Health)
	router.HEAD("/health", handler.Health)

	users := router.Group("/api/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	if opts.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if opts.DocsEnabled {
		router.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", swagger.Spec)
		})
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/openapi.json"),
		)))
	}

	return router
}
