package server

import (
	"user-service/internal/adapter/grpc/middleware"
	"user-service/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewGRPCServer creates the gRPC server exposing the standard health service.
// The service name is reported SERVING alongside the empty overall name.
func NewGRPCServer(serviceName string, rateLimiter *middleware.RateLimiter, l *zap.Logger) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
			logger.UnaryLoggingInterceptor(l),
			rateLimiter.UnaryInterceptor(),
		),
	)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return grpcServer, healthServer
}
