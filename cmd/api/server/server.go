package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"user-service/internal/adapter/gin/handler"
	"user-service/internal/adapter/grpc/middleware"
	"user-service/internal/config"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
	GRPC   *grpc.Server   // nil unless GRPC_ENABLED
	Health *health.Server // nil unless GRPC_ENABLED
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, userHandler *handler.UserHandler, rateLimiter *middleware.RateLimiter) *Server {
	s := &Server{
		Config: cfg,
		Logger: l,
		HTTP:   NewGinServer(cfg, userHandler, rateLimiter, l),
	}

	if cfg.App.GRPCEnabled {
		s.GRPC, s.Health = NewGRPCServer(cfg.Logger.ServiceName, rateLimiter, l)
	}

	return s
}

// Run listens on the configured addresses and serves until ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{}

	httpLis, err := lc.Listen(ctx, "tcp", s.Config.App.HTTPAddress())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Config.App.HTTPAddress(), err)
	}

	var grpcLis net.Listener
	if s.GRPC != nil {
		grpcLis, err = lc.Listen(ctx, "tcp", s.Config.App.GRPCAddress())
		if err != nil {
			_ = httpLis.Close()
			return fmt.Errorf("failed to listen on %s: %w", s.Config.App.GRPCAddress(), err)
		}
	}

	return s.Serve(ctx, httpLis, grpcLis)
}

// Serve runs the servers on the given listeners.
// It returns after a graceful shutdown once ctx is canceled or any server fails.
func (s *Server) Serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Logger.Info("HTTP server running", zap.String("address", httpLis.Addr().String()))
		if err := s.HTTP.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})

	if s.GRPC != nil && grpcLis != nil {
		g.Go(func() error {
			s.Logger.Info("gRPC server running", zap.String("address", grpcLis.Addr().String()))
			if err := s.GRPC.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("gRPC server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops accepting connections and drains in-flight requests
// within SHUTDOWN_TIMEOUT_SECONDS.
func (s *Server) Shutdown() error {
	timeout := time.Duration(s.Config.App.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.Logger.Info("starting graceful shutdown", zap.Duration("timeout", timeout))

	var errs []error

	if s.Health != nil {
		s.Health.Shutdown()
	}

	if s.HTTP != nil {
		s.Logger.Info("shutting down HTTP server...")
		if err := s.HTTP.Shutdown(ctx); err != nil {
			s.Logger.Error("failed to shutdown HTTP server", zap.Error(err))
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}

	if s.GRPC != nil {
		s.Logger.Info("shutting down gRPC server...")
		stopped := make(chan struct{})
		go func() {
			s.GRPC.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-ctx.Done():
			s.GRPC.Stop()
			errs = append(errs, fmt.Errorf("gRPC shutdown: %w", ctx.Err()))
		}
	}

	return errors.Join(errs...)
}
