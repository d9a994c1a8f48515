package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// CatalogService — имя сервиса в health-проверках.
const CatalogService = "catalog.v1.Catalog"

// GRPCServer отдаёт стандартный health-сервис: NOT_SERVING до загрузки каталога, SERVING после.
type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	cfg    *cfg.GRPCConfig
	logger logger.Logger
}

func NewGRPCServer(cfg *cfg.GRPCConfig, logger logger.Logger) *GRPCServer {
	s := &GRPCServer{
		server: grpc.NewServer(),
		health: health.NewServer(),
		cfg:    cfg,
		logger: logger,
	}

	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	s.SetServing(false)

	return s
}

// SetServing переключает статус общего ("") и каталожного сервиса.
func (s *GRPCServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	for _, service := range []string{"", CatalogService} {
		s.health.SetServingStatus(service, status)
	}
	s.logger.Debugf("gRPC health status: %s", status)
}

func (s *GRPCServer) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	lis, err := net.Listen(s.cfg.NetworkMode, addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.Serve(lis)
}

func (s *GRPCServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// Stop переводит health в NOT_SERVING и ждёт завершения вызовов. По истечении ctx соединения рвутся.
func (s *GRPCServer) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infof("gRPC server stopped gracefully")
		return nil
	case <-ctx.Done():
		s.server.Stop()
		<-done
		s.logger.Warnf("gRPC server forced to stop after timeout")
		return ctx.Err()
	}
}
