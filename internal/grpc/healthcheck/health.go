package healthcheck

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"scamshield/pkg/logger"
)

// ServiceName is the health-check name of the risk engine
const ServiceName = "scamshield.v1.RiskEngine"

// DefaultInterval is how often dependencies are probed
const DefaultInterval = 10 * time.Second

// Pinger is a dependency whose failure marks the service NOT_SERVING
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server reports serving status over the standard gRPC health protocol
type Server struct {
	health   *health.Server
	checks   map[string]Pinger
	interval time.Duration
	logger   *logger.Logger
}

// Register creates a health server on grpcServer. The service starts out
// SERVING; call Run to keep the status in step with checks.
func Register(grpcServer *grpc.Server, checks map[string]Pinger, log *logger.Logger) *Server {
	s := &Server{
		health:   health.NewServer(),
		checks:   checks,
		interval: DefaultInterval,
		logger:   log.WithComponent("grpc-health"),
	}
	s.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, s.health)
	return s
}

// Run probes dependencies every interval until ctx is done, then reports
// NOT_SERVING so load balancers drain the instance
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

// Probe checks every dependency once and updates the serving status
func (s *Server) Probe(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	for name, c := range s.checks {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := c.Ping(pctx)
		cancel()
		if err != nil {
			s.logger.Warn().Err(err).Str("dependency", name).Msg("health probe failed")
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
	}
	s.setStatus(status)
	return status
}

func (s *Server) setStatus(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
