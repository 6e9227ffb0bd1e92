package healthcheck

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"

	"scamshield/pkg/logger"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestProbe(t *testing.T) {
	healthy := true
	s := Register(grpc.NewServer(), map[string]Pinger{
		"redis": pingFunc(func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("down")
		}),
	}, logger.NewNop())
	ctx := context.Background()

	check := func(want grpc_health_v1.HealthCheckResponse_ServingStatus) {
		t.Helper()
		for _, svc := range []string{"", ServiceName} {
			resp, err := s.health.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: svc})
			if err != nil {
				t.Fatalf("Check(%q): %v", svc, err)
			}
			if resp.Status != want {
				t.Errorf("Check(%q) = %s, want %s", svc, resp.Status, want)
			}
		}
	}

	check(grpc_health_v1.HealthCheckResponse_SERVING)

	healthy = false
	if got := s.Probe(ctx); got != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Errorf("Probe = %s", got)
	}
	check(grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	healthy = true
	s.Probe(ctx)
	check(grpc_health_v1.HealthCheckResponse_SERVING)
}
