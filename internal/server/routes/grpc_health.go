package routes

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// RegisterHealthGRPC 注册标准 gRPC 健康检查，services 中的每个服务都标记为 SERVING
func RegisterHealthGRPC(s *grpc.Server, services ...string) *health.Server {
	hs := health.NewServer()
	for _, name := range services {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthpb.RegisterHealthServer(s, hs)
	return hs
}
