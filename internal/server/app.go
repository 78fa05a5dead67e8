package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evtc/internal/server/routes"
	"evtc/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

type Config struct {
	HttpPort   string
	WalletPort string
	GrpcPort   string
}

// App 账本节点与钱包各自一个 HTTP 端口，另有一个 gRPC 健康检查端口
type App struct {
	httpServers  []*http.Server
	grpcServer   *grpc.Server
	grpcListener net.Listener
}

func New(cfg Config, node, wallet http.Handler) (*App, error) {
	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on grpc port %s: %w", cfg.GrpcPort, err)
	}

	grpcServer := grpc.NewServer()
	routes.RegisterHealthGRPC(grpcServer, ServiceNode, ServiceWallet)

	return &App{
		httpServers: []*http.Server{
			{Addr: ":" + cfg.HttpPort, Handler: node, ReadHeaderTimeout: 5 * time.Second},
			{Addr: ":" + cfg.WalletPort, Handler: wallet, ReadHeaderTimeout: 5 * time.Second},
		},
		grpcServer:   grpcServer,
		grpcListener: lis,
	}, nil
}

// Run 启动服务并阻塞，直到收到关闭信号
func (a *App) Run() {
	for _, srv := range a.httpServers {
		srv := srv
		go func() {
			logger.Info("Starting HTTP Server", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("HTTP Server failure", zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Info("Starting gRPC Server", zap.String("addr", a.grpcListener.Addr().String()))
		if err := a.grpcServer.Serve(a.grpcListener); err != nil {
			logger.Fatal("gRPC Server failure", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down devnet...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, srv := range a.httpServers {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("HTTP Server forced to shutdown", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}

	a.grpcServer.GracefulStop()
	logger.Info("Server exited properly")
}
