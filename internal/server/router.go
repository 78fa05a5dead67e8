package server

import (
	"time"

	"evtc/internal/devnet"
	"evtc/internal/handler"
	"evtc/internal/server/routes"
	"evtc/pkg/logger"
	"evtc/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Service names
const (
	ServiceNode   = "evtd"
	ServiceWallet = "evtwd"
)

// newEngine 两个服务共用的中间件与基础路由
func newEngine(service string, log *zap.Logger) *gin.Engine {
	// 0. 初始化监控指标
	monitor.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(service, logger.Or(log)))
	r.Use(monitor.PrometheusMiddleware(service))

	r.GET("/health", handler.HealthCheck(service))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// NewNodeRouter 账本节点 (evtd)
func NewNodeRouter(l *devnet.Ledger, log *zap.Logger) *gin.Engine {
	r := newEngine(ServiceNode, log)
	routes.RegisterNodeRoutes(r, devnet.NewNodeHandler(l))
	return r
}

// NewWalletRouter 钱包服务 (evtwd)
func NewWalletRouter(h *devnet.WalletHandler, log *zap.Logger) *gin.Engine {
	r := newEngine(ServiceWallet, log)
	routes.RegisterWalletRoutes(r, h)
	return r
}

func requestLogger(service string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("service", service),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
