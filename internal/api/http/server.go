// Package http 提供合约开发宿主的 HTTP API
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xrpl-wasm/contracts/internal/api/http/handlers"
	"github.com/xrpl-wasm/contracts/internal/api/http/middleware"
	"github.com/xrpl-wasm/contracts/internal/api/websocket"
	apiconfig "github.com/xrpl-wasm/contracts/internal/config/api"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/event"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// Dependencies HTTP服务器依赖
type Dependencies struct {
	Options  apiconfig.HTTPConfig
	Logger   log.Logger
	Invoker  handlers.Invoker
	Ledger   LedgerService
	Runtime  handlers.RuntimeStats
	EventBus event.EventBus       // 可为nil，此时不提供 /v1/stream
	Registry *prometheus.Registry // 可为nil，此时不提供 /metrics
}

// LedgerService 账户接口与健康检查共同依赖的账本能力
type LedgerService interface {
	handlers.LedgerService
	handlers.HealthSource
}

// Server HTTP服务器结构
// 负责路由管理、服务启动和停止
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	options    apiconfig.HTTPConfig
	logger     log.Logger
	stream     *websocket.Server
	listener   net.Listener
}

// NewServer 创建HTTP服务器并注册全部路由
func NewServer(deps Dependencies) *Server {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.NewRequestID().Middleware(),
		middleware.NewLogger(deps.Logger).Middleware(),
		middleware.NewMetrics(deps.Registry).Middleware(),
		middleware.CORS(deps.Options.CORSOrigins),
		middleware.ErrorHandler(deps.Logger),
	)
	if deps.Options.MaxRequestSize > 0 {
		limit := deps.Options.MaxRequestSize
		router.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
			c.Next()
		})
	}

	s := &Server{
		router:  router,
		options: deps.Options,
		logger:  deps.Logger,
	}
	s.setupRoutes(deps)
	return s
}

func (s *Server) setupRoutes(deps Dependencies) {
	handlers.NewHealthHandler(deps.Ledger, deps.Runtime).RegisterRoutes(s.router)

	if deps.Registry != nil && s.options.EnableMetrics {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	v1 := s.router.Group("/v1")
	handlers.NewInvokeHandler(deps.Invoker, deps.Logger).RegisterRoutes(v1)
	handlers.NewAccountHandlers(deps.Ledger).RegisterRoutes(v1)

	if deps.EventBus != nil && s.options.EnableTraceStream {
		s.stream = websocket.NewServer(deps.Logger, deps.EventBus, s.originAllowed)
		s.stream.RegisterRoutes(v1)
	}
}

func (s *Server) originAllowed(origin string) bool {
	for _, o := range s.options.CORSOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// Handler 路由引擎（测试使用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 监听端口并在后台提供服务
func (s *Server) Start() error {
	addr := s.options.Address()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", addr, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.options.ReadTimeout,
		WriteTimeout: s.options.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("HTTP服务器异常退出: %v", err)
		}
	}()

	s.logger.Infof("✅ HTTP服务器启动成功，监听地址: %s", listener.Addr())
	return nil
}

// Addr 实际监听地址（端口为0时由系统分配）
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop 优雅关闭
func (s *Server) Stop(ctx context.Context) error {
	if s.stream != nil {
		if err := s.stream.Close(); err != nil {
			s.logger.Warnf("注销事件推送失败: %v", err)
		}
	}
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("正在关闭HTTP服务器")
	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(stopCtx); err != nil {
		s.logger.Errorf("HTTP服务器关闭出错: %v", err)
		return err
	}
	s.logger.Info("HTTP服务器已关闭")
	return nil
}
