// Package http 提供证明服务的 HTTP API
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/weisyn/hfproof/internal/api/http/handlers"
	"github.com/weisyn/hfproof/internal/api/http/middleware"
	apiconfig "github.com/weisyn/hfproof/internal/config/api"
	"github.com/weisyn/hfproof/internal/core/pipeline"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
)

// Server HTTP服务器结构
// 负责提供证明生成、验证与程序标识查询的HTTP API
type Server struct {
	router     *gin.Engine           // Gin路由引擎，处理HTTP请求和路由分发
	httpServer *http.Server          // 标准HTTP服务器，提供HTTP监听功能
	listener   net.Listener          // 实际监听的地址（监听端口 0 时由系统分配）
	options    *apiconfig.APIOptions // API配置
	logger     log.Logger            // 日志记录器
	packager   *pipeline.Packager    // 证明打包器

	serveErr chan error
}

// New 创建HTTP服务器并注册路由，不启动监听
func New(options *apiconfig.APIOptions, logger log.Logger, packager *pipeline.Packager) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:   router,
		options:  options,
		logger:   logger,
		packager: packager,
		serveErr: make(chan error, 1),
	}
	s.setupRoutes()
	return s
}

// NewServer 创建HTTP服务器并注册生命周期钩子
func NewServer(lifecycle fx.Lifecycle, options *apiconfig.APIOptions, logger log.Logger, packager *pipeline.Packager) *Server {
	server := New(options, logger.With("module", "http"), packager)

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server
}

// setupRoutes 设置HTTP路由
func (s *Server) setupRoutes() {
	s.router.Use(
		middleware.NewRequestID().Middleware(),
		middleware.NewLogger(s.logger).Middleware(),
		middleware.NewMetrics().Middleware(),
		s.limitBody(),
	)

	proofHandlers := handlers.NewProofHandlers(s.packager, s.logger)
	v1 := s.router.Group("/v1")
	proofHandlers.RegisterRoutes(v1, middleware.NewConcurrencyLimit(s.options.MaxConcurrentProofs).Middleware())

	s.router.GET("/healthz", handlers.Healthz)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.logger.Debug("HTTP路由注册完成")
}

// limitBody 限制请求体大小
func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.options.MaxRequestSize > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.options.MaxRequestSize)
		}
		c.Next()
	}
}

// Handler 返回路由处理器（测试使用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 启动HTTP服务器
//
// 监听在返回前完成，端口冲突会直接返回错误；服务循环在后台运行。
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.options.ListenAddr)
	if err != nil {
		return fmt.Errorf("HTTP服务器监听失败 %s: %w", s.options.ListenAddr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.options.ReadTimeout,
		WriteTimeout: s.options.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("HTTP服务器异常退出: %v", err)
			s.serveErr <- err
		}
		close(s.serveErr)
	}()

	s.logger.Infof("HTTP服务器启动成功，监听地址: %s", ln.Addr())
	return nil
}

// Addr 返回实际监听地址；未启动时为空
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Done 服务循环退出时关闭；异常退出时先发送错误
func (s *Server) Done() <-chan error {
	return s.serveErr
}

// Stop 优雅停止HTTP服务器，等待进行中的请求完成或 ctx 到期
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("正在停止HTTP服务器...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP服务器停止失败: %w", err)
	}
	return nil
}
