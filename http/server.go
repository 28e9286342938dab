// Package http 提供HTTP服务器功能
package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"heartbeats/config"
	"heartbeats/ml"
	"heartbeats/monitoring"
)

// Server HTTP服务器
type Server struct {
	server    *http.Server
	config    ServerConfig
	router    *chi.Mux
	predictor *ml.Predictor
	sessions  *SessionStore
	templates *template.Template
	contact   config.Contact
	metrics   *monitoring.Collector
	logger    *zap.Logger
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Addr         string
	Timeout      time.Duration
	MaxBodyBytes int64
	Contact      config.Contact
}

// ServerConfigFrom 由应用配置生成服务器配置
func ServerConfigFrom(cfg *config.Config) ServerConfig {
	return ServerConfig{
		Addr:         cfg.Addr(),
		Timeout:      cfg.Http.Timeout,
		MaxBodyBytes: cfg.Http.MaxBodyBytes,
		Contact:      cfg.Contact,
	}
}

// DefaultServerConfig 默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfigFrom(config.Default())
}

// NewServer 创建HTTP服务器
func NewServer(cfg ServerConfig, predictor *ml.Predictor, sessions *SessionStore, logger *zap.Logger) (*Server, error) {
	if predictor == nil {
		return nil, errors.New("predictor is required")
	}
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:    cfg,
		router:    chi.NewRouter(),
		predictor: predictor,
		sessions:  sessions,
		templates: templates,
		contact:   cfg.Contact,
		metrics:   monitoring.NewCollector(),
		logger:    logger,
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(
		LoggerMiddleware(s.logger),
		RecoveryMiddleware(s.logger),
		SecurityHeadersMiddleware,
		RequestSizeMiddleware(s.config.MaxBodyBytes),
		middleware.Compress(5),
	)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Post("/navigate", s.handleNavigate)
	s.router.Post("/scan", s.handleScan)
	s.router.Post("/contact", s.handleContact)

	s.router.Get("/api/health", handleHealth)
	s.router.Get("/api/schema", handleSchema)
	s.router.Get("/api/metrics", s.handleMetrics)
	s.router.Post("/api/predict", s.handlePredict)

	s.router.Handle("/static/*", http.StripPrefix("/static/", staticFiles()))
}

// Handler 返回完整的路由处理器
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 启动服务器
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop 停止服务器
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

// Addr 返回服务器地址
func (s *Server) Addr() string {
	return s.server.Addr
}
