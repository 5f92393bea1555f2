package mcp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobapply-gateway/internal/config"
	"github.com/honeycarbs/jobapply-gateway/internal/mcp/middleware"
	"github.com/honeycarbs/jobapply-gateway/internal/metrics"
	"github.com/honeycarbs/jobapply-gateway/pkg/logging"
)

const (
	ServerName    = "jobapply-gateway"
	ServerVersion = "0.1.0"
)

// Server exposes the router over plain HTTP and the MCP streamable transport
type Server struct {
	logger *logging.Logger
	router *Router

	engine  *gin.Engine
	srv     *http.Server
	started atomic.Bool
}

// NewServer builds the HTTP surface for router. Tools must be registered
// on router before this call to appear on /mcp/stream.
func NewServer(log *logging.Logger, cfg config.HTTP, router *Router, reg *metrics.Registry) *Server {
	s := &Server{
		logger: log,
		router: router,
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.CORS(cfg.AllowOrigins),
		middleware.Logging(log),
		middleware.Recovery(log),
	)

	v1 := engine.Group("/mcp/v1")
	v1.GET("/tools", s.handleListTools)
	v1.POST("/invoke", s.handleInvoke)

	engine.Any("/mcp/stream", gin.WrapH(newStreamHandler(router)))
	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if reg != nil {
		engine.GET("/metrics", reg.Handler())
	}

	s.engine = engine
	s.srv = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("MCP HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for MCP HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("MCP HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("MCP HTTP server shutdown complete")
	return nil
}

func (s *Server) handleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, ListToolsResponse{Tools: s.router.List()})
}

func (s *Server) handleInvoke(c *gin.Context) {
	var req InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, InvalidParameter("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(c, MissingParameter("name"))
		return
	}
	c.Set(middleware.ToolKey, req.Name)

	result, err := s.router.Invoke(c.Request.Context(), req.Name, req.Parameters)
	if err != nil {
		s.writeError(c, err)
		return
	}

	body, err := successBody(result)
	if err != nil {
		s.writeError(c, Internal(err))
		return
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) writeError(c *gin.Context, err error) {
	c.JSON(KindOf(err).HTTPStatus(), ErrorResponse{
		Error:  PublicMessage(err),
		Status: statusError,
	})
}
