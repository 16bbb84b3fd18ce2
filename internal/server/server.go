// Package server exposes the checker over HTTP for an external scheduler.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restockd/stockwatch/internal/services/checker"
)

// NewRouter builds the gin engine with the three routes. Every response is
// HTTP 200; check failures are reported in-band in the status string.
func NewRouter(chk checker.Interface) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	router.GET("/check", func(c *gin.Context) {
		// One full synchronous check cycle; blocks the caller until done.
		result := chk.RunCheck(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": result})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "OK. Use /check to run the stock checker, /health for liveness.",
		})
	})

	return router
}

// Server wraps the http.Server lifecycle.
type Server struct {
	log        *slog.Logger
	httpServer *http.Server
}

// New creates a Server listening on addr.
func New(log *slog.Logger, addr string, chk checker.Interface) *Server {
	return &Server{
		log: log,
		httpServer: &http.Server{
			Addr:    addr,
			Handler: NewRouter(chk),
		},
	}
}

// Start blocks serving HTTP until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.log.Info("HTTP server is starting...", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("HTTP server is stopping...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	return nil
}
