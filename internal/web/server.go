// Package web exposes the browse service over HTTP.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tierview/tierview/internal/logger"
	"github.com/tierview/tierview/pkg/browse"
)

// Options configures the HTTP server.
type Options struct {
	// ListenAddr is the address to listen on (host:port)
	ListenAddr string

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration

	// Browser serves browse requests
	Browser *browse.Browser
}

// Server serves the browse API over HTTP.
type Server struct {
	engine          *gin.Engine
	listenAddr      string
	shutdownTimeout time.Duration
	browser         *browse.Browser
}

// NewServer creates an HTTP server with all routes registered.
func NewServer(opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{
		engine:          engine,
		listenAddr:      opts.ListenAddr,
		shutdownTimeout: opts.ShutdownTimeout,
		browser:         opts.Browser,
	}

	engine.GET("/health", s.handleHealth)
	engine.GET("/browse", s.handleBrowse)
	engine.GET("/api/v1/browse", s.handleBrowse)

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
//
// Returns nil on clean shutdown, or the listener error if serving fails
// before cancellation.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.listenAddr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", s.listenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server (timeout: %v)", s.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown incomplete: %v", err)
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleBrowse renders a namespace view for the requested path.
//
// Query parameters:
//   - path: namespace path to browse (defaults to the root)
//   - offset: byte offset for file previews, entry offset for listings
//   - end: when present, offset counts backward from the end of the file
//   - limit: number of listing entries to return
//
// The response is always 200 with a view document; user-facing failures are
// carried in the view's error field rather than an HTTP status, so the page
// stays renderable.
func (s *Server) handleBrowse(c *gin.Context) {
	req := browse.Request{Path: c.Query("path")}

	req.Offset, req.HasOffset = c.GetQuery("offset")
	req.Limit, req.HasLimit = c.GetQuery("limit")
	_, req.End = c.GetQuery("end")

	view := s.browser.Browse(c.Request.Context(), req)
	c.JSON(http.StatusOK, view)
}

// requestLogger logs each request at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s -> %d (%v)",
			c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), time.Since(start))
	}
}
