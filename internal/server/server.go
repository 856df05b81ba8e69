package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/sentiment/internal/classifier"
	"github.com/nao1215/sentiment/internal/config"
	"github.com/nao1215/sentiment/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the UI and the JSON API.
type Server struct {
	predictor    classifier.Predictor
	generator    *report.Generator
	logger       *slog.Logger
	maxTextBytes int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxTextBytes limits the size of submitted text.
func WithMaxTextBytes(n int64) Option {
	return func(s *Server) {
		s.maxTextBytes = n
	}
}

// New creates a Server that classifies with predictor and renders reports
// with generator.
func New(predictor classifier.Predictor, generator *report.Generator, opts ...Option) *Server {
	s := &Server{
		predictor:    predictor,
		generator:    generator,
		maxTextBytes: config.DefaultMaxTextBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Handler creates and configures the gin router.
func (s *Server) Handler() (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"percent": percent,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Middleware
	router.Use(RequestID())
	router.Use(Logger(s.logger))
	router.Use(Recovery(s.logger))

	// Health endpoints
	router.GET("/health", s.Health)
	router.GET("/ready", s.Ready)

	// UI
	router.GET("/", s.Index)
	router.POST("/predict", s.PredictForm)
	router.POST("/report", s.Report)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/predict", s.APIPredict)
		v1.POST("/report", s.Report)
		v1.GET("/models", s.Models)
	}

	return router, nil
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully, waiting up to shutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("server started", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}
