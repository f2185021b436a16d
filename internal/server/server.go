// Package server exposes the balancer over HTTP.
//
// Routes:
//
//	POST /v1/balance   balance an expression
//	POST /v1/check     report whether an expression is already balanced
//	GET  /v1/runs/:id  list the history of a run (requires a store)
//	GET  /healthz      liveness, and store reachability when a store is set
//	GET  /metrics      Prometheus metrics
//
// Parse failures answer 400 and balance failures 422, both with an
// ErrorResponse whose message is localized from the request's
// Accept-Language header.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/language"

	"github.com/bce-toolkit/bce/internal/engine"
	"github.com/bce-toolkit/bce/internal/locale"
	"github.com/bce-toolkit/bce/internal/store"
)

// Server routes HTTP requests to an engine.
type Server struct {
	engine   *engine.Engine
	store    *store.Store
	lang     language.Tag
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
	router   *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables GET /v1/runs/:id and the store health check.
func WithStore(s *store.Store) Option {
	return func(srv *Server) {
		srv.store = s
	}
}

// WithLanguage sets the message language used when a request carries no
// Accept-Language header.
func WithLanguage(tag language.Tag) Option {
	return func(srv *Server) {
		srv.lang = tag
	}
}

// WithLogger replaces slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(srv *Server) {
		srv.logger = l
	}
}

// New builds the router. Call gin.SetMode before New to change gin's mode.
func New(e *engine.Engine, opts ...Option) *Server {
	srv := &Server{
		engine:   e,
		lang:     language.English,
		logger:   slog.Default(),
		registry: prometheus.NewRegistry(),
	}
	for _, o := range opts {
		o(srv)
	}
	srv.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	srv.metrics = newMetrics(srv.registry)

	r := gin.New()
	r.Use(gin.Recovery(), srv.observe())

	r.GET("/healthz", srv.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	{
		v1.POST("/balance", srv.handleBalance)
		v1.POST("/check", srv.handleCheck)
		v1.GET("/runs/:id", srv.handleRun)
	}
	srv.router = r
	return srv
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr, "run_id", s.engine.RunID())
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// observe logs each request and records request metrics.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()

		s.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.metrics.latency.WithLabelValues(route).Observe(elapsed.Seconds())
		s.logger.Info("http request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency", elapsed,
		)
	}
}

// language picks the message language for c.
func (s *Server) language(c *gin.Context) language.Tag {
	if h := c.GetHeader("Accept-Language"); h != "" {
		return locale.MatchAccept(h)
	}
	return s.lang
}
