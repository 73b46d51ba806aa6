// Package server exposes parsing and rendering over HTTP for the block
// editor.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"evostudio/config"
	"evostudio/convert/report"
)

const shutdownTimeout = 10 * time.Second

// Server is HTTP front end of the renderer.
type Server struct {
	cfg     config.ServerConfig
	echo    *echo.Echo
	rnd     *report.Renderer
	log     *zap.Logger
	metrics *metrics
}

// New prepares server and its routes, nothing is listening until Run.
func New(cfg *config.ServerConfig, rnd *report.Renderer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:     *cfg,
		echo:    echo.New(),
		rnd:     rnd,
		log:     log.Named("server"),
		metrics: newMetrics(),
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogRoutePath:  true,
		LogStatus:     true,
		LogLatency:    true,
		LogRemoteIP:   true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: s.logRequest,
	}))
	e.Use(middleware.BodyLimit(s.cfg.BodyLimit))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if s.cfg.Metrics {
		e.GET("/metrics", echo.WrapHandler(s.metrics.handler()))
	}

	api := e.Group("/api")
	api.POST("/parse", s.parse)
	api.POST("/render", s.render)
	api.POST("/render/fields", s.renderFields)

	return s
}

// Handler returns server routes for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on configured address until context is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections on l until context is cancelled.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.echo.Listener = l
	// Shutdown stops echo's own server, so it has to be the one running
	srv := s.echo.Server
	srv.ReadTimeout = s.cfg.ReadTimeout
	srv.ReadHeaderTimeout = s.cfg.ReadTimeout

	errs := make(chan error, 1)
	go func() {
		errs <- s.echo.StartServer(srv)
	}()
	s.log.Info("Listening", zap.String("address", l.Addr().String()), zap.Bool("metrics", s.cfg.Metrics))

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(sctx); err != nil {
		return fmt.Errorf("unable to shutdown server: %w", err)
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	s.metrics.observeRequest(v.RoutePath, v.Method, v.Status)

	fields := []zap.Field{
		zap.String("method", v.Method),
		zap.String("uri", v.URI),
		zap.Int("status", v.Status),
		zap.Duration("latency", v.Latency),
		zap.String("remote", v.RemoteIP),
	}
	if v.Error != nil {
		s.log.Warn("Request failed", append(fields, zap.Error(v.Error))...)
		return nil
	}
	s.log.Debug("Request", fields...)
	return nil
}

// errorHandler reports every error as JSON object.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, body := http.StatusInternalServerError, errorResponse{Error: err.Error()}

	var (
		he *echo.HTTPError
		ve *report.ValidationError
	)
	switch {
	case errors.As(err, &ve):
		code, body.Fields = http.StatusUnprocessableEntity, ve.Fields()
	case errors.As(err, &he):
		code = he.Code
		if he.Message != nil {
			body.Error = fmt.Sprint(he.Message)
		}
	default:
		s.log.Error("Unable to serve request", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		s.log.Warn("Unable to send error response", zap.Error(err))
	}
}
