// Package app contains the REST API surface for users and courses.
package app

import (
	"errors"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/coursedesk/coursedesk/internal/config"
	"github.com/coursedesk/coursedesk/internal/sec"
	"github.com/coursedesk/coursedesk/internal/storage"
)

// New creates the REST API server. Every request runs the same pipeline:
// credential extraction and authentication (protected routes), payload
// validation (mutation routes), ownership checks (course update/delete),
// then the handler itself. Each stage short-circuits with a terminal
// response.
func New(cfg *config.Config, logger *slog.Logger, store storage.Store, hasher *sec.Hasher) *echo.Echo {
	srv := echo.New()

	srv.HideBanner = true
	srv.HidePort = true
	srv.Logger.SetLevel(log.OFF)
	srv.HTTPErrorHandler = errorHandler(srv, logger)

	if cfg.DevMode {
		srv.Debug = true
		srv.Use(logRequests(logger))
	}

	srv.Use(
		middleware.Recover(),
		middleware.Decompress(),
		middleware.Gzip(),
		middleware.Secure(),
		middleware.RequestID(),
	)

	handler{store: store, hasher: hasher, logger: logger}.register(srv)
	return srv
}

// errorHandler maps unexpected errors to a generic 500 before deferring to
// the default echo handler. Storage and other internal failures are logged
// server-side with full detail; the client only ever sees the generic body.
func errorHandler(srv *echo.Echo, logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) {
			logger.LogAttrs(
				c.Request().Context(),
				slog.LevelError,
				"request failed",
				slog.String("method", c.Request().Method),
				slog.String("route", c.Path()),
				slog.Any("error", err),
			)
			err = echo.ErrInternalServerError
		}
		srv.DefaultHTTPErrorHandler(err, c)
	}
}

func logRequests(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.String("route", c.Path()),
				slog.Duration("latency", latency),
				slog.Int("status", res.Status),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			logger.LogAttrs(
				req.Context(),
				slog.LevelDebug,
				"request handled",
				attrs...,
			)
			return err
		}
	}
}
