package middleware

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-rental/internal/metrics"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	loggerKey       = "logger"
)

// RequestID assigns each request an id, keeping one sent by the caller, and
// stores a logger tagged with it.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}

		c.Request().Header.Set(RequestIDHeader, id)
		c.Response().Header().Set(RequestIDHeader, id)
		c.Set(requestIDKey, id)
		c.Set(loggerKey, log.WithField(requestIDKey, id))

		return next(c)
	}
}

// Logger returns the request scoped logger, or the standard one outside
// RequestID.
func Logger(c echo.Context) *log.Entry {
	if entry, ok := c.Get(loggerKey).(*log.Entry); ok {
		return entry
	}
	return log.NewEntry(log.StandardLogger())
}

// RequestLogger logs every served request at info, server errors at error.
func RequestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		entry := Logger(c).WithFields(log.Fields{
			"method":   c.Request().Method,
			"path":     c.Path(),
			"status":   status,
			"duration": time.Since(start).String(),
		})
		if status >= 500 {
			entry.WithError(err).Error("request failed")
		} else {
			entry.Info("request served")
		}
		return nil
	}
}

// Metrics records request counts and durations by route.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			m.ObserveRequest(c.Request().Method, c.Path(), strconv.Itoa(c.Response().Status), start)
			return nil
		}
	}
}
