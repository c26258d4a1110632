package middleware

import (
	"strconv"
	"time"

	"github.com/deppfellow/store-inventory/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware counts and times every request in Prometheus.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

func (m *MetricsMiddleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			// Route templates keep label cardinality bounded.
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			m.server.Metrics.ObserveRequest(
				c.Request().Method,
				path,
				strconv.Itoa(responseStatus(c, err)),
				time.Since(start),
			)

			return err
		}
	}
}
