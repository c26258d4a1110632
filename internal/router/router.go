// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps every path to its handler.
package router

import (
	"github.com/deppfellow/store-inventory/internal/handler"
	"github.com/deppfellow/store-inventory/internal/middleware"
	"github.com/deppfellow/store-inventory/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the global middleware chain and
// all routes.
//
// Order matters: the request id must exist before the New Relic and logger
// enrichment read it, and Recover sits innermost so panics still pass
// through logging and metrics.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Observe(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)
	registerInventoryRoutes(router, h)
	registerReportRoutes(router, h)

	return router
}
