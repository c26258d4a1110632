package router

import (
	"github.com/deppfellow/store-inventory/internal/handler"
	"github.com/deppfellow/store-inventory/internal/report"
	"github.com/labstack/echo/v4"
)

// registerReportRoutes exposes every registered report as GET /<name>.
func registerReportRoutes(r *echo.Echo, h *handler.Handlers) {
	for _, def := range report.Definitions() {
		r.GET("/"+def.Name, h.Reports.Report(def))
	}
}
