package router

import (
	"net/http"

	"github.com/deppfellow/store-inventory/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerInventoryRoutes(r *echo.Echo, h *handler.Handlers) {
	inventory := h.Inventory

	r.POST("/add_product", handler.Handle(inventory.Handler, inventory.AddProduct, http.StatusOK, handler.NewInsertRequest))
	r.POST("/add_vendor", handler.Handle(inventory.Handler, inventory.AddVendor, http.StatusOK, handler.NewInsertRequest))
	r.POST("/add_category", handler.Handle(inventory.Handler, inventory.AddCategory, http.StatusOK, handler.NewInsertRequest))
}
