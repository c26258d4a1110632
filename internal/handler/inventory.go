package handler

import (
	"context"

	"github.com/deppfellow/store-inventory/internal/repository"
	"github.com/deppfellow/store-inventory/internal/server"
	"github.com/labstack/echo/v4"
)

// InsertRequest is a raw JSON form. Fields are checked against the entity's
// field spec in the repository, so there is nothing to validate here.
type InsertRequest map[string]any

func NewInsertRequest() *InsertRequest {
	return &InsertRequest{}
}

func (r *InsertRequest) Validate() error {
	return nil
}

// InventoryService adds products, vendors and categories.
type InventoryService interface {
	AddProduct(ctx context.Context, payload map[string]any) (*repository.InsertResult, error)
	AddVendor(ctx context.Context, payload map[string]any) (*repository.InsertResult, error)
	AddCategory(ctx context.Context, payload map[string]any) (*repository.InsertResult, error)
}

type InventoryHandler struct {
	Handler
	inventory InventoryService
}

func NewInventoryHandler(s *server.Server, inventory InventoryService) *InventoryHandler {
	return &InventoryHandler{
		Handler:   NewHandler(s),
		inventory: inventory,
	}
}

func (h *InventoryHandler) AddProduct(c echo.Context, req *InsertRequest) (*repository.InsertResult, error) {
	return h.inventory.AddProduct(c.Request().Context(), *req)
}

func (h *InventoryHandler) AddVendor(c echo.Context, req *InsertRequest) (*repository.InsertResult, error) {
	return h.inventory.AddVendor(c.Request().Context(), *req)
}

func (h *InventoryHandler) AddCategory(c echo.Context, req *InsertRequest) (*repository.InsertResult, error) {
	return h.inventory.AddCategory(c.Request().Context(), *req)
}
