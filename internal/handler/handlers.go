package handler

import (
	"github.com/deppfellow/store-inventory/internal/server"
	"github.com/deppfellow/store-inventory/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health    *HealthHandler
	Inventory *InventoryHandler
	Reports   *ReportHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s, s.DB.Pool),
		Inventory: NewInventoryHandler(s, services.Inventory),
		Reports:   NewReportHandler(s, services.Reports),
	}
}
