package service

import (
	"time"

	"github.com/deppfellow/store-inventory/internal/repository"
	"github.com/deppfellow/store-inventory/internal/server"
)

// Services groups the business layer.
type Services struct {
	Inventory *InventoryService
	Reports   *ReportService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Inventory: NewInventoryService(repos.Inventory, s.Metrics),
		Reports:   NewReportService(repos.Reports, s.Metrics, s.Location, time.Now),
	}, nil
}
