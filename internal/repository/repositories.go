// Package repository handles all interactions with the database.
//
// It contains the generic insert and fetch helpers together with the
// value coercion and row normalization they need, abstracting SQL away
// from the service layer.
package repository

import (
	"context"

	"github.com/deppfellow/store-inventory/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the part of *pgxpool.Pool the repositories use. Every call checks
// a connection out of the pool and hands it back when done.
type DBTX interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Inventory *InventoryRepository
	Reports   *ReportRepository
}

// NewRepositories constructs the repository container on top of the
// server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Inventory: NewInventoryRepository(s.DB.Pool, s.Logger),
		Reports:   NewReportRepository(s.DB.Pool),
	}
}
