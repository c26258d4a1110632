package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/store-inventory/internal/errs"
	"github.com/deppfellow/store-inventory/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// InsertResult describes a committed insert.
type InsertResult struct {
	Entity  string `json:"-"`
	Table   string `json:"-"`
	Message string `json:"message"`
}

// InventoryRepository writes products, vendors and categories.
type InventoryRepository struct {
	db     DBTX
	logger *zerolog.Logger
}

func NewInventoryRepository(db DBTX, logger *zerolog.Logger) *InventoryRepository {
	return &InventoryRepository{db: db, logger: logger}
}

// Insert validates payload against spec and writes it as one row inside a
// single transaction. Validation failures never reach the database.
//
// Every call that reaches the database ends in exactly one commit or one
// rollback.
func (r *InventoryRepository) Insert(ctx context.Context, spec FieldSpec, payload map[string]any) (*InsertResult, error) {
	columns, values, err := spec.Bind(payload)
	if err != nil {
		return nil, err
	}

	query := insertSQL(spec.Table, columns)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, &errs.QueryExecutionError{
			Operation: "insert",
			Target:    spec.Entity,
			Err:       errors.Wrap(err, "begin transaction"),
		}
	}

	if _, err := tx.Exec(ctx, query, values...); err != nil {
		r.rollback(ctx, tx, spec)

		if sqlerr.IsUniqueViolation(err) {
			return nil, &errs.DuplicateRecordError{
				Entity:     spec.Entity,
				Constraint: sqlerr.Classify(err).ConstraintName,
				Err:        err,
			}
		}

		return nil, &errs.QueryExecutionError{
			Operation: "insert",
			Target:    spec.Entity,
			Err:       errors.Wrapf(err, "insert into %s", spec.Table),
		}
	}

	// A failed commit has already rolled the transaction back.
	if err := tx.Commit(ctx); err != nil {
		return nil, &errs.QueryExecutionError{
			Operation: "insert",
			Target:    spec.Entity,
			Err:       errors.Wrap(err, "commit transaction"),
		}
	}

	return &InsertResult{
		Entity:  spec.Entity,
		Table:   spec.Table,
		Message: fmt.Sprintf("%s added successfully", spec.Entity),
	}, nil
}

func (r *InventoryRepository) rollback(ctx context.Context, tx pgx.Tx, spec FieldSpec) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.Error().
			Err(err).
			Str("table", spec.Table).
			Msg("failed to roll back insert")
	}
}

// insertSQL builds the INSERT statement with quoted identifiers and
// positional placeholders.
func insertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = pgx.Identifier{column}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{table}.Sanitize(),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
}
