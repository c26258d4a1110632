package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/store-inventory/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// ReportRepository runs the read-only queries behind the dashboard reports.
type ReportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) *ReportRepository {
	return &ReportRepository{db: db}
}

// Fetch selects columns from table and zips every row against the
// requested column names. An empty result is an empty, non-nil slice.
func (r *ReportRepository) Fetch(ctx context.Context, table string, columns []string) ([]Row, error) {
	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = pgx.Identifier{column}.Sanitize()
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), pgx.Identifier{table}.Sanitize())

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, &errs.QueryExecutionError{Operation: "fetch", Target: table, Err: errors.Wrapf(err, "fetch %s", table)}
	}

	result, err := collect(rows, columns)
	if err != nil {
		return nil, &errs.QueryExecutionError{Operation: "fetch", Target: table, Err: errors.Wrapf(err, "fetch %s", table)}
	}
	return result, nil
}

// Query runs a fixed report query. Column names come from the result
// metadata, in the order the query selects them.
func (r *ReportRepository) Query(ctx context.Context, name, query string, args ...any) ([]Row, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, &errs.QueryExecutionError{Operation: "report", Target: name, Err: errors.Wrapf(err, "report %s", name)}
	}

	result, err := collect(rows, nil)
	if err != nil {
		return nil, &errs.QueryExecutionError{Operation: "report", Target: name, Err: errors.Wrapf(err, "report %s", name)}
	}
	return result, nil
}

// collect drains rows. When names is nil the field descriptions name the
// columns.
func collect(rows pgx.Rows, names []string) ([]Row, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	oids := make([]uint32, len(fields))
	described := make([]string, len(fields))
	for i, f := range fields {
		oids[i] = f.DataTypeOID
		described[i] = f.Name
	}
	if names == nil {
		names = described
	}

	result := make([]Row, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		for i := range values {
			var oid uint32
			if i < len(oids) {
				oid = oids[i]
			}
			values[i] = normalize(values[i], oid)
		}

		result = append(result, NewRow(names, values))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
