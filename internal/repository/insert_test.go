package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/store-inventory/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categorySpec = FieldSpec{
	Table:  "category",
	Entity: "Category",
	Fields: []Field{
		{Name: "categoryName", Column: "name", Type: String, Required: true},
		{Name: "description", Type: String, Default: ""},
	},
}

const insertCategorySQL = `INSERT INTO "category" ("name", "description") VALUES ($1, $2)`

func newInventoryRepository(t *testing.T) (*InventoryRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := zerolog.Nop()
	return NewInventoryRepository(mock, &logger), mock
}

func TestInsertSQL(t *testing.T) {
	assert.Equal(t, insertCategorySQL, insertSQL("category", []string{"name", "description"}))
	assert.Equal(t, `INSERT INTO "we""ird" ("a") VALUES ($1)`, insertSQL(`we"ird`, []string{"a"}))
}

func TestInventoryRepository_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("commits a valid payload", func(t *testing.T) {
		repo, mock := newInventoryRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(insertCategorySQL).
			WithArgs("Snacks", "").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		result, err := repo.Insert(ctx, categorySpec, map[string]any{"categoryName": "Snacks"})
		require.NoError(t, err)
		assert.Equal(t, "Category added successfully", result.Message)
		assert.Equal(t, "category", result.Table)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("validation failure never touches the database", func(t *testing.T) {
		repo, mock := newInventoryRepository(t)

		_, err := repo.Insert(ctx, categorySpec, map[string]any{"description": "x"})

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "categoryName is required", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation rolls back", func(t *testing.T) {
		repo, mock := newInventoryRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(insertCategorySQL).
			WithArgs("Snacks", "").
			WillReturnError(&pgconn.PgError{
				Severity:       "ERROR",
				Code:           "23505",
				Message:        `duplicate key value violates unique constraint "category_name_key"`,
				ConstraintName: "category_name_key",
			})
		mock.ExpectRollback()

		_, err := repo.Insert(ctx, categorySpec, map[string]any{"categoryName": "Snacks"})

		var duplicateErr *errs.DuplicateRecordError
		require.ErrorAs(t, err, &duplicateErr)
		assert.Equal(t, "category_name_key", duplicateErr.Constraint)
		assert.Equal(t, "A record with this ID already exists in Category", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other database errors roll back", func(t *testing.T) {
		repo, mock := newInventoryRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(insertCategorySQL).
			WithArgs("Snacks", "").
			WillReturnError(errors.New("connection reset by peer"))
		mock.ExpectRollback()

		_, err := repo.Insert(ctx, categorySpec, map[string]any{"categoryName": "Snacks"})

		var queryErr *errs.QueryExecutionError
		require.ErrorAs(t, err, &queryErr)
		assert.Equal(t, "Failed to add to Category: connection reset by peer", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		repo, mock := newInventoryRepository(t)

		mock.ExpectBegin().WillReturnError(errors.New("pool closed"))

		_, err := repo.Insert(ctx, categorySpec, map[string]any{"categoryName": "Snacks"})
		assert.EqualError(t, err, "Failed to add to Category: pool closed")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure", func(t *testing.T) {
		repo, mock := newInventoryRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(insertCategorySQL).
			WithArgs("Snacks", "").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		_, err := repo.Insert(ctx, categorySpec, map[string]any{"categoryName": "Snacks"})
		assert.EqualError(t, err, "Failed to add to Category: serialization failure")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
