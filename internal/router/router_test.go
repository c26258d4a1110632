package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/store-inventory/internal/config"
	"github.com/deppfellow/store-inventory/internal/handler"
	"github.com/deppfellow/store-inventory/internal/metrics"
	"github.com/deppfellow/store-inventory/internal/report"
	"github.com/deppfellow/store-inventory/internal/repository"
	"github.com/deppfellow/store-inventory/internal/server"
	"github.com/deppfellow/store-inventory/internal/service"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2025, 4, 16, 10, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*echo.Echo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := zerolog.Nop()
	s := &server.Server{
		Config:   config.Default(),
		Logger:   &logger,
		Metrics:  metrics.New(),
		Location: time.UTC,
	}

	services := &service.Services{
		Inventory: service.NewInventoryService(repository.NewInventoryRepository(mock, &logger), s.Metrics),
		Reports:   service.NewReportService(repository.NewReportRepository(mock), s.Metrics, time.UTC, func() time.Time { return clock }),
	}

	h := &handler.Handlers{
		Health:    handler.NewHealthHandler(s, mock),
		Inventory: handler.NewInventoryHandler(s, services.Inventory),
		Reports:   handler.NewReportHandler(s, services.Reports),
	}

	return NewRouter(s, h), mock
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAddCategory(t *testing.T) {
	t.Run("inserts and commits", func(t *testing.T) {
		e, mock := newTestRouter(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "category" ("name", "description") VALUES ($1, $2)`).
			WithArgs("Snacks", "").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		rec := do(e, http.MethodPost, "/add_category", `{"categoryName":"Snacks"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Category added successfully"}`, rec.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing name", func(t *testing.T) {
		e, mock := newTestRouter(t)

		rec := do(e, http.MethodPost, "/add_category", `{"description":"x"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"categoryName is required"}`, rec.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty body", func(t *testing.T) {
		e, _ := newTestRouter(t)

		rec := do(e, http.MethodPost, "/add_category", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"categoryName is required"}`, rec.Body.String())
	})
}

func TestAddVendorDuplicate(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "supplier" ("name", "email", "contactnumber", "address") VALUES ($1, $2, $3, $4)`).
		WithArgs("Acme", "sales@acme.test", int64(5551234), "").
		WillReturnError(&pgconn.PgError{Severity: "ERROR", Code: "23505", ConstraintName: "supplier_name_key"})
	mock.ExpectRollback()

	rec := do(e, http.MethodPost, "/add_vendor", `{"vendorName":"Acme","vendorEmail":"sales@acme.test","vendorNumber":"5551234"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"A record with this ID already exists in Vendor"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCategoryDuplicateThenRecover(t *testing.T) {
	e, mock := newTestRouter(t)
	query := `INSERT INTO "category" ("name", "description") VALUES ($1, $2)`

	mock.ExpectBegin()
	mock.ExpectExec(query).WithArgs("Snacks", "").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(query).WithArgs("Snacks", "").
		WillReturnError(&pgconn.PgError{Severity: "ERROR", Code: "23505", ConstraintName: "category_name_key"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(query).WithArgs("Drinks", "").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	first := do(e, http.MethodPost, "/add_category", `{"categoryName":"Snacks"}`)
	second := do(e, http.MethodPost, "/add_category", `{"categoryName":"Snacks"}`)
	third := do(e, http.MethodPost, "/add_category", `{"categoryName":"Drinks"}`)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.JSONEq(t, `{"error":"A record with this ID already exists in Category"}`, second.Body.String())
	assert.Equal(t, http.StatusOK, third.Code)
	assert.JSONEq(t, `{"message":"Category added successfully"}`, third.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddProductForeignKeyViolation(t *testing.T) {
	e, mock := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "product" ("name", "description", "price", "stockquantity", "expirydate", "reorderlevel", "categoryid", "supplierid") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`).
		WithArgs("Chips", "", 1.5, int64(3), nil, int64(0), int64(99), nil).
		WillReturnError(errors.New("violates foreign key constraint"))
	mock.ExpectRollback()

	rec := do(e, http.MethodPost, "/add_product", `{"productName":"Chips","price":1.5,"quantity":3,"CategoryID":99}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to add to Product: violates foreign key constraint"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddProductInvalidPrice(t *testing.T) {
	e, mock := newTestRouter(t)

	rec := do(e, http.MethodPost, "/add_product", `{"productName":"Chips","price":"abc","quantity":3}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid value for price"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReports(t *testing.T) {
	t.Run("every registered report has a route", func(t *testing.T) {
		e, _ := newTestRouter(t)

		routes := map[string]bool{}
		for _, r := range e.Routes() {
			routes[r.Method+" "+r.Path] = true
		}
		for _, def := range report.Definitions() {
			assert.True(t, routes["GET /"+def.Name], def.Name)
		}
		assert.True(t, routes["POST /add_product"])
		assert.True(t, routes["GET /status"])
		assert.True(t, routes["GET /metrics"])
	})

	t.Run("windowed report binds today", func(t *testing.T) {
		e, mock := newTestRouter(t)

		def, _ := report.Lookup("get_all_sales_today")
		today := time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(def.SQL).
			WithArgs(today).
			WillReturnRows(pgxmock.NewRows([]string{"invoiceid", "customerid", "totalamount"}).
				AddRow(int32(7), int32(3), "42.50"))

		rec := do(e, http.MethodGet, "/get_all_sales_today", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `[{"invoiceid":7,"customerid":3,"totalamount":"42.50"}]`, strings.TrimSpace(rec.Body.String()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result", func(t *testing.T) {
		e, mock := newTestRouter(t)

		def, _ := report.Lookup("feedback")
		mock.ExpectQuery(def.SQL).WillReturnRows(pgxmock.NewRows([]string{"feedbackid"}))

		rec := do(e, http.MethodGet, "/feedback", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("malformed date", func(t *testing.T) {
		e, mock := newTestRouter(t)

		rec := do(e, http.MethodGet, "/best_employee_today?date=yesterday", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"date must be a date in YYYY-MM-DD format"}`, rec.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("parameterless report ignores query string", func(t *testing.T) {
		e, mock := newTestRouter(t)

		def, _ := report.Lookup("feedback")
		mock.ExpectQuery(def.SQL).
			WithArgs().
			WillReturnRows(pgxmock.NewRows([]string{"feedbackid"}).AddRow(int32(1)))

		rec := do(e, http.MethodGet, "/feedback?date=junk&from=2025-13-45", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `[{"feedbackid":1}]`, strings.TrimSpace(rec.Body.String()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("undeclared parameter is not checked", func(t *testing.T) {
		e, mock := newTestRouter(t)

		def, _ := report.Lookup("get_all_sales_today")
		mock.ExpectQuery(def.SQL).
			WithArgs(time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)).
			WillReturnRows(pgxmock.NewRows([]string{"invoiceid"}))

		rec := do(e, http.MethodGet, "/get_all_sales_today?from=junk", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inverted range", func(t *testing.T) {
		e, _ := newTestRouter(t)

		rec := do(e, http.MethodGet, "/revenue_last_month?from=2025-03-31&to=2025-03-01", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"from must not be after to"}`, rec.Body.String())
	})

	t.Run("query failure", func(t *testing.T) {
		e, mock := newTestRouter(t)

		def, _ := report.Lookup("complaints")
		mock.ExpectQuery(def.SQL).WillReturnError(errors.New(`relation "complaints" does not exist`))

		rec := do(e, http.MethodGet, "/complaints", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"relation \"complaints\" does not exist"}`, rec.Body.String())
	})
}

func TestStatus(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		e, mock := newTestRouter(t)
		mock.ExpectPing()

		rec := do(e, http.MethodGet, "/status", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	})

	t.Run("database down", func(t *testing.T) {
		e, mock := newTestRouter(t)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		rec := do(e, http.MethodGet, "/status", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	e, _ := newTestRouter(t)

	do(e, http.MethodPost, "/add_category", `{}`)
	rec := do(e, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `inventory_inserts_total{entity="Category",outcome="invalid"} 1`)
}
