package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/store-inventory/internal/config"
	"github.com/deppfellow/store-inventory/internal/errs"
	"github.com/deppfellow/store-inventory/internal/metrics"
	"github.com/deppfellow/store-inventory/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config:  config.Default(),
		Logger:  &logger,
		Metrics: metrics.New(),
	}
}

func newTestEcho(s *server.Server) (*echo.Echo, *Middlewares) {
	mw := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(
		mw.RateLimit.Limit(),
		RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Metrics.Observe(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)
	return e, mw
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation error",
			err:     errs.NewRequiredFieldError("categoryName"),
			status:  http.StatusBadRequest,
			message: "categoryName is required",
		},
		{
			name:    "duplicate record",
			err:     &errs.DuplicateRecordError{Entity: "Vendor"},
			status:  http.StatusConflict,
			message: "A record with this ID already exists in Vendor",
		},
		{
			name:    "query failure",
			err:     &errs.QueryExecutionError{Operation: "insert", Target: "Product", Err: errors.New("connection refused")},
			status:  http.StatusInternalServerError,
			message: "Failed to add to Product: connection refused",
		},
		{
			name:    "echo error",
			err:     echo.NewHTTPError(http.StatusMethodNotAllowed),
			status:  http.StatusMethodNotAllowed,
			message: "Method Not Allowed",
		},
		{
			name:    "raw driver error",
			err:     &pgconn.PgError{Code: "23503", TableName: "product"},
			status:  http.StatusInternalServerError,
			message: "Internal Server Error",
		},
		{
			name:    "unknown error",
			err:     assert.AnError,
			status:  http.StatusInternalServerError,
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEcho(newTestServer())
			e.GET("/boom", func(c echo.Context) error { return tt.err })

			rec := serve(e, http.MethodGet, "/boom")

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, map[string]any{"error": tt.message}, body)
		})
	}
}

func TestGlobalErrorHandler_FieldErrors(t *testing.T) {
	e, _ := newTestEcho(newTestServer())
	e.GET("/bad", func(c echo.Context) error {
		return errs.NewBadRequestError("Validation failed", nil, []errs.FieldError{{Field: "from", Error: "is required"}})
	})

	rec := serve(e, http.MethodGet, "/bad")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Validation failed","errors":[{"field":"from","error":"is required"}]}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	e, _ := newTestEcho(newTestServer())

	rec := serve(e, http.MethodGet, "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"error": "Route not found"}, decodeError(t, rec))
}

func TestRecoverReturnsJSON(t *testing.T) {
	e, _ := newTestEcho(newTestServer())
	e.GET("/panic", func(c echo.Context) error { panic("unexpected") })

	rec := serve(e, http.MethodGet, "/panic")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Internal Server Error"}, decodeError(t, rec))
}

func TestRequestID(t *testing.T) {
	e, _ := newTestEcho(newTestServer())

	var seen string
	e.GET("/id", func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusNoContent)
	})

	t.Run("generates an id", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/id")
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("reuses a sane upstream id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(RequestIDHeader, "edge-42")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "edge-42", seen)
		assert.Equal(t, "edge-42", rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("a", 500))
		e.ServeHTTP(httptest.NewRecorder(), req)

		assert.Len(t, seen, 36)
	})
}

func TestContextEnhancer(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	s := newTestServer()
	s.Logger = &logger
	e, _ := newTestEcho(s)

	e.GET("/log", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from request context")
		GetLogger(c).Info().Msg("from echo context")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/log", nil)
	req.Header.Set(RequestIDHeader, "edge-7")
	e.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	for _, line := range lines[:2] {
		assert.Contains(t, line, `"request_id":"edge-7"`)
		assert.Contains(t, line, `"path":"/log"`)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer()
	s.Config.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 1}

	e, _ := newTestEcho(s)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/feedback", ok)
	e.GET("/status", ok)

	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/feedback").Code)

	rec := serve(e, http.MethodGet, "/feedback")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, map[string]any{"error": "Rate limit exceeded"}, decodeError(t, rec))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/status").Code)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	s := newTestServer()
	e, _ := newTestEcho(s)
	e.POST("/add_category", func(c echo.Context) error {
		return &errs.DuplicateRecordError{Entity: "Category"}
	})
	e.GET("/feedback", func(c echo.Context) error { return c.JSON(http.StatusOK, []any{}) })

	serve(e, http.MethodPost, "/add_category")
	serve(e, http.MethodGet, "/feedback")

	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.HTTPRequestsTotal.WithLabelValues("POST", "/add_category", "409")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.HTTPRequestsTotal.WithLabelValues("GET", "/feedback", "200")))
}
