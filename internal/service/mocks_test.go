package service

import (
	"context"

	"github.com/deppfellow/store-inventory/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockInserter implements Inserter for testing
type MockInserter struct {
	mock.Mock
}

func (m *MockInserter) Insert(ctx context.Context, spec repository.FieldSpec, payload map[string]any) (*repository.InsertResult, error) {
	args := m.Called(ctx, spec, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.InsertResult), args.Error(1)
}

// MockReportQuerier implements ReportQuerier for testing
type MockReportQuerier struct {
	mock.Mock
}

func (m *MockReportQuerier) Fetch(ctx context.Context, table string, columns []string) ([]repository.Row, error) {
	args := m.Called(ctx, table, columns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Row), args.Error(1)
}

func (m *MockReportQuerier) Query(ctx context.Context, name, query string, queryArgs ...any) ([]repository.Row, error) {
	args := m.Called(ctx, name, query, queryArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Row), args.Error(1)
}
