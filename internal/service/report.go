package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/deppfellow/store-inventory/internal/errs"
	"github.com/deppfellow/store-inventory/internal/metrics"
	"github.com/deppfellow/store-inventory/internal/report"
	"github.com/deppfellow/store-inventory/internal/repository"
)

// ReportQuerier runs report reads.
type ReportQuerier interface {
	Fetch(ctx context.Context, table string, columns []string) ([]repository.Row, error)
	Query(ctx context.Context, name, query string, args ...any) ([]repository.Row, error)
}

type ReportService struct {
	repo    ReportQuerier
	metrics *metrics.Metrics
	loc     *time.Location
	now     func() time.Time
}

// NewReportService builds the report runner. now is the clock report
// windows are derived from; loc decides what "today" is.
func NewReportService(repo ReportQuerier, m *metrics.Metrics, loc *time.Location, now func() time.Time) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &ReportService{repo: repo, metrics: m, loc: loc, now: now}
}

// Run executes the named report. Date parameters in query override the
// report's default window.
func (s *ReportService) Run(ctx context.Context, name string, query url.Values) ([]repository.Row, error) {
	def, ok := report.Lookup(name)
	if !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("report %s not found", name), nil)
	}

	args, err := def.Args(report.Today(s.now(), s.loc), query)
	if err != nil {
		return nil, err
	}

	done := s.metrics.TrackReport(def.Name, time.Now())

	var rows []repository.Row
	switch def.Kind {
	case report.Table:
		rows, err = s.repo.Fetch(ctx, def.Table, def.Columns)
	default:
		rows, err = s.repo.Query(ctx, def.Name, def.SQL, args...)
	}

	done(outcome(err))
	return rows, err
}
