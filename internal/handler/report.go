package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/deppfellow/store-inventory/internal/report"
	"github.com/deppfellow/store-inventory/internal/repository"
	"github.com/deppfellow/store-inventory/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ReportRequest carries the optional date overrides a report may accept.
// Dates are checked by the report itself, and only for the parameters it
// declares.
type ReportRequest struct {
	Date string `query:"date"`
	From string `query:"from"`
	To   string `query:"to"`
}

func NewReportRequest() *ReportRequest {
	return &ReportRequest{}
}

func (r *ReportRequest) Validate() error {
	return nil
}

// Values returns the supplied parameters named in accepted. Anything else
// on the query string is ignored.
func (r *ReportRequest) Values(accepted ...string) url.Values {
	supplied := map[string]string{"date": r.Date, "from": r.From, "to": r.To}

	values := url.Values{}
	for _, name := range accepted {
		if value := supplied[name]; value != "" {
			values.Set(name, value)
		}
	}
	return values
}

// ReportService runs a named report.
type ReportService interface {
	Run(ctx context.Context, name string, query url.Values) ([]repository.Row, error)
}

type ReportHandler struct {
	Handler
	reports ReportService
}

func NewReportHandler(s *server.Server, reports ReportService) *ReportHandler {
	return &ReportHandler{
		Handler: NewHandler(s),
		reports: reports,
	}
}

// Report returns the endpoint serving def.
func (h *ReportHandler) Report(def report.Definition) echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *ReportRequest) ([]repository.Row, error) {
		if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
			txn.AddAttribute("report.name", def.Name)
			txn.AddAttribute("report.description", def.Description)
		}
		return h.reports.Run(c.Request().Context(), def.Name, req.Values(def.Params()...))
	}, http.StatusOK, NewReportRequest)
}
