// Package report describes the read-only dashboard reports: which query each
// one runs and the date window it is evaluated over.
package report

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/deppfellow/store-inventory/internal/errs"
)

// DateLayout is the format of date query parameters.
const DateLayout = time.DateOnly

// Kind tells the executor how a report is run.
type Kind int

const (
	// Table reports select a fixed column list from one table.
	Table Kind = iota
	// Query reports run a fixed SQL statement.
	Query
)

// WindowKind selects which date parameters a report accepts.
type WindowKind int

const (
	// NoWindow reports take no parameters.
	NoWindow WindowKind = iota
	// Day reports take `date`, bound as $1.
	Day
	// Range reports take `from` and `to`, bound as $1 and $2.
	Range
	// Since reports take `from`, bound as $1.
	Since
)

// Window is the date range a report covers. Default derives the bounds from
// the current day in the configured time zone; for Day and Since windows only
// from is used.
type Window struct {
	Kind    WindowKind
	Default func(today time.Time) (from, to time.Time)
}

// Definition is one registered report.
type Definition struct {
	Name        string
	Description string
	Kind        Kind
	Table       string
	Columns     []string
	SQL         string
	Window      Window
}

// Params lists the query parameters the report understands.
func (d Definition) Params() []string {
	switch d.Window.Kind {
	case Day:
		return []string{"date"}
	case Range:
		return []string{"from", "to"}
	case Since:
		return []string{"from"}
	default:
		return nil
	}
}

// Args resolves the report's query arguments from the request query string,
// falling back to the window defaults for today. Malformed or inverted dates
// are reported as validation errors.
func (d Definition) Args(today time.Time, query url.Values) ([]any, error) {
	if d.Window.Kind == NoWindow {
		return nil, nil
	}

	from, to := today, today
	if d.Window.Default != nil {
		from, to = d.Window.Default(today)
	}

	switch d.Window.Kind {
	case Day:
		day, err := dateParam(query, "date", from, today.Location())
		if err != nil {
			return nil, err
		}
		return []any{day}, nil

	case Since:
		since, err := dateParam(query, "from", from, today.Location())
		if err != nil {
			return nil, err
		}
		return []any{since}, nil

	case Range:
		var err error
		if from, err = dateParam(query, "from", from, today.Location()); err != nil {
			return nil, err
		}
		if to, err = dateParam(query, "to", to, today.Location()); err != nil {
			return nil, err
		}
		if from.After(to) {
			return nil, &errs.ValidationError{Field: "from", Message: "from must not be after to"}
		}
		return []any{from, to}, nil
	}

	return nil, fmt.Errorf("report %s: unknown window kind %d", d.Name, d.Window.Kind)
}

func dateParam(query url.Values, name string, fallback time.Time, loc *time.Location) (time.Time, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return fallback, nil
	}

	parsed, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, &errs.ValidationError{
			Field:   name,
			Message: fmt.Sprintf("%s must be a date in YYYY-MM-DD format", name),
		}
	}
	return parsed, nil
}

// Today truncates now to midnight in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func startOfMonth(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
}

func onDay(today time.Time) (time.Time, time.Time) {
	return today, today
}

// lastWeek covers seven days, today included.
func lastWeek(today time.Time) (time.Time, time.Time) {
	return today.AddDate(0, 0, -6), today
}

// lastSixMonths covers the current month and the five before it.
func lastSixMonths(today time.Time) (time.Time, time.Time) {
	return startOfMonth(today).AddDate(0, -5, 0), today
}

func currentMonth(today time.Time) (time.Time, time.Time) {
	first := startOfMonth(today)
	return first, first.AddDate(0, 1, -1)
}

func previousMonth(today time.Time) (time.Time, time.Time) {
	first := startOfMonth(today).AddDate(0, -1, 0)
	return first, first.AddDate(0, 1, -1)
}

func lastYear(today time.Time) (time.Time, time.Time) {
	return today.AddDate(-1, 0, 0), today
}
