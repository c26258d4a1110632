package repository

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/deppfellow/store-inventory/internal/errs"
)

// FieldType is the type a payload value is coerced to before insert.
type FieldType string

const (
	String  FieldType = "string"
	Integer FieldType = "integer"
	Float   FieldType = "float"
)

// Field maps one request field onto a table column.
type Field struct {
	// Name is the key expected in the request payload.
	Name string
	// Column is the target column. Empty means Name.
	Column   string
	Type     FieldType
	Required bool
	// Default is used when an optional field is absent. nil inserts NULL.
	Default any
}

// ColumnName returns the column the field is written to.
func (f Field) ColumnName() string {
	if f.Column == "" {
		return f.Name
	}
	return f.Column
}

// FieldSpec describes how a payload becomes a row of Table.
type FieldSpec struct {
	Table string
	// Entity is the label used in response messages, e.g. "Product".
	Entity string
	Fields []Field
}

// Bind validates payload against the field spec and returns the columns and
// coerced values to insert, in field order.
//
// A required field that is absent, null or an empty string is rejected.
// Optional fields fall back to their default when absent; an explicit null
// is kept as NULL.
func (s FieldSpec) Bind(payload map[string]any) ([]string, []any, error) {
	columns := make([]string, 0, len(s.Fields))
	values := make([]any, 0, len(s.Fields))

	for _, field := range s.Fields {
		raw, present := payload[field.Name]

		if field.Required && (!present || raw == nil || raw == "") {
			return nil, nil, errs.NewRequiredFieldError(field.Name)
		}

		if !present {
			raw = field.Default
		}

		value, err := coerce(field.Type, raw)
		if err != nil {
			return nil, nil, errs.NewInvalidValueError(field.Name)
		}

		columns = append(columns, field.ColumnName())
		values = append(values, value)
	}

	return columns, values, nil
}

var errCoercion = errors.New("value cannot be coerced")

func coerce(t FieldType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch t {
	case Integer:
		return toInteger(v)
	case Float:
		return toFloat(v)
	default:
		return toText(v)
	}
}

// toInteger accepts whole decimal strings and JSON numbers. Fractional
// numbers are truncated toward zero.
func toInteger(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return floatToInteger(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, errCoercion
		}
		return floatToInteger(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, errCoercion
		}
		return i, nil
	default:
		return 0, errCoercion
	}
}

func floatToInteger(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errCoercion
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errCoercion
	}
	return int64(f), nil
}

func toFloat(v any) (float64, error) {
	var f float64

	switch n := v.(type) {
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, errCoercion
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, errCoercion
		}
		f = parsed
	default:
		return 0, errCoercion
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errCoercion
	}
	return f, nil
}

func toText(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case bool:
		return strconv.FormatBool(s), nil
	default:
		return "", errCoercion
	}
}
