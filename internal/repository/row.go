package repository

import (
	"bytes"
	"encoding/json"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Column is one named value of a Row.
type Column struct {
	Name  string
	Value any
}

// Row is a result row that keeps its column order when encoded to JSON.
type Row []Column

// NewRow zips names and values positionally. When a name repeats, the later
// value replaces the earlier one and keeps the earlier position.
func NewRow(names []string, values []any) Row {
	row := make(Row, 0, len(names))
	index := make(map[string]int, len(names))

	for i, name := range names {
		var value any
		if i < len(values) {
			value = values[i]
		}

		if pos, ok := index[name]; ok {
			row[pos].Value = value
			continue
		}
		index[name] = len(row)
		row = append(row, Column{Name: name, Value: value})
	}

	return row
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// normalize turns a scanned value into something with a stable JSON form.
// oid is the column's type OID from the result metadata.
func normalize(value any, oid uint32) any {
	switch v := value.(type) {
	case nil:
		return nil
	case pgtype.Numeric:
		return numericString(v)
	case *pgtype.Numeric:
		if v == nil {
			return nil
		}
		return numericString(*v)
	case time.Time:
		if oid == pgtype.DateOID {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.RFC3339Nano)
	case []byte:
		return string(v)
	case [16]byte:
		return uuid.UUID(v).String()
	default:
		return v
	}
}

// numericString renders NUMERIC exactly, without a float round trip.
func numericString(n pgtype.Numeric) any {
	if !n.Valid {
		return nil
	}
	if n.NaN {
		return "NaN"
	}
	switch n.InfinityModifier {
	case pgtype.Infinity:
		return "Infinity"
	case pgtype.NegativeInfinity:
		return "-Infinity"
	}

	if n.Int == nil {
		return "0"
	}
	d := decimal.NewFromBigInt(new(big.Int).Set(n.Int), n.Exp)
	if n.Exp < 0 {
		// Keep the column scale: 19.90 stays "19.90".
		return d.StringFixed(-n.Exp)
	}
	return d.String()
}
