package pricing

import (
	"fmt"
	"math"
	"strconv"
)

// MissingFeatureWarning signals that a schema column had no collected value
// and a sentinel was substituted. It is advisory: prediction continues.
type MissingFeatureWarning struct {
	Column string
}

func (w MissingFeatureWarning) String() string {
	return fmt.Sprintf("no value collected for %q, substituting a placeholder", w.Column)
}

// Assemble builds the single-row feature record the preprocessor expects
// from whatever subset of columns was collected. Every schema column ends up
// in the record, in schema order: categorical and boolean values pass
// through unchanged, numeric values are coerced (non-numeric becomes NaN),
// and uncollected columns get the kind's sentinel plus a warning. Assemble
// never fails; anomalies degrade to sentinels.
func Assemble(schema *Schema, collected map[string]any) (*Record, []MissingFeatureWarning) {
	var warnings []MissingFeatureWarning
	values := make(map[string]any, schema.Len())

	for _, col := range schema.columns {
		v, ok := collected[col.Name]
		if !ok {
			warnings = append(warnings, MissingFeatureWarning{Column: col.Name})
			if col.Kind == KindNumeric {
				values[col.Name] = math.NaN()
			} else {
				values[col.Name] = UnknownSentinel
			}
			continue
		}
		if col.Kind == KindNumeric {
			values[col.Name] = CoerceNumeric(v)
		} else {
			values[col.Name] = v
		}
	}

	return &Record{columns: schema.ColumnNames(), values: values}, warnings
}

// CoerceNumeric converts a collected value to float64. Values that cannot be
// interpreted as a number become NaN; the fitted preprocessor imputes those.
func CoerceNumeric(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err == nil {
			return f
		}
		// Source data encodes boolean flags as True/False.
		if b, err := strconv.ParseBool(n); err == nil {
			if b {
				return 1
			}
			return 0
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}
