package pricing

// Record is a single-row feature record: one value per schema column, in
// schema order. Values are float64 for numeric columns (NaN when missing),
// int 0/1 for boolean flags, and strings for categorical columns.
type Record struct {
	columns []string
	values  map[string]any
}

func (r *Record) Len() int {
	return len(r.columns)
}

// Columns returns the record's column names in order.
func (r *Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Value returns the value for a column.
func (r *Record) Value(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Values returns the record's values in column order.
func (r *Record) Values() []any {
	out := make([]any, len(r.columns))
	for i, name := range r.columns {
		out[i] = r.values[name]
	}
	return out
}

// ValueMap returns a copy of the record keyed by column name.
func (r *Record) ValueMap() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
