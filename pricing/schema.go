package pricing

import "fmt"

// ColumnKind tells the assembler and preprocessor how to treat a column's
// values.
type ColumnKind int

const (
	KindNumeric ColumnKind = iota
	KindBoolean
	KindCategorical
)

func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindBoolean:
		return "boolean"
	case KindCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is a single feature column with its declared kind. Categorical
// columns carry the set of values the form may offer for them.
type Column struct {
	Name   string
	Kind   ColumnKind
	Domain []string
}

// Schema is the ordered list of feature columns the preprocessor was fitted
// against. The order is fixed at model build time and must not change between
// training and prediction.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a schema from the given columns. Duplicate column names
// are a contract violation and return an error.
func NewSchema(columns []Column) (*Schema, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, ok := index[col.Name]; ok {
			return nil, fmt.Errorf("duplicate column in schema: %s", col.Name)
		}
		index[col.Name] = i
	}
	return &Schema{columns: columns, index: index}, nil
}

// BuildSchema resolves an artifact-provided column name list against the
// statically declared column kinds. A column without a declared kind means
// the model artifacts and this binary are out of sync, which is a startup
// failure rather than something to paper over at prediction time.
func BuildSchema(columnNames []string) (*Schema, error) {
	columns := make([]Column, 0, len(columnNames))
	for _, name := range columnNames {
		col, ok := declaredColumn(name)
		if !ok {
			return nil, fmt.Errorf("column %q has no declared kind", name)
		}
		columns = append(columns, col)
	}
	return NewSchema(columns)
}

func (s *Schema) Len() int {
	return len(s.columns)
}

// ColumnNames returns the column names in schema order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns the full column definitions in schema order.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Column looks up a column definition by name.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}
