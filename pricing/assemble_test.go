package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := BuildSchema([]string{"mileage", "horsepower", "body_type"})
	require.NoError(t, err)
	return s
}

func TestAssembleMissingColumnGetsSentinelAndWarning(t *testing.T) {
	schema := testSchema(t)

	rec, warnings := Assemble(schema, map[string]any{
		"mileage":    50000,
		"horsepower": 200,
	})

	assert.Equal(t, []string{"mileage", "horsepower", "body_type"}, rec.Columns())
	v, ok := rec.Value("mileage")
	require.True(t, ok)
	assert.Equal(t, 50000.0, v)
	v, _ = rec.Value("horsepower")
	assert.Equal(t, 200.0, v)
	v, _ = rec.Value("body_type")
	assert.Equal(t, UnknownSentinel, v)

	require.Len(t, warnings, 1)
	assert.Equal(t, "body_type", warnings[0].Column)
}

func TestAssembleKeySetAlwaysEqualsSchema(t *testing.T) {
	schema := DefaultSchema()

	for _, collected := range []map[string]any{
		{},
		{"mileage": 1},
		{"mileage": 1, "transmission": "A", "is_new": 1},
	} {
		rec, _ := Assemble(schema, collected)
		assert.Equal(t, schema.ColumnNames(), rec.Columns())
		assert.Equal(t, schema.Len(), rec.Len())
	}
}

func TestAssembleNonNumericValueBecomesNaN(t *testing.T) {
	schema := testSchema(t)

	rec, warnings := Assemble(schema, map[string]any{
		"mileage":    "not a number",
		"horsepower": 200,
		"body_type":  "Sedan",
	})

	v, _ := rec.Value("mileage")
	f, ok := v.(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(f))
	assert.Empty(t, warnings)
}

func TestAssembleMissingNumericIsNaN(t *testing.T) {
	schema := testSchema(t)

	rec, warnings := Assemble(schema, map[string]any{"body_type": "Sedan"})

	for _, col := range []string{"mileage", "horsepower"} {
		v, _ := rec.Value(col)
		f, ok := v.(float64)
		require.True(t, ok)
		assert.True(t, math.IsNaN(f), col)
	}
	assert.Len(t, warnings, 2)
}

func TestAssemblePassesCategoricalAndBooleanThrough(t *testing.T) {
	schema := DefaultSchema()

	rec, _ := Assemble(schema, map[string]any{
		"transmission": "A",
		"is_new":       1,
		"fleet":        0,
	})

	v, _ := rec.Value("transmission")
	assert.Equal(t, "A", v)
	v, _ = rec.Value("is_new")
	assert.Equal(t, 1, v)
	v, _ = rec.Value("fleet")
	assert.Equal(t, 0, v)
}

func TestCoerceNumeric(t *testing.T) {
	assert.Equal(t, 1.5, CoerceNumeric(1.5))
	assert.Equal(t, 3.0, CoerceNumeric(3))
	assert.Equal(t, 42.0, CoerceNumeric("42"))
	assert.Equal(t, 1.0, CoerceNumeric(true))
	assert.Equal(t, 1.0, CoerceNumeric("True"))
	assert.Equal(t, 0.0, CoerceNumeric("False"))
	assert.True(t, math.IsNaN(CoerceNumeric("abc")))
	assert.True(t, math.IsNaN(CoerceNumeric(nil)))
}

func TestBuildSchemaRejectsUndeclaredColumn(t *testing.T) {
	_, err := BuildSchema([]string{"mileage", "flux_capacitance"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flux_capacitance")
}

func TestNewSchemaRejectsDuplicates(t *testing.T) {
	_, err := NewSchema([]Column{
		{Name: "mileage", Kind: KindNumeric},
		{Name: "mileage", Kind: KindNumeric},
	})
	assert.Error(t, err)
}

func TestDefaultSchemaIsComplete(t *testing.T) {
	schema := DefaultSchema()
	assert.Equal(t, len(DefaultColumns), schema.Len())
	col, ok := schema.Column("transmission")
	require.True(t, ok)
	assert.Equal(t, KindCategorical, col.Kind)
	assert.Equal(t, Transmissions, col.Domain)
	col, _ = schema.Column("is_new")
	assert.Equal(t, KindBoolean, col.Kind)
	col, _ = schema.Column("mileage")
	assert.Equal(t, KindNumeric, col.Kind)
}
