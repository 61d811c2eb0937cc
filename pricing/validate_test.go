package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHorsepowerOutOfRangeBlocks(t *testing.T) {
	violations, _ := ValidateCollected(map[string]any{"horsepower": 5})
	require.Len(t, violations, 1)
	assert.Equal(t, "horsepower", violations[0].Column)
	assert.Contains(t, violations[0].Message, "between 10 and 1200")
}

func TestValidateHighHorsepowerOnlyWarns(t *testing.T) {
	violations, advisories := ValidateCollected(map[string]any{"horsepower": 700})
	assert.Empty(t, violations)
	require.Len(t, advisories, 1)
	assert.Equal(t, "horsepower", advisories[0].Column)
}

func TestValidateAggregatesAllViolations(t *testing.T) {
	violations, _ := ValidateCollected(map[string]any{
		"horsepower":          5,
		"engine_displacement": 12.0,
		"seller_rating":       4.0,
	})
	assert.Len(t, violations, 2)
	cols := []string{violations[0].Column, violations[1].Column}
	assert.ElementsMatch(t, []string{"horsepower", "engine_displacement"}, cols)
}

func TestValidateIgnoresUncollectedFields(t *testing.T) {
	violations, advisories := ValidateCollected(map[string]any{})
	assert.Empty(t, violations)
	assert.Empty(t, advisories)
}

func TestValidateNonNumericValueIsNotAViolation(t *testing.T) {
	// Garbage input degrades to the missing sentinel during assembly, so
	// validation lets it through rather than double-reporting.
	violations, _ := ValidateCollected(map[string]any{"horsepower": "plenty"})
	assert.Empty(t, violations)
}

func TestValidateAdvisoryThresholds(t *testing.T) {
	_, advisories := ValidateCollected(map[string]any{
		"mileage": 350000,
		"car_age": 40,
	})
	assert.Len(t, advisories, 2)
}
