package currency

import (
	"testing"

	"github.com/mohanad/carpriced/rates"
	"github.com/stretchr/testify/assert"
)

func TestConvertJPYFormatsAsGroupedInteger(t *testing.T) {
	table := rates.Table{"JPY": 150.0, "EUR": 0.9}

	value, display := Convert(100.0, "JPY", table)
	assert.Equal(t, 15000.0, value)
	assert.Equal(t, "15,000", display)
}

func TestConvertEURFormatsWithTwoDecimals(t *testing.T) {
	table := rates.Table{"EUR": 0.9}

	value, display := Convert(100.0, "EUR", table)
	assert.Equal(t, 90.0, value)
	assert.Equal(t, "90.00", display)
}

func TestConvertUnknownCodeDefaultsToPriceUnchanged(t *testing.T) {
	table := rates.Table{"EUR": 0.9}

	value, display := Convert(1234.5, "XXX", table)
	assert.Equal(t, 1234.5, value)
	assert.Equal(t, "1,234.50", display)
}

func TestFormatGroupsThousands(t *testing.T) {
	assert.Equal(t, "1,234,567.89", Format(1234567.89, "USD"))
	assert.Equal(t, "1,234,567", Format(1234567.2, "JPY"))
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "¥", Symbol("JPY"))
	assert.Equal(t, "EGP", Symbol("EGP"))
	assert.Equal(t, "$", Symbol("ZZZ"))
}

func TestSupportedCoversFallbackCurrencies(t *testing.T) {
	fallback := rates.FallbackTable()
	for _, info := range Supported {
		_, ok := fallback[info.Code]
		assert.True(t, ok, "no fallback rate for %s", info.Code)
	}
}
