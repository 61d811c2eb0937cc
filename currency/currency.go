package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mohanad/carpriced/rates"
)

// Info describes one currency the form offers.
type Info struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Supported lists the currencies offered by the currency selector, in menu
// order.
var Supported = []Info{
	{Code: "USD", Name: "US Dollar ($)", Symbol: "$"},
	{Code: "EUR", Name: "Euro (€)", Symbol: "€"},
	{Code: "GBP", Name: "British Pound (£)", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen (¥)", Symbol: "¥"},
	{Code: "CAD", Name: "Canadian Dollar (CA$)", Symbol: "CA$"},
	{Code: "AUD", Name: "Australian Dollar (A$)", Symbol: "A$"},
	{Code: "EGP", Name: "Egyptian Pound (EGP)", Symbol: "EGP"},
}

// Symbol returns the display symbol for a currency code, defaulting to "$".
func Symbol(code string) string {
	for _, info := range Supported {
		if info.Code == code {
			return info.Symbol
		}
	}
	return "$"
}

var printer = message.NewPrinter(language.English)

// Convert applies the exchange rate for code to a USD price and formats the
// result for display. A code absent from the table multiplies by 1.0. Yen
// amounts format as grouped integers, everything else with two decimals.
func Convert(priceUSD float64, code string, table rates.Table) (float64, string) {
	value := priceUSD * table.Rate(code)
	return value, Format(value, code)
}

// Format renders an amount with thousands grouping per the currency's
// convention.
func Format(value float64, code string) string {
	if code == "JPY" {
		return printer.Sprintf("%d", int64(value))
	}
	return printer.Sprintf("%.2f", value)
}
