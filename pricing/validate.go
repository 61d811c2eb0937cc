package pricing

import (
	"fmt"
	"math"
)

// NumericField describes one numeric form input: its hard range, the value
// the form starts with, and advisory thresholds that warn without blocking.
type NumericField struct {
	Column  string
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Step    float64
	Default float64

	// Advisory thresholds. Zero value means no advisory on that side.
	WarnAbove    float64
	WarnAboveMsg string
	NoteBelow    float64
	NoteBelowMsg string
}

// NumericFields lists every numeric input on the form with the ranges the
// original listing data supports.
var NumericFields = []NumericField{
	{Column: "mileage", Label: "Mileage", Unit: "mi", Min: 0, Max: 1000000, Step: 1000, Default: 50000,
		WarnAbove: 300000, WarnAboveMsg: "high mileage: above typical values for most used cars",
		NoteBelow: 1000, NoteBelowMsg: "very low mileage: is this a nearly new car?"},
	{Column: "car_age", Label: "Car Age", Unit: "years", Min: 0, Max: 100, Step: 1, Default: 5,
		WarnAbove: 30, WarnAboveMsg: "this is an unusually old car",
		NoteBelow: 1, NoteBelowMsg: "is this a new or nearly new car?"},
	{Column: "horsepower", Label: "Horsepower", Unit: "HP", Min: 10, Max: 1200, Step: 10, Default: 200,
		WarnAbove: 600, WarnAboveMsg: "high horsepower: above typical values for most cars",
		NoteBelow: 50, NoteBelowMsg: "very low horsepower: is this a compact or economy car?"},
	{Column: "engine_displacement", Label: "Engine Displacement", Unit: "L", Min: 0.1, Max: 10.0, Step: 0.1, Default: 2.5,
		WarnAbove: 6.0, WarnAboveMsg: "large engine displacement: above typical values for most cars",
		NoteBelow: 1.0, NoteBelowMsg: "small engine: is this a compact or hybrid car?"},
	{Column: "fuel_tank_volume", Label: "Fuel Tank Volume", Unit: "gal", Min: 1.0, Max: 100.0, Step: 0.1, Default: 15.0},
	{Column: "city_fuel_economy", Label: "City Fuel Economy", Unit: "MPG", Min: 1, Max: 150, Step: 1, Default: 20},
	{Column: "highway_fuel_economy", Label: "Highway Fuel Economy", Unit: "MPG", Min: 1, Max: 150, Step: 1, Default: 30},
	{Column: "daysonmarket", Label: "Days on Market", Min: 0, Max: 10000, Step: 1, Default: 30},
	{Column: "owner_count", Label: "Previous Owners", Min: 0, Max: 10, Step: 1, Default: 1},
	{Column: "savings_amount", Label: "Savings Amount", Unit: "$", Min: 0, Max: 1000000, Step: 100, Default: 0},
	{Column: "seller_rating", Label: "Seller Rating", Min: 0, Max: 5, Step: 0.1, Default: 4.0},
	{Column: "back_legroom", Label: "Back Legroom", Unit: "in", Min: 10, Max: 60, Step: 0.1, Default: 35},
	{Column: "front_legroom", Label: "Front Legroom", Unit: "in", Min: 20, Max: 70, Step: 0.1, Default: 40},
	{Column: "height", Label: "Height", Unit: "in", Min: 30, Max: 120, Step: 0.1, Default: 60},
	{Column: "length", Label: "Length", Unit: "in", Min: 80, Max: 300, Step: 0.1, Default: 180},
	{Column: "wheelbase", Label: "Wheelbase", Unit: "in", Min: 50, Max: 200, Step: 0.1, Default: 100},
	{Column: "width", Label: "Width", Unit: "in", Min: 40, Max: 120, Step: 0.1, Default: 70},
	{Column: "maximum_seating", Label: "Max Seating", Min: 1, Max: 15, Step: 1, Default: 5},
}

// FieldViolation is a hard validation failure on one field. Any violation
// blocks prediction until corrected.
type FieldViolation struct {
	Column  string `json:"column"`
	Message string `json:"message"`
}

// FieldAdvisory is a soft note on one field. Advisories never block.
type FieldAdvisory struct {
	Column  string `json:"column"`
	Message string `json:"message"`
}

// ValidateCollected checks every collected numeric value against its field
// spec. All violations are reported together so the form can highlight each
// offending field at once instead of stopping at the first.
func ValidateCollected(collected map[string]any) ([]FieldViolation, []FieldAdvisory) {
	var violations []FieldViolation
	var advisories []FieldAdvisory

	for _, field := range NumericFields {
		raw, ok := collected[field.Column]
		if !ok {
			continue
		}
		v := CoerceNumeric(raw)
		if math.IsNaN(v) {
			// Non-numeric input degrades to the missing sentinel downstream,
			// so it is not a validation failure here.
			continue
		}
		if v < field.Min || v > field.Max {
			violations = append(violations, FieldViolation{
				Column:  field.Column,
				Message: fmt.Sprintf("%s must be between %g and %g", field.Label, field.Min, field.Max),
			})
			continue
		}
		if field.WarnAboveMsg != "" && v > field.WarnAbove {
			advisories = append(advisories, FieldAdvisory{Column: field.Column, Message: field.WarnAboveMsg})
		} else if field.NoteBelowMsg != "" && v < field.NoteBelow {
			advisories = append(advisories, FieldAdvisory{Column: field.Column, Message: field.NoteBelowMsg})
		}
	}

	return violations, advisories
}
