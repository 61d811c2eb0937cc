package main

import (
	"github.com/mohanad/carpriced/currency"
	"github.com/mohanad/carpriced/pricing"
)

type numericFieldView struct {
	Column  string  `json:"column"`
	Label   string  `json:"label"`
	Unit    string  `json:"unit,omitempty"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

type selectFieldView struct {
	Column  string   `json:"column"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

type booleanFieldView struct {
	Column string `json:"column"`
	Label  string `json:"label"`
}

type catalogView struct {
	Numeric     []numericFieldView `json:"numeric"`
	Categorical []selectFieldView  `json:"categorical"`
	Boolean     []booleanFieldView `json:"boolean"`
	Currencies  []currency.Info    `json:"currencies"`
}

// Selector labels in form order, matching the grouping of the original form.
var categoricalLabels = []struct{ Column, Label string }{
	{"body_type", "Body Type"},
	{"engine_cylinders", "Engine Cylinders"},
	{"engine_type", "Engine Type"},
	{"fuel_type", "Fuel Type"},
	{"listing_color", "Listing Color Group"},
	{"transmission", "Transmission"},
	{"wheel_system", "Wheel System"},
}

var booleanLabels = []struct{ Column, Label string }{
	{"fleet", "Fleet Vehicle?"},
	{"frame_damaged", "Frame Damaged?"},
	{"franchise_dealer", "Franchise Dealer?"},
	{"has_accidents", "Accidents Reported?"},
	{"isCab", "Was a Cab/Taxi?"},
	{"is_new", "Is New (<2 yrs old)?"},
	{"salvage", "Salvage Title?"},
	{"theft_title", "Theft on Title?"},
}

// buildCatalog assembles the field metadata the page renders from. Only
// columns present in the active schema are offered, so a model trained on a
// narrower feature set automatically narrows the form.
func (s *Server) buildCatalog() catalogView {
	cat := catalogView{Currencies: currency.Supported}

	for _, f := range pricing.NumericFields {
		if _, ok := s.schema.Column(f.Column); !ok {
			continue
		}
		cat.Numeric = append(cat.Numeric, numericFieldView{
			Column:  f.Column,
			Label:   f.Label,
			Unit:    f.Unit,
			Min:     f.Min,
			Max:     f.Max,
			Step:    f.Step,
			Default: f.Default,
		})
	}

	for _, f := range categoricalLabels {
		col, ok := s.schema.Column(f.Column)
		if !ok {
			continue
		}
		options := col.Domain
		if f.Column == "transmission" {
			options = pricing.TransmissionLabels()
		}
		cat.Categorical = append(cat.Categorical, selectFieldView{
			Column:  f.Column,
			Label:   f.Label,
			Options: options,
		})
	}

	for _, f := range booleanLabels {
		if _, ok := s.schema.Column(f.Column); !ok {
			continue
		}
		cat.Boolean = append(cat.Boolean, booleanFieldView{Column: f.Column, Label: f.Label})
	}

	return cat
}
