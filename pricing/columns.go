package pricing

// Declared kinds for every column the model artifacts may name. The order of
// DefaultColumns matches the feature order the preprocessor was fitted with.
var (
	numericColumns = []string{
		"back_legroom", "city_fuel_economy", "daysonmarket",
		"engine_displacement", "front_legroom", "fuel_tank_volume", "height",
		"highway_fuel_economy", "horsepower", "length", "maximum_seating",
		"mileage", "owner_count", "savings_amount", "seller_rating",
		"wheelbase", "width", "car_age",
	}

	booleanColumns = []string{
		"fleet", "frame_damaged", "franchise_dealer", "has_accidents",
		"isCab", "is_new", "salvage", "theft_title",
	}

	categoricalDomains = map[string][]string{
		"body_type":        BodyTypes,
		"engine_cylinders": EngineCylinders,
		"engine_type":      EngineTypes,
		"fuel_type":        FuelTypes,
		"listing_color":    ListingColors,
		"transmission":     Transmissions,
		"wheel_system":     WheelSystems,
	}
)

// DefaultColumns is the column order the bundled model artifacts use. It is
// only a fallback for rendering the form when artifacts fail to load; the
// authoritative order always comes from the artifacts themselves.
var DefaultColumns = []string{
	"back_legroom", "body_type", "city_fuel_economy", "daysonmarket",
	"engine_cylinders", "engine_displacement", "engine_type", "fleet",
	"frame_damaged", "franchise_dealer", "front_legroom", "fuel_tank_volume",
	"fuel_type", "has_accidents", "height", "highway_fuel_economy",
	"horsepower", "isCab", "is_new", "length", "listing_color",
	"maximum_seating", "mileage", "owner_count", "salvage", "savings_amount",
	"seller_rating", "theft_title", "transmission", "wheel_system",
	"wheelbase", "width", "car_age",
}

func declaredColumn(name string) (Column, bool) {
	if domain, ok := categoricalDomains[name]; ok {
		return Column{Name: name, Kind: KindCategorical, Domain: domain}, true
	}
	for _, n := range booleanColumns {
		if n == name {
			return Column{Name: name, Kind: KindBoolean}, true
		}
	}
	for _, n := range numericColumns {
		if n == name {
			return Column{Name: name, Kind: KindNumeric}, true
		}
	}
	return Column{}, false
}

// DefaultSchema builds a schema over DefaultColumns. It panics on error
// because the static tables above are checked by tests; an inconsistency is
// a programming error, not runtime input.
func DefaultSchema() *Schema {
	s, err := BuildSchema(DefaultColumns)
	if err != nil {
		panic(err)
	}
	return s
}
