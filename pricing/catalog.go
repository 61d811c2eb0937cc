package pricing

import "sort"

// UnknownSentinel is the placeholder used for categorical and boolean
// columns that have no collected value. The preprocessor was fitted with the
// same string for missing categories.
const UnknownSentinel = "Unknown"

// colorSentinel differs because the listing data upstream already uses
// upper-cased color groups, UNKNOWN included.
const colorSentinel = "UNKNOWN"

// NormalizeOptions prepares a raw option list for presentation: empty
// strings (the absent-value marker) are replaced with sentinel, duplicates
// are dropped and the result is sorted ascending.
func NormalizeOptions(raw []string, sentinel string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v == "" {
			v = sentinel
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Raw category values as they appear in the listing dataset the model was
// trained on. Empty string marks a missing value in the source data.
var (
	bodyTypeRaw = []string{
		"Pickup Truck", "Sedan", "SUV / Crossover", "Van", "Hatchback",
		"Coupe", "Minivan", "Convertible", "Wagon", "",
	}
	engineCylindersRaw = []string{
		"V8", "I4", "V6 Hybrid", "V6", "V6 Flex Fuel Vehicle", "I3", "H4",
		"V8 Flex Fuel Vehicle", "", "I4 Flex Fuel Vehicle", "I6 Diesel",
		"I4 Hybrid", "I6", "I4 Diesel", "V8 Biodiesel", "V6 Biodiesel",
		"V8 Diesel", "V6 Diesel", "I5", "H6", "V10", "W12", "V12",
		"I4 Compressed Natural Gas", "I2", "V8 Hybrid",
		"V8 Compressed Natural Gas", "I5 Diesel", "H4 Hybrid", "I5 Biodiesel",
		"W12 Flex Fuel Vehicle", "R2", "I6 Hybrid", "V8 Propane",
		"V6 Compressed Natural Gas", "V10 Diesel", "W8", "I3 Hybrid",
	}
	fuelTypeRaw = []string{
		"Gasoline", "Hybrid", "Flex Fuel Vehicle", "", "Diesel", "Electric",
		"Biodiesel", "Compressed Natural Gas", "Propane",
	}
	listingColorRaw = []string{
		"SILVER", "GRAY", "WHITE", "BLACK", "BLUE", "RED", "UNKNOWN",
		"GREEN", "YELLOW", "BROWN", "GOLD", "TEAL", "ORANGE", "PURPLE",
		"PINK",
	}
	transmissionRaw = []string{"A", "CVT", "M", "", "Dual Clutch"}
	wheelSystemRaw  = []string{"4WD", "FWD", "AWD", "", "RWD", "4X2"}
)

// Normalized domains offered by the form. Engine type shares the cylinder
// vocabulary in the source data.
var (
	BodyTypes       = NormalizeOptions(bodyTypeRaw, UnknownSentinel)
	EngineCylinders = NormalizeOptions(engineCylindersRaw, UnknownSentinel)
	EngineTypes     = NormalizeOptions(engineCylindersRaw, UnknownSentinel)
	FuelTypes       = NormalizeOptions(fuelTypeRaw, UnknownSentinel)
	ListingColors   = NormalizeOptions(listingColorRaw, colorSentinel)
	Transmissions   = NormalizeOptions(transmissionRaw, UnknownSentinel)
	WheelSystems    = NormalizeOptions(wheelSystemRaw, UnknownSentinel)
)

// transmissionDisplay maps internal transmission codes to the labels shown
// in the form. Declaration order decides reverse-lookup order.
var transmissionDisplay = []struct {
	Code  string
	Label string
}{
	{"A", "Automatic"},
	{"M", "Manual"},
	{"CVT", "CVT"},
	{"Dual Clutch", "Dual Clutch"},
	{UnknownSentinel, UnknownSentinel},
}

// TransmissionLabels returns the display labels for the transmission
// selector, derived from the normalized internal codes.
func TransmissionLabels() []string {
	labels := make([]string, 0, len(Transmissions))
	for _, code := range Transmissions {
		labels = append(labels, transmissionLabelFor(code))
	}
	return labels
}

func transmissionLabelFor(code string) string {
	for _, m := range transmissionDisplay {
		if m.Code == code {
			return m.Label
		}
	}
	return code
}

// ToInternalCode maps a transmission display label back to the internal code
// the model was trained on. An unmapped label is returned verbatim: the
// caller may already be holding an internal code.
func ToInternalCode(label string) string {
	for _, m := range transmissionDisplay {
		if m.Label == label {
			return m.Code
		}
	}
	return label
}
