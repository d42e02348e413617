package domain

// One kilogram expressed in pounds.
const poundsPerKg = 2.2046226218

// ConvertWeight translates v between the display units "kg" and "lb".
// Identical or unrecognised units leave v unchanged.
func ConvertWeight(v float64, from, to string) float64 {
	switch {
	case from == to:
		return v
	case from == "kg" && to == "lb":
		return v * poundsPerKg
	case from == "lb" && to == "kg":
		return v / poundsPerKg
	}
	return v
}
