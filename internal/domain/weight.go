package domain

import "strconv"

// WeightVariant is one of the three fixed package sizes, in kilograms.
type WeightVariant float64

const (
	WeightQuarter WeightVariant = 0.25
	WeightHalf    WeightVariant = 0.5
	WeightFull    WeightVariant = 1.0
)

// DefaultWeight is the backfill value for persisted lines written before the
// cart schema carried a weight field.
const DefaultWeight = WeightQuarter

// Weights returns all valid package sizes in ascending order.
func Weights() []WeightVariant {
	return []WeightVariant{WeightQuarter, WeightHalf, WeightFull}
}

// Valid reports whether w is one of the three fixed package sizes.
func (w WeightVariant) Valid() bool {
	return w == WeightQuarter || w == WeightHalf || w == WeightFull
}

// Label returns the display label for the package size
func (w WeightVariant) Label() string {
	switch w {
	case WeightQuarter:
		return "250g"
	case WeightHalf:
		return "500g"
	case WeightFull:
		return "1kg"
	default:
		return ""
	}
}

// String renders the weight the way it is embedded in line-item identifiers:
// "0.25", "0.5", "1".
func (w WeightVariant) String() string {
	return strconv.FormatFloat(float64(w), 'f', -1, 64)
}

// ParseWeight parses a decimal kilogram value into a WeightVariant.
func ParseWeight(s string) (WeightVariant, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	w := WeightVariant(f)
	return w, w.Valid()
}
