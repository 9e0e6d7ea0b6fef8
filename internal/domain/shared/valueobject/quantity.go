package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// QuantityPrecision is the number of fraction digits kept on stored quantities.
// Three digits support weight-sold goods (e.g. 0.250 kg) alongside counted units.
const QuantityPrecision = 3

// Quantity is a value object representing non-negative stock or line quantities.
// Decimal values support items sold by weight or volume.
// It is immutable - all operations return new Quantity instances.
type Quantity struct {
	value decimal.Decimal
	unit  string
}

// NewQuantity creates a new Quantity with the specified value and unit
func NewQuantity(value decimal.Decimal, unit string) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{value: value.Round(QuantityPrecision), unit: unit}, nil
}

// NewQuantityFromFloat creates Quantity from a float64 value
func NewQuantityFromFloat(value float64, unit string) (Quantity, error) {
	return NewQuantity(decimal.NewFromFloat(value), unit)
}

// NewQuantityFromString creates Quantity from a string representation.
// Empty or unparsable strings yield a zero quantity, matching the ledger's
// "missing quantity defaults to zero" rule.
func NewQuantityFromString(value string, unit string) (Quantity, error) {
	if value == "" {
		return Quantity{value: decimal.Zero, unit: unit}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Quantity{value: decimal.Zero, unit: unit}, nil
	}
	return NewQuantity(d, unit)
}

// MustNewQuantity creates a Quantity and panics on error
func MustNewQuantity(value decimal.Decimal, unit string) Quantity {
	q, err := NewQuantity(value, unit)
	if err != nil {
		panic(err)
	}
	return q
}

// ZeroQuantity returns a zero quantity with the specified unit
func ZeroQuantity(unit string) Quantity {
	return Quantity{value: decimal.Zero, unit: unit}
}

// Value returns the decimal value
func (q Quantity) Value() decimal.Decimal {
	return q.value
}

// Unit returns the unit of measure
func (q Quantity) Unit() string {
	return q.unit
}

// IsZero returns true if the quantity is zero
func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// Add returns a new Quantity with the sum.
// Returns error if units don't match.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if q.unit != other.unit {
		return Quantity{}, fmt.Errorf("cannot add quantities with different units: %s and %s", q.unit, other.unit)
	}
	return Quantity{value: q.value.Add(other.value), unit: q.unit}, nil
}

// Subtract returns a new Quantity with the difference.
// Returns error if units don't match or the result would be negative.
func (q Quantity) Subtract(other Quantity) (Quantity, error) {
	if q.unit != other.unit {
		return Quantity{}, fmt.Errorf("cannot subtract quantities with different units: %s and %s", q.unit, other.unit)
	}
	result := q.value.Sub(other.value)
	if result.IsNegative() {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{value: result, unit: q.unit}, nil
}

// Multiply returns a new Quantity multiplied by the given factor
func (q Quantity) Multiply(factor decimal.Decimal) Quantity {
	return Quantity{value: q.value.Mul(factor).Round(QuantityPrecision), unit: q.unit}
}

// Equals returns true if both value and unit match
func (q Quantity) Equals(other Quantity) bool {
	return q.unit == other.unit && q.value.Equal(other.value)
}

// String returns a human-readable representation
func (q Quantity) String() string {
	if q.unit == "" {
		return q.value.String()
	}
	return fmt.Sprintf("%s %s", q.value.String(), q.unit)
}
