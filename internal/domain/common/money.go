// internal/domain/common/money.go
package common

import (
	"github.com/shopspring/decimal"
)

// Cents is an amount in minor currency units.
// Arithmetic on prices and totals is done in Cents; decimal numbers only
// appear at the document / JSON boundary.
type Cents int64

// CentsFromFloat converts a decimal amount in major units (9.99) into Cents,
// rounding half away from zero at the second decimal place.
func CentsFromFloat(v float64) Cents {
	return Cents(decimal.NewFromFloat(v).Shift(2).Round(0).IntPart())
}

// CentsFromString parses "9.99" style amounts.
func CentsFromString(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return Cents(d.Shift(2).Round(0).IntPart()), nil
}

// Float64 returns the amount in major units for the document form.
func (c Cents) Float64() float64 {
	f, _ := c.Decimal().Float64()
	return f
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Times multiplies a unit price by a quantity.
func (c Cents) Times(qty int) Cents {
	return c * Cents(qty)
}

// String formats the amount with two decimals ("29.97").
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}
