package models

import "github.com/shopspring/decimal"

// Cents is a monetary amount in integer cents. Balances and transaction
// amounts are stored in cents; dollar values exist only at the API boundary.
type Cents = int64

var hundred = decimal.NewFromInt(100)

// DollarsToCents converts a decimal dollar amount to cents,
// rounding to the nearest cent.
func DollarsToCents(d decimal.Decimal) Cents {
	return d.Mul(hundred).Round(0).IntPart()
}

// CentsToDollars converts cents to a float dollar amount for responses.
func CentsToDollars(c Cents) float64 {
	return decimal.New(c, -2).InexactFloat64()
}
