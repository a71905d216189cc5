package models

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount to two decimal places, half away from
// zero (kaufmännisches Runden). Every derived amount in the UVA pipeline
// goes through this single primitive.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeVAT derives the VAT amount from a net base and an integer rate.
func ComputeVAT(net decimal.Decimal, rate int) decimal.Decimal {
	if rate <= 0 || net.IsZero() {
		return decimal.Zero
	}
	return Round2(net.Mul(decimal.NewFromInt(int64(rate))).Div(decimal.NewFromInt(100)))
}
