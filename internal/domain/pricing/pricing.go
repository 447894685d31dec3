// Package pricing turns a cart subtotal into shipping, tax and grand total.
// All functions are pure. Results are exact decimals; rounding to cents is
// left to Display so repeated calls never compound rounding error.
package pricing

import "github.com/shopspring/decimal"

var (
	freeShippingThreshold = decimal.NewFromInt(50)
	flatShippingCost      = decimal.RequireFromString("5.99")
	taxRate               = decimal.RequireFromString("0.085")
)

// Breakdown is the derived checkout pricing for one subtotal
type Breakdown struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
}

// ShippingCost is free from 50.00 up (inclusive), 5.99 below
func ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingCost
}

// TaxAmount applies the flat 8.5% rate to the subtotal only
func TaxAmount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate)
}

func GrandTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(ShippingCost(subtotal)).Add(TaxAmount(subtotal))
}

func Compute(subtotal decimal.Decimal) Breakdown {
	return Breakdown{
		Subtotal:     subtotal,
		ShippingCost: ShippingCost(subtotal),
		TaxAmount:    TaxAmount(subtotal),
		GrandTotal:   GrandTotal(subtotal),
	}
}

// Display rounds half away from zero to two places, e.g. 59.155 -> "59.16"
func Display(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
