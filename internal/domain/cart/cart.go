package cart

import (
	"github.com/example/ec-storefront/internal/domain/product"
	"github.com/shopspring/decimal"
)

// Entry pairs a product snapshot with a positive quantity.
// The JSON shape is what the cart and order slots persist.
type Entry struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// LineTotal is unit price times quantity
func (e Entry) LineTotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart is a point-in-time view of a Store.
// Count and Subtotal are always derived from Entries.
type Cart struct {
	Entries  []Entry         `json:"entries"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

// CloneEntries deep-copies entries so the copy shares nothing with the source
func CloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Product: e.Product.Clone(), Quantity: e.Quantity}
	}
	return out
}

func summarize(entries []Entry) (int, decimal.Decimal) {
	count := 0
	subtotal := decimal.Zero
	for _, e := range entries {
		count += e.Quantity
		subtotal = subtotal.Add(e.LineTotal())
	}
	return count, subtotal
}
