package product

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Product is an immutable catalog entry.
// The JSON shape is also the embedded snapshot stored in carts and orders.
type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Images        []string         `json:"images,omitempty"`
	Category      string           `json:"category"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"reviewCount"`
	InStock       bool             `json:"inStock"`
	StockQuantity int              `json:"stockQuantity"`
	Features      []string         `json:"features,omitempty"`
}

// Clone returns a deep copy, so later changes to one side never leak into the other
func (p Product) Clone() Product {
	c := p
	c.Images = slices.Clone(p.Images)
	c.Features = slices.Clone(p.Features)
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		c.OriginalPrice = &op
	}
	return c
}

// OnSale reports whether the product carries a higher pre-discount price
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}
