package product

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrInvalidSortOrder = errors.New("invalid sort order")

type SortOrder string

const (
	SortNone       SortOrder = ""
	SortPriceAsc   SortOrder = "price-asc"
	SortPriceDesc  SortOrder = "price-desc"
	SortRatingDesc SortOrder = "rating-desc"
	SortNameAsc    SortOrder = "name-asc"
)

// categoryAll disables category filtering, as the shop's filter bar sends it
const categoryAll = "all"

// ParseSortOrder accepts the canonical sort names plus the legacy "rating" and "name" aliases
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortNone:
		return SortNone, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	case SortRatingDesc, "rating":
		return SortRatingDesc, nil
	case SortNameAsc, "name":
		return SortNameAsc, nil
	}
	return SortNone, fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
}

// FilterOptions narrows and orders a catalog query. Nil bounds are not applied.
type FilterOptions struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   SortOrder
}

// Catalog is the read-only set of purchasable products, kept in load order
type Catalog struct {
	products []Product
}

func NewCatalog(products []Product) *Catalog {
	c := &Catalog{products: make([]Product, len(products))}
	for i, p := range products {
		c.products[i] = p.Clone()
	}
	return c
}

// All returns the full catalog in load order
func (c *Catalog) All() []Product {
	return c.collect(func(Product) bool { return true })
}

// GetByID returns the product with the given id, or false
func (c *Catalog) GetByID(id int) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return Product{}, false
}

// GetByCategory matches the category label case-insensitively
func (c *Catalog) GetByCategory(category string) []Product {
	return c.collect(func(p Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

// Categories returns the distinct category labels in first-seen order
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// Search matches query against name, description and category
func (c *Catalog) Search(query string) []Product {
	term := strings.ToLower(query)
	return c.collect(func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category), term)
	})
}

// FilterAndSort applies every provided predicate, then a stable sort.
// The catalog itself is never reordered.
func (c *Catalog) FilterAndSort(opts FilterOptions) []Product {
	filtered := c.collect(func(p Product) bool {
		if opts.Category != "" && !strings.EqualFold(opts.Category, categoryAll) &&
			!strings.EqualFold(p.Category, opts.Category) {
			return false
		}
		if opts.MinPrice != nil && p.Price.LessThan(*opts.MinPrice) {
			return false
		}
		if opts.MaxPrice != nil && p.Price.GreaterThan(*opts.MaxPrice) {
			return false
		}
		return true
	})

	switch opts.SortBy {
	case SortPriceAsc:
		slices.SortStableFunc(filtered, func(a, b Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(filtered, func(a, b Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortRatingDesc:
		slices.SortStableFunc(filtered, func(a, b Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortNameAsc:
		// Collator keeps internal buffers, one per call
		col := collate.New(language.English)
		slices.SortStableFunc(filtered, func(a, b Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}

	return filtered
}

func (c *Catalog) collect(keep func(Product) bool) []Product {
	result := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if keep(p) {
			result = append(result, p.Clone())
		}
	}
	return result
}
