package product

import "github.com/shopspring/decimal"

// DefaultCatalog returns the shop's seeded product listing
func DefaultCatalog() *Catalog {
	return NewCatalog(seedProducts)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

var seedProducts = []Product{
	{
		ID:            1,
		Name:          "Apple iPhone 15 Pro",
		Description:   "The most advanced iPhone yet with A17 Pro chip, titanium design, and advanced camera system.",
		Price:         price("999"),
		OriginalPrice: pricePtr("1099"),
		Image:         "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400",
		Images: []string{
			"https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400",
			"https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400",
		},
		Category:      "Electronics",
		Rating:        4.8,
		ReviewCount:   2847,
		InStock:       true,
		StockQuantity: 25,
		Features:      []string{"A17 Pro chip", "6.1-inch display", "Triple camera system", "128GB storage"},
	},
	{
		ID:            2,
		Name:          "Samsung Galaxy S24 Ultra",
		Description:   "Premium Android smartphone with S Pen, advanced AI features, and exceptional camera capabilities.",
		Price:         price("1199"),
		OriginalPrice: pricePtr("1299"),
		Image:         "https://images.unsplash.com/photo-1610945265064-0e34e5519bbf?w=400",
		Category:      "Electronics",
		Rating:        4.7,
		ReviewCount:   1923,
		InStock:       true,
		StockQuantity: 18,
		Features:      []string{"S Pen included", "6.8-inch display", "200MP camera", "256GB storage"},
	},
	{
		ID:            3,
		Name:          "Sony WH-1000XM5 Headphones",
		Description:   "Industry-leading noise canceling wireless headphones with exceptional sound quality.",
		Price:         price("399"),
		OriginalPrice: pricePtr("449"),
		Image:         "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400",
		Category:      "Electronics",
		Rating:        4.9,
		ReviewCount:   5621,
		InStock:       true,
		StockQuantity: 42,
		Features:      []string{"30-hour battery", "Active noise canceling", "Touch controls", "Quick charge"},
	},
	{
		ID:            4,
		Name:          "MacBook Air M2",
		Description:   "Supercharged by M2 chip. Incredibly portable design with all-day battery life.",
		Price:         price("1199"),
		OriginalPrice: pricePtr("1299"),
		Image:         "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?w=400",
		Category:      "Electronics",
		Rating:        4.8,
		ReviewCount:   3456,
		InStock:       true,
		StockQuantity: 12,
		Features:      []string{"M2 chip", "13.6-inch display", "8GB RAM", "256GB SSD"},
	},
	{
		ID:            5,
		Name:          "Nike Air Max 270",
		Description:   "Comfortable running shoes with Max Air cushioning and breathable mesh upper.",
		Price:         price("150"),
		OriginalPrice: pricePtr("180"),
		Image:         "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400",
		Category:      "Shoes",
		Rating:        4.6,
		ReviewCount:   892,
		InStock:       true,
		StockQuantity: 67,
		Features:      []string{"Max Air cushioning", "Breathable mesh", "Durable rubber sole", "Multiple colors"},
	},
	{
		ID:            6,
		Name:          "Adidas Ultraboost 22",
		Description:   "Premium running shoes with responsive Boost midsole and Primeknit upper.",
		Price:         price("190"),
		OriginalPrice: pricePtr("220"),
		Image:         "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=400",
		Category:      "Shoes",
		Rating:        4.7,
		ReviewCount:   1245,
		InStock:       true,
		StockQuantity: 34,
		Features:      []string{"Boost midsole", "Primeknit upper", "Continental rubber outsole", "Energy return"},
	},
	{
		ID:            7,
		Name:          "Levi's 501 Original Jeans",
		Description:   "Classic straight-leg jeans made with premium denim. Timeless style that never goes out of fashion.",
		Price:         price("89"),
		OriginalPrice: pricePtr("120"),
		Image:         "https://images.unsplash.com/photo-1541099649105-f69ad21f3246?w=400",
		Category:      "Clothing",
		Rating:        4.5,
		ReviewCount:   2341,
		InStock:       true,
		StockQuantity: 89,
		Features:      []string{"100% cotton denim", "Straight fit", "Button fly", "Classic 5-pocket design"},
	},
	{
		ID:            8,
		Name:          "Patagonia Better Sweater",
		Description:   "Cozy fleece jacket made from recycled polyester. Perfect for outdoor adventures.",
		Price:         price("129"),
		OriginalPrice: pricePtr("149"),
		Image:         "https://images.unsplash.com/photo-1551698618-1dfe5d97d256?w=400",
		Category:      "Clothing",
		Rating:        4.8,
		ReviewCount:   756,
		InStock:       true,
		StockQuantity: 23,
		Features:      []string{"Recycled polyester", "Full-zip design", "Two hand pockets", "Machine washable"},
	},
	{
		ID:            9,
		Name:          "KitchenAid Stand Mixer",
		Description:   "Professional-grade stand mixer with 10 speeds and multiple attachments included.",
		Price:         price("379"),
		OriginalPrice: pricePtr("429"),
		Image:         "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=400",
		Category:      "Home & Kitchen",
		Rating:        4.9,
		ReviewCount:   4521,
		InStock:       true,
		StockQuantity: 15,
		Features:      []string{"5-quart bowl", "10 speeds", "Tilt-head design", "Multiple attachments"},
	},
	{
		ID:            10,
		Name:          "Instant Pot Duo 7-in-1",
		Description:   "Multi-use pressure cooker that replaces 7 kitchen appliances in one.",
		Price:         price("99"),
		OriginalPrice: pricePtr("129"),
		Image:         "https://images.unsplash.com/photo-1574781330855-d0db90d9d4f4?w=400",
		Category:      "Home & Kitchen",
		Rating:        4.7,
		ReviewCount:   8934,
		InStock:       true,
		StockQuantity: 45,
		Features:      []string{"7-in-1 functionality", "6-quart capacity", "14 smart programs", "Stainless steel pot"},
	},
	{
		ID:            11,
		Name:          "Dyson V15 Detect",
		Description:   "Cordless vacuum with laser dust detection and intelligent suction adjustment.",
		Price:         price("749"),
		OriginalPrice: pricePtr("849"),
		Image:         "https://images.unsplash.com/photo-1558618047-3c8c76ca7d13?w=400",
		Category:      "Home & Kitchen",
		Rating:        4.8,
		ReviewCount:   1876,
		InStock:       true,
		StockQuantity: 8,
		Features:      []string{"Laser dust detection", "60-minute runtime", "LCD screen", "HEPA filtration"},
	},
	{
		ID:            12,
		Name:          "The Great Gatsby",
		Description:   "Classic American novel by F. Scott Fitzgerald. A timeless story of love and the American Dream.",
		Price:         price("12.99"),
		OriginalPrice: pricePtr("16.99"),
		Image:         "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400",
		Category:      "Books",
		Rating:        4.3,
		ReviewCount:   12456,
		InStock:       true,
		StockQuantity: 156,
		Features:      []string{"Paperback edition", "180 pages", "English language", "Classic literature"},
	},
}
