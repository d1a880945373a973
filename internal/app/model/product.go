package model

import "math"

type StockStatus string

const (
	StockOnSale    StockStatus = "onsale"
	StockInStock   StockStatus = "instock"
	StockBackorder StockStatus = "backorder"
)

// ValidStockStatus reports whether s is one of the known stock statuses.
func ValidStockStatus(s StockStatus) bool {
	switch s {
	case StockOnSale, StockInStock, StockBackorder:
		return true
	}
	return false
}

// Product is a catalog listing. The catalog is static reference data loaded
// from the catalog file; listings are never mutated at runtime.
type Product struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Brand    string      `json:"brand"`
	Price    float64     `json:"price"`
	OldPrice *float64    `json:"old_price,omitempty"`
	Status   StockStatus `json:"status"`
	Image    string      `json:"image"`
}

// OnSale reports whether the listing displays a sale badge: the status must be
// onsale and the strike-through reference price must actually exceed the
// current price.
func (p Product) OnSale() bool {
	return p.Status == StockOnSale && p.OldPrice != nil && *p.OldPrice > p.Price
}

// DiscountPercent returns the rounded sale discount percentage, or 0 when the
// listing is not on sale.
func (p Product) DiscountPercent() int {
	if !p.OnSale() {
		return 0
	}
	return int(math.Round((*p.OldPrice - p.Price) / *p.OldPrice * 100))
}
