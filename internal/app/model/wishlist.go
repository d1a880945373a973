package model

// WishlistItem mirrors the cart line shape without a quantity; the wishlist
// has no behavior beyond toggle and lookup.
type WishlistItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}
