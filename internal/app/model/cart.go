package model

// CartLine is one cart entry for a unique product. Display metadata is copied
// from the listing at insertion time and never re-fetched. A line with
// quantity 0 must not exist; removal is implicit at zero.
//
// The JSON tags are the persisted storage layout: a serialized array of
// {id, name, price, image, quantity} records, no schema tag.
type CartLine struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// CartState holds the cart lines in first-add order plus the transient
// drawer open/closed flag. The drawer flag is purely presentational and is
// not persisted.
type CartState struct {
	Lines        []CartLine `json:"lines"`
	IsDrawerOpen bool       `json:"is_drawer_open"`
}

// Total is the derived cart value: sum of unit price times quantity over all
// lines. It is recomputed on every read and never stored.
func (s CartState) Total() float64 {
	var total float64
	for _, line := range s.Lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// Clone returns a copy of the state with its own line slice. A clone stays
// stable while the original keeps mutating.
func (s CartState) Clone() CartState {
	lines := make([]CartLine, len(s.Lines))
	copy(lines, s.Lines)
	return CartState{Lines: lines, IsDrawerOpen: s.IsDrawerOpen}
}

// FindLine returns the index of the line for productID, or -1.
func (s CartState) FindLine(productID string) int {
	for i, line := range s.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
