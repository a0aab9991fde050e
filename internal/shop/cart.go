package shop

// CartLine is one product-and-quantity entry in the cart: a denormalized
// copy of the product at add time, so later catalog edits do not silently
// reprice a cart in progress.
type CartLine struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Details   string  `json:"details"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Total is the line price times quantity.
func (l CartLine) Total() float64 {
	return l.Price * float64(l.Quantity)
}

// cartTotal recomputes the cart total from scratch. Never cached.
func cartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Total()
	}
	return total
}

// cartItemCount recomputes the item count from scratch. Never cached.
func cartItemCount(lines []CartLine) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// findLine returns the index of the line for productID, or -1.
func findLine(lines []CartLine, productID string) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
