package catalog

import "errors"

// ProductsCollection is the document store collection holding the catalog.
const ProductsCollection = "productos"

// PlaceholderImage is substituted for products published without one.
const PlaceholderImage = "./imagenes/placeholder.jpg"

var (
	ErrInvalidProductID = errors.New("product id is required")
	ErrInvalidName      = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
)

// Product is one catalog entry. The snapshot never mutates products after
// load; the cart copies the fields it needs at add time.
type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Details string  `json:"details"`
	Image   string  `json:"image,omitempty"`
}

// Normalize fills sentinel values for optional fields so nothing downstream
// has to handle their absence.
func (p *Product) Normalize() {
	if p.Image == "" {
		p.Image = PlaceholderImage
	}
}

// Validate checks the fields the storefront relies on.
func (p Product) Validate() error {
	if p.ID == "" {
		return ErrInvalidProductID
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
