package product

// Product is a catalog price/name record resolved for a product identifier.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
}
