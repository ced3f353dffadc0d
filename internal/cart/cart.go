package cart

// Variant is the option set chosen when adding a product. Size is part of
// the line identity; color is display-only.
type Variant struct {
	Size  string `json:"size"`
	Color string `json:"color,omitempty"`
}

// LineItem is one cart entry, keyed by product + size so the same product
// in two sizes is two lines. Price is a snapshot taken at add time and is
// never re-fetched.
type LineItem struct {
	LineID    string   `json:"lineId"`
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Images    []string `json:"images,omitempty"`
	Variant   Variant  `json:"selectedVariant"`
	Quantity  int      `json:"quantity"`
}

// LineKey builds the composite line identity.
func LineKey(productID, size string) string {
	return productID + ":" + size
}

// Cart is the full persisted snapshot. Total is always recomputed from the
// lines, never adjusted incrementally.
type Cart struct {
	Items []LineItem `json:"items"`
	Total float64    `json:"total"`
}

func (c *Cart) recomputeTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.Total = total
}
